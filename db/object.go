package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// The Object entity represents a coffee photo stored in the database,
// intended for s3-like storage.

// Object retrieves an object from the MongoDB collection by its ID.
func (ms *MongoStorage) Object(ctx context.Context, id string) (*Object, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	obj := &Object{}
	if err := ms.objects.FindOne(ctx, bson.M{"_id": id}).Decode(obj); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return obj, nil
}

// SetObject sets the object data for the given objectID. If the
// object does not exist, it will be created with the given data, otherwise it
// will be updated.
func (ms *MongoStorage) SetObject(ctx context.Context, objectID, contentType string, data []byte) error {
	if objectID == "" {
		return ErrInvalidData
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	object := &Object{
		ID:          objectID,
		Data:        data,
		CreatedAt:   time.Now(),
		ContentType: contentType,
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := ms.objects.ReplaceOne(ctx, bson.M{"_id": object.ID}, object, opts); err != nil {
		return fmt.Errorf("cannot update object: %w", err)
	}
	return nil
}

// RemoveObject removes the object data for the given objectID.
func (ms *MongoStorage) RemoveObject(ctx context.Context, objectID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	_, err := ms.objects.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}
