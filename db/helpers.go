package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.vocdoni.io/dvote/log"
)

// initCollections gets the handlers of the collections used by the storage.
// The collections themselves are created by the initial migration.
func (ms *MongoStorage) initCollections() error {
	database := ms.DBClient.Database(ms.database)
	ms.coffee = database.Collection(CoffeeCollection)
	ms.users = database.Collection(UsersCollection)
	ms.objects = database.Collection(ObjectsCollection)
	ms.migrations = database.Collection(MigrationsCollection)
	return nil
}

// objectIDFromHex parses the identifier of a document. Any malformed
// identifier results in ErrInvalidID.
func objectIDFromHex(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

// listDocuments returns every document of the collection in the order the
// server stores them. An empty collection results in an empty, non nil,
// slice.
func listDocuments(ctx context.Context, col *mongo.Collection) ([]Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	cursor, err := col.Find(ctx, emptyFilter)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			log.Warnw("error closing cursor", "error", err)
		}
	}()
	docs := []Document{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}
	if docs == nil {
		docs = []Document{}
	}
	return docs, nil
}

// insertDocument stores a copy of the document provided with a new
// identifier. Any "_id" attribute of the input is discarded.
func insertDocument(ctx context.Context, col *mongo.Collection, doc Document) (*InsertResult, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	newDoc := make(Document, len(doc)+1)
	for k, v := range doc {
		newDoc[k] = v
	}
	oid := primitive.NewObjectID()
	newDoc["_id"] = oid
	if _, err := col.InsertOne(ctx, newDoc); err != nil {
		return nil, err
	}
	return &InsertResult{Acknowledged: true, InsertedID: oid}, nil
}

// findDocument returns the document with the given identifier or
// ErrNotFound.
func findDocument(ctx context.Context, col *mongo.Collection, id string) (Document, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	doc := Document{}
	if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// replaceFields overwrites the known fields of the document with the given
// identifier. Known fields present in the input are set, the missing ones
// are removed from the stored document and unknown fields are ignored. If no
// document matches the identifier, a new one is created with it.
func replaceFields(ctx context.Context, col *mongo.Collection, id string,
	doc Document, fields []string,
) (*UpdateResult, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	set, unset := bson.M{}, bson.M{}
	for _, field := range fields {
		if value, ok := doc[field]; ok {
			set[field] = value
		} else {
			unset[field] = ""
		}
	}
	updateDoc := bson.M{}
	if len(set) > 0 {
		updateDoc["$set"] = set
	}
	if len(unset) > 0 {
		updateDoc["$unset"] = unset
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	opts := options.Update().SetUpsert(true)
	res, err := col.UpdateOne(ctx, bson.M{"_id": oid}, updateDoc, opts)
	if err != nil {
		return nil, err
	}
	return updateResult(res), nil
}

// mergeFields sets only the known fields present in the input, leaving the
// rest of the stored document untouched. It never creates documents. If the
// input contains none of the known fields, ErrInvalidData is returned.
func mergeFields(ctx context.Context, col *mongo.Collection, id string,
	doc Document, fields []string,
) (*UpdateResult, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	set := bson.M{}
	for _, field := range fields {
		if value, ok := doc[field]; ok {
			set[field] = value
		}
	}
	if len(set) == 0 {
		return nil, ErrInvalidData
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	res, err := col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	return updateResult(res), nil
}

// deleteDocument removes the document with the given identifier. Deleting an
// unknown identifier is not an error, the result reports zero deletions.
func deleteDocument(ctx context.Context, col *mongo.Collection, id string) (*DeleteResult, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	return &DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

func updateResult(res *mongo.UpdateResult) *UpdateResult {
	result := &UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		result.UpsertedID = &oid
	}
	return result
}
