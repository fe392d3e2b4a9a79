package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.vocdoni.io/dvote/log"
)

// Export dumps the coffee and users collections as a relaxed MongoDB
// Extended JSON document, so identifiers and numeric types survive a later
// Import.
func (ms *MongoStorage) Export(ctx context.Context) ([]byte, error) {
	coffee, err := ms.Coffees(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot export coffee: %w", err)
	}
	users, err := ms.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot export users: %w", err)
	}
	data, err := bson.MarshalExtJSON(&Dataset{Coffee: coffee, Users: users}, false, false)
	if err != nil {
		return nil, fmt.Errorf("cannot encode dataset: %w", err)
	}
	return data, nil
}

// Import imports a dataset produced by Export into the database, upserting
// every document by its identifier. Documents without identifier are
// skipped.
func (ms *MongoStorage) Import(ctx context.Context, data []byte) error {
	log.Infof("importing database")
	var dataset Dataset
	if err := bson.UnmarshalExtJSON(data, false, &dataset); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()

	log.Infow("importing coffee", "count", len(dataset.Coffee))
	if err := importDocuments(ctx, ms.coffee, dataset.Coffee); err != nil {
		return err
	}
	log.Infow("importing users", "count", len(dataset.Users))
	if err := importDocuments(ctx, ms.users, dataset.Users); err != nil {
		return err
	}
	log.Infof("imported database!")
	return nil
}

func importDocuments(ctx context.Context, col *mongo.Collection, docs []Document) error {
	opts := options.Replace().SetUpsert(true)
	for _, doc := range docs {
		id, ok := doc["_id"]
		if !ok {
			log.Warnw("skipping document without identifier", "collection", col.Name())
			continue
		}
		if _, err := col.ReplaceOne(ctx, bson.M{"_id": id}, doc, opts); err != nil {
			return fmt.Errorf("error upserting document %v into %s: %w", id, col.Name(), err)
		}
	}
	return nil
}
