package migrations

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func init() {
	Register(Migration{Version: 2, Name: "lookup_indexes", Up: upLookupIndexes, Down: downLookupIndexes})
}

// lookupIndexes are plain ascending indexes. None of them is unique: the
// same email may be registered by several users.
var lookupIndexes = map[string]string{
	"users":   "email",
	"coffee":  "category",
	"objects": "createdAt",
}

func upLookupIndexes(ctx context.Context, database *mongo.Database) error {
	for collName, field := range lookupIndexes {
		if _, err := database.Collection(collName).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: field, Value: 1}}, // 1 for ascending order
		}); err != nil {
			return fmt.Errorf("failed to create index on %s for %s: %w", field, collName, err)
		}
	}
	return nil
}

func downLookupIndexes(ctx context.Context, database *mongo.Database) error {
	for collName, field := range lookupIndexes {
		if err := dropIndexes(ctx, database.Collection(collName), field+"_1"); err != nil {
			return err
		}
	}
	return nil
}
