package migrations

import (
	"context"
	"fmt"
	"slices"

	"go.mongodb.org/mongo-driver/mongo"
)

func init() {
	Register(Migration{Version: 1, Name: "initial_collections", Up: upInitialCollections, Down: downInitialCollections})
}

// the coffee and users collections are schema-less, none of them gets a
// validator
var collectionsToCreate = []string{
	"coffee",
	"users",
	"objects",
	"migrations",
}

func upInitialCollections(ctx context.Context, database *mongo.Database) error {
	// get the current collections names to create only the missing ones
	currentCollections, err := listCollectionsInDB(ctx, database)
	if err != nil {
		return fmt.Errorf("failed to get current collections: %w", err)
	}
	for _, name := range collectionsToCreate {
		if slices.Contains(currentCollections, name) {
			continue
		}
		if err := database.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", name, err)
		}
	}
	return nil
}

func downInitialCollections(context.Context, *mongo.Database) error {
	// dropping the collections would remove every coffee item and user, the
	// up func is idempotent so there is nothing to undo
	return nil
}
