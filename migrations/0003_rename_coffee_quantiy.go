package migrations

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

func init() {
	Register(Migration{Version: 3, Name: "rename_coffee_quantiy", Up: upRenameCoffeeQuantiy, Down: downRenameCoffeeQuantiy})
}

// earlier deployments stored the quantity of updated coffee items under the
// misspelled "quantiy" attribute
func upRenameCoffeeQuantiy(ctx context.Context, database *mongo.Database) error {
	return renameField(ctx, database.Collection("coffee"), "quantiy", "quantity")
}

func downRenameCoffeeQuantiy(context.Context, *mongo.Database) error {
	// the renamed documents can't be told apart from the ones created with
	// the right attribute, so nothing is restored
	return nil
}
