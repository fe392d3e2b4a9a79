package db

import "context"

// Coffees returns every coffee item stored.
func (ms *MongoStorage) Coffees(ctx context.Context) ([]Document, error) {
	return listDocuments(ctx, ms.coffee)
}

// Coffee returns the coffee item with the given identifier. If it doesn't
// exist, it returns ErrNotFound; a malformed identifier results in
// ErrInvalidID.
func (ms *MongoStorage) Coffee(ctx context.Context, id string) (Document, error) {
	return findDocument(ctx, ms.coffee, id)
}

// AddCoffee stores a new coffee item exactly as provided.
func (ms *MongoStorage) AddCoffee(ctx context.Context, coffee Document) (*InsertResult, error) {
	return insertDocument(ctx, ms.coffee, coffee)
}

// SetCoffee replaces the known coffee fields of the item with the given
// identifier, removing those not provided, and creates the item if it
// doesn't exist.
func (ms *MongoStorage) SetCoffee(ctx context.Context, id string, coffee Document) (*UpdateResult, error) {
	return replaceFields(ctx, ms.coffee, id, coffee, CoffeeFields)
}

// UpdateCoffee sets the known coffee fields provided, keeping the rest.
func (ms *MongoStorage) UpdateCoffee(ctx context.Context, id string, coffee Document) (*UpdateResult, error) {
	return mergeFields(ctx, ms.coffee, id, coffee, CoffeeFields)
}

// DelCoffee removes the coffee item with the given identifier.
func (ms *MongoStorage) DelCoffee(ctx context.Context, id string) (*DeleteResult, error) {
	return deleteDocument(ctx, ms.coffee, id)
}
