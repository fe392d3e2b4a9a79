package db

import "context"

// Users returns every user stored.
func (ms *MongoStorage) Users(ctx context.Context) ([]Document, error) {
	return listDocuments(ctx, ms.users)
}

// User method returns the user with the given ID. If the user doesn't exist, it
// returns ErrNotFound. If the ID is malformed, it returns ErrInvalidID.
func (ms *MongoStorage) User(ctx context.Context, id string) (Document, error) {
	return findDocument(ctx, ms.users, id)
}

// AddUser stores a new user. Emails are not unique, the same email can be
// registered more than once.
func (ms *MongoStorage) AddUser(ctx context.Context, user Document) (*InsertResult, error) {
	return insertDocument(ctx, ms.users, user)
}

// SetUser method overwrites the name and email of the user with the given ID,
// creating the user if it doesn't exist.
func (ms *MongoStorage) SetUser(ctx context.Context, id string, user Document) (*UpdateResult, error) {
	return replaceFields(ctx, ms.users, id, user, UserFields)
}

// UpdateUser method updates only the user fields provided.
func (ms *MongoStorage) UpdateUser(ctx context.Context, id string, user Document) (*UpdateResult, error) {
	return mergeFields(ctx, ms.users, id, user, UserFields)
}

// DelUser method deletes the user from the database.
func (ms *MongoStorage) DelUser(ctx context.Context, id string) (*DeleteResult, error) {
	return deleteDocument(ctx, ms.users, id)
}
