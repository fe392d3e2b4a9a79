package db

import "context"

// Database describes the operations the HTTP layer needs from the storage.
type Database interface {
	// basic db management operations
	Close()
	Reset() error
	Export(context.Context) ([]byte, error)
	Import(context.Context, []byte) error
	// coffee methods
	Coffees(context.Context) ([]Document, error)
	Coffee(context.Context, string) (Document, error)
	AddCoffee(context.Context, Document) (*InsertResult, error)
	SetCoffee(context.Context, string, Document) (*UpdateResult, error)
	UpdateCoffee(context.Context, string, Document) (*UpdateResult, error)
	DelCoffee(context.Context, string) (*DeleteResult, error)
	// user methods
	Users(context.Context) ([]Document, error)
	User(context.Context, string) (Document, error)
	AddUser(context.Context, Document) (*InsertResult, error)
	SetUser(context.Context, string, Document) (*UpdateResult, error)
	UpdateUser(context.Context, string, Document) (*UpdateResult, error)
	DelUser(context.Context, string) (*DeleteResult, error)
	// object methods
	Object(context.Context, string) (*Object, error)
	SetObject(ctx context.Context, objectID, contentType string, data []byte) error
	RemoveObject(context.Context, string) error
}

var _ Database = (*MongoStorage)(nil)
