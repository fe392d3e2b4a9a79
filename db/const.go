package db

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	// collection names
	CoffeeCollection     = "coffee"
	UsersCollection      = "users"
	ObjectsCollection    = "objects"
	MigrationsCollection = "migrations"

	// DefaultDatabase is the database used when none is configured
	DefaultDatabase = "coffeeDB"

	// defaultTimeout bounds every single storage operation
	defaultTimeout = 10 * time.Second
)

// CoffeeFields lists the attributes of a coffee item that the update
// operations know about. Any other attribute is stored on create but ignored
// on update.
var CoffeeFields = []string{
	"name",
	"quantity",
	"supplier",
	"taste",
	"category",
	"details",
	"photo",
}

// UserFields lists the attributes of a user that the update operations know
// about.
var UserFields = []string{
	"name",
	"email",
}

// emptyFilter matches every document of a collection
var emptyFilter = bson.D{}
