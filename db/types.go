package db

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is a schema-less record of the coffee or users collections. The
// storage assigns its "_id" on insert; every other attribute is passed
// through as provided.
type Document = bson.M

// InsertResult is the acknowledgment returned after inserting a document.
type InsertResult struct {
	Acknowledged bool               `json:"acknowledged"`
	InsertedID   primitive.ObjectID `json:"insertedId"`
}

// UpdateResult is the acknowledgment returned after updating a document.
// UpsertedID is only set when the update created a new document.
type UpdateResult struct {
	Acknowledged  bool                `json:"acknowledged"`
	MatchedCount  int64               `json:"matchedCount"`
	ModifiedCount int64               `json:"modifiedCount"`
	UpsertedCount int64               `json:"upsertedCount"`
	UpsertedID    *primitive.ObjectID `json:"upsertedId"`
}

// DeleteResult is the acknowledgment returned after deleting a document.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Object is a binary blob (a coffee photo) stored in the database.
type Object struct {
	ID          string    `json:"id" bson:"_id"`
	Data        []byte    `json:"data" bson:"data"`
	ContentType string    `json:"contentType" bson:"contentType"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// Dataset is the document produced by Export and consumed by Import.
type Dataset struct {
	Coffee []Document `json:"coffee" bson:"coffee"`
	Users  []Document `json:"users" bson:"users"`
}
