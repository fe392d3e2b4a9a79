package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.vocdoni.io/dvote/log"
)

// MongoStorage uses an external MongoDB service for storing the coffee items,
// the users and the uploaded objects. It is created once at startup and
// shared by every handler; the underlying driver pool is safe for concurrent
// use.
type MongoStorage struct {
	DBClient *mongo.Client
	database string

	coffee     *mongo.Collection
	users      *mongo.Collection
	objects    *mongo.Collection
	migrations *mongo.Collection
}

// Options defines the connection parameters of the MongoDB storage.
type Options struct {
	MongoURL string
	Database string
	// StableAPI pins the connection to the MongoDB Stable API v1 in strict
	// mode, reporting deprecated commands as errors.
	StableAPI bool
}

// New connects to the MongoDB server described by the options provided,
// initializes the collections and applies the pending migrations. A failed
// ping is reported but does not prevent the storage from being returned: the
// migrations are skipped and the driver keeps trying to reach the server on
// every operation.
func New(opts *Options) (*MongoStorage, error) {
	if opts == nil || opts.MongoURL == "" {
		return nil, fmt.Errorf("mongo URL is not defined")
	}
	if opts.Database == "" {
		return nil, fmt.Errorf("mongo database is not defined")
	}
	log.Infow("connecting to mongodb", "database", opts.Database, "stableAPI", opts.StableAPI)
	// preparing connection
	clientOpts := options.Client()
	clientOpts.ApplyURI(opts.MongoURL)
	clientOpts.SetMaxConnecting(200)
	// decode nested documents as maps so they render as JSON objects
	clientOpts.SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	if opts.StableAPI {
		clientOpts.SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1).
			SetStrict(true).
			SetDeprecationErrors(true))
	}
	timeout := time.Second * 10
	clientOpts.ConnectTimeout = &timeout
	// create a new client with the connection options
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to mongodb: %w", err)
	}
	// check if the server is reachable
	ctx, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	reachable := true
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Warnw("mongodb ping failed, the server may not be reachable yet", "error", err)
		reachable = false
	} else {
		log.Infow("pinged mongodb deployment, connection successful", "database", opts.Database)
	}
	ms := &MongoStorage{
		DBClient: client,
		database: opts.Database,
	}
	if err := ms.initCollections(); err != nil {
		ms.Close()
		return nil, err
	}
	if !reachable {
		log.Warnw("skipping database migrations until the next start")
		return ms, nil
	}
	if err := ms.RunMigrationsUp(); err != nil {
		ms.Close()
		return nil, err
	}
	// if reset flag is enabled, Reset drops the documents of every data
	// collection
	if reset := os.Getenv("COFFEE_MONGO_RESET_DB"); reset != "" {
		if err := ms.Reset(); err != nil {
			ms.Close()
			return nil, err
		}
	}
	return ms, nil
}

// Close disconnects the client from the server.
func (ms *MongoStorage) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := ms.DBClient.Disconnect(ctx); err != nil {
		log.Warn(err)
	}
}

// Reset removes every document from the coffee, users and objects
// collections. Indexes and migration records are kept.
func (ms *MongoStorage) Reset() error {
	log.Infof("resetting database")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, c := range []*mongo.Collection{ms.coffee, ms.users, ms.objects} {
		if _, err := c.DeleteMany(ctx, emptyFilter); err != nil {
			return fmt.Errorf("cannot reset collection %s: %w", c.Name(), err)
		}
	}
	return nil
}
