package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"
	"github.com/vocdoni/coffee-backend/api"
	"github.com/vocdoni/coffee-backend/db"
	"github.com/vocdoni/coffee-backend/objectstorage"
	"go.vocdoni.io/dvote/log"
)

func main() {
	log.Init("info", "stdout", nil)
	if err := loadDotEnv(".env"); err != nil {
		log.Fatal(err)
	}
	// read the configuration, missing credentials stop the service before
	// connecting to the database or listening
	conf, err := loadConfig(newFlagSet(), viper.New(), os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	log.Init(conf.LogLevel, "stdout", nil)
	mongoURI, err := conf.mongoURI()
	if err != nil {
		log.Fatal(err)
	}
	// initialize the MongoDB database
	database, err := db.New(&db.Options{
		MongoURL:  mongoURI,
		Database:  conf.MongoDB,
		StableAPI: conf.StableAPI,
	})
	if err != nil {
		log.Fatalf("could not create the MongoDB database: %v", err)
	}
	defer database.Close()
	// coffee photos storage
	storage, err := objectstorage.New(&objectstorage.Config{
		DB:        database,
		ServerURL: conf.ServerURL,
	})
	if err != nil {
		log.Fatalf("could not create the object storage: %v", err)
	}
	// create the local API server
	api.New(&api.Config{
		Host:          conf.Host,
		Port:          conf.Port,
		DB:            database,
		ObjectStorage: storage,
	}).Start()
	// wait forever, as the server is running in a goroutine
	log.Infow("server started", "host", conf.Host, "port", conf.Port, "database", conf.MongoDB)
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	log.Infow("shutting down")
}
