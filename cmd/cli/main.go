// Package main provides a CLI tool to back up and restore the coffee and
// users collections. It supports two commands:
//  1. export: writes every coffee and user document as JSON
//  2. import: upserts the documents of a previous export
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/vocdoni/coffee-backend/db"
	"go.vocdoni.io/dvote/log"
)

const cmdTimeout = 5 * time.Minute

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <export|import>\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	// define command-line flags
	flag.StringP("mongo-url", "m", "", "MongoDB connection URL (required)")
	flag.StringP("mongo-db", "d", db.DefaultDatabase, "MongoDB database name")
	flag.StringP("file", "f", "-", "file to export to or import from, - for stdout/stdin")
	flag.Usage = usage
	flag.Parse()

	// initialize viper for environment variable support
	if err := viper.BindPFlags(flag.CommandLine); err != nil {
		log.Fatalf("could not bind flags: %v", err)
	}
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	mongoURL := viper.GetString("mongo-url")
	mongoDB := viper.GetString("mongo-db")
	file := viper.GetString("file")
	// logs go to stderr, stdout may hold the export
	log.Init("info", "stderr", nil)

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	if mongoURL == "" {
		log.Fatal("mongo-url is required")
	}

	database, err := db.New(&db.Options{MongoURL: mongoURL, Database: mongoDB})
	if err != nil {
		log.Fatalf("could not connect to MongoDB: %v", err)
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
	defer cancel()
	switch cmd := flag.Arg(0); cmd {
	case "export":
		err = exportDataset(ctx, database, file)
	case "import":
		err = importDataset(ctx, database, file)
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		log.Errorw(err, "command failed")
		// deferred calls do not run on os.Exit
		database.Close()
		os.Exit(1)
	}
}

// exportDataset writes the dataset of database to path.
func exportDataset(ctx context.Context, database db.Database, path string) error {
	data, err := database.Export(ctx)
	if err != nil {
		return fmt.Errorf("could not export: %w", err)
	}
	if path == "-" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("could not write %s: %w", path, err)
	}
	log.Infow("dataset exported", "file", path, "bytes", len(data))
	return nil
}

// importDataset reads a dataset from path and upserts it into database.
func importDataset(ctx context.Context, database db.Database, path string) error {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("could not read dataset: %w", err)
	}
	if err := database.Import(ctx, data); err != nil {
		return fmt.Errorf("could not import: %w", err)
	}
	log.Infow("dataset imported", "file", path)
	return nil
}
