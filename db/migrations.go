package db

import (
	"context"
	"fmt"
	"time"

	"github.com/vocdoni/coffee-backend/migrations"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.vocdoni.io/dvote/log"
)

// MigrationRecord represents a migration record stored in MongoDB
type MigrationRecord struct {
	Version   int       `bson:"version"`
	AppliedAt time.Time `bson:"applied_at"`
}

// RunMigrationsUp executes all pending database migrations
func (ms *MongoStorage) RunMigrationsUp() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	lastMigration, err := lastAppliedMigration(ctx, ms.migrations)
	if err != nil {
		return fmt.Errorf("failed to get last applied migration: %w", err)
	}

	pending := migrations.Pending(lastMigration)
	if len(pending) == 0 {
		log.Infow("database is up-to-date, no need to migrate", "lastAppliedMigration", lastMigration)
		return nil
	}

	log.Infow("starting database migrations", "pendingMigrations", len(pending), "lastAppliedMigration", lastMigration)
	for _, migration := range pending {
		log.Infow("applying migration", "version", migration.Version, "name", migration.Name)
		if err := migration.Up(ctx, ms.DBClient.Database(ms.database)); err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
		}
		record := MigrationRecord{
			Version:   migration.Version,
			AppliedAt: time.Now(),
		}
		if _, err := ms.migrations.InsertOne(ctx, record); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
	}
	log.Infow("database migrations completed successfully")
	return nil
}

// RunMigrationsDown rolls back the last steps database migrations. A non
// positive number of steps rolls back every applied migration.
func (ms *MongoStorage) RunMigrationsDown(steps int) error {
	log.Infow("rolling back database migrations", "steps", steps)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	applied, err := appliedMigrations(ctx, ms.migrations)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}
	if steps <= 0 || steps > len(applied) {
		steps = len(applied)
	}

	for _, record := range applied[:steps] {
		migration, exists := migrations.Lookup(record.Version)
		if !exists {
			return fmt.Errorf("migration %d not found in registry", record.Version)
		}
		log.Infow("rolling back migration", "version", migration.Version, "name", migration.Name)
		if err := migration.Down(ctx, ms.DBClient.Database(ms.database)); err != nil {
			return fmt.Errorf("failed to rollback migration %d (%s): %w", migration.Version, migration.Name, err)
		}
		if _, err := ms.migrations.DeleteOne(ctx, bson.M{"version": record.Version}); err != nil {
			return fmt.Errorf("failed to remove migration record %d: %w", record.Version, err)
		}
	}
	log.Infow("database migration rollback completed successfully")
	return nil
}

// lastAppliedMigration returns the last applied migration version, zero if
// none was applied yet.
func lastAppliedMigration(ctx context.Context, collection *mongo.Collection) (int, error) {
	migs, err := appliedMigrations(ctx, collection)
	if err != nil {
		return 0, err
	}
	if len(migs) == 0 {
		return 0, nil
	}
	return migs[0].Version, nil
}

// appliedMigrations returns applied migration records in descending order.
func appliedMigrations(ctx context.Context, collection *mongo.Collection) ([]MigrationRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "version", Value: -1}})
	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			log.Warnw("error closing cursor", "error", err)
		}
	}()

	var migs []MigrationRecord
	if err = cursor.All(ctx, &migs); err != nil {
		return nil, fmt.Errorf("failed to decode migrations: %w", err)
	}
	return migs, cursor.Err()
}
