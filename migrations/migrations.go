// Package migrations holds the versioned MongoDB schema changes of the
// coffee backend. Every migration registers itself from an init function
// with Register, and the storage applies the pending ones when it starts.
package migrations

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
)

// Step changes the coffee database in one direction.
type Step func(ctx context.Context, database *mongo.Database) error

// Migration is a versioned schema change. Down must undo what Up did, or be
// a no-op when the change cannot be undone.
type Migration struct {
	Version int
	Name    string
	Up      Step
	Down    Step
}

var (
	registryMu sync.RWMutex
	registry   = map[int]Migration{}
)

// Register adds m to the registry. Migrations are registered at init time,
// so an invalid or duplicated migration panics.
func Register(m Migration) {
	if m.Version <= 0 {
		panic(fmt.Sprintf("migration %q has a non positive version %d", m.Name, m.Version))
	}
	if m.Up == nil || m.Down == nil {
		panic(fmt.Sprintf("migration %d (%s) must define both steps", m.Version, m.Name))
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if prev, ok := registry[m.Version]; ok {
		panic(fmt.Sprintf("migration %d registered twice: %s and %s", m.Version, prev.Name, m.Name))
	}
	registry[m.Version] = m
}

// Unregister removes the migration with the given version, if any.
func Unregister(version int) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, version)
}

// Pending returns the migrations newer than the applied version, oldest
// first.
func Pending(applied int) []Migration {
	registryMu.RLock()
	defer registryMu.RUnlock()
	var pending []Migration
	for version, m := range registry {
		if version > applied {
			pending = append(pending, m)
		}
	}
	slices.SortFunc(pending, func(a, b Migration) int { return a.Version - b.Version })
	return pending
}

// Lookup returns the migration registered with the given version.
func Lookup(version int) (Migration, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	m, ok := registry[version]
	return m, ok
}

// Latest returns the highest registered version, zero when there is none.
func Latest() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	latest := 0
	for version := range registry {
		latest = max(latest, version)
	}
	return latest
}
