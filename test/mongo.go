// Package test provides testing utilities for the coffee backend, mainly a
// disposable MongoDB server running in a container.
package test

import (
	"context"
	"fmt"
	"strings"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// MongoImage is the MongoDB image used by the tests.
	MongoImage = "mongo:7"
	// MongoPort is the port the MongoDB server listens on inside the container.
	MongoPort = 27017
)

// StartMongoContainer starts a standalone MongoDB container and waits until
// it accepts connections. Use Endpoint(ctx, "mongodb") on the returned
// container to get the connection URI.
func StartMongoContainer(ctx context.Context) (testcontainers.Container, error) {
	exposedPort := fmt.Sprintf("%d/tcp", MongoPort)
	return testcontainers.GenericContainer(ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        MongoImage,
				ExposedPorts: []string{exposedPort},
				WaitingFor: wait.ForAll(
					wait.ForLog("Waiting for connections"),
					wait.ForListeningPort(nat.Port(exposedPort)),
				),
			},
			Started: true,
		})
}

// RandomDatabaseName returns a unique database name, so tests sharing a
// container don't see each other's documents.
func RandomDatabaseName() string {
	return "coffee-test-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}
