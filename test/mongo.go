// Package test provides helpers to spin up the external services the
// integration tests depend on.
package test

import (
	"context"
	"fmt"

	"github.com/docker/go-connections/nat"
	"github.com/stakz/checkout-backend/internal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const mongoPort = 27017

// StartMongoContainer starts a disposable MongoDB container for testing.
func StartMongoContainer(ctx context.Context) (testcontainers.Container, error) {
	exposedPort := fmt.Sprintf("%d/tcp", mongoPort)
	return testcontainers.GenericContainer(ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "mongo:7",
				ExposedPorts: []string{exposedPort},
				WaitingFor: wait.ForAll(
					wait.ForLog("Waiting for connections"),
					wait.ForListeningPort(nat.Port(exposedPort)),
				),
			},
			Started: true,
		})
}

// MongoURI returns the connection string for a running MongoDB container.
func MongoURI(ctx context.Context, container testcontainers.Container) (string, error) {
	host, err := container.Host(ctx)
	if err != nil {
		return "", err
	}
	port, err := container.MappedPort(ctx, nat.Port(fmt.Sprintf("%d/tcp", mongoPort)))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("mongodb://%s:%s", host, port.Port()), nil
}

// RandomDatabaseName returns a unique database name so parallel test
// packages don't step on each other.
func RandomDatabaseName() string {
	return "testdb_" + fmt.Sprintf("%x", internal.RandomBytes(8))
}
