package db

import (
	"context"
	"fmt"
	"os"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/stakz/checkout-backend/test"
)

var testDB *MongoStorage

func TestMain(m *testing.M) {
	ctx := context.Background()
	// start a MongoDB container for testing
	dbContainer, err := test.StartMongoContainer(ctx)
	if err != nil {
		panic(fmt.Sprintf("failed to start MongoDB container: %v", err))
	}

	// get the MongoDB connection string
	mongoURI, err := test.MongoURI(ctx, dbContainer)
	if err != nil {
		panic(fmt.Sprintf("failed to get MongoDB endpoint: %v", err))
	}

	testDB, err = New(mongoURI, test.RandomDatabaseName())
	if err != nil {
		panic(fmt.Sprintf("failed to create new MongoDB connection: %v", err))
	}

	code := m.Run()

	// close the database connection and stop the container
	testDB.Close()
	if err := dbContainer.Terminate(ctx); err != nil {
		panic(fmt.Sprintf("failed to terminate MongoDB container: %v", err))
	}
	os.Exit(code)
}

func resetDB(c *qt.C) {
	c.Assert(testDB.Reset(), qt.IsNil)
}
