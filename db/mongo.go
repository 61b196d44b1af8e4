package db

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoStorage uses an external MongoDB service for storing the orders
// created from confirmed checkout sessions.
type MongoStorage struct {
	client   *mongo.Client
	keysLock sync.RWMutex

	orders *mongo.Collection
}

// New connects to the MongoDB server and initializes the collections and
// indexes. The url must carry any required credentials.
func New(url, database string) (*MongoStorage, error) {
	ms := &MongoStorage{}
	if url == "" {
		return nil, fmt.Errorf("mongo URL is not defined")
	}
	if database == "" {
		return nil, fmt.Errorf("mongo database is not defined")
	}
	log.Info().Str("database", database).Msg("connecting to mongodb")
	// preparing connection
	opts := options.Client()
	opts.ApplyURI(url)
	opts.SetMaxConnecting(200)
	timeout := time.Second * 10
	opts.ConnectTimeout = &timeout
	// create a new client with the connection options
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to mongodb: %w", err)
	}
	// check if the connection is successful
	ctx, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("cannot connect to mongodb: %w", err)
	}
	// init the collections
	ms.client = client
	ms.orders = client.Database(database).Collection("orders")
	// if reset flag is enabled, Reset drops the database documents and
	// recreates indexes, else just createIndexes
	if reset := os.Getenv("STKZ_MONGO_RESET_DB"); reset != "" {
		if err := ms.Reset(); err != nil {
			return nil, err
		}
	} else {
		if err := ms.createIndexes(); err != nil {
			return nil, err
		}
	}
	return ms, nil
}

func (ms *MongoStorage) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := ms.client.Disconnect(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to disconnect from mongodb")
	}
}

// Reset drops the orders collection and recreates the indexes.
func (ms *MongoStorage) Reset() error {
	log.Info().Msg("resetting database")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := ms.orders.Drop(ctx); err != nil {
		return err
	}
	return ms.createIndexes()
}

func (ms *MongoStorage) createIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// index to list the orders of a given buyer
	userIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	}
	if _, err := ms.orders.Indexes().CreateOne(ctx, userIndex); err != nil {
		return fmt.Errorf("failed to create index on orders userId: %w", err)
	}
	// index to trace an order back to its provider session
	refIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "refNumber", Value: 1}},
	}
	if _, err := ms.orders.Indexes().CreateOne(ctx, refIndex); err != nil {
		return fmt.Errorf("failed to create index on orders refNumber: %w", err)
	}
	return nil
}
