package db

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// InsertOrder method creates the order in the database. The insert is a
// single document write, so a failure leaves nothing behind. Orders are
// never updated through this method; an existing ID is an error.
func (ms *MongoStorage) InsertOrder(order *Order) error {
	if order == nil || order.ID == "" {
		return ErrInvalidData
	}
	ms.keysLock.Lock()
	defer ms.keysLock.Unlock()
	// create a context with a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	if order.AccountsData == nil {
		order.AccountsData = []OrderAccount{}
	}
	if _, err := ms.orders.InsertOne(ctx, order); err != nil {
		return err
	}
	return nil
}

// Order method returns the order with the given ID. If the order doesn't
// exist, it returns the specific error.
func (ms *MongoStorage) Order(orderID string) (*Order, error) {
	ms.keysLock.RLock()
	defer ms.keysLock.RUnlock()
	// create a context with a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// find the order in the database
	order := &Order{}
	if err := ms.orders.FindOne(ctx, bson.M{"_id": orderID}).Decode(order); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// OrderByRefNumber method returns the order with the given reference number,
// which traces back to the provider checkout session.
func (ms *MongoStorage) OrderByRefNumber(refNumber string) (*Order, error) {
	ms.keysLock.RLock()
	defer ms.keysLock.RUnlock()
	// create a context with a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	order := &Order{}
	if err := ms.orders.FindOne(ctx, bson.M{"refNumber": refNumber}).Decode(order); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// OrdersByUser method returns all orders placed by the given buyer.
func (ms *MongoStorage) OrdersByUser(userID string) ([]*Order, error) {
	ms.keysLock.RLock()
	defer ms.keysLock.RUnlock()
	// create a context with a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	cursor, err := ms.orders.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to close orders cursor")
		}
	}()

	// iterate over the cursor and decode each order
	var orders []*Order
	for cursor.Next(ctx) {
		order := &Order{}
		if err := cursor.Decode(order); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
