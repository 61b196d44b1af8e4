package db

import (
	"time"
)

// OrderStatus represents the lifecycle state of a stored order. Orders are
// created as Processing; later states are managed by fulfillment, outside
// this service.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusCompleted  OrderStatus = "Completed"
	OrderStatusRefunded   OrderStatus = "Refunded"
)

// Order is the durable record created once a checkout session is confirmed
// as paid. It is append-only at creation time: this service never updates
// an order after inserting it.
type Order struct {
	ID            string         `json:"id" bson:"_id"`
	ProductTitle  string         `json:"productTitle" bson:"productTitle"`
	Quantity      int64          `json:"quantity" bson:"quantity"`
	Total         float64        `json:"total" bson:"total"`
	RefNumber     string         `json:"refNumber" bson:"refNumber"`
	CreditsUsed   float64        `json:"creditsUsed" bson:"creditsUsed"`
	Status        OrderStatus    `json:"status" bson:"status"`
	AccountsData  []OrderAccount `json:"accountsData" bson:"accountsData"`
	RefundRequest *OrderRefund   `json:"refundRequest,omitempty" bson:"refundRequest,omitempty"`
	UserID        string         `json:"userId,omitempty" bson:"userId,omitempty"`
	CreatedAt     time.Time      `json:"createdAt" bson:"createdAt"`
}

// OrderAccount holds the credentials attached to an order once it is
// fulfilled. Always empty at creation.
type OrderAccount struct {
	Email    string `json:"email" bson:"email"`
	Password string `json:"password" bson:"password"`
}

// OrderRefund holds a buyer's refund request for an order. Always absent at
// creation.
type OrderRefund struct {
	Reason      string    `json:"reason" bson:"reason"`
	RequestedAt time.Time `json:"requestedAt" bson:"requestedAt"`
}
