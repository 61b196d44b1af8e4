package apicommon

import (
	"encoding/json"

	"github.com/stakz/checkout-backend/db"
)

// CheckoutRequest is the request to create a checkout session. Numeric
// fields use json.Number so malformed values are detected when parsed, not
// silently zeroed during decoding.
type CheckoutRequest struct {
	ProductTitle string      `json:"product_title"`
	Quantity     json.Number `json:"quantity"`
	TotalPHP     json.Number `json:"total_php"`
	UserID       string      `json:"user_id,omitempty"`
	CreditsUsed  json.Number `json:"credits_used,omitempty"`
	SuccessURL   string      `json:"success_url"`
	CancelURL    string      `json:"cancel_url"`
}

// CheckoutResponse carries the provider redirect URL for a created session.
type CheckoutResponse struct {
	URL string `json:"url"`
}

// ConfirmRequest is the request to confirm a completed checkout session.
type ConfirmRequest struct {
	SessionID string `json:"session_id"`
}

// ConfirmResponse carries the id of the order recorded for a confirmed
// session.
type ConfirmResponse struct {
	OrderID string `json:"order_id"`
}

// UserOrdersResponse wraps the orders placed by a single buyer.
type UserOrdersResponse struct {
	Orders []*db.Order `json:"orders"`
}
