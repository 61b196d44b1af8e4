// Package stripe provides integration with the Stripe payment service:
// creating checkout sessions for purchases and confirming completed
// sessions into stored orders.
package stripe

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/stakz/checkout-backend/db"
	"github.com/stakz/checkout-backend/errors"
	"github.com/stakz/checkout-backend/internal"
)

// SessionProvider abstracts the payment provider so the service can be
// tested against a double. The Stripe Client is the production
// implementation.
type SessionProvider interface {
	CreateCheckoutSession(params *CheckoutSessionParams) (*CheckoutSession, error)
	GetCheckoutSession(sessionID string) (*CheckoutSession, error)
}

// OrderStore abstracts order persistence. db.MongoStorage is the production
// implementation.
type OrderStore interface {
	InsertOrder(order *db.Order) error
}

// Service provides the main business logic for checkout and order
// confirmation.
type Service struct {
	provider SessionProvider
	store    OrderStore
}

// NewService creates a new Stripe service
func NewService(provider SessionProvider, store OrderStore) (*Service, error) {
	if provider == nil {
		return nil, fmt.Errorf("session provider is required")
	}
	if store == nil {
		return nil, fmt.Errorf("order store is required")
	}
	return &Service{provider: provider, store: store}, nil
}

// CheckoutRequest carries the validated fields of a session creation
// request. Quantity and TotalPHP are still raw values; reconciliation
// happens inside CreateCheckout.
type CheckoutRequest struct {
	ProductTitle string
	Quantity     float64
	TotalPHP     float64
	UserID       string
	CreditsUsed  float64
	SuccessURL   string
	CancelURL    string
}

// CreateCheckout reconciles the requested amount, creates a provider
// checkout session carrying the reconciled values in its metadata, and
// returns the provider redirect URL. The metadata always reflects what will
// actually be charged, not what was requested, so confirmation never
// overstates the order.
func (s *Service) CreateCheckout(req *CheckoutRequest) (string, error) {
	rec, err := Reconcile(req.TotalPHP, req.Quantity)
	if err != nil {
		return "", errors.ErrInvalidAmount
	}

	session, err := s.provider.CreateCheckoutSession(&CheckoutSessionParams{
		ProductTitle: req.ProductTitle,
		UnitAmount:   rec.UnitAmount,
		Quantity:     rec.Quantity,
		SuccessURL:   req.SuccessURL,
		CancelURL:    req.CancelURL,
		Metadata: map[string]string{
			"product_title": req.ProductTitle,
			"quantity":      strconv.FormatInt(rec.Quantity, 10),
			"total_php":     strconv.FormatFloat(rec.TotalMajor, 'f', -1, 64),
			"user_id":       req.UserID,
			"credits_used":  strconv.FormatFloat(req.CreditsUsed, 'f', -1, 64),
		},
	})
	if err != nil {
		return "", errors.ErrStripeError.WithErr(err)
	}

	log.Info().
		Str("session", session.ID).
		Int64("unitAmount", rec.UnitAmount).
		Int64("quantity", rec.Quantity).
		Int64("total", rec.Total).
		Msg("checkout session created")
	return session.URL, nil
}

// ConfirmationState tags the outcome of confirming a checkout session.
// A confirmation starts Pending, becomes Verified once the provider
// reports the payment complete, and ends in exactly one of the terminal
// states Recorded, Rejected or Failed.
type ConfirmationState int

const (
	ConfirmationPending ConfirmationState = iota
	ConfirmationVerified
	ConfirmationRecorded
	ConfirmationRejected
	ConfirmationFailed
)

func (st ConfirmationState) String() string {
	switch st {
	case ConfirmationPending:
		return "pending"
	case ConfirmationVerified:
		return "verified"
	case ConfirmationRecorded:
		return "recorded"
	case ConfirmationRejected:
		return "rejected"
	case ConfirmationFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Confirmation is the terminal result of confirming a checkout session.
// OrderID is set only when State is ConfirmationRecorded; Err carries the
// error to report when State is ConfirmationRejected or ConfirmationFailed.
type Confirmation struct {
	State   ConfirmationState
	OrderID string
	Err     errors.Error
}

// ConfirmOrder fetches the checkout session from the provider, verifies the
// payment completed, and persists a new order built from the session
// metadata. Nothing is persisted unless the payment is complete, and no
// order id is returned unless the insert succeeded.
func (s *Service) ConfirmOrder(sessionID string) Confirmation {
	// Pending -> Verified requires the provider to report the payment done
	session, err := s.provider.GetCheckoutSession(sessionID)
	if err != nil {
		return Confirmation{State: ConfirmationFailed, Err: errors.ErrStripeError.WithErr(err)}
	}
	if !session.Paid {
		return Confirmation{State: ConfirmationRejected, Err: errors.ErrPaymentNotCompleted}
	}

	// Verified -> Recorded persists the order; the insert is all-or-nothing
	order := orderFromSession(session)
	if err := s.store.InsertOrder(order); err != nil {
		return Confirmation{State: ConfirmationFailed, Err: errors.ErrOrderStoreFailed.WithErr(err)}
	}

	log.Info().
		Str("orderId", order.ID).
		Str("session", session.ID).
		Msg("order recorded")
	return Confirmation{State: ConfirmationRecorded, OrderID: order.ID}
}

// orderFromSession builds the order record from the session metadata. The
// metadata was written by CreateCheckout, but it crosses the provider
// boundary as strings, so numeric fields are parsed defensively.
func orderFromSession(session *CheckoutSession) *db.Order {
	meta := session.Metadata
	title := meta["product_title"]
	if title == "" {
		title = "Order"
	}
	return &db.Order{
		ID:           internal.RandomOrderID(),
		ProductTitle: title,
		Quantity:     parseQuantity(meta["quantity"]),
		Total:        parseAmount(meta["total_php"]),
		RefNumber:    internal.OrderReference(session.ID),
		CreditsUsed:  parseAmount(meta["credits_used"]),
		Status:       db.OrderStatusProcessing,
		AccountsData: []db.OrderAccount{},
		UserID:       meta["user_id"],
	}
}

func parseQuantity(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func parseAmount(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
