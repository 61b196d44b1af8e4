package stripe

import (
	"errors"
	"net/http"
	"strconv"

	stripeapi "github.com/stripe/stripe-go/v82"
	stripecheckoutsession "github.com/stripe/stripe-go/v82/checkout/session"
)

const currency = "php"

// Client wraps the Stripe API client. It implements SessionProvider.
type Client struct {
	config *Config
}

// NewClient creates a new Stripe client with the given configuration
func NewClient(config *Config) *Client {
	stripeapi.Key = config.APIKey
	return &Client{config: config}
}

// CheckoutSessionParams holds parameters for creating a checkout session.
// Amounts are already reconciled: UnitAmount × Quantity is the exact total
// the provider will charge.
type CheckoutSessionParams struct {
	ProductTitle string
	UnitAmount   int64
	Quantity     int64
	SuccessURL   string
	CancelURL    string
	Metadata     map[string]string
}

// CheckoutSession is the subset of a provider checkout session the service
// cares about: where to redirect the buyer, whether the payment completed,
// and the metadata echoed back at confirmation time.
type CheckoutSession struct {
	ID       string
	URL      string
	Paid     bool
	Metadata map[string]string
}

// CreateCheckoutSession creates a new checkout session in payment mode with a
// single ad-hoc line item carrying the reconciled unit price.
// Overview of stripe checkout mechanics: https://docs.stripe.com/checkout/custom/quickstart
// API description https://docs.stripe.com/api/checkout/sessions
func (*Client) CreateCheckoutSession(params *CheckoutSessionParams) (*CheckoutSession, error) {
	priceData := &stripeapi.CheckoutSessionLineItemPriceDataParams{
		Currency: stripeapi.String(currency),
		ProductData: &stripeapi.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripeapi.String(params.ProductTitle),
		},
		UnitAmount: stripeapi.Int64(params.UnitAmount),
	}
	if params.Quantity > 1 {
		priceData.ProductData.Description = stripeapi.String("Quantity: " + strconv.FormatInt(params.Quantity, 10))
	}

	checkoutParams := &stripeapi.CheckoutSessionParams{
		// One-off payment mode, the buyer is redirected to the provider page
		Mode:       stripeapi.String(string(stripeapi.CheckoutSessionModePayment)),
		SuccessURL: stripeapi.String(params.SuccessURL),
		CancelURL:  stripeapi.String(params.CancelURL),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{
			{
				PriceData: priceData,
				Quantity:  stripeapi.Int64(params.Quantity),
			},
		},
	}
	for k, v := range params.Metadata {
		checkoutParams.AddMetadata(k, v)
	}

	session, err := stripecheckoutsession.New(checkoutParams)
	if err != nil {
		return nil, ErrAPICallFailed.WithErr(err)
	}

	return &CheckoutSession{
		ID:       session.ID,
		URL:      session.URL,
		Paid:     session.PaymentStatus == stripeapi.CheckoutSessionPaymentStatusPaid,
		Metadata: session.Metadata,
	}, nil
}

// GetCheckoutSession retrieves a checkout session by ID
func (*Client) GetCheckoutSession(sessionID string) (*CheckoutSession, error) {
	params := &stripeapi.CheckoutSessionParams{}
	params.AddExpand("line_items")

	session, err := stripecheckoutsession.Get(sessionID, params)
	if err != nil {
		var apiErr *stripeapi.Error
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusNotFound {
			return nil, ErrSessionNotFound.WithErr(err)
		}
		return nil, ErrAPICallFailed.WithErr(err)
	}

	return &CheckoutSession{
		ID:       session.ID,
		URL:      session.URL,
		Paid:     session.PaymentStatus == stripeapi.CheckoutSessionPaymentStatusPaid,
		Metadata: session.Metadata,
	}, nil
}
