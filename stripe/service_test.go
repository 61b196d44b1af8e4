package stripe

import (
	"fmt"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/stakz/checkout-backend/db"
	"github.com/stakz/checkout-backend/errors"
	"github.com/stakz/checkout-backend/internal"
)

type fakeProvider struct {
	created   *CheckoutSessionParams
	session   *CheckoutSession
	createErr error
	getErr    error
}

func (f *fakeProvider) CreateCheckoutSession(params *CheckoutSessionParams) (*CheckoutSession, error) {
	f.created = params
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.com/pay/cs_test_1"}, nil
}

func (f *fakeProvider) GetCheckoutSession(string) (*CheckoutSession, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.session, nil
}

type fakeStore struct {
	inserted []*db.Order
	err      error
}

func (f *fakeStore) InsertOrder(order *db.Order) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, order)
	return nil
}

func newTestService(t *testing.T, provider *fakeProvider, store *fakeStore) *Service {
	t.Helper()
	svc, err := NewService(provider, store)
	qt.Assert(t, err, qt.IsNil)
	return svc
}

func apiErrCode(c *qt.C, err error) int {
	apiErr, ok := err.(errors.Error)
	c.Assert(ok, qt.IsTrue, qt.Commentf("expected errors.Error, got %T: %v", err, err))
	return apiErr.Code
}

func TestCreateCheckoutCarriesReconciledValues(t *testing.T) {
	c := qt.New(t)
	provider := &fakeProvider{}
	svc := newTestService(t, provider, &fakeStore{})

	url, err := svc.CreateCheckout(&CheckoutRequest{
		ProductTitle: "Starter Bundle",
		Quantity:     3,
		TotalPHP:     100,
		UserID:       "user-1",
		CreditsUsed:  5,
		SuccessURL:   "https://shop.example/success",
		CancelURL:    "https://shop.example/cancel",
	})
	c.Assert(err, qt.IsNil)
	c.Assert(url, qt.Equals, "https://checkout.stripe.com/pay/cs_test_1")

	// the provider is asked for the reconciled unit price, not the raw total
	c.Assert(provider.created.UnitAmount, qt.Equals, int64(33))
	c.Assert(provider.created.Quantity, qt.Equals, int64(3))
	c.Assert(provider.created.SuccessURL, qt.Equals, "https://shop.example/success")
	c.Assert(provider.created.CancelURL, qt.Equals, "https://shop.example/cancel")

	// the metadata records what will actually be charged
	meta := provider.created.Metadata
	c.Assert(meta["product_title"], qt.Equals, "Starter Bundle")
	c.Assert(meta["quantity"], qt.Equals, "3")
	c.Assert(meta["total_php"], qt.Equals, "99")
	c.Assert(meta["user_id"], qt.Equals, "user-1")
	c.Assert(meta["credits_used"], qt.Equals, "5")
}

func TestCreateCheckoutInvalidAmount(t *testing.T) {
	c := qt.New(t)
	provider := &fakeProvider{}
	svc := newTestService(t, provider, &fakeStore{})

	_, err := svc.CreateCheckout(&CheckoutRequest{
		ProductTitle: "Starter Bundle",
		Quantity:     1,
		TotalPHP:     0,
		SuccessURL:   "https://shop.example/success",
		CancelURL:    "https://shop.example/cancel",
	})
	c.Assert(apiErrCode(c, err), qt.Equals, errors.ErrInvalidAmount.Code)
	// the provider is never contacted with an invalid amount
	c.Assert(provider.created, qt.IsNil)
}

func TestCreateCheckoutProviderFailure(t *testing.T) {
	c := qt.New(t)
	provider := &fakeProvider{createErr: fmt.Errorf("stripe is down")}
	svc := newTestService(t, provider, &fakeStore{})

	_, err := svc.CreateCheckout(&CheckoutRequest{
		ProductTitle: "Starter Bundle",
		Quantity:     1,
		TotalPHP:     100,
		SuccessURL:   "https://shop.example/success",
		CancelURL:    "https://shop.example/cancel",
	})
	c.Assert(apiErrCode(c, err), qt.Equals, errors.ErrStripeError.Code)
}

func TestConfirmOrderRecorded(t *testing.T) {
	c := qt.New(t)
	store := &fakeStore{}
	svc := newTestService(t, &fakeProvider{session: &CheckoutSession{
		ID:   "cs_test_paid",
		Paid: true,
		Metadata: map[string]string{
			"product_title": "Starter Bundle",
			"quantity":      "2",
			"total_php":     "50",
			"user_id":       "user-1",
			"credits_used":  "5",
		},
	}}, store)

	res := svc.ConfirmOrder("cs_test_paid")
	c.Assert(res.State, qt.Equals, ConfirmationRecorded)
	c.Assert(strings.HasPrefix(res.OrderID, internal.OrderIDPrefix), qt.IsTrue)

	c.Assert(store.inserted, qt.HasLen, 1)
	order := store.inserted[0]
	c.Assert(order.ID, qt.Equals, res.OrderID)
	c.Assert(order.ProductTitle, qt.Equals, "Starter Bundle")
	c.Assert(order.Quantity, qt.Equals, int64(2))
	c.Assert(order.Total, qt.Equals, float64(50))
	c.Assert(order.CreditsUsed, qt.Equals, float64(5))
	c.Assert(order.RefNumber, qt.Equals, "STRIPE-cs_test_paid")
	c.Assert(order.Status, qt.Equals, db.OrderStatusProcessing)
	c.Assert(order.AccountsData, qt.HasLen, 0)
	c.Assert(order.RefundRequest, qt.IsNil)
	c.Assert(order.UserID, qt.Equals, "user-1")
}

func TestConfirmOrderRejectedWhenUnpaid(t *testing.T) {
	c := qt.New(t)
	store := &fakeStore{}
	svc := newTestService(t, &fakeProvider{session: &CheckoutSession{
		ID:   "cs_test_unpaid",
		Paid: false,
	}}, store)

	res := svc.ConfirmOrder("cs_test_unpaid")
	c.Assert(res.State, qt.Equals, ConfirmationRejected)
	c.Assert(res.OrderID, qt.Equals, "")
	c.Assert(res.Err.Code, qt.Equals, errors.ErrPaymentNotCompleted.Code)
	// nothing is persisted for an unpaid session
	c.Assert(store.inserted, qt.HasLen, 0)
}

func TestConfirmOrderFailedOnProviderError(t *testing.T) {
	c := qt.New(t)
	store := &fakeStore{}
	svc := newTestService(t, &fakeProvider{getErr: fmt.Errorf("stripe is down")}, store)

	res := svc.ConfirmOrder("cs_test_gone")
	c.Assert(res.State, qt.Equals, ConfirmationFailed)
	c.Assert(res.Err.Code, qt.Equals, errors.ErrStripeError.Code)
	c.Assert(store.inserted, qt.HasLen, 0)
}

func TestConfirmOrderFailedOnStoreError(t *testing.T) {
	c := qt.New(t)
	store := &fakeStore{err: fmt.Errorf("insert failed")}
	svc := newTestService(t, &fakeProvider{session: &CheckoutSession{
		ID:       "cs_test_paid",
		Paid:     true,
		Metadata: map[string]string{"quantity": "1", "total_php": "10"},
	}}, store)

	res := svc.ConfirmOrder("cs_test_paid")
	c.Assert(res.State, qt.Equals, ConfirmationFailed)
	// no candidate order id leaks to the caller
	c.Assert(res.OrderID, qt.Equals, "")
	c.Assert(res.Err.Code, qt.Equals, errors.ErrOrderStoreFailed.Code)
}

func TestConfirmOrderParsesMetadataDefensively(t *testing.T) {
	c := qt.New(t)
	store := &fakeStore{}
	svc := newTestService(t, &fakeProvider{session: &CheckoutSession{
		ID:   "cs_test_junk",
		Paid: true,
		Metadata: map[string]string{
			"quantity":     "not-a-number",
			"total_php":    "garbage",
			"credits_used": "",
		},
	}}, store)

	res := svc.ConfirmOrder("cs_test_junk")
	c.Assert(res.State, qt.Equals, ConfirmationRecorded)

	order := store.inserted[0]
	c.Assert(order.ProductTitle, qt.Equals, "Order")
	c.Assert(order.Quantity, qt.Equals, int64(1))
	c.Assert(order.Total, qt.Equals, float64(0))
	c.Assert(order.CreditsUsed, qt.Equals, float64(0))
}

func TestConfirmationStateString(t *testing.T) {
	c := qt.New(t)
	c.Assert(ConfirmationPending.String(), qt.Equals, "pending")
	c.Assert(ConfirmationVerified.String(), qt.Equals, "verified")
	c.Assert(ConfirmationRecorded.String(), qt.Equals, "recorded")
	c.Assert(ConfirmationRejected.String(), qt.Equals, "rejected")
	c.Assert(ConfirmationFailed.String(), qt.Equals, "failed")
}
