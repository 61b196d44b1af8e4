package api

import (
	"encoding/json"
	"net/http"

	"github.com/stakz/checkout-backend/api/apicommon"
	"github.com/stakz/checkout-backend/errors"
	"github.com/stakz/checkout-backend/stripe"
)

// createCheckoutHandler validates the request, reconciles the amount through
// the stripe service and responds with the provider redirect URL.
func (a *API) createCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	if a.stripe == nil {
		errors.ErrStripeNotConfigured.Write(w)
		return
	}

	req := &apicommon.CheckoutRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		errors.ErrMalformedBody.Write(w)
		return
	}

	if req.ProductTitle == "" || req.Quantity == "" || req.TotalPHP == "" ||
		req.SuccessURL == "" || req.CancelURL == "" {
		errors.ErrMissingField.Withf(
			"product_title, quantity, total_php, success_url and cancel_url are required").Write(w)
		return
	}
	if !apicommon.ValidRedirectURL(req.SuccessURL) || !apicommon.ValidRedirectURL(req.CancelURL) {
		errors.ErrMalformedBody.Withf("success_url and cancel_url must be absolute http(s) URLs").Write(w)
		return
	}

	quantity, err := req.Quantity.Float64()
	if err != nil {
		errors.ErrMalformedBody.Withf("quantity is not a number").Write(w)
		return
	}
	total, err := req.TotalPHP.Float64()
	if err != nil {
		errors.ErrInvalidAmount.Withf("total_php is not a number").Write(w)
		return
	}
	var credits float64
	if req.CreditsUsed != "" {
		if credits, err = req.CreditsUsed.Float64(); err != nil {
			errors.ErrMalformedBody.Withf("credits_used is not a number").Write(w)
			return
		}
	}

	url, err := a.stripe.CreateCheckout(&stripe.CheckoutRequest{
		ProductTitle: req.ProductTitle,
		Quantity:     quantity,
		TotalPHP:     total,
		UserID:       req.UserID,
		CreditsUsed:  credits,
		SuccessURL:   req.SuccessURL,
		CancelURL:    req.CancelURL,
	})
	if err != nil {
		if apiErr, ok := err.(errors.Error); ok {
			apiErr.Write(w)
			return
		}
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}

	apicommon.HTTPWriteJSON(w, &apicommon.CheckoutResponse{URL: url})
}

// confirmOrderHandler verifies a checkout session with the provider and
// records the resulting order.
func (a *API) confirmOrderHandler(w http.ResponseWriter, r *http.Request) {
	if a.stripe == nil {
		errors.ErrStripeNotConfigured.Write(w)
		return
	}

	req := &apicommon.ConfirmRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		errors.ErrMalformedBody.Write(w)
		return
	}
	if req.SessionID == "" {
		errors.ErrMissingField.Withf("session_id is required").Write(w)
		return
	}

	res := a.stripe.ConfirmOrder(req.SessionID)
	if res.State != stripe.ConfirmationRecorded {
		res.Err.Write(w)
		return
	}

	apicommon.HTTPWriteJSON(w, &apicommon.ConfirmResponse{OrderID: res.OrderID})
}
