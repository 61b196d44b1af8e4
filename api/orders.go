package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stakz/checkout-backend/api/apicommon"
	"github.com/stakz/checkout-backend/db"
	"github.com/stakz/checkout-backend/errors"
)

// orderInfoHandler returns a stored order by its id.
func (a *API) orderInfoHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	if orderID == "" {
		errors.ErrMalformedURLParam.Withf("orderID is required").Write(w)
		return
	}

	order, err := a.store.Order(orderID)
	if err != nil {
		if err == db.ErrNotFound {
			errors.ErrOrderNotFound.Write(w)
			return
		}
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}

	apicommon.HTTPWriteJSON(w, order)
}

// userOrdersHandler returns all orders placed by a buyer.
func (a *API) userOrdersHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		errors.ErrMalformedURLParam.Withf("userID is required").Write(w)
		return
	}

	orders, err := a.store.OrdersByUser(userID)
	if err != nil {
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	if orders == nil {
		orders = []*db.Order{}
	}

	apicommon.HTTPWriteJSON(w, &apicommon.UserOrdersResponse{Orders: orders})
}
