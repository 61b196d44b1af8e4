// Package errors provides custom error types and definitions for the application.
//
//nolint:lll
package errors

import (
	"fmt"
	"net/http"
)

// The custom Error type satisfies the error interface.
// Error() returns a human-readable description of the error.
//
// Error codes in the 40001-49999 range are the client's fault,
// and they return HTTP Status 400 or 404, whatever is most appropriate.
//
// Error codes 50001-59999 are the server's fault
// and they return HTTP Status 500 or 503, or something else if appropriate.
//
// NEVER change any of the current error codes, only append new errors after the
// current last 4XXX or 5XXX. If a code stops being used, don't fill in the gap.
var (
	// Validation errors (400)
	ErrMalformedBody     = Error{Code: 40001, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid JSON request body")}
	ErrMissingField      = Error{Code: 40002, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("missing required fields")}
	ErrInvalidAmount     = Error{Code: 40003, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("total amount must be positive")}
	ErrMalformedURLParam = Error{Code: 40004, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid URL parameter")}

	// Payment errors (400)
	ErrPaymentNotCompleted = Error{Code: 40005, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("payment not completed"), LogLevel: "info"}

	// Not found errors (404)
	ErrOrderNotFound = Error{Code: 40006, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("order not found")}

	// Server errors (500) - These should be used sparingly and only for true internal errors
	ErrMarshalingServerJSONFailed = Error{Code: 50001, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("server error: failed to process response"), LogLevel: "error"}
	ErrGenericInternalServerError = Error{Code: 50002, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("server error: operation failed"), LogLevel: "error"}
	ErrStripeNotConfigured        = Error{Code: 50003, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("server error: payment provider not configured"), LogLevel: "error"}
	ErrStripeError                = Error{Code: 50004, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("server error: payment processing failed"), LogLevel: "error"}
	ErrOrderStoreFailed           = Error{Code: 50005, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("server error: failed to create order"), LogLevel: "error"}
)
