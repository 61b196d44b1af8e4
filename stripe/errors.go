package stripe

import (
	"fmt"
)

// StripeError represents a Stripe-specific error
type StripeError struct {
	Code    string
	Message string
	Err     error
}

func (e *StripeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("stripe error [%s]: %s - %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("stripe error [%s]: %s", e.Code, e.Message)
}

func (e *StripeError) Unwrap() error {
	return e.Err
}

// Common Stripe errors
var (
	ErrSessionNotFound = &StripeError{Code: "session_not_found", Message: "checkout session not found"}
	ErrAPICallFailed   = &StripeError{Code: "api_call_failed", Message: "stripe API call failed"}
)

// WithErr returns a copy of e carrying err as the underlying cause.
// The original error is preserved for logging purposes
func (e *StripeError) WithErr(err error) *StripeError {
	return NewStripeError(e.Code, e.Message, err)
}

// NewStripeError creates a new StripeError with the given code, message, and underlying error
func NewStripeError(code, message string, err error) *StripeError {
	return &StripeError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
