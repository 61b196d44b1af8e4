package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	qt "github.com/frankban/quicktest"
)

var allErrors = []Error{
	ErrMalformedBody,
	ErrMissingField,
	ErrInvalidAmount,
	ErrMalformedURLParam,
	ErrPaymentNotCompleted,
	ErrOrderNotFound,
	ErrMarshalingServerJSONFailed,
	ErrGenericInternalServerError,
	ErrStripeNotConfigured,
	ErrStripeError,
	ErrOrderStoreFailed,
}

func TestErrorCodesAreUnique(t *testing.T) {
	c := qt.New(t)
	seen := map[int]string{}
	for _, e := range allErrors {
		prev, dup := seen[e.Code]
		c.Assert(dup, qt.IsFalse, qt.Commentf("code %d used by both %q and %q", e.Code, prev, e.Error()))
		seen[e.Code] = e.Error()
	}
}

func TestErrorCodesMatchHTTPClass(t *testing.T) {
	c := qt.New(t)
	for _, e := range allErrors {
		if e.Code < 50000 {
			c.Assert(e.HTTPstatus >= 400 && e.HTTPstatus < 500, qt.IsTrue,
				qt.Commentf("code %d should carry a 4xx status, got %d", e.Code, e.HTTPstatus))
		} else {
			c.Assert(e.HTTPstatus >= 500, qt.IsTrue,
				qt.Commentf("code %d should carry a 5xx status, got %d", e.Code, e.HTTPstatus))
		}
	}
}

func TestErrorWrite(t *testing.T) {
	c := qt.New(t)

	rec := httptest.NewRecorder()
	ErrPaymentNotCompleted.Withf("session %s", "cs_test_1").Write(rec)

	c.Assert(rec.Code, qt.Equals, http.StatusBadRequest)
	c.Assert(rec.Header().Get("Content-Type"), qt.Equals, "application/json")

	var body struct {
		Error string `json:"error"`
		Code  int    `json:"code"`
	}
	c.Assert(json.Unmarshal(rec.Body.Bytes(), &body), qt.IsNil)
	c.Assert(body.Code, qt.Equals, ErrPaymentNotCompleted.Code)
	c.Assert(body.Error, qt.Contains, "payment not completed")
	c.Assert(body.Error, qt.Contains, "cs_test_1")
}

func TestErrorWrapping(t *testing.T) {
	c := qt.New(t)

	base := ErrStripeError
	wrapped := base.WithErr(http.ErrBodyNotAllowed)
	c.Assert(wrapped.Code, qt.Equals, base.Code)
	c.Assert(wrapped.HTTPstatus, qt.Equals, base.HTTPstatus)
	c.Assert(wrapped.Error(), qt.Contains, base.Error())
	c.Assert(wrapped.Error(), qt.Contains, http.ErrBodyNotAllowed.Error())
}
