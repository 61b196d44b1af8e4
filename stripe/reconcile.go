package stripe

import (
	"fmt"
	"math"
)

// The provider charges unit price × quantity, both expressed in the smallest
// currency unit. PHP is charged in whole pesos, so one major unit is also
// the smallest chargeable unit.
const (
	subunitsPerUnit = 1
	minUnitAmount   = 1
)

// ErrInvalidAmount is returned when the requested total is not positive
// after rounding to the smallest currency unit.
var ErrInvalidAmount = fmt.Errorf("total amount must be positive")

// Reconciled is the result of converting a requested total into a chargeable
// per-unit price. Total is always UnitAmount × Quantity, which may be lower
// than the requested total when it doesn't divide evenly.
type Reconciled struct {
	UnitAmount int64   // smallest-unit price per item
	Quantity   int64   // line item quantity, always >= 1
	Total      int64   // smallest-unit total actually charged
	TotalMajor float64 // Total expressed back in major currency units
}

// Reconcile converts a requested major-unit total and quantity into the
// per-item price the provider will charge, and recomputes the true total
// that results. The quantity is rounded and clamped to a minimum of 1; the
// unit price is clamped to a minimum of one smallest unit so zero-price
// line items never reach the provider. Rounding drift is resolved by
// adjusting the total, so the recorded total always equals what is charged.
func Reconcile(totalMajor, quantity float64) (*Reconciled, error) {
	qty := int64(math.Round(quantity))
	if qty < 1 {
		qty = 1
	}
	totalSmallest := int64(math.Round(totalMajor * subunitsPerUnit))
	if totalSmallest <= 0 {
		return nil, ErrInvalidAmount
	}
	unit := totalSmallest / qty
	if unit < minUnitAmount {
		unit = minUnitAmount
	}
	total := unit * qty
	return &Reconciled{
		UnitAmount: unit,
		Quantity:   qty,
		Total:      total,
		TotalMajor: float64(total) / subunitsPerUnit,
	}, nil
}
