package internal

import (
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestRandomOrderID(t *testing.T) {
	c := qt.New(t)

	id := RandomOrderID()
	c.Assert(strings.HasPrefix(id, OrderIDPrefix), qt.IsTrue)
	c.Assert(id, qt.HasLen, len(OrderIDPrefix)+9)
	for _, r := range strings.TrimPrefix(id, OrderIDPrefix) {
		c.Assert(strings.ContainsRune(orderIDAlphabet, r), qt.IsTrue, qt.Commentf("unexpected rune %q in %s", r, id))
	}

	// two identifiers generated back to back should not collide
	c.Assert(RandomOrderID(), qt.Not(qt.Equals), id)
}

func TestOrderReference(t *testing.T) {
	c := qt.New(t)
	c.Assert(OrderReference("cs_test_123"), qt.Equals, "STRIPE-cs_test_123")
}
