package internal

import (
	"crypto/rand"
	"strings"
)

const (
	// OrderIDPrefix is prepended to every locally generated order identifier.
	OrderIDPrefix = "STKZ-"
	// OrderRefPrefix is prepended to the provider session id to build the
	// order reference number.
	OrderRefPrefix = "STRIPE-"
	// orderIDSuffixLen is the number of random characters after the prefix.
	orderIDSuffixLen = 9

	orderIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// RandomBytes helper function allows to generate a random byte slice of n bytes.
func RandomBytes(n int) []byte {
	b := make([]byte, n)
	_, err := rand.Read(b)
	if err != nil {
		panic(err)
	}
	return b
}

// RandomOrderID generates a new order identifier with the fixed prefix and a
// random alphanumeric suffix. Uniqueness is probabilistic, not guaranteed.
func RandomOrderID() string {
	var sb strings.Builder
	sb.WriteString(OrderIDPrefix)
	for _, b := range RandomBytes(orderIDSuffixLen) {
		sb.WriteByte(orderIDAlphabet[int(b)%len(orderIDAlphabet)])
	}
	return sb.String()
}

// OrderReference derives the reference number for an order from the provider
// checkout session id, so any stored order can be traced back to its session.
func OrderReference(sessionID string) string {
	return OrderRefPrefix + sessionID
}
