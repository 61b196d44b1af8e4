package api

const (
	// POST create a checkout session
	checkoutEndpoint = "/checkout"
	// POST confirm a completed checkout session and record the order
	checkoutConfirmEndpoint = "/checkout/confirm"
	// GET retrieve a stored order
	orderEndpoint = "/orders/{orderID}"
	// GET list the orders of a buyer
	userOrdersEndpoint = "/users/{userID}/orders"
)
