package checkout

import "errors"

var (
	// ErrEmptyCart is returned when checkout starts with no cart items.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidTotal is returned when the computed cart total is not
	// positive.
	ErrInvalidTotal = errors.New("invalid cart total")

	// ErrMissingSignature is returned when a webhook arrives without a
	// Stripe-Signature header.
	ErrMissingSignature = errors.New("missing webhook signature")

	// ErrInvalidWebhook is returned when webhook verification or decoding
	// fails.
	ErrInvalidWebhook = errors.New("invalid webhook")
)

// InsufficientStockError reports a cart line whose quantity exceeds the
// product's remaining stock.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return "Not enough stock for " + e.ProductName
}
