package pricing

import "errors"

var (
	// ErrInvalidQuantity is returned when a non-positive quantity reaches a pricing operation.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrExceedsStock is returned when the requested quantity is above the product's stock.
	// The engine never clamps; clamping is the caller's responsibility before invocation.
	ErrExceedsStock = errors.New("quantity exceeds available stock")
)
