package stock

import "errors"

var (
	// ErrInvalidQuantity is returned when the quantity to use is zero or negative.
	ErrInvalidQuantity = errors.New("invalid quantityUsed value")

	// ErrItemNotFound is returned when the inventory item does not exist.
	ErrItemNotFound = errors.New("inventory item not found")

	// ErrInsufficientStock is returned when a use request exceeds the current
	// quantity. The request is rejected whole; stock is never clamped.
	ErrInsufficientStock = errors.New("insufficient stock")
)
