package order

import "errors"

var (
	// ErrEmptyCart means the user has no cart or the cart has no items.
	// User-facing; everything else out of this package is a storage error.
	ErrEmptyCart = errors.New("cart is empty")

	ErrNotFound = errors.New("order not found")
)
