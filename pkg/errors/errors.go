package errors

import "errors"

var (
	// ErrInsufficientStock is returned by the conditional stock decrement
	// when a product no longer has the requested quantity. The whole order
	// transaction rolls back on it.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrOrderNotCancellable is returned by the conditional cancel when the
	// order is no longer PENDING, so a concurrent cancel or status change
	// can never restock twice.
	ErrOrderNotCancellable = errors.New("order can no longer be cancelled")
)
