package order

import "errors"

var (
	ErrNotFound           = errors.New("order not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrAlreadyPaid        = errors.New("order is already paid")
	ErrNotCancellable     = errors.New("order cannot be cancelled in its current state")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrTransitionConflict = errors.New("payment status changed concurrently")
)
