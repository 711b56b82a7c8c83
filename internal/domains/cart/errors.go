package cart

import "errors"

var (
	ErrItemNotFound      = errors.New("cart item not found")
	ErrVariantNotFound   = errors.New("variant size not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("cart is empty")
)
