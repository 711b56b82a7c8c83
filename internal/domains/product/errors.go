package product

import "errors"

var (
	ErrNotFound        = errors.New("product not found")
	ErrVariantNotFound = errors.New("variant not found")
	ErrDuplicateColor  = errors.New("variant with this color already exists")
	ErrInvalidRef      = errors.New("referenced brand, category, color or size does not exist")
)
