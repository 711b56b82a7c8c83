package catalog

import "errors"

var (
	ErrNotFound      = errors.New("catalog item not found")
	ErrNameTaken     = errors.New("name already exists")
	ErrInUse         = errors.New("catalog item is referenced by products")
	ErrInvalidFilter = errors.New("invalid filter")
)
