package catalog

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrWarehouseMismatch = errors.New("product is not in warehouse")
	ErrUnknownWarehouse  = errors.New("unknown warehouse")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("invalid quantity")
)
