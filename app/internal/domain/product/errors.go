package product

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("variant not found")
	ErrInvalidProduct  = errors.New("invalid product")
	ErrOutOfStock      = errors.New("product out of stock")
)

// InsufficientStockError reports how many units of a variant were
// available when a request asked for more. It matches ErrOutOfStock.
type InsufficientStockError struct {
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock. Only %d available.", e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrOutOfStock
}
