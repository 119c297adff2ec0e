package inventory

import "context"

type Repository interface {
	// Apply adjusts the variant stock by e.Delta() and records e in one
	// step. It returns the stock left after the adjustment. An adjustment
	// that would go below zero fails with *product.InsufficientStockError
	// and records nothing.
	Apply(ctx context.Context, e *Entry) (int64, error)
	ListByProduct(ctx context.Context, productID string) ([]*Entry, error)
}
