package cart

import "context"

// Repository stores carts as whole documents keyed by cart id.
// Get returns ErrCartNotFound when nothing is stored under cartID.
type Repository interface {
	Get(ctx context.Context, cartID string) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
}
