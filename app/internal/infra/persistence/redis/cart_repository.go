package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domcart "example.com/shop-admin/app/internal/domain/cart"
)

// Client is the part of *redis.Client the cart store calls.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// NewClient connects and pings before returning.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// CartRepository keeps each cart as a JSON string under prefix+cartID.
// Keys never expire.
type CartRepository struct {
	rdb    Client
	prefix string
}

func NewCartRepository(rdb Client, prefix string) *CartRepository {
	return &CartRepository{rdb: rdb, prefix: prefix}
}

func (r *CartRepository) Get(ctx context.Context, cartID string) (*domcart.Cart, error) {
	raw, err := r.rdb.Get(ctx, r.key(cartID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domcart.ErrCartNotFound
		}
		return nil, err
	}

	var c domcart.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.Items == nil {
		c.Items = []domcart.Item{}
	}
	return &c, nil
}

func (r *CartRepository) Save(ctx context.Context, c *domcart.Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, r.key(c.CartID), raw, 0).Err()
}

func (r *CartRepository) key(cartID string) string {
	return r.prefix + cartID
}
