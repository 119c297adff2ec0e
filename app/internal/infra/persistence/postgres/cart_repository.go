package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domcart "example.com/shop-admin/app/internal/domain/cart"
)

// DBPool is the subset of *pgxpool.Pool the cart store needs.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// CartRepository stores each cart as a JSONB document.
type CartRepository struct {
	pool DBPool
}

func NewCartRepository(pool DBPool) *CartRepository {
	return &CartRepository{pool: pool}
}

func (r *CartRepository) Get(ctx context.Context, cartID string) (*domcart.Cart, error) {
	var doc []byte
	err := r.pool.QueryRow(ctx, `SELECT document FROM carts WHERE cart_id = $1`, cartID).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domcart.ErrCartNotFound
		}
		return nil, err
	}

	var c domcart.Cart
	if err := json.Unmarshal(doc, &c); err != nil {
		return nil, err
	}
	if c.Items == nil {
		c.Items = []domcart.Item{}
	}
	return &c, nil
}

func (r *CartRepository) Save(ctx context.Context, c *domcart.Cart) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO carts (cart_id, document, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (cart_id) DO UPDATE SET document = EXCLUDED.document, updated_at = now()
	`, c.CartID, doc)
	return err
}
