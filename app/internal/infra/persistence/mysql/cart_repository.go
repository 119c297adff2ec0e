package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	domcart "example.com/shop-admin/app/internal/domain/cart"
)

// CartRepository keeps each cart as one JSON document row.
type CartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) Get(ctx context.Context, cartID string) (*domcart.Cart, error) {
	var doc []byte
	err := r.db.QueryRowContext(ctx, `SELECT document FROM carts WHERE cart_id = ?`, cartID).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
	_, err = r.db.ExecContext(ctx, `
        INSERT INTO carts (cart_id, document, updated_at)
        VALUES (?, ?, CURRENT_TIMESTAMP)
        ON DUPLICATE KEY UPDATE document = VALUES(document), updated_at = CURRENT_TIMESTAMP
    `, c.CartID, doc)
	return err
}
