package mysql

import (
	"context"
	"database/sql"
	"errors"

	dominventory "example.com/shop-admin/app/internal/domain/inventory"
	domproduct "example.com/shop-admin/app/internal/domain/product"
)

type InventoryRepository struct {
	db *sql.DB
}

func NewInventoryRepository(db *sql.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// Apply locks the variant row, adjusts its stock and records the entry in
// the same transaction.
func (r *InventoryRepository) Apply(ctx context.Context, e *dominventory.Entry) (int64, error) {
	var stock int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
            SELECT stock FROM product_variants
            WHERE product_id = ? AND unit = ?
            FOR UPDATE
        `, e.ProductID, e.Variant).Scan(&stock)
		if errors.Is(err, sql.ErrNoRows) {
			return domproduct.ErrVariantNotFound
		}
		if err != nil {
			return err
		}

		next := stock + e.Delta()
		if next < 0 {
			return &domproduct.InsufficientStockError{Available: stock}
		}

		if _, err := tx.ExecContext(ctx, `
            UPDATE product_variants SET stock = ?
            WHERE product_id = ? AND unit = ?
        `, next, e.ProductID, e.Variant); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO inventory_entries (id, product_id, variant, quantity, type, note, created_at)
            VALUES (?, ?, ?, ?, ?, ?, ?)
        `, e.ID, e.ProductID, e.Variant, e.Quantity, string(e.Type), e.Note, e.CreatedAt); err != nil {
			return err
		}
		stock = next
		return nil
	})
	if err != nil {
		return 0, err
	}
	return stock, nil
}

func (r *InventoryRepository) ListByProduct(ctx context.Context, productID string) ([]*dominventory.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, product_id, variant, quantity, type, note, created_at
        FROM inventory_entries
        WHERE product_id = ?
        ORDER BY created_at DESC, id DESC
    `, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*dominventory.Entry{}
	for rows.Next() {
		var e dominventory.Entry
		var typ string
		if err := rows.Scan(&e.ID, &e.ProductID, &e.Variant, &e.Quantity, &typ, &e.Note, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Type = dominventory.EntryType(typ)
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
