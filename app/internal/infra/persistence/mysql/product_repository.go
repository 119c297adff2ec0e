package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	domproduct "example.com/shop-admin/app/internal/domain/product"
)

const productColumns = `id, name, description, category, image, price, is_active, created_at, updated_at`

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO products (id, name, description, category, image, price, is_active, created_at, updated_at)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        `, p.ID, p.Name, p.Description, p.Category, p.Image, p.Price, p.IsActive, p.CreatedAt, p.UpdatedAt); err != nil {
			return err
		}
		return insertVariants(ctx, tx, p.ID, p.Variants)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Update rewrites the product row and replaces its variants.
func (r *ProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM products WHERE id = ? FOR UPDATE`, p.ID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return domproduct.ErrProductNotFound
		}
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
            UPDATE products
            SET name = ?, description = ?, category = ?, image = ?, price = ?, is_active = ?, updated_at = ?
            WHERE id = ?
        `, p.Name, p.Description, p.Category, p.Image, p.Price, p.IsActive, p.UpdatedAt, p.ID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM product_variants WHERE product_id = ?`, p.ID); err != nil {
			return err
		}
		return insertVariants(ctx, tx, p.ID, p.Variants)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domproduct.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domproduct.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domproduct.ErrProductNotFound
		}
		return nil, err
	}

	variants, err := r.variantsOf(ctx, []string{p.ID})
	if err != nil {
		return nil, err
	}
	p.Variants = variants[p.ID]
	return p, nil
}

func (r *ProductRepository) List(ctx context.Context, filter domproduct.ListFilter) ([]*domproduct.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var clauses []string
	var args []any

	if filter.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Search != "" {
		clauses = append(clauses, "name LIKE ?")
		args = append(args, fmt.Sprintf("%%%s%%", filter.Search))
	}
	if filter.OnlyActive {
		clauses = append(clauses, "is_active = 1")
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []*domproduct.Product{}
	var ids []string
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	variants, err := r.variantsOf(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		p.Variants = variants[p.ID]
	}
	return products, nil
}

func (r *ProductRepository) variantsOf(ctx context.Context, ids []string) (map[string][]domproduct.Variant, error) {
	result := make(map[string][]domproduct.Variant, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `
        SELECT product_id, unit, stock
        FROM product_variants
        WHERE product_id IN (?` + strings.Repeat(",?", len(ids)-1) + `)
        ORDER BY product_id, position
    `
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var productID string
		var v domproduct.Variant
		if err := rows.Scan(&productID, &v.Unit, &v.Stock); err != nil {
			return nil, err
		}
		result[productID] = append(result[productID], v)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(s rowScanner) (*domproduct.Product, error) {
	var p domproduct.Product
	if err := s.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Image, &p.Price, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func insertVariants(ctx context.Context, tx *sql.Tx, productID string, variants []domproduct.Variant) error {
	for i, v := range variants {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO product_variants (product_id, unit, stock, position)
            VALUES (?, ?, ?, ?)
        `, productID, v.Unit, v.Stock, i); err != nil {
			return err
		}
	}
	return nil
}

func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
