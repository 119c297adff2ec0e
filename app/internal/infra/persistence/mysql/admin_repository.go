package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	domadmin "example.com/shop-admin/app/internal/domain/admin"
)

const errDuplicateEntry = 1062

type AdminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) Create(ctx context.Context, a *domadmin.Admin) (*domadmin.Admin, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO admins (id, name, email, password_hash, created_at)
         VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Email, a.PasswordHash, a.CreatedAt,
	)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == errDuplicateEntry {
			return nil, domadmin.ErrEmailAlreadyUsed
		}
		return nil, err
	}
	return a, nil
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*domadmin.Admin, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, email, password_hash, created_at
        FROM admins
        WHERE email = ?
    `, email)

	var a domadmin.Admin
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domadmin.ErrAdminNotFound
		}
		return nil, err
	}
	return &a, nil
}
