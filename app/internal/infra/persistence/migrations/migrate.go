package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
)

//go:embed mysql/*.sql
var mysqlFS embed.FS

//go:embed postgres/*.sql
var postgresFS embed.FS

type Logger interface {
	Info(msg string, keysAndValues ...interface{})
}

// UpMySQL applies the catalog, inventory, admin and cart tables.
func UpMySQL(db *sql.DB, log Logger) error {
	driver, err := migratemysql.WithInstance(db, &migratemysql.Config{})
	if err != nil {
		return fmt.Errorf("create mysql migration driver: %w", err)
	}
	return up(mysqlFS, "mysql", "mysql", driver, log)
}

// UpPostgres opens its own connection through lib/pq and applies the cart
// table.
func UpPostgres(dsn string, log Logger) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open postgres for migrations: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create postgres migration driver: %w", err)
	}
	return up(postgresFS, "postgres", "postgres", driver, log)
}

func up(fsys embed.FS, dir, dbName string, driver database.Driver, log Logger) error {
	source, err := iofs.New(fsys, dir)
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, dbName, driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run %s migrations: %w", dbName, err)
	}

	version, dirty, _ := m.Version()
	log.Info("migrations applied", "db", dbName, "version", version, "dirty", dirty)
	return nil
}
