package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"

	"example.com/shop-admin/app/internal/config"
	"example.com/shop-admin/app/internal/infra/logger"
	"example.com/shop-admin/app/internal/infra/persistence/migrations"
	mysqlstore "example.com/shop-admin/app/internal/infra/persistence/mysql"
	"example.com/shop-admin/app/internal/infra/security"
	authuc "example.com/shop-admin/app/internal/usecase/auth"
)

var errUsage = errors.New("email and password are required")

// createadmin registers an admin account in the MySQL catalog database.
// The password is read from ADMIN_PASSWORD when -password is empty.
func main() {
	name := flag.String("name", "Admin", "display name")
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "login password (default $ADMIN_PASSWORD)")
	flag.Parse()

	cfg := config.Load()
	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}

	if *password == "" {
		*password = os.Getenv("ADMIN_PASSWORD")
	}

	err = run(cfg, log, authuc.RegisterInput{Name: *name, Email: *email, Password: *password})
	switch {
	case errors.Is(err, errUsage):
		flag.Usage()
		os.Exit(2)
	case err != nil:
		log.Error("create admin failed", "email", *email, "err", err)
		log.Sync()
		os.Exit(1)
	}
	log.Sync()
}

func run(cfg config.Config, log *logger.Logger, in authuc.RegisterInput) error {
	if in.Email == "" || in.Password == "" {
		return errUsage
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		return fmt.Errorf("mysql open: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("mysql ping: %w", err)
	}

	if cfg.RunMigrations {
		if err := migrations.UpMySQL(db, log); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}

	authSvc := authuc.NewService(
		mysqlstore.NewAdminRepository(db),
		security.NewBcryptService(bcrypt.DefaultCost),
		security.NewJWTService(cfg.JWTSecret, cfg.JWTTTL),
	)
	a, err := authSvc.Register(ctx, in)
	if err != nil {
		return err
	}
	log.Info("admin created", "admin_id", a.ID, "email", a.Email)
	return nil
}
