package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	domadmin "example.com/shop-admin/app/internal/domain/admin"
	domcart "example.com/shop-admin/app/internal/domain/cart"
	dominventory "example.com/shop-admin/app/internal/domain/inventory"
	domproduct "example.com/shop-admin/app/internal/domain/product"
	"example.com/shop-admin/app/internal/config"
	"example.com/shop-admin/app/internal/infra/events"
	"example.com/shop-admin/app/internal/infra/logger"
	"example.com/shop-admin/app/internal/infra/persistence/memory"
	"example.com/shop-admin/app/internal/infra/persistence/migrations"
	mongostore "example.com/shop-admin/app/internal/infra/persistence/mongo"
	mysqlstore "example.com/shop-admin/app/internal/infra/persistence/mysql"
	pgstore "example.com/shop-admin/app/internal/infra/persistence/postgres"
	redisstore "example.com/shop-admin/app/internal/infra/persistence/redis"
	"example.com/shop-admin/app/internal/infra/security"
	httpapi "example.com/shop-admin/app/internal/interface/http"
	analyticsuc "example.com/shop-admin/app/internal/usecase/analytics"
	authuc "example.com/shop-admin/app/internal/usecase/auth"
	cartuc "example.com/shop-admin/app/internal/usecase/cart"
	inventoryuc "example.com/shop-admin/app/internal/usecase/inventory"
	productuc "example.com/shop-admin/app/internal/usecase/product"
)

type stores struct {
	carts     domcart.Repository
	products  domproduct.Repository
	inventory dominventory.Repository
	admins    domadmin.Repository
	checks    map[string]httpapi.Pinger
	closers   []func()
}

func (s *stores) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", "err", err)
		log.Sync()
		os.Exit(1)
	}
	log.Info("bye")
	log.Sync()
}

func run(cfg config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open stores: %w", err)
	}
	defer st.close()

	var publisher inventoryuc.EventPublisher
	if cfg.RabbitMQURL != "" {
		p, err := events.Dial(cfg.RabbitMQURL, "shop-admin")
		if err != nil {
			return fmt.Errorf("rabbitmq connect: %w", err)
		}
		defer p.Close()
		publisher = p
	} else {
		log.Info("RABBITMQ_URL not set, stock events disabled")
	}

	tokenSvc := security.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)
	authSvc := authuc.NewService(st.admins, security.NewBcryptService(bcrypt.DefaultCost), tokenSvc)
	if err := seedAdmin(ctx, cfg, authSvc, log); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	api := httpapi.NewAPI(httpapi.Dependencies{
		AuthService:      authSvc,
		ProductService:   productuc.NewService(st.products),
		CartService:      cartuc.NewService(st.carts, st.products),
		InventoryService: inventoryuc.NewService(st.inventory, st.products, publisher, log.With("component", "inventory")),
		AnalyticsService: analyticsuc.NewService(st.products, cfg.LowStockThreshold),
		TokenService:     tokenSvc,
		Logger:           log.With("component", "http"),
		CORSOrigins:      cfg.CORSOrigins,
		DBChecks:         st.checks,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", "addr", srv.Addr, "cart_store", cfg.CartStore, "catalog_store", cfg.CatalogStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openStores(ctx context.Context, cfg config.Config, log *logger.Logger) (*stores, error) {
	st := &stores{checks: map[string]httpapi.Pinger{}}
	mem := memory.NewStore()

	var mysqlDB *sql.DB
	needMySQL := cfg.CatalogStore == config.StoreMySQL || cfg.CartStore == config.StoreMySQL
	if needMySQL {
		db, err := openMySQL(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, func() { _ = db.Close() })
		st.checks["mysql"] = db.PingContext
		if cfg.RunMigrations {
			if err := migrations.UpMySQL(db, log); err != nil {
				st.close()
				return nil, err
			}
		}
		mysqlDB = db
	}

	switch cfg.CatalogStore {
	case config.StoreMySQL:
		st.products = mysqlstore.NewProductRepository(mysqlDB)
		st.inventory = mysqlstore.NewInventoryRepository(mysqlDB)
		st.admins = mysqlstore.NewAdminRepository(mysqlDB)
	case config.StoreMemory:
		st.products = mem.Products()
		st.inventory = mem.Inventory()
		st.admins = mem.Admins()
	default:
		st.close()
		return nil, fmt.Errorf("unsupported CATALOG_STORE %q", cfg.CatalogStore)
	}

	switch cfg.CartStore {
	case config.StoreMemory:
		st.carts = mem.Carts()
	case config.StoreMySQL:
		st.carts = mysqlstore.NewCartRepository(mysqlDB)
	case config.StorePostgres:
		if cfg.RunMigrations {
			if err := migrations.UpPostgres(cfg.PGDSN, log); err != nil {
				st.close()
				return nil, err
			}
		}
		pool, err := pgstore.NewPool(ctx, cfg.PGDSN)
		if err != nil {
			st.close()
			return nil, fmt.Errorf("postgres: %w", err)
		}
		st.closers = append(st.closers, pool.Close)
		st.checks["postgres"] = pool.Ping
		st.carts = pgstore.NewCartRepository(pool)
	case config.StoreRedis:
		rdb, err := redisstore.NewClient(ctx, cfg.RedisAddr)
		if err != nil {
			st.close()
			return nil, err
		}
		st.closers = append(st.closers, func() { _ = rdb.Close() })
		st.checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		st.carts = redisstore.NewCartRepository(rdb, cfg.RedisPrefix)
	case config.StoreMongo:
		client, err := mongostore.Connect(ctx, cfg.MongoURI)
		if err != nil {
			st.close()
			return nil, err
		}
		st.closers = append(st.closers, func() { _ = client.Disconnect(context.Background()) })
		st.checks["mongo"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		st.carts = mongostore.NewCartRepository(client.Database(cfg.MongoDB))
	default:
		st.close()
		return nil, fmt.Errorf("unsupported CART_STORE %q", cfg.CartStore)
	}

	return st, nil
}

func openMySQL(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql open: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mysql ping: %w", err)
	}
	return db, nil
}

func seedAdmin(ctx context.Context, cfg config.Config, authSvc *authuc.Service, log *logger.Logger) error {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return nil
	}
	a, err := authSvc.Register(ctx, authuc.RegisterInput{
		Name:     cfg.SeedAdminName,
		Email:    cfg.SeedAdminEmail,
		Password: cfg.SeedAdminPassword,
	})
	if errors.Is(err, domadmin.ErrEmailAlreadyUsed) {
		return nil
	}
	if err != nil {
		return err
	}
	log.Info("seeded admin", "admin_id", a.ID, "email", a.Email)
	return nil
}
