package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "CART_STORE", "JWT_TTL", "CORS_ORIGINS", "LOW_STOCK_THRESHOLD", "RUN_MIGRATIONS", "RABBITMQ_URL"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, StoreMemory, cfg.CartStore)
	require.Equal(t, 24*time.Hour, cfg.JWTTTL)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	require.Equal(t, int64(10), cfg.LowStockThreshold)
	require.True(t, cfg.RunMigrations)
	require.Empty(t, cfg.RabbitMQURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("CART_STORE", "Redis")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("LOW_STOCK_THRESHOLD", "3")
	t.Setenv("RUN_MIGRATIONS", "false")

	cfg := Load()

	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, StoreRedis, cfg.CartStore)
	require.Equal(t, 90*time.Minute, cfg.JWTTTL)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	require.Equal(t, int64(3), cfg.LowStockThreshold)
	require.False(t, cfg.RunMigrations)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("LOW_STOCK_THRESHOLD", "lots")
	t.Setenv("JWT_TTL", "forever")
	t.Setenv("RUN_MIGRATIONS", "maybe")

	cfg := Load()

	require.Equal(t, int64(10), cfg.LowStockThreshold)
	require.Equal(t, 24*time.Hour, cfg.JWTTTL)
	require.True(t, cfg.RunMigrations)
}
