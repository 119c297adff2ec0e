package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/shop-admin/app/internal/config"
	"example.com/shop-admin/app/internal/infra/logger"
)

func TestRun_ReturnsStoreErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{
			name: "Unknown cart store",
			cfg:  config.Config{CartStore: "bogus", CatalogStore: config.StoreMemory},
			want: `unsupported CART_STORE "bogus"`,
		},
		{
			name: "Unknown catalog store",
			cfg:  config.Config{CartStore: config.StoreMemory, CatalogStore: "bogus"},
			want: `unsupported CATALOG_STORE "bogus"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.cfg, logger.NewNop())
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestOpenStores_Memory(t *testing.T) {
	st, err := openStores(t.Context(), config.Config{
		CartStore:    config.StoreMemory,
		CatalogStore: config.StoreMemory,
	}, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(st.close)

	require.NotNil(t, st.carts)
	require.NotNil(t, st.products)
	require.NotNil(t, st.inventory)
	require.NotNil(t, st.admins)
	require.Empty(t, st.checks)
}
