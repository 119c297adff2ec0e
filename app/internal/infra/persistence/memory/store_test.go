package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domadmin "example.com/shop-admin/app/internal/domain/admin"
	domcart "example.com/shop-admin/app/internal/domain/cart"
	dominventory "example.com/shop-admin/app/internal/domain/inventory"
	domproduct "example.com/shop-admin/app/internal/domain/product"
)

func TestCartRepository_SaveAndGetAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Carts()

	_, err := repo.Get(ctx, "c1")
	require.ErrorIs(t, err, domcart.ErrCartNotFound)

	c := domcart.New("c1")
	c.Items = append(c.Items, domcart.Item{ProductID: "P1", Variant: "1kg", Price: decimal.NewFromInt(50), Quantity: 2})
	c.Recalculate()
	require.NoError(t, repo.Save(ctx, c))

	c.Items[0].Quantity = 99

	got, err := repo.Get(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, int64(2), got.Items[0].Quantity)
	require.True(t, decimal.NewFromInt(100).Equal(got.TotalAmount))

	got.Items[0].Quantity = 7
	again, err := repo.Get(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, int64(2), again.Items[0].Quantity)
}

func TestProductRepository_CRUDAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Products()
	now := time.Now()

	_, err := repo.Create(ctx, &domproduct.Product{ID: "a", Name: "Basmati Rice", Category: "grains", IsActive: true, CreatedAt: now.Add(-time.Hour)})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domproduct.Product{ID: "b", Name: "Brown Rice", Category: "grains", CreatedAt: now})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domproduct.Product{ID: "c", Name: "Olive Oil", Category: "oils", IsActive: true, CreatedAt: now.Add(-2 * time.Hour)})
	require.NoError(t, err)

	all, err := repo.List(ctx, domproduct.ListFilter{})
	require.NoError(t, err)
	require.Equal(t, []string{"b", "a", "c"}, productIDs(all))

	rice, err := repo.List(ctx, domproduct.ListFilter{Search: "RICE", OnlyActive: true})
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, productIDs(rice))

	_, err = repo.Update(ctx, &domproduct.Product{ID: "missing"})
	require.ErrorIs(t, err, domproduct.ErrProductNotFound)

	require.NoError(t, repo.Delete(ctx, "c"))
	require.ErrorIs(t, repo.Delete(ctx, "c"), domproduct.ErrProductNotFound)
	_, err = repo.GetByID(ctx, "c")
	require.ErrorIs(t, err, domproduct.ErrProductNotFound)
}

func TestInventoryRepository_ApplyAdjustsVariantStock(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	_, err := store.Products().Create(ctx, &domproduct.Product{
		ID: "P1", Name: "Rice",
		Variants: []domproduct.Variant{{Unit: "1kg", Stock: 3}, {Unit: "5kg", Stock: 1}},
	})
	require.NoError(t, err)
	repo := store.Inventory()

	stock, err := repo.Apply(ctx, &dominventory.Entry{ID: "e1", ProductID: "P1", Variant: "1kg", Quantity: 2, Type: dominventory.EntryIn})
	require.NoError(t, err)
	require.Equal(t, int64(5), stock)

	_, err = repo.Apply(ctx, &dominventory.Entry{ID: "e2", ProductID: "P1", Variant: "1kg", Quantity: 6, Type: dominventory.EntryOut})
	var stockErr *domproduct.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Equal(t, int64(5), stockErr.Available)

	stock, err = repo.Apply(ctx, &dominventory.Entry{ID: "e3", ProductID: "P1", Variant: "1kg", Quantity: 5, Type: dominventory.EntryOut})
	require.NoError(t, err)
	require.Equal(t, int64(0), stock)

	_, err = repo.Apply(ctx, &dominventory.Entry{ID: "e4", ProductID: "P1", Variant: "2kg", Quantity: 1, Type: dominventory.EntryIn})
	require.ErrorIs(t, err, domproduct.ErrVariantNotFound)

	p, err := store.Products().GetByID(ctx, "P1")
	require.NoError(t, err)
	require.Equal(t, []domproduct.Variant{{Unit: "1kg", Stock: 0}, {Unit: "5kg", Stock: 1}}, p.Variants)

	entries, err := repo.ListByProduct(ctx, "P1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "e3", entries[0].ID)
	require.Equal(t, "e1", entries[1].ID)

	none, err := repo.ListByProduct(ctx, "P2")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestAdminRepository_EmailIsUnique(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Admins()

	_, err := repo.Create(ctx, &domadmin.Admin{ID: "1", Email: "Admin@Shop.test"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domadmin.Admin{ID: "2", Email: "admin@shop.test"})
	require.ErrorIs(t, err, domadmin.ErrEmailAlreadyUsed)

	a, err := repo.GetByEmail(ctx, "ADMIN@shop.test")
	require.NoError(t, err)
	require.Equal(t, "1", a.ID)

	_, err = repo.GetByEmail(ctx, "nobody@shop.test")
	require.ErrorIs(t, err, domadmin.ErrAdminNotFound)
}

func productIDs(products []*domproduct.Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}
