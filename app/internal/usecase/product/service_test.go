package product

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domproduct "example.com/shop-admin/app/internal/domain/product"
)

type mockProductRepository struct {
	products  map[string]*domproduct.Product
	created   *domproduct.Product
	updated   *domproduct.Product
	deletedID string
	createErr error
	updateErr error
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: make(map[string]*domproduct.Product),
	}
}

func (m *mockProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.products[p.ID] = p
	m.created = p
	return p, nil
}

func (m *mockProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	if _, ok := m.products[p.ID]; !ok {
		return nil, domproduct.ErrProductNotFound
	}
	m.products[p.ID] = p
	m.updated = p
	return p, nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.products[id]; !ok {
		return domproduct.ErrProductNotFound
	}
	delete(m.products, id)
	m.deletedID = id
	return nil
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*domproduct.Product, error) {
	if product, ok := m.products[id]; ok {
		cloned := *product
		return &cloned, nil
	}
	return nil, domproduct.ErrProductNotFound
}

func (m *mockProductRepository) List(ctx context.Context, filter domproduct.ListFilter) ([]*domproduct.Product, error) {
	var result []*domproduct.Product
	for _, p := range m.products {
		if filter.OnlyActive && !p.IsActive {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func TestCreateProduct_AssignsIDAndTimestamps(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), &domproduct.Product{
		Name:     "  Rice  ",
		Price:    decimal.NewFromInt(50),
		IsActive: true,
		Variants: []domproduct.Variant{{Unit: "1kg", Stock: 10}, {Unit: "5kg", Stock: 3}},
	})

	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	_, err = uuid.Parse(created.ID)
	require.NoError(t, err)
	require.Equal(t, "Rice", created.Name)
	require.False(t, created.CreatedAt.IsZero())
	require.Equal(t, created.CreatedAt, created.UpdatedAt)
	require.Same(t, created, repo.created)
}

func TestCreateProduct_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		product domproduct.Product
		message string
	}{
		{
			name:    "Empty name",
			product: domproduct.Product{Name: "   ", Price: decimal.NewFromInt(1)},
			message: "name is required",
		},
		{
			name:    "Negative price",
			product: domproduct.Product{Name: "Rice", Price: decimal.NewFromInt(-1)},
			message: "price must not be negative",
		},
		{
			name: "Blank variant unit",
			product: domproduct.Product{
				Name: "Rice", Price: decimal.NewFromInt(1),
				Variants: []domproduct.Variant{{Unit: "", Stock: 1}},
			},
			message: "variant unit is required",
		},
		{
			name: "Negative stock",
			product: domproduct.Product{
				Name: "Rice", Price: decimal.NewFromInt(1),
				Variants: []domproduct.Variant{{Unit: "1kg", Stock: -1}},
			},
			message: `stock of "1kg" must not be negative`,
		},
		{
			name: "Duplicate variant",
			product: domproduct.Product{
				Name: "Rice", Price: decimal.NewFromInt(1),
				Variants: []domproduct.Variant{{Unit: "1kg", Stock: 1}, {Unit: "1kg", Stock: 2}},
			},
			message: `duplicate variant "1kg"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockProductRepository()
			svc := NewService(repo)

			p := tt.product
			_, err := svc.Create(context.Background(), &p)

			require.ErrorIs(t, err, domproduct.ErrInvalidProduct)
			require.Contains(t, err.Error(), tt.message)
			require.Nil(t, repo.created)
		})
	}
}

func TestCreateProduct_RepositoryError(t *testing.T) {
	repo := newMockProductRepository()
	repo.createErr = errors.New("insert failed")
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), &domproduct.Product{Name: "Rice"})
	require.EqualError(t, err, "insert failed")
}

func TestUpdateProduct_MergesFields(t *testing.T) {
	repo := newMockProductRepository()
	repo.products["p-1"] = &domproduct.Product{
		ID:          "p-1",
		Name:        "Rice",
		Description: "Long grain",
		Category:    "grains",
		Price:       decimal.NewFromInt(50),
		IsActive:    true,
		Variants:    []domproduct.Variant{{Unit: "1kg", Stock: 10}},
	}
	svc := NewService(repo)

	updated, err := svc.Update(context.Background(), &domproduct.Product{
		ID:       "p-1",
		Price:    decimal.NewFromInt(55),
		IsActive: true,
	})

	require.NoError(t, err)
	require.Equal(t, "Rice", updated.Name)
	require.Equal(t, "Long grain", updated.Description)
	require.Equal(t, "grains", updated.Category)
	require.True(t, decimal.NewFromInt(55).Equal(updated.Price))
	require.Equal(t, []domproduct.Variant{{Unit: "1kg", Stock: 10}}, updated.Variants)
	require.False(t, updated.UpdatedAt.IsZero())
}

func TestUpdateProduct_ReplacesVariants(t *testing.T) {
	repo := newMockProductRepository()
	repo.products["p-1"] = &domproduct.Product{
		ID:       "p-1",
		Name:     "Rice",
		Variants: []domproduct.Variant{{Unit: "1kg", Stock: 10}},
	}
	svc := NewService(repo)

	updated, err := svc.Update(context.Background(), &domproduct.Product{
		ID:       "p-1",
		Variants: []domproduct.Variant{{Unit: "2kg", Stock: 4}},
	})

	require.NoError(t, err)
	require.Equal(t, []domproduct.Variant{{Unit: "2kg", Stock: 4}}, updated.Variants)
	require.False(t, updated.IsActive)
}

func TestUpdateProduct_InvalidVariants(t *testing.T) {
	repo := newMockProductRepository()
	repo.products["p-1"] = &domproduct.Product{ID: "p-1", Name: "Rice"}
	svc := NewService(repo)

	_, err := svc.Update(context.Background(), &domproduct.Product{
		ID:       "p-1",
		Variants: []domproduct.Variant{{Unit: "1kg", Stock: -3}},
	})

	require.ErrorIs(t, err, domproduct.ErrInvalidProduct)
	require.Nil(t, repo.updated)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	svc := NewService(newMockProductRepository())

	_, err := svc.Update(context.Background(), &domproduct.Product{ID: "missing", Name: "x"})
	require.ErrorIs(t, err, domproduct.ErrProductNotFound)
}

func TestDeleteProduct(t *testing.T) {
	repo := newMockProductRepository()
	repo.products["p-1"] = &domproduct.Product{ID: "p-1", Name: "Rice"}
	svc := NewService(repo)

	require.NoError(t, svc.Delete(context.Background(), "p-1"))
	require.Equal(t, "p-1", repo.deletedID)
	require.ErrorIs(t, svc.Delete(context.Background(), "p-1"), domproduct.ErrProductNotFound)
}

func TestListProducts_PassesFilter(t *testing.T) {
	repo := newMockProductRepository()
	repo.products["a"] = &domproduct.Product{ID: "a", Name: "Basmati Rice", Category: "grains", IsActive: true}
	repo.products["b"] = &domproduct.Product{ID: "b", Name: "Brown Rice", Category: "grains", IsActive: false}
	repo.products["c"] = &domproduct.Product{ID: "c", Name: "Olive Oil", Category: "oils", IsActive: true}
	svc := NewService(repo)

	products, err := svc.List(context.Background(), domproduct.ListFilter{Search: "rice", OnlyActive: true})
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "a", products[0].ID)

	products, err = svc.List(context.Background(), domproduct.ListFilter{Category: "grains"})
	require.NoError(t, err)
	require.Len(t, products, 2)
}
