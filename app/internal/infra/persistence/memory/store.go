// Package memory keeps every repository in process memory. It backs local
// runs and tests; nothing survives a restart.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	domadmin "example.com/shop-admin/app/internal/domain/admin"
	domcart "example.com/shop-admin/app/internal/domain/cart"
	dominventory "example.com/shop-admin/app/internal/domain/inventory"
	domproduct "example.com/shop-admin/app/internal/domain/product"
)

type Store struct {
	mu       sync.RWMutex
	carts    map[string]*domcart.Cart
	products map[string]*domproduct.Product
	entries  []*dominventory.Entry
	admins   map[string]*domadmin.Admin
}

func NewStore() *Store {
	return &Store{
		carts:    make(map[string]*domcart.Cart),
		products: make(map[string]*domproduct.Product),
		admins:   make(map[string]*domadmin.Admin),
	}
}

// Carts, Products, Inventory and Admins expose the store through the
// matching domain repository.
func (s *Store) Carts() *CartRepository { return &CartRepository{s: s} }
func (s *Store) Products() *ProductRepository { return &ProductRepository{s: s} }
func (s *Store) Inventory() *InventoryRepository { return &InventoryRepository{s: s} }
func (s *Store) Admins() *AdminRepository { return &AdminRepository{s: s} }

type CartRepository struct {
	s *Store
}

func (r *CartRepository) Get(ctx context.Context, cartID string) (*domcart.Cart, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.carts[cartID]
	if !ok {
		return nil, domcart.ErrCartNotFound
	}
	return c.Clone(), nil
}

func (r *CartRepository) Save(ctx context.Context, c *domcart.Cart) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.carts[c.CartID] = c.Clone()
	return nil
}

type ProductRepository struct {
	s *Store
}

func (r *ProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.products[p.ID] = cloneProduct(p)
	return p, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.products[p.ID]; !ok {
		return nil, domproduct.ErrProductNotFound
	}
	r.s.products[p.ID] = cloneProduct(p)
	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.products[id]; !ok {
		return domproduct.ErrProductNotFound
	}
	delete(r.s.products, id)
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domproduct.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, domproduct.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

// List returns matching products, newest first.
func (r *ProductRepository) List(ctx context.Context, filter domproduct.ListFilter) ([]*domproduct.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	products := make([]*domproduct.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if filter.OnlyActive && !p.IsActive {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		products = append(products, cloneProduct(p))
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].ID < products[j].ID
		}
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products, nil
}

type InventoryRepository struct {
	s *Store
}

func (r *InventoryRepository) Apply(ctx context.Context, e *dominventory.Entry) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[e.ProductID]
	if !ok {
		return 0, domproduct.ErrProductNotFound
	}
	v, ok := p.Variant(e.Variant)
	if !ok {
		return 0, domproduct.ErrVariantNotFound
	}
	next := v.Stock + e.Delta()
	if next < 0 {
		return 0, &domproduct.InsufficientStockError{Available: v.Stock}
	}
	v.Stock = next

	stored := *e
	r.s.entries = append(r.s.entries, &stored)
	return next, nil
}

func (r *InventoryRepository) ListByProduct(ctx context.Context, productID string) ([]*dominventory.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	entries := []*dominventory.Entry{}
	for i := len(r.s.entries) - 1; i >= 0; i-- {
		if e := r.s.entries[i]; e.ProductID == productID {
			cloned := *e
			entries = append(entries, &cloned)
		}
	}
	return entries, nil
}

type AdminRepository struct {
	s *Store
}

func (r *AdminRepository) Create(ctx context.Context, a *domadmin.Admin) (*domadmin.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := strings.ToLower(a.Email)
	if _, ok := r.s.admins[key]; ok {
		return nil, domadmin.ErrEmailAlreadyUsed
	}
	stored := *a
	r.s.admins[key] = &stored
	return a, nil
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*domadmin.Admin, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.admins[strings.ToLower(email)]
	if !ok {
		return nil, domadmin.ErrAdminNotFound
	}
	cloned := *a
	return &cloned, nil
}

func cloneProduct(p *domproduct.Product) *domproduct.Product {
	cloned := *p
	cloned.Variants = append([]domproduct.Variant(nil), p.Variants...)
	return &cloned
}
