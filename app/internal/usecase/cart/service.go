package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	domcart "example.com/shop-admin/app/internal/domain/cart"
	domproduct "example.com/shop-admin/app/internal/domain/product"
)

type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*domproduct.Product, error)
}

// Service applies item mutations to one cart document per call: load,
// mutate a local copy, recompute the total, save. Stock checks read the
// catalog at call time and reserve nothing.
type Service struct {
	cartRepo    domcart.Repository
	productRepo ProductRepository
}

func NewService(cartRepo domcart.Repository, productRepo ProductRepository) *Service {
	return &Service{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

type AddItemInput struct {
	CartID    string
	ProductID string
	Name      string
	Variant   string
	Price     decimal.Decimal
	Quantity  int64
	Image     string
}

type UpdateItemInput struct {
	CartID    string
	ProductID string
	Variant   string
	Quantity  int64
}

type RemoveItemInput struct {
	CartID    string
	ProductID string
	Variant   string
}

func (s *Service) AddItem(ctx context.Context, in AddItemInput) (*domcart.Cart, error) {
	switch {
	case !validCartID(in.CartID):
		return nil, fmt.Errorf("%w: cartId", domcart.ErrInvalidInput)
	case strings.TrimSpace(in.ProductID) == "":
		return nil, fmt.Errorf("%w: productId", domcart.ErrInvalidInput)
	case in.Quantity <= 0:
		return nil, fmt.Errorf("%w: quantity must be positive", domcart.ErrInvalidInput)
	case !in.Price.IsPositive():
		return nil, fmt.Errorf("%w: price must be positive", domcart.ErrInvalidInput)
	}

	variant, err := s.findVariant(ctx, in.ProductID, in.Variant)
	if err != nil {
		return nil, err
	}

	c, err := s.cartRepo.Get(ctx, in.CartID)
	if err != nil && !errors.Is(err, domcart.ErrCartNotFound) {
		return nil, err
	}

	idx := -1
	projected := in.Quantity
	if c != nil {
		if idx = c.Find(in.ProductID, in.Variant); idx >= 0 {
			projected += c.Items[idx].Quantity
		}
	}
	if variant.Stock < projected {
		return nil, &domproduct.InsufficientStockError{Available: variant.Stock}
	}

	if c == nil {
		c = domcart.New(in.CartID)
	}
	if idx >= 0 {
		c.Items[idx].Quantity += in.Quantity
	} else {
		c.Items = append(c.Items, domcart.Item{
			ProductID: in.ProductID,
			Name:      in.Name,
			Variant:   in.Variant,
			Price:     in.Price,
			Quantity:  in.Quantity,
			Image:     in.Image,
		})
	}

	return s.save(ctx, c)
}

// UpdateItem sets the absolute quantity of a line. A quantity of zero or
// less removes the line.
func (s *Service) UpdateItem(ctx context.Context, in UpdateItemInput) (*domcart.Cart, error) {
	if !validCartID(in.CartID) || strings.TrimSpace(in.ProductID) == "" {
		return nil, domcart.ErrInvalidInput
	}

	c, err := s.cartRepo.Get(ctx, in.CartID)
	if err != nil {
		return nil, err
	}

	if in.Quantity > 0 {
		variant, err := s.findVariant(ctx, in.ProductID, in.Variant)
		if err != nil {
			return nil, err
		}
		if variant.Stock < in.Quantity {
			return nil, &domproduct.InsufficientStockError{Available: variant.Stock}
		}
	}

	idx := c.Find(in.ProductID, in.Variant)
	if idx < 0 {
		return nil, domcart.ErrItemNotFound
	}
	if in.Quantity > 0 {
		c.Items[idx].Quantity = in.Quantity
	} else {
		c.RemoveAt(idx)
	}

	return s.save(ctx, c)
}

// RemoveItem drops the matching line. Removing a line that is not in the
// cart returns the cart unchanged.
func (s *Service) RemoveItem(ctx context.Context, in RemoveItemInput) (*domcart.Cart, error) {
	if !validCartID(in.CartID) {
		return nil, domcart.ErrInvalidInput
	}

	c, err := s.cartRepo.Get(ctx, in.CartID)
	if err != nil {
		return nil, err
	}

	c.Remove(in.ProductID, in.Variant)
	return s.save(ctx, c)
}

// GetCart returns the stored cart, or an empty one that is not saved.
func (s *Service) GetCart(ctx context.Context, cartID string) (*domcart.Cart, error) {
	if !validCartID(cartID) {
		return nil, domcart.ErrInvalidInput
	}

	c, err := s.cartRepo.Get(ctx, cartID)
	if errors.Is(err, domcart.ErrCartNotFound) {
		return domcart.New(cartID), nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) findVariant(ctx context.Context, productID, unit string) (*domproduct.Variant, error) {
	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	variant, ok := p.Variant(unit)
	if !ok {
		return nil, domproduct.ErrVariantNotFound
	}
	return variant, nil
}

func (s *Service) save(ctx context.Context, c *domcart.Cart) (*domcart.Cart, error) {
	c.Recalculate()
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func validCartID(id string) bool {
	return strings.TrimSpace(id) != "" && len(id) <= domcart.MaxCartIDLength
}
