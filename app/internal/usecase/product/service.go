package product

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	dom "example.com/shop-admin/app/internal/domain/product"
)

type Service struct {
	repo dom.Repository
}

func NewService(repo dom.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, p *dom.Product) (*dom.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, fmt.Errorf("%w: name is required", dom.ErrInvalidProduct)
	}
	if err := validate(p); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.repo.Create(ctx, p)
}

// Update merges the non-empty fields of p into the stored product.
// Variants are replaced as a whole when p carries any.
func (s *Service) Update(ctx context.Context, p *dom.Product) (*dom.Product, error) {
	existed, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(p.Name); name != "" {
		existed.Name = name
	}
	if p.Description != "" {
		existed.Description = p.Description
	}
	if p.Category != "" {
		existed.Category = p.Category
	}
	if p.Image != "" {
		existed.Image = p.Image
	}
	if p.Price.IsPositive() {
		existed.Price = p.Price
	}
	if len(p.Variants) > 0 {
		existed.Variants = p.Variants
	}
	existed.IsActive = p.IsActive

	if err := validate(existed); err != nil {
		return nil, err
	}
	existed.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, existed)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (*dom.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter dom.ListFilter) ([]*dom.Product, error) {
	return s.repo.List(ctx, filter)
}

func validate(p *dom.Product) error {
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", dom.ErrInvalidProduct)
	}
	seen := make(map[string]struct{}, len(p.Variants))
	for _, v := range p.Variants {
		unit := strings.TrimSpace(v.Unit)
		if unit == "" {
			return fmt.Errorf("%w: variant unit is required", dom.ErrInvalidProduct)
		}
		if v.Stock < 0 {
			return fmt.Errorf("%w: stock of %q must not be negative", dom.ErrInvalidProduct, unit)
		}
		if _, dup := seen[unit]; dup {
			return fmt.Errorf("%w: duplicate variant %q", dom.ErrInvalidProduct, unit)
		}
		seen[unit] = struct{}{}
	}
	return nil
}
