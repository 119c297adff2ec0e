package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Variant struct {
	Unit  string
	Stock int64
}

type Product struct {
	ID          string
	Name        string
	Description string
	Category    string
	Image       string
	Price       decimal.Decimal
	IsActive    bool
	Variants    []Variant
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Variant looks up a variant by its unit, e.g. "1kg".
func (p *Product) Variant(unit string) (*Variant, bool) {
	for i := range p.Variants {
		if p.Variants[i].Unit == unit {
			return &p.Variants[i], true
		}
	}
	return nil, false
}

type ListFilter struct {
	Category   string
	Search     string
	OnlyActive bool
}
