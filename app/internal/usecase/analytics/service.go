package analytics

import (
	"context"
	"sort"

	domproduct "example.com/shop-admin/app/internal/domain/product"
)

const DefaultLowStockThreshold int64 = 10

type ProductRepository interface {
	List(ctx context.Context, filter domproduct.ListFilter) ([]*domproduct.Product, error)
}

type StockRow struct {
	ProductID string
	Name      string
	Variant   string
	Stock     int64
}

type StockReport struct {
	LowStock   []StockRow
	OutOfStock []StockRow
}

type Service struct {
	productRepo       ProductRepository
	lowStockThreshold int64
}

func NewService(productRepo ProductRepository, lowStockThreshold int64) *Service {
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	return &Service{
		productRepo:       productRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

// StockReport lists variants that are out of stock and variants at or
// below the low stock threshold, fewest units first.
func (s *Service) StockReport(ctx context.Context) (*StockReport, error) {
	products, err := s.productRepo.List(ctx, domproduct.ListFilter{})
	if err != nil {
		return nil, err
	}

	report := &StockReport{
		LowStock:   []StockRow{},
		OutOfStock: []StockRow{},
	}
	for _, p := range products {
		for _, v := range p.Variants {
			row := StockRow{ProductID: p.ID, Name: p.Name, Variant: v.Unit, Stock: v.Stock}
			switch {
			case v.Stock <= 0:
				report.OutOfStock = append(report.OutOfStock, row)
			case v.Stock <= s.lowStockThreshold:
				report.LowStock = append(report.LowStock, row)
			}
		}
	}

	sortRows(report.LowStock)
	sortRows(report.OutOfStock)
	return report, nil
}

func sortRows(rows []StockRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Stock != rows[j].Stock {
			return rows[i].Stock < rows[j].Stock
		}
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].Variant < rows[j].Variant
	})
}
