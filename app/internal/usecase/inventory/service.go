package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	dominventory "example.com/shop-admin/app/internal/domain/inventory"
	domproduct "example.com/shop-admin/app/internal/domain/product"
)

type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*domproduct.Product, error)
}

// StockDepleted describes a variant whose stock reached zero.
type StockDepleted struct {
	EntryID     string
	ProductID   string
	ProductName string
	Variant     string
	OccurredAt  time.Time
}

type EventPublisher interface {
	PublishStockDepleted(ctx context.Context, ev StockDepleted) error
}

type Logger interface {
	Warn(msg string, keysAndValues ...interface{})
}

type Service struct {
	repo        dominventory.Repository
	productRepo ProductRepository
	events      EventPublisher
	log         Logger
}

func NewService(repo dominventory.Repository, productRepo ProductRepository, events EventPublisher, log Logger) *Service {
	return &Service{
		repo:        repo,
		productRepo: productRepo,
		events:      events,
		log:         log,
	}
}

type AddEntryInput struct {
	ProductID string
	Variant   string
	Quantity  int64
	Type      dominventory.EntryType
	Note      string
}

type AddEntryResult struct {
	Entry *dominventory.Entry
	Stock int64
}

func (s *Service) AddEntry(ctx context.Context, in AddEntryInput) (*AddEntryResult, error) {
	if !in.Type.IsValid() {
		return nil, dominventory.ErrInvalidEntryType
	}
	if in.Quantity <= 0 {
		return nil, dominventory.ErrInvalidQuantity
	}

	p, err := s.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if _, ok := p.Variant(in.Variant); !ok {
		return nil, domproduct.ErrVariantNotFound
	}

	entry := &dominventory.Entry{
		ID:        uuid.NewString(),
		ProductID: p.ID,
		Variant:   in.Variant,
		Quantity:  in.Quantity,
		Type:      in.Type,
		Note:      strings.TrimSpace(in.Note),
		CreatedAt: time.Now().UTC(),
	}
	stock, err := s.repo.Apply(ctx, entry)
	if err != nil {
		return nil, err
	}

	if entry.Type == dominventory.EntryOut && stock == 0 && s.events != nil {
		ev := StockDepleted{
			EntryID:     entry.ID,
			ProductID:   p.ID,
			ProductName: p.Name,
			Variant:     entry.Variant,
			OccurredAt:  entry.CreatedAt,
		}
		if err := s.events.PublishStockDepleted(ctx, ev); err != nil && s.log != nil {
			s.log.Warn("publish stock depleted failed", "productId", p.ID, "variant", entry.Variant, "err", err)
		}
	}

	return &AddEntryResult{Entry: entry, Stock: stock}, nil
}

func (s *Service) ListEntries(ctx context.Context, productID string) ([]*dominventory.Entry, error) {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.ListByProduct(ctx, productID)
}
