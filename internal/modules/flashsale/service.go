package flashsale

import (
	"context"
	"time"

	"github.com/chesterOps/ecommerce-backend/internal/apperr"
	"github.com/google/uuid"
)

// Catalog is the slice of the catalog service flash sales depend on.
type Catalog interface {
	ProductExists(ctx context.Context, id string) (bool, error)
}

// Service defines flash sale business logic.
type Service interface {
	// Create replaces the current flash sale. Every referenced product must
	// exist; nothing is written otherwise.
	Create(ctx context.Context, req CreateRequest) (*FlashSale, error)

	// Current returns the sale whose window contains now.
	Current(ctx context.Context) (*FlashSale, error)
}

type service struct {
	repo    Repository
	catalog Catalog
	now     func() time.Time
}

// NewService creates a new flash sale service.
func NewService(repo Repository, catalog Catalog) Service {
	return &service{repo: repo, catalog: catalog, now: time.Now}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*FlashSale, error) {
	// Validate every product before touching state.
	entries := make([]SaleEntry, 0, len(req.Products))
	for _, p := range req.Products {
		id, err := uuid.Parse(p.ID)
		if err != nil {
			return nil, apperr.Newf(apperr.KindValidation, "invalid product id: %s", p.ID)
		}
		exists, err := s.catalog.ProductExists(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperr.Newf(apperr.KindNotFound, "product with id %s does not exist", p.ID)
		}
		entries = append(entries, SaleEntry{ProductID: id, Discount: p.Discount})
	}

	sale := &FlashSale{
		ID:    uuid.New(),
		Start: req.Start,
		End:   req.End,
	}
	if err := s.repo.Replace(ctx, sale, entries); err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *service) Current(ctx context.Context) (*FlashSale, error) {
	return s.repo.Current(ctx, s.now())
}
