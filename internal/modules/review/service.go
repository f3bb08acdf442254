package review

import (
	"context"

	"github.com/chesterOps/ecommerce-backend/internal/apperr"
	"github.com/chesterOps/ecommerce-backend/internal/modules/auth"
	"github.com/chesterOps/ecommerce-backend/internal/modules/user"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Catalog is the slice of the catalog service reviews depend on. Rating
// updates are explicit calls made here after each mutation, not persistence
// hooks.
type Catalog interface {
	ProductExists(ctx context.Context, id string) (bool, error)
	SetProductRating(ctx context.Context, id string, value float64, count int) error
	ClearProductRating(ctx context.Context, id string) error
}

// Service defines review business logic.
type Service interface {
	Create(ctx context.Context, req ReviewInput, p auth.Principal) (*Review, error)
	ListByProduct(ctx context.Context, productID string) ([]*Review, error)
	Update(ctx context.Context, id string, req ReviewInput, p auth.Principal) (*Review, error)
	Delete(ctx context.Context, id string, p auth.Principal) error
}

type service struct {
	repo    Repository
	catalog Catalog
	logger  *logrus.Logger
}

// NewService creates a new review service.
func NewService(repo Repository, catalog Catalog, logger *logrus.Logger) Service {
	return &service{repo: repo, catalog: catalog, logger: logger}
}

func (s *service) Create(ctx context.Context, req ReviewInput, p auth.Principal) (*Review, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apperr.Validation("invalid product id")
	}
	exists, err := s.catalog.ProductExists(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("product not found")
	}

	rv := &Review{
		ID:        uuid.New(),
		ProductID: productID,
		UserID:    p.UserID,
		Content:   req.Content,
		Rating:    req.Rating,
	}
	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, err
	}
	s.recalculateRating(ctx, req.ProductID)
	return rv, nil
}

func (s *service) ListByProduct(ctx context.Context, productID string) ([]*Review, error) {
	return s.repo.ListByProduct(ctx, productID)
}

func (s *service) Update(ctx context.Context, id string, req ReviewInput, p auth.Principal) (*Review, error) {
	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rv.UserID != p.UserID && p.Role != user.RoleAdmin {
		return nil, apperr.Forbidden("you can only edit your own reviews")
	}

	rv.Content = req.Content
	rv.Rating = req.Rating
	if err := s.repo.Update(ctx, rv); err != nil {
		return nil, err
	}
	s.recalculateRating(ctx, rv.ProductID.String())
	return rv, nil
}

func (s *service) Delete(ctx context.Context, id string, p auth.Principal) error {
	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rv.UserID != p.UserID && p.Role != user.RoleAdmin {
		return apperr.Forbidden("you can only delete your own reviews")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.recalculateRating(ctx, rv.ProductID.String())
	return nil
}

// recalculateRating recomputes the product's denormalised rating aggregate.
// Failures are logged; the review mutation itself is already committed.
func (s *service) recalculateRating(ctx context.Context, productID string) {
	avg, count, err := s.repo.Aggregate(ctx, productID)
	if err == nil {
		if count == 0 {
			err = s.catalog.ClearProductRating(ctx, productID)
		} else {
			err = s.catalog.SetProductRating(ctx, productID, avg, count)
		}
	}
	if err != nil {
		s.logger.WithError(err).WithField("product_id", productID).
			Error("failed to recalculate product rating")
	}
}
