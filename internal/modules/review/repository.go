package review

import "context"

// Repository defines data access for reviews.
type Repository interface {
	Create(ctx context.Context, rv *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	ListByProduct(ctx context.Context, productID string) ([]*Review, error)
	Update(ctx context.Context, rv *Review) error
	Delete(ctx context.Context, id string) error

	// Aggregate computes the average rating and review count for a product.
	Aggregate(ctx context.Context, productID string) (avg float64, count int, err error)
}
