package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows product listings.
type ListFilter struct {
	CategoryID    string
	PublishedOnly bool
}

// Repository defines data access for products.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	List(ctx context.Context, filter ListFilter) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)

	// DecrementStock atomically reduces stock by qty, clamping at zero.
	DecrementStock(ctx context.Context, id string, qty int) error

	// SetRating and ClearRating maintain the denormalised review aggregate.
	SetRating(ctx context.Context, id string, value float64, count int) error
	ClearRating(ctx context.Context, id string) error

	// DetachCategory removes a category reference from every product.
	DetachCategory(ctx context.Context, categoryID uuid.UUID) error
}

// CategoryRepository defines data access for categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id string) error
}
