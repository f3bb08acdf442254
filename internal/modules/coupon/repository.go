package coupon

import "context"

// Repository defines data access for coupons.
type Repository interface {
	Create(ctx context.Context, c *Coupon) error
	GetByID(ctx context.Context, id string) (*Coupon, error)

	// GetActiveByCode looks up an active coupon by its upper-cased code.
	GetActiveByCode(ctx context.Context, code string) (*Coupon, error)
	List(ctx context.Context) ([]*Coupon, error)
	Update(ctx context.Context, c *Coupon) error
	Delete(ctx context.Context, id string) error
}
