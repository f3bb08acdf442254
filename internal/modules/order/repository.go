package order

import "context"

// Repository defines data access for orders.
type Repository interface {
	// Create persists an order and its items atomically.
	Create(ctx context.Context, o *Order) error

	// GetByID retrieves an order with its items.
	GetByID(ctx context.Context, id string) (*Order, error)

	// ListAll returns every order, newest first.
	ListAll(ctx context.Context) ([]*Order, error)

	// ListByUser returns the orders owned by a user, newest first.
	ListByUser(ctx context.Context, userID string) ([]*Order, error)

	// UpdateStatus moves an order to a new status.
	UpdateStatus(ctx context.Context, id string, status Status) error

	// Delete removes an order and its items.
	Delete(ctx context.Context, id string) error
}
