package user

import (
	"context"
	"encoding/json"
)

// Repository defines data access for users.
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// UpdateBillingAddress stores the billing address submitted at checkout
	// when the customer opts to save it.
	UpdateBillingAddress(ctx context.Context, id string, address json.RawMessage) error
}
