package user

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Roles a user can hold.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents a registered account.
type User struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	PasswordHash   string          `json:"-"`
	Role           string          `json:"role"`
	BillingAddress json.RawMessage `json:"billing_address,omitempty"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
