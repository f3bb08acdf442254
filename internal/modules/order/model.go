package order

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// PaymentMethod indicates how the order is paid for.
type PaymentMethod string

const (
	MethodCard           PaymentMethod = "card"
	MethodCashOnDelivery PaymentMethod = "cash-on-delivery"
)

// BillingAddress is the address captured at checkout. AddressLine2 and
// CompanyName are the only optional fields.
type BillingAddress struct {
	Name         string `json:"name" validate:"required"`
	AddressLine1 string `json:"addressLine1" validate:"required"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	CompanyName  string `json:"companyName,omitempty"`
	City         string `json:"city" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
}

// Item is a line item snapshot. Title and price are copied from the product
// at purchase time so later catalog edits never rewrite order history.
type Item struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	ProductID uuid.UUID `json:"product"`
}

// Order records a purchase intent and its lifecycle status.
type Order struct {
	ID             uuid.UUID      `json:"id"`
	Status         Status         `json:"status"`
	PaymentMethod  PaymentMethod  `json:"paymentMethod"`
	Ref            string         `json:"ref,omitempty"` // provider transaction reference
	UserID         *uuid.UUID     `json:"user,omitempty"`
	BillingAddress BillingAddress `json:"billingAddress"`
	Items          []*Item        `json:"items"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// ItemInput describes one line of a new order.
type ItemInput struct {
	Title     string  `json:"title" validate:"required"`
	Price     float64 `json:"price" validate:"required,gt=0"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	ProductID string  `json:"product" validate:"required,uuid"`
}

// CreateRequest is the payload for recording a new order.
type CreateRequest struct {
	BillingAddress BillingAddress `json:"billingAddress" validate:"required"`
	Items          []ItemInput    `json:"items" validate:"required,min=1,dive"`
	PaymentMethod  string         `json:"paymentMethod" validate:"required,oneof=card cash-on-delivery"`
	UserID         string         `json:"-"` // set from the authenticated principal
}

// UpdateStatusRequest is the admin payload for changing an order's status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
