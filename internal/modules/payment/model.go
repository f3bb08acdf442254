package payment

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Customer is the payer identity sent to the provider when initiating a
// charge.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CheckoutMeta is the checkout context round-tripped through the payment
// provider as opaque metadata and handed back on the webhook. Items is a
// JSON-encoded cart kept as a string, matching how providers echo metadata.
type CheckoutMeta struct {
	FirstName    string `json:"firstName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	CompanyName  string `json:"companyName,omitempty"`
	UserID       string `json:"userId,omitempty"`
	Items        string `json:"items"`
}

// ChargeRequest is the provider-agnostic payload for initiating a charge.
type ChargeRequest struct {
	TxRef    string
	Amount   float64
	Currency string
	Customer Customer
	Meta     CheckoutMeta
}

// ChargeResponse is the provider's answer to a charge initiation. Raw holds
// the unmodified provider payload returned to the client, which contains the
// redirect link the customer completes payment on.
type ChargeResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Link    string          `json:"link,omitempty"`
	Raw     json.RawMessage `json:"-"`
}

// Event is a normalised webhook event.
type Event struct {
	Provider  string
	Type      string
	Status    string
	TxRef     string
	Amount    float64
	Currency  string
	Succeeded bool
	Meta      CheckoutMeta
}

// Record is one row of the payment ledger, keyed by the provider transaction
// reference. A record with an attached order marks that reference as
// finalized; replayed webhooks for it are no-ops.
type Record struct {
	ID        uuid.UUID  `json:"id"`
	Provider  string     `json:"provider"`
	TxRef     string     `json:"tx_ref"`
	Amount    float64    `json:"amount"`
	Currency  string     `json:"currency"`
	OrderID   *uuid.UUID `json:"order_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CheckoutItem is one cart line submitted at checkout.
type CheckoutItem struct {
	Title     string  `json:"title" validate:"required"`
	Price     float64 `json:"price" validate:"required,gt=0"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	ProductID string  `json:"product" validate:"required,uuid"`
}

// CheckoutRequest is the customer payload for the checkout flow.
type CheckoutRequest struct {
	FirstName    string         `json:"firstName" validate:"required"`
	Email        string         `json:"email" validate:"required,email"`
	Amount       float64        `json:"amount" validate:"required,gt=0"`
	Phone        string         `json:"phone" validate:"required"`
	City         string         `json:"city" validate:"required"`
	AddressLine1 string         `json:"addressLine1" validate:"required"`
	AddressLine2 string         `json:"addressLine2"`
	CompanyName  string         `json:"companyName"`
	Items        []CheckoutItem `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string        `json:"paymentMethod" validate:"required,oneof=card cash-on-delivery"`
	SaveAddress  bool           `json:"saveAddress"`
}
