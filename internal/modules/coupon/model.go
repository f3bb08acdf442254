package coupon

import (
	"time"

	"github.com/google/uuid"
)

// Coupon grants a percentage discount within an active time window.
// Codes are stored upper-case and matched case-insensitively.
type Coupon struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Discount  float64   `json:"discount"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CouponInput is the admin payload for creating or updating a coupon.
type CouponInput struct {
	Code     string    `json:"code" validate:"required"`
	Discount float64   `json:"discount" validate:"required,gt=0,lte=100"`
	Start    time.Time `json:"start" validate:"required"`
	End      time.Time `json:"end" validate:"required,gtfield=Start"`
	Active   *bool     `json:"active"`
}

// ApplyRequest is the customer payload for pricing a coupon.
type ApplyRequest struct {
	Code      string  `json:"code" validate:"required"`
	CartTotal float64 `json:"cartTotal" validate:"required,gt=0"`
}

// ApplyResult is the priced outcome of a coupon application.
type ApplyResult struct {
	FinalTotal float64 `json:"finalTotal"`
	Coupon     *Coupon `json:"coupon"`
}
