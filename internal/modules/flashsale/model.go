package flashsale

import (
	"time"

	"github.com/google/uuid"
)

// FlashSale is the single time-bounded promotion. Creating a new one
// replaces whatever sale existed before, so at most one row exists.
type FlashSale struct {
	ID        uuid.UUID     `json:"id"`
	Start     time.Time     `json:"start"`
	End       time.Time     `json:"end"`
	Products  []SaleProduct `json:"products,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// SaleProduct is a product included in the sale with its override discount,
// populated from the catalog for reads.
type SaleProduct struct {
	ProductID uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	Discount  int       `json:"discount"`
}

// SaleEntry pairs a product with its sale discount when creating a sale.
type SaleEntry struct {
	ProductID uuid.UUID
	Discount  int
}

// CreateRequest is the admin payload for replacing the current flash sale.
type CreateRequest struct {
	Start    time.Time      `json:"start" validate:"required"`
	End      time.Time      `json:"end" validate:"required,gtfield=Start"`
	Products []ProductInput `json:"products" validate:"required,min=1,dive"`
}

// ProductInput names a product and its discount within the sale.
type ProductInput struct {
	ID       string `json:"id" validate:"required"`
	Discount int    `json:"discount" validate:"required,min=10,max=90"`
}
