package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products for browsing.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Rating is the denormalised review aggregate stored on a product.
type Rating struct {
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// SaleOverride is the flash-sale discount attached to a product while a
// sale that includes it is live. When present it takes precedence over the
// product's declared discount.
type SaleOverride struct {
	SaleID   uuid.UUID `json:"id"`
	Discount int       `json:"discount"`
}

// Product is a catalog entry. Stock is decremented by fulfilled orders.
type Product struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Stock       int           `json:"stock"`
	Discount    int           `json:"discount,omitempty"`
	Published   bool          `json:"published"`
	Images      []string      `json:"images,omitempty"`
	CategoryIDs []uuid.UUID   `json:"categories,omitempty"`
	Rating      *Rating       `json:"rating,omitempty"`
	Sale        *SaleOverride `json:"flashsale,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// ProductInput is the payload for creating or updating a product.
type ProductInput struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Discount    int      `json:"discount" validate:"omitempty,min=10,max=90"`
	Published   *bool    `json:"published"`
	Images      []string `json:"images"`
	CategoryIDs []string `json:"categories"`
}

// CategoryInput is the payload for creating or renaming a category.
type CategoryInput struct {
	Name string `json:"name" validate:"required"`
}
