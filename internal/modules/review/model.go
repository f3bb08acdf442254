package review

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer's rating of a product. A user may review a product
// at most once.
type Review struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product"`
	UserID    uuid.UUID `json:"user"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReviewInput is the payload for creating or updating a review.
type ReviewInput struct {
	ProductID string `json:"product" validate:"required,uuid"`
	Content   string `json:"content" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
}
