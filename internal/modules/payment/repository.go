package payment

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the payment ledger. Records are keyed by the provider
// transaction reference; the unique constraint on it is what makes webhook
// replays safe under concurrency.
type Repository interface {
	// Create inserts a record, failing with Conflict when the reference
	// already exists.
	Create(ctx context.Context, rec *Record) error

	// GetByTxRef returns the record for a reference, or nil when absent.
	GetByTxRef(ctx context.Context, txRef string) (*Record, error)

	// AttachOrder marks the reference as finalized by the given order.
	AttachOrder(ctx context.Context, txRef string, orderID uuid.UUID) error
}
