package flashsale

import (
	"context"
	"time"
)

// Repository defines data access for the flash sale singleton.
type Repository interface {
	// Replace atomically swaps the current sale for the given one: prior
	// sales and their product overrides are removed and the new overrides
	// written, all inside a single transaction so readers never observe a
	// half-applied sale.
	Replace(ctx context.Context, sale *FlashSale, entries []SaleEntry) error

	// Current returns the sale whose window contains now, with its products
	// populated from the catalog.
	Current(ctx context.Context, now time.Time) (*FlashSale, error)
}
