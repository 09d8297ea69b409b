package ports

import (
	"context"

	"fuelmarket/internal/core/domain/model/pricing"
)

// PriceConfigRepository defines the read/administer contract for rate
// configurations. Rows are seeded out of band; the pipeline reads them by
// their (fuel type, delivery mode) key.
type PriceConfigRepository interface {
	// Find retrieves the configuration matching the given key.
	// Absence of a matching row is an error (errs.ObjectNotFoundError),
	// never a default-to-zero configuration.
	Find(ctx context.Context, fuelType pricing.FuelType, mode pricing.DeliveryMode) (*pricing.Config, error)

	// UpdateUrgencyFee adjusts the urgency fee on the configuration
	// matching the given key. Administrative operation.
	UpdateUrgencyFee(ctx context.Context, fuelType pricing.FuelType, mode pricing.DeliveryMode, fee float64) error
}
