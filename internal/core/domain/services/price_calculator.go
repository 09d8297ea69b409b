package services

import (
	"fmt"

	"fuelmarket/internal/core/domain/model/pricing"
	"fuelmarket/internal/pkg/errs"
)

// PriceCalculator is the pricing engine: a pure function from a rate
// configuration and order parameters to a total price.
//
// The order of operations is fixed and must not be rearranged, because the
// volume discount applies to the base-price subtotal only, before any fees:
//
//  1. total = basePrice * quantity
//  2. volume discount, if configured and quantity strictly exceeds the threshold
//  3. service fee
//  4. distance fee, when a distance was travelled
//  5. urgency fee
//
// No currency rounding is applied; rounding and display formatting are a
// caller concern.
type PriceCalculator struct{}

// NewPriceCalculator creates a new PriceCalculator instance.
func NewPriceCalculator() PriceCalculator {
	return PriceCalculator{}
}

// Calculate computes the total price for the given quantity and distance.
//
// Parameters:
//   - cfg: the rate configuration matched for the order's fuel type and
//     delivery mode (must be valid)
//   - quantity: ordered fuel quantity (must not be negative; zero passes through)
//   - distance: delivery distance in the configuration's distance unit
//     (must not be negative; zero skips the distance fee)
//
// Returns the computed total, or a validation error for negative inputs.
// Calculate has no side effects and is deterministic for fixed inputs.
func (PriceCalculator) Calculate(cfg *pricing.Config, quantity, distance float64) (float64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}

	if quantity < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%v is negative", quantity),
		)
	}

	if distance < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"distance is invalid",
			fmt.Errorf("%v is negative", distance),
		)
	}

	fees := cfg.Fees()
	total := cfg.BasePrice() * quantity

	// Volume discount applies strictly above the threshold, never at it.
	if fees.DiscountThreshold != nil && fees.DiscountRate != nil && quantity > *fees.DiscountThreshold {
		total *= 1 - *fees.DiscountRate
	}

	if fees.ServiceFee != nil {
		total += *fees.ServiceFee
	}

	if fees.DistanceFee != nil && distance != 0 {
		total += *fees.DistanceFee * distance
	}

	if fees.UrgencyFee != nil {
		total += *fees.UrgencyFee
	}

	return total, nil
}
