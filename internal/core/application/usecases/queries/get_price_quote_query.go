package queries

import (
	"errors"
	"fmt"

	"fuelmarket/internal/core/domain/model/pricing"
	"fuelmarket/internal/pkg/guard"
)

var (
	ErrGetPriceQuoteQueryIsNotConstructed = errors.New(
		"GetPriceQuoteQuery must be created via NewGetPriceQuoteQuery constructor",
	)
	ErrQuoteQuantityIsInvalid = errors.New("quantity must be greater than 0")
	ErrQuoteDistanceIsInvalid = errors.New("distance must not be negative")
)

// GetPriceQuoteQuery computes the price of a prospective order without
// placing it.
type GetPriceQuoteQuery struct {
	fuelType     pricing.FuelType
	deliveryMode pricing.DeliveryMode
	quantity     float64
	distance     float64

	guard guard.ConstructorGuard
}

// NewGetPriceQuoteQuery creates a price quote query. Validates the
// (fuel type, delivery mode) key, positive quantity, and non-negative
// distance.
func NewGetPriceQuoteQuery(
	fuelType pricing.FuelType,
	deliveryMode pricing.DeliveryMode,
	quantity, distance float64,
) (GetPriceQuoteQuery, error) {
	if err := errors.Join(fuelType.Validate(), deliveryMode.Validate()); err != nil {
		return GetPriceQuoteQuery{}, err
	}

	if quantity <= 0 {
		return GetPriceQuoteQuery{}, fmt.Errorf("%w: got %v", ErrQuoteQuantityIsInvalid, quantity)
	}

	if distance < 0 {
		return GetPriceQuoteQuery{}, fmt.Errorf("%w: got %v", ErrQuoteDistanceIsInvalid, distance)
	}

	return GetPriceQuoteQuery{
		fuelType:     fuelType,
		deliveryMode: deliveryMode,
		quantity:     quantity,
		distance:     distance,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPriceQuoteQuery) Validate() error {
	return q.guard.Validate(ErrGetPriceQuoteQueryIsNotConstructed)
}

// FuelType returns the quoted fuel type.
func (q GetPriceQuoteQuery) FuelType() pricing.FuelType {
	return q.fuelType
}

// DeliveryMode returns the quoted delivery mode.
func (q GetPriceQuoteQuery) DeliveryMode() pricing.DeliveryMode {
	return q.deliveryMode
}

// Quantity returns the quoted fuel quantity.
func (q GetPriceQuoteQuery) Quantity() float64 {
	return q.quantity
}

// Distance returns the quoted delivery distance.
func (q GetPriceQuoteQuery) Distance() float64 {
	return q.distance
}

// PriceQuoteResponse represents a computed price quote.
type PriceQuoteResponse struct {
	FuelType     pricing.FuelType
	DeliveryMode pricing.DeliveryMode
	Quantity     float64
	Distance     float64
	Total        float64
}
