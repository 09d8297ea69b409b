package pricing

import (
	"fmt"

	"fuelmarket/internal/pkg/errs"
)

// FuelType identifies the kind of fuel an order is for.
// Stored and transported as its string value, e.g. "GASOLINE".
type FuelType string

const (
	Gasoline FuelType = "GASOLINE"
	Diesel   FuelType = "DIESEL"
	Electric FuelType = "ELECTRIC"
	Hybrid   FuelType = "HYBRID"
	Other    FuelType = "OTHER"
)

// FuelTypes returns all valid fuel types in display order.
func FuelTypes() []FuelType {
	return []FuelType{Gasoline, Diesel, Electric, Hybrid, Other}
}

// Validate checks that the fuel type is one of the known values.
func (f FuelType) Validate() error {
	switch f {
	case Gasoline, Diesel, Electric, Hybrid, Other:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"fuel type is invalid",
		fmt.Errorf("%q is not a valid fuel type", string(f)),
	)
}

// String implements fmt.Stringer.
func (f FuelType) String() string {
	return string(f)
}
