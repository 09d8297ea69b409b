// Package pricing implements the rate configuration model used by the
// pricing engine. A Config row exists per (fuel type, delivery mode) pair and
// is seeded out of band; the engine only ever reads it.
package pricing

import (
	"errors"
	"fmt"

	"fuelmarket/internal/core/domain/model/kernel"
	"fuelmarket/internal/pkg/errs"
)

// ErrConfigIsNotConstructed is returned when a Config instance was not created
// through the NewConfig factory function.
var ErrConfigIsNotConstructed = errors.New("Config must be created via NewConfig constructor")

// Fees carries the optional fee components of a rate configuration.
// A nil field means the component is not configured and contributes nothing.
type Fees struct {
	// ServiceFee is a flat fee added to every priced order.
	ServiceFee *float64

	// DistanceFee is charged per unit distance travelled.
	DistanceFee *float64

	// UrgencyFee is a flat surcharge, typically set for EMERGENCY mode.
	UrgencyFee *float64

	// DiscountRate is the volume discount as a fraction in [0, 1].
	DiscountRate *float64

	// DiscountThreshold is the quantity a line must strictly exceed for the
	// discount to apply.
	DiscountThreshold *float64
}

// Config is a rate configuration keyed by (fuel type, delivery mode).
// Absence of a matching row for a lookup is an error condition, never a
// default-to-zero price.
type Config struct {
	id           kernel.UUID
	fuelType     FuelType
	deliveryMode DeliveryMode
	basePrice    float64
	fees         Fees

	isConstructed bool
}

// NewConfig creates a validated rate configuration.
//
// Validation rules:
//   - fuelType and deliveryMode must be known values
//   - basePrice must not be negative
//   - every configured fee must not be negative
//   - DiscountRate, when configured, must lie in [0, 1]
func NewConfig(
	id kernel.UUID,
	fuelType FuelType,
	deliveryMode DeliveryMode,
	basePrice float64,
	fees Fees,
) (*Config, error) {
	cfg := &Config{
		isConstructed: true,
	}

	if err := errors.Join(
		cfg.setID(id),
		cfg.setKey(fuelType, deliveryMode),
		cfg.setBasePrice(basePrice),
		cfg.setFees(fees),
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures the Config was created through NewConfig.
func (c *Config) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrConfigIsNotConstructed
	}
	return nil
}

// ID returns the configuration row's unique identifier.
func (c *Config) ID() kernel.UUID {
	return c.id
}

// FuelType returns the fuel type half of the lookup key.
func (c *Config) FuelType() FuelType {
	return c.fuelType
}

// DeliveryMode returns the delivery mode half of the lookup key.
func (c *Config) DeliveryMode() DeliveryMode {
	return c.deliveryMode
}

// BasePrice returns the price per unit quantity.
func (c *Config) BasePrice() float64 {
	return c.basePrice
}

// Fees returns the optional fee components.
func (c *Config) Fees() Fees {
	return c.fees
}

func (c *Config) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Config) setKey(fuelType FuelType, deliveryMode DeliveryMode) error {
	if err := errors.Join(fuelType.Validate(), deliveryMode.Validate()); err != nil {
		return err
	}
	c.fuelType = fuelType
	c.deliveryMode = deliveryMode
	return nil
}

func (c *Config) setBasePrice(basePrice float64) error {
	if basePrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"base price is invalid",
			fmt.Errorf("%v is negative", basePrice),
		)
	}
	c.basePrice = basePrice
	return nil
}

func (c *Config) setFees(fees Fees) error {
	for name, fee := range map[string]*float64{
		"service fee":        fees.ServiceFee,
		"distance fee":       fees.DistanceFee,
		"urgency fee":        fees.UrgencyFee,
		"discount threshold": fees.DiscountThreshold,
	} {
		if fee != nil && *fee < 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				name+" is invalid",
				fmt.Errorf("%v is negative", *fee),
			)
		}
	}

	if fees.DiscountRate != nil && (*fees.DiscountRate < 0 || *fees.DiscountRate > 1) {
		return errs.NewValueIsOutOfRangeError("discount rate", *fees.DiscountRate, 0, 1)
	}

	c.fees = fees
	return nil
}
