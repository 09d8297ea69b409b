package commands

import (
	"errors"
	"fmt"

	"fuelmarket/internal/core/domain/model/pricing"
	"fuelmarket/internal/pkg/guard"
)

var (
	ErrUpdateUrgencyFeeCommandIsNotConstructed = errors.New(
		"UpdateUrgencyFeeCommand must be created via NewUpdateUrgencyFeeCommand constructor",
	)
	ErrUrgencyFeeIsInvalid = errors.New("urgency fee must not be negative")
)

// UpdateUrgencyFeeCommand represents an administrative request to adjust the
// urgency fee on one rate configuration.
type UpdateUrgencyFeeCommand struct { //nolint:recvcheck //using for validation
	fuelType     pricing.FuelType
	deliveryMode pricing.DeliveryMode
	fee          float64

	guard guard.ConstructorGuard
}

// NewUpdateUrgencyFeeCommand creates a command to adjust an urgency fee.
// Validates the (fuel type, delivery mode) key and that the fee is not
// negative.
func NewUpdateUrgencyFeeCommand(
	fuelType pricing.FuelType,
	deliveryMode pricing.DeliveryMode,
	fee float64,
) (UpdateUrgencyFeeCommand, error) {
	cmd := UpdateUrgencyFeeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(fuelType.Validate(), deliveryMode.Validate()); err != nil {
		return UpdateUrgencyFeeCommand{}, err
	}

	if fee < 0 {
		return UpdateUrgencyFeeCommand{}, fmt.Errorf("%w: got %v", ErrUrgencyFeeIsInvalid, fee)
	}

	cmd.fuelType = fuelType
	cmd.deliveryMode = deliveryMode
	cmd.fee = fee
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateUrgencyFeeCommand) Validate() error {
	return c.guard.Validate(ErrUpdateUrgencyFeeCommandIsNotConstructed)
}

// FuelType returns the fuel type half of the configuration key.
func (c UpdateUrgencyFeeCommand) FuelType() pricing.FuelType {
	return c.fuelType
}

// DeliveryMode returns the delivery mode half of the configuration key.
func (c UpdateUrgencyFeeCommand) DeliveryMode() pricing.DeliveryMode {
	return c.deliveryMode
}

// Fee returns the new urgency fee.
func (c UpdateUrgencyFeeCommand) Fee() float64 {
	return c.fee
}
