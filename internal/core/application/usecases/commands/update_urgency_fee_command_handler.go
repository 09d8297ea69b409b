package commands

import (
	"context"

	"fuelmarket/internal/core/ports"
)

// UpdateUrgencyFeeCommandHandler adjusts the urgency fee on a rate
// configuration. Administrative operation; the target configuration must
// already exist.
type UpdateUrgencyFeeCommandHandler struct {
	configs ports.PriceConfigRepository
}

// NewUpdateUrgencyFeeCommandHandler creates a handler for urgency fee updates.
func NewUpdateUrgencyFeeCommandHandler(configs ports.PriceConfigRepository) UpdateUrgencyFeeCommandHandler {
	return UpdateUrgencyFeeCommandHandler{configs: configs}
}

// Handle processes the urgency fee update command.
func (h UpdateUrgencyFeeCommandHandler) Handle(ctx context.Context, cmd UpdateUrgencyFeeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.configs.UpdateUrgencyFee(ctx, cmd.FuelType(), cmd.DeliveryMode(), cmd.Fee())
}
