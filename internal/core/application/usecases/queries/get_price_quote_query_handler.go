package queries

import (
	"context"

	"fuelmarket/internal/core/domain/services"
	"fuelmarket/internal/core/ports"
)

// GetPriceQuoteQueryHandler computes price quotes from the matching rate
// configuration. A missing configuration fails the quote; quoting never
// defaults a price.
type GetPriceQuoteQueryHandler struct {
	configs    ports.PriceConfigRepository
	calculator services.PriceCalculator
}

// NewGetPriceQuoteQueryHandler creates a handler for price quotes.
func NewGetPriceQuoteQueryHandler(
	configs ports.PriceConfigRepository,
	calculator services.PriceCalculator,
) GetPriceQuoteQueryHandler {
	return GetPriceQuoteQueryHandler{
		configs:    configs,
		calculator: calculator,
	}
}

// Handle executes the quote computation.
func (h GetPriceQuoteQueryHandler) Handle(ctx context.Context, query GetPriceQuoteQuery) (PriceQuoteResponse, error) {
	if err := query.Validate(); err != nil {
		return PriceQuoteResponse{}, err
	}

	cfg, err := h.configs.Find(ctx, query.FuelType(), query.DeliveryMode())
	if err != nil {
		return PriceQuoteResponse{}, err
	}

	total, err := h.calculator.Calculate(cfg, query.Quantity(), query.Distance())
	if err != nil {
		return PriceQuoteResponse{}, err
	}

	return PriceQuoteResponse{
		FuelType:     query.FuelType(),
		DeliveryMode: query.DeliveryMode(),
		Quantity:     query.Quantity(),
		Distance:     query.Distance(),
		Total:        total,
	}, nil
}
