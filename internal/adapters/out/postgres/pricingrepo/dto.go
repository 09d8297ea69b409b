// Package pricingrepo persists rate configurations for the pricing engine.
// Rows are keyed by (fuel type, delivery mode); the pipeline reads them and
// administers the urgency fee, everything else is seeded out of band.
package pricingrepo

import (
	"github.com/google/uuid"

	"fuelmarket/internal/core/domain/model/kernel"
	"fuelmarket/internal/core/domain/model/pricing"
)

// ConfigDTO represents one rate configuration row.
type ConfigDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	FuelType          string    `gorm:"uniqueIndex:idx_price_configs_key"`
	DeliveryMode      string    `gorm:"uniqueIndex:idx_price_configs_key"`
	BasePrice         float64
	ServiceFee        *float64
	DistanceFee       *float64
	UrgencyFee        *float64
	DiscountRate      *float64
	DiscountThreshold *float64
}

// TableName specifies the database table name for rate configurations.
func (ConfigDTO) TableName() string {
	return "price_configs"
}

// toDomain converts a database DTO to a pricing configuration aggregate.
func toDomain(dto ConfigDTO) (*pricing.Config, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return pricing.NewConfig(
		id,
		pricing.FuelType(dto.FuelType),
		pricing.DeliveryMode(dto.DeliveryMode),
		dto.BasePrice,
		pricing.Fees{
			ServiceFee:        dto.ServiceFee,
			DistanceFee:       dto.DistanceFee,
			UrgencyFee:        dto.UrgencyFee,
			DiscountRate:      dto.DiscountRate,
			DiscountThreshold: dto.DiscountThreshold,
		},
	)
}
