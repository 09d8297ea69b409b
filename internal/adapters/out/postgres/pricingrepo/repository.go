package pricingrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fuelmarket/internal/core/domain/model/pricing"
	"fuelmarket/internal/pkg/errs"
)

// GormPriceConfigRepository implements PriceConfigRepository using GORM.
type GormPriceConfigRepository struct {
	db *gorm.DB
}

// NewGormPriceConfigRepository creates a new GORM rate configuration repository.
func NewGormPriceConfigRepository(db *gorm.DB) *GormPriceConfigRepository {
	return &GormPriceConfigRepository{db: db}
}

// Find retrieves the configuration matching the given (fuel type, delivery
// mode) key. A missing row is an error, never a default configuration.
func (r *GormPriceConfigRepository) Find(
	ctx context.Context,
	fuelType pricing.FuelType,
	mode pricing.DeliveryMode,
) (*pricing.Config, error) {
	var dto ConfigDTO
	err := r.db.WithContext(ctx).
		First(&dto, "fuel_type = ? AND delivery_mode = ?", string(fuelType), string(mode)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("priceConfig",
				fmt.Sprintf("%s/%s", fuelType, mode))
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateUrgencyFee adjusts the urgency fee on the configuration matching the
// given key.
func (r *GormPriceConfigRepository) UpdateUrgencyFee(
	ctx context.Context,
	fuelType pricing.FuelType,
	mode pricing.DeliveryMode,
	fee float64,
) error {
	result := r.db.WithContext(ctx).
		Model(&ConfigDTO{}).
		Where("fuel_type = ? AND delivery_mode = ?", string(fuelType), string(mode)).
		Update("urgency_fee", fee)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("priceConfig",
			fmt.Sprintf("%s/%s", fuelType, mode))
	}

	return nil
}
