// Package locationrepo reads delivery location rows owned by an external
// address book. Locations are only resolved when rendering delivery
// summaries.
package locationrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fuelmarket/internal/core/domain/model/kernel"
	"fuelmarket/internal/core/domain/model/order"
	"fuelmarket/internal/pkg/errs"
)

// LocationDTO represents one delivery location row.
type LocationDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Address string
	City    string
	State   string
}

// TableName specifies the database table name for delivery locations.
func (LocationDTO) TableName() string {
	return "delivery_locations"
}

// GormLocationRepository implements LocationRepository using GORM.
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GORM delivery location repository.
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// Get retrieves a delivery location by its identifier.
func (r *GormLocationRepository) Get(ctx context.Context, id kernel.UUID) (*order.DeliveryLocation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto LocationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("deliveryLocation", id.String())
		}
		return nil, err
	}

	locationID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return &order.DeliveryLocation{
		ID:      locationID,
		Address: dto.Address,
		City:    dto.City,
		State:   dto.State,
	}, nil
}
