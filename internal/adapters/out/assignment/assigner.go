// Package assignment resolves a driver for a delivery. Driver onboarding and
// availability are owned by an external fleet service; this adapter only
// reads its rows to pick a candidate.
package assignment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fuelmarket/internal/core/domain/model/kernel"
)

// DriverDTO represents one driver row as owned by the fleet service.
type DriverDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	IsAvailable bool      `gorm:"index"`
}

// TableName specifies the database table name for drivers.
func (DriverDTO) TableName() string {
	return "drivers"
}

// GormDriverAssigner implements DriverAssigner over the fleet service's
// driver table.
type GormDriverAssigner struct {
	db *gorm.DB
}

// NewGormDriverAssigner creates a new GORM driver assigner.
func NewGormDriverAssigner(db *gorm.DB) *GormDriverAssigner {
	return &GormDriverAssigner{db: db}
}

// AssignDriver picks the first available driver and returns the driver's
// user id for notification addressing. Returns nil without error when no
// driver is currently available; availability is expected to fluctuate and
// the caller decides how to proceed.
func (a *GormDriverAssigner) AssignDriver(ctx context.Context, orderID kernel.UUID) (*kernel.UUID, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto DriverDTO
	err := a.db.WithContext(ctx).
		Where("is_available = ?", true).
		Order("id").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	return &userID, nil
}
