// Package paymentrepo reads payment rows owned by the external payment
// subsystem. The due-payment sweeper consumes the read side; this pipeline
// never writes payments.
package paymentrepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fuelmarket/internal/core/domain/model/kernel"
	"fuelmarket/internal/core/domain/model/payment"
	"fuelmarket/internal/core/domain/model/pricing"
	"fuelmarket/internal/pkg/errs"
)

// PaymentDTO represents one payment row as owned by the payment subsystem.
type PaymentDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ServiceRequestID *uuid.UUID `gorm:"type:uuid"`
	UserID           uuid.UUID  `gorm:"type:uuid;index"`
	DriverID         *uuid.UUID `gorm:"type:uuid"`
	Amount           float64
	Currency         string
	Status           string `gorm:"index"`
	PaymentMethod    string
	TransactionID    *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the database table name for payments.
func (PaymentDTO) TableName() string {
	return "payments"
}

// ServiceRequestDTO represents the fuel service a payment refers to.
type ServiceRequestDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	FuelType      string
	FuelAmount    float64
	TotalPrice    float64
	PickupAddress string
	ScheduledFor  *time.Time
	Status        string
}

// TableName specifies the database table name for fuel service requests.
func (ServiceRequestDTO) TableName() string {
	return "service_requests"
}

// GormPaymentRepository implements PaymentRepository using GORM.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GORM payment repository.
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// GetAllDue retrieves every payment record in a due state (failed or
// refunded), oldest first so long-overdue payments are reminded first.
func (r *GormPaymentRepository) GetAllDue(ctx context.Context) ([]*payment.Record, error) {
	var dtos []PaymentDTO
	err := r.db.WithContext(ctx).
		Where("status IN ?", []string{string(payment.StatusFailed), string(payment.StatusRefunded)}).
		Order("created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*payment.Record, 0, len(dtos))
	for _, dto := range dtos {
		rec, err := toRecord(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

// GetServiceRequest resolves the fuel service a payment refers to.
func (r *GormPaymentRepository) GetServiceRequest(ctx context.Context, id kernel.UUID) (*payment.ServiceRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ServiceRequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("serviceRequest", id.String())
		}
		return nil, err
	}

	srID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return &payment.ServiceRequest{
		ID:            srID,
		FuelType:      pricing.FuelType(dto.FuelType),
		FuelAmount:    dto.FuelAmount,
		TotalPrice:    dto.TotalPrice,
		PickupAddress: dto.PickupAddress,
		ScheduledFor:  dto.ScheduledFor,
		Status:        dto.Status,
	}, nil
}

func toRecord(dto PaymentDTO) (*payment.Record, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	serviceRequestID, err := optionalUUID(dto.ServiceRequestID)
	if err != nil {
		return nil, err
	}

	driverID, err := optionalUUID(dto.DriverID)
	if err != nil {
		return nil, err
	}

	return &payment.Record{
		ID:               id,
		ServiceRequestID: serviceRequestID,
		UserID:           userID,
		DriverID:         driverID,
		Amount:           dto.Amount,
		Currency:         dto.Currency,
		Status:           payment.Status(dto.Status),
		PaymentMethod:    dto.PaymentMethod,
		TransactionID:    dto.TransactionID,
		CreatedAt:        dto.CreatedAt,
		UpdatedAt:        dto.UpdatedAt,
	}, nil
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}

	return &id, nil
}
