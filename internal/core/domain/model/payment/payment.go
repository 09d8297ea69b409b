// Package payment holds the read model for payment records. Payment capture
// and refunds are owned by an external payment subsystem; the due-payment
// sweeper only reads records in terminal failure states to remind the
// affected users.
package payment

import (
	"time"

	"fuelmarket/internal/core/domain/model/kernel"
	"fuelmarket/internal/core/domain/model/pricing"
)

// Status is the payment lifecycle state as persisted by the payment subsystem.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
	StatusRefunded  Status = "REFUNDED"
)

// IsDue reports whether the payment is in a terminal failure state that
// warrants a reminder (failed or refunded).
func (s Status) IsDue() bool {
	return s == StatusFailed || s == StatusRefunded
}

// Record is a payment row as seen by the sweeper.
type Record struct {
	ID               kernel.UUID
	ServiceRequestID *kernel.UUID
	UserID           kernel.UUID
	DriverID         *kernel.UUID
	Amount           float64
	Currency         string
	Status           Status
	PaymentMethod    string
	TransactionID    *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ServiceRequest is the fuel service a payment record refers to, resolved
// best-effort when rendering payment summaries.
type ServiceRequest struct {
	ID            kernel.UUID
	FuelType      pricing.FuelType
	FuelAmount    float64
	TotalPrice    float64
	PickupAddress string
	ScheduledFor  *time.Time
	Status        string
}
