package ports

import (
	"context"

	"fuelmarket/internal/core/domain/model/kernel"
	"fuelmarket/internal/core/domain/model/payment"
)

// PaymentRepository is the read boundary onto the external payment
// subsystem's records. This pipeline never writes payments.
type PaymentRepository interface {
	// GetAllDue retrieves every payment record whose status is FAILED or
	// REFUNDED. The set is not filtered by time window; a record stays due
	// until the payment subsystem moves it out of those states.
	GetAllDue(ctx context.Context) ([]*payment.Record, error)

	// GetServiceRequest resolves the fuel service a payment refers to.
	// Returns errs.ObjectNotFoundError when the reference does not resolve.
	GetServiceRequest(ctx context.Context, id kernel.UUID) (*payment.ServiceRequest, error)
}
