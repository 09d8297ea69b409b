// Package job defines the queue message model for background delivery
// processing. Jobs are tagged by kind and carry a strongly-typed payload per
// kind; only the delivery kind exists today, but the shape anticipates more.
//
// A job lives in the durable queue, not in the database. Completed jobs are
// discarded; jobs that exhaust their retry budget are retained on a
// dead-letter list for operator inspection.
package job

import (
	"fmt"
	"time"

	"fuelmarket/internal/core/domain/model/order"
	"fuelmarket/internal/pkg/errs"
)

// Kind tags a job with the handler responsible for it.
type Kind string

// KindDelivery is a deferred fuel delivery to be processed near its
// scheduled time.
const KindDelivery Kind = "delivery"

// DefaultMaxAttempts is the queue-level retry budget per job.
const DefaultMaxAttempts = 3

// DeliveryPayload is the order snapshot captured at enqueue time.
// The worker re-reads the order at consumption time, so the snapshot only
// needs enough to locate the order and to be inspectable on the dead-letter
// list.
type DeliveryPayload struct {
	OrderID      string     `json:"orderId"`
	UserID       string     `json:"userId"`
	OrderNumber  string     `json:"orderNumber"`
	TotalAmount  float64    `json:"totalAmount"`
	Currency     string     `json:"currency"`
	ScheduledFor *time.Time `json:"scheduledFor,omitempty"`
}

// Job is a single queue message.
type Job struct {
	// Key deduplicates enqueues: re-enqueueing a key that is still pending
	// is a no-op at the queue layer.
	Key string `json:"key"`

	Kind        Kind      `json:"kind"`
	Attempts    int       `json:"attempts"`
	MaxAttempts int       `json:"maxAttempts"`
	EnqueuedAt  time.Time `json:"enqueuedAt"`

	// LastError records the most recent processing failure, for inspection
	// of retried and dead-lettered jobs.
	LastError string `json:"lastError,omitempty"`

	Delivery *DeliveryPayload `json:"delivery,omitempty"`
}

// NewDeliveryJob builds a delivery job for the given order, keyed by the
// order id so redundant enqueues deduplicate.
func NewDeliveryJob(o *order.Order) (Job, error) {
	if err := o.Validate(); err != nil {
		return Job{}, err
	}

	return Job{
		Key:         fmt.Sprintf("%s:%s", KindDelivery, o.ID()),
		Kind:        KindDelivery,
		MaxAttempts: DefaultMaxAttempts,
		EnqueuedAt:  time.Now().UTC(),
		Delivery: &DeliveryPayload{
			OrderID:      o.ID().String(),
			UserID:       o.UserID().String(),
			OrderNumber:  o.OrderNumber(),
			TotalAmount:  o.TotalAmount(),
			Currency:     o.Currency(),
			ScheduledFor: o.ScheduledFor(),
		},
	}, nil
}

// Validate checks that the job is well formed: a known kind, a key, and the
// payload matching the kind.
func (j Job) Validate() error {
	if j.Key == "" {
		return errs.NewValueIsRequiredError("job key")
	}

	switch j.Kind {
	case KindDelivery:
		if j.Delivery == nil {
			return errs.NewValueIsRequiredError("delivery payload")
		}
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"job kind is invalid",
			fmt.Errorf("%q is not a known job kind", string(j.Kind)),
		)
	}

	return nil
}

// Exhausted reports whether the job has used up its retry budget.
func (j Job) Exhausted() bool {
	return j.Attempts >= j.MaxAttempts
}
