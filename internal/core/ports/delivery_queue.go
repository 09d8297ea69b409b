package ports

import (
	"context"
	"time"

	"fuelmarket/internal/core/domain/model/job"
	"fuelmarket/internal/core/domain/model/kernel"
)

// DeliveryQueue is the durable delayed-job queue boundary.
//
// Delivery semantics: at-least-once with a bounded per-job retry budget.
// Completed jobs are removed; jobs that exhaust their budget are retained on
// a dead-letter list for operator inspection instead of being dropped.
type DeliveryQueue interface {
	// Enqueue inserts a job that becomes eligible for processing after the
	// given delay. Enqueues are keyed on job.Key: re-enqueueing a key that
	// is still pending is a no-op, making scheduling idempotent per order.
	Enqueue(ctx context.Context, j job.Job, delay time.Duration) error
}

// JobHandler processes a single dequeued job. Returning an error triggers
// the queue's retry policy; returning nil completes and discards the job.
type JobHandler interface {
	Handle(ctx context.Context, j job.Job) error
}

// DriverAssigner resolves a driver for a delivery. Driver-matching logic is
// owned by an external assignment collaborator; the worker treats the result
// as may-be-empty.
type DriverAssigner interface {
	// AssignDriver picks a driver for the order and returns the driver's
	// user id for notification addressing, or nil when no driver is
	// currently available.
	AssignDriver(ctx context.Context, orderID kernel.UUID) (*kernel.UUID, error)
}
