package services

import (
	"time"
)

// LeadTime is the fixed pre-dispatch window subtracted from an order's
// scheduled time, so delivery processing begins before the requested moment
// rather than at it.
const LeadTime = 30 * time.Minute

// DeliveryScheduler decides whether a freshly created order requires
// deferred processing and, if so, how long its queue job should be delayed.
//
// The decision is pure; enqueueing the resulting job is the caller's
// responsibility, which keeps the temporal logic independently testable.
type DeliveryScheduler struct{}

// NewDeliveryScheduler creates a new DeliveryScheduler instance.
func NewDeliveryScheduler() DeliveryScheduler {
	return DeliveryScheduler{}
}

// Decide evaluates an order's scheduling request at creation time.
//
// Parameters:
//   - scheduledFor: the requested delivery timestamp, or nil for immediate orders
//   - now: the moment of order creation
//
// Returns:
//   - delay: how long the delivery job should wait before becoming eligible,
//     computed as scheduledFor − now − LeadTime and clamped at zero
//   - deferred: true if exactly one delivery job must be enqueued; false if
//     the order is immediate (scheduledFor absent or not strictly in the future)
func (DeliveryScheduler) Decide(scheduledFor *time.Time, now time.Time) (delay time.Duration, deferred bool) {
	if scheduledFor == nil || !scheduledFor.After(now) {
		return 0, false
	}

	delay = scheduledFor.Sub(now) - LeadTime
	if delay < 0 {
		delay = 0
	}

	return delay, true
}
