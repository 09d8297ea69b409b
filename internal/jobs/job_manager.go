package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	deliveryQueueJob *DeliveryQueueJob
	duePaymentJob    *DuePaymentJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	poller QueuePoller,
	payments PaymentSource,
	summaries PaymentSummaryBuilder,
	dispatcher ReminderDispatcher,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		deliveryQueueJob: NewDeliveryQueueJob(poller, logger),
		duePaymentJob:    NewDuePaymentJob(payments, summaries, dispatcher, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.deliveryQueueJob.Start(); err != nil {
		return fmt.Errorf("failed to start delivery queue job: %w", err)
	}

	if err := jm.duePaymentJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.deliveryQueueJob.Stop()
		return fmt.Errorf("failed to start due payment job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.duePaymentJob.Stop()
	jm.deliveryQueueJob.Stop()
}
