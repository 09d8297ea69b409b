package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// QueuePoller claims due jobs from the delivery queue and hands them to
// their registered handlers.
type QueuePoller interface {
	PollOnce(ctx context.Context) error
}

// DeliveryQueueJob drains the delivery queue.
// Runs every second so scheduled deliveries start close to their due time.
type DeliveryQueueJob struct {
	poller QueuePoller
	cron   *cron.Cron
	logger *slog.Logger
}

// NewDeliveryQueueJob creates the queue polling job.
func NewDeliveryQueueJob(poller QueuePoller, logger *slog.Logger) *DeliveryQueueJob {
	return &DeliveryQueueJob{
		poller: poller,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "delivery_queue_job"),
	}
}

// Start begins polling the queue every second.
func (j *DeliveryQueueJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		if err := j.poller.PollOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Delivery queue poll failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery queue job started (polling every second)")
	return nil
}

// Stop stops the queue polling job.
func (j *DeliveryQueueJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Delivery queue job stopped")
}
