package redisqueue

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"fuelmarket/internal/core/domain/model/job"
	"fuelmarket/internal/core/ports"
)

const (
	// claimBatchSize bounds how many due jobs one poll claims.
	claimBatchSize = 50

	// retryBackoff is the base delay between attempts; the delay grows
	// linearly with the attempt count.
	retryBackoff = 30 * time.Second
)

// jobQueue is the slice of the queue the consumer drives. *Queue satisfies it.
type jobQueue interface {
	ClaimDue(ctx context.Context, now time.Time, batch int) ([]job.Job, error)
	Ack(ctx context.Context, j job.Job) error
	Requeue(ctx context.Context, j job.Job, delay time.Duration) error
	DeadLetter(ctx context.Context, j job.Job) error
}

// Consumer claims due jobs from a Queue and runs them through their
// registered handlers. Each claimed job is processed on its own goroutine;
// a slow delivery never blocks the rest of the batch.
type Consumer struct {
	queue    jobQueue
	handlers map[job.Kind]ports.JobHandler
	logger   *slog.Logger
	wg       sync.WaitGroup
}

// NewConsumer creates a Consumer over the given queue. Handlers are attached
// with Register before polling starts.
func NewConsumer(queue jobQueue, logger *slog.Logger) *Consumer {
	return &Consumer{
		queue:    queue,
		handlers: make(map[job.Kind]ports.JobHandler),
		logger:   logger.With("component", "queue-consumer"),
	}
}

// Register attaches the handler responsible for the given job kind.
func (c *Consumer) Register(kind job.Kind, handler ports.JobHandler) {
	c.handlers[kind] = handler
}

// PollOnce claims all currently due jobs and dispatches each to its handler
// on a separate goroutine. It returns after dispatching, not after the jobs
// finish; Wait blocks until in-flight jobs complete.
func (c *Consumer) PollOnce(ctx context.Context) error {
	jobs, err := c.queue.ClaimDue(ctx, time.Now().UTC(), claimBatchSize)
	if err != nil {
		return err
	}

	for _, j := range jobs {
		c.wg.Add(1)
		go func(j job.Job) {
			defer c.wg.Done()
			c.process(ctx, j)
		}(j)
	}

	return nil
}

// Wait blocks until every dispatched job has finished processing.
func (c *Consumer) Wait() {
	c.wg.Wait()
}

func (c *Consumer) process(ctx context.Context, j job.Job) {
	handler, ok := c.handlers[j.Kind]
	if !ok {
		c.logger.ErrorContext(ctx, "no handler for job kind",
			"kind", string(j.Kind), "key", j.Key)
		if err := c.queue.DeadLetter(ctx, j); err != nil {
			c.logger.ErrorContext(ctx, "dead-letter failed", "key", j.Key, "error", err)
		}
		return
	}

	j.Attempts++

	err := handler.Handle(ctx, j)
	if err == nil {
		if ackErr := c.queue.Ack(ctx, j); ackErr != nil {
			c.logger.ErrorContext(ctx, "ack failed", "key", j.Key, "error", ackErr)
		}
		return
	}

	j.LastError = err.Error()
	c.logger.WarnContext(ctx, "job attempt failed",
		"key", j.Key, "attempt", j.Attempts, "error", err)

	if j.Exhausted() {
		if dlErr := c.queue.DeadLetter(ctx, j); dlErr != nil {
			c.logger.ErrorContext(ctx, "dead-letter failed", "key", j.Key, "error", dlErr)
		}
		return
	}

	delay := time.Duration(j.Attempts) * retryBackoff
	if rqErr := c.queue.Requeue(ctx, j, delay); rqErr != nil {
		c.logger.ErrorContext(ctx, "requeue failed", "key", j.Key, "error", rqErr)
	}
}
