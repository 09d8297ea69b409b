package jobs

import (
	"context"
	"log/slog"

	"fuelmarket/internal/core/domain/model/payment"
	"fuelmarket/internal/notify"

	"github.com/robfig/cron/v3"
)

// duePaymentCronSpec runs the sweep every five minutes between 22:00 and 23:59.
const duePaymentCronSpec = "0 */5 22-23 * * *"

// PaymentSummaryBuilder renders the human-readable body of a payment reminder.
type PaymentSummaryBuilder interface {
	PaymentSummary(ctx context.Context, rec *payment.Record) string
}

// PaymentSource enumerates payment records that still need the user's attention.
type PaymentSource interface {
	GetAllDue(ctx context.Context) ([]*payment.Record, error)
}

// ReminderDispatcher sends one reminder notification.
type ReminderDispatcher interface {
	Dispatch(ctx context.Context, req notify.Request) (notify.Result, error)
}

// DuePaymentJob periodically reminds users about failed or refunded payments.
// Runs every five minutes during the evening window to catch payments the
// external payment subsystem left in a due state.
type DuePaymentJob struct {
	payments   PaymentSource
	summaries  PaymentSummaryBuilder
	dispatcher ReminderDispatcher
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewDuePaymentJob creates the due-payment reminder job.
func NewDuePaymentJob(
	payments PaymentSource,
	summaries PaymentSummaryBuilder,
	dispatcher ReminderDispatcher,
	logger *slog.Logger,
) *DuePaymentJob {
	return &DuePaymentJob{
		payments:   payments,
		summaries:  summaries,
		dispatcher: dispatcher,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "due_payment_job"),
	}
}

// Start begins the due-payment reminder job on its evening schedule.
func (j *DuePaymentJob) Start() error {
	_, err := j.cron.AddFunc(duePaymentCronSpec, func() {
		j.Sweep(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Due payment job started", "schedule", duePaymentCronSpec)
	return nil
}

// Stop stops the due-payment reminder job.
func (j *DuePaymentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Due payment job stopped")
}

// Sweep runs one pass over the due payments. Enumeration failure aborts the
// whole pass; a failure on an individual record is logged and the sweep
// continues with the next one.
func (j *DuePaymentJob) Sweep(ctx context.Context) {
	records, err := j.payments.GetAllDue(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to enumerate due payments", "error", err)
		return
	}

	if len(records) == 0 {
		return
	}

	j.logger.InfoContext(ctx, "Sweeping due payments", "count", len(records))

	for _, rec := range records {
		message := j.summaries.PaymentSummary(ctx, rec)

		req := notify.NewRequest(rec.UserID, "PAYMENT", "Payment Reminder", message).AllChannels()
		if _, err := j.dispatcher.Dispatch(ctx, req); err != nil {
			j.logger.ErrorContext(ctx, "Failed to dispatch payment reminder",
				"paymentId", rec.ID.String(), "error", err)
		}
	}
}
