// Package worker processes delivery jobs claimed from the queue: it assigns
// a driver to the order and notifies both parties with the delivery summary.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fuelmarket/internal/core/domain/model/job"
	"fuelmarket/internal/core/domain/model/kernel"
	"fuelmarket/internal/core/domain/model/notification"
	"fuelmarket/internal/core/domain/model/order"
	"fuelmarket/internal/core/ports"
	"fuelmarket/internal/notify"
	"fuelmarket/internal/pkg/errs"
)

// Dispatcher is the notification boundary the worker needs.
type Dispatcher interface {
	Dispatch(ctx context.Context, req notify.Request) (notify.Result, error)
}

// SummaryBuilder renders the delivery summary attached to both notifications.
type SummaryBuilder interface {
	OrderSummary(ctx context.Context, orderID kernel.UUID) (string, error)
}

// DeliveryHandler handles queued delivery jobs.
//
// Processing steps:
//  1. Reload the order; a vanished or already-terminal order completes the
//     job silently, so late jobs for cancelled orders never resurrect them.
//  2. Ask the assignment collaborator for a driver and persist the
//     assignment when one is available. No available driver is not a
//     failure; the customer is still notified.
//  3. Dispatch the delivery summary to the driver and to the customer.
//     The two dispatches are isolated from each other and from the job
//     outcome: the order state is already committed, so a notification
//     failure must not trigger a retry that would re-assign the driver.
type DeliveryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	assigner   ports.DriverAssigner
	summaries  SummaryBuilder
	dispatcher Dispatcher
	logger     *slog.Logger
}

// NewDeliveryHandler creates the delivery job handler.
func NewDeliveryHandler(
	uowFactory ports.UnitOfWorkFactory,
	assigner ports.DriverAssigner,
	summaries SummaryBuilder,
	dispatcher Dispatcher,
	logger *slog.Logger,
) *DeliveryHandler {
	return &DeliveryHandler{
		uowFactory: uowFactory,
		assigner:   assigner,
		summaries:  summaries,
		dispatcher: dispatcher,
		logger:     logger.With("component", "delivery_worker"),
	}
}

// Handle processes one delivery job. A returned error requeues the job per
// the queue's retry policy.
func (h *DeliveryHandler) Handle(ctx context.Context, j job.Job) error {
	if err := j.Validate(); err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(j.Delivery.OrderID)
	if err != nil {
		return err
	}

	o, driverID, err := h.assignDriver(ctx, orderID)
	if err != nil {
		return err
	}
	if o == nil {
		// Vanished or terminal order; the job is done.
		return nil
	}

	h.notifyParties(ctx, j, orderID, o.UserID(), driverID)
	return nil
}

// assignDriver reloads the order and persists a driver assignment within one
// transaction. Returns a nil order when the job should complete silently.
func (h *DeliveryHandler) assignDriver(ctx context.Context, orderID kernel.UUID) (*order.Order, *kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	ord, err := repo.Get(ctx, orderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		h.logger.InfoContext(ctx, "Order vanished before delivery processing",
			"order_id", orderID.String())
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	if ord.Status().IsTerminal() {
		h.logger.InfoContext(ctx, "Skipping delivery for terminal order",
			"order_id", orderID.String(), "status", ord.Status().String())
		return nil, nil, nil
	}

	driverID, err := h.assigner.AssignDriver(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	if driverID != nil {
		if err := ord.AssignDriver(*driverID); err != nil {
			return nil, nil, err
		}
		if err := repo.Update(ctx, ord); err != nil {
			return nil, nil, err
		}
	} else {
		h.logger.WarnContext(ctx, "No driver available for order",
			"order_id", orderID.String())
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return ord, driverID, nil
}

// notifyParties sends the delivery summary to the assigned driver and to the
// customer. Each dispatch is isolated; failures are logged, never returned.
func (h *DeliveryHandler) notifyParties(ctx context.Context, j job.Job, orderID, customerID kernel.UUID, driverID *kernel.UUID) {
	message, err := h.summaries.OrderSummary(ctx, orderID)
	if err != nil {
		h.logger.WarnContext(ctx, "Order summary unavailable, using fallback",
			"order_id", j.Delivery.OrderID, "error", err)
		message = fmt.Sprintf("Fuel Delivery Order #%s", j.Delivery.OrderNumber)
	}

	if driverID != nil {
		req := notify.NewRequest(*driverID, notification.TypeServiceRequest,
			"You have a new delivery assignment", message).AllChannels()
		if _, err := h.dispatcher.Dispatch(ctx, req); err != nil {
			h.logger.WarnContext(ctx, "Driver notification failed",
				"order_id", j.Delivery.OrderID, "driver_id", driverID.String(), "error", err)
		}
	}

	req := notify.NewRequest(customerID, notification.TypeServiceRequest,
		"Your order has been placed", message).AllChannels()
	if _, err := h.dispatcher.Dispatch(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Customer notification failed",
			"order_id", j.Delivery.OrderID, "user_id", customerID.String(), "error", err)
	}
}
