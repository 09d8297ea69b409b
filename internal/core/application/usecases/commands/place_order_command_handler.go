package commands

import (
	"context"
	"fmt"
	"time"

	"fuelmarket/internal/core/domain/model/job"
	"fuelmarket/internal/core/domain/model/order"
	"fuelmarket/internal/core/domain/services"
	"fuelmarket/internal/core/ports"
)

// PlaceOrderCommandHandler handles the business logic for placing an order:
// pricing, persistence, and delivery scheduling.
//
// A missing rate configuration for the order's (fuel type, delivery mode)
// key fails the command; the handler never defaults a price. Orders
// scheduled strictly in the future additionally get exactly one delivery job
// enqueued, delayed to the scheduled time minus the dispatch lead time. The
// queue deduplicates on the job key, so retrying a partially failed
// placement cannot produce a second job.
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	configs    ports.PriceConfigRepository
	calculator services.PriceCalculator
	scheduler  services.DeliveryScheduler
	queue      ports.DeliveryQueue
	now        func() time.Time
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
// The now function supplies the current time and exists for testability;
// pass time.Now in production wiring.
func NewPlaceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	configs ports.PriceConfigRepository,
	calculator services.PriceCalculator,
	scheduler services.DeliveryScheduler,
	queue ports.DeliveryQueue,
	now func() time.Time,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		configs:    configs,
		calculator: calculator,
		scheduler:  scheduler,
		queue:      queue,
		now:        now,
	}
}

// Handle processes the order placement command.
//
// Steps: resolve the rate configuration, compute the total, persist the
// order with its line item in one transaction, then decide scheduling and
// enqueue the delivery job when the order is deferred.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	cfg, err := h.configs.Find(ctx, cmd.FuelType(), cmd.DeliveryMode())
	if err != nil {
		return err
	}

	total, err := h.calculator.Calculate(cfg, cmd.Quantity(), cmd.Distance())
	if err != nil {
		return err
	}

	newOrder, err := h.buildOrder(cmd, total)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	delay, deferred := h.scheduler.Decide(cmd.ScheduledFor(), h.now())
	if !deferred {
		return nil
	}

	deliveryJob, err := job.NewDeliveryJob(newOrder)
	if err != nil {
		return err
	}

	return h.queue.Enqueue(ctx, deliveryJob, delay)
}

func (h PlaceOrderCommandHandler) buildOrder(cmd PlaceOrderCommand, total float64) (*order.Order, error) {
	items := cmd.Items()
	if len(items) == 0 {
		item, err := order.NewItem(
			fmt.Sprintf("%s fuel (%vL)", cmd.FuelType(), cmd.Quantity()),
			1,
			total,
			total,
			nil,
			nil,
		)
		if err != nil {
			return nil, err
		}
		items = []order.Item{item}
	}

	orderNumber := fmt.Sprintf("FD-%d", h.now().UnixMilli())

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		orderNumber,
		cmd.UserID(),
		cmd.Currency(),
		total,
		items,
	)
	if err != nil {
		return nil, err
	}

	if t := cmd.ScheduledFor(); t != nil {
		if err := newOrder.ScheduleFor(*t); err != nil {
			return nil, err
		}
	}

	if locationID := cmd.DeliveryLocationID(); locationID != nil {
		if err := newOrder.SetDeliveryLocation(*locationID); err != nil {
			return nil, err
		}
	}

	if notes := cmd.Notes(); notes != "" {
		newOrder.AttachNotes(notes)
	}

	return newOrder, nil
}
