// Package summary renders human-readable summaries of orders and payments
// for notification message bodies.
//
// Builders degrade gracefully on missing optional references (delivery
// location, service request): the summary renders a placeholder block
// instead of failing. Only a missing order itself is an error, because the
// caller must not dispatch notifications about an order that no longer
// exists.
package summary

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"fuelmarket/internal/core/domain/model/kernel"
	"fuelmarket/internal/core/domain/model/payment"
	"fuelmarket/internal/core/ports"
)

const timeLayout = "Jan 2, 2006 15:04 MST"

// Builder loads the entities referenced by an order or payment and renders
// the corresponding summary text.
type Builder struct {
	orders    ports.OrderRepository
	users     ports.UserRepository
	locations ports.LocationRepository
	payments  ports.PaymentRepository
}

// NewBuilder creates a summary builder over the given read boundaries.
func NewBuilder(
	orders ports.OrderRepository,
	users ports.UserRepository,
	locations ports.LocationRepository,
	payments ports.PaymentRepository,
) *Builder {
	return &Builder{
		orders:    orders,
		users:     users,
		locations: locations,
		payments:  payments,
	}
}

// OrderSummary renders the delivery summary for the given order: customer
// name and phone, itemized list, delivery address, scheduling note, and
// current status.
//
// Returns the repository's not-found error when the order has vanished
// (race with cancellation); callers are expected to short-circuit then.
func (b *Builder) OrderSummary(ctx context.Context, orderID kernel.UUID) (string, error) {
	o, err := b.orders.Get(ctx, orderID)
	if err != nil {
		return "", err
	}

	u, err := b.users.Get(ctx, o.UserID())
	if err != nil {
		return "", err
	}

	phone := "Not provided"
	if u.HasPhone() {
		phone = *u.Phone
	}

	items := o.Items()
	itemLines := make([]string, len(items))
	for i, item := range items {
		itemLines[i] = fmt.Sprintf("%dx %s - %s%s",
			item.Quantity(), item.Name(), o.Currency(), formatAmount(item.TotalPrice()))
	}

	address := "Address not specified"
	if locID := o.DeliveryLocationID(); locID != nil {
		if loc, locErr := b.locations.Get(ctx, *locID); locErr == nil {
			address = loc.FullAddress()
		}
	}

	scheduling := "Immediate delivery"
	if t := o.ScheduledFor(); t != nil {
		scheduling = "Scheduled for: " + t.Format(timeLayout)
	}

	return fmt.Sprintf(`Fuel Delivery Order #%s

Customer: %s
Phone: %s

Items: %s
Total Amount: %s%s

Delivery Address: %s
%s

Status: %s`,
		o.OrderNumber(),
		u.FullName(),
		phone,
		strings.Join(itemLines, ", "),
		o.Currency(), formatAmount(o.TotalAmount()),
		address,
		scheduling,
		o.Status(),
	), nil
}

// PaymentSummary renders the reminder summary for a payment record. The
// nested fuel-service block is resolved best-effort; an unresolvable service
// request degrades to a placeholder rather than failing the summary.
func (b *Builder) PaymentSummary(ctx context.Context, rec *payment.Record) string {
	serviceDetails := "Service details not found"
	if rec.ServiceRequestID != nil {
		if sr, err := b.payments.GetServiceRequest(ctx, *rec.ServiceRequestID); err == nil {
			serviceDetails = formatServiceRequest(sr)
		}
	}

	return fmt.Sprintf(`Payment Summary

Service Request ID: %s
User ID: %s
Driver ID: %s

Amount: %s%s
Status: %s
Payment Method: %s
Transaction ID: %s

Created At: %s
Updated At: %s

%s`,
		uuidOrNA(rec.ServiceRequestID),
		rec.UserID,
		uuidOrNA(rec.DriverID),
		rec.Currency, formatAmount(rec.Amount),
		rec.Status,
		stringOrNA(rec.PaymentMethod),
		ptrOrNA(rec.TransactionID),
		rec.CreatedAt.Format(timeLayout),
		rec.UpdatedAt.Format(timeLayout),
		serviceDetails,
	)
}

func formatServiceRequest(sr *payment.ServiceRequest) string {
	scheduled := "N/A"
	if sr.ScheduledFor != nil {
		scheduled = sr.ScheduledFor.Format(timeLayout)
	}

	return fmt.Sprintf(`Service Type: Order for %s
Fuel quantity: %s
Fuel Price: %s
Location: %s
Scheduled For: %s
Status: %s`,
		sr.FuelType,
		formatAmount(sr.FuelAmount),
		formatAmount(sr.TotalPrice),
		stringOrNA(sr.PickupAddress),
		scheduled,
		stringOrNA(sr.Status),
	)
}

// formatAmount renders a monetary amount without trailing zeros, matching
// how totals are stored (no currency rounding applied by this pipeline).
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func stringOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func ptrOrNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}

func uuidOrNA(id *kernel.UUID) string {
	if id == nil {
		return "N/A"
	}
	return id.String()
}
