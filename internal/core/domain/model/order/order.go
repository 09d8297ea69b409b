package order

import (
	"errors"
	"fmt"
	"time"

	"fuelmarket/internal/core/domain/model/kernel"
	"fuelmarket/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order represents a fuel delivery order. It is the aggregate root that manages
// the order lifecycle from placement through driver assignment to completion.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty order number
//   - Must belong to a valid user
//   - Must carry a non-empty currency code and a non-negative total amount
//   - Must own at least one valid line item
//   - Status transitions follow the rules defined on Status
//   - Can only be created through NewOrder or RestoreOrder
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type Order struct {
	id          kernel.UUID
	orderNumber string
	userID      kernel.UUID
	status      Status
	totalAmount float64
	currency    string

	// driverID is the assigned driver (nil until a driver takes the order)
	driverID *kernel.UUID

	// deliveryLocationID is an optional reference to a delivery address
	deliveryLocationID *kernel.UUID

	// scheduledFor, when set, requests fulfillment near a future timestamp
	scheduledFor *time.Time

	completedAt *time.Time
	cancelledAt *time.Time
	notes       string
	items       []Item
	createdAt   time.Time

	isConstructed bool
}

// NewOrder creates a new Order in Pending status with validation. This is the
// only way to create a fresh order; RestoreOrder reconstructs persisted ones.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - orderNumber: human-readable unique order number
//   - userID: owning customer (must be a valid UUID)
//   - currency: ISO currency code, e.g. "NGN"
//   - totalAmount: computed total (must not be negative)
//   - items: at least one validated line item
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	userID kernel.UUID,
	currency string,
	totalAmount float64,
	items []Item,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setUserID(userID),
		o.setCurrency(currency),
		o.setTotalAmount(totalAmount),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrderParams carries the persisted state of an order for reconstruction.
type RestoreOrderParams struct {
	ID                 kernel.UUID
	OrderNumber        string
	UserID             kernel.UUID
	Status             Status
	TotalAmount        float64
	Currency           string
	DriverID           *kernel.UUID
	DeliveryLocationID *kernel.UUID
	ScheduledFor       *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	Notes              string
	Items              []Item
	CreatedAt          time.Time
}

// RestoreOrder reconstructs an Order from persistence. The stored status is
// trusted but still validated, so corrupted rows surface as errors instead of
// invalid aggregates.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	o := &Order{
		driverID:           p.DriverID,
		deliveryLocationID: p.DeliveryLocationID,
		scheduledFor:       p.ScheduledFor,
		completedAt:        p.CompletedAt,
		cancelledAt:        p.CancelledAt,
		notes:              p.Notes,
		createdAt:          p.CreatedAt,
		isConstructed:      true,
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setOrderNumber(p.OrderNumber),
		o.setUserID(p.UserID),
		o.setCurrency(p.Currency),
		o.setTotalAmount(p.TotalAmount),
		o.setItems(p.Items),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = p.Status
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed if the order was created by direct
// struct initialization.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-readable order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// UserID returns the owning customer's identifier.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// TotalAmount returns the computed order total.
func (o *Order) TotalAmount() float64 {
	return o.totalAmount
}

// Currency returns the order's currency code.
func (o *Order) Currency() string {
	return o.currency
}

// Driver returns the assigned driver's ID, or nil if no driver is assigned.
func (o *Order) Driver() *kernel.UUID {
	return o.driverID
}

// DeliveryLocationID returns the optional delivery address reference, or nil.
func (o *Order) DeliveryLocationID() *kernel.UUID {
	return o.deliveryLocationID
}

// ScheduledFor returns the requested delivery timestamp, or nil for
// immediate-fulfillment orders.
func (o *Order) ScheduledFor() *time.Time {
	return o.scheduledFor
}

// CompletedAt returns the completion timestamp, or nil.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// CancelledAt returns the cancellation timestamp, or nil.
func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

// Notes returns the free-text notes attached to the order.
func (o *Order) Notes() string {
	return o.notes
}

// Items returns a copy of the order's line items.
// The returned slice may be modified freely by the caller.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// CreatedAt returns the order creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// ScheduleFor requests deferred fulfillment near the given timestamp.
// May only be set while the order is still Pending.
func (o *Order) ScheduleFor(t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("scheduledFor")
	}

	if o.status != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s order cannot be rescheduled", o.status),
		)
	}

	scheduled := t.UTC()
	o.scheduledFor = &scheduled
	return nil
}

// SetDeliveryLocation attaches a delivery address reference to the order.
func (o *Order) SetDeliveryLocation(locationID kernel.UUID) error {
	if err := locationID.Validate(); err != nil {
		return err
	}

	o.deliveryLocationID = &locationID
	return nil
}

// AttachNotes replaces the free-text notes on the order.
func (o *Order) AttachNotes(notes string) {
	o.notes = notes
}

// Confirm marks the order as accepted for fulfillment.
func (o *Order) Confirm() error {
	newStatus, err := o.status.Confirm()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// AssignDriver assigns the order to a driver and moves it to InProgress.
//
// Business rules:
//   - The driver ID must be valid
//   - The order must be in Pending or Confirmed status
func (o *Order) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Start()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.driverID = &driverID
	return nil
}

// Complete marks the order as delivered at the given time.
// The order must be InProgress.
func (o *Order) Complete(at time.Time) error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	completed := at.UTC()
	o.status = newStatus
	o.completedAt = &completed
	return nil
}

// Cancel marks the order as cancelled at the given time.
// Only Pending and Confirmed orders can be cancelled; once a driver is
// underway the order runs to completion.
func (o *Order) Cancel(at time.Time) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	cancelled := at.UTC()
	o.status = newStatus
	o.cancelledAt = &cancelled
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	return nil
}

func (o *Order) setCurrency(currency string) error {
	if currency == "" {
		return errs.NewValueIsRequiredError("currency")
	}
	o.currency = currency
	return nil
}

func (o *Order) setTotalAmount(totalAmount float64) error {
	if totalAmount < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"total amount is invalid",
			fmt.Errorf("%v is negative", totalAmount),
		)
	}
	o.totalAmount = totalAmount
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}
