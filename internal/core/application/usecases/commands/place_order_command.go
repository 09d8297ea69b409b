package commands

import (
	"errors"
	"fmt"
	"time"

	"fuelmarket/internal/core/domain/model/kernel"
	"fuelmarket/internal/core/domain/model/order"
	"fuelmarket/internal/core/domain/model/pricing"
	"fuelmarket/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrQuantityIsInvalid = errors.New("quantity must be greater than 0")
	ErrDistanceIsInvalid = errors.New("distance must not be negative")
)

// defaultCurrency is applied when the caller does not name one.
const defaultCurrency = "NGN"

// PlaceOrderItemParams describes one caller-supplied line item. The line
// total is derived from the unit price and quantity.
type PlaceOrderItemParams struct {
	Name      string
	Quantity  int
	UnitPrice float64
	ProductID *string
	ServiceID *string
}

// PlaceOrderParams carries the caller-supplied order attributes.
// ScheduledFor, DeliveryLocationID, Notes, Currency and Items are optional;
// when Items is empty the handler synthesizes a single line item from the
// fuel type and quantity.
type PlaceOrderParams struct {
	OrderID            kernel.UUID
	UserID             kernel.UUID
	FuelType           pricing.FuelType
	DeliveryMode       pricing.DeliveryMode
	Quantity           float64
	Distance           float64
	Currency           string
	ScheduledFor       *time.Time
	DeliveryLocationID *kernel.UUID
	Notes              string
	Items              []PlaceOrderItemParams
}

// PlaceOrderCommand represents a request to place a new fuel delivery order.
// The total price is not part of the command; it is computed by the handler
// from the matching rate configuration.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(PlaceOrderParams{
//	    OrderID:      kernel.NewUUID(),
//	    UserID:       sessionUserID,
//	    FuelType:     pricing.Diesel,
//	    DeliveryMode: pricing.Scheduled,
//	    Quantity:     50,
//	    Distance:     12,
//	    ScheduledFor: &tomorrow,
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID            kernel.UUID
	userID             kernel.UUID
	fuelType           pricing.FuelType
	deliveryMode       pricing.DeliveryMode
	quantity           float64
	distance           float64
	currency           string
	scheduledFor       *time.Time
	deliveryLocationID *kernel.UUID
	notes              string
	items              []order.Item

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new fuel delivery order.
// Validates identifiers, the (fuel type, delivery mode) key, and that the
// quantity is positive and the distance non-negative. An empty currency
// defaults to NGN.
func NewPlaceOrderCommand(params PlaceOrderParams) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		scheduledFor: params.ScheduledFor,
		notes:        params.Notes,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(params.OrderID),
		cmd.setUserID(params.UserID),
		cmd.setKey(params.FuelType, params.DeliveryMode),
		cmd.setQuantity(params.Quantity),
		cmd.setDistance(params.Distance),
		cmd.setCurrency(params.Currency),
		cmd.setDeliveryLocationID(params.DeliveryLocationID),
		cmd.setItems(params.Items),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPlaceOrderCommandIsNotConstructed if validation fails.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the ordering customer's identifier.
func (c PlaceOrderCommand) UserID() kernel.UUID {
	return c.userID
}

// FuelType returns the requested fuel type.
func (c PlaceOrderCommand) FuelType() pricing.FuelType {
	return c.fuelType
}

// DeliveryMode returns the requested delivery mode.
func (c PlaceOrderCommand) DeliveryMode() pricing.DeliveryMode {
	return c.deliveryMode
}

// Quantity returns the ordered fuel quantity in liters.
func (c PlaceOrderCommand) Quantity() float64 {
	return c.quantity
}

// Distance returns the delivery distance.
func (c PlaceOrderCommand) Distance() float64 {
	return c.distance
}

// Currency returns the order currency code.
func (c PlaceOrderCommand) Currency() string {
	return c.currency
}

// ScheduledFor returns the requested delivery timestamp, or nil for
// immediate fulfillment.
func (c PlaceOrderCommand) ScheduledFor() *time.Time {
	return c.scheduledFor
}

// DeliveryLocationID returns the optional delivery address reference, or nil.
func (c PlaceOrderCommand) DeliveryLocationID() *kernel.UUID {
	return c.deliveryLocationID
}

// Notes returns the free-text notes attached to the order.
func (c PlaceOrderCommand) Notes() string {
	return c.notes
}

// Items returns the caller-supplied line items, already validated. Empty
// when the caller left the order contents to the handler.
func (c PlaceOrderCommand) Items() []order.Item {
	return c.items
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *PlaceOrderCommand) setKey(fuelType pricing.FuelType, deliveryMode pricing.DeliveryMode) error {
	if err := errors.Join(fuelType.Validate(), deliveryMode.Validate()); err != nil {
		return err
	}

	c.fuelType = fuelType
	c.deliveryMode = deliveryMode
	return nil
}

func (c *PlaceOrderCommand) setQuantity(quantity float64) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: got %v", ErrQuantityIsInvalid, quantity)
	}

	c.quantity = quantity
	return nil
}

func (c *PlaceOrderCommand) setDistance(distance float64) error {
	if distance < 0 {
		return fmt.Errorf("%w: got %v", ErrDistanceIsInvalid, distance)
	}

	c.distance = distance
	return nil
}

func (c *PlaceOrderCommand) setCurrency(currency string) error {
	if currency == "" {
		currency = defaultCurrency
	}

	c.currency = currency
	return nil
}

func (c *PlaceOrderCommand) setDeliveryLocationID(locationID *kernel.UUID) error {
	if locationID != nil {
		if err := locationID.Validate(); err != nil {
			return err
		}
	}

	c.deliveryLocationID = locationID
	return nil
}

func (c *PlaceOrderCommand) setItems(params []PlaceOrderItemParams) error {
	if len(params) == 0 {
		return nil
	}

	items := make([]order.Item, 0, len(params))
	for _, p := range params {
		item, err := order.NewItem(
			p.Name,
			p.Quantity,
			p.UnitPrice,
			p.UnitPrice*float64(p.Quantity),
			p.ProductID,
			p.ServiceID,
		)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	c.items = items
	return nil
}
