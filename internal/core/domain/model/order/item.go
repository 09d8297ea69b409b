package order

import (
	"fmt"

	"fuelmarket/internal/pkg/errs"
	"fuelmarket/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem factory function.
var ErrItemIsNotConstructed = errs.NewValueIsRequiredError("Item must be created via NewItem constructor")

// Item is a line item owned exclusively by its Order. Items are created
// together with the order and are immutable thereafter.
type Item struct {
	name       string
	quantity   int
	unitPrice  float64
	totalPrice float64
	productID  *string
	serviceID  *string

	guard guard.ConstructorGuard
}

// NewItem creates a validated order line item.
//
// Validation rules:
//   - name must not be empty
//   - quantity must be a positive integer
//   - unitPrice and totalPrice must not be negative
//
// productID and serviceID are optional catalog references and may be nil.
func NewItem(name string, quantity int, unitPrice, totalPrice float64, productID, serviceID *string) (Item, error) {
	item := Item{
		productID: productID,
		serviceID: serviceID,
		guard:     guard.NewConstructorGuard(),
	}

	if err := item.setFields(name, quantity, unitPrice, totalPrice); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the Item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// Name returns the display name of the line item.
func (i Item) Name() string {
	return i.name
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price per unit.
func (i Item) UnitPrice() float64 {
	return i.unitPrice
}

// TotalPrice returns the computed line total.
func (i Item) TotalPrice() float64 {
	return i.totalPrice
}

// ProductID returns the optional product catalog reference, or nil.
func (i Item) ProductID() *string {
	return i.productID
}

// ServiceID returns the optional service catalog reference, or nil.
func (i Item) ServiceID() *string {
	return i.serviceID
}

func (i *Item) setFields(name string, quantity int, unitPrice, totalPrice float64) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}

	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"unit price is invalid",
			fmt.Errorf("%v is negative", unitPrice),
		)
	}

	if totalPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"total price is invalid",
			fmt.Errorf("%v is negative", totalPrice),
		)
	}

	i.name = name
	i.quantity = quantity
	i.unitPrice = unitPrice
	i.totalPrice = totalPrice
	return nil
}
