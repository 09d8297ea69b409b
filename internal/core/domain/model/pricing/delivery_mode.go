package pricing

import (
	"fmt"

	"fuelmarket/internal/pkg/errs"
)

// DeliveryMode identifies how urgently an order should be fulfilled.
// Stored and transported as its string value, e.g. "STANDARD".
type DeliveryMode string

const (
	Standard  DeliveryMode = "STANDARD"
	Scheduled DeliveryMode = "SCHEDULED"
	Emergency DeliveryMode = "EMERGENCY"
)

// DeliveryModes returns all valid delivery modes in display order.
func DeliveryModes() []DeliveryMode {
	return []DeliveryMode{Standard, Scheduled, Emergency}
}

// Validate checks that the delivery mode is one of the known values.
func (m DeliveryMode) Validate() error {
	switch m {
	case Standard, Scheduled, Emergency:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"delivery mode is invalid",
		fmt.Errorf("%q is not a valid delivery mode", string(m)),
	)
}

// String implements fmt.Stringer.
func (m DeliveryMode) String() string {
	return string(m)
}
