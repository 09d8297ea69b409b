package order

import "fuelmarket/internal/core/domain/model/kernel"

// DeliveryLocation is the address an order is delivered to. Locations are
// administered by an external address book; this pipeline only reads them
// when rendering delivery summaries.
type DeliveryLocation struct {
	ID      kernel.UUID
	Address string
	City    string
	State   string
}

// FullAddress renders the location as a single human-readable line.
func (l DeliveryLocation) FullAddress() string {
	return l.Address + ", " + l.City + ", " + l.State
}
