// Package services contains stateless domain services for the fuel delivery
// pipeline. Domain services hold business logic that does not naturally
// belong to a single aggregate:
//
//   - PriceCalculator computes a delivery's total price from a rate
//     configuration and order parameters.
//   - DeliveryScheduler decides whether an order needs deferred processing
//     and computes the queue delay for it.
//
// Both services are pure: they perform no I/O and hold no mutable state,
// which makes them trivially safe for concurrent use.
package services
