// Package order implements the order aggregate for the fuel delivery marketplace.
//
// An Order is placed by a customer, priced by the pricing engine, optionally
// scheduled for a future delivery window, and fulfilled by a driver. It owns an
// ordered sequence of Items that is created atomically with the order and is
// immutable thereafter.
//
// The package enforces the order lifecycle as a state machine:
//
//	Pending ──> Confirmed ──> InProgress ──> Completed
//	   │            │
//	   └────────────┴──> Cancelled
//
// Orders are never deleted; they only transition into one of the terminal
// states (Completed, Cancelled).
package order
