// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read the database directly and return flat response
// structures; they never load or mutate domain aggregates.
package queries

import (
	"errors"
	"time"

	"fuelmarket/internal/core/domain/model/kernel"
	"fuelmarket/internal/pkg/guard"
)

var ErrGetUserOrdersQueryIsNotConstructed = errors.New(
	"GetUserOrdersQuery must be created via NewGetUserOrdersQuery constructor",
)

// GetUserOrdersQuery retrieves all orders owned by one user, newest first.
//
// Example:
//
//	query, err := NewGetUserOrdersQuery(sessionUserID)
//	if err != nil {
//	    return err
//	}
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get orders: %w", err)
//	}
type GetUserOrdersQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetUserOrdersQuery creates a query for one user's orders.
// Validates the user identifier.
func NewGetUserOrdersQuery(userID kernel.UUID) (GetUserOrdersQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetUserOrdersQuery{}, err
	}

	return GetUserOrdersQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUserOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUserOrdersQueryIsNotConstructed)
}

// UserID returns the identifier of the user whose orders are listed.
func (q GetUserOrdersQuery) UserID() kernel.UUID {
	return q.userID
}

// OrderItemResponse represents one line item within an order response.
type OrderItemResponse struct {
	Name       string
	Quantity   int
	UnitPrice  float64
	TotalPrice float64
}

// OrderResponse represents one order in listing and lookup responses.
type OrderResponse struct {
	ID           kernel.UUID
	OrderNumber  string
	Status       string
	TotalAmount  float64
	Currency     string
	DriverID     *kernel.UUID
	ScheduledFor *time.Time
	CompletedAt  *time.Time
	CancelledAt  *time.Time
	Notes        string
	CreatedAt    time.Time
	Items        []OrderItemResponse
}
