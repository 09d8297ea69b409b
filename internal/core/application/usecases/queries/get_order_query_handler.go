package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fuelmarket/internal/core/domain/model/kernel"
	"fuelmarket/internal/core/domain/model/order"
	"fuelmarket/internal/pkg/errs"
)

// GetOrderQueryHandler retrieves one order with its line items for delivery
// status checks.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order lookups.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. An unknown order surfaces as
// errs.ObjectNotFoundError.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			status,
			total_amount,
			currency,
			driver_id,
			scheduled_for,
			completed_at,
			cancelled_at,
			notes,
			created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		resp         OrderResponse
		id           uuid.UUID
		status       int
		driverID     *uuid.UUID
		scheduledFor *time.Time
	)

	err := row.Scan(
		&id,
		&resp.OrderNumber,
		&status,
		&resp.TotalAmount,
		&resp.Currency,
		&driverID,
		&scheduledFor,
		&resp.CompletedAt,
		&resp.CancelledAt,
		&resp.Notes,
		&resp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return OrderResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderResponse{}, err
	}

	resp.ID = orderID
	resp.Status = order.Status(status).String()
	resp.ScheduledFor = scheduledFor

	if driverID != nil {
		dID, dErr := kernel.UUIDFromBytes((*driverID)[:])
		if dErr != nil {
			return OrderResponse{}, dErr
		}
		resp.DriverID = &dID
	}

	itemsByOrder, err := fetchItems(ctx, h.db, []uuid.UUID{id})
	if err != nil {
		return OrderResponse{}, err
	}
	resp.Items = itemsByOrder[orderID.String()]

	return resp, nil
}
