package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fuelmarket/internal/core/domain/model/kernel"
	"fuelmarket/internal/core/domain/model/order"
)

// GetUserOrdersQueryHandler retrieves a user's orders from the database,
// newest first, with their line items attached.
type GetUserOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUserOrdersQueryHandler creates a handler for user order listings.
// Requires a GORM database connection for query execution.
func NewGetUserOrdersQueryHandler(db *gorm.DB) GetUserOrdersQueryHandler {
	return GetUserOrdersQueryHandler{db: db}
}

// Handle executes the query and returns the user's orders newest first.
// A user without orders yields an empty slice, not an error.
func (h GetUserOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUserOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, orderIDs, err := h.fetchOrders(ctx, query.UserID())
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return orders, nil
	}

	itemsByOrder, err := fetchItems(ctx, h.db, orderIDs)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].Items = itemsByOrder[orders[i].ID.String()]
	}

	return orders, nil
}

func (h GetUserOrdersQueryHandler) fetchOrders(
	ctx context.Context,
	userID kernel.UUID,
) ([]OrderResponse, []uuid.UUID, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
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
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID.Bytes()).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	orderIDs := make([]uuid.UUID, 0)

	for rows.Next() {
		var (
			resp         OrderResponse
			id           uuid.UUID
			status       int
			driverID     *uuid.UUID
			scheduledFor *time.Time
		)

		err = rows.Scan(
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
			return nil, nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, nil, idErr
		}

		resp.ID = orderID
		resp.Status = order.Status(status).String()
		resp.ScheduledFor = scheduledFor

		if driverID != nil {
			dID, dErr := kernel.UUIDFromBytes((*driverID)[:])
			if dErr != nil {
				return nil, nil, dErr
			}
			resp.DriverID = &dID
		}

		orders = append(orders, resp)
		orderIDs = append(orderIDs, id)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	return orders, orderIDs, nil
}

// fetchItems loads line items for the given orders, keyed by order id string.
func fetchItems(ctx context.Context, db *gorm.DB, orderIDs []uuid.UUID) (map[string][]OrderItemResponse, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			name,
			quantity,
			unit_price,
			total_price
		FROM order_items
		WHERE order_id IN ?
	`, orderIDs).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	itemsByOrder := make(map[string][]OrderItemResponse)

	for rows.Next() {
		var (
			orderID uuid.UUID
			item    OrderItemResponse
		)

		err = rows.Scan(
			&orderID,
			&item.Name,
			&item.Quantity,
			&item.UnitPrice,
			&item.TotalPrice,
		)
		if err != nil {
			return nil, err
		}

		key := orderID.String()
		itemsByOrder[key] = append(itemsByOrder[key], item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return itemsByOrder, nil
}
