package ports

import (
	"context"

	"fuelmarket/internal/core/domain/model/kernel"
	"fuelmarket/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for notification
// records created by the dispatcher's database channel.
type NotificationRepository interface {
	// Add persists a new notification record.
	Add(ctx context.Context, aggregate *notification.Notification) error

	// GetAllByUser retrieves a page of the user's notifications,
	// newest first.
	GetAllByUser(ctx context.Context, userID kernel.UUID, limit, offset int) ([]*notification.Notification, error)

	// MarkRead flags a single notification as read.
	// Returns errs.ObjectNotFoundError when no such notification exists.
	MarkRead(ctx context.Context, id kernel.UUID) error

	// MarkAllRead flags all of the user's unread notifications as read and
	// returns the number of rows updated.
	MarkAllRead(ctx context.Context, userID kernel.UUID) (int64, error)
}
