package commands

import (
	"context"

	"fuelmarket/internal/core/ports"
)

// MarkAllNotificationsReadCommandHandler flags all of a user's unread
// notifications as read in one statement.
type MarkAllNotificationsReadCommandHandler struct {
	notifications ports.NotificationRepository
}

// NewMarkAllNotificationsReadCommandHandler creates a handler for the
// mark-all-read operation.
func NewMarkAllNotificationsReadCommandHandler(notifications ports.NotificationRepository) MarkAllNotificationsReadCommandHandler {
	return MarkAllNotificationsReadCommandHandler{notifications: notifications}
}

// Handle processes the mark-all-read command and returns the number of
// notifications that changed state. A user with nothing unread yields zero
// without error.
func (h MarkAllNotificationsReadCommandHandler) Handle(ctx context.Context, cmd MarkAllNotificationsReadCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	return h.notifications.MarkAllRead(ctx, cmd.UserID())
}
