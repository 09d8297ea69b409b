package commands

import (
	"context"

	"fuelmarket/internal/core/ports"
)

// MarkNotificationReadCommandHandler flags a single notification as read.
// Marking an already-read notification is a no-op; an unknown notification
// surfaces as errs.ObjectNotFoundError.
type MarkNotificationReadCommandHandler struct {
	notifications ports.NotificationRepository
}

// NewMarkNotificationReadCommandHandler creates a handler for marking
// notifications read.
func NewMarkNotificationReadCommandHandler(notifications ports.NotificationRepository) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{notifications: notifications}
}

// Handle processes the mark-read command.
func (h MarkNotificationReadCommandHandler) Handle(ctx context.Context, cmd MarkNotificationReadCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.notifications.MarkRead(ctx, cmd.NotificationID())
}
