package notify

import (
	"context"
	"log/slog"

	"fuelmarket/internal/core/domain/model/kernel"
	"fuelmarket/internal/core/domain/model/notification"
	"fuelmarket/internal/core/domain/model/user"
	"fuelmarket/internal/core/ports"
)

// DatabaseChannel persists notifications as in-app records.
// It is the default channel and the only one whose output this pipeline
// later reads back (notification listing, read toggling).
type DatabaseChannel struct {
	notifications ports.NotificationRepository
	logger        *slog.Logger
}

// NewDatabaseChannel creates the database-backed notification channel.
func NewDatabaseChannel(notifications ports.NotificationRepository, logger *slog.Logger) *DatabaseChannel {
	return &DatabaseChannel{
		notifications: notifications,
		logger:        logger.With("component", "database_channel"),
	}
}

// Name identifies the channel in dispatch result maps.
func (c *DatabaseChannel) Name() string {
	return ChannelDatabase
}

// Send stores one notification row for the user. Persistence failures are
// logged and reported as false; they are never raised to the dispatcher.
func (c *DatabaseChannel) Send(ctx context.Context, u *user.User, title, message string, opts ports.ChannelOptions) bool {
	var actionURL *string
	if opts.ActionURL != "" {
		actionURL = &opts.ActionURL
	}

	record, err := notification.NewNotification(
		kernel.NewUUID(),
		u.ID,
		opts.Type,
		title,
		message,
		actionURL,
		opts.Metadata,
	)
	if err != nil {
		c.logger.ErrorContext(ctx, "Failed to build notification record",
			"user_id", u.ID.String(), "error", err)
		return false
	}

	if err := c.notifications.Add(ctx, record); err != nil {
		c.logger.ErrorContext(ctx, "Failed to store notification",
			"user_id", u.ID.String(), "error", err)
		return false
	}

	return true
}
