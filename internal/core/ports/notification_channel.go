package ports

import (
	"context"

	"fuelmarket/internal/core/domain/model/user"
)

// ChannelOptions carries the per-send options shared by all notification
// channels.
type ChannelOptions struct {
	// Type is the notification type tag, e.g. "SERVICE_REQUEST".
	Type string

	// ActionURL is an optional deep link attached to the notification.
	ActionURL string

	// Metadata is an optional free-form mapping persisted with the
	// notification and forwarded to push providers.
	Metadata map[string]string
}

// NotificationChannel is one notification delivery mechanism: a persisted
// database record, an email, an SMS, or a push message.
//
// Send reports delivery success as a bare bool and never returns an error:
// each implementation catches and logs its own failures so that one broken
// channel can never prevent the remaining channels from being attempted.
type NotificationChannel interface {
	// Name identifies the channel in dispatch result maps,
	// e.g. "database", "email", "sms", "push".
	Name() string

	// Send delivers one notification to the user through this channel.
	Send(ctx context.Context, u *user.User, title, message string, opts ChannelOptions) bool
}
