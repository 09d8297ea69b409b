package notify

import (
	"context"
	"log/slog"

	"fuelmarket/internal/core/domain/model/user"
	"fuelmarket/internal/core/ports"
)

// SMSChannel delivers notifications as text messages.
//
// Sending requires the user to have a phone number; its absence is a normal
// per-user condition reported as false, not an error.
type SMSChannel struct {
	logger *slog.Logger
}

// NewSMSChannel creates the SMS notification channel.
func NewSMSChannel(logger *slog.Logger) *SMSChannel {
	return &SMSChannel{
		logger: logger.With("component", "sms_channel"),
	}
}

// Name identifies the channel in dispatch result maps.
func (c *SMSChannel) Name() string {
	return ChannelSMS
}

// Send texts the notification to the user's phone number.
// TODO: integrate an SMS gateway provider; until then the send is logged
// and reported as delivered.
func (c *SMSChannel) Send(ctx context.Context, u *user.User, title, message string, _ ports.ChannelOptions) bool {
	if !u.HasPhone() {
		c.logger.WarnContext(ctx, "Cannot send SMS: user has no phone number",
			"user_id", u.ID.String())
		return false
	}

	c.logger.InfoContext(ctx, "SMS notification sent",
		"user_id", u.ID.String(), "phone", *u.Phone, "title", title, "length", len(message))
	return true
}
