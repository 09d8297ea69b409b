package notify

import (
	"context"
	"log/slog"

	"fuelmarket/internal/core/domain/model/user"
	"fuelmarket/internal/core/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailSender is the slice of the SES v2 API the email channel uses.
// *sesv2.Client satisfies it.
type EmailSender interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailChannel delivers notifications as transactional emails via AWS SES.
type EmailChannel struct {
	client EmailSender
	sender string
	logger *slog.Logger
}

// NewEmailChannel creates the SES-backed email channel.
// sender is the verified "from" address for outgoing mail.
func NewEmailChannel(client EmailSender, sender string, logger *slog.Logger) *EmailChannel {
	return &EmailChannel{
		client: client,
		sender: sender,
		logger: logger.With("component", "email_channel"),
	}
}

// Name identifies the channel in dispatch result maps.
func (c *EmailChannel) Name() string {
	return ChannelEmail
}

// Send emails the notification to the user's address. Provider failures are
// logged and reported as false; they are never raised to the dispatcher.
func (c *EmailChannel) Send(ctx context.Context, u *user.User, title, message string, _ ports.ChannelOptions) bool {
	if u.Email == "" {
		c.logger.WarnContext(ctx, "Cannot send email: user has no email address",
			"user_id", u.ID.String())
		return false
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(c.sender),
		Destination: &types.Destination{
			ToAddresses: []string{u.Email},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(title)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(message)},
				},
			},
		},
	}

	if _, err := c.client.SendEmail(ctx, input); err != nil {
		c.logger.ErrorContext(ctx, "Failed to send email notification",
			"user_id", u.ID.String(), "error", err)
		return false
	}

	return true
}
