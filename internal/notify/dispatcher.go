package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fuelmarket/internal/core/domain/model/kernel"
	"fuelmarket/internal/core/ports"
	"fuelmarket/internal/pkg/errs"
)

// Channel names as they appear in dispatch result maps.
const (
	ChannelDatabase = "database"
	ChannelEmail    = "email"
	ChannelSMS      = "sms"
	ChannelPush     = "push"
)

// ErrUserNotFound is returned when the dispatch target cannot be resolved.
// No channel is attempted in that case.
var ErrUserNotFound = errors.New("notification target user not found")

// Request describes one logical notification to one user.
// Channel toggles select which of the configured channels to attempt;
// use NewRequest for the default set (database on, everything else off).
type Request struct {
	UserID    kernel.UUID
	Type      string
	Title     string
	Message   string
	ActionURL string
	Metadata  map[string]string

	StoreInDatabase bool
	SendEmail       bool
	SendSMS         bool
	SendPush        bool
}

// NewRequest creates a Request with the default channel set:
// the database channel on and all external channels off.
func NewRequest(userID kernel.UUID, notifType, title, message string) Request {
	return Request{
		UserID:          userID,
		Type:            notifType,
		Title:           title,
		Message:         message,
		StoreInDatabase: true,
	}
}

// AllChannels returns a copy of the request with every channel enabled.
func (r Request) AllChannels() Request {
	r.StoreInDatabase = true
	r.SendEmail = true
	r.SendSMS = true
	r.SendPush = true
	return r
}

// wants reports whether the request selected the named channel.
func (r Request) wants(name string) bool {
	switch name {
	case ChannelDatabase:
		return r.StoreInDatabase
	case ChannelEmail:
		return r.SendEmail
	case ChannelSMS:
		return r.SendSMS
	case ChannelPush:
		return r.SendPush
	}
	return false
}

// Result is the outcome of one dispatch call.
type Result struct {
	// Success is true iff at least one attempted channel succeeded.
	// A dispatch that attempted no channels is not successful.
	Success bool

	// Results maps each attempted channel name to its outcome.
	// Channels the request did not select are absent.
	Results map[string]bool
}

// BulkEntry is one user's outcome within a bulk dispatch.
type BulkEntry struct {
	Result Result

	// Err carries the captured error message when this user's dispatch
	// failed outright (e.g. user lookup), empty otherwise.
	Err string
}

// Dispatcher fans a logical notification out across the configured channels.
// It holds the channels in their fixed attempt order: database, email, SMS,
// push.
type Dispatcher struct {
	users    ports.UserRepository
	channels []ports.NotificationChannel
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher over the given channels.
// Channels are attempted in the order provided; pass them as
// database, email, SMS, push to match the documented channel order.
func NewDispatcher(users ports.UserRepository, channels []ports.NotificationChannel, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		users:    users,
		channels: channels,
		logger:   logger.With("component", "notification_dispatcher"),
	}
}

// Dispatch resolves the target user and attempts every requested channel.
//
// An unresolvable user aborts the whole call with ErrUserNotFound before any
// channel is attempted. Past that point nothing fails the call: each
// channel's outcome lands in the result map and Result.Success is the
// disjunction over them.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (Result, error) {
	u, err := d.users.Get(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return Result{}, fmt.Errorf("%w: %s", ErrUserNotFound, req.UserID)
		}
		return Result{}, err
	}

	opts := ports.ChannelOptions{
		Type:      req.Type,
		ActionURL: req.ActionURL,
		Metadata:  req.Metadata,
	}

	result := Result{Results: make(map[string]bool)}
	for _, ch := range d.channels {
		if !req.wants(ch.Name()) {
			continue
		}

		ok := ch.Send(ctx, u, req.Title, req.Message, opts)
		result.Results[ch.Name()] = ok
		if ok {
			result.Success = true
		} else {
			d.logger.WarnContext(ctx, "Notification channel failed",
				"channel", ch.Name(), "user_id", req.UserID.String(), "type", req.Type)
		}
	}

	return result, nil
}

// DispatchBulk dispatches the same notification independently to each user.
// One user's failure never aborts dispatch to the others; a failed user's
// entry captures the error message instead.
func (d *Dispatcher) DispatchBulk(ctx context.Context, userIDs []kernel.UUID, req Request) map[string]BulkEntry {
	entries := make(map[string]BulkEntry, len(userIDs))

	for _, userID := range userIDs {
		userReq := req
		userReq.UserID = userID

		result, err := d.Dispatch(ctx, userReq)
		if err != nil {
			d.logger.WarnContext(ctx, "Bulk dispatch failed for user",
				"user_id", userID.String(), "error", err)
			entries[userID.String()] = BulkEntry{Err: err.Error()}
			continue
		}

		entries[userID.String()] = BulkEntry{Result: result}
	}

	return entries
}
