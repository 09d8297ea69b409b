// Package notification implements the persisted notification entity created
// by the dispatcher's database channel. Notifications are only ever mutated
// to toggle their read state; they are never deleted by this pipeline.
package notification

import (
	"errors"
	"time"

	"fuelmarket/internal/core/domain/model/kernel"
	"fuelmarket/internal/pkg/errs"
)

// Well-known notification type tags. The field is free-form; these cover the
// types this pipeline emits itself.
const (
	TypeServiceRequest = "SERVICE_REQUEST"
	TypePayment        = "PAYMENT"
	TypeVerification   = "VERIFICATION"
	TypeSystem         = "SYSTEM"
)

// ErrNotificationIsNotConstructed is returned when a Notification instance
// was not created through the NewNotification factory method.
var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification constructor")

// Notification is an in-app notification record owned by a user.
type Notification struct {
	id        kernel.UUID
	userID    kernel.UUID
	notifType string
	title     string
	message   string
	actionURL *string
	metadata  map[string]string
	isRead    bool
	createdAt time.Time

	isConstructed bool
}

// NewNotification creates a validated unread notification.
// An empty notifType defaults to TypeSystem. actionURL and metadata are optional.
func NewNotification(
	id kernel.UUID,
	userID kernel.UUID,
	notifType string,
	title string,
	message string,
	actionURL *string,
	metadata map[string]string,
) (*Notification, error) {
	if notifType == "" {
		notifType = TypeSystem
	}

	n := &Notification{
		notifType:     notifType,
		actionURL:     actionURL,
		metadata:      metadata,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		n.setID(id),
		n.setUserID(userID),
		n.setContent(title, message),
	); err != nil {
		return nil, err
	}

	return n, nil
}

// RestoreNotificationParams carries the persisted state of a notification.
type RestoreNotificationParams struct {
	ID        kernel.UUID
	UserID    kernel.UUID
	Type      string
	Title     string
	Message   string
	ActionURL *string
	Metadata  map[string]string
	IsRead    bool
	CreatedAt time.Time
}

// RestoreNotification reconstructs a Notification from persistence.
func RestoreNotification(p RestoreNotificationParams) (*Notification, error) {
	n := &Notification{
		notifType:     p.Type,
		actionURL:     p.ActionURL,
		metadata:      p.Metadata,
		isRead:        p.IsRead,
		createdAt:     p.CreatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		n.setID(p.ID),
		n.setUserID(p.UserID),
		n.setContent(p.Title, p.Message),
	); err != nil {
		return nil, err
	}

	return n, nil
}

// Validate ensures the Notification was created through a constructor.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID {
	return n.id
}

// UserID returns the owning user's identifier.
func (n *Notification) UserID() kernel.UUID {
	return n.userID
}

// Type returns the notification's type tag, e.g. "PAYMENT".
func (n *Notification) Type() string {
	return n.notifType
}

// Title returns the notification title.
func (n *Notification) Title() string {
	return n.title
}

// Message returns the notification body.
func (n *Notification) Message() string {
	return n.message
}

// ActionURL returns the optional deep link, or nil.
func (n *Notification) ActionURL() *string {
	return n.actionURL
}

// Metadata returns the optional metadata mapping, or nil.
func (n *Notification) Metadata() map[string]string {
	return n.metadata
}

// IsRead reports whether the user has read the notification.
func (n *Notification) IsRead() bool {
	return n.isRead
}

// CreatedAt returns the creation timestamp.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// MarkRead flags the notification as read. Marking an already-read
// notification is a no-op.
func (n *Notification) MarkRead() {
	n.isRead = true
}

func (n *Notification) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

func (n *Notification) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	n.userID = userID
	return nil
}

func (n *Notification) setContent(title, message string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	if message == "" {
		return errs.NewValueIsRequiredError("message")
	}
	n.title = title
	n.message = message
	return nil
}
