package queries

import (
	"errors"
	"time"

	"fuelmarket/internal/core/domain/model/kernel"
	"fuelmarket/internal/pkg/guard"
)

var (
	ErrGetUserNotificationsQueryIsNotConstructed = errors.New(
		"GetUserNotificationsQuery must be created via NewGetUserNotificationsQuery constructor",
	)
	ErrPaginationIsInvalid = errors.New("limit and offset must not be negative")
)

// defaultNotificationLimit bounds unpaginated listings.
const defaultNotificationLimit = 50

// GetUserNotificationsQuery retrieves a page of one user's notifications,
// newest first.
type GetUserNotificationsQuery struct {
	userID kernel.UUID
	limit  int
	offset int

	guard guard.ConstructorGuard
}

// NewGetUserNotificationsQuery creates a notification listing query.
// A zero limit falls back to the default page size.
func NewGetUserNotificationsQuery(userID kernel.UUID, limit, offset int) (GetUserNotificationsQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetUserNotificationsQuery{}, err
	}

	if limit < 0 || offset < 0 {
		return GetUserNotificationsQuery{}, ErrPaginationIsInvalid
	}

	if limit == 0 {
		limit = defaultNotificationLimit
	}

	return GetUserNotificationsQuery{
		userID: userID,
		limit:  limit,
		offset: offset,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUserNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetUserNotificationsQueryIsNotConstructed)
}

// UserID returns the identifier of the user whose notifications are listed.
func (q GetUserNotificationsQuery) UserID() kernel.UUID {
	return q.userID
}

// Limit returns the page size.
func (q GetUserNotificationsQuery) Limit() int {
	return q.limit
}

// Offset returns the page offset.
func (q GetUserNotificationsQuery) Offset() int {
	return q.offset
}

// NotificationResponse represents one notification in listing responses.
type NotificationResponse struct {
	ID        kernel.UUID
	Type      string
	Title     string
	Message   string
	ActionURL *string
	IsRead    bool
	CreatedAt time.Time
}
