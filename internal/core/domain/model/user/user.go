// Package user holds the read model for platform users. User management is
// owned by an external identity service; this pipeline only resolves users to
// address notifications to them.
package user

import "fuelmarket/internal/core/domain/model/kernel"

// User is the notification target resolved before any channel send.
// Phone is optional; SMS delivery requires it.
type User struct {
	ID        kernel.UUID
	FirstName string
	LastName  string
	Email     string
	Phone     *string
}

// FullName renders the user's display name.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// HasPhone reports whether the user can receive SMS.
func (u User) HasPhone() bool {
	return u.Phone != nil && *u.Phone != ""
}
