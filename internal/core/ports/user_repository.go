package ports

import (
	"context"

	"fuelmarket/internal/core/domain/model/kernel"
	"fuelmarket/internal/core/domain/model/user"
)

// UserRepository is the read boundary onto the external identity service.
// The pipeline resolves users only to address notifications to them.
type UserRepository interface {
	// Get retrieves a user by their identifier.
	// Returns errs.ObjectNotFoundError when no such user exists.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
}
