package storage

import (
	"context"

	"github.com/qalabs/reporting-demo-api/internal/app/domain/user"
)

// UserStore persists user records. Lookups distinguish absence from failure:
// a missing user is reported through the boolean, not the error.
type UserStore interface {
	// CreateUser stores the user, assigning its ID and CreatedAt.
	CreateUser(ctx context.Context, u user.User) (user.User, error)
	// UpdateUser replaces a stored user. ID and CreatedAt are preserved.
	UpdateUser(ctx context.Context, u user.User) (user.User, error)
	// GetUser returns the user with the given id, if present.
	GetUser(ctx context.Context, id int64) (user.User, bool, error)
	// GetUserByEmail returns the user with an exactly matching email.
	GetUserByEmail(ctx context.Context, email string) (user.User, bool, error)
	// ListUsers returns all users in insertion order.
	ListUsers(ctx context.Context) ([]user.User, error)
	// DeleteUser removes the user, reporting whether it existed.
	DeleteUser(ctx context.Context, id int64) (bool, error)
	// CountUsers returns the collection size.
	CountUsers(ctx context.Context) (int, error)
}
