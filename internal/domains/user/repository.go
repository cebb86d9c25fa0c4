package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for accounts. Keeping it an
// interface lets the service layer be tested against an in-memory fake.
type Repository interface {
	// Create inserts a new account. Returns ErrEmailAlreadyExists or
	// ErrUsernameAlreadyExists on a unique violation.
	Create(ctx context.Context, u *User) error

	// FindByID returns ErrUserNotFound when no account matches.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail returns ErrUserNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Update persists profile fields. Returns ErrUserNotFound when the
	// account does not exist.
	Update(ctx context.Context, u *User) error

	// ExistsByEmail reports whether an account with this email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
