package user

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/shared"
)

// Service is the business logic contract for the account domain.
type Service interface {
	// Register creates a new account. Returns ErrEmailAlreadyExists when
	// the email is taken. No token is issued; the caller must log in.
	Register(ctx context.Context, req RegisterRequest) (*UserDTO, error)

	// Login verifies credentials and issues a 7-day bearer token.
	// Returns ErrUserNotFound for an unknown email and
	// ErrInvalidPassword for a failed verify.
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	// GetProfile returns the public projection of an account.
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)

	// UpdateProfile applies a partial update; avatar is optional and
	// replaces (and removes) the previously stored image.
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest, avatar *shared.ImageUpload) (*UserDTO, error)
}
