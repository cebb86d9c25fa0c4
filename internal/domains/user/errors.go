package user

import "errors"

// Repository-level errors
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("user already exists")
	ErrUsernameAlreadyExists = errors.New("username already taken")
)

// Service-level errors
var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidImage    = errors.New("invalid image upload")
)
