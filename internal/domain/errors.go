package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrMissingCredentials = errors.New("email and senha are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("concurrent modification")
	ErrDuplicate          = errors.New("already exists")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
)
