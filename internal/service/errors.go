package service

import "errors"

var (
	// ErrNotFound also covers soft-deleted resources and ownership
	// mismatches on item routes, so a foreign resource is indistinguishable
	// from a missing one.
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user disabled")
)
