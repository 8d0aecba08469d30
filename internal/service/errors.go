package service

import "errors"

// Sentinel errors shared across services; handlers map them to HTTP statuses.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrForbidden      = errors.New("resource belongs to another user")
	ErrSessionExpired = errors.New("approval session has expired")
	ErrLimitReached   = errors.New("subscription limit reached")
	ErrConflict       = errors.New("resource is in a conflicting state")
)
