package repositories

import "errors"

// Sentinel errors returned by repositories
var (
	// ErrUserNotFound is returned when no user row matches the query
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateSendDay is returned when an email log insert violates the
	// one-send-per-user-per-day uniqueness constraint
	ErrDuplicateSendDay = errors.New("email already logged for user today")
)
