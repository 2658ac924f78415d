package storage

import "errors"

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrFileNotFound is returned when no file matches the lookup, or
	// the caller does not own it.
	ErrFileNotFound = errors.New("file not found")
)
