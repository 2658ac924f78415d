package auth

import "errors"

var (
	// ErrMissingEmail is returned when registration lacks an email.
	ErrMissingEmail = errors.New("missing email")
	// ErrMissingPassword is returned when registration lacks a password.
	ErrMissingPassword = errors.New("missing password")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUnauthorized covers missing, malformed or failed credentials.
	// One error for every failure mode so responses never reveal which
	// part was wrong.
	ErrUnauthorized = errors.New("unauthorized")
)
