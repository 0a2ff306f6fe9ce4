// Package common defines shared constants and sentinel errors used across
// the client and server layers of Carnet. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Credential store errors.
	ErrDuplicateEmail   = errors.New("email already in use")
	ErrStoreUnavailable = errors.New("store unavailable")

	// Auth flow errors. ErrInvalidCredentials covers both "no such account"
	// and "wrong password"; the two must stay indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Session errors.
	ErrNoSession = errors.New("no active session")

	// Access key errors (invalid or malformed key).
	ErrInvalidAccessKey = errors.New("invalid access key")
)
