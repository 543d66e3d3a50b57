// Package common defines shared constants and sentinel errors used across
// the geomap server and client. Callers should use errors.Is to match these
// values and errors.As to recover a client-facing *Error.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("invalid credentials")
	ErrorValidation   = errors.New("validation error")

	// Auth errors (missing, malformed, or expired token).
	ErrorUnauthenticated = errors.New("unauthenticated")
	ErrInvalidToken      = errors.New("invalid token")
	ErrTokenExpired      = errors.New("token expired")
)

// Error attaches a client-facing message to one of the sentinel kinds above.
// errors.Is(err, kind) keeps working through it.
type Error struct {
	Kind    error
	Message string
}

// NewError returns an *Error of the given kind.
func NewError(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}
