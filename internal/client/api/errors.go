package api

import (
	"errors"
	"net/http"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// Error is a failure envelope returned by the server.
type Error struct {
	Status  int
	Message string
	Details []string
}

func (e *Error) Error() string {
	if len(e.Details) > 1 {
		return e.Message + ": " + strings.Join(e.Details, "; ")
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}
