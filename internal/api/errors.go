package api

import (
	"fmt"
	"net/http"
	"strings"

	"loanlink/internal/sentinel"
)

// Error carries the backend's HTTP status and message alongside a sentinel
// error, so the session manager can translate it into a domain error exactly
// once while keeping the backend-provided message for display.
type Error struct {
	Status  int
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Status > 0 {
		return fmt.Sprintf("backend returned %d", e.Status)
	}
	return e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

// classify maps an HTTP status and backend message onto a sentinel error.
// Absence of a response is handled by the caller (sentinel.ErrUnavailable).
func classify(status int, message string) error {
	var base error
	switch {
	case status == http.StatusUnauthorized:
		base = sentinel.ErrUnauthorized
	case status == http.StatusForbidden:
		base = sentinel.ErrForbidden
	case status == http.StatusNotFound:
		base = sentinel.ErrNotFound
	case status == http.StatusConflict:
		base = sentinel.ErrConflict
	case status >= http.StatusInternalServerError:
		base = sentinel.ErrUnavailable
	default:
		base = sentinel.ErrBadRequest
	}
	// Some deployments report duplicate accounts as 400 with a message
	// rather than 409; normalize on the message.
	if strings.Contains(message, "already exists") || strings.Contains(message, "already registered") {
		base = sentinel.ErrConflict
	}
	return &Error{Status: status, Message: message, err: base}
}

// netError wraps a transport-level failure (no HTTP response at all).
func netError(err error) error {
	return &Error{Message: "cannot reach backend", err: fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)}
}
