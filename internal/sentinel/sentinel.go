package sentinel

import "errors"

// Sentinel dependency errors. Dependencies (the backend client, the identity
// provider, the credential store) should return these, optionally wrapped, so
// the session manager can translate them into domain errors exactly once.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("already exists")
	ErrExpired      = errors.New("expired")
	ErrCancelled    = errors.New("cancelled")
	ErrUnavailable  = errors.New("unavailable")
)
