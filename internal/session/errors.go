package session

import (
	"errors"
	"strings"
	"unicode"

	domainerrors "loanlink/pkg/domain-errors"

	"loanlink/internal/sentinel"
)

// Exported error values matching the session error taxonomy. Callers compare
// with errors.Is; the values double as domain errors carrying a code.
var (
	ErrInvalidCredentials   = domainerrors.New(domainerrors.CodeInvalidCredentials, "invalid email or password")
	ErrAccountSuspended     = domainerrors.New(domainerrors.CodeAccountSuspended, "account is suspended")
	ErrDuplicateAccount     = domainerrors.New(domainerrors.CodeDuplicateAccount, "an account with this email already exists")
	ErrServiceUnavailable   = domainerrors.New(domainerrors.CodeUnavailable, "service is unreachable")
	ErrSessionExpired       = domainerrors.New(domainerrors.CodeSessionExpired, "session has expired")
	ErrReconciliationFailed = domainerrors.New(domainerrors.CodeReconciliationFailed, "could not reconcile social identity with an account")
	ErrSignInCancelled      = domainerrors.New(domainerrors.CodeSignInCancelled, "sign-in was cancelled")
)

// suspendedError carries the backend's suspension reason when one was given.
func suspendedError(reason string) error {
	if reason == "" {
		return ErrAccountSuspended
	}
	return domainerrors.New(domainerrors.CodeAccountSuspended, "account is suspended: "+reason)
}

// handleRegisterError translates backend failures from the register call into
// domain errors. Infrastructure sentinels cross this boundary exactly once.
func handleRegisterError(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrConflict):
		return ErrDuplicateAccount
	case errors.Is(err, sentinel.ErrUnavailable):
		return domainerrors.Wrap(err, domainerrors.CodeUnavailable, "registration service is unreachable")
	case errors.Is(err, sentinel.ErrBadRequest), errors.Is(err, sentinel.ErrInvalidInput):
		return domainerrors.Wrap(err, domainerrors.CodeValidation, "registration was rejected")
	default:
		return domainerrors.Wrap(err, domainerrors.CodeRegistrationFailed, "registration failed")
	}
}

// handleLoginError translates backend failures from the login call.
func handleLoginError(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrUnauthorized):
		return ErrInvalidCredentials
	case errors.Is(err, sentinel.ErrForbidden):
		return ErrAccountSuspended
	case errors.Is(err, sentinel.ErrUnavailable):
		return domainerrors.Wrap(err, domainerrors.CodeUnavailable, "login service is unreachable")
	default:
		return domainerrors.Wrap(err, domainerrors.CodeLoginFailed, "login failed")
	}
}

// validateRegistration enforces the account policy before any network call:
// password at least six characters with at least one uppercase and one
// lowercase letter, plus non-empty name and email.
func validateRegistration(p RegisterParams) error {
	if strings.TrimSpace(p.Name) == "" {
		return domainerrors.New(domainerrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(p.Email) == "" {
		return domainerrors.New(domainerrors.CodeValidation, "email is required")
	}
	return validatePassword(p.Password)
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return domainerrors.New(domainerrors.CodeValidation, "password must be at least 6 characters long")
	}
	var hasUpper, hasLower bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
	}
	if !hasUpper {
		return domainerrors.New(domainerrors.CodeValidation, "password must contain at least one uppercase letter")
	}
	if !hasLower {
		return domainerrors.New(domainerrors.CodeValidation, "password must contain at least one lowercase letter")
	}
	return nil
}
