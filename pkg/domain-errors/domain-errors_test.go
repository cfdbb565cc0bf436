package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	err := New(CodeInvalidCredentials, "invalid email or password")
	assert.Equal(t, "invalid email or password", err.Error())

	bare := New(CodeUnavailable, "")
	assert.Equal(t, "service_unavailable", bare.Error())
}

func TestWrapPreservesOriginalCode(t *testing.T) {
	inner := New(CodeDuplicateAccount, "email already registered")
	wrapped := Wrap(inner, CodeInternal, "registration failed")

	assert.True(t, HasCode(wrapped, CodeDuplicateAccount))
	assert.False(t, HasCode(wrapped, CodeInternal))
	assert.Equal(t, "registration failed", wrapped.Error())
}

func TestWrapForeignError(t *testing.T) {
	inner := errors.New("connection refused")
	wrapped := Wrap(inner, CodeUnavailable, "backend unreachable")

	assert.True(t, HasCode(wrapped, CodeUnavailable))
	assert.ErrorIs(t, wrapped, inner)
}

func TestIsMatchesByCode(t *testing.T) {
	a := New(CodeSessionExpired, "session timed out")
	b := New(CodeSessionExpired, "different message")

	assert.ErrorIs(t, a, b)
	assert.NotErrorIs(t, a, New(CodeLoginFailed, ""))
}

func TestHasCodeThroughChain(t *testing.T) {
	inner := New(CodeAccountSuspended, "fraud")
	chained := fmt.Errorf("login: %w", inner)

	assert.True(t, HasCode(chained, CodeAccountSuspended))
	assert.False(t, HasCode(errors.New("plain"), CodeAccountSuspended))
}
