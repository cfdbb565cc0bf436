// Package identity abstracts the optional secondary identity provider used
// for social sign-in. The provider is a convenience layer only: the primary
// backend stays authoritative, and every flow must keep working when the
// provider is absent.
package identity

import (
	"context"
	"errors"
	"fmt"

	"loanlink/internal/sentinel"
)

// Identity is the bootstrap record yielded by an interactive sign-in. It is
// never a system of record; it only seeds registration with the primary
// backend.
type Identity struct {
	DisplayName string
	Email       string
	PhotoURL    string
}

// Provider is the narrow capability surface of the secondary identity
// backend. SignIn is interactive; SignUp and SignOut mirror primary-backend
// operations best-effort.
type Provider interface {
	// SignIn runs the interactive sign-in flow and returns the resulting
	// bootstrap identity. Cancellation by the user returns ErrCancelled.
	SignIn(ctx context.Context) (*Identity, error)
	// SignUp mirrors an email/password account into the provider.
	SignUp(ctx context.Context, name, email, photoURL, password string) error
	// SignOut ends the provider-side session.
	SignOut(ctx context.Context) error
}

// ErrCancelled is returned when the user aborts the interactive sign-in.
// Unlike other provider failures it must propagate to the caller.
var ErrCancelled = fmt.Errorf("sign-in %w", sentinel.ErrCancelled)

// ErrRetryable marks a transient interactive failure worth one more attempt
// (the popup analog of a benign browser warning). It is advisory only.
var ErrRetryable = errors.New("transient sign-in failure")

// Disabled is the null-object Provider used when no secondary backend is
// configured. SignIn reports the capability as unavailable; the mirroring
// calls succeed silently so primary flows never branch on its presence.
type Disabled struct{}

func (Disabled) SignIn(context.Context) (*Identity, error) {
	return nil, fmt.Errorf("social sign-in %w", sentinel.ErrUnavailable)
}

func (Disabled) SignUp(context.Context, string, string, string, string) error {
	return nil
}

func (Disabled) SignOut(context.Context) error {
	return nil
}

// Static is a Provider that always yields a fixed identity, standing in for
// a real interactive provider in development and CLI use.
type Static struct {
	Identity Identity
}

func (p Static) SignIn(context.Context) (*Identity, error) {
	id := p.Identity
	return &id, nil
}

func (p Static) SignUp(context.Context, string, string, string, string) error {
	return nil
}

func (p Static) SignOut(context.Context) error {
	return nil
}

// SignInWithRetry runs the interactive sign-in, retrying exactly once when
// the provider reports a retryable transient failure. Cancellation and any
// other error propagate immediately; no stronger recovery is assumed.
func SignInWithRetry(ctx context.Context, p Provider) (*Identity, error) {
	id, err := p.SignIn(ctx)
	if err == nil || !errors.Is(err, ErrRetryable) {
		return id, err
	}
	return p.SignIn(ctx)
}
