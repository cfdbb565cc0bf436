package session

import (
	"context"
	"errors"
	"fmt"

	"loanlink/internal/api"
	"loanlink/internal/identity"
	"loanlink/internal/sentinel"
	"loanlink/internal/session/tracer"
)

// socialPassword is the fixed credential linking a social identity to its
// primary-backend account. The backend recognizes it for accounts provisioned
// through this flow.
const socialPassword = "google-auth"

// SocialLoginOptions steers the reconciliation flow. Role is the explicit
// role choice, if the caller already has one. RegistrationFlow marks the
// call as originating from a sign-up surface, where a missing role falls
// back to the default instead of asking.
type SocialLoginOptions struct {
	Role             string
	RegistrationFlow bool
}

// LoginWithSocialIdentity signs in through the secondary identity provider
// and reconciles the resulting identity with the primary backend.
//
// Outcomes after a successful interactive sign-in:
//
//   - The linked account exists: the session is established. When the call
//     came from a registration flow, the result carries WasAlreadyRegistered
//     so the caller can route to sign-in instead of continuing sign-up.
//   - The account does not exist and no role is available: no session is
//     established; the result carries NeedsRoleSelection plus the bootstrap
//     identity so the caller can ask for a role and call again.
//   - The account does not exist and a role is available (explicit, or the
//     default in a registration flow): the account is provisioned and the
//     session established.
//   - Provisioning collides with an account registered by another path:
//     login is retried once; a second failure means the identity cannot be
//     reconciled.
func (m *Manager) LoginWithSocialIdentity(ctx context.Context, opts SocialLoginOptions) (result *LoginResult, err error) {
	ctx, span := m.tracer.Start(ctx, tracer.SpanSocialLogin,
		tracer.String(tracer.AttrRole, opts.Role),
		tracer.Bool(tracer.AttrRegistrationFlow, opts.RegistrationFlow))
	defer func() { span.End(err) }()

	id, signInErr := identity.SignInWithRetry(ctx, m.provider)
	if signInErr != nil {
		if errors.Is(signInErr, identity.ErrCancelled) {
			return nil, ErrSignInCancelled
		}
		if errors.Is(signInErr, sentinel.ErrUnavailable) {
			m.metrics.IncrementProviderFallback()
			return nil, ErrServiceUnavailable
		}
		m.metrics.IncrementAuthFailure()
		err = handleLoginError(signInErr)
		m.logger.WarnContext(ctx, "social sign-in failed", "error", signInErr)
		return nil, err
	}

	if err = m.beginAuthenticating(); err != nil {
		return nil, err
	}

	resp, loginErr := m.backend.Login(ctx, id.Email, socialPassword)
	if loginErr == nil {
		return m.concludeSocialLogin(ctx, span, resp, &LoginResult{
			WasAlreadyRegistered: opts.RegistrationFlow,
		})
	}
	if !errors.Is(loginErr, sentinel.ErrUnauthorized) && !errors.Is(loginErr, sentinel.ErrNotFound) {
		m.abortAuthenticating()
		m.metrics.IncrementAuthFailure()
		err = handleLoginError(loginErr)
		m.logger.WarnContext(ctx, "social login rejected", "email", id.Email, "error", loginErr)
		return nil, err
	}

	// Unknown to the backend. Without a role choice outside a registration
	// flow there is nothing to provision yet: hand the bootstrap identity
	// back so the caller can ask.
	role := opts.Role
	if role == "" && opts.RegistrationFlow {
		role = m.cfg.DefaultRole
	}
	if role == "" {
		m.abortAuthenticating()
		span.AddEvent("role selection required")
		m.logger.InfoContext(ctx, "social sign-in needs a role choice", "email", id.Email)
		return &LoginResult{NeedsRoleSelection: true, Identity: id}, nil
	}

	// Provision the account seeded from the provider identity. The
	// throwaway password keeps the account usable only through this flow.
	span.AddEvent("provisioning account", tracer.String(tracer.AttrRole, role))
	regResp, regErr := m.backend.Register(ctx, api.RegisterRequest{
		Name:     id.DisplayName,
		Email:    id.Email,
		PhotoURL: id.PhotoURL,
		Role:     role,
		Password: fmt.Sprintf("%s-%d", socialPassword, m.clock.Now().Unix()),
	})
	if regErr == nil {
		m.metrics.IncrementRegistration()
		return m.concludeSocialLogin(ctx, span, regResp, &LoginResult{})
	}
	if !errors.Is(regErr, sentinel.ErrConflict) {
		m.abortAuthenticating()
		m.metrics.IncrementAuthFailure()
		err = handleRegisterError(regErr)
		m.logger.WarnContext(ctx, "social provisioning failed", "email", id.Email, "error", regErr)
		return nil, err
	}

	// The account exists after all, most often registered with a password
	// before ever using social sign-in. One more login attempt covers a
	// racing provision; past that the identity and the account cannot be
	// reconciled automatically.
	span.AddEvent("provisioning collided, retrying login")
	retryResp, retryErr := m.backend.Login(ctx, id.Email, socialPassword)
	if retryErr != nil {
		m.abortAuthenticating()
		m.metrics.IncrementAuthFailure()
		m.logger.WarnContext(ctx, "social identity could not be reconciled", "email", id.Email, "error", retryErr)
		return nil, ErrReconciliationFailed
	}
	return m.concludeSocialLogin(ctx, span, retryResp, &LoginResult{WasAlreadyRegistered: true})
}

func (m *Manager) concludeSocialLogin(ctx context.Context, span tracer.Span, resp *api.AuthResponse, result *LoginResult) (*LoginResult, error) {
	if resp.User.IsSuspended {
		m.abortAuthenticating()
		m.metrics.IncrementAuthFailure()
		m.logger.WarnContext(ctx, "social login blocked for suspended account", "user_id", resp.User.ID)
		return nil, suspendedError(resp.User.SuspendReason)
	}
	if err := m.establishSession(ctx, resp.User, resp.Token, "social"); err != nil {
		return nil, err
	}
	span.SetAttributes(tracer.Bool("was_already_registered", result.WasAlreadyRegistered))
	m.logger.InfoContext(ctx, "social login succeeded",
		"user_id", resp.User.ID,
		"was_already_registered", result.WasAlreadyRegistered)
	user := resp.User
	result.User = &user
	return result, nil
}
