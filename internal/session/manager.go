// Package session implements the client's session lifecycle against the
// primary LoanLink backend and the optional secondary identity provider:
// registration, password and social login, restore-on-start, explicit logout,
// idle timeout, and forced expiry on a mid-session 401.
//
// The primary backend is the single source of truth for roles and suspension.
// The secondary provider is a sign-in convenience only; every flow keeps
// working when it is absent.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"loanlink/internal/api"
	"loanlink/internal/credentials"
	"loanlink/internal/identity"
	"loanlink/internal/platform/config"
	"loanlink/internal/platform/metrics"
	"loanlink/internal/session/tracer"
)

// Backend is the slice of the primary REST API the session manager needs.
// *api.Client satisfies it.
type Backend interface {
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	Me(ctx context.Context) (*api.User, string, error)
	Logout(ctx context.Context) error
}

// Expiry reasons passed to the expiry handler.
const (
	ExpiryReasonIdle         = "idle_timeout"
	ExpiryReasonUnauthorized = "unauthorized"
)

// Manager owns the session state machine. All exported methods are safe for
// concurrent use. The mutex is never held across network calls so that the
// unauthorized hook can re-enter without deadlocking.
type Manager struct {
	backend  Backend
	provider identity.Provider
	creds    credentials.Store
	cfg      config.Client

	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    tracer.Tracer
	clock     Clock
	newTicker TickerFactory

	onIdleWarning func(remaining time.Duration)
	onExpired     func(reason string)

	mu       sync.Mutex
	state    State
	session  *Session
	warned   bool
	notified bool
	stopIdle chan struct{}
	idleDone chan struct{}
}

// New creates a session manager. The provider may be nil, in which case
// social sign-in reports unavailable and mirroring calls are no-ops.
func New(backend Backend, provider identity.Provider, creds credentials.Store, cfg config.Client, opts ...Option) *Manager {
	if provider == nil {
		provider = identity.Disabled{}
	}
	m := &Manager{
		backend:  backend,
		provider: provider,
		creds:    creds,
		cfg:      cfg,
		state:    StateUnauthenticated,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.tracer == nil {
		m.tracer = tracer.NewNoop()
	}
	if m.clock == nil {
		m.clock = realClock{}
	}
	if m.newTicker == nil {
		m.newTicker = newRealTicker
	}
	return m
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CurrentUser returns the authenticated user, or nil when no session is held.
func (m *Manager) CurrentUser() *api.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil
	}
	user := m.session.User
	return &user
}

// Register creates an account with the primary backend and establishes a
// session. The password policy is enforced locally before any network call.
// The account is mirrored into the secondary provider best-effort.
func (m *Manager) Register(ctx context.Context, params RegisterParams) (result *LoginResult, err error) {
	ctx, span := m.tracer.Start(ctx, tracer.SpanRegister,
		tracer.String(tracer.AttrRole, params.Role))
	defer func() { span.End(err) }()

	if err = validateRegistration(params); err != nil {
		return nil, err
	}
	if params.Role == "" {
		params.Role = m.cfg.DefaultRole
	}

	if err = m.beginAuthenticating(); err != nil {
		return nil, err
	}

	resp, backendErr := m.backend.Register(ctx, api.RegisterRequest{
		Name:     params.Name,
		Email:    params.Email,
		PhotoURL: params.PhotoURL,
		Role:     params.Role,
		Password: params.Password,
	})
	if backendErr != nil {
		m.abortAuthenticating()
		m.metrics.IncrementAuthFailure()
		err = handleRegisterError(backendErr)
		m.logger.WarnContext(ctx, "registration rejected", "email", params.Email, "error", backendErr)
		return nil, err
	}

	m.mirrorSignUp(ctx, params)

	if err = m.establishSession(ctx, resp.User, resp.Token, "password"); err != nil {
		return nil, err
	}
	m.metrics.IncrementRegistration()
	m.logger.InfoContext(ctx, "account registered", "user_id", resp.User.ID, "role", resp.User.Role)
	user := resp.User
	return &LoginResult{User: &user}, nil
}

// Login authenticates with email and password. A suspended account is
// rejected even when the backend accepts the credentials, and no credential
// is persisted for it.
func (m *Manager) Login(ctx context.Context, email, password string) (result *LoginResult, err error) {
	ctx, span := m.tracer.Start(ctx, tracer.SpanLogin)
	defer func() { span.End(err) }()

	if err = m.beginAuthenticating(); err != nil {
		return nil, err
	}

	resp, backendErr := m.backend.Login(ctx, email, password)
	if backendErr != nil {
		m.abortAuthenticating()
		m.metrics.IncrementAuthFailure()
		err = handleLoginError(backendErr)
		m.logger.WarnContext(ctx, "login rejected", "email", email, "error", backendErr)
		return nil, err
	}
	if resp.User.IsSuspended {
		m.abortAuthenticating()
		m.metrics.IncrementAuthFailure()
		m.logger.WarnContext(ctx, "login blocked for suspended account", "email", email, "reason", resp.User.SuspendReason)
		return nil, suspendedError(resp.User.SuspendReason)
	}

	if err = m.establishSession(ctx, resp.User, resp.Token, "password"); err != nil {
		return nil, err
	}
	// Best-effort mirror so a later social sign-in finds the account.
	m.mirrorSignUp(ctx, RegisterParams{
		Name:     resp.User.Name,
		Email:    email,
		PhotoURL: resp.User.PhotoURL,
		Password: password,
	})
	m.logger.InfoContext(ctx, "login succeeded", "user_id", resp.User.ID, "role", resp.User.Role)
	user := resp.User
	return &LoginResult{User: &user}, nil
}

// Logout ends the session everywhere: it records the explicit-logout marker,
// clears the stored credential, and best-effort revokes the backend and
// provider sessions. It is idempotent and never fails the caller for remote
// errors.
func (m *Manager) Logout(ctx context.Context) (err error) {
	ctx, span := m.tracer.Start(ctx, tracer.SpanLogout)
	defer func() { span.End(err) }()

	m.mu.Lock()
	hadSession := m.session != nil
	m.session = nil
	m.state = StateUnauthenticated
	m.stopIdleMonitorLocked()
	m.mu.Unlock()

	if markerErr := m.creds.SetLogoutMarker(); markerErr != nil {
		m.logger.WarnContext(ctx, "failed to record logout marker", "error", markerErr)
	}
	if clearErr := m.creds.ClearToken(); clearErr != nil {
		m.logger.WarnContext(ctx, "failed to clear stored credential", "error", clearErr)
	}
	m.metrics.SetSessionActive(false)

	if hadSession {
		m.revokeRemote(ctx)
	}
	m.logger.InfoContext(ctx, "logged out", "had_session", hadSession)
	return nil
}

// CheckAuth restores a prior session on startup. An explicit logout marker
// suppresses restoration and is consumed. Restoration failures are never
// surfaced as errors; the client simply starts unauthenticated.
func (m *Manager) CheckAuth(ctx context.Context) (user *api.User, err error) {
	ctx, span := m.tracer.Start(ctx, tracer.SpanCheckAuth)
	defer func() { span.End(err) }()

	if m.creds.LogoutMarker() {
		m.logger.DebugContext(ctx, "skipping session restore after explicit logout")
		if err := m.creds.ClearLogoutMarker(); err != nil {
			m.logger.WarnContext(ctx, "failed to consume logout marker", "error", err)
		}
		if err := m.creds.ClearToken(); err != nil {
			m.logger.WarnContext(ctx, "failed to clear stored credential", "error", err)
		}
		return nil, nil
	}

	token, tokenErr := m.creds.Token()
	if tokenErr != nil || token == "" {
		return nil, nil
	}

	restored, refreshed, meErr := m.backend.Me(ctx)
	if meErr != nil {
		// A stale or rejected credential is not an error condition at
		// startup. Drop it and start unauthenticated.
		m.logger.DebugContext(ctx, "session restore failed", "error", meErr)
		if err := m.creds.ClearToken(); err != nil {
			m.logger.WarnContext(ctx, "failed to clear stored credential", "error", err)
		}
		return nil, nil
	}
	if restored.IsSuspended {
		m.logger.WarnContext(ctx, "not restoring session for suspended account", "user_id", restored.ID)
		if err := m.creds.ClearToken(); err != nil {
			m.logger.WarnContext(ctx, "failed to clear stored credential", "error", err)
		}
		return nil, nil
	}

	if refreshed == "" {
		refreshed = token
	}
	if err := m.establishSession(ctx, *restored, refreshed, "restore"); err != nil {
		return nil, nil
	}
	m.logger.InfoContext(ctx, "session restored", "user_id", restored.ID, "role", restored.Role)
	return restored, nil
}

// Touch records user activity, pushing back the idle timeout. If a warning
// was showing, the session returns to plain Authenticated.
func (m *Manager) Touch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.state.active() || m.session == nil {
		return
	}
	m.session.LastActivity = m.clock.Now()
	m.warned = false
	if m.state == StateIdleWarning {
		m.state = StateAuthenticated
	}
}

// HandleUnauthorized is invoked when the backend rejects a request from an
// active session with 401. The session is expired locally exactly once; calls
// outside an active session are ignored.
func (m *Manager) HandleUnauthorized() {
	m.mu.Lock()
	if !m.state.active() {
		m.mu.Unlock()
		return
	}
	m.session = nil
	m.state = StateExpired
	m.stopIdleMonitorLocked()
	notify := !m.notified
	m.notified = true
	m.mu.Unlock()

	if err := m.creds.ClearToken(); err != nil {
		m.logger.Warn("failed to clear stored credential", "error", err)
	}
	m.metrics.SetSessionActive(false)
	m.metrics.IncrementSessionExpired()
	m.logger.Warn("session expired by backend rejection")
	if notify && m.onExpired != nil {
		m.onExpired(ExpiryReasonUnauthorized)
	}
}

// Close stops the idle monitor and waits for it to exit. Safe to call
// multiple times.
func (m *Manager) Close() {
	m.mu.Lock()
	done := m.idleDone
	m.stopIdleMonitorLocked()
	m.mu.Unlock()
	if done != nil {
		<-done
	}
}

// beginAuthenticating moves into the transient Authenticating state. A login
// attempt on top of an active session replaces it, matching a fresh sign-in
// from an authenticated page.
func (m *Manager) beginAuthenticating() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateAuthenticating {
		return fmt.Errorf("authentication already in progress")
	}
	m.stopIdleMonitorLocked()
	m.session = nil
	m.state = StateAuthenticating
	return nil
}

func (m *Manager) abortAuthenticating() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateAuthenticating {
		m.state = StateUnauthenticated
	}
}

// establishSession persists the credential and flips the machine into
// Authenticated, starting the idle monitor.
func (m *Manager) establishSession(ctx context.Context, user api.User, token, method string) error {
	if token != "" {
		if err := m.creds.SaveToken(token); err != nil {
			m.logger.WarnContext(ctx, "failed to persist credential", "error", err)
		}
	}
	if err := m.creds.ClearLogoutMarker(); err != nil {
		m.logger.WarnContext(ctx, "failed to clear logout marker", "error", err)
	}

	now := m.clock.Now()
	m.mu.Lock()
	m.session = &Session{User: user, Token: token, IssuedAt: now, LastActivity: now}
	m.state = StateAuthenticated
	m.warned = false
	m.notified = false
	m.startIdleMonitorLocked()
	m.mu.Unlock()

	m.metrics.SetSessionActive(true)
	m.metrics.IncrementLogin(method)
	return nil
}

// mirrorSignUp copies a fresh account into the secondary provider. Failures
// are swallowed; the primary account is already the source of truth.
func (m *Manager) mirrorSignUp(ctx context.Context, params RegisterParams) {
	if err := m.provider.SignUp(ctx, params.Name, params.Email, params.PhotoURL, params.Password); err != nil {
		m.metrics.IncrementProviderFallback()
		m.logger.WarnContext(ctx, "secondary provider sign-up mirror failed", "error", err)
	}
}

// revokeRemote tears down the backend and provider sessions in parallel.
// Both are best-effort.
func (m *Manager) revokeRemote(ctx context.Context) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := m.backend.Logout(ctx); err != nil {
			m.logger.DebugContext(ctx, "backend logout failed", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := m.provider.SignOut(ctx); err != nil {
			m.metrics.IncrementProviderFallback()
			m.logger.DebugContext(ctx, "provider sign-out failed", "error", err)
		}
		return nil
	})
	_ = g.Wait()
}
