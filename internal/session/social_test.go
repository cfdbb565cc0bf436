package session_test

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/mock/gomock"

	domainerrors "loanlink/pkg/domain-errors"

	"loanlink/internal/api"
	"loanlink/internal/credentials"
	"loanlink/internal/identity"
	"loanlink/internal/platform/config"
	"loanlink/internal/sentinel"
	"loanlink/internal/session"
)

func (s *ManagerSuite) socialIdentity() *identity.Identity {
	return &identity.Identity{
		DisplayName: "Amina Rahman",
		Email:       "amina@example.com",
		PhotoURL:    "https://img.example.com/amina.png",
	}
}

func (s *ManagerSuite) TestSocialLoginExistingLinkedAccount() {
	s.provider.EXPECT().SignIn(gomock.Any()).Return(s.socialIdentity(), nil)
	s.backend.EXPECT().
		Login(gomock.Any(), "amina@example.com", "google-auth").
		Return(authResponse("u1", "amina@example.com", "borrower"), nil)

	result, err := s.manager.LoginWithSocialIdentity(context.Background(), session.SocialLoginOptions{})
	s.Require().NoError(err)
	s.False(result.NeedsRoleSelection)
	s.False(result.WasAlreadyRegistered)
	s.Equal(session.StateAuthenticated, s.manager.State())
}

func (s *ManagerSuite) TestSocialLoginRegistrationFlowFlagsExistingAccount() {
	s.provider.EXPECT().SignIn(gomock.Any()).Return(s.socialIdentity(), nil)
	s.backend.EXPECT().
		Login(gomock.Any(), "amina@example.com", "google-auth").
		Return(authResponse("u1", "amina@example.com", "borrower"), nil)

	result, err := s.manager.LoginWithSocialIdentity(context.Background(),
		session.SocialLoginOptions{RegistrationFlow: true})
	s.Require().NoError(err)
	s.True(result.WasAlreadyRegistered)
	s.Equal(session.StateAuthenticated, s.manager.State())
}

func (s *ManagerSuite) TestSocialLoginNeedsRoleSelectionWithoutRole() {
	s.provider.EXPECT().SignIn(gomock.Any()).Return(s.socialIdentity(), nil)
	s.backend.EXPECT().
		Login(gomock.Any(), "amina@example.com", "google-auth").
		Return(nil, fmt.Errorf("401: %w", sentinel.ErrUnauthorized))

	result, err := s.manager.LoginWithSocialIdentity(context.Background(), session.SocialLoginOptions{})
	s.Require().NoError(err)
	s.True(result.NeedsRoleSelection)
	s.Require().NotNil(result.Identity)
	s.Equal("amina@example.com", result.Identity.Email)

	// No session, no persisted credential.
	s.Equal(session.StateUnauthenticated, s.manager.State())
	_, tokenErr := s.creds.Token()
	s.ErrorIs(tokenErr, sentinel.ErrNotFound)
}

func (s *ManagerSuite) TestSocialLoginProvisionsWithExplicitRole() {
	s.provider.EXPECT().SignIn(gomock.Any()).Return(s.socialIdentity(), nil)
	s.backend.EXPECT().
		Login(gomock.Any(), "amina@example.com", "google-auth").
		Return(nil, fmt.Errorf("401: %w", sentinel.ErrUnauthorized))
	s.backend.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req api.RegisterRequest) (*api.AuthResponse, error) {
			s.Equal("Amina Rahman", req.Name)
			s.Equal("amina@example.com", req.Email)
			s.Equal("lender", req.Role)
			s.True(strings.HasPrefix(req.Password, "google-auth-"))
			return authResponse("u1", "amina@example.com", "lender"), nil
		})

	result, err := s.manager.LoginWithSocialIdentity(context.Background(),
		session.SocialLoginOptions{Role: "lender"})
	s.Require().NoError(err)
	s.False(result.NeedsRoleSelection)
	s.Equal(session.StateAuthenticated, s.manager.State())
}

func (s *ManagerSuite) TestSocialLoginRegistrationFlowDefaultsRole() {
	s.provider.EXPECT().SignIn(gomock.Any()).Return(s.socialIdentity(), nil)
	s.backend.EXPECT().
		Login(gomock.Any(), "amina@example.com", "google-auth").
		Return(nil, fmt.Errorf("401: %w", sentinel.ErrUnauthorized))
	s.backend.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req api.RegisterRequest) (*api.AuthResponse, error) {
			s.Equal("borrower", req.Role)
			return authResponse("u1", "amina@example.com", "borrower"), nil
		})

	_, err := s.manager.LoginWithSocialIdentity(context.Background(),
		session.SocialLoginOptions{RegistrationFlow: true})
	s.Require().NoError(err)
	s.Equal(session.StateAuthenticated, s.manager.State())
}

func (s *ManagerSuite) TestSocialLoginReconcilesAccountRegisteredElsewhere() {
	s.provider.EXPECT().SignIn(gomock.Any()).Return(s.socialIdentity(), nil)
	first := s.backend.EXPECT().
		Login(gomock.Any(), "amina@example.com", "google-auth").
		Return(nil, fmt.Errorf("401: %w", sentinel.ErrUnauthorized))
	reg := s.backend.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("email taken: %w", sentinel.ErrConflict))
	retry := s.backend.EXPECT().
		Login(gomock.Any(), "amina@example.com", "google-auth").
		Return(authResponse("u1", "amina@example.com", "lender"), nil)
	gomock.InOrder(first, reg, retry)

	result, err := s.manager.LoginWithSocialIdentity(context.Background(),
		session.SocialLoginOptions{Role: "lender"})
	s.Require().NoError(err)
	s.True(result.WasAlreadyRegistered)
	s.Equal(session.StateAuthenticated, s.manager.State())
}

func (s *ManagerSuite) TestSocialLoginReconciliationFails() {
	s.provider.EXPECT().SignIn(gomock.Any()).Return(s.socialIdentity(), nil)
	first := s.backend.EXPECT().
		Login(gomock.Any(), "amina@example.com", "google-auth").
		Return(nil, fmt.Errorf("401: %w", sentinel.ErrUnauthorized))
	reg := s.backend.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("email taken: %w", sentinel.ErrConflict))
	retry := s.backend.EXPECT().
		Login(gomock.Any(), "amina@example.com", "google-auth").
		Return(nil, fmt.Errorf("401: %w", sentinel.ErrUnauthorized))
	gomock.InOrder(first, reg, retry)

	_, err := s.manager.LoginWithSocialIdentity(context.Background(),
		session.SocialLoginOptions{Role: "borrower"})
	s.True(domainerrors.HasCode(err, domainerrors.CodeReconciliationFailed))
	s.Equal(session.StateUnauthenticated, s.manager.State())
}

func (s *ManagerSuite) TestSocialLoginCancelledByUser() {
	s.provider.EXPECT().SignIn(gomock.Any()).Return(nil, identity.ErrCancelled)

	_, err := s.manager.LoginWithSocialIdentity(context.Background(), session.SocialLoginOptions{})
	s.True(domainerrors.HasCode(err, domainerrors.CodeSignInCancelled))
	s.Equal(session.StateUnauthenticated, s.manager.State())
}

func (s *ManagerSuite) TestSocialLoginRetriesInteractiveSignInOnce() {
	fail := s.provider.EXPECT().
		SignIn(gomock.Any()).
		Return(nil, fmt.Errorf("popup closed early: %w", identity.ErrRetryable))
	ok := s.provider.EXPECT().SignIn(gomock.Any()).Return(s.socialIdentity(), nil)
	gomock.InOrder(fail, ok)
	s.backend.EXPECT().
		Login(gomock.Any(), "amina@example.com", "google-auth").
		Return(authResponse("u1", "amina@example.com", "borrower"), nil)

	_, err := s.manager.LoginWithSocialIdentity(context.Background(), session.SocialLoginOptions{})
	s.Require().NoError(err)
	s.Equal(session.StateAuthenticated, s.manager.State())
}

func (s *ManagerSuite) TestSocialLoginSuspendedAccount() {
	resp := authResponse("u1", "amina@example.com", "borrower")
	resp.User.IsSuspended = true
	s.provider.EXPECT().SignIn(gomock.Any()).Return(s.socialIdentity(), nil)
	s.backend.EXPECT().
		Login(gomock.Any(), "amina@example.com", "google-auth").
		Return(resp, nil)

	_, err := s.manager.LoginWithSocialIdentity(context.Background(), session.SocialLoginOptions{})
	s.True(errors.Is(err, session.ErrAccountSuspended))
	s.Equal(session.StateUnauthenticated, s.manager.State())
}

func (s *ManagerSuite) TestSocialLoginWithoutConfiguredProvider() {
	manager := session.New(s.backend, nil, credentials.NewMemoryStore(), config.Client{DefaultRole: "borrower"})
	defer manager.Close()

	_, err := manager.LoginWithSocialIdentity(context.Background(), session.SocialLoginOptions{})
	s.True(domainerrors.HasCode(err, domainerrors.CodeUnavailable))
	s.Equal(session.StateUnauthenticated, manager.State())
}
