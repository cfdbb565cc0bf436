package session_test

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/mock/gomock"

	domainerrors "loanlink/pkg/domain-errors"

	"loanlink/internal/api"
	"loanlink/internal/sentinel"
	"loanlink/internal/session"
)

func (s *ManagerSuite) TestLoginEstablishesSession() {
	s.loginAsBorrower()

	user := s.manager.CurrentUser()
	s.Require().NotNil(user)
	s.Equal("u1", user.ID)
	s.Equal("borrower", user.Role)

	token, err := s.creds.Token()
	s.Require().NoError(err)
	s.Equal("jwt-u1", token)
	s.False(s.creds.LogoutMarker())
}

func (s *ManagerSuite) TestLoginClearsStaleLogoutMarker() {
	s.Require().NoError(s.creds.SetLogoutMarker())
	s.loginAsBorrower()
	s.False(s.creds.LogoutMarker())
}

func (s *ManagerSuite) TestLoginInvalidCredentials() {
	s.backend.EXPECT().
		Login(gomock.Any(), "amina@example.com", "wrong").
		Return(nil, fmt.Errorf("401: %w", sentinel.ErrUnauthorized))

	_, err := s.manager.Login(context.Background(), "amina@example.com", "wrong")
	s.True(errors.Is(err, session.ErrInvalidCredentials))
	s.Equal(session.StateUnauthenticated, s.manager.State())
	s.Nil(s.manager.CurrentUser())
}

func (s *ManagerSuite) TestLoginSuspendedAccountDespiteValidCredentials() {
	resp := authResponse("u1", "amina@example.com", "borrower")
	resp.User.IsSuspended = true
	resp.User.SuspendReason = "repayment default"
	s.backend.EXPECT().
		Login(gomock.Any(), "amina@example.com", "Secret1").
		Return(resp, nil)

	_, err := s.manager.Login(context.Background(), "amina@example.com", "Secret1")
	s.True(domainerrors.HasCode(err, domainerrors.CodeAccountSuspended))
	s.Contains(err.Error(), "repayment default")
	s.Equal(session.StateUnauthenticated, s.manager.State())

	// No credential is persisted for a suspended account.
	_, tokenErr := s.creds.Token()
	s.ErrorIs(tokenErr, sentinel.ErrNotFound)
}

func (s *ManagerSuite) TestLoginSuspendedViaForbiddenStatus() {
	s.backend.EXPECT().
		Login(gomock.Any(), "amina@example.com", "Secret1").
		Return(nil, fmt.Errorf("403: %w", sentinel.ErrForbidden))

	_, err := s.manager.Login(context.Background(), "amina@example.com", "Secret1")
	s.True(domainerrors.HasCode(err, domainerrors.CodeAccountSuspended))
}

func (s *ManagerSuite) TestLoginBackendUnreachable() {
	s.backend.EXPECT().
		Login(gomock.Any(), "amina@example.com", "Secret1").
		Return(nil, fmt.Errorf("dial tcp: %w", sentinel.ErrUnavailable))

	_, err := s.manager.Login(context.Background(), "amina@example.com", "Secret1")
	s.True(domainerrors.HasCode(err, domainerrors.CodeUnavailable))
	s.Equal(session.StateUnauthenticated, s.manager.State())
}

func (s *ManagerSuite) TestLoginReplacesExistingSession() {
	s.loginAsBorrower()

	second := &api.AuthResponse{
		User:  api.User{ID: "u2", Name: "Farid Khan", Email: "farid@example.com", Role: "lender"},
		Token: "jwt-u2",
	}
	s.backend.EXPECT().
		Login(gomock.Any(), "farid@example.com", "Secret2").
		Return(second, nil)

	result, err := s.manager.Login(context.Background(), "farid@example.com", "Secret2")
	s.Require().NoError(err)
	s.Equal("u2", result.User.ID)
	s.Equal("u2", s.manager.CurrentUser().ID)

	token, err := s.creds.Token()
	s.Require().NoError(err)
	s.Equal("jwt-u2", token)
}
