package session_test

import (
	"context"
	"fmt"

	"go.uber.org/mock/gomock"

	"loanlink/internal/api"
	"loanlink/internal/sentinel"
	"loanlink/internal/session"
)

func (s *ManagerSuite) TestCheckAuthRestoresSession() {
	s.Require().NoError(s.creds.SaveToken("jwt-old"))
	restored := &api.User{ID: "u1", Name: "Amina Rahman", Email: "amina@example.com", Role: "borrower"}
	s.backend.EXPECT().Me(gomock.Any()).Return(restored, "jwt-refreshed", nil)

	user, err := s.manager.CheckAuth(context.Background())
	s.Require().NoError(err)
	s.Require().NotNil(user)
	s.Equal("u1", user.ID)
	s.Equal(session.StateAuthenticated, s.manager.State())

	token, err := s.creds.Token()
	s.Require().NoError(err)
	s.Equal("jwt-refreshed", token)
}

func (s *ManagerSuite) TestCheckAuthKeepsTokenWhenNoneRefreshed() {
	s.Require().NoError(s.creds.SaveToken("jwt-old"))
	restored := &api.User{ID: "u1", Email: "amina@example.com", Role: "borrower"}
	s.backend.EXPECT().Me(gomock.Any()).Return(restored, "", nil)

	_, err := s.manager.CheckAuth(context.Background())
	s.Require().NoError(err)

	token, err := s.creds.Token()
	s.Require().NoError(err)
	s.Equal("jwt-old", token)
}

func (s *ManagerSuite) TestCheckAuthHonorsExplicitLogoutMarker() {
	s.Require().NoError(s.creds.SaveToken("jwt-old"))
	s.Require().NoError(s.creds.SetLogoutMarker())

	user, err := s.manager.CheckAuth(context.Background())
	s.Require().NoError(err)
	s.Nil(user)
	s.Equal(session.StateUnauthenticated, s.manager.State())

	// The marker is consumed and the stale token dropped.
	s.False(s.creds.LogoutMarker())
	_, tokenErr := s.creds.Token()
	s.ErrorIs(tokenErr, sentinel.ErrNotFound)
}

func (s *ManagerSuite) TestCheckAuthWithoutStoredToken() {
	user, err := s.manager.CheckAuth(context.Background())
	s.Require().NoError(err)
	s.Nil(user)
	s.Equal(session.StateUnauthenticated, s.manager.State())
}

func (s *ManagerSuite) TestCheckAuthDropsRejectedToken() {
	s.Require().NoError(s.creds.SaveToken("jwt-stale"))
	s.backend.EXPECT().Me(gomock.Any()).Return(nil, "", fmt.Errorf("401: %w", sentinel.ErrUnauthorized))

	user, err := s.manager.CheckAuth(context.Background())
	s.Require().NoError(err)
	s.Nil(user)
	s.Equal(session.StateUnauthenticated, s.manager.State())

	_, tokenErr := s.creds.Token()
	s.ErrorIs(tokenErr, sentinel.ErrNotFound)
}

func (s *ManagerSuite) TestCheckAuthDoesNotRestoreSuspendedAccount() {
	s.Require().NoError(s.creds.SaveToken("jwt-old"))
	restored := &api.User{ID: "u1", Email: "amina@example.com", Role: "borrower", IsSuspended: true}
	s.backend.EXPECT().Me(gomock.Any()).Return(restored, "", nil)

	user, err := s.manager.CheckAuth(context.Background())
	s.Require().NoError(err)
	s.Nil(user)
	s.Equal(session.StateUnauthenticated, s.manager.State())
}
