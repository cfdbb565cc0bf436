package session_test

import (
	"context"
	"errors"

	"go.uber.org/mock/gomock"

	"loanlink/internal/sentinel"
	"loanlink/internal/session"
)

func (s *ManagerSuite) TestLogoutClearsStateAndRecordsMarker() {
	s.loginAsBorrower()
	s.backend.EXPECT().Logout(gomock.Any()).Return(nil)
	s.provider.EXPECT().SignOut(gomock.Any()).Return(nil)

	s.Require().NoError(s.manager.Logout(context.Background()))
	s.Equal(session.StateUnauthenticated, s.manager.State())
	s.Nil(s.manager.CurrentUser())
	s.True(s.creds.LogoutMarker())

	_, err := s.creds.Token()
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *ManagerSuite) TestLogoutWithoutSessionIsIdempotent() {
	// No remote calls when there was never a session.
	s.Require().NoError(s.manager.Logout(context.Background()))
	s.Require().NoError(s.manager.Logout(context.Background()))
	s.Equal(session.StateUnauthenticated, s.manager.State())
	s.True(s.creds.LogoutMarker())
}

func (s *ManagerSuite) TestLogoutSwallowsRemoteFailures() {
	s.loginAsBorrower()
	s.backend.EXPECT().Logout(gomock.Any()).Return(errors.New("backend down"))
	s.provider.EXPECT().SignOut(gomock.Any()).Return(errors.New("provider down"))

	s.Require().NoError(s.manager.Logout(context.Background()))
	s.Equal(session.StateUnauthenticated, s.manager.State())
	s.True(s.creds.LogoutMarker())
}
