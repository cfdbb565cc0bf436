package session_test

import (
	"time"

	"go.uber.org/mock/gomock"

	"loanlink/internal/session"
)

func (s *ManagerSuite) TestIdleWarningRaisedInsideWarningWindow() {
	s.loginAsBorrower()

	s.clock.Advance(26 * time.Minute)
	s.ticker.tick()

	remaining := s.waitForWarning()
	s.Equal(4*time.Minute, remaining)
	s.Equal(session.StateIdleWarning, s.manager.State())
}

func (s *ManagerSuite) TestIdleWarningFiresOncePerWindow() {
	s.loginAsBorrower()

	s.clock.Advance(26 * time.Minute)
	s.ticker.tick()
	s.waitForWarning()

	// Further ticks inside the same window stay quiet.
	s.clock.Advance(time.Minute)
	s.ticker.tick()
	select {
	case <-s.warnings:
		s.Fail("warning fired twice for the same window")
	case <-time.After(50 * time.Millisecond):
	}
}

func (s *ManagerSuite) TestActivityDismissesIdleWarning() {
	s.loginAsBorrower()

	s.clock.Advance(26 * time.Minute)
	s.ticker.tick()
	s.waitForWarning()

	s.manager.Touch()
	s.Equal(session.StateAuthenticated, s.manager.State())

	// The warning re-arms after fresh inactivity.
	s.clock.Advance(26 * time.Minute)
	s.ticker.tick()
	s.waitForWarning()
	s.Equal(session.StateIdleWarning, s.manager.State())
}

func (s *ManagerSuite) TestIdleTimeoutForcesLogout() {
	s.loginAsBorrower()
	s.backend.EXPECT().Logout(gomock.Any()).Return(nil)
	s.provider.EXPECT().SignOut(gomock.Any()).Return(nil)

	s.clock.Advance(31 * time.Minute)
	s.ticker.tick()

	s.Equal(session.ExpiryReasonIdle, s.waitForExpiry())
	s.Equal(session.StateExpired, s.manager.State())
	s.Nil(s.manager.CurrentUser())

	// A timed-out session must not silently restore on the next start.
	s.True(s.creds.LogoutMarker())
}

func (s *ManagerSuite) TestUnauthorizedResponseExpiresSession() {
	s.loginAsBorrower()

	s.manager.HandleUnauthorized()
	s.Equal(session.ExpiryReasonUnauthorized, s.waitForExpiry())
	s.Equal(session.StateExpired, s.manager.State())
	s.Nil(s.manager.CurrentUser())

	// Repeat rejections do not notify again.
	s.manager.HandleUnauthorized()
	select {
	case <-s.expiries:
		s.Fail("expiry notified twice")
	case <-time.After(50 * time.Millisecond):
	}
}

func (s *ManagerSuite) TestUnauthorizedIgnoredWithoutActiveSession() {
	s.manager.HandleUnauthorized()
	s.Equal(session.StateUnauthenticated, s.manager.State())
	select {
	case <-s.expiries:
		s.Fail("expiry notified without a session")
	case <-time.After(50 * time.Millisecond):
	}
}
