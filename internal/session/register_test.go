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

func (s *ManagerSuite) TestRegisterRejectsWeakPasswordsBeforeAnyNetworkCall() {
	cases := []struct {
		name     string
		password string
	}{
		{"too short", "Ab1"},
		{"no uppercase", "alllowercase"},
		{"no lowercase", "ALLUPPERCASE"},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.manager.Register(context.Background(), session.RegisterParams{
				Name:     "Amina Rahman",
				Email:    "amina@example.com",
				Password: tc.password,
			})
			s.Require().Error(err)
			s.True(domainerrors.HasCode(err, domainerrors.CodeValidation))
			s.Equal(session.StateUnauthenticated, s.manager.State())
		})
	}
}

func (s *ManagerSuite) TestRegisterRequiresNameAndEmail() {
	_, err := s.manager.Register(context.Background(), session.RegisterParams{
		Email:    "amina@example.com",
		Password: "Secret1",
	})
	s.True(domainerrors.HasCode(err, domainerrors.CodeValidation))

	_, err = s.manager.Register(context.Background(), session.RegisterParams{
		Name:     "Amina Rahman",
		Password: "Secret1",
	})
	s.True(domainerrors.HasCode(err, domainerrors.CodeValidation))
}

func (s *ManagerSuite) TestRegisterEstablishesSessionAndMirrorsAccount() {
	var mirrored bool
	s.backend.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req api.RegisterRequest) (*api.AuthResponse, error) {
			s.Equal("borrower", req.Role)
			return authResponse("u1", "amina@example.com", "borrower"), nil
		})
	s.provider.EXPECT().
		SignUp(gomock.Any(), "Amina Rahman", "amina@example.com", "", "Secret1").
		DoAndReturn(func(context.Context, string, string, string, string) error {
			mirrored = true
			return nil
		})

	result, err := s.manager.Register(context.Background(), session.RegisterParams{
		Name:     "Amina Rahman",
		Email:    "amina@example.com",
		Password: "Secret1",
	})
	s.Require().NoError(err)
	s.Equal("u1", result.User.ID)
	s.True(mirrored)
	s.Equal(session.StateAuthenticated, s.manager.State())

	token, err := s.creds.Token()
	s.Require().NoError(err)
	s.Equal("jwt-u1", token)
}

func (s *ManagerSuite) TestRegisterBackendUnreachable() {
	s.backend.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("dial tcp: %w", sentinel.ErrUnavailable))

	_, err := s.manager.Register(context.Background(), session.RegisterParams{
		Name:     "Amina Rahman",
		Email:    "amina@example.com",
		Password: "Secret1",
	})
	s.True(domainerrors.HasCode(err, domainerrors.CodeUnavailable))
	s.Equal(session.StateUnauthenticated, s.manager.State())
}

func (s *ManagerSuite) TestRegisterDuplicateEmail() {
	s.backend.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("email taken: %w", sentinel.ErrConflict))

	_, err := s.manager.Register(context.Background(), session.RegisterParams{
		Name:     "Amina Rahman",
		Email:    "amina@example.com",
		Password: "Secret1",
	})
	s.True(errors.Is(err, session.ErrDuplicateAccount))
	s.Equal(session.StateUnauthenticated, s.manager.State())
}

func (s *ManagerSuite) TestRegisterSurvivesProviderMirrorFailure() {
	s.backend.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		Return(authResponse("u1", "amina@example.com", "borrower"), nil)
	s.provider.EXPECT().
		SignUp(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("provider down"))

	result, err := s.manager.Register(context.Background(), session.RegisterParams{
		Name:     "Amina Rahman",
		Email:    "amina@example.com",
		Password: "Secret1",
	})
	s.Require().NoError(err)
	s.Equal(session.StateAuthenticated, s.manager.State())
	s.NotNil(result.User)
}
