package stub_test

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "loanlink/pkg/domain-errors"

	"loanlink/internal/api"
	"loanlink/internal/credentials"
	"loanlink/internal/identity"
	"loanlink/internal/platform/config"
	"loanlink/internal/platform/logger"
	"loanlink/internal/session"
	"loanlink/internal/stub"
)

// harness wires a real client and session manager against an in-process stub.
type harness struct {
	server  *stub.Server
	ts      *httptest.Server
	client  *api.Client
	creds   *credentials.MemoryStore
	manager *session.Manager
}

func newHarness(t *testing.T, provider identity.Provider) *harness {
	t.Helper()
	server := stub.NewServer(
		config.Stub{JWTSigningKey: "test-key", TokenTTL: time.Hour},
		stub.WithLogger(logger.NewWithWriter(io.Discard)),
	)
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	creds := credentials.NewMemoryStore()
	client := api.New(ts.URL,
		api.WithTokenSource(creds),
		api.WithLogger(logger.NewWithWriter(io.Discard)),
	)
	cfg := config.Client{
		IdleTimeout:  config.DefaultIdleTimeout,
		IdleWarning:  config.DefaultIdleWarning,
		TickInterval: config.DefaultTickInterval,
		DefaultRole:  "borrower",
	}
	manager := session.New(client, provider, creds, cfg,
		session.WithLogger(logger.NewWithWriter(io.Discard)))
	t.Cleanup(manager.Close)
	client.SetUnauthorizedHook(manager.HandleUnauthorized)

	return &harness{server: server, ts: ts, client: client, creds: creds, manager: manager}
}

func TestPasswordLifecycleAgainstStub(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	result, err := h.manager.Register(ctx, session.RegisterParams{
		Name:     "Amina Rahman",
		Email:    "amina@example.com",
		Password: "Secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "borrower", result.User.Role)
	assert.Equal(t, session.StateAuthenticated, h.manager.State())

	// Duplicate registration is rejected with a conflict.
	_, err = h.manager.Register(ctx, session.RegisterParams{
		Name:     "Amina Again",
		Email:    "amina@example.com",
		Password: "Secret1",
	})
	assert.True(t, domainerrors.HasCode(err, domainerrors.CodeDuplicateAccount))

	// Log back in and restore across a restart.
	_, err = h.manager.Login(ctx, "amina@example.com", "Secret1")
	require.NoError(t, err)

	restored, err := h.manager.CheckAuth(ctx)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, "amina@example.com", restored.Email)

	// Explicit logout suppresses the next restore.
	require.NoError(t, h.manager.Logout(ctx))
	gone, err := h.manager.CheckAuth(ctx)
	require.NoError(t, err)
	assert.Nil(t, gone)
	assert.Equal(t, session.StateUnauthenticated, h.manager.State())
}

func TestWrongPasswordAgainstStub(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	_, err := h.manager.Register(ctx, session.RegisterParams{
		Name:     "Amina Rahman",
		Email:    "amina@example.com",
		Password: "Secret1",
	})
	require.NoError(t, err)
	require.NoError(t, h.manager.Logout(ctx))

	_, err = h.manager.Login(ctx, "amina@example.com", "Wrong1pass")
	assert.True(t, domainerrors.HasCode(err, domainerrors.CodeInvalidCredentials))
}

func TestSocialFlowAgainstStub(t *testing.T) {
	provider := identity.Static{Identity: identity.Identity{
		DisplayName: "Farid Khan",
		Email:       "farid@example.com",
		PhotoURL:    "https://img.example.com/farid.png",
	}}
	h := newHarness(t, provider)
	ctx := context.Background()

	// Without a role choice, a first-time social sign-in asks before
	// provisioning anything.
	result, err := h.manager.LoginWithSocialIdentity(ctx, session.SocialLoginOptions{})
	require.NoError(t, err)
	assert.True(t, result.NeedsRoleSelection)
	require.NotNil(t, result.Identity)
	assert.Equal(t, "farid@example.com", result.Identity.Email)
	assert.Equal(t, session.StateUnauthenticated, h.manager.State())

	// Called again with a role, the account is provisioned.
	result, err = h.manager.LoginWithSocialIdentity(ctx, session.SocialLoginOptions{Role: "lender"})
	require.NoError(t, err)
	assert.False(t, result.NeedsRoleSelection)
	assert.Equal(t, "lender", result.User.Role)
	assert.Equal(t, "farid@example.com", result.User.Email)

	require.NoError(t, h.manager.Logout(ctx))

	// The next sign-in finds the provisioned account directly.
	result, err = h.manager.LoginWithSocialIdentity(ctx, session.SocialLoginOptions{})
	require.NoError(t, err)
	assert.False(t, result.NeedsRoleSelection)
	assert.False(t, result.WasAlreadyRegistered)
}

func TestSocialSentinelRejectedForPasswordAccount(t *testing.T) {
	provider := identity.Static{Identity: identity.Identity{
		DisplayName: "Amina Rahman",
		Email:       "amina@example.com",
	}}
	h := newHarness(t, provider)
	ctx := context.Background()

	// A password account exists for the same email.
	_, err := h.manager.Register(ctx, session.RegisterParams{
		Name:     "Amina Rahman",
		Email:    "amina@example.com",
		Password: "Secret1",
	})
	require.NoError(t, err)
	require.NoError(t, h.manager.Logout(ctx))

	// Social sign-in cannot log in with the sentinel, provisioning collides,
	// and the one retry fails too: reconciliation fails.
	_, err = h.manager.LoginWithSocialIdentity(ctx, session.SocialLoginOptions{Role: "borrower"})
	assert.True(t, domainerrors.HasCode(err, domainerrors.CodeReconciliationFailed))
}

func TestSuspensionAgainstStub(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	_, err := h.server.SeedUser("Root Admin", "admin@example.com", "Admin1pass", "admin")
	require.NoError(t, err)

	_, err = h.manager.Register(ctx, session.RegisterParams{
		Name:     "Amina Rahman",
		Email:    "amina@example.com",
		Password: "Secret1",
	})
	require.NoError(t, err)
	target := h.manager.CurrentUser().ID
	require.NoError(t, h.manager.Logout(ctx))

	// The admin suspends the borrower.
	_, err = h.manager.Login(ctx, "admin@example.com", "Admin1pass")
	require.NoError(t, err)
	require.NoError(t, h.client.SuspendUser(ctx, target, "repayment default"))
	require.NoError(t, h.manager.Logout(ctx))

	// Valid credentials, but the account is suspended.
	_, err = h.manager.Login(ctx, "amina@example.com", "Secret1")
	assert.True(t, domainerrors.HasCode(err, domainerrors.CodeAccountSuspended))
	assert.Contains(t, err.Error(), "repayment default")
}

func TestMidSessionUnauthorizedExpiresSession(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	_, err := h.manager.Register(ctx, session.RegisterParams{
		Name:     "Amina Rahman",
		Email:    "amina@example.com",
		Password: "Secret1",
	})
	require.NoError(t, err)

	// Corrupt the stored token; the next authenticated request is rejected
	// with 401 and the hook expires the session.
	require.NoError(t, h.creds.SaveToken("garbage"))
	_, err = h.client.MyApplications(ctx)
	require.Error(t, err)
	assert.Equal(t, session.StateExpired, h.manager.State())
}

func TestResourceSurfaceAgainstStub(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	_, err := h.server.SeedUser("Mira Manager", "manager@example.com", "Manager1", "manager")
	require.NoError(t, err)
	loan := h.server.SeedLoan(api.Loan{
		Title:        "Small Business Boost",
		Category:     "business",
		InterestRate: 9.5,
		MaxLoanLimit: 50000,
		ShowOnHome:   true,
		EMIPlans:     []int{6, 12, 24},
	})

	_, err = h.manager.Register(ctx, session.RegisterParams{
		Name:     "Amina Rahman",
		Email:    "amina@example.com",
		Password: "Secret1",
	})
	require.NoError(t, err)

	loans, err := h.client.Loans(ctx, api.LoanFilter{ShowOnHome: true})
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, loan.ID, loans[0].ID)

	app, err := h.client.SubmitApplication(ctx, api.ApplicationInput{
		LoanID:        loan.ID,
		LoanTitle:     loan.Title,
		FirstName:     "Amina",
		LastName:      "Rahman",
		MonthlyIncome: 42000,
		LoanAmount:    20000,
		InterestRate:  loan.InterestRate,
		ReasonForLoan: "inventory",
	})
	require.NoError(t, err)
	assert.Equal(t, "Pending", app.Status)
	assert.Equal(t, "amina@example.com", app.UserEmail)

	mine, err := h.client.MyApplications(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	// The manager approves; then a repayment can be recorded.
	require.NoError(t, h.manager.Logout(ctx))
	_, err = h.manager.Login(ctx, "manager@example.com", "Manager1")
	require.NoError(t, err)
	require.NoError(t, h.client.UpdateApplicationStatus(ctx, app.ID, "Approved"))
	require.NoError(t, h.manager.Logout(ctx))

	_, err = h.manager.Login(ctx, "amina@example.com", "Secret1")
	require.NoError(t, err)
	intent, err := h.client.CreateRepaymentIntent(ctx, app.ID, 1800)
	require.NoError(t, err)
	require.NoError(t, h.client.ConfirmPayment(ctx, intent.PaymentIntentID))
	rep, err := h.client.RecordRepayment(ctx, app.ID, 1800, intent.PaymentIntentID)
	require.NoError(t, err)
	assert.Equal(t, "Paid", rep.Status)

	reps, err := h.client.Repayments(ctx, app.ID)
	require.NoError(t, err)
	require.Len(t, reps, 1)

	// Contact form round trip.
	msg, err := h.client.SendContactMessage(ctx, api.ContactInput{
		Name:    "Amina Rahman",
		Email:   "amina@example.com",
		Subject: "hello",
		Message: "loving the portal",
	})
	require.NoError(t, err)
	myMsgs, err := h.client.MyContactMessages(ctx)
	require.NoError(t, err)
	require.Len(t, myMsgs, 1)
	assert.Equal(t, msg.ID, myMsgs[0].ID)
}
