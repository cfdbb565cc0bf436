// Package cli implements the loanlink command line interface. Each command
// builds the session manager from configuration, runs one operation, and
// prints a human-readable result. Credentials persist between invocations in
// the credentials file, so a login in one invocation carries to the next.
package cli

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"loanlink/internal/api"
	"loanlink/internal/credentials"
	"loanlink/internal/identity"
	"loanlink/internal/platform/config"
	"loanlink/internal/platform/logger"
	"loanlink/internal/session"
)

// app carries the wired dependencies into command implementations.
type app struct {
	cfg     config.Client
	file    fileConfig
	client  *api.Client
	creds   credentials.Store
	manager *session.Manager
}

// NewRootCmd builds the loanlink command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	var configPath string

	root := &cobra.Command{
		Use:           "loanlink",
		Short:         "Client for the LoanLink microloan portal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, fc, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.file = fc
			a.creds = credentials.NewFileStore(cfg.CredentialsFile)
			a.client = api.New(cfg.APIBaseURL,
				api.WithTokenSource(a.creds),
				api.WithLogger(logger.NewWithWriter(os.Stderr)),
				api.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
			)
			a.manager = session.New(a.client, a.provider(), a.creds, cfg,
				session.WithLogger(logger.NewWithWriter(os.Stderr)),
				session.WithExpiryHandler(func(reason string) {
					fmt.Fprintf(cmd.ErrOrStderr(), "session expired (%s), please log in again\n", reason)
				}),
				session.WithIdleWarningHandler(func(remaining time.Duration) {
					fmt.Fprintf(cmd.ErrOrStderr(), "session expires in %s without activity\n", remaining.Round(time.Second))
				}),
			)
			a.client.SetUnauthorizedHook(a.manager.HandleUnauthorized)
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.manager != nil {
				a.manager.Close()
			}
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.loanlink/config.yaml)")

	root.AddCommand(
		newRegisterCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newLoansCmd(a),
		newApplyCmd(a),
		newApplicationsCmd(a),
		newRepayCmd(a),
		newContactCmd(a),
	)
	return root
}

// provider returns the identity provider configured for social sign-in, or
// nil when the config carries no identity (social commands then report the
// capability as unavailable).
func (a *app) provider() identity.Provider {
	if a.file.Identity.Email == "" {
		return nil
	}
	return identity.Static{Identity: identity.Identity{
		DisplayName: a.file.Identity.DisplayName,
		Email:       a.file.Identity.Email,
		PhotoURL:    a.file.Identity.PhotoURL,
	}}
}

// restore brings back a persisted session before a command that needs one.
func (a *app) restore(cmd *cobra.Command) error {
	user, err := a.manager.CheckAuth(cmd.Context())
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("not logged in; run `loanlink login` first")
	}
	return nil
}
