package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"loanlink/internal/session"
)

func newRegisterCmd(a *app) *cobra.Command {
	var params session.RegisterParams
	var google bool
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a LoanLink account and log in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if google {
				result, err := a.manager.LoginWithSocialIdentity(cmd.Context(),
					session.SocialLoginOptions{Role: params.Role, RegistrationFlow: true})
				if err != nil {
					return err
				}
				if result.WasAlreadyRegistered {
					fmt.Fprintln(cmd.OutOrStdout(), "this email is already registered; you are signed in to the existing account, use `loanlink login` next time")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "welcome, %s (%s)\n", result.User.Name, result.User.Role)
				return nil
			}
			if params.Name == "" || params.Email == "" || params.Password == "" {
				return fmt.Errorf("--name, --email and --password are required (or use --google)")
			}
			result, err := a.manager.Register(cmd.Context(), params)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "welcome, %s (%s)\n", result.User.Name, result.User.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&params.Name, "name", "", "full name")
	cmd.Flags().StringVar(&params.Email, "email", "", "email address")
	cmd.Flags().StringVar(&params.Password, "password", "", "password (6+ chars, upper and lower case)")
	cmd.Flags().StringVar(&params.Role, "role", "", "role (borrower or lender)")
	cmd.Flags().StringVar(&params.PhotoURL, "photo-url", "", "profile photo URL")
	cmd.Flags().BoolVar(&google, "google", false, "register with the configured social identity")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var email, password, role string
	var google bool
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email/password or the configured social identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if google {
				result, err := a.manager.LoginWithSocialIdentity(cmd.Context(),
					session.SocialLoginOptions{Role: role})
				if err != nil {
					return err
				}
				if result.NeedsRoleSelection {
					fmt.Fprintf(cmd.OutOrStdout(),
						"no account exists yet for %s; run again with --role borrower or --role lender to create one\n",
						result.Identity.Email)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s (%s)\n", result.User.Email, result.User.Role)
				return nil
			}
			if email == "" || password == "" {
				return fmt.Errorf("--email and --password are required (or use --google)")
			}
			result, err := a.manager.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s (%s)\n", result.User.Email, result.User.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&role, "role", "", "role for first-time social sign-in (borrower or lender)")
	cmd.Flags().BoolVar(&google, "google", false, "sign in with the configured social identity")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the stored credential",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Restore silently so the backend session gets revoked too; an
			// absent session still clears local state.
			_, _ = a.manager.CheckAuth(cmd.Context())
			if err := a.manager.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := a.manager.CheckAuth(cmd.Context())
			if err != nil {
				return err
			}
			if user == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> role=%s\n", user.Name, user.Email, user.Role)
			return nil
		},
	}
}
