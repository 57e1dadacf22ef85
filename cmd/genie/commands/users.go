package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/genie/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and start a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Enter(domain.LoginPath)

			account, _ := cmd.Flags().GetString("account")
			passwordStdin, _ := cmd.Flags().GetBool("password-stdin")
			printSession, _ := cmd.Flags().GetBool("print-session")

			if passwordStdin && account == "" {
				return zerr.Wrap(domain.ErrMissingCredentials, "--password-stdin requires --account")
			}

			secrets := newSecretReader(c.in, cmd.ErrOrStderr())
			secrets.plain = passwordStdin
			if account == "" {
				var err error
				if account, err = secrets.read("Account"); err != nil {
					return err
				}
			}
			password, err := secrets.read("Password")
			if err != nil {
				return err
			}

			user, err := c.app.Login(cmd.Context(), account, password)
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			p.success("Signed in as " + user.DisplayName())
			if printSession {
				if session := c.app.SessionCookie(); session != "" {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), session)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringP("account", "a", "", "Account to sign in with")
	cmd.Flags().Bool("password-stdin", false, "Read the password from stdin")
	cmd.Flags().Bool("print-session", false, "Print the session cookie for use with GENIE_SESSION")
	return cmd
}

func (c *CLI) newRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Enter("/register")

			account, _ := cmd.Flags().GetString("account")
			secrets := newSecretReader(c.in, cmd.ErrOrStderr())
			if account == "" {
				var err error
				if account, err = secrets.read("Account"); err != nil {
					return err
				}
			}
			password, err := secrets.read("Password")
			if err != nil {
				return err
			}
			confirm, err := secrets.read("Confirm password")
			if err != nil {
				return err
			}

			id, err := c.app.Register(cmd.Context(), account, password, confirm)
			if err != nil {
				return err
			}

			newPrinter(cmd.OutOrStdout()).success(fmt.Sprintf("Registered %s (id %d), run 'genie login' to sign in", account, id))
			return nil
		},
	}
	cmd.Flags().StringP("account", "a", "", "Account to create")
	return cmd
}

func (c *CLI) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Enter("/")
			if err := c.app.Logout(cmd.Context()); err != nil {
				return err
			}
			newPrinter(cmd.OutOrStdout()).success("Signed out")
			return nil
		},
	}
}

func (c *CLI) newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Enter("/user")
			user, err := c.app.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			if user == nil {
				p.muted("Not signed in")
				return nil
			}
			p.user(user)
			return nil
		},
	}
}
