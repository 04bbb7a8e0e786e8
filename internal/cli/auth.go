package cli

import (
	"errors"
	"fmt"

	"github.com/runoshun/taskline/internal/app"
	"github.com/runoshun/taskline/internal/domain"
	"github.com/runoshun/taskline/internal/usecase"
	"github.com/spf13/cobra"
)

var errPINMismatch = errors.New("PINs do not match")

// newAuthCommand creates the auth command group.
func newAuthCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the account session",
		Long: `Create the account, log in and out, and change the PIN.

The session cookie is kept in the state directory, so a login
is shared by the TUI and every subcommand.`,
	}
	cmd.AddCommand(
		newSetupCommand(c),
		newLoginCommand(c),
		newLogoutCommand(c),
		newPINCommand(c),
	)
	return cmd
}

func newSetupCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Username string
		Email    string
	}

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create the account",
		Long: `Create the account on a fresh server. You are prompted for the PIN.

Examples:
  taskline auth setup --username alex --email alex@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			p := newPrompter(cmd)
			pin, err := p.Secret("PIN: ")
			if err != nil {
				return err
			}
			confirm, err := p.Secret("Confirm PIN: ")
			if err != nil {
				return err
			}
			if pin != confirm {
				return errPINMismatch
			}

			user, err := c.SetupUseCase().Execute(cmd.Context(), domain.SetupInput{
				PIN:      pin,
				Username: opts.Username,
				Email:    opts.Email,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s\n", user.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Username, "username", "u", "", "Account username")
	cmd.Flags().StringVar(&opts.Email, "email", "", "Account email")
	return cmd
}

func newLoginCommand(c *app.Container) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in",
		Long: `Log in with username and PIN. Missing values are prompted for.

Examples:
  taskline auth login --username alex`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			p := newPrompter(cmd)
			if username == "" {
				u, err := p.Line("Username: ")
				if err != nil {
					return err
				}
				username = u
			}
			pin, err := p.Secret("PIN: ")
			if err != nil {
				return err
			}

			user, err := c.LoginUseCase().Execute(cmd.Context(), usecase.LoginInput{
				Username: username,
				PIN:      pin,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", user.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Account username")
	return cmd
}

func newLogoutCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear local data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			if err := c.LogoutUseCase().Execute(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
	return cmd
}

func newPINCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pin",
		Short: "Change the PIN",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}
			p := newPrompter(cmd)
			current, err := p.Secret("Current PIN: ")
			if err != nil {
				return err
			}
			next, err := p.Secret("New PIN: ")
			if err != nil {
				return err
			}
			confirm, err := p.Secret("Confirm new PIN: ")
			if err != nil {
				return err
			}
			if next != confirm {
				return errPINMismatch
			}

			if err := c.ChangePINUseCase().Execute(cmd.Context(), usecase.ChangePINInput{
				CurrentPIN: current,
				NewPIN:     next,
			}); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "PIN changed")
			return nil
		},
	}
	return cmd
}
