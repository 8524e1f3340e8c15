package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nfrund/sigboard/internal/domain"
)

func newLoginCmd(c *cli) *cobra.Command {
	var creds domain.Credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session token",
		Long: `Sign in with your email and password. The token the API returns is
stored in the token file (SIGBOARD_TOKEN_FILE) and used by later commands.
The password is prompted for, without echo, when --password is not given.`,
		Args: cobra.NoArgs,
	}
	cmd.Flags().StringVar(&creds.Email, "email", "", "account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "account password")

	cmd.RunE = c.run(func(cmd *cobra.Command, _ []string) error {
		var err error
		if creds.Email == "" {
			if creds.Email, err = c.prompt("Email: "); err != nil {
				return err
			}
		}
		if creds.Password == "" {
			if creds.Password, err = c.promptSecret("Password: "); err != nil {
				return err
			}
		}
		if err := domain.Validate(creds); err != nil {
			return err
		}

		tokens, svc, err := c.tokens()
		if err != nil {
			return err
		}
		if err := svc.Login(cmd.Context(), tokens, creds); err != nil {
			return err
		}

		p, err := c.printer()
		if err != nil {
			return err
		}
		return p.Message("Signed in as "+creds.Email+".", map[string]string{"email": creds.Email})
	})
	return cmd
}

func newRegisterCmd(c *cli) *cobra.Command {
	var reg domain.Registration
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long: `Create an account. Every field is required; the passwords must match.
Registering does not sign you in.`,
		Args: cobra.NoArgs,
	}
	cmd.Flags().StringVar(&reg.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&reg.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&reg.Email, "email", "", "account email")
	cmd.Flags().StringVar(&reg.Password, "password", "", "password")
	cmd.Flags().StringVar(&reg.ConfirmPassword, "confirm-password", "", "password again")

	cmd.RunE = c.run(func(cmd *cobra.Command, _ []string) error {
		if err := domain.Validate(reg); err != nil {
			return err
		}
		_, svc, err := c.tokens()
		if err != nil {
			return err
		}
		if err := svc.Register(cmd.Context(), reg); err != nil {
			return err
		}

		p, err := c.printer()
		if err != nil {
			return err
		}
		return p.Message("Account created. Run 'sigboard login' to sign in.", map[string]string{"email": reg.Email})
	})
	return cmd
}

func newLogoutCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = c.run(func(cmd *cobra.Command, _ []string) error {
		tokens, svc, err := c.tokens()
		if err != nil {
			return err
		}
		svc.SignOut(cmd.Context(), tokens, false)

		p, err := c.printer()
		if err != nil {
			return err
		}
		return p.Message("Signed out.", nil)
	})
	return cmd
}
