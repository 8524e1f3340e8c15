package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nfrund/sigboard/internal/dashboard"
	"github.com/nfrund/sigboard/internal/domain"
)

func newDashboardCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show counts and signatures",
		Long: `Load the analytics, signature and link counts together with the
signature list. Each part is shown on its own; a failed count prints "-".`,
		Args: cobra.NoArgs,
	}
	cmd.RunE = c.run(func(cmd *cobra.Command, _ []string) error {
		client, err := c.signedIn()
		if err != nil {
			return err
		}
		v, err := dashboard.NewAggregator(client, slog.Default()).Load(cmd.Context())
		if err != nil {
			return err
		}
		if v.Unauthorized() {
			return c.checkSession(cmd.Context(), domain.ErrUnauthorized)
		}

		p, err := c.printer()
		if err != nil {
			return err
		}
		return p.Dashboard(v, true)
	})
	return cmd
}
