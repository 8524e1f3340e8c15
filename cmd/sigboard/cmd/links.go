package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nfrund/sigboard/internal/domain"
)

func newLinksCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "links",
		Short: "Manage tracked links",
	}
	cmd.AddCommand(newLinksCreateCmd(c))
	return cmd
}

func newLinksCreateCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <signature-id> <url>",
		Short: "Attach a tracked URL to a signature",
		Long: `Attach a URL to a signature. The URL is sent as given; only its
presence is checked.`,
		Args: cobra.ExactArgs(2),
	}
	cmd.RunE = c.run(func(cmd *cobra.Command, args []string) error {
		id, err := domain.ParseSignatureID(args[0])
		if err != nil {
			return err
		}
		req := domain.CreateLinkRequest{SignatureID: id, URL: args[1]}
		if err := domain.Validate(req); err != nil {
			return err
		}
		client, err := c.signedIn()
		if err != nil {
			return err
		}
		link, err := client.CreateLink(cmd.Context(), req)
		if err != nil {
			return c.checkSession(cmd.Context(), err)
		}

		p, err := c.printer()
		if err != nil {
			return err
		}
		return p.Message("Link added to signature "+id.String()+".", map[string]string{
			"id":           link.ID,
			"signature_id": link.SignatureID.String(),
			"url":          link.URL,
		})
	})
	return cmd
}
