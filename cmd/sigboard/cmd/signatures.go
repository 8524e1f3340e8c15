package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nfrund/sigboard/internal/dashboard"
	"github.com/nfrund/sigboard/internal/domain"
)

func newSignaturesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "signatures",
		Aliases: []string{"sig"},
		Short:   "List, preview, export, delete and create signatures",
		Long: `Manage your signatures.

Examples:
  sigboard signatures list
  sigboard signatures preview 42 > preview.html
  sigboard signatures export 42            # writes signature_42.html
  sigboard signatures delete 42 --yes
  sigboard signatures create --name "Ada Lovelace" --job-title Analyst \
    --company "Engines Ltd" --phone 555-0100 --website https://example.com`,
	}
	cmd.AddCommand(
		newSignaturesListCmd(c),
		newSignaturesPreviewCmd(c),
		newSignaturesExportCmd(c),
		newSignaturesDeleteCmd(c),
		newSignaturesCreateCmd(c),
	)
	return cmd
}

func newSignaturesListCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your signatures",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = c.run(func(cmd *cobra.Command, _ []string) error {
		client, err := c.signedIn()
		if err != nil {
			return err
		}
		v, err := dashboard.NewAggregator(client, slog.Default()).LoadSignatures(cmd.Context())
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
		return p.Dashboard(v, false)
	})
	return cmd
}

// signatureView parses the id argument and returns an action view for it.
func (c *cli) signatureView(raw string) (*dashboard.View, domain.SignatureID, error) {
	id, err := domain.ParseSignatureID(raw)
	if err != nil {
		return nil, "", err
	}
	client, err := c.signedIn()
	if err != nil {
		return nil, "", err
	}
	return dashboard.NewView(client, nil), id, nil
}

func newSignaturesPreviewCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <id>",
		Short: "Print a signature's rendered markup",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = c.run(func(cmd *cobra.Command, args []string) error {
		v, id, err := c.signatureView(args[0])
		if err != nil {
			return err
		}
		markup, err := v.Preview(cmd.Context(), id)
		if err != nil {
			return c.checkSession(cmd.Context(), err)
		}

		p, err := c.printer()
		if err != nil {
			return err
		}
		if p.JSON() {
			return p.Message("Preview of signature "+id.String()+".", map[string]string{"id": id.String(), "html": markup})
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), markup)
		return err
	})
	return cmd
}

func newSignaturesExportCmd(c *cli) *cobra.Command {
	var force, toStdout bool
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Save a signature as signature_<id>.html",
		Long: `Download the exported signature into the export directory
(SIGBOARD_EXPORT_DIR, default the current directory). The file is always
named signature_<id>.html, whatever content type the API reports.`,
		Args: cobra.ExactArgs(1),
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "write the export to standard output instead of a file")

	cmd.RunE = c.run(func(cmd *cobra.Command, args []string) error {
		v, id, err := c.signatureView(args[0])
		if err != nil {
			return err
		}
		art, err := v.Export(cmd.Context(), id)
		if err != nil {
			return c.checkSession(cmd.Context(), err)
		}
		if toStdout {
			_, err := cmd.OutOrStdout().Write(art.Body)
			return err
		}

		exports, err := c.application.Exports()
		if err != nil {
			return err
		}
		path, err := exports.Save(cmd.Context(), art.Filename, art.Body, force)
		if err != nil {
			return err
		}
		p, err := c.printer()
		if err != nil {
			return err
		}
		return p.Message("Exported to "+path+".", map[string]string{
			"path":         path,
			"content_type": art.ContentType,
		})
	})
	return cmd
}

func newSignaturesDeleteCmd(c *cli) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a signature after confirmation",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	cmd.RunE = c.run(func(cmd *cobra.Command, args []string) error {
		v, id, err := c.signatureView(args[0])
		if err != nil {
			return err
		}
		confirm := func(id domain.SignatureID) bool {
			if yes {
				return true
			}
			answer, err := c.prompt(fmt.Sprintf("Delete signature %s? This cannot be undone. [y/N]: ", id))
			if err != nil {
				return false
			}
			answer = strings.ToLower(strings.TrimSpace(answer))
			return answer == "y" || answer == "yes"
		}

		if err := v.Delete(cmd.Context(), id, confirm); err != nil {
			if errors.Is(err, dashboard.ErrNotConfirmed) {
				return fmt.Errorf("signature %s was not deleted", id)
			}
			return c.checkSession(cmd.Context(), err)
		}

		p, err := c.printer()
		if err != nil {
			return err
		}
		return p.Message("Signature "+id.String()+" deleted.", map[string]string{"id": id.String()})
	})
	return cmd
}

func newSignaturesCreateCmd(c *cli) *cobra.Command {
	var tpl domain.TemplateData
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a signature",
		Long: `Create a signature from template fields. Name, job title, company,
phone and website are required; the social links are optional.`,
		Args: cobra.NoArgs,
	}
	f := cmd.Flags()
	f.StringVar(&tpl.Name, "name", "", "full name")
	f.StringVar(&tpl.JobTitle, "job-title", "", "job title")
	f.StringVar(&tpl.Company, "company", "", "company")
	f.StringVar(&tpl.Phone, "phone", "", "phone number")
	f.StringVar(&tpl.Website, "website", "", "website")
	f.StringVar(&tpl.SocialLinks.LinkedIn, "linkedin", "", "LinkedIn profile URL")
	f.StringVar(&tpl.SocialLinks.Twitter, "twitter", "", "Twitter profile URL")

	cmd.RunE = c.run(func(cmd *cobra.Command, _ []string) error {
		if err := domain.Validate(tpl); err != nil {
			return err
		}
		client, err := c.signedIn()
		if err != nil {
			return err
		}
		sig, err := client.CreateSignature(cmd.Context(), tpl)
		if err != nil {
			return c.checkSession(cmd.Context(), err)
		}

		p, err := c.printer()
		if err != nil {
			return err
		}
		return p.Message(fmt.Sprintf("Signature %q created (id %s).", sig.DisplayName(), sig.ID), map[string]string{
			"id":   sig.ID.String(),
			"name": sig.DisplayName(),
		})
	})
	return cmd
}
