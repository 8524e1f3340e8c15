package partials

import (
	"fmt"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/sigboard/internal/dashboard"
	"github.com/nfrund/sigboard/internal/domain"
)

// Counts renders the three count cards. A failed count shows a dash while the
// others keep their values; one shared message reports the failure.
func Counts(counts dashboard.Counts) cmp.Node {
	return g.Section(
		g.ID("counts"),
		g.Class("counts"),
		g.Div(
			g.Class("cards"),
			countCard("analytics entries", counts.Analytics),
			countCard("signatures", counts.Signatures),
			countCard("links", counts.Links),
		),
		cmp.If(counts.Errored(), g.P(g.Class("alert alert-error"), g.Role("alert"), cmp.Text(dashboard.LoadFailedMessage))),
	)
}

func countCard(label string, c dashboard.Count) cmp.Node {
	value := "-"
	if c.OK() {
		value = strconv.FormatInt(c.Value, 10)
	}
	return g.Div(
		g.Class("card"),
		g.P(g.Class("card-label"), cmp.Text(cases.Title(language.English).String(label))),
		g.P(g.Class("card-value"), cmp.Text(value)),
	)
}

// SignatureList renders the signature table, or a static message in its
// place when the list could not be loaded.
func SignatureList(signatures []domain.Signature, listErr error) cmp.Node {
	var body cmp.Node
	switch {
	case listErr != nil:
		body = g.P(g.Class("alert alert-error"), g.Role("alert"), cmp.Text("Failed to load signatures."))
	case len(signatures) == 0:
		body = g.P(g.Class("empty"), cmp.Text("No signatures yet."))
	default:
		body = g.Table(
			g.Class("table"),
			g.THead(g.Tr(
				g.Th(cmp.Text("Name")),
				g.Th(cmp.Text("Company")),
				g.Th(cmp.Text("Created")),
				g.Th(cmp.Text("Actions")),
			)),
			g.TBody(cmp.Map(signatures, SignatureRow)),
		)
	}
	return g.Section(g.ID("signatures"), body)
}

// SignatureRow is one table row with its preview, export, link and delete
// actions. With htmx, delete is confirmed in the browser and only the
// confirmed request carries confirm=yes; the empty response then swaps the
// row away. Without it, the link opens the confirmation page.
func SignatureRow(sig domain.Signature) cmp.Node {
	id := sig.ID.String()
	created := ""
	if !sig.CreatedAt.IsZero() {
		created = sig.CreatedAt.Local().Format("2006-01-02")
	}
	return g.Tr(
		g.ID("signature-"+id),
		g.Td(cmp.Text(sig.DisplayName())),
		g.Td(cmp.Text(sig.TemplateData.Company)),
		g.Td(cmp.Text(created)),
		g.Td(
			g.Class("actions"),
			g.A(g.Href(signaturePath(id, "preview")), g.Target("_blank"), g.Rel("noopener"), cmp.Text("Preview")),
			g.A(g.Href(signaturePath(id, "export")), hx.Boost("false"), cmp.Text("Export")),
			g.Button(
				g.Type("button"), g.Class("btn btn-link"),
				hx.Get(signaturePath(id, "links/new")), hx.Target("#modal"),
				cmp.Text("Add link"),
			),
			g.A(
				g.Href(signaturePath(id, "delete")), g.Class("btn btn-danger"),
				hx.Delete(signaturePath(id, "")),
				hx.Confirm(fmt.Sprintf("Delete %q? This cannot be undone.", sig.DisplayName())),
				cmp.Attr("hx-vals", `{"confirm":"yes"}`),
				hx.Target("closest tr"),
				hx.Swap("outerHTML"),
				cmp.Text("Delete"),
			),
		),
	)
}

func signaturePath(id, action string) string {
	if action == "" {
		return "/signature/" + id
	}
	return "/signature/" + id + "/" + action
}
