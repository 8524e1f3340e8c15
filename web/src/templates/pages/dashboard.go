package pages

import (
	"fmt"

	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/sigboard/internal/dashboard"
	"github.com/nfrund/sigboard/internal/domain"
	"github.com/nfrund/sigboard/web/src/templates/partials"
)

// Dashboard renders a loaded dashboard view.
func Dashboard(v *dashboard.View) cmp.Node {
	return g.Div(
		g.Class("dashboard"),
		g.Header(
			g.Class("dashboard-header"),
			g.H1(cmp.Text("Dashboard")),
			g.Button(
				g.Type("button"), g.Class("btn btn-primary"),
				hx.Get("/signatures/new"), hx.Target("#modal"),
				cmp.Text("New signature"),
			),
		),
		partials.Counts(v.Counts),
		g.H2(cmp.Text("Signatures")),
		partials.SignatureList(v.Signatures(), v.ListErr),
		g.Div(g.ID("modal")),
	)
}

// Preview shows a signature's rendered markup on its own page.
func Preview(markup cmp.Node) cmp.Node {
	return g.Div(g.Class("signature-preview"), markup)
}

// ConfirmDelete asks before a delete made without scripting. Only its submit
// button carries confirm=yes.
func ConfirmDelete(sig domain.Signature) cmp.Node {
	id := sig.ID.String()
	return g.Div(
		g.Class("confirm-delete"),
		g.H1(cmp.Text("Delete signature")),
		g.P(cmp.Text(fmt.Sprintf("Delete %q (signature %s)? This cannot be undone.", sig.DisplayName(), id))),
		g.Form(
			g.Method("post"), g.Action("/signature/"+id+"/delete"),
			g.Input(g.Type("hidden"), g.Name("confirm"), g.Value("yes")),
			g.Button(g.Type("submit"), g.Class("btn btn-danger"), cmp.Text("Delete")),
			g.A(g.Href("/dashboard"), g.Class("btn"), cmp.Text("Cancel")),
		),
	)
}
