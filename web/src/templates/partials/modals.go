package partials

import (
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/sigboard/internal/domain"
)

// SignatureModal is the create-signature form. It posts back into #modal so
// a rejected submission re-renders with its message and the entered values.
func SignatureModal(values domain.TemplateData, errMsg string) cmp.Node {
	return modal("New signature",
		g.Form(
			hx.Post("/signature"), hx.Target("#modal"), hx.Swap("innerHTML"),
			InlineError(errMsg),
			field("Name", "name", "text", values.Name, true),
			field("Job title", "job_title", "text", values.JobTitle, true),
			field("Company", "company", "text", values.Company, true),
			field("Phone", "phone", "tel", values.Phone, true),
			field("Website", "website", "url", values.Website, true),
			g.FieldSet(
				g.Legend(cmp.Text("Social links")),
				field("LinkedIn", "social_links.linkedin", "url", values.SocialLinks.LinkedIn, false),
				field("Twitter", "social_links.twitter", "url", values.SocialLinks.Twitter, false),
			),
			modalButtons("Create signature"),
		),
	)
}

// LinkModal is the create-link form for one signature.
func LinkModal(signatureID domain.SignatureID, url, errMsg string) cmp.Node {
	return modal("Add tracked link",
		g.Form(
			hx.Post("/links"), hx.Target("#modal"), hx.Swap("innerHTML"),
			InlineError(errMsg),
			g.Input(g.Type("hidden"), g.Name("signature_id"), g.Value(signatureID.String())),
			field("URL", "url", "url", url, true),
			modalButtons("Add link"),
		),
	)
}

func modal(heading string, body cmp.Node) cmp.Node {
	return g.Div(
		g.Class("modal"),
		g.Role("dialog"),
		g.Aria("modal", "true"),
		g.Div(
			g.Class("modal-content"),
			g.H2(cmp.Text(heading)),
			body,
		),
	)
}

func modalButtons(submit string) cmp.Node {
	return g.Div(
		g.Class("modal-actions"),
		g.Button(g.Type("submit"), g.Class("btn btn-primary"), cmp.Text(submit)),
		g.Button(
			g.Type("button"), g.Class("btn"),
			cmp.Attr("hx-on:click", "document.getElementById('modal').replaceChildren()"),
			cmp.Text("Cancel"),
		),
	)
}

func field(label, name, typ, value string, required bool) cmp.Node {
	return g.Div(
		g.Class("field"),
		g.Label(g.For(name), cmp.Text(label)),
		g.Input(
			g.ID(name), g.Name(name), g.Type(typ), g.Value(value),
			cmp.If(required, g.Required()),
		),
	)
}
