package layouts

import (
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/sigboard/internal/view"
	"github.com/nfrund/sigboard/web/src/templates/partials"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// Base is the document shell shared by every full page. signedIn controls
// whether the navigation offers the sign-out button.
func Base(title string, flashes view.FlashData, signedIn bool, content cmp.Node) cmp.Node {
	return g.Doctype(
		g.HTML(
			g.Lang("en"),
			g.Head(
				g.Meta(g.Charset("utf-8")),
				g.Meta(g.Name("viewport"), g.Content("width=device-width, initial-scale=1")),
				g.TitleEl(cmp.Text(CalculateTitle(title))),
				g.Link(g.Rel("stylesheet"), g.Href("/static/app.css")),
				g.Script(g.Src(htmxSrc), g.Defer()),
			),
			g.Body(
				hx.Boost("true"),
				nav(signedIn),
				g.Main(
					g.Class("container"),
					partials.Flash(flashes),
					g.Div(g.ID("notice")),
					content,
				),
			),
		),
	)
}

func nav(signedIn bool) cmp.Node {
	return g.Nav(
		g.Class("nav"),
		g.A(g.Class("brand"), g.Href("/dashboard"), cmp.Text("sigboard")),
		cmp.If(signedIn,
			g.Form(
				g.Method("post"), g.Action("/logout"),
				g.Button(g.Type("submit"), g.Class("btn btn-link"), cmp.Text("Sign out")),
			),
		),
	)
}

// Document is a bare page with no navigation, used where the body must stand
// on its own such as a signature preview opened in a new tab.
func Document(title string, body cmp.Node) cmp.Node {
	return g.Doctype(
		g.HTML(
			g.Lang("en"),
			g.Head(
				g.Meta(g.Charset("utf-8")),
				g.TitleEl(cmp.Text(CalculateTitle(title))),
			),
			g.Body(body),
		),
	)
}
