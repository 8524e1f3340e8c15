package partials

import (
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/sigboard/internal/view"
)

// Flash renders queued success and error messages.
func Flash(flashes view.FlashData) cmp.Node {
	if flashes.Empty() {
		return nil
	}
	return g.Div(
		g.ID("flash"),
		cmp.Map(flashes.Success, func(msg string) cmp.Node {
			return g.Div(g.Class("alert alert-success"), g.Role("status"), cmp.Text(msg))
		}),
		cmp.Map(flashes.Error, func(msg string) cmp.Node {
			return g.Div(g.Class("alert alert-error"), g.Role("alert"), cmp.Text(msg))
		}),
	)
}

// Notice replaces the page's #notice slot out of band, so a fragment
// response can report success or failure next to whatever it swapped.
func Notice(success bool, message string, extra ...cmp.Node) cmp.Node {
	class := "alert alert-error"
	if success {
		class = "alert alert-success"
	}
	return g.Div(
		g.ID("notice"),
		hx.SwapOOB("true"),
		g.Div(g.Class(class), g.Role("status"), cmp.Text(message), cmp.Group(extra)),
	)
}

// InlineError is shown next to the control that failed.
func InlineError(message string) cmp.Node {
	if message == "" {
		return nil
	}
	return g.P(g.Class("field-error"), g.Role("alert"), cmp.Text(message))
}
