package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"maragu.dev/gomponents"
)

// TemplToGomponentAdapter wraps a templ.Component to satisfy the gomponents.Node
// interface, so templ output (such as raw preview markup) can sit inside a
// gomponents page.
type TemplToGomponentAdapter struct {
	Ctx       context.Context
	Component templ.Component
}

// Render delegates to the templ component using the captured context.
func (a *TemplToGomponentAdapter) Render(w io.Writer) error {
	ctx := a.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return a.Component.Render(ctx, w)
}

// AdaptTemplToGomponent converts a templ component into a gomponents node.
func AdaptTemplToGomponent(ctx context.Context, component templ.Component) gomponents.Node {
	return &TemplToGomponentAdapter{Ctx: ctx, Component: component}
}

// RawHTML renders trusted markup received from the API without escaping.
func RawHTML(ctx context.Context, markup string) gomponents.Node {
	return AdaptTemplToGomponent(ctx, templ.Raw(markup))
}
