package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/sigboard/internal/apiclient"
	"github.com/nfrund/sigboard/internal/auth"
	"github.com/nfrund/sigboard/internal/dashboard"
	"github.com/nfrund/sigboard/internal/domain"
	"github.com/nfrund/sigboard/internal/events"
	"github.com/nfrund/sigboard/internal/middleware"
	"github.com/nfrund/sigboard/internal/pubsub"
	"github.com/nfrund/sigboard/internal/view"
	"github.com/nfrund/sigboard/web/src/templates/layouts"
	"github.com/nfrund/sigboard/web/src/templates/pages"
	"github.com/nfrund/sigboard/web/src/templates/partials"
)

// SignatureHandler serves the signature lifecycle: create, preview, export
// and delete.
type SignatureHandler struct {
	api       *apiclient.Client
	auth      *auth.Service
	publisher pubsub.Publisher
}

// NewSignatureHandler creates a new SignatureHandler.
func NewSignatureHandler(api *apiclient.Client, svc *auth.Service, publisher pubsub.Publisher) *SignatureHandler {
	if publisher == nil {
		publisher = pubsub.Discard
	}
	return &SignatureHandler{api: api, auth: svc, publisher: publisher}
}

func (h *SignatureHandler) actions(c echo.Context) *dashboard.View {
	return dashboard.NewView(h.api.WithSession(middleware.Tokens(c)), nil)
}

func (h *SignatureHandler) publish(c echo.Context, fn func() error) {
	if err := fn(); err != nil {
		middleware.FromContext(c.Request().Context()).Warn("failed to publish event", "error", err)
	}
}

// NewGet opens the empty signature modal.
func (h *SignatureHandler) NewGet(c echo.Context) error {
	return renderFragment(c, partials.SignatureModal(domain.TemplateData{}, ""))
}

// CreatePost submits the whole form as one create call. On success the modal
// closes and a signature-created event tells the page; the list is not
// re-fetched. On failure the modal stays open with the message.
func (h *SignatureHandler) CreatePost(c echo.Context) error {
	ctx := c.Request().Context()
	var form SignatureForm
	if err := bindForm(c, &form); err != nil {
		return renderFragment(c, partials.SignatureModal(form, userMessage(err, "Please fill in the required fields.")))
	}

	client := h.api.WithSession(middleware.Tokens(c))
	sig, err := client.CreateSignature(ctx, form)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return forceSignOut(c, h.auth, middleware.Tokens(c))
		}
		middleware.FromContext(ctx).Warn("create signature failed", "kind", domain.KindOf(err), "error", err)
		return renderFragment(c, partials.SignatureModal(form, userMessage(err, "Failed to create signature.")))
	}

	h.publish(c, func() error {
		return pubsub.Publish(ctx, h.publisher, events.TopicSignatureCreated, "", events.NewSignatureCreated(sig))
	})
	hxTrigger(c, "signature-created")
	return renderFragment(c, partials.Notice(true, fmt.Sprintf("Signature %q created.", sig.DisplayName()), refreshButton()))
}

func refreshButton() cmp.Node {
	return g.Button(
		g.Type("button"), g.Class("btn btn-link"),
		hx.Get("/dashboard/signatures"), hx.Target("#signatures"), hx.Swap("outerHTML"),
		cmp.Text("Refresh list"),
	)
}

// PreviewGet shows the rendered signature on a page of its own.
func (h *SignatureHandler) PreviewGet(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := domain.ParseSignatureID(c.Param("id"))
	if err != nil {
		return c.Render(http.StatusBadRequest, "", layouts.Document("Preview", partials.InlineError(userMessage(err, "Invalid signature."))))
	}

	markup, err := h.actions(c).Preview(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return forceSignOut(c, h.auth, middleware.Tokens(c))
		}
		middleware.FromContext(ctx).Warn("preview failed", "signature_id", id, "error", err)
		return c.Render(StatusFor(err), "", layouts.Document("Preview", partials.InlineError("Failed to load preview.")))
	}

	// The markup comes from the API unescaped; sandbox it so it runs with an
	// opaque origin and no scripts.
	c.Response().Header().Set("Content-Security-Policy", "sandbox")
	return c.Render(http.StatusOK, "", layouts.Document("Preview", pages.Preview(view.RawHTML(ctx, markup))))
}

// ExportGet downloads the exported signature as signature_<id>.html whatever
// content type the API reports.
func (h *SignatureHandler) ExportGet(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := domain.ParseSignatureID(c.Param("id"))
	if err != nil {
		view.SetFlashError(c, userMessage(err, "Invalid signature."))
		return c.Redirect(http.StatusSeeOther, dashboardPath)
	}

	art, err := h.actions(c).Export(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return forceSignOut(c, h.auth, middleware.Tokens(c))
		}
		middleware.FromContext(ctx).Warn("export failed", "signature_id", id, "error", err)
		view.SetFlashError(c, userMessage(err, "Failed to export signature."))
		return c.Redirect(http.StatusSeeOther, dashboardPath)
	}

	h.publish(c, func() error {
		return pubsub.Publish(ctx, h.publisher, events.TopicSignatureExported, "", events.NewSignatureExported(id, art.Filename))
	})
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", art.Filename))
	return c.Blob(http.StatusOK, art.ContentType, art.Body)
}

// DeleteSignature handles hx-delete from a row button. The request counts as
// confirmed only when it carries confirm=yes, which the row adds once the
// browser prompt is accepted. The empty body swaps the row away; on failure
// the row stays.
func (h *SignatureHandler) DeleteSignature(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := domain.ParseSignatureID(c.Param("id"))
	if err == nil {
		err = h.actions(c).Delete(ctx, id, h.confirmation(c))
	}
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return forceSignOut(c, h.auth, middleware.Tokens(c))
		}
		middleware.FromContext(ctx).Warn("delete failed", "signature_id", id, "error", err)
		c.Response().Header().Set("HX-Reswap", "none")
		return renderFragment(c, partials.Notice(false, deleteMessage(err)))
	}

	h.publish(c, func() error {
		return pubsub.Publish(ctx, h.publisher, events.TopicSignatureDeleted, "", events.NewSignatureDeleted(id))
	})
	return renderFragment(c, partials.Notice(true, "Signature deleted."))
}

// DeleteGet is where the row's delete link lands without htmx: a page that
// names the signature and posts confirm=yes only when submitted.
func (h *SignatureHandler) DeleteGet(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := domain.ParseSignatureID(c.Param("id"))
	if err != nil {
		view.SetFlashError(c, userMessage(err, "Invalid signature."))
		return c.Redirect(http.StatusSeeOther, dashboardPath)
	}

	sig := domain.Signature{ID: id}
	list, err := h.api.WithSession(middleware.Tokens(c)).ListSignatures(ctx)
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return forceSignOut(c, h.auth, middleware.Tokens(c))
	case err != nil:
		middleware.FromContext(ctx).Warn("load signature for delete failed", "signature_id", id, "error", err)
	default:
		for _, s := range list {
			if s.ID == id {
				sig = s
				break
			}
		}
	}
	return renderPage(c, http.StatusOK, "Delete signature", true, pages.ConfirmDelete(sig))
}

// DeletePost is the confirmation page's submit; the form must carry
// confirm=yes.
func (h *SignatureHandler) DeletePost(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := domain.ParseSignatureID(c.Param("id"))
	if err == nil {
		err = h.actions(c).Delete(ctx, id, h.confirmation(c))
	}
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return forceSignOut(c, h.auth, middleware.Tokens(c))
		}
		view.SetFlashError(c, deleteMessage(err))
		return c.Redirect(http.StatusSeeOther, dashboardPath)
	}

	h.publish(c, func() error {
		return pubsub.Publish(ctx, h.publisher, events.TopicSignatureDeleted, "", events.NewSignatureDeleted(id))
	})
	view.SetFlashSuccess(c, "Signature deleted.")
	return c.Redirect(http.StatusSeeOther, dashboardPath)
}

// confirmation approves a deletion only when the request carried
// confirm=yes, from the confirmation page or an accepted hx-confirm prompt.
func (h *SignatureHandler) confirmation(c echo.Context) dashboard.Confirm {
	return func(domain.SignatureID) bool {
		return c.FormValue("confirm") == "yes"
	}
}

func deleteMessage(err error) string {
	if errors.Is(err, dashboard.ErrNotConfirmed) {
		return "Deletion was not confirmed."
	}
	return userMessage(err, "Failed to delete signature.")
}
