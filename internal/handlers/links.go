package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/sigboard/internal/apiclient"
	"github.com/nfrund/sigboard/internal/auth"
	"github.com/nfrund/sigboard/internal/domain"
	"github.com/nfrund/sigboard/internal/events"
	"github.com/nfrund/sigboard/internal/middleware"
	"github.com/nfrund/sigboard/internal/pubsub"
	"github.com/nfrund/sigboard/web/src/templates/partials"
)

// LinkHandler serves the tracked-link modal.
type LinkHandler struct {
	api       *apiclient.Client
	auth      *auth.Service
	publisher pubsub.Publisher
}

// NewLinkHandler creates a new LinkHandler.
func NewLinkHandler(api *apiclient.Client, svc *auth.Service, publisher pubsub.Publisher) *LinkHandler {
	if publisher == nil {
		publisher = pubsub.Discard
	}
	return &LinkHandler{api: api, auth: svc, publisher: publisher}
}

// NewGet opens the link modal for the signature in the path.
func (h *LinkHandler) NewGet(c echo.Context) error {
	id, err := domain.ParseSignatureID(c.Param("id"))
	if err != nil {
		return c.Render(http.StatusBadRequest, "", partials.InlineError(userMessage(err, "Invalid signature.")))
	}
	return renderFragment(c, partials.LinkModal(id, "", ""))
}

// CreatePost attaches a URL to a signature. Only presence is checked; the
// URL is not format-validated.
func (h *LinkHandler) CreatePost(c echo.Context) error {
	ctx := c.Request().Context()
	var form LinkForm
	if err := bindForm(c, &form); err != nil {
		return renderFragment(c, partials.LinkModal(form.SignatureID, form.URL, userMessage(err, "Please enter a URL.")))
	}

	link, err := h.api.WithSession(middleware.Tokens(c)).CreateLink(ctx, form)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return forceSignOut(c, h.auth, middleware.Tokens(c))
		}
		middleware.FromContext(ctx).Warn("create link failed", "signature_id", form.SignatureID, "error", err)
		return renderFragment(c, partials.LinkModal(form.SignatureID, form.URL, userMessage(err, "Failed to create link.")))
	}

	if err := pubsub.Publish(ctx, h.publisher, events.TopicLinkCreated, "", events.NewLinkCreated(link)); err != nil {
		middleware.FromContext(ctx).Warn("failed to publish event", "error", err)
	}
	hxTrigger(c, "link-created")
	return renderFragment(c, partials.Notice(true, "Link added."))
}
