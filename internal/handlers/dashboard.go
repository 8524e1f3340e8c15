package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/sigboard/internal/apiclient"
	"github.com/nfrund/sigboard/internal/auth"
	"github.com/nfrund/sigboard/internal/dashboard"
	"github.com/nfrund/sigboard/internal/middleware"
	"github.com/nfrund/sigboard/web/src/templates/pages"
	"github.com/nfrund/sigboard/web/src/templates/partials"
)

// DashboardHandler serves the dashboard page and its fragments.
type DashboardHandler struct {
	api  *apiclient.Client
	auth *auth.Service
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(api *apiclient.Client, svc *auth.Service) *DashboardHandler {
	return &DashboardHandler{api: api, auth: svc}
}

func (h *DashboardHandler) aggregator(c echo.Context) *dashboard.Aggregator {
	client := h.api.WithSession(middleware.Tokens(c))
	return dashboard.NewAggregator(client, middleware.FromContext(c.Request().Context()))
}

// DashboardGet loads the counts and the list concurrently and renders
// whatever succeeded. A rejected token ends the session.
func (h *DashboardHandler) DashboardGet(c echo.Context) error {
	v, err := h.aggregator(c).Load(c.Request().Context())
	if err != nil {
		// The request ended before the reads settled; nobody is waiting.
		return err
	}
	if v.Unauthorized() {
		return forceSignOut(c, h.auth, middleware.Tokens(c))
	}
	return renderPage(c, http.StatusOK, "Dashboard", true, pages.Dashboard(v))
}

// CountsGet re-renders only the count cards.
func (h *DashboardHandler) CountsGet(c echo.Context) error {
	counts, err := h.aggregator(c).LoadCounts(c.Request().Context())
	if err != nil {
		return err
	}
	if counts.Unauthorized() {
		return forceSignOut(c, h.auth, middleware.Tokens(c))
	}
	return renderFragment(c, partials.Counts(counts))
}

// SignaturesGet re-renders only the signature list.
func (h *DashboardHandler) SignaturesGet(c echo.Context) error {
	v, err := h.aggregator(c).LoadSignatures(c.Request().Context())
	if err != nil {
		return err
	}
	if v.Unauthorized() {
		return forceSignOut(c, h.auth, middleware.Tokens(c))
	}
	return renderFragment(c, partials.SignatureList(v.Signatures(), v.ListErr))
}
