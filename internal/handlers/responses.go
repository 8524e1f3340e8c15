package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	cmp "maragu.dev/gomponents"

	"github.com/nfrund/sigboard/internal/domain"
	"github.com/nfrund/sigboard/internal/view"
	"github.com/nfrund/sigboard/web/src/templates/layouts"
)

// ErrorResponse is the JSON body written for errors when the client asked for JSON.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse describes err for an API-style client.
func NewErrorResponse(err error) ErrorResponse {
	var apiErr *domain.Error
	if errors.As(err, &apiErr) {
		return ErrorResponse{Code: apiErr.Kind.String(), Message: apiErr.UserMessage()}
	}
	return ErrorResponse{Code: "internal", Message: domain.GenericMessage(domain.KindServerError)}
}

// StatusFor maps an error to the status sigboard answers with.
func StatusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindValidation:
		return http.StatusUnprocessableEntity
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindNetworkError, domain.KindServerError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// userMessage is the text shown next to the control whose action failed:
// the server's message when it sent one, else fallback.
func userMessage(err error, fallback string) string {
	return domain.MessageOr(err, fallback)
}

// renderPage wraps content in the base layout with the pending flashes.
func renderPage(c echo.Context, status int, title string, signedIn bool, content cmp.Node) error {
	flashes := view.GetFlashData(c)
	return c.Render(status, "", layouts.Base(title, flashes, signedIn, content))
}

// renderFragment writes an htmx fragment.
func renderFragment(c echo.Context, nodes ...cmp.Node) error {
	return c.Render(http.StatusOK, "", cmp.Group(nodes))
}

// hxTrigger fires a client-side event once the response is swapped in.
func hxTrigger(c echo.Context, event string) {
	c.Response().Header().Set("HX-Trigger", event)
}
