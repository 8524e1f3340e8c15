package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/sigboard/internal/domain"
	"github.com/nfrund/sigboard/internal/handlers"
	appmiddleware "github.com/nfrund/sigboard/internal/middleware"
	"github.com/nfrund/sigboard/web/src/templates/layouts"
	"github.com/nfrund/sigboard/web/src/templates/partials"
)

// setupErrorHandling installs the central error handler. Errors the
// handlers did not turn into a response end up here; anything that is not
// an echo.HTTPError or a domain error is logged with a stack trace.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		logger := appmiddleware.FromContext(c.Request().Context())

		status := http.StatusInternalServerError
		resp := handlers.ErrorResponse{Code: "internal", Message: http.StatusText(status)}

		var he *echo.HTTPError
		var de *domain.Error
		switch {
		case errors.As(err, &he):
			status = he.Code
			resp = handlers.ErrorResponse{Code: strings.ToLower(http.StatusText(status)), Message: fmt.Sprint(he.Message)}
		case errors.As(err, &de):
			status = handlers.StatusFor(err)
			resp = handlers.NewErrorResponse(err)
			logger.Warn("Unhandled domain error", "kind", de.Kind, "error", err)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			// The client went away before the page was ready.
			logger.Debug("Request abandoned", "error", err)
			status = http.StatusServiceUnavailable
			resp = handlers.ErrorResponse{Code: "cancelled", Message: http.StatusText(status)}
		default:
			logger.Error("Internal Server Error (Unhandled)",
				"error", err,
				"stack_trace", string(debug.Stack()),
			)
		}

		var werr error
		switch {
		case c.Request().Method == http.MethodHead:
			werr = c.NoContent(status)
		case strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON):
			werr = c.JSON(status, resp)
		default:
			title := http.StatusText(status)
			werr = c.Render(status, "", layouts.Document(title, partials.InlineError(resp.Message)))
		}
		if werr != nil {
			logger.Error("Failed to write error response", "error", werr)
		}
	}
}
