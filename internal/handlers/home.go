package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HomeHandler serves the unauthenticated utility endpoints.
type HomeHandler struct {
	version string
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(version string) *HomeHandler {
	return &HomeHandler{version: version}
}

// Health reports liveness. It does not call the remote API.
func (h *HomeHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok", "version": h.version})
}
