package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/sigboard/internal/guard"
	"github.com/nfrund/sigboard/internal/session"
)

// TokensContextKey is where RequireSession leaves the request's TokenStore.
const TokensContextKey = "tokens"

// RequireSession protects routes that need a signed-in user. Visitors
// without a session token are sent to loginPath; htmx requests get an
// HX-Redirect so the whole page navigates instead of swapping a fragment.
func RequireSession(loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokens := session.FromEcho(c)
			if guard.CanEnter(tokens, true) == guard.RedirectToLogin {
				FromContext(c.Request().Context()).Debug("session guard redirect", "path", c.Request().URL.Path)
				return RedirectToLogin(c, loginPath)
			}

			c.Set(TokensContextKey, session.TokenStore(tokens))
			return next(c)
		}
	}
}

// Tokens returns the TokenStore for the current request, creating one from
// the session cookie when RequireSession did not run.
func Tokens(c echo.Context) session.TokenStore {
	if ts, ok := c.Get(TokensContextKey).(session.TokenStore); ok {
		return ts
	}
	return session.FromEcho(c)
}

// RedirectToLogin sends the visitor to loginPath, full-page for htmx requests.
func RedirectToLogin(c echo.Context, loginPath string) error {
	if c.Request().Header.Get("HX-Request") == "true" {
		c.Response().Header().Set("HX-Redirect", loginPath)
		return c.NoContent(http.StatusUnauthorized)
	}
	return c.Redirect(http.StatusSeeOther, loginPath)
}
