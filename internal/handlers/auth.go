package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/sigboard/internal/auth"
	"github.com/nfrund/sigboard/internal/domain"
	"github.com/nfrund/sigboard/internal/guard"
	"github.com/nfrund/sigboard/internal/middleware"
	"github.com/nfrund/sigboard/internal/session"
	"github.com/nfrund/sigboard/internal/view"
	"github.com/nfrund/sigboard/internal/view/dto"
	"github.com/nfrund/sigboard/web/src/templates/pages"
)

const (
	loginPath     = "/"
	registerPath  = "/register"
	dashboardPath = "/dashboard"
)

// AuthHandler handles the login, registration and sign-out flows.
type AuthHandler struct {
	auth *auth.Service
	// pending rejects a repeated login or registration for an email while
	// the first one is still with the API.
	pending *auth.Submissions
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{auth: svc, pending: auth.NewSubmissions()}
}

func submissionKey(action, email string) string {
	return action + ":" + strings.ToLower(strings.TrimSpace(email))
}

// LoginGet renders the login page. Visitors who are already signed in go
// straight to the dashboard.
func (h *AuthHandler) LoginGet(c echo.Context) error {
	if guard.CanEnter(session.FromEcho(c), true) == guard.Allow {
		return c.Redirect(http.StatusSeeOther, dashboardPath)
	}
	data := dto.LoginData{Email: view.PopFormValue(c, "email")}
	return renderPage(c, http.StatusOK, "Sign in", false, pages.Login(data))
}

// LoginPost stores the session token on success and lands on the dashboard.
// On failure the token store is untouched and the form is shown again with
// the email pre-filled.
func (h *AuthHandler) LoginPost(c echo.Context) error {
	ctx := c.Request().Context()
	var form LoginForm
	if err := bindForm(c, &form); err != nil {
		view.SetFlashError(c, "Please enter your email and password.")
		view.SetFormValue(c, "email", form.Email)
		return c.Redirect(http.StatusSeeOther, loginPath)
	}

	err := h.pending.Submit(submissionKey("login", form.Email), func() error {
		return h.auth.Login(ctx, session.FromEcho(c), form)
	})
	if errors.Is(err, auth.ErrInFlight) {
		view.SetFlashError(c, "A sign-in for this account is already in progress.")
		view.SetFormValue(c, "email", form.Email)
		return c.Redirect(http.StatusSeeOther, loginPath)
	}
	if err != nil {
		middleware.FromContext(ctx).Warn("Failed login attempt", "email", form.Email, "error", err)
		view.SetFlashError(c, userMessage(err, "Invalid email or password."))
		view.SetFormValue(c, "email", form.Email)
		return c.Redirect(http.StatusSeeOther, loginPath)
	}

	return c.Redirect(http.StatusSeeOther, dashboardPath)
}

// RegisterGet renders the registration page.
func (h *AuthHandler) RegisterGet(c echo.Context) error {
	data := dto.RegisterData{
		FirstName: view.PopFormValue(c, "first_name"),
		LastName:  view.PopFormValue(c, "last_name"),
		Email:     view.PopFormValue(c, "email"),
	}
	return renderPage(c, http.StatusOK, "Create account", false, pages.Register(data))
}

// RegisterPost creates the account and sends the visitor to sign in. It does
// not sign them in.
func (h *AuthHandler) RegisterPost(c echo.Context) error {
	ctx := c.Request().Context()
	var form RegisterForm
	err := bindForm(c, &form)
	if err == nil {
		err = h.pending.Submit(submissionKey("register", form.Email), func() error {
			return h.auth.Register(ctx, form)
		})
	}
	if err != nil {
		if errors.Is(err, auth.ErrInFlight) {
			err = domain.NewError(domain.KindValidation, 0, "A registration for this email is already in progress.", err)
		}
		if !errors.Is(err, domain.ErrPasswordMismatch) {
			middleware.FromContext(ctx).Info("Registration failed", "email", form.Email, "error", err)
		}
		view.SetFlashError(c, userMessage(err, "Could not create your account."))
		view.SetFormValue(c, "first_name", form.FirstName)
		view.SetFormValue(c, "last_name", form.LastName)
		view.SetFormValue(c, "email", form.Email)
		return c.Redirect(http.StatusSeeOther, registerPath)
	}

	view.SetFlashSuccess(c, "Account created. Please sign in.")
	view.SetFormValue(c, "email", form.Email)
	return c.Redirect(http.StatusSeeOther, loginPath)
}

// Logout clears the session token and returns to the login page.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.auth.SignOut(c.Request().Context(), session.FromEcho(c), false)
	view.SetFlashSuccess(c, "You have been signed out.")
	return c.Redirect(http.StatusSeeOther, loginPath)
}

// forceSignOut ends a session whose token the API rejected.
func forceSignOut(c echo.Context, svc *auth.Service, tokens session.TokenStore) error {
	svc.SignOut(c.Request().Context(), tokens, true)
	view.SetFlashError(c, domain.GenericMessage(domain.KindUnauthorized))
	return middleware.RedirectToLogin(c, loginPath)
}
