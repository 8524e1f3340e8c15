package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/nfrund/sigboard/internal/domain"
)

// CustomValidator implements echo.Validator on top of the domain validator, so
// c.Validate returns a *domain.Error naming the missing fields.
type CustomValidator struct{}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i any) error {
	return domain.Validate(i)
}

// bindForm binds the submitted form into dst and validates it. Binding
// failures are reported as validation errors.
func bindForm(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return domain.NewError(domain.KindValidation, 0, "The form could not be read.", err)
	}
	return c.Validate(dst)
}

// LoginForm is what the login page posts.
type LoginForm = domain.Credentials

// RegisterForm is what the registration page posts.
type RegisterForm = domain.Registration

// SignatureForm is what the signature modal posts. The social links arrive
// as social_links.linkedin and social_links.twitter.
type SignatureForm = domain.TemplateData

// LinkForm is what the link modal posts.
type LinkForm = domain.CreateLinkRequest
