package domain

// Credentials are submitted by the login form.
type Credentials struct {
	Email    string `json:"email" form:"email" validate:"required,nonblank"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Registration is submitted by the sign-up form. Names are collected for the
// form but the remote API only receives email and password.
type Registration struct {
	FirstName       string `json:"-" form:"first_name" validate:"required,nonblank"`
	LastName        string `json:"-" form:"last_name" validate:"required,nonblank"`
	Email           string `json:"email" form:"email" validate:"required,nonblank"`
	Password        string `json:"password" form:"password" validate:"required"`
	ConfirmPassword string `json:"-" form:"password_confirm" validate:"required"`
}

// PasswordsMatch reports whether both password entries are identical.
func (r Registration) PasswordsMatch() bool {
	return r.Password == r.ConfirmPassword
}

// Session is the login response.
type Session struct {
	Token string `json:"token"`
}
