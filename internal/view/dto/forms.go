// Package dto holds the view models passed from handlers to pages.
package dto

// LoginData pre-fills the login form after a failed attempt.
type LoginData struct {
	Email string
}

// RegisterData pre-fills the registration form after a failed attempt.
// Passwords are never echoed back.
type RegisterData struct {
	FirstName string
	LastName  string
	Email     string
}
