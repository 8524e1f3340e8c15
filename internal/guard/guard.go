// Package guard decides whether a view may render for the current session.
package guard

import "github.com/nfrund/sigboard/internal/session"

// Decision is the outcome of CanEnter.
type Decision int

const (
	// Allow lets the requested view render.
	Allow Decision = iota
	// RedirectToLogin sends the visitor to the login view instead.
	RedirectToLogin
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "redirect-to-login"
}

// CanEnter is a pure function of the token store's state. Public views are
// always allowed; protected views need a non-empty token.
func CanEnter(tokens session.TokenReader, requiresAuth bool) Decision {
	if !requiresAuth {
		return Allow
	}
	if tokens == nil {
		return RedirectToLogin
	}
	if token, ok := tokens.Get(); ok && token != "" {
		return Allow
	}
	return RedirectToLogin
}
