package session

import (
	"fmt"
	"log/slog"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	// CookieName is the gorilla session holding the API token.
	CookieName = "sigboard-session"
	tokenKey   = "token"
)

// CookieStore is a TokenStore backed by the signed session cookie of a single
// echo request. It must be created inside the session middleware.
type CookieStore struct {
	c    echo.Context
	name string
}

// FromEcho binds a CookieStore to the current request.
func FromEcho(c echo.Context) *CookieStore {
	return &CookieStore{c: c, name: CookieName}
}

func (s *CookieStore) Get() (string, bool) {
	sess, err := session.Get(s.name, s.c)
	if err != nil {
		// A tampered or undecodable cookie is treated as signed out.
		slog.Debug("session cookie unreadable", "error", err)
		return "", false
	}
	token, _ := sess.Values[tokenKey].(string)
	return token, token != ""
}

func (s *CookieStore) Set(token string) error {
	sess, err := session.Get(s.name, s.c)
	if err != nil && sess == nil {
		return fmt.Errorf("session: load cookie: %w", err)
	}
	sess.Values[tokenKey] = token
	if err := sess.Save(s.c.Request(), s.c.Response()); err != nil {
		return fmt.Errorf("session: save cookie: %w", err)
	}
	return nil
}

func (s *CookieStore) Clear() error {
	sess, err := session.Get(s.name, s.c)
	if err != nil && sess == nil {
		return fmt.Errorf("session: load cookie: %w", err)
	}
	delete(sess.Values, tokenKey)
	sess.Options.MaxAge = -1
	if err := sess.Save(s.c.Request(), s.c.Response()); err != nil {
		return fmt.Errorf("session: expire cookie: %w", err)
	}
	return nil
}
