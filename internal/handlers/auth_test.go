package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loginRoutes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"POST /login":    jsonReply(http.StatusOK, map[string]string{"token": "T1"}),
		"POST /register": jsonReply(http.StatusCreated, map[string]string{}),
	}
}

func TestLoginPost(t *testing.T) {
	t.Run("stores the token and lands on the dashboard", func(t *testing.T) {
		env := setup(t, loginRoutes())

		rec := env.do(http.MethodPost, "/login", url.Values{"email": {"ada@example.com"}, "password": {"secret"}})

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
		assert.Equal(t, "T1", decodeSession(t, rec, "sigboard-session").Values["token"])
		require.Len(t, env.api.calls(), 1)
		assert.Empty(t, env.api.calls()[0].Auth, "login is sent without a bearer token")
	})

	t.Run("rejected credentials keep the email and store nothing", func(t *testing.T) {
		env := setup(t, map[string]http.HandlerFunc{
			"POST /login": jsonReply(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"}),
		})

		rec := env.do(http.MethodPost, "/login", url.Values{"email": {"ada@example.com"}, "password": {"nope"}})

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
		assert.Equal(t, []string{"Invalid credentials"}, flashes(t, rec, "error"))
		assert.Equal(t, []string{"ada@example.com"}, flashes(t, rec, "form_email"))
		assert.Nil(t, sessionCookie(rec), "no session cookie is written")
	})

	t.Run("blank fields are not sent", func(t *testing.T) {
		env := setup(t, loginRoutes())

		rec := env.do(http.MethodPost, "/login", url.Values{"email": {"  "}, "password": {""}})

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, []string{"Please enter your email and password."}, flashes(t, rec, "error"))
		assert.Empty(t, env.api.calls())
	})
}

func TestLoginPostRejectsDoubleSubmit(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	env := setup(t, map[string]http.HandlerFunc{
		"POST /login": func(w http.ResponseWriter, r *http.Request) {
			once.Do(func() { close(arrived) })
			<-release
			jsonReply(http.StatusOK, map[string]string{"token": "T1"})(w, r)
		},
	})
	creds := url.Values{"email": {"ada@example.com"}, "password": {"secret"}}

	first := make(chan *httptest.ResponseRecorder, 1)
	go func() { first <- env.do(http.MethodPost, "/login", creds) }()
	<-arrived

	rec := env.do(http.MethodPost, "/login", url.Values{"email": {"ADA@example.com"}, "password": {"secret"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, []string{"A sign-in for this account is already in progress."}, flashes(t, rec, "error"))

	close(release)
	rec = <-first
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	assert.Len(t, env.api.calls(), 1, "the repeated submission never reached the API")

	rec = env.do(http.MethodPost, "/login", creds)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"), "a settled login can be submitted again")
}

func TestLoginGet(t *testing.T) {
	env := setup(t, nil)

	rec := env.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/login"`)

	rec = env.do(http.MethodGet, "/", nil, withCookies(env.session(t, "T1")))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestRegisterPost(t *testing.T) {
	form := func(confirm string) url.Values {
		return url.Values{
			"first_name":       {"Ada"},
			"last_name":        {"Lovelace"},
			"email":            {"ada@example.com"},
			"password":         {"pw123456"},
			"password_confirm": {confirm},
		}
	}

	t.Run("success sends the visitor to sign in", func(t *testing.T) {
		env := setup(t, loginRoutes())

		rec := env.do(http.MethodPost, "/register", form("pw123456"))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
		assert.Equal(t, []string{"Account created. Please sign in."}, flashes(t, rec, "success"))
		assert.Nil(t, sessionCookie(rec), "registration does not sign in")

		calls := env.api.calls()
		require.Len(t, calls, 1)
		assert.JSONEq(t, `{"email":"ada@example.com","password":"pw123456"}`, calls[0].Body)
	})

	t.Run("password mismatch fails before any request", func(t *testing.T) {
		env := setup(t, loginRoutes())

		rec := env.do(http.MethodPost, "/register", form("different"))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/register", rec.Header().Get("Location"))
		assert.Equal(t, []string{"Passwords do not match."}, flashes(t, rec, "error"))
		assert.Equal(t, []string{"Ada"}, flashes(t, rec, "form_first_name"))
		assert.Empty(t, env.api.calls())
	})

	t.Run("server message is shown", func(t *testing.T) {
		env := setup(t, map[string]http.HandlerFunc{
			"POST /register": jsonReply(http.StatusConflict, map[string]string{"message": "Email already registered"}),
		})

		rec := env.do(http.MethodPost, "/register", form("pw123456"))

		assert.Equal(t, []string{"Email already registered"}, flashes(t, rec, "error"))
	})
}

func TestLogout(t *testing.T) {
	env := setup(t, nil)

	rec := env.do(http.MethodPost, "/logout", nil, withCookies(env.session(t, "T1")))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, []string{"You have been signed out."}, flashes(t, rec, "success"))

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Less(t, cookie.MaxAge, 0, "session cookie is expired")
	assert.Empty(t, env.api.calls())
}
