package handlers_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/sigboard/internal/apiclient"
	"github.com/nfrund/sigboard/internal/auth"
	"github.com/nfrund/sigboard/internal/handlers"
	"github.com/nfrund/sigboard/internal/middleware"
	"github.com/nfrund/sigboard/internal/rendering"
	appsession "github.com/nfrund/sigboard/internal/session"
)

const testSessionSecret = "a-very-secret-key-for-testing-!!"

// fakeAPI serves canned replies keyed by "METHOD /path" and records what it
// was asked.
type fakeAPI struct {
	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []recorded
}

type recorded struct {
	Method, Path, Auth string
	Body               string
}

func jsonReply(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recorded{r.Method, r.URL.Path, r.Header.Get("Authorization"), string(body)})
	h, ok := f.routes[r.Method+" "+r.URL.Path]
	f.mu.Unlock()
	if !ok {
		jsonReply(http.StatusNotFound, map[string]string{"error": "Not found"})(w, r)
		return
	}
	h(w, r)
}

func (f *fakeAPI) calls() []recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recorded(nil), f.requests...)
}

func (f *fakeAPI) called(method, path string) bool {
	for _, r := range f.calls() {
		if r.Method == method && r.Path == path {
			return true
		}
	}
	return false
}

type testEnv struct {
	e   *echo.Echo
	api *fakeAPI
}

// setup wires every handler the way the server does, against a fake API.
func setup(t *testing.T, routes map[string]http.HandlerFunc) *testEnv {
	t.Helper()
	api := &fakeAPI{routes: routes}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := apiclient.New(srv.URL, apiclient.WithLogger(logger))
	require.NoError(t, err)
	svc := auth.NewService(client, nil, logger)

	e := echo.New()
	e.Renderer = rendering.NewUniversalRenderer()
	e.Validator = handlers.NewValidator()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(testSessionSecret))))

	authH := handlers.NewAuthHandler(svc)
	dashH := handlers.NewDashboardHandler(client, svc)
	sigH := handlers.NewSignatureHandler(client, svc, nil)
	linkH := handlers.NewLinkHandler(client, svc, nil)
	guard := middleware.RequireSession("/")

	e.GET("/", authH.LoginGet)
	e.POST("/login", authH.LoginPost)
	e.GET("/register", authH.RegisterGet)
	e.POST("/register", authH.RegisterPost)
	e.POST("/logout", authH.Logout)
	e.GET("/dashboard", dashH.DashboardGet, guard)
	e.GET("/dashboard/counts", dashH.CountsGet, guard)
	e.GET("/dashboard/signatures", dashH.SignaturesGet, guard)
	e.GET("/signatures/new", sigH.NewGet, guard)
	e.POST("/signature", sigH.CreatePost, guard)
	e.GET("/signature/:id/preview", sigH.PreviewGet, guard)
	e.GET("/signature/:id/export", sigH.ExportGet, guard)
	e.DELETE("/signature/:id", sigH.DeleteSignature, guard)
	e.GET("/signature/:id/delete", sigH.DeleteGet, guard)
	e.POST("/signature/:id/delete", sigH.DeletePost, guard)
	e.GET("/signature/:id/links/new", linkH.NewGet, guard)
	e.POST("/links", linkH.CreatePost, guard)

	// Test-only shortcut to a signed-in session.
	e.GET("/__session/:token", func(c echo.Context) error {
		if err := appsession.FromEcho(c).Set(c.Param("token")); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	})

	return &testEnv{e: e, api: api}
}

// session returns cookies for a session holding token.
func (env *testEnv) session(t *testing.T, token string) []*http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/__session/"+token, nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	return rec.Result().Cookies()
}

type reqOpt func(*http.Request)

func withCookies(cookies []*http.Cookie) reqOpt {
	return func(r *http.Request) {
		for _, c := range cookies {
			r.AddCookie(c)
		}
	}
}

func asHTMX(r *http.Request) { r.Header.Set("HX-Request", "true") }

func (env *testEnv) do(method, target string, form url.Values, opts ...reqOpt) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	for _, o := range opts {
		o(req)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

// decodeSession reads a gorilla session back out of a response's cookies.
func decodeSession(t *testing.T, rec *httptest.ResponseRecorder, name string) *sessions.Session {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	sess, err := sessions.NewCookieStore([]byte(testSessionSecret)).Get(req, name)
	require.NoError(t, err)
	return sess
}

// flashes returns the flash messages queued under key by the response.
func flashes(t *testing.T, rec *httptest.ResponseRecorder, key string) []string {
	t.Helper()
	var out []string
	for _, f := range decodeSession(t, rec, "flash-session").Flashes(key) {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == appsession.CookieName {
			return c
		}
	}
	return nil
}
