package rendering

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

func TestRenderComponent(t *testing.T) {
	r := NewUniversalRenderer()

	out, err := r.RenderComponent(context.Background(), g.P(cmp.Text("a < b")))
	require.NoError(t, err)
	assert.Equal(t, "<p>a &lt; b</p>", string(out))

	out, err = r.RenderComponent(context.Background(), templ.Raw("<b>raw</b>"))
	require.NoError(t, err)
	assert.Equal(t, "<b>raw</b>", string(out))

	_, err = r.RenderComponent(context.Background(), 42)
	assert.ErrorContains(t, err, "unsupported component type")
}

func TestRenderPage(t *testing.T) {
	e := echo.New()
	r := NewUniversalRenderer()
	e.Renderer = r

	e.GET("/page", func(c echo.Context) error {
		return r.RenderPage(c, http.StatusCreated, g.H1(cmp.Text("Dashboard")))
	})
	e.GET("/render", func(c echo.Context) error {
		return c.Render(http.StatusOK, "", g.Span(cmp.Text("fragment")))
	})
	e.GET("/broken", func(c echo.Context) error {
		return r.RenderPage(c, http.StatusOK, "not a component")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/page", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	assert.Equal(t, "<h1>Dashboard</h1>", rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/render", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<span>fragment</span>", rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/broken", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
