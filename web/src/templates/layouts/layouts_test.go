package layouts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cmp "maragu.dev/gomponents"

	"github.com/nfrund/sigboard/internal/view"
)

func render(t *testing.T, n cmp.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b))
	return b.String()
}

func TestCalculateTitle(t *testing.T) {
	assert.Equal(t, "sigboard", CalculateTitle(""))
	assert.Equal(t, "Dashboard - sigboard", CalculateTitle("Dashboard"))
}

func TestBase(t *testing.T) {
	t.Run("signed out", func(t *testing.T) {
		html := render(t, Base("Sign in", view.FlashData{}, false, cmp.Text("body")))
		assert.True(t, strings.HasPrefix(html, "<!doctype html>"))
		assert.Contains(t, html, "<title>Sign in - sigboard</title>")
		assert.Contains(t, html, htmxSrc)
		assert.Contains(t, html, `<div id="notice"></div>`)
		assert.NotContains(t, html, "Sign out")
		assert.NotContains(t, html, `id="flash"`)
	})

	t.Run("signed in with flashes", func(t *testing.T) {
		html := render(t, Base("Dashboard", view.FlashData{Error: []string{"Nope"}}, true, nil))
		assert.Contains(t, html, `action="/logout"`)
		assert.Contains(t, html, "Sign out")
		assert.Contains(t, html, "Nope")
	})
}

func TestDocument(t *testing.T) {
	html := render(t, Document("Preview", cmp.Raw("<table><tr><td>Ada</td></tr></table>")))
	assert.Contains(t, html, "<title>Preview - sigboard</title>")
	assert.Contains(t, html, "<body><table><tr><td>Ada</td></tr></table></body>")
	assert.NotContains(t, html, "<nav")
}
