package partials

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cmp "maragu.dev/gomponents"

	"github.com/nfrund/sigboard/internal/dashboard"
	"github.com/nfrund/sigboard/internal/domain"
	"github.com/nfrund/sigboard/internal/view"
)

func render(t *testing.T, n cmp.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b))
	return b.String()
}

func TestCounts(t *testing.T) {
	html := render(t, Counts(dashboard.Counts{
		Analytics:  dashboard.Count{Value: 3},
		Signatures: dashboard.Count{Err: errors.New("down")},
		Links:      dashboard.Count{Value: 0},
	}))

	assert.Contains(t, html, "Analytics Entries")
	assert.Contains(t, html, `<p class="card-value">3</p>`)
	assert.Contains(t, html, `<p class="card-value">-</p>`)
	assert.Contains(t, html, `<p class="card-value">0</p>`)
	assert.Equal(t, 1, strings.Count(html, dashboard.LoadFailedMessage))
}

func TestSignatureList(t *testing.T) {
	assert.Contains(t, render(t, SignatureList(nil, errors.New("x"))), "Failed to load signatures.")
	assert.Contains(t, render(t, SignatureList(nil, nil)), "No signatures yet.")

	html := render(t, SignatureList([]domain.Signature{{
		ID:           "42",
		TemplateData: domain.TemplateData{Name: "Ada", Company: "Engines"},
		CreatedAt:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}}, nil))

	assert.Contains(t, html, `id="signature-42"`)
	assert.Contains(t, html, `href="/signature/42/preview" target="_blank"`)
	assert.Contains(t, html, `href="/signature/42/export"`)
	assert.Contains(t, html, `hx-delete="/signature/42"`)
	assert.Contains(t, html, `hx-confirm=`)
	assert.Contains(t, html, `href="/signature/42/delete"`)
	assert.Contains(t, html, `hx-vals="{&#34;confirm&#34;:&#34;yes&#34;}"`)
	assert.NotContains(t, html, `name="confirm"`, "the script-free path must stop at the confirmation page")
	assert.Contains(t, html, `hx-get="/signature/42/links/new"`)
}

func TestModals(t *testing.T) {
	html := render(t, SignatureModal(domain.TemplateData{Name: "Ada"}, "Phone is required"))
	assert.Contains(t, html, `hx-post="/signature"`)
	assert.Contains(t, html, `value="Ada"`)
	assert.Contains(t, html, "Phone is required")
	assert.Contains(t, html, `name="social_links.linkedin"`)

	html = render(t, LinkModal("7", "https://example.com", ""))
	assert.Contains(t, html, `hx-post="/links"`)
	assert.Contains(t, html, `value="7"`)
	assert.NotContains(t, html, "alert-error")
}

func TestFlashAndNotice(t *testing.T) {
	assert.Nil(t, Flash(view.FlashData{}))

	html := render(t, Flash(view.FlashData{Success: []string{"Saved"}, Error: []string{"Oops"}}))
	assert.Contains(t, html, "alert-success")
	assert.Contains(t, html, "Oops")

	html = render(t, Notice(false, "Failed"))
	assert.Contains(t, html, `id="notice"`)
	assert.Contains(t, html, `hx-swap-oob="true"`)
	assert.Contains(t, html, "alert-error")
}
