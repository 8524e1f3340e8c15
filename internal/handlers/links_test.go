package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkCreate(t *testing.T) {
	t.Run("success signals the page", func(t *testing.T) {
		env := setup(t, map[string]http.HandlerFunc{
			"POST /links": jsonReply(http.StatusCreated, map[string]any{"id": "l1", "signature_id": 7, "url": "not a url"}),
		})

		rec := env.do(http.MethodPost, "/links", url.Values{"signature_id": {"7"}, "url": {"not a url"}},
			withCookies(env.session(t, "T1")), asHTMX)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "link-created", rec.Header().Get("HX-Trigger"))
		assert.Contains(t, rec.Body.String(), "Link added.")

		calls := env.api.calls()
		require.Len(t, calls, 1)
		assert.JSONEq(t, `{"signature_id":7,"url":"not a url"}`, calls[0].Body, "the URL format is not checked")
	})

	t.Run("missing url keeps the modal open", func(t *testing.T) {
		env := setup(t, nil)

		rec := env.do(http.MethodPost, "/links", url.Values{"signature_id": {"7"}, "url": {" "}},
			withCookies(env.session(t, "T1")), asHTMX)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<form")
		assert.Empty(t, env.api.calls())
	})

	t.Run("modal opens for a signature", func(t *testing.T) {
		env := setup(t, nil)

		rec := env.do(http.MethodGet, "/signature/7/links/new", nil, withCookies(env.session(t, "T1")))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `name="signature_id"`)
		assert.Contains(t, rec.Body.String(), `value="7"`)
	})
}
