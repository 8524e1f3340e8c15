package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dashboardRoutes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"GET /analytics/count":  jsonReply(http.StatusOK, map[string]int{"count": 41}),
		"GET /signatures/count": jsonReply(http.StatusOK, map[string]int{"count": 2}),
		"GET /links/count":      jsonReply(http.StatusOK, map[string]int{"count": 5}),
		"GET /signatures": jsonReply(http.StatusOK, map[string]any{"signatures": []map[string]any{
			{"id": 1, "template_data": map[string]any{"name": "Ada Lovelace", "company": "Engines Ltd"}},
			{"id": "abc", "template_data": map[string]any{"name": ""}},
		}}),
	}
}

func TestDashboardGet(t *testing.T) {
	t.Run("renders counts and the list", func(t *testing.T) {
		env := setup(t, dashboardRoutes())

		rec := env.do(http.MethodGet, "/dashboard", nil, withCookies(env.session(t, "T1")))

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, ">41<")
		assert.Contains(t, body, "Ada Lovelace")
		assert.Contains(t, body, "Unnamed Signature")
		assert.Contains(t, body, `hx-delete="/signature/abc"`)
		assert.NotContains(t, body, "Failed to load dashboard data.")

		for _, c := range env.api.calls() {
			assert.Equal(t, "Bearer T1", c.Auth, c.Path)
		}
		assert.Len(t, env.api.calls(), 4)
	})

	t.Run("one failed count leaves the rest", func(t *testing.T) {
		routes := dashboardRoutes()
		routes["GET /links/count"] = jsonReply(http.StatusInternalServerError, map[string]string{})
		env := setup(t, routes)

		rec := env.do(http.MethodGet, "/dashboard", nil, withCookies(env.session(t, "T1")))

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Equal(t, 1, strings.Count(body, "Failed to load dashboard data."))
		assert.Contains(t, body, ">41<")
		assert.Contains(t, body, "Ada Lovelace")
	})

	t.Run("failed list shows its own message", func(t *testing.T) {
		routes := dashboardRoutes()
		routes["GET /signatures"] = jsonReply(http.StatusBadGateway, map[string]string{})
		env := setup(t, routes)

		rec := env.do(http.MethodGet, "/dashboard", nil, withCookies(env.session(t, "T1")))

		assert.Contains(t, rec.Body.String(), "Failed to load signatures.")
		assert.NotContains(t, rec.Body.String(), "Failed to load dashboard data.")
	})

	t.Run("empty list", func(t *testing.T) {
		routes := dashboardRoutes()
		routes["GET /signatures"] = jsonReply(http.StatusOK, map[string]any{"signatures": []any{}})
		env := setup(t, routes)

		rec := env.do(http.MethodGet, "/dashboard", nil, withCookies(env.session(t, "T1")))

		assert.Contains(t, rec.Body.String(), "No signatures yet.")
	})

	t.Run("rejected token signs out", func(t *testing.T) {
		routes := dashboardRoutes()
		routes["GET /analytics/count"] = jsonReply(http.StatusUnauthorized, map[string]string{"error": "expired"})
		env := setup(t, routes)

		rec := env.do(http.MethodGet, "/dashboard", nil, withCookies(env.session(t, "T1")))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
		assert.Equal(t, []string{"Your session has expired. Please sign in again."}, flashes(t, rec, "error"))
	})

	t.Run("no session means no requests", func(t *testing.T) {
		env := setup(t, dashboardRoutes())

		rec := env.do(http.MethodGet, "/dashboard", nil)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
		assert.Empty(t, env.api.calls())
	})
}

func TestDashboardFragments(t *testing.T) {
	env := setup(t, dashboardRoutes())
	cookies := env.session(t, "T1")

	rec := env.do(http.MethodGet, "/dashboard/counts", nil, withCookies(cookies), asHTMX)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ">41<")
	assert.NotContains(t, rec.Body.String(), "<html")
	assert.False(t, env.api.called(http.MethodGet, "/signatures"))

	rec = env.do(http.MethodGet, "/dashboard/signatures", nil, withCookies(cookies), asHTMX)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="signatures"`)
	assert.Contains(t, rec.Body.String(), "Ada Lovelace")
}
