package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/lfsantos/shortener/internal/handlers"
	"github.com/lfsantos/shortener/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testOutput struct {
	Body string `json:"body"`
}

func setupTestAPI(t *testing.T) (*chi.Mux, huma.API, chan handlers.RequestMeta) {
	t.Helper()

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))
	api.UseMiddleware(middleware.RequestMeta(api))

	metaChan := make(chan handlers.RequestMeta, 1)

	huma.Get(api, "/test", func(ctx context.Context, _ *struct{}) (*testOutput, error) {
		metaChan <- handlers.RequestMetaFromContext(ctx)

		return &testOutput{Body: "ok"}, nil
	})

	return router, api, metaChan
}

func doRequest(t *testing.T, router *chi.Mux, headers map[string]string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequestMeta(t *testing.T) {
	t.Run("extracts user-agent and referer", func(t *testing.T) {
		router, _, metaChan := setupTestAPI(t)

		doRequest(t, router, map[string]string{
			"User-Agent": "TestAgent/1.0",
			"Referer":    "https://example.com",
		})

		meta := <-metaChan
		assert.Equal(t, "TestAgent/1.0", meta.UserAgent)
		assert.Equal(t, "https://example.com", meta.Referer)
	})

	t.Run("prefers the first X-Forwarded-For entry", func(t *testing.T) {
		router, _, metaChan := setupTestAPI(t)

		doRequest(t, router, map[string]string{
			"X-Forwarded-For": "203.0.113.7, 10.0.0.1, 10.0.0.2",
		})

		meta := <-metaChan
		assert.Equal(t, "203.0.113.7", meta.ClientIP)
	})

	t.Run("accepts a single X-Forwarded-For entry", func(t *testing.T) {
		router, _, metaChan := setupTestAPI(t)

		doRequest(t, router, map[string]string{
			"X-Forwarded-For": "203.0.113.7",
		})

		meta := <-metaChan
		assert.Equal(t, "203.0.113.7", meta.ClientIP)
	})

	t.Run("falls back to X-Real-IP", func(t *testing.T) {
		router, _, metaChan := setupTestAPI(t)

		doRequest(t, router, map[string]string{
			"X-Real-IP": "198.51.100.4",
		})

		meta := <-metaChan
		assert.Equal(t, "198.51.100.4", meta.ClientIP)
	})

	t.Run("falls back to the remote address", func(t *testing.T) {
		router, _, metaChan := setupTestAPI(t)

		doRequest(t, router, nil)

		// httptest.NewRequest always sets RemoteAddr to 192.0.2.1:1234
		meta := <-metaChan
		assert.Equal(t, "192.0.2.1", meta.ClientIP)
		assert.Empty(t, meta.UserAgent)
		assert.Empty(t, meta.Referer)
	})
}
