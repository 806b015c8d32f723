//go:build !integration

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/guttosm/cargo-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRouter(t *testing.T) {
	tests := []struct {
		name string
		cfg  RouterConfig
	}{
		{name: "default config", cfg: DefaultRouterConfig()},
		{name: "everything disabled", cfg: RouterConfig{}},
		{
			name: "per-user rate limiting",
			cfg:  RouterConfig{RateLimit: 100, RateWindow: time.Minute, UserRateLimit: 10},
		},
		{
			name: "swagger behind basic auth",
			cfg:  RouterConfig{SwaggerUser: "ops", SwaggerPass: "secret"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := NewRouter(nil, NewHealthHandler(), tt.cfg)
			require.NotNil(t, router)
			router.Close()
			router.Close()
		})
	}
}

func TestRouter_Endpoints(t *testing.T) {
	api := newMemoryAPI(t)

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"healthz endpoint", http.MethodGet, "/healthz", http.StatusOK},
		{"readyz endpoint", http.MethodGet, "/readyz", http.StatusOK},
		{"metrics endpoint", http.MethodGet, "/metrics", http.StatusOK},
		{"swagger endpoint", http.MethodGet, "/swagger/index.html", http.StatusOK},
		{"placement without body", http.MethodPost, "/api/placement", http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/api/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, tt.method, tt.path, nil)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRouter_ResponseHeaders(t *testing.T) {
	api := newMemoryAPI(t)

	w := api.do(t, http.MethodGet, "/api/items", nil, "X-Request-ID", "req-123")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}

func TestRouter_SwaggerBasicAuth(t *testing.T) {
	router := NewRouter(nil, nil, RouterConfig{SwaggerUser: "ops", SwaggerPass: "secret"})
	t.Cleanup(router.Close)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.SetBasicAuth("ops", "secret")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := DefaultRouterConfig()
	cfg.RateLimit = 2
	cfg.RateWindow = time.Minute
	api := newTestAPI(t, repository.NewMemoryRepositories(), cfg)

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/items", nil).Code)
	}

	w := api.do(t, http.MethodGet, "/api/items", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRouter_UserRateLimit(t *testing.T) {
	cfg := DefaultRouterConfig()
	cfg.RateLimit = 0
	cfg.UserRateLimit = 1
	api := newTestAPI(t, repository.NewMemoryRepositories(), cfg)

	require.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/items", nil, "X-User-ID", "astro-1").Code)
	assert.Equal(t, http.StatusTooManyRequests, api.do(t, http.MethodGet, "/api/items", nil, "X-User-ID", "astro-1").Code)
	assert.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/items", nil, "X-User-ID", "astro-2").Code)
}
