//go:build !integration

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/guttosm/cargo-service/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			RateLimit:      100,
			RateWindow:     time.Minute,
			RequestTimeout: 5 * time.Second,
		},
		Log:        config.LogConfig{Level: "error"},
		Planner:    config.PlannerConfig{LockTimeout: time.Second, AccessPriorityThreshold: 80},
		Simulation: config.SimulationConfig{StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func TestInitializeApp(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Config)
	}{
		{name: "in-memory stores", modify: func(*config.Config) {}},
		{name: "item cache enabled", modify: func(c *config.Config) {
			c.Cache = config.CacheConfig{ItemSize: 100, ItemTTL: time.Minute}
		}},
		{name: "stdout tracing", modify: func(c *config.Config) {
			c.Tracing = config.TracingConfig{Enabled: true, Exporter: "stdout", SampleRatio: 1, ServiceName: "cargo-test"}
		}},
		{name: "unknown tracing exporter falls back", modify: func(c *config.Config) {
			c.Tracing = config.TracingConfig{Enabled: true, Exporter: "zipkin"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.modify(&cfg)

			application := InitializeApp(cfg)
			require.NotNil(t, application)
			defer application.Close(context.Background())

			assert.NotNil(t, application.Router)
			assert.False(t, application.Database.Persistent())

			w := httptest.NewRecorder()
			application.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/simulate/date", nil))
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), "2025-04-01")
		})
	}
}

func TestApp_ServesCargoRequests(t *testing.T) {
	application := InitializeApp(testConfig())
	defer application.Close(context.Background())

	w := httptest.NewRecorder()
	application.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	application.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/containers", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
