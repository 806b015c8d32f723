//go:build !integration

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-service/internal/circuitbreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openBreaker(name string) *circuitbreaker.CircuitBreaker {
	cfg := circuitbreaker.DefaultConfig(name)
	cfg.FailureThreshold = 1
	cb := circuitbreaker.New(cfg)
	_ = cb.Execute(context.Background(), func(context.Context) error { return errors.New("connection refused") })
	return cb
}

func TestHealthHandler_Liveness(t *testing.T) {
	router := gin.New()
	NewHealthHandler().Register(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name           string
		setupHandler   func() *HealthHandler
		expectedStatus int
		expectedChecks map[string]interface{}
	}{
		{
			name:           "no checkers",
			setupHandler:   NewHealthHandler,
			expectedStatus: http.StatusOK,
			expectedChecks: map[string]interface{}{"service": "ok"},
		},
		{
			name: "healthy store and circuit breaker",
			setupHandler: func() *HealthHandler {
				handler := NewHealthHandler()
				handler.RegisterChecker("mongodb", HealthCheckerFunc(func(context.Context) error { return nil }))
				handler.RegisterCircuitBreaker(circuitbreaker.New(circuitbreaker.DefaultConfig("items")))
				return handler
			},
			expectedStatus: http.StatusOK,
			expectedChecks: map[string]interface{}{"mongodb": "ok", "items_circuit": "closed"},
		},
		{
			name: "store unreachable",
			setupHandler: func() *HealthHandler {
				handler := NewHealthHandler()
				handler.RegisterChecker("mongodb", HealthCheckerFunc(func(context.Context) error {
					return errors.New("server selection timeout")
				}))
				return handler
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedChecks: map[string]interface{}{"mongodb": "server selection timeout"},
		},
		{
			name: "open circuit breaker",
			setupHandler: func() *HealthHandler {
				handler := NewHealthHandler()
				handler.RegisterCircuitBreaker(openBreaker("placements"))
				return handler
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedChecks: map[string]interface{}{"placements_circuit": "open"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			tt.setupHandler().Register(router)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)

			var body struct {
				Status string                 `json:"status"`
				Checks map[string]interface{} `json:"checks"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedChecks, body.Checks)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "ok", body.Status)
			} else {
				assert.Equal(t, "degraded", body.Status)
			}
		})
	}
}
