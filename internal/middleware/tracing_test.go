//go:build !integration

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	previousProp := otel.GetTextMapPropagator()
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		otel.SetTextMapPropagator(previousProp)
	})
	return recorder
}

func TestTracing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	const parent = "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"
	tests := []struct {
		name        string
		status      int
		handlerErr  error
		traceparent string
		wantError   bool
	}{
		{name: "successful request", status: http.StatusOK},
		{name: "server error marks span", status: http.StatusInternalServerError, handlerErr: errors.New("boom"), wantError: true},
		{name: "client error keeps span ok", status: http.StatusNotFound},
		{name: "continues caller trace", status: http.StatusOK, traceparent: parent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := recordSpans(t)

			router := gin.New()
			router.Use(RequestID(), Tracing())
			router.GET("/api/items/:id", func(c *gin.Context) {
				if tt.handlerErr != nil {
					_ = c.Error(tt.handlerErr)
				}
				c.Status(tt.status)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/items/001", nil)
			if tt.traceparent != "" {
				req.Header.Set("traceparent", tt.traceparent)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			spans := recorder.Ended()
			require.Len(t, spans, 1)
			span := spans[0]
			assert.Equal(t, "GET /api/items/:id", span.Name())
			assert.Equal(t, span.SpanContext().TraceID().String(), w.Header().Get(TraceIDHeader))
			assert.Contains(t, span.Attributes(), attribute.Int("http.response.status_code", tt.status))
			if tt.wantError {
				assert.Equal(t, codes.Error, span.Status().Code)
				assert.NotEmpty(t, span.Events())
			} else {
				assert.NotEqual(t, codes.Error, span.Status().Code)
			}
			if tt.traceparent != "" {
				assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", span.SpanContext().TraceID().String())
				assert.Equal(t, "00f067aa0ba902b7", span.Parent().SpanID().String())
			}
		})
	}
}
