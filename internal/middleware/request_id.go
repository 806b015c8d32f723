// Package middleware provides HTTP middleware components for the cargo service.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/guttosm/cargo-service/internal/logger"
)

const (
	// RequestIDHeader is the HTTP header name for request ID.
	RequestIDHeader = "X-Request-ID"
	// UserIDHeader names the crew member acting on the request.
	UserIDHeader = "X-User-ID"
)

// ContextKey type for context keys to avoid collisions.
type ContextKey string

const (
	// RequestIDKey is the context key for request ID.
	RequestIDKey ContextKey = "request_id"
	// UserIDKey is the context key for the acting crew member.
	UserIDKey ContextKey = "user_id"
)

// RequestID returns a middleware that ensures each request has a unique ID.
// If the client provides X-Request-ID header, it will be used.
// Otherwise, a new UUID v4 will be generated. The id and the X-User-ID
// header are also stored in the request context so that core logs and
// action log entries carry them.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(string(RequestIDKey), requestID)
		c.Header(RequestIDHeader, requestID)

		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		if userID := c.GetHeader(UserIDHeader); userID != "" {
			c.Set(string(UserIDKey), userID)
			ctx = logger.WithUserID(ctx, userID)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetRequestID retrieves the request ID from the gin context.
func GetRequestID(c *gin.Context) string {
	if id, exists := c.Get(string(RequestIDKey)); exists {
		if requestID, ok := id.(string); ok {
			return requestID
		}
	}
	return ""
}

// GetUserID retrieves the acting crew member from the gin context.
func GetUserID(c *gin.Context) string {
	return c.GetString(string(UserIDKey))
}
