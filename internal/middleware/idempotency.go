package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-service/internal/logger"
)

const (
	// IdempotencyKeyHeader is the HTTP header name for idempotency key (RFC standard).
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the cache.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is the TTL for cached idempotency responses.
	IdempotencyKeyTTL = 5 * time.Minute
)

// replayedHeaders are the response headers stored with a cached response.
var replayedHeaders = []string{"Content-Type", "Content-Disposition"}

// cachedResponse stores a cached HTTP response for idempotency.
type cachedResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Timestamp  time.Time
}

// IdempotencyConfig holds configuration for idempotency middleware.
type IdempotencyConfig struct {
	Cache   *idempotencyCache
	TTL     time.Duration
	Enabled bool
}

// DefaultIdempotencyConfig returns default idempotency configuration.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return NewIdempotencyConfig(IdempotencyKeyTTL)
}

// NewIdempotencyConfig returns an enabled configuration with its own cache.
func NewIdempotencyConfig(ttl time.Duration) IdempotencyConfig {
	if ttl <= 0 {
		ttl = IdempotencyKeyTTL
	}
	return IdempotencyConfig{
		Cache:   newIdempotencyCache(ttl),
		TTL:     ttl,
		Enabled: true,
	}
}

// Close stops the cache's background purge.
func (cfg IdempotencyConfig) Close() {
	if cfg.Cache != nil {
		cfg.Cache.Stop()
	}
}

// Idempotency returns a middleware that handles idempotency using the Idempotency-Key header.
// If a request with the same idempotency key, route, crew member and body was
// processed recently, the cached response is returned. A resent placement
// batch therefore does not place anything twice.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Cache == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		// Only apply idempotency to POST, PUT, PATCH methods
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		cacheKey, err := generateCacheKey(key, c.Request)
		if err != nil {
			logger.Ctx(c.Request.Context()).Warn().Err(err).Msg("Idempotency key skipped, request body unreadable")
			c.Next()
			return
		}

		if cachedResp, ok := cfg.Cache.Get(cacheKey); ok {
			for k, v := range cachedResp.Headers {
				c.Header(k, v)
			}
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(cachedResp.StatusCode, cachedResp.Headers["Content-Type"], cachedResp.Body)
			c.Abort()
			return
		}

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer

		c.Next()

		// Cache successful responses (2xx)
		status := writer.Status()
		if status >= 200 && status < 300 {
			headers := make(map[string]string, len(replayedHeaders))
			for _, h := range replayedHeaders {
				if v := writer.Header().Get(h); v != "" {
					headers[h] = v
				}
			}
			cfg.Cache.Set(cacheKey, &cachedResponse{
				StatusCode: status,
				Headers:    headers,
				Body:       writer.body.Bytes(),
			})
		}
	}
}

// generateCacheKey digests the idempotency key with the request method, path,
// crew member and body. The body is restored for the handler.
func generateCacheKey(idempotencyKey string, req *http.Request) (string, error) {
	d := xxhash.New()
	for _, part := range []string{idempotencyKey, req.Method, req.URL.Path, req.Header.Get(UserIDHeader)} {
		_, _ = d.WriteString(part)
		_, _ = d.Write([]byte{0})
	}

	if req.Body != nil {
		bodyBytes, err := io.ReadAll(req.Body)
		if err != nil {
			return "", err
		}
		req.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		_, _ = d.Write(bodyBytes)
	}
	return strconv.FormatUint(d.Sum64(), 16), nil
}

// responseWriter captures the response body for caching.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
