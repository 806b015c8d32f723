package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-service/internal/domain/dto"
	"github.com/guttosm/cargo-service/internal/i18n"
	"github.com/guttosm/cargo-service/internal/metrics"
)

const defaultNumShards = 16

// quota is the fixed window of one caller.
type quota struct {
	left    int
	resetAt time.Time
}

type limiterShard struct {
	mu     sync.Mutex
	quotas map[string]*quota
}

// RateLimiterOption configures a RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithShards sets the number of lock shards. Values below one keep the default.
func WithShards(n int) RateLimiterOption {
	return func(rl *RateLimiter) {
		if n > 0 {
			rl.shards = make([]*limiterShard, n)
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) RateLimiterOption {
	return func(rl *RateLimiter) { rl.now = now }
}

// RateLimiter allows rate requests per window and caller. Callers are spread
// over shards by hash so unrelated callers rarely share a lock.
type RateLimiter struct {
	shards   []*limiterShard
	rate     int
	window   time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter starts a limiter and its janitor. Stop releases the janitor.
func NewRateLimiter(rate int, window time.Duration, opts ...RateLimiterOption) *RateLimiter {
	rl := &RateLimiter{
		shards: make([]*limiterShard, defaultNumShards),
		rate:   rate,
		window: window,
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(rl)
	}
	for i := range rl.shards {
		rl.shards[i] = &limiterShard{quotas: make(map[string]*quota)}
	}

	go rl.janitor()
	return rl
}

func (rl *RateLimiter) shard(key string) *limiterShard {
	return rl.shards[xxhash.Sum64String(key)%uint64(len(rl.shards))]
}

// take spends one request of key's quota.
func (rl *RateLimiter) take(key string) (allowed bool, left int) {
	s := rl.shard(key)
	now := rl.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.quotas[key]
	if !ok || !now.Before(q.resetAt) {
		q = &quota{left: rl.rate, resetAt: now.Add(rl.window)}
		s.quotas[key] = q
	}
	if q.left == 0 {
		return false, 0
	}
	q.left--
	return true, q.left
}

// RateLimit limits requests per client IP.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		rl.limit(c, "ip:"+c.ClientIP())
	}
}

// UserRateLimit limits requests per crew member, identified by the X-User-ID
// header. Anonymous requests are limited per IP.
func (rl *RateLimiter) UserRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		rl.limit(c, callerKey(c))
	}
}

func (rl *RateLimiter) limit(c *gin.Context, key string) {
	allowed, left := rl.take(key)

	c.Header("X-RateLimit-Limit", strconv.Itoa(rl.rate))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(left))
	if allowed {
		c.Next()
		return
	}

	scope, _, _ := strings.Cut(key, ":")
	metrics.RecordRateLimited(scope)

	c.Header("Retry-After", strconv.Itoa(int(math.Ceil(rl.window.Seconds()))))
	msg := i18n.GetTranslator().Translate(i18n.ErrKeyRateLimitExceeded, i18n.GetLocale(c))
	c.AbortWithStatusJSON(http.StatusTooManyRequests,
		dto.NewError(dto.ErrCodeRateLimit, msg).WithRequestID(GetRequestID(c)))
}

func callerKey(c *gin.Context) string {
	if userID := GetUserID(c); userID != "" {
		return "user:" + userID
	}
	return "ip:" + c.ClientIP()
}

func (rl *RateLimiter) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stopCh:
			return
		}
	}
}

// sweep drops quotas whose window ended.
func (rl *RateLimiter) sweep() {
	now := rl.now()
	for _, s := range rl.shards {
		s.mu.Lock()
		for key, q := range s.quotas {
			if !now.Before(q.resetAt) {
				delete(s.quotas, key)
			}
		}
		s.mu.Unlock()
	}
}

// Stop ends the janitor. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Tracked returns the number of callers with a live quota.
func (rl *RateLimiter) Tracked() int {
	n := 0
	for _, s := range rl.shards {
		s.mu.Lock()
		n += len(s.quotas)
		s.mu.Unlock()
	}
	return n
}
