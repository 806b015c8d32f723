package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-service/internal/metrics"
	"github.com/guttosm/cargo-service/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit         int
	RateWindow        time.Duration
	UserRateLimit     int
	EnableIdempotency bool
	IdempotencyTTL    time.Duration
	RequestTimeout    time.Duration
	CORSOrigins       []string
	SwaggerUser       string
	SwaggerPass       string
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:         100,
		RateWindow:        time.Minute,
		EnableIdempotency: true,
		IdempotencyTTL:    middleware.IdempotencyKeyTTL,
		RequestTimeout:    30 * time.Second,
	}
}

// Router is the configured gin engine and the middleware state it owns.
type Router struct {
	*gin.Engine
	stops []func()
}

// Close stops the background janitors of the rate limiters and the
// idempotency cache.
func (r *Router) Close() {
	for _, stop := range r.stops {
		stop()
	}
	r.stops = nil
}

var skipLogPaths = []string{"/healthz", "/readyz", "/metrics"}

// NewRouter creates and configures the Gin router for the cargo service.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) *Router {
	r := &Router{Engine: gin.New()}

	r.configureGlobalMiddleware(&cfg)
	registerInfrastructureRoutes(r.Engine, healthHandler, &cfg)

	api := r.Group("/api")
	r.configureAPIMiddleware(api, &cfg)

	if handler != nil {
		for _, group := range []RouteGroup{NewInventoryRoutes(handler), NewCargoRoutes(handler)} {
			group.RegisterRoutes(api)
		}
	}

	return r
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func (r *Router) configureGlobalMiddleware(cfg *RouterConfig) {
	r.Use(
		middleware.CORS(cfg.CORSOrigins),
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Tracing(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(skipLogPaths...),
		middleware.ErrorHandler(),
	)

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		r.stops = append(r.stops, limiter.Stop)
		r.Use(limiter.RateLimit())
	}
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger with optional basic auth
	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// configureAPIMiddleware sets up middleware for the API group.
func (r *Router) configureAPIMiddleware(api *gin.RouterGroup, cfg *RouterConfig) {
	if cfg.RequestTimeout > 0 {
		api.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	if cfg.UserRateLimit > 0 {
		window := cfg.RateWindow
		if window <= 0 {
			window = time.Minute
		}
		limiter := middleware.NewRateLimiter(cfg.UserRateLimit, window)
		r.stops = append(r.stops, limiter.Stop)
		api.Use(limiter.UserRateLimit())
	}

	if cfg.EnableIdempotency {
		ttl := cfg.IdempotencyTTL
		if ttl <= 0 {
			ttl = middleware.IdempotencyKeyTTL
		}
		idempotencyCfg := middleware.NewIdempotencyConfig(ttl)
		r.stops = append(r.stops, idempotencyCfg.Close)
		api.Use(middleware.Idempotency(idempotencyCfg))
	}
}
