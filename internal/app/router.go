// Package app provides router configuration.
package app

import (
	"github.com/guttosm/cargo-service/config"
	"github.com/guttosm/cargo-service/internal/http"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(services *ServiceComponents, db *DatabaseComponents, cfg config.Config) *RouterComponents {
	handler := http.NewHandler(http.Services{
		Inventory:  services.Inventory,
		Placement:  services.Placement,
		Waste:      services.Waste,
		Simulation: services.Simulation,
		Logs:       services.Logs,
	}, http.WithMaxUploadBytes(cfg.Server.MaxUploadBytes))

	healthHandler := http.NewHealthHandler()
	if db != nil && db.Persistent() {
		healthHandler.RegisterChecker("mongodb", http.HealthCheckerFunc(db.DB.HealthCheck))
		for _, cb := range db.CircuitBreakers {
			healthHandler.RegisterCircuitBreaker(cb)
		}
	}

	routerCfg := http.DefaultRouterConfig()
	routerCfg.RateLimit = cfg.Server.RateLimit
	routerCfg.RateWindow = cfg.Server.RateWindow
	routerCfg.UserRateLimit = cfg.Server.UserRateLimit
	routerCfg.RequestTimeout = cfg.Server.RequestTimeout
	routerCfg.CORSOrigins = cfg.Server.CORSOrigins
	routerCfg.SwaggerUser = cfg.Server.SwaggerUser
	routerCfg.SwaggerPass = cfg.Server.SwaggerPass

	return &RouterComponents{
		Handler:       handler,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
