// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"time"

	"github.com/guttosm/cargo-service/config"
	"github.com/guttosm/cargo-service/internal/http"
	"github.com/guttosm/cargo-service/internal/observability"
	"github.com/rs/zerolog/log"
)

const hydrateTimeout = 30 * time.Second

// App is the wired service.
type App struct {
	Router   *http.Router
	Services *ServiceComponents
	Database *DatabaseComponents

	shutdownTracing func(context.Context) error
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) *App {
	// Initialize logger first (needed by other components)
	InitializeLogger(cfg.Log)

	shutdownTracing, err := observability.InitTracing(context.Background(), observability.TracingConfig{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Exporter:    cfg.Tracing.Exporter,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize tracing - continuing without it")
		shutdownTracing = func(context.Context) error { return nil }
	}

	db := InitializeDatabase(cfg.Database)
	services := InitializeServices(cfg, db.Repositories)

	ctx, cancel := context.WithTimeout(context.Background(), hydrateTimeout)
	defer cancel()
	if err := services.Placement.Hydrate(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to hydrate space index - containers will load on first use")
	}

	routerComponents := InitializeRouter(services, db, cfg)

	return &App{
		Router:          http.NewRouter(routerComponents.Handler, routerComponents.HealthHandler, routerComponents.Config),
		Services:        services,
		Database:        db,
		shutdownTracing: shutdownTracing,
	}
}

// Close releases everything the app owns. Pending action log entries are
// written before the database is disconnected.
func (a *App) Close(ctx context.Context) {
	a.Router.Close()
	a.Services.Close()
	observability.ShutdownWithTimeout(ctx, a.shutdownTracing)
	if err := a.Database.Close(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to disconnect from MongoDB")
	}
}
