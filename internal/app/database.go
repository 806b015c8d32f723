// Package app provides database initialization and setup.
package app

import (
	"context"
	"time"

	"github.com/guttosm/cargo-service/config"
	"github.com/guttosm/cargo-service/internal/circuitbreaker"
	"github.com/guttosm/cargo-service/internal/metrics"
	"github.com/guttosm/cargo-service/internal/repository"
	"github.com/rs/zerolog/log"
)

const setupTimeout = 5 * time.Second

// DatabaseComponents holds the stores and the breakers guarding them.
type DatabaseComponents struct {
	// DB is nil when the in-memory stores are used.
	DB              *repository.MongoDB
	Repositories    repository.Repositories
	CircuitBreakers []*circuitbreaker.CircuitBreaker
}

// Persistent reports whether the stores are backed by MongoDB.
func (d *DatabaseComponents) Persistent() bool { return d.DB != nil }

// Close disconnects from MongoDB.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d.DB == nil {
		return nil
	}
	return d.DB.Close(ctx)
}

// InitializeDatabase connects to MongoDB and builds the repositories behind
// circuit breakers. When the database is disabled or unreachable the service
// runs on in-memory stores.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		log.Info().Msg("MongoDB disabled - using in-memory stores")
		return &DatabaseComponents{Repositories: repository.NewMemoryRepositories()}
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing with in-memory stores")
		return &DatabaseComponents{Repositories: repository.NewMemoryRepositories()}
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	// Set TTL for logs
	ttlDays := int(cfg.LogsTTL.Hours() / 24)
	if err := db.SetLogsTTL(ctx, ttlDays); err != nil {
		log.Warn().Err(err).Msg("Failed to set logs TTL index")
	}

	repos, breakers := repository.NewMongoRepositories(db, breakerConfig(cfg))
	for _, cb := range breakers {
		metrics.SetCircuitBreakerState(cb.Name(), int(cb.State()))
	}

	return &DatabaseComponents{
		DB:              db,
		Repositories:    repos,
		CircuitBreakers: breakers,
	}
}

func breakerConfig(cfg config.DatabaseConfig) func(*circuitbreaker.Config) {
	return func(c *circuitbreaker.Config) {
		if cfg.CircuitBreakerFailureThreshold > 0 {
			c.FailureThreshold = cfg.CircuitBreakerFailureThreshold
		}
		if cfg.CircuitBreakerSuccessThreshold > 0 {
			c.SuccessThreshold = cfg.CircuitBreakerSuccessThreshold
		}
		if cfg.CircuitBreakerTimeout > 0 {
			c.Timeout = cfg.CircuitBreakerTimeout
		}
		c.OnStateChange = func(name string, _, to circuitbreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
		}
	}
}
