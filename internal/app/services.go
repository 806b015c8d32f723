// Package app provides service initialization.
package app

import (
	"time"

	"github.com/guttosm/cargo-service/config"
	"github.com/guttosm/cargo-service/internal/cargoerr"
	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/guttosm/cargo-service/internal/metrics"
	"github.com/guttosm/cargo-service/internal/planner"
	"github.com/guttosm/cargo-service/internal/repository"
	"github.com/guttosm/cargo-service/internal/service"
	"github.com/guttosm/cargo-service/internal/service/cache"
	"github.com/guttosm/cargo-service/internal/simulation"
	"github.com/guttosm/cargo-service/internal/spaceindex"
)

const (
	itemCacheShards  = 16
	itemCacheCleanup = time.Minute
)

// ServiceComponents holds the core state and the services built on it.
type ServiceComponents struct {
	Registry *spaceindex.Registry
	Clock    *simulation.Clock
	Events   *service.ActionLog

	Inventory  service.InventoryService
	Placement  service.PlacementService
	Waste      service.WasteService
	Simulation service.SimulationService
	Logs       service.LoggingService

	itemCache *cache.Sharded[model.Item]
}

// Close drains the action log and stops the cache janitor.
func (s *ServiceComponents) Close() {
	s.Events.Stop()
	if s.itemCache != nil {
		s.itemCache.Stop()
	}
}

// InitializeServices wires the space index registry, the planners, the
// simulated clock and the services over repos.
func InitializeServices(cfg config.Config, repos repository.Repositories) *ServiceComponents {
	var itemCache *cache.Sharded[model.Item]
	if cfg.Cache.ItemSize > 0 {
		itemCache = cache.NewSharded[model.Item]("items", cfg.Cache.ItemSize, cfg.Cache.ItemTTL, itemCacheShards, itemCacheCleanup)
		repos.Items = service.NewCachedItems(repos.Items, itemCache)
	}

	registry := spaceindex.NewRegistry(
		spaceindex.WithLockTimeout(cfg.Planner.LockTimeout),
		spaceindex.WithLockObserver(func(_ string, waited time.Duration, err error) {
			metrics.ObserveLock(waited, cargoerr.Is(err, cargoerr.KindTimeout))
		}),
	)
	placementPlanner := planner.NewPlacementPlanner(registry,
		planner.WithAccessPriorityThreshold(cfg.Planner.AccessPriorityThreshold),
		planner.WithMaxMoves(cfg.Planner.RearrangeMaxMoves),
	)
	returnPlanner := planner.NewReturnPlanner(
		planner.WithMassResolution(cfg.Planner.KnapsackMassResolution),
		planner.WithPlacementPlanner(placementPlanner),
	)

	clock := simulation.NewClock(model.NewDate(cfg.Simulation.StartDate))
	engine := simulation.NewEngine(clock, repos.Items)

	logs := service.NewLoggingService(repos.Logs)
	events := service.NewActionLog(logs, service.DefaultActionLogConfig())

	return &ServiceComponents{
		Registry:   registry,
		Clock:      clock,
		Events:     events,
		Inventory:  service.NewInventoryService(repos, registry, events),
		Placement:  service.NewPlacementService(repos, registry, placementPlanner, engine, events),
		Waste:      service.NewWasteService(repos, registry, returnPlanner, clock, events),
		Simulation: service.NewSimulationService(engine, repos.Items, events),
		Logs:       logs,
		itemCache:  itemCache,
	}
}
