//go:build !integration

package service

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/guttosm/cargo-service/internal/planner"
	"github.com/guttosm/cargo-service/internal/repository"
	"github.com/guttosm/cargo-service/internal/simulation"
	"github.com/guttosm/cargo-service/internal/spaceindex"
	"github.com/guttosm/cargo-service/internal/testutil"
	"github.com/stretchr/testify/require"
)

// station wires every service over in-memory repositories.
type station struct {
	repos     repository.Repositories
	registry  *spaceindex.Registry
	clock     *simulation.Clock
	events    *ActionLog
	inventory InventoryService
	placement PlacementService
	waste     WasteService
	sim       SimulationService
}

func newStation(t *testing.T) *station {
	t.Helper()

	repos := repository.NewMemoryRepositories()
	registry := spaceindex.NewRegistry(spaceindex.WithLockTimeout(time.Second))
	placementPlanner := planner.NewPlacementPlanner(registry)
	clock := simulation.NewClock(testutil.Day)
	engine := simulation.NewEngine(clock, repos.Items)
	events := NewActionLog(NewLoggingService(repos.Logs), ActionLogConfig{BufferSize: 64, NumWorkers: 1, WriteTimeout: time.Second})
	t.Cleanup(events.Stop)

	return &station{
		repos:     repos,
		registry:  registry,
		clock:     clock,
		events:    events,
		inventory: NewInventoryService(repos, registry, events),
		placement: NewPlacementService(repos, registry, placementPlanner, engine, events),
		waste:     NewWasteService(repos, registry, planner.NewReturnPlanner(planner.WithPlacementPlanner(placementPlanner)), clock, events),
		sim:       NewSimulationService(engine, repos.Items, events),
	}
}

// logs flushes the action log and returns the stored entries of actionType.
func (s *station) logs(t *testing.T, actionType string) []model.LogEntry {
	t.Helper()
	s.events.Stop()
	entries, err := s.repos.Logs.Query(context.Background(), model.LogQueryOptions{ActionType: actionType})
	require.NoError(t, err)
	return entries
}

func (s *station) addContainers(t *testing.T, containers ...model.Container) {
	t.Helper()
	for i := range containers {
		require.NoError(t, s.inventory.CreateContainer(context.Background(), &containers[i]))
	}
}

func withPriority(it model.Item, p int) model.Item {
	it.Priority = p
	return it
}

func inZone(it model.Item, zone string) model.Item {
	it.PreferredZone = zone
	return it
}
