//go:build !integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/cargo-service/config"
	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/guttosm/cargo-service/internal/repository"
	"github.com/guttosm/cargo-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeServices(t *testing.T) {
	tests := []struct {
		name      string
		cache     config.CacheConfig
		wantCache bool
	}{
		{name: "cache disabled", cache: config.CacheConfig{ItemSize: 0}},
		{name: "cache enabled", cache: config.CacheConfig{ItemSize: 100, ItemTTL: time.Minute}, wantCache: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Cache = tt.cache

			components := InitializeServices(cfg, repository.NewMemoryRepositories())
			defer components.Close()

			assert.NotNil(t, components.Registry)
			assert.NotNil(t, components.Inventory)
			assert.NotNil(t, components.Placement)
			assert.NotNil(t, components.Waste)
			assert.NotNil(t, components.Simulation)
			assert.NotNil(t, components.Logs)
			assert.Equal(t, "2025-04-01", components.Clock.Today().String())
			assert.Equal(t, tt.wantCache, components.itemCache != nil)
		})
	}
}

func TestInitializeServices_HydratesRegistry(t *testing.T) {
	ctx := context.Background()
	repos := repository.NewMemoryRepositories()
	container := testutil.Container("contA", "Lab", 100, 85, 200)
	require.NoError(t, repos.Containers.Create(ctx, &container))

	components := InitializeServices(testConfig(), repos)
	defer components.Close()

	require.False(t, components.Registry.Has("contA"))
	require.NoError(t, components.Placement.Hydrate(ctx))
	assert.True(t, components.Registry.Has("contA"))
}

func TestServiceComponents_CloseFlushesActionLog(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	components := InitializeServices(testConfig(), repos)

	components.Events.Append(context.Background(), &model.LogEntry{ActionType: model.ActionRetrieval, ItemID: "001"})
	components.Close()

	entries, err := repos.Logs.Query(context.Background(), model.LogQueryOptions{ActionType: model.ActionRetrieval})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
