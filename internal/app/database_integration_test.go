//go:build integration

package app

import (
	"context"
	"testing"

	"github.com/guttosm/cargo-service/internal/circuitbreaker"
	"github.com/guttosm/cargo-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeDatabase_Integration(t *testing.T) {
	ctx := context.Background()
	components := InitializeDatabase(mongoConfig(t))
	t.Cleanup(func() {
		_ = components.DB.Database.Drop(ctx)
		_ = components.Close(ctx)
	})

	require.True(t, components.Persistent())
	require.Len(t, components.CircuitBreakers, 4)
	for _, cb := range components.CircuitBreakers {
		assert.Equal(t, circuitbreaker.StateClosed, cb.State())
	}
	assert.NoError(t, components.DB.HealthCheck(ctx))

	container := testutil.Container("contA", "Lab", 100, 85, 200)
	require.NoError(t, components.Repositories.Containers.Create(ctx, &container))
	got, err := components.Repositories.Containers.Get(ctx, "contA")
	require.NoError(t, err)
	assert.Equal(t, "Lab", got.Zone)
}
