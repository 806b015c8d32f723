//go:build !integration

package service

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/cargo-service/internal/cargoerr"
	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/guttosm/cargo-service/internal/simulation"
	"github.com/guttosm/cargo-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestSimulationService_Advance(t *testing.T) {
	ctx := context.Background()
	s := newStation(t)
	a := testutil.Item("a", 1, 1, 1)
	a.UsageLimit = 3
	b := testutil.Expiring(testutil.Item("b", 1, 1, 1), model.NewDate(time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)))
	for _, it := range []model.Item{a, b} {
		it := it
		require.NoError(t, s.inventory.CreateItem(ctx, &it))
	}

	summary, err := s.sim.Advance(ctx, SimulationRequest{
		Days:  intPtr(2),
		Usage: []ItemUse{{ItemID: "a"}, {Name: "Item b"}},
	})

	require.NoError(t, err)
	assert.Equal(t, testutil.Day.AddDays(2), summary.To)
	assert.Equal(t, testutil.Day.AddDays(2), s.sim.Today())
	assert.Equal(t, []simulation.ItemUsage{
		{ItemID: "a", Name: "Item a", RemainingUses: 1},
		{ItemID: "b", Name: "Item b", RemainingUses: 8},
	}, summary.ItemsUsed)
	assert.Equal(t, []simulation.ItemRef{{ItemID: "b", Name: "Item b"}}, summary.ItemsExpired)
	assert.Empty(t, summary.ItemsDepleted)

	stored, err := s.repos.Items.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.UsageLimit)

	entries := s.logs(t, model.ActionSimulation)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Details["days"])
	assert.Equal(t, "2025-04-03", entries[0].Details["to"])
}

func TestSimulationService_AdvanceErrors(t *testing.T) {
	tests := []struct {
		name    string
		req     SimulationRequest
		errKind cargoerr.Kind
	}{
		{
			name:    "unknown name",
			req:     SimulationRequest{Days: intPtr(1), Usage: []ItemUse{{Name: "Nothing"}}},
			errKind: cargoerr.KindNotFound,
		},
		{
			name:    "unknown id",
			req:     SimulationRequest{Days: intPtr(1), Usage: []ItemUse{{ItemID: "ghost"}}},
			errKind: cargoerr.KindNotFound,
		},
		{
			name:    "usage without id or name",
			req:     SimulationRequest{Days: intPtr(1), Usage: []ItemUse{{}}},
			errKind: cargoerr.KindInvalidRequest,
		},
		{
			name:    "neither days nor date",
			req:     SimulationRequest{},
			errKind: cargoerr.KindInvalidRequest,
		},
		{
			name:    "negative days",
			req:     SimulationRequest{Days: intPtr(-1)},
			errKind: cargoerr.KindInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStation(t)
			it := testutil.Item("a", 1, 1, 1)
			require.NoError(t, s.inventory.CreateItem(context.Background(), &it))

			_, err := s.sim.Advance(context.Background(), tt.req)

			require.Error(t, err)
			assert.True(t, cargoerr.Is(err, tt.errKind), err.Error())
			assert.Equal(t, testutil.Day, s.sim.Today())
		})
	}
}

func TestSimulationService_AdvanceToToday(t *testing.T) {
	s := newStation(t)
	today := testutil.Day

	summary, err := s.sim.Advance(context.Background(), SimulationRequest{To: &today})

	require.NoError(t, err)
	assert.Equal(t, 0, summary.Days)
	assert.Empty(t, s.logs(t, model.ActionSimulation))
}
