//go:build !integration

package service

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/cargo-service/internal/cargoerr"
	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/guttosm/cargo-service/internal/planner"
	"github.com/guttosm/cargo-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stockWaste fills a storage container with two waste items, one blocking the
// other, and leaves a heavy expired item unplaced.
func stockWaste(t *testing.T, s *station) {
	t.Helper()
	ctx := context.Background()
	s.addContainers(t,
		testutil.Container("stor", "Storage", 10, 20, 10),
		testutil.Container("undock", "Airlock", 20, 20, 20),
	)

	food := testutil.Expiring(withPriority(testutil.Item("food", 10, 10, 10), 40), model.NewDate(time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC)))
	food.Mass = 5
	tool := withPriority(testutil.Item("tool", 10, 10, 10), 60)
	tool.Mass = 3
	tool.UsageLimit = 0
	heavy := testutil.Expiring(withPriority(testutil.Item("heavy", 5, 5, 5), 90), model.NewDate(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	heavy.Mass = 50
	soon := testutil.Expiring(testutil.Item("soon", 5, 5, 5), model.NewDate(time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC)))
	soon.Mass = 1
	fresh := testutil.Item("fresh", 5, 5, 5)
	for _, it := range []model.Item{food, tool, heavy, soon, fresh} {
		it := it
		require.NoError(t, s.inventory.CreateItem(ctx, &it))
	}

	_, err := s.placement.PlaceManually(ctx, ManualPlacement{ItemID: "food", ContainerID: "stor", Position: box(0, 0, 0, 10, 10, 10)})
	require.NoError(t, err)
	_, err = s.placement.PlaceManually(ctx, ManualPlacement{ItemID: "tool", ContainerID: "stor", Position: box(0, 10, 0, 10, 20, 10)})
	require.NoError(t, err)
}

func TestWasteService_Identify(t *testing.T) {
	s := newStation(t)
	stockWaste(t, s)

	waste, err := s.waste.Identify(context.Background())

	require.NoError(t, err)
	require.Len(t, waste, 3)
	assert.Equal(t, "food", waste[0].ItemID)
	assert.Equal(t, model.WasteExpired, waste[0].Reason)
	assert.Equal(t, "stor", waste[0].ContainerID)
	require.NotNil(t, waste[0].Position)
	assert.Equal(t, "heavy", waste[1].ItemID)
	assert.Empty(t, waste[1].ContainerID)
	assert.Nil(t, waste[1].Position)
	assert.Equal(t, "tool", waste[2].ItemID)
	assert.Equal(t, model.WasteOutOfUses, waste[2].Reason)
}

func TestWasteService_PlanReturn(t *testing.T) {
	ctx := context.Background()
	s := newStation(t)
	stockWaste(t, s)

	res, err := s.waste.PlanReturn(ctx, ReturnPlanRequest{ContainerID: "undock", MaxWeight: 10})

	require.NoError(t, err)
	assert.Equal(t, planner.StrategyKnapsack, res.Strategy)
	ids := make([]string, 0, len(res.ReturnPlan))
	for i, step := range res.ReturnPlan {
		assert.Equal(t, i+1, step.Step)
		assert.Equal(t, "undock", step.ToContainer)
		assert.Equal(t, "stor", step.FromContainer)
		ids = append(ids, step.ItemID)
	}
	assert.ElementsMatch(t, []string{"food", "tool"}, ids)
	assert.Equal(t, 8.0, res.Manifest.TotalWeight)
	assert.Equal(t, int64(2000), res.Manifest.TotalVolume)
	assert.Equal(t, 100, res.Manifest.TotalValue)
	assert.Equal(t, testutil.Day, res.Manifest.UndockingDate)
	require.Len(t, res.Manifest.RejectedItems, 1)
	assert.Equal(t, "heavy", res.Manifest.RejectedItems[0].ItemID)
	assert.Equal(t, planner.ReasonWeightShortfall, res.Manifest.RejectedItems[0].Reason)

	// food blocks tool, so it must come out before tool is retrieved
	require.NotEmpty(t, res.RetrievalSteps)
	pos := make(map[string]int)
	for i, st := range res.RetrievalSteps {
		assert.Equal(t, i+1, st.Step)
		pos[st.ItemID] = i
	}
	assert.Less(t, pos["food"], pos["tool"])

	// nothing moved
	p, err := s.repos.Placements.Get(ctx, "tool")
	require.NoError(t, err)
	assert.Equal(t, "stor", p.ContainerID)
}

func TestWasteService_PlanReturnOnUndockingDate(t *testing.T) {
	ctx := context.Background()
	s := newStation(t)
	stockWaste(t, s)
	later := model.NewDate(time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC))

	res, err := s.waste.PlanReturn(ctx, ReturnPlanRequest{ContainerID: "undock", UndockingDate: &later, MaxWeight: 11})

	require.NoError(t, err)
	ids := make([]string, 0, len(res.ReturnPlan))
	for _, step := range res.ReturnPlan {
		ids = append(ids, step.ItemID)
	}
	assert.ElementsMatch(t, []string{"food", "tool", "soon"}, ids)
	assert.Equal(t, later, res.Manifest.UndockingDate)
}

func TestWasteService_PlanReturnErrors(t *testing.T) {
	earlier := model.NewDate(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name    string
		req     ReturnPlanRequest
		errKind cargoerr.Kind
	}{
		{
			name:    "missing container id",
			req:     ReturnPlanRequest{MaxWeight: 10},
			errKind: cargoerr.KindInvalidRequest,
		},
		{
			name:    "unknown container",
			req:     ReturnPlanRequest{ContainerID: "nope", MaxWeight: 10},
			errKind: cargoerr.KindNotFound,
		},
		{
			name:    "negative weight",
			req:     ReturnPlanRequest{ContainerID: "undock", MaxWeight: -1},
			errKind: cargoerr.KindInvalidRequest,
		},
		{
			name:    "undocking in the past",
			req:     ReturnPlanRequest{ContainerID: "undock", UndockingDate: &earlier, MaxWeight: 10},
			errKind: cargoerr.KindInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStation(t)
			stockWaste(t, s)

			_, err := s.waste.PlanReturn(context.Background(), tt.req)

			require.Error(t, err)
			assert.True(t, cargoerr.Is(err, tt.errKind), err.Error())
		})
	}
}

func TestWasteService_CompleteUndocking(t *testing.T) {
	ctx := context.Background()
	s := newStation(t)
	stockWaste(t, s)
	_, err := s.placement.PlaceManually(ctx, ManualPlacement{ItemID: "heavy", ContainerID: "undock", Position: box(0, 0, 0, 5, 5, 5)})
	require.NoError(t, err)

	// waste already aboard the undocking container is not planned again
	plan, err := s.waste.PlanReturn(ctx, ReturnPlanRequest{ContainerID: "undock", MaxWeight: 100})
	require.NoError(t, err)
	for _, step := range plan.ReturnPlan {
		assert.NotEqual(t, "heavy", step.ItemID)
	}

	res, err := s.waste.CompleteUndocking(ctx, "undock", time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, UndockingResult{ItemsRemoved: 1, ItemIDs: []string{"heavy"}}, res)

	_, err = s.repos.Items.Get(ctx, "heavy")
	assert.True(t, cargoerr.Is(err, cargoerr.KindNotFound))
	_, err = s.repos.Placements.Get(ctx, "heavy")
	assert.True(t, cargoerr.Is(err, cargoerr.KindNotFound))
	_, err = s.repos.Containers.Get(ctx, "undock")
	assert.NoError(t, err)
	fs, err := s.placement.FreeSpace(ctx, "undock")
	require.NoError(t, err)
	assert.Equal(t, 0, fs.Items)

	_, err = s.waste.CompleteUndocking(ctx, "nope", time.Time{})
	assert.True(t, cargoerr.Is(err, cargoerr.KindNotFound))

	entries := s.logs(t, model.ActionDisposal)
	require.Len(t, entries, 1)
	assert.Equal(t, "heavy", entries[0].ItemID)
	assert.Equal(t, "2025-04-01T09:00:00Z", entries[0].Details["timestamp"])
}
