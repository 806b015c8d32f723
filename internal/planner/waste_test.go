package planner

import (
	"context"
	"fmt"
	"testing"

	"github.com/guttosm/cargo-service/internal/cargoerr"
	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/guttosm/cargo-service/internal/geometry"
	"github.com/guttosm/cargo-service/internal/spaceindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wasteItem(id string, d geometry.Dims, mass float64, priority int) WasteItem {
	return WasteItem{
		Item:   model.Item{ItemID: id, Name: "waste " + id, Dims: d, Mass: mass, Priority: priority},
		Reason: model.WasteOutOfUses,
	}
}

func selectedIDs(plan ReturnPlan) []string {
	out := make([]string, 0, len(plan.Selected))
	for _, it := range plan.Selected {
		out = append(out, it.ItemID)
	}
	return out
}

func TestIdentifyWaste(t *testing.T) {
	day, err := model.ParseDate("2025-06-01")
	require.NoError(t, err)
	past := day.AddDays(-1)
	future := day.AddDays(10)

	items := []model.Item{
		{ItemID: "c", UsageLimit: 0},
		{ItemID: "a", UsageLimit: 3, ExpiryDate: &past},
		{ItemID: "b", UsageLimit: 3, ExpiryDate: &future},
		{ItemID: "d", UsageLimit: 3, ExpiryDate: &day},
	}

	waste := IdentifyWaste(items, day)

	require.Len(t, waste, 2)
	assert.Equal(t, "a", waste[0].Item.ItemID)
	assert.Equal(t, model.WasteExpired, waste[0].Reason)
	assert.Equal(t, "c", waste[1].Item.ItemID)
	assert.Equal(t, model.WasteOutOfUses, waste[1].Reason)
}

func TestReturnPlanner_Plan(t *testing.T) {
	roomy := container("undock", "Airlock", dims(100, 100, 100))

	tests := []struct {
		name      string
		container model.Container
		waste     []WasteItem
		maxWeight float64
		strategy  string
		selected  []string
		rejected  int
	}{
		{
			name:      "knapsack beats density greedy",
			container: roomy,
			waste: []WasteItem{
				wasteItem("x", dims(10, 10, 10), 6, 60),
				wasteItem("y", dims(10, 10, 10), 5, 45),
				wasteItem("z", dims(10, 10, 10), 5, 45),
			},
			maxWeight: 10,
			strategy:  StrategyKnapsack,
			selected:  []string{"y", "z"},
			rejected:  1,
		},
		{
			name:      "volume limit applies",
			container: container("undock", "Airlock", dims(10, 10, 10)),
			waste: []WasteItem{
				wasteItem("a", dims(10, 10, 6), 1, 10),
				wasteItem("b", dims(10, 10, 6), 1, 20),
			},
			maxWeight: 100,
			strategy:  StrategyKnapsack,
			selected:  []string{"b"},
			rejected:  1,
		},
		{
			name:      "shape failure falls back to greedy density",
			container: container("undock", "Airlock", dims(10, 10, 10)),
			waste: []WasteItem{
				wasteItem("a", dims(6, 6, 6), 1, 10),
				wasteItem("b", dims(6, 6, 6), 1, 20),
				wasteItem("c", dims(6, 6, 6), 1, 5),
			},
			maxWeight: 100,
			strategy:  StrategyGreedy,
			selected:  []string{"b"},
			rejected:  2,
		},
		{
			name:      "zero budget only admits massless waste",
			container: roomy,
			waste: []WasteItem{
				wasteItem("heavy", dims(1, 1, 1), 2, 50),
				wasteItem("foil", dims(1, 1, 1), 0, 0),
			},
			maxWeight: 0,
			strategy:  StrategyKnapsack,
			selected:  []string{"foil"},
			rejected:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rp := NewReturnPlanner()

			plan, err := rp.Plan(context.Background(), ReturnRequest{Waste: tt.waste, Container: tt.container, MaxWeight: tt.maxWeight})

			require.NoError(t, err)
			assert.Equal(t, tt.strategy, plan.Strategy)
			assert.ElementsMatch(t, tt.selected, selectedIDs(plan))
			assert.Len(t, plan.Manifest.RejectedItems, tt.rejected)
			assert.LessOrEqual(t, plan.Manifest.TotalWeight, tt.maxWeight)
			assert.LessOrEqual(t, plan.Manifest.TotalVolume, tt.container.Volume())
			assert.Len(t, plan.Placements, len(plan.Selected))
			for i, a := range plan.Placements {
				assert.Equal(t, tt.container.ContainerID, a.ContainerID)
				assert.True(t, geometry.Contains(geometry.Bounds(tt.container.Dims), a.Position))
				for _, b := range plan.Placements[i+1:] {
					assert.False(t, geometry.Overlaps(a.Position, b.Position))
				}
			}
		})
	}
}

func TestReturnPlanner_RejectionReasons(t *testing.T) {
	rp := NewReturnPlanner()
	plan, err := rp.Plan(context.Background(), ReturnRequest{
		Waste: []WasteItem{
			wasteItem("light", dims(1, 1, 1), 1, 10),
			wasteItem("heavy", dims(1, 1, 1), 50, 10),
		},
		Container: container("undock", "", dims(10, 10, 10)),
		MaxWeight: 5,
	})

	require.NoError(t, err)
	require.Len(t, plan.Manifest.RejectedItems, 1)
	assert.Equal(t, RejectedItem{ItemID: "heavy", Name: "waste heavy", Reason: ReasonWeightShortfall}, plan.Manifest.RejectedItems[0])
	assert.Equal(t, 10, plan.Manifest.TotalValue)
}

func TestReturnPlanner_MonotonicInMaxWeight(t *testing.T) {
	waste := []WasteItem{
		wasteItem("a", dims(5, 5, 5), 3.2, 30),
		wasteItem("b", dims(5, 5, 10), 4.7, 41),
		wasteItem("c", dims(10, 5, 5), 1.1, 9),
		wasteItem("d", dims(5, 5, 5), 7.5, 70),
		wasteItem("e", dims(5, 10, 5), 2.4, 22),
		wasteItem("f", dims(5, 5, 5), 0.6, 4),
	}
	rp := NewReturnPlanner()
	undock := container("undock", "", dims(50, 50, 50))

	previous := -1
	for w := 0.0; w <= 25; w += 0.5 {
		plan, err := rp.Plan(context.Background(), ReturnRequest{Waste: waste, Container: undock, MaxWeight: w})
		require.NoError(t, err)
		assert.LessOrEqual(t, plan.Manifest.TotalWeight, w+1e-9)
		assert.GreaterOrEqual(t, plan.Manifest.TotalValue, previous, "maxWeight %.1f", w)
		previous = plan.Manifest.TotalValue
	}
	assert.Equal(t, 176, previous)
}

func TestReturnPlanner_MonotonicAcrossCoarseMassUnits(t *testing.T) {
	// enough mass that the DP grid needs a coarser unit than the default
	waste := make([]WasteItem, 20)
	for i := range waste {
		waste[i] = wasteItem(fmt.Sprintf("w%02d", i), dims(1, 1, 1), 5.1, 1)
	}
	rp := NewReturnPlanner()
	undock := container("undock", "", dims(100, 100, 100))

	previous := -1
	for w := 80.0; w <= 84.0; w += 0.1 {
		plan, err := rp.Plan(context.Background(), ReturnRequest{Waste: waste, Container: undock, MaxWeight: w})
		require.NoError(t, err)
		assert.LessOrEqual(t, plan.Manifest.TotalWeight, w+1e-9)
		assert.GreaterOrEqual(t, plan.Manifest.TotalValue, previous, "maxWeight %.1f", w)
		previous = plan.Manifest.TotalValue
	}
	assert.GreaterOrEqual(t, previous, 15)
}

func TestReturnPlanner_RespectsExistingCargo(t *testing.T) {
	undock := container("undock", "", dims(10, 10, 10))
	occupied := spaceindex.New(undock.Dims)
	require.NoError(t, occupied.Place("old", geometry.NewBox(geometry.Point{}, dims(10, 10, 8))))

	plan, err := NewReturnPlanner().Plan(context.Background(), ReturnRequest{
		Waste:     []WasteItem{wasteItem("a", dims(10, 10, 2), 1, 5), wasteItem("b", dims(10, 10, 2), 1, 6)},
		Container: undock,
		Occupied:  occupied,
		MaxWeight: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, selectedIDs(plan))
	assert.Equal(t, 1, occupied.Len())
}

func TestReturnPlanner_InvalidInput(t *testing.T) {
	rp := NewReturnPlanner()

	_, err := rp.Plan(context.Background(), ReturnRequest{Container: container("u", "", dims(1, 1, 1)), MaxWeight: -1})
	assert.ErrorIs(t, err, cargoerr.ErrInvalidRequest)

	_, err = rp.Plan(context.Background(), ReturnRequest{Container: model.Container{ContainerID: "u"}})
	assert.ErrorIs(t, err, cargoerr.ErrInvalidRequest)
}

func TestSolveKnapsack(t *testing.T) {
	items := []knapsackItem{
		{value: 60, mass: 10, vol: 1},
		{value: 100, mass: 20, vol: 1},
		{value: 120, mass: 30, vol: 1},
	}

	assert.Equal(t, []int{1, 2}, solveKnapsack(items, 50, 3))
	assert.Equal(t, []int{2}, solveKnapsack(items, 50, 1))
	assert.Empty(t, solveKnapsack(items, 5, 3))
	assert.Nil(t, solveKnapsack(nil, 5, 3))
}
