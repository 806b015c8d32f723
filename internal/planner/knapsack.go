package planner

import (
	"math"
	"sync"
)

// knapsackItem is an item reduced to integer capacity units.
type knapsackItem struct {
	value int
	mass  int
	vol   int
}

// knapsackState holds the DP tables, reused through knapsackPool.
type knapsackState struct {
	best []int
	keep []bool
}

var knapsackPool = sync.Pool{
	New: func() interface{} {
		return &knapsackState{
			best: make([]int, 0, 1<<14),
			keep: make([]bool, 0, 1<<16),
		}
	},
}

func getKnapsackState(cells, keepCells int) *knapsackState {
	state, _ := knapsackPool.Get().(*knapsackState)
	if state == nil {
		state = &knapsackState{}
	}
	if cap(state.best) < cells {
		state.best = make([]int, cells)
	} else {
		state.best = state.best[:cells]
		clear(state.best)
	}
	if cap(state.keep) < keepCells {
		state.keep = make([]bool, keepCells)
	} else {
		state.keep = state.keep[:keepCells]
		clear(state.keep)
	}
	return state
}

func putKnapsackState(state *knapsackState) {
	if cap(state.keep) > 1<<24 {
		state.keep = make([]bool, 0, 1<<16)
	}
	knapsackPool.Put(state)
}

// solveKnapsack maximizes total value subject to both capacities and returns the
// indexes of the chosen items in ascending order. Only strictly better values
// replace a cell, so among equal-value subsets the one found first is kept.
func solveKnapsack(items []knapsackItem, massCap, volCap int) []int {
	if len(items) == 0 || massCap < 0 || volCap < 0 {
		return nil
	}
	width := volCap + 1
	cells := (massCap + 1) * width
	state := getKnapsackState(cells, cells*len(items))
	defer putKnapsackState(state)

	best, keep := state.best, state.keep
	for i, it := range items {
		if it.mass > massCap || it.vol > volCap {
			continue
		}
		row := keep[i*cells : (i+1)*cells]
		for m := massCap; m >= it.mass; m-- {
			for v := volCap; v >= it.vol; v-- {
				with := best[(m-it.mass)*width+v-it.vol] + it.value
				if with > best[m*width+v] {
					best[m*width+v] = with
					row[m*width+v] = true
				}
			}
		}
	}

	chosen := make([]int, 0)
	m, v := massCap, volCap
	for i := len(items) - 1; i >= 0; i-- {
		if keep[i*cells+m*width+v] {
			chosen = append(chosen, i)
			m -= items[i].mass
			v -= items[i].vol
		}
	}
	for l, r := 0, len(chosen)-1; l < r; l, r = l+1, r-1 {
		chosen[l], chosen[r] = chosen[r], chosen[l]
	}
	return chosen
}

// ceilUnits converts a quantity to capacity units, rounding up so that a
// selection that fits in units also fits in real quantities.
func ceilUnits(x, res float64) int {
	return int(math.Ceil(x/res - 1e-9))
}

// floorUnits converts a capacity to units, rounding down.
func floorUnits(x, res float64) int {
	return int(math.Floor(x/res + 1e-9))
}
