package planner

import (
	"sort"

	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/guttosm/cargo-service/internal/geometry"
)

// Retrieval step actions.
const (
	ActionRemove   = "remove"
	ActionRetrieve = "retrieve"
)

// Step is one instruction of a retrieval.
type Step struct {
	Step     int    `json:"step"`
	Action   string `json:"action"`
	ItemID   string `json:"itemId"`
	ItemName string `json:"itemName"`
}

// PlanRetrieval returns the placements that must come out to reach target,
// nearest to the access face first, ending with target itself. A placement
// obstructs target when it lies in front of it (closer to depth 0) and their
// width/height footprints overlap. Ties go to the lower priority item.
func PlanRetrieval(target model.Placement, placements []model.Placement, dir Directory) []model.Placement {
	if dir == nil {
		dir = MapDirectory(nil)
	}
	blocking := make([]model.Placement, 0)
	for _, p := range placements {
		if p.ItemID == target.ItemID || p.ContainerID != target.ContainerID {
			continue
		}
		if obstructs(p.Position, target.Position) {
			blocking = append(blocking, p)
		}
	}

	priority := func(id string) int {
		if it, ok := dir.Item(id); ok {
			return it.Priority
		}
		return 0
	}
	sort.Slice(blocking, func(i, j int) bool {
		a, b := blocking[i], blocking[j]
		if a.Position.Start.Depth != b.Position.Start.Depth {
			return a.Position.Start.Depth < b.Position.Start.Depth
		}
		if pa, pb := priority(a.ItemID), priority(b.ItemID); pa != pb {
			return pa < pb
		}
		return a.ItemID < b.ItemID
	})
	return append(blocking, target)
}

func obstructs(candidate, target geometry.Box) bool {
	return candidate.End.Depth <= target.Start.Depth && geometry.FacesOverlap(candidate, target)
}

// RetrievalSteps turns a chain from PlanRetrieval into numbered instructions.
func RetrievalSteps(chain []model.Placement, dir Directory) []Step {
	if dir == nil {
		dir = MapDirectory(nil)
	}
	steps := make([]Step, 0, len(chain))
	for i, p := range chain {
		action := ActionRemove
		if i == len(chain)-1 {
			action = ActionRetrieve
		}
		name := ""
		if it, ok := dir.Item(p.ItemID); ok {
			name = it.Name
		}
		steps = append(steps, Step{Step: i + 1, Action: action, ItemID: p.ItemID, ItemName: name})
	}
	return steps
}
