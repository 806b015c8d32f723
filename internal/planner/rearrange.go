package planner

import (
	"sort"

	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/guttosm/cargo-service/internal/geometry"
	"github.com/guttosm/cargo-service/internal/spaceindex"
)

// Move relocates one placed item.
type Move struct {
	ItemID        string       `json:"itemId"`
	FromContainer string       `json:"fromContainer"`
	From          geometry.Box `json:"fromPosition"`
	ToContainer   string       `json:"toContainer"`
	To            geometry.Box `json:"toPosition"`
}

// RearrangementPlan frees space in ContainerID by applying Moves in order,
// after which the item goes to Placement.
type RearrangementPlan struct {
	ContainerID string          `json:"containerId"`
	Moves       []Move          `json:"moves"`
	Placement   model.Placement `json:"placement"`
	CrossZone   bool            `json:"crossZone"`
}

// rearrange looks for the container that can take item after relocating the
// fewest lowest-priority occupants. Containers are tried in zone order, so a
// tie on move count keeps the preferred zone.
func (p *PlacementPlanner) rearrange(item model.Item, containers []model.Container, snaps map[string]*spaceindex.Index, dir Directory) (*RearrangementPlan, bool) {
	var best *RearrangementPlan
	for _, c := range containers {
		if !canEverHold(c, item) {
			continue
		}
		plan, ok := p.rearrangeIn(item, c, containers, snaps, dir)
		if !ok {
			continue
		}
		if best == nil || len(plan.Moves) < len(best.Moves) {
			best = plan
		}
	}
	return best, best != nil
}

func (p *PlacementPlanner) rearrangeIn(item model.Item, target model.Container, containers []model.Container, snaps map[string]*spaceindex.Index, dir Directory) (*RearrangementPlan, bool) {
	sim := snaps[target.ContainerID].Clone()
	occupants := byPriority(sim.Occupied(), dir)
	prefer := p.PrefersAccess(item)

	removed := make([]occupant, 0, p.maxMoves)
	for _, occ := range occupants {
		if len(removed) == p.maxMoves {
			break
		}
		if _, err := sim.Remove(occ.id); err != nil {
			return nil, false
		}
		removed = append(removed, occ)
		sim.Rebuild()

		fit, ok := sim.FindFit(item.Dims, prefer)
		if !ok {
			continue
		}
		moves, ok := p.relocate(target.ContainerID, sim.Clone(), fit.Box, item.ItemID, removed, containers, snaps, dir)
		if !ok {
			continue
		}
		return &RearrangementPlan{
			ContainerID: target.ContainerID,
			Moves:       moves,
			Placement: model.Placement{
				ItemID:      item.ItemID,
				ContainerID: target.ContainerID,
				Position:    fit.Box,
				PlacedAt:    p.now().UTC(),
			},
			CrossZone: item.PreferredZone != "" && target.Zone != item.PreferredZone,
		}, true
	}
	return nil, false
}

// relocate finds a new home for every removed occupant: first the freed
// container itself once the item is in, then the other containers by id.
func (p *PlacementPlanner) relocate(source string, sim *spaceindex.Index, itemBox geometry.Box, itemID string, removed []occupant, containers []model.Container, snaps map[string]*spaceindex.Index, dir Directory) ([]Move, bool) {
	if err := sim.Place(itemID, itemBox); err != nil {
		return nil, false
	}
	targets := map[string]*spaceindex.Index{source: sim}
	order := []string{source}
	for _, c := range containers {
		if c.ContainerID != source {
			order = append(order, c.ContainerID)
		}
	}
	sort.Strings(order[1:])

	moves := make([]Move, 0, len(removed))
	for _, occ := range removed {
		dims := occ.box.Dims()
		prefer := false
		if it, ok := dir.Item(occ.id); ok {
			dims = it.Dims
			prefer = p.PrefersAccess(it)
		}
		placed := false
		for _, cid := range order {
			ix, ok := targets[cid]
			if !ok {
				ix = snaps[cid].Clone()
				targets[cid] = ix
			}
			fit, ok := ix.FindFit(dims, prefer)
			if !ok {
				continue
			}
			if err := ix.Place(occ.id, fit.Box); err != nil {
				return nil, false
			}
			moves = append(moves, Move{ItemID: occ.id, FromContainer: source, From: occ.box, ToContainer: cid, To: fit.Box})
			placed = true
			break
		}
		if !placed {
			return nil, false
		}
	}
	return moves, true
}

type occupant struct {
	id       string
	box      geometry.Box
	priority int
}

func byPriority(occupied map[string]geometry.Box, dir Directory) []occupant {
	out := make([]occupant, 0, len(occupied))
	for id, box := range occupied {
		occ := occupant{id: id, box: box}
		if it, ok := dir.Item(id); ok {
			occ.priority = it.Priority
		}
		out = append(out, occ)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].priority != out[j].priority {
			return out[i].priority < out[j].priority
		}
		return out[i].id < out[j].id
	})
	return out
}
