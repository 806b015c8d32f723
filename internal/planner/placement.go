// Package planner decides where cargo goes and how to get it back out.
package planner

import (
	"context"
	"sort"
	"time"

	"github.com/guttosm/cargo-service/internal/cargoerr"
	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/guttosm/cargo-service/internal/geometry"
	"github.com/guttosm/cargo-service/internal/spaceindex"
	"github.com/rs/zerolog/log"
)

// Status is the kind of planning outcome.
type Status string

const (
	StatusPlaced        Status = "placed"
	StatusRearrangement Status = "rearrangement_required"
	StatusNoSolution    Status = "no_solution"
)

// Reason diagnoses why no placement is possible.
type Reason string

const (
	ReasonZoneMismatch    Reason = "zone_mismatch"
	ReasonVolumeShortfall Reason = "volume_shortfall"
	ReasonWeightShortfall Reason = "weight_shortfall"
	ReasonNoContainers    Reason = "no_containers"
)

const (
	// DefaultAccessPriorityThreshold is the priority from which items are placed near the access face.
	DefaultAccessPriorityThreshold = 80
	// DefaultMaxMoves bounds the relocations proposed for a single item.
	DefaultMaxMoves = 5
)

// Directory resolves placed item ids to items. Unknown ids are treated as priority 0.
type Directory interface {
	Item(itemID string) (model.Item, bool)
}

// MapDirectory is a Directory backed by a map.
type MapDirectory map[string]model.Item

// Item implements Directory.
func (m MapDirectory) Item(itemID string) (model.Item, bool) {
	it, ok := m[itemID]
	return it, ok
}

// Candidate is a container able to take the item in its current state.
type Candidate struct {
	ContainerID      string
	Fit              spaceindex.Fit
	FreeVolumeBefore int64
	WastedVolume     int64
	CrossZone        bool
}

// Outcome is the result of planning one item. Exactly one of Placement,
// Rearrangement or Reason is meaningful, depending on Status.
type Outcome struct {
	Status        Status
	Placement     *model.Placement
	Chosen        *Candidate
	Candidates    []Candidate
	Rearrangement *RearrangementPlan
	Reason        Reason
	Detail        string
}

// Option configures a PlacementPlanner.
type Option func(*PlacementPlanner)

// WithAccessPriorityThreshold sets the priority from which items prefer the access face.
func WithAccessPriorityThreshold(p int) Option {
	return func(pp *PlacementPlanner) {
		pp.accessThreshold = p
	}
}

// WithMaxMoves bounds rearrangement proposals.
func WithMaxMoves(n int) Option {
	return func(pp *PlacementPlanner) {
		if n > 0 {
			pp.maxMoves = n
		}
	}
}

// PlacementPlanner chooses a container, orientation and position for items.
type PlacementPlanner struct {
	registry        *spaceindex.Registry
	accessThreshold int
	maxMoves        int
	now             func() time.Time
}

// NewPlacementPlanner creates a planner over the given registry.
func NewPlacementPlanner(registry *spaceindex.Registry, opts ...Option) *PlacementPlanner {
	p := &PlacementPlanner{
		registry:        registry,
		accessThreshold: DefaultAccessPriorityThreshold,
		maxMoves:        DefaultMaxMoves,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PrefersAccess reports whether item should be placed near the access face.
func (p *PlacementPlanner) PrefersAccess(item model.Item) bool {
	return item.Priority >= p.accessThreshold
}

// Plan computes where item should go without changing any container.
func (p *PlacementPlanner) Plan(ctx context.Context, item model.Item, containers []model.Container, dir Directory) (Outcome, error) {
	if err := item.Validate(); err != nil {
		return Outcome{}, err
	}
	if dir == nil {
		dir = MapDirectory(nil)
	}
	if len(containers) == 0 {
		return Outcome{Status: StatusNoSolution, Reason: ReasonNoContainers, Detail: "no containers available"}, nil
	}

	ordered := orderByZone(containers, item.PreferredZone)
	snaps, err := p.snapshots(ctx, ordered)
	if err != nil {
		return Outcome{}, err
	}

	inZone, others := splitZone(ordered, item.PreferredZone)
	candidates := p.candidates(item, inZone, snaps, false)
	if len(candidates) == 0 {
		candidates = p.candidates(item, others, snaps, item.PreferredZone != "")
	}
	if len(candidates) > 0 {
		best := candidates[0]
		placement := p.placement(item.ItemID, best)
		return Outcome{Status: StatusPlaced, Placement: &placement, Chosen: &best, Candidates: candidates}, nil
	}

	if plan, ok := p.rearrange(item, ordered, snaps, dir); ok {
		log.Info().
			Str("item_id", item.ItemID).
			Str("container_id", plan.ContainerID).
			Int("moves", len(plan.Moves)).
			Msg("Rearrangement proposed")
		return Outcome{Status: StatusRearrangement, Rearrangement: plan}, nil
	}

	reason, detail := diagnose(item, ordered)
	return Outcome{Status: StatusNoSolution, Reason: reason, Detail: detail}, nil
}

// Place plans item and commits the best candidate. A candidate lost to a
// concurrent writer is skipped in favour of the next best one; the conflict is
// returned only when every candidate was lost.
func (p *PlacementPlanner) Place(ctx context.Context, item model.Item, containers []model.Container, dir Directory) (Outcome, error) {
	out, err := p.Plan(ctx, item, containers, dir)
	if err != nil || out.Status != StatusPlaced {
		return out, err
	}

	var lastErr error
	for i := range out.Candidates {
		c := out.Candidates[i]
		err := p.registry.Commit(ctx, c.ContainerID, item.ItemID, c.Fit.Box)
		if err == nil {
			placement := p.placement(item.ItemID, c)
			out.Placement, out.Chosen = &placement, &c
			return out, nil
		}
		if !cargoerr.Is(err, cargoerr.KindConcurrentModification) {
			return Outcome{}, err
		}
		log.Debug().Str("item_id", item.ItemID).Str("container_id", c.ContainerID).Msg("Lost placement race, trying next container")
		lastErr = err
	}
	return Outcome{}, lastErr
}

func (p *PlacementPlanner) placement(itemID string, c Candidate) model.Placement {
	return model.Placement{
		ItemID:      itemID,
		ContainerID: c.ContainerID,
		Position:    c.Fit.Box,
		PlacedAt:    p.now().UTC(),
	}
}

func (p *PlacementPlanner) snapshots(ctx context.Context, containers []model.Container) (map[string]*spaceindex.Index, error) {
	snaps := make(map[string]*spaceindex.Index, len(containers))
	for _, c := range containers {
		if err := p.registry.Register(c.ContainerID, c.Dims); err != nil {
			return nil, err
		}
		ix, err := p.registry.Snapshot(ctx, c.ContainerID)
		if err != nil {
			return nil, err
		}
		snaps[c.ContainerID] = ix
	}
	return snaps, nil
}

func (p *PlacementPlanner) candidates(item model.Item, containers []model.Container, snaps map[string]*spaceindex.Index, crossZone bool) []Candidate {
	prefer := p.PrefersAccess(item)
	out := make([]Candidate, 0, len(containers))
	for _, c := range containers {
		ix := snaps[c.ContainerID]
		fit, ok := ix.FindFit(item.Dims, prefer)
		if !ok {
			continue
		}
		free := ix.FreeVolume()
		out = append(out, Candidate{
			ContainerID:      c.ContainerID,
			Fit:              fit,
			FreeVolumeBefore: free,
			WastedVolume:     free - item.Volume(),
			CrossZone:        crossZone,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].WastedVolume != out[j].WastedVolume {
			return out[i].WastedVolume < out[j].WastedVolume
		}
		return out[i].ContainerID < out[j].ContainerID
	})
	return out
}

// orderByZone sorts containers with the preferred zone first, then by id.
func orderByZone(containers []model.Container, zone string) []model.Container {
	out := append([]model.Container(nil), containers...)
	sort.SliceStable(out, func(i, j int) bool {
		zi, zj := out[i].Zone == zone, out[j].Zone == zone
		if zi != zj {
			return zi
		}
		return out[i].ContainerID < out[j].ContainerID
	})
	return out
}

// splitZone partitions containers. With no preferred zone every container is in zone.
func splitZone(containers []model.Container, zone string) (inZone, others []model.Container) {
	for _, c := range containers {
		if zone == "" || c.Zone == zone {
			inZone = append(inZone, c)
		} else {
			others = append(others, c)
		}
	}
	return inZone, others
}

func canEverHold(c model.Container, item model.Item) bool {
	return geometry.Fits(item.Dims, geometry.Bounds(c.Dims))
}

func diagnose(item model.Item, containers []model.Container) (Reason, string) {
	zoneFits, otherFits := false, false
	for _, c := range containers {
		if !canEverHold(c, item) {
			continue
		}
		if item.PreferredZone == "" || c.Zone == item.PreferredZone {
			zoneFits = true
		} else {
			otherFits = true
		}
	}
	if !zoneFits && otherFits {
		return ReasonZoneMismatch, "no container in zone " + item.PreferredZone + " can hold the item and containers elsewhere are full"
	}
	if !zoneFits {
		return ReasonVolumeShortfall, "item " + item.Dims.String() + " is larger than every container"
	}
	return ReasonVolumeShortfall, "not enough contiguous free space, even after relocating lower-priority items"
}
