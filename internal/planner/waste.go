package planner

import (
	"context"
	"math"
	"sort"

	"github.com/guttosm/cargo-service/internal/cargoerr"
	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/guttosm/cargo-service/internal/geometry"
	"github.com/guttosm/cargo-service/internal/spaceindex"
)

// WasteItem is an item flagged as waste.
type WasteItem struct {
	Item   model.Item
	Reason model.WasteReason
}

// IdentifyWaste returns the items that are waste on day, ordered by id.
func IdentifyWaste(items []model.Item, day model.Date) []WasteItem {
	out := make([]WasteItem, 0)
	for _, it := range items {
		if reason, ok := it.WasteReason(day); ok {
			out = append(out, WasteItem{Item: it, Reason: reason})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Item.ItemID < out[j].Item.ItemID })
	return out
}

// Return strategies.
const (
	StrategyKnapsack = "knapsack"
	StrategyGreedy   = "greedy"
)

const (
	// DefaultMassResolution is the mass granularity of the knapsack, in mass units.
	DefaultMassResolution = 0.1
	volumeBuckets         = 512
	maxKnapsackCells      = 1 << 23
)

// ManifestItem is an item admitted for return.
type ManifestItem struct {
	ItemID   string            `json:"itemId"`
	Name     string            `json:"name"`
	Reason   model.WasteReason `json:"reason,omitempty"`
	Mass     float64           `json:"mass"`
	Volume   int64             `json:"volume"`
	Priority int               `json:"priority"`
	Position geometry.Box      `json:"position"`
}

// RejectedItem is a waste item left on board.
type RejectedItem struct {
	ItemID string `json:"itemId"`
	Name   string `json:"name"`
	Reason Reason `json:"reason"`
}

// Manifest reconciles a return plan.
type Manifest struct {
	ContainerID   string         `json:"undockingContainerId"`
	ReturnItems   []ManifestItem `json:"returnItems"`
	RejectedItems []RejectedItem `json:"rejectedItems"`
	TotalVolume   int64          `json:"totalVolume"`
	TotalWeight   float64        `json:"totalWeight"`
	TotalValue    int            `json:"totalValue"`
}

// ReturnRequest describes a return planning problem. Occupied may carry the
// current state of the undocking container; nil means it is empty.
type ReturnRequest struct {
	Waste     []WasteItem
	Container model.Container
	Occupied  *spaceindex.Index
	MaxWeight float64
}

// ReturnPlan is the outcome of return planning. Nothing is moved.
type ReturnPlan struct {
	Selected   []model.Item
	Placements []model.Placement
	Manifest   Manifest
	Strategy   string
}

// ReturnOption configures a ReturnPlanner.
type ReturnOption func(*ReturnPlanner)

// WithMassResolution sets the knapsack mass granularity.
func WithMassResolution(res float64) ReturnOption {
	return func(r *ReturnPlanner) {
		if res > 0 {
			r.massResolution = res
		}
	}
}

// WithPlacementPlanner shares the access preference of a placement planner.
func WithPlacementPlanner(p *PlacementPlanner) ReturnOption {
	return func(r *ReturnPlanner) {
		r.placement = p
	}
}

// ReturnPlanner selects waste for an undocking container.
type ReturnPlanner struct {
	massResolution float64
	placement      *PlacementPlanner
}

// NewReturnPlanner creates a ReturnPlanner.
func NewReturnPlanner(opts ...ReturnOption) *ReturnPlanner {
	r := &ReturnPlanner{massResolution: DefaultMassResolution}
	for _, opt := range opts {
		opt(r)
	}
	if r.placement == nil {
		r.placement = NewPlacementPlanner(spaceindex.NewRegistry())
	}
	return r
}

// Plan picks the waste subset of highest total priority that fits both the
// weight budget and the container volume, then packs it. When the chosen
// subset cannot be packed because of shape, items are admitted greedily by
// priority per unit mass instead.
func (r *ReturnPlanner) Plan(_ context.Context, req ReturnRequest) (ReturnPlan, error) {
	if err := req.Container.Validate(); err != nil {
		return ReturnPlan{}, err
	}
	if req.MaxWeight < 0 || math.IsNaN(req.MaxWeight) {
		return ReturnPlan{}, cargoerr.Invalid("planner.return", "maxWeight must not be negative")
	}
	base := req.Occupied
	if base == nil {
		base = spaceindex.New(req.Container.Dims)
	}
	volCap := base.FreeVolume()

	waste := append([]WasteItem(nil), req.Waste...)
	sort.Slice(waste, func(i, j int) bool { return waste[i].Item.ItemID < waste[j].Item.ItemID })

	selected := r.selectKnapsack(waste, req.MaxWeight, volCap)
	strategy := StrategyKnapsack
	packing, ok := r.pack(base.Clone(), selected)
	if ok {
		rest := make([]WasteItem, 0, len(waste)-len(selected))
		chosen := make(map[string]bool, len(selected))
		for _, w := range selected {
			chosen[w.Item.ItemID] = true
		}
		for _, w := range waste {
			// zero-priority waste adds no value, so the knapsack never picks it
			if !chosen[w.Item.ItemID] && w.Item.Priority <= 0 {
				rest = append(rest, w)
			}
		}
		packing.admit(byDensity(rest), req.MaxWeight, volCap, r)
	} else {
		strategy = StrategyGreedy
		packing = newPacking(base.Clone())
		packing.admit(byDensity(waste), req.MaxWeight, volCap, r)
	}

	return packing.plan(req, waste, strategy), nil
}

func (r *ReturnPlanner) selectKnapsack(waste []WasteItem, maxWeight float64, volCap int64) []WasteItem {
	if len(waste) == 0 {
		return nil
	}
	volRes := math.Max(1, math.Ceil(float64(volCap)/volumeBuckets))
	volUnits := floorUnits(float64(volCap), volRes)

	// The mass unit depends on the waste alone, so a larger weight budget
	// never coarsens item masses.
	res := r.massResolution
	for (massCapacity(waste, math.Inf(1), res)+1)*(volUnits+1)*len(waste) > maxKnapsackCells {
		res *= 2
	}
	massCap := massCapacity(waste, maxWeight, res)

	items := make([]knapsackItem, len(waste))
	for i, w := range waste {
		items[i] = knapsackItem{
			value: w.Item.Priority,
			mass:  ceilUnits(w.Item.Mass, res),
			vol:   ceilUnits(float64(w.Item.Volume()), volRes),
		}
	}
	idx := solveKnapsack(items, massCap, volUnits)
	out := make([]WasteItem, 0, len(idx))
	for _, i := range idx {
		out = append(out, waste[i])
	}
	return out
}

// massCapacity is the weight budget in units, capped at the total waste mass
// since a larger budget cannot change the selection.
func massCapacity(waste []WasteItem, maxWeight, res float64) int {
	total := 0
	for _, w := range waste {
		total += ceilUnits(w.Item.Mass, res)
	}
	if maxWeight >= float64(total)*res {
		return total
	}
	return floorUnits(maxWeight, res)
}

type packing struct {
	ix         *spaceindex.Index
	admitted   []WasteItem
	placements []model.Placement
	mass       float64
	volume     int64
}

func newPacking(ix *spaceindex.Index) *packing {
	return &packing{ix: ix}
}

// pack places every item or reports failure. Larger items go first.
func (r *ReturnPlanner) pack(ix *spaceindex.Index, items []WasteItem) (*packing, bool) {
	ordered := append([]WasteItem(nil), items...)
	sort.SliceStable(ordered, func(i, j int) bool {
		vi, vj := ordered[i].Item.Volume(), ordered[j].Item.Volume()
		if vi != vj {
			return vi > vj
		}
		return ordered[i].Item.ItemID < ordered[j].Item.ItemID
	})
	p := newPacking(ix)
	for _, w := range ordered {
		if !p.tryPlace(w, r) {
			return nil, false
		}
	}
	return p, true
}

func (p *packing) tryPlace(w WasteItem, r *ReturnPlanner) bool {
	fit, ok := p.ix.FindFit(w.Item.Dims, r.placement.PrefersAccess(w.Item))
	if !ok {
		return false
	}
	if err := p.ix.Place(w.Item.ItemID, fit.Box); err != nil {
		return false
	}
	p.admitted = append(p.admitted, w)
	p.placements = append(p.placements, model.Placement{ItemID: w.Item.ItemID, Position: fit.Box})
	p.mass += w.Item.Mass
	p.volume += w.Item.Volume()
	return true
}

// admit adds items in order while weight, volume and geometry allow.
func (p *packing) admit(items []WasteItem, maxWeight float64, volCap int64, r *ReturnPlanner) {
	for _, w := range items {
		if p.mass+w.Item.Mass > maxWeight || p.volume+w.Item.Volume() > volCap {
			continue
		}
		p.tryPlace(w, r)
	}
}

func (p *packing) plan(req ReturnRequest, waste []WasteItem, strategy string) ReturnPlan {
	m := Manifest{
		ContainerID:   req.Container.ContainerID,
		ReturnItems:   make([]ManifestItem, 0, len(p.admitted)),
		RejectedItems: make([]RejectedItem, 0),
		TotalVolume:   p.volume,
		TotalWeight:   p.mass,
	}
	out := ReturnPlan{Strategy: strategy}
	admitted := make(map[string]bool, len(p.admitted))
	for i, w := range p.admitted {
		admitted[w.Item.ItemID] = true
		pl := p.placements[i]
		pl.ContainerID = req.Container.ContainerID
		out.Selected = append(out.Selected, w.Item)
		out.Placements = append(out.Placements, pl)
		m.TotalValue += w.Item.Priority
		m.ReturnItems = append(m.ReturnItems, ManifestItem{
			ItemID:   w.Item.ItemID,
			Name:     w.Item.Name,
			Reason:   w.Reason,
			Mass:     w.Item.Mass,
			Volume:   w.Item.Volume(),
			Priority: w.Item.Priority,
			Position: pl.Position,
		})
	}
	for _, w := range waste {
		if admitted[w.Item.ItemID] {
			continue
		}
		reason := ReasonVolumeShortfall
		if p.mass+w.Item.Mass > req.MaxWeight {
			reason = ReasonWeightShortfall
		}
		m.RejectedItems = append(m.RejectedItems, RejectedItem{ItemID: w.Item.ItemID, Name: w.Item.Name, Reason: reason})
	}
	out.Manifest = m
	return out
}

// byDensity orders items by priority per unit mass, massless items first.
func byDensity(items []WasteItem) []WasteItem {
	out := append([]WasteItem(nil), items...)
	density := func(it model.Item) float64 {
		if it.Mass <= 0 {
			return math.Inf(1)
		}
		return float64(it.Priority) / it.Mass
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := density(out[i].Item), density(out[j].Item)
		if di != dj {
			return di > dj
		}
		if out[i].Item.Priority != out[j].Item.Priority {
			return out[i].Item.Priority > out[j].Item.Priority
		}
		return out[i].Item.ItemID < out[j].Item.ItemID
	})
	return out
}
