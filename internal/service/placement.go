package service

import (
	"context"
	"sort"
	"time"

	"github.com/guttosm/cargo-service/internal/cargoerr"
	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/guttosm/cargo-service/internal/geometry"
	"github.com/guttosm/cargo-service/internal/logger"
	"github.com/guttosm/cargo-service/internal/metrics"
	"github.com/guttosm/cargo-service/internal/observability"
	"github.com/guttosm/cargo-service/internal/planner"
	"github.com/guttosm/cargo-service/internal/repository"
	"github.com/guttosm/cargo-service/internal/simulation"
	"github.com/guttosm/cargo-service/internal/spaceindex"
	"go.opentelemetry.io/otel/attribute"
)

// Rearrangement step actions.
const (
	StepMove  = "move"
	StepPlace = "place"
)

// PlacementRequest asks for placements of new or updated items. Containers
// listed are created first.
type PlacementRequest struct {
	Items      []model.Item
	Containers []model.Container
}

// RearrangementStep is one instruction of a proposed rearrangement.
type RearrangementStep struct {
	Step          int           `json:"step"`
	Action        string        `json:"action"`
	ItemID        string        `json:"itemId"`
	FromContainer string        `json:"fromContainer,omitempty"`
	FromPosition  *geometry.Box `json:"fromPosition,omitempty"`
	ToContainer   string        `json:"toContainer"`
	ToPosition    geometry.Box  `json:"toPosition"`
}

// UnplacedItem is an item the batch could not place.
type UnplacedItem struct {
	ItemID string         `json:"itemId"`
	Status planner.Status `json:"status"`
	Reason planner.Reason `json:"reason,omitempty"`
	Detail string         `json:"detail,omitempty"`
}

// PlacementResult is the outcome of a placement batch.
type PlacementResult struct {
	Placements     []model.Placement   `json:"placements"`
	Rearrangements []RearrangementStep `json:"rearrangements"`
	Unplaced       []UnplacedItem      `json:"unplaced"`
}

// ManualPlacement puts an item at a caller-chosen position. At defaults to
// the current time.
type ManualPlacement struct {
	ItemID      string
	ContainerID string
	Position    geometry.Box
	At          time.Time
}

// SearchQuery looks an item up by id or, failing that, by name.
type SearchQuery struct {
	ItemID   string
	ItemName string
}

// SearchResult locates an item and tells how to get it out.
type SearchResult struct {
	Found          bool             `json:"found"`
	Item           *model.Item      `json:"item,omitempty"`
	Placement      *model.Placement `json:"placement,omitempty"`
	Zone           string           `json:"zone,omitempty"`
	RetrievalSteps []planner.Step   `json:"retrievalSteps"`
}

// RetrieveResult reports the uses left after a retrieval.
type RetrieveResult struct {
	ItemID        string `json:"itemId"`
	RemainingUses int    `json:"remainingUses"`
	Depleted      bool   `json:"depleted"`
}

// FreeSpace describes the free space of a container.
type FreeSpace struct {
	ContainerID string         `json:"containerId"`
	Zone        string         `json:"zone"`
	Dims        geometry.Dims  `json:"dimensions"`
	TotalVolume int64          `json:"totalVolume"`
	FreeVolume  int64          `json:"freeVolume"`
	Items       int            `json:"items"`
	FreeBoxes   []geometry.Box `json:"freeBoxes"`
}

// PlacementService places, finds and retrieves cargo.
type PlacementService interface {
	PlaceItems(ctx context.Context, req PlacementRequest) (PlacementResult, error)
	PlaceManually(ctx context.Context, req ManualPlacement) (*model.Placement, error)
	Search(ctx context.Context, q SearchQuery) (SearchResult, error)
	Retrieve(ctx context.Context, itemID string, at time.Time) (RetrieveResult, error)
	Arrangement(ctx context.Context) ([]model.Placement, error)
	FreeSpace(ctx context.Context, containerID string) (FreeSpace, error)
	Rebuild(ctx context.Context, containerID string) (FreeSpace, error)
	Hydrate(ctx context.Context) error
}

// PlacementServiceImpl implements PlacementService.
type PlacementServiceImpl struct {
	repos    repository.Repositories
	space    *spaceKeeper
	registry *spaceindex.Registry
	planner  *planner.PlacementPlanner
	engine   *simulation.Engine
	events   *ActionLog
	now      func() time.Time
}

// NewPlacementService creates a placement service.
func NewPlacementService(
	repos repository.Repositories,
	registry *spaceindex.Registry,
	placementPlanner *planner.PlacementPlanner,
	engine *simulation.Engine,
	events *ActionLog,
) PlacementService {
	return &PlacementServiceImpl{
		repos:    repos,
		space:    newSpaceKeeper(repos, registry),
		registry: registry,
		planner:  placementPlanner,
		engine:   engine,
		events:   events,
		now:      time.Now,
	}
}

// PlaceItems stores the request's containers and items, then places each
// item in descending priority order. Items that already have a placement keep
// it, so a batch that failed half way can be resent.
func (s *PlacementServiceImpl) PlaceItems(ctx context.Context, req PlacementRequest) (res PlacementResult, err error) {
	ctx, span := observability.StartSpan(ctx, "placement.batch",
		attribute.Int("cargo.items", len(req.Items)),
		attribute.Int("cargo.containers", len(req.Containers)),
	)
	defer func() { observability.EndSpan(span, err) }()

	if len(req.Items) == 0 {
		return PlacementResult{}, cargoerr.Invalid("placement.batch", "at least one item is required")
	}
	for i := range req.Containers {
		if err := upsertContainer(ctx, s.repos, s.space, &req.Containers[i], s.now()); err != nil {
			return PlacementResult{}, err
		}
	}
	for i := range req.Items {
		if err := upsertItem(ctx, s.repos, &req.Items[i], s.now()); err != nil {
			return PlacementResult{}, err
		}
	}

	containers, err := s.space.ensureAll(ctx)
	if err != nil {
		return PlacementResult{}, err
	}
	items, err := s.space.directory(ctx)
	if err != nil {
		return PlacementResult{}, err
	}
	dir := planner.MapDirectory(items)

	ordered := append([]model.Item(nil), req.Items...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority > ordered[j].Priority
		}
		return ordered[i].ItemID < ordered[j].ItemID
	})

	res = PlacementResult{
		Placements:     make([]model.Placement, 0, len(ordered)),
		Rearrangements: make([]RearrangementStep, 0),
		Unplaced:       make([]UnplacedItem, 0),
	}
	for _, item := range ordered {
		existing, err := s.repos.Placements.Get(ctx, item.ItemID)
		if err == nil {
			res.Placements = append(res.Placements, *existing)
			continue
		}
		if !cargoerr.Is(err, cargoerr.KindNotFound) {
			return PlacementResult{}, err
		}

		out, err := s.placeOne(ctx, item, containers, dir)
		if err != nil {
			return PlacementResult{}, err
		}
		metrics.RecordPlacementOutcome(string(out.Status), string(out.Reason))

		switch out.Status {
		case planner.StatusPlaced:
			res.Placements = append(res.Placements, *out.Placement)
		case planner.StatusRearrangement:
			res.Rearrangements = appendRearrangement(res.Rearrangements, item.ItemID, out.Rearrangement)
			res.Unplaced = append(res.Unplaced, UnplacedItem{ItemID: item.ItemID, Status: out.Status})
			s.events.Append(ctx, (&model.LogEntry{
				ActionType:  model.ActionRearrangement,
				ItemID:      item.ItemID,
				ContainerID: out.Rearrangement.ContainerID,
			}).WithField("moves", len(out.Rearrangement.Moves)))
		default:
			res.Unplaced = append(res.Unplaced, UnplacedItem{ItemID: item.ItemID, Status: out.Status, Reason: out.Reason, Detail: out.Detail})
		}
	}

	logger.Ctx(ctx).Info().
		Int("placed", len(res.Placements)).
		Int("unplaced", len(res.Unplaced)).
		Msg("Placement batch finished")
	return res, nil
}

// placeOne plans and commits one item, replanning once after losing a race.
func (s *PlacementServiceImpl) placeOne(ctx context.Context, item model.Item, containers []model.Container, dir planner.Directory) (planner.Outcome, error) {
	var (
		out planner.Outcome
		err error
	)
	for attempt := 0; attempt < 2; attempt++ {
		start := time.Now()
		out, err = s.planner.Place(ctx, item, containers, dir)
		metrics.ObservePlanning("placement", time.Since(start))
		if !cargoerr.Is(err, cargoerr.KindConcurrentModification) {
			break
		}
		metrics.PlacementConflicts.Inc()
		logger.Ctx(ctx).Warn().Str("item_id", item.ItemID).Int("attempt", attempt+1).Msg("Placement lost to a concurrent writer")
	}
	if err != nil || out.Status != planner.StatusPlaced {
		return out, err
	}

	if err := s.repos.Placements.Insert(ctx, out.Placement); err != nil {
		if _, rerr := s.registry.Release(ctx, out.Placement.ContainerID, item.ItemID); rerr != nil {
			logger.Ctx(ctx).Error().Err(rerr).Str("item_id", item.ItemID).Msg("Failed to roll back placement")
		}
		return planner.Outcome{}, err
	}
	s.logPlacement(ctx, *out.Placement, out.Chosen != nil && out.Chosen.CrossZone, false)
	return out, nil
}

func appendRearrangement(steps []RearrangementStep, itemID string, plan *planner.RearrangementPlan) []RearrangementStep {
	for _, m := range plan.Moves {
		from := m.From
		steps = append(steps, RearrangementStep{
			Step:          len(steps) + 1,
			Action:        StepMove,
			ItemID:        m.ItemID,
			FromContainer: m.FromContainer,
			FromPosition:  &from,
			ToContainer:   m.ToContainer,
			ToPosition:    m.To,
		})
	}
	return append(steps, RearrangementStep{
		Step:        len(steps) + 1,
		Action:      StepPlace,
		ItemID:      itemID,
		ToContainer: plan.Placement.ContainerID,
		ToPosition:  plan.Placement.Position,
	})
}

func (s *PlacementServiceImpl) logPlacement(ctx context.Context, p model.Placement, crossZone, manual bool) {
	logger.Ctx(ctx).Info().
		Str("item_id", p.ItemID).
		Str("container_id", p.ContainerID).
		Str("position", p.Position.String()).
		Bool("cross_zone", crossZone).
		Bool("manual", manual).
		Msg("Placement committed")
	s.events.Append(ctx, (&model.LogEntry{
		ActionType:  model.ActionPlacement,
		ItemID:      p.ItemID,
		ContainerID: p.ContainerID,
	}).WithFields(map[string]interface{}{
		"position":  p.Position.String(),
		"crossZone": crossZone,
		"manual":    manual,
	}))
}

// PlaceManually puts an item at the given position, replacing any existing
// placement of the item. An overlap with another item is a conflict.
func (s *PlacementServiceImpl) PlaceManually(ctx context.Context, req ManualPlacement) (_ *model.Placement, err error) {
	ctx, span := observability.StartSpan(ctx, "placement.manual",
		attribute.String("cargo.item_id", req.ItemID),
		attribute.String("cargo.container_id", req.ContainerID),
	)
	defer func() { observability.EndSpan(span, err) }()

	item, err := s.repos.Items.Get(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	c, err := s.space.container(ctx, req.ContainerID)
	if err != nil {
		return nil, err
	}
	if !geometry.IsOrientationOf(req.Position.Dims(), item.Dims) {
		return nil, cargoerr.Invalid("placement.manual", "position %s does not match item %q dimensions %s in any orientation", req.Position, item.ItemID, item.Dims)
	}
	if !geometry.Contains(geometry.Bounds(c.Dims), req.Position) {
		return nil, cargoerr.Invalid("placement.manual", "position %s exceeds container %q bounds %s", req.Position, c.ContainerID, c.Dims)
	}

	prev, err := s.repos.Placements.Get(ctx, item.ItemID)
	if err != nil && !cargoerr.Is(err, cargoerr.KindNotFound) {
		return nil, err
	}
	if prev != nil && prev.ContainerID != c.ContainerID {
		if _, err := s.space.container(ctx, prev.ContainerID); err != nil {
			return nil, err
		}
	}

	if prev != nil && prev.ContainerID == c.ContainerID {
		err = s.registry.Update(ctx, c.ContainerID, func(ix *spaceindex.Index) error {
			old, rmErr := ix.Remove(item.ItemID)
			if err := ix.Check(item.ItemID, req.Position); err != nil {
				if rmErr == nil {
					_ = ix.Place(item.ItemID, old)
				}
				return overlapAsConflict(err)
			}
			return ix.Place(item.ItemID, req.Position)
		})
	} else {
		err = s.registry.Commit(ctx, c.ContainerID, item.ItemID, req.Position)
		if err == nil && prev != nil {
			if _, rerr := s.registry.Release(ctx, prev.ContainerID, item.ItemID); rerr != nil && !cargoerr.Is(rerr, cargoerr.KindNotFound) {
				logger.Ctx(ctx).Error().Err(rerr).Str("item_id", item.ItemID).Str("container_id", prev.ContainerID).Msg("Failed to free previous placement")
			}
		}
	}
	if err != nil {
		if cargoerr.Is(err, cargoerr.KindConcurrentModification) {
			metrics.PlacementConflicts.Inc()
		}
		return nil, err
	}

	at := req.At
	if at.IsZero() {
		at = s.now()
	}
	p := &model.Placement{ItemID: item.ItemID, ContainerID: c.ContainerID, Position: req.Position, PlacedAt: at.UTC()}
	if err := s.repos.Placements.Insert(ctx, p); err != nil {
		s.undoManual(ctx, *p, prev)
		return nil, err
	}
	s.logPlacement(ctx, *p, item.PreferredZone != "" && item.PreferredZone != c.Zone, true)
	return p, nil
}

// undoManual takes p out of the space index and puts prev back where it was.
func (s *PlacementServiceImpl) undoManual(ctx context.Context, p model.Placement, prev *model.Placement) {
	ctx = context.WithoutCancel(ctx)
	var err error
	switch {
	case prev != nil && prev.ContainerID == p.ContainerID:
		err = s.registry.Update(ctx, p.ContainerID, func(ix *spaceindex.Index) error {
			if _, err := ix.Remove(p.ItemID); err != nil {
				return err
			}
			return ix.Place(p.ItemID, prev.Position)
		})
	default:
		_, err = s.registry.Release(ctx, p.ContainerID, p.ItemID)
		if err == nil && prev != nil {
			err = s.registry.Commit(ctx, prev.ContainerID, prev.ItemID, prev.Position)
		}
	}
	if err != nil {
		logger.Ctx(ctx).Error().Err(err).Str("item_id", p.ItemID).Str("container_id", p.ContainerID).Msg("Failed to roll back manual placement")
	}
}

func overlapAsConflict(err error) error {
	if cargoerr.Is(err, cargoerr.KindGeometry) {
		return cargoerr.Conflict("placement.manual", "%v", err)
	}
	return err
}

// Search finds an item and the steps needed to take it out. A missing item is
// reported as not found in the result, not as an error.
func (s *PlacementServiceImpl) Search(ctx context.Context, q SearchQuery) (SearchResult, error) {
	if q.ItemID == "" && q.ItemName == "" {
		return SearchResult{}, cargoerr.Invalid("placement.search", "itemId or itemName is required")
	}
	notFound := SearchResult{Found: false, RetrievalSteps: []planner.Step{}}

	var item *model.Item
	if q.ItemID != "" {
		it, err := s.repos.Items.Get(ctx, q.ItemID)
		if cargoerr.Is(err, cargoerr.KindNotFound) {
			return notFound, nil
		}
		if err != nil {
			return SearchResult{}, err
		}
		item = it
	} else {
		matches, err := s.repos.Items.FindByName(ctx, q.ItemName)
		if err != nil {
			return SearchResult{}, err
		}
		if len(matches) == 0 {
			return notFound, nil
		}
		item = &matches[0]
	}

	res := SearchResult{Found: true, Item: item, RetrievalSteps: []planner.Step{}}
	p, err := s.repos.Placements.Get(ctx, item.ItemID)
	if cargoerr.Is(err, cargoerr.KindNotFound) {
		return res, nil
	}
	if err != nil {
		return SearchResult{}, err
	}
	res.Placement = p

	if c, err := s.repos.Containers.Get(ctx, p.ContainerID); err == nil {
		res.Zone = c.Zone
	} else if !cargoerr.Is(err, cargoerr.KindNotFound) {
		return SearchResult{}, err
	}

	steps, err := s.retrievalSteps(ctx, *p)
	if err != nil {
		return SearchResult{}, err
	}
	res.RetrievalSteps = steps
	return res, nil
}

// retrievalSteps plans the removal chain of a placed item.
func (s *PlacementServiceImpl) retrievalSteps(ctx context.Context, target model.Placement) ([]planner.Step, error) {
	start := time.Now()
	defer func() { metrics.ObservePlanning("retrieval", time.Since(start)) }()

	placements, err := s.repos.Placements.ListByContainer(ctx, target.ContainerID)
	if err != nil {
		return nil, err
	}
	dir := make(planner.MapDirectory, len(placements))
	for _, p := range placements {
		it, err := s.repos.Items.Get(ctx, p.ItemID)
		if cargoerr.Is(err, cargoerr.KindNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		dir[it.ItemID] = *it
	}
	chain := planner.PlanRetrieval(target, placements, dir)
	return planner.RetrievalSteps(chain, dir), nil
}

// Retrieve consumes one use of an item. The placement stays; the item is put
// back where it was.
func (s *PlacementServiceImpl) Retrieve(ctx context.Context, itemID string, at time.Time) (RetrieveResult, error) {
	if itemID == "" {
		return RetrieveResult{}, cargoerr.Invalid("placement.retrieve", "itemId is required")
	}
	remaining, depleted, err := s.engine.Use(ctx, itemID, 1)
	if err != nil {
		return RetrieveResult{}, err
	}
	if at.IsZero() {
		at = s.now()
	}

	logger.Ctx(ctx).Info().
		Str("item_id", itemID).
		Int("remaining_uses", remaining).
		Bool("depleted", depleted).
		Msg("Item retrieved")
	s.events.Append(ctx, (&model.LogEntry{
		ActionType: model.ActionRetrieval,
		ItemID:     itemID,
	}).WithFields(map[string]interface{}{
		"timestamp":     at.UTC().Format(time.RFC3339),
		"remainingUses": remaining,
	}))
	return RetrieveResult{ItemID: itemID, RemainingUses: remaining, Depleted: depleted}, nil
}

func (s *PlacementServiceImpl) Arrangement(ctx context.Context) ([]model.Placement, error) {
	return s.repos.Placements.List(ctx)
}

// FreeSpace reports the free boxes of a container.
func (s *PlacementServiceImpl) FreeSpace(ctx context.Context, containerID string) (FreeSpace, error) {
	c, err := s.space.container(ctx, containerID)
	if err != nil {
		return FreeSpace{}, err
	}
	snap, err := s.registry.Snapshot(ctx, containerID)
	if err != nil {
		return FreeSpace{}, err
	}
	return FreeSpace{
		ContainerID: c.ContainerID,
		Zone:        c.Zone,
		Dims:        c.Dims,
		TotalVolume: c.Volume(),
		FreeVolume:  snap.FreeVolume(),
		Items:       snap.Len(),
		FreeBoxes:   snap.FreeBoxes(),
	}, nil
}

// Rebuild recomputes a container's free space from its occupied boxes.
func (s *PlacementServiceImpl) Rebuild(ctx context.Context, containerID string) (FreeSpace, error) {
	if _, err := s.space.container(ctx, containerID); err != nil {
		return FreeSpace{}, err
	}
	if err := s.registry.Rebuild(ctx, containerID); err != nil {
		return FreeSpace{}, err
	}
	fs, err := s.FreeSpace(ctx, containerID)
	if err != nil {
		return FreeSpace{}, err
	}
	logger.Ctx(ctx).Info().
		Str("container_id", containerID).
		Int("free_boxes", len(fs.FreeBoxes)).
		Msg("Free space rebuilt")
	return fs, nil
}

// Hydrate loads every stored container and its placements into the registry.
func (s *PlacementServiceImpl) Hydrate(ctx context.Context) error {
	containers, err := s.space.ensureAll(ctx)
	if err != nil {
		return err
	}
	logger.Ctx(ctx).Info().Int("containers", len(containers)).Msg("Space index hydrated")
	return nil
}
