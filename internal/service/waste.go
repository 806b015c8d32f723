package service

import (
	"context"
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

// WasteEntry is a waste item and where it sits.
type WasteEntry struct {
	ItemID      string            `json:"itemId"`
	Name        string            `json:"name"`
	Reason      model.WasteReason `json:"reason"`
	ContainerID string            `json:"containerId,omitempty"`
	Position    *geometry.Box     `json:"position,omitempty"`
}

// ReturnPlanRequest asks which waste should leave in an undocking container.
type ReturnPlanRequest struct {
	ContainerID   string
	UndockingDate *model.Date
	MaxWeight     float64
}

// ReturnStep moves one waste item into the undocking container.
type ReturnStep struct {
	Step          int          `json:"step"`
	ItemID        string       `json:"itemId"`
	ItemName      string       `json:"itemName"`
	FromContainer string       `json:"fromContainer,omitempty"`
	ToContainer   string       `json:"toContainer"`
	ToPosition    geometry.Box `json:"toPosition"`
}

// ReturnManifest is the manifest of an undocking.
type ReturnManifest struct {
	planner.Manifest
	UndockingDate model.Date `json:"undockingDate"`
}

// ReturnPlanResult is a return proposal. Nothing is moved.
type ReturnPlanResult struct {
	ReturnPlan     []ReturnStep   `json:"returnPlan"`
	RetrievalSteps []planner.Step `json:"retrievalSteps"`
	Manifest       ReturnManifest `json:"returnManifest"`
	Strategy       string         `json:"strategy"`
}

// UndockingResult reports what left the station.
type UndockingResult struct {
	ItemsRemoved int      `json:"itemsRemoved"`
	ItemIDs      []string `json:"itemIds"`
}

// WasteService identifies waste and plans its return.
type WasteService interface {
	Identify(ctx context.Context) ([]WasteEntry, error)
	PlanReturn(ctx context.Context, req ReturnPlanRequest) (ReturnPlanResult, error)
	CompleteUndocking(ctx context.Context, containerID string, at time.Time) (UndockingResult, error)
}

// WasteServiceImpl implements WasteService.
type WasteServiceImpl struct {
	repos    repository.Repositories
	space    *spaceKeeper
	registry *spaceindex.Registry
	returns  *planner.ReturnPlanner
	clock    *simulation.Clock
	events   *ActionLog
}

// NewWasteService creates a waste service.
func NewWasteService(
	repos repository.Repositories,
	registry *spaceindex.Registry,
	returns *planner.ReturnPlanner,
	clock *simulation.Clock,
	events *ActionLog,
) WasteService {
	return &WasteServiceImpl{
		repos:    repos,
		space:    newSpaceKeeper(repos, registry),
		registry: registry,
		returns:  returns,
		clock:    clock,
		events:   events,
	}
}

// Identify lists the items that are waste on the simulated date.
func (s *WasteServiceImpl) Identify(ctx context.Context) ([]WasteEntry, error) {
	items, err := s.repos.Items.List(ctx)
	if err != nil {
		return nil, err
	}
	waste := planner.IdentifyWaste(items, s.clock.Today())
	out := make([]WasteEntry, 0, len(waste))
	for _, w := range waste {
		e := WasteEntry{ItemID: w.Item.ItemID, Name: w.Item.Name, Reason: w.Reason}
		p, err := s.repos.Placements.Get(ctx, w.Item.ItemID)
		switch {
		case err == nil:
			pos := p.Position
			e.ContainerID, e.Position = p.ContainerID, &pos
		case !cargoerr.Is(err, cargoerr.KindNotFound):
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// PlanReturn selects the waste to load into the undocking container. Waste
// is evaluated on the undocking date, or on the simulated date when none is
// given. Waste already inside the undocking container leaves with it and is
// not planned again.
func (s *WasteServiceImpl) PlanReturn(ctx context.Context, req ReturnPlanRequest) (_ ReturnPlanResult, err error) {
	ctx, span := observability.StartSpan(ctx, "waste.return_plan",
		attribute.String("cargo.container_id", req.ContainerID),
		attribute.Float64("cargo.max_weight", req.MaxWeight),
	)
	defer func() { observability.EndSpan(span, err) }()

	if req.ContainerID == "" {
		return ReturnPlanResult{}, cargoerr.Invalid("waste.return_plan", "undockingContainerId is required")
	}
	today := s.clock.Today()
	day := today
	if req.UndockingDate != nil {
		if req.UndockingDate.Before(today) {
			return ReturnPlanResult{}, cargoerr.Invalid("waste.return_plan", "undocking date %s precedes current date %s", req.UndockingDate, today)
		}
		day = *req.UndockingDate
	}

	c, err := s.space.container(ctx, req.ContainerID)
	if err != nil {
		return ReturnPlanResult{}, err
	}
	if _, err := s.space.ensureAll(ctx); err != nil {
		return ReturnPlanResult{}, err
	}
	items, err := s.repos.Items.List(ctx)
	if err != nil {
		return ReturnPlanResult{}, err
	}
	snap, err := s.registry.Snapshot(ctx, c.ContainerID)
	if err != nil {
		return ReturnPlanResult{}, err
	}

	dir := make(planner.MapDirectory, len(items))
	for _, it := range items {
		dir[it.ItemID] = it
	}
	candidates := make([]planner.WasteItem, 0)
	for _, w := range planner.IdentifyWaste(items, day) {
		if _, inside := snap.Lookup(w.Item.ItemID); !inside {
			candidates = append(candidates, w)
		}
	}

	start := time.Now()
	plan, err := s.returns.Plan(ctx, planner.ReturnRequest{
		Waste:     candidates,
		Container: *c,
		Occupied:  snap,
		MaxWeight: req.MaxWeight,
	})
	metrics.ObservePlanning("return_plan", time.Since(start))
	if err != nil {
		return ReturnPlanResult{}, err
	}

	res := ReturnPlanResult{
		ReturnPlan:     make([]ReturnStep, 0, len(plan.Placements)),
		RetrievalSteps: make([]planner.Step, 0),
		Manifest:       ReturnManifest{Manifest: plan.Manifest, UndockingDate: day},
		Strategy:       plan.Strategy,
	}
	removed := make(map[string]bool)
	for i, target := range plan.Placements {
		it := plan.Selected[i]
		step := ReturnStep{
			Step:        i + 1,
			ItemID:      it.ItemID,
			ItemName:    it.Name,
			ToContainer: c.ContainerID,
			ToPosition:  target.Position,
		}
		current, err := s.repos.Placements.Get(ctx, it.ItemID)
		switch {
		case err == nil:
			step.FromContainer = current.ContainerID
			if err := s.appendRetrieval(ctx, &res, *current, dir, removed); err != nil {
				return ReturnPlanResult{}, err
			}
		case !cargoerr.Is(err, cargoerr.KindNotFound):
			return ReturnPlanResult{}, err
		}
		res.ReturnPlan = append(res.ReturnPlan, step)
	}

	logger.Ctx(ctx).Info().
		Str("container_id", c.ContainerID).
		Str("strategy", plan.Strategy).
		Int("selected", len(plan.Selected)).
		Int("rejected", len(plan.Manifest.RejectedItems)).
		Float64("total_weight", plan.Manifest.TotalWeight).
		Msg("Return plan computed")
	return res, nil
}

// appendRetrieval adds the steps needed to take target out, skipping items an
// earlier step already removed.
func (s *WasteServiceImpl) appendRetrieval(ctx context.Context, res *ReturnPlanResult, target model.Placement, dir planner.MapDirectory, removed map[string]bool) error {
	if removed[target.ItemID] {
		return nil
	}
	placements, err := s.repos.Placements.ListByContainer(ctx, target.ContainerID)
	if err != nil {
		return err
	}
	remaining := make([]model.Placement, 0, len(placements))
	for _, p := range placements {
		if !removed[p.ItemID] {
			remaining = append(remaining, p)
		}
	}
	for _, st := range planner.RetrievalSteps(planner.PlanRetrieval(target, remaining, dir), dir) {
		removed[st.ItemID] = true
		st.Step = len(res.RetrievalSteps) + 1
		res.RetrievalSteps = append(res.RetrievalSteps, st)
	}
	return nil
}

// CompleteUndocking removes every item in the undocking container from the
// station.
func (s *WasteServiceImpl) CompleteUndocking(ctx context.Context, containerID string, at time.Time) (UndockingResult, error) {
	if containerID == "" {
		return UndockingResult{}, cargoerr.Invalid("waste.undock", "undockingContainerId is required")
	}
	if _, err := s.space.container(ctx, containerID); err != nil {
		return UndockingResult{}, err
	}
	placements, err := s.repos.Placements.ListByContainer(ctx, containerID)
	if err != nil {
		return UndockingResult{}, err
	}
	if at.IsZero() {
		at = time.Now()
	}

	res := UndockingResult{ItemIDs: make([]string, 0, len(placements))}
	for _, p := range placements {
		if _, err := s.space.unplace(ctx, p.ItemID); err != nil {
			return res, err
		}
		if err := s.repos.Items.Delete(ctx, p.ItemID); err != nil && !cargoerr.Is(err, cargoerr.KindNotFound) {
			return res, err
		}
		res.ItemIDs = append(res.ItemIDs, p.ItemID)
		res.ItemsRemoved++
		s.events.Append(ctx, (&model.LogEntry{
			ActionType:  model.ActionDisposal,
			ItemID:      p.ItemID,
			ContainerID: containerID,
		}).WithField("timestamp", at.UTC().Format(time.RFC3339)))
	}

	logger.Ctx(ctx).Info().
		Str("container_id", containerID).
		Int("items_removed", res.ItemsRemoved).
		Msg("Undocking completed")
	return res, nil
}
