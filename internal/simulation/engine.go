package simulation

import (
	"context"
	"sort"
	"sync"

	"github.com/guttosm/cargo-service/internal/cargoerr"
	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/rs/zerolog/log"
)

// ItemStore is the part of the entity repository the engine needs.
type ItemStore interface {
	List(ctx context.Context) ([]model.Item, error)
	Get(ctx context.Context, itemID string) (*model.Item, error)
	UpsertUsage(ctx context.Context, itemID string, usageLimit int) error
}

// Request asks the engine to advance. Exactly one of Days and To must be set.
// Usage maps item ids to uses per simulated day.
type Request struct {
	Days  *int
	To    *model.Date
	Usage map[string]int
}

// ItemUsage reports the remaining uses of an item used during the advance.
type ItemUsage struct {
	ItemID        string `json:"itemId"`
	Name          string `json:"name"`
	RemainingUses int    `json:"remainingUses"`
}

// ItemRef names an item.
type ItemRef struct {
	ItemID string `json:"itemId"`
	Name   string `json:"name"`
}

// Summary lists the transitions that happened during one advance.
type Summary struct {
	From          model.Date  `json:"from"`
	To            model.Date  `json:"newDate"`
	Days          int         `json:"days"`
	ItemsUsed     []ItemUsage `json:"itemsUsed"`
	ItemsExpired  []ItemRef   `json:"itemsExpired"`
	ItemsDepleted []ItemRef   `json:"itemsDepletedToday"`
}

// Engine advances the clock. Advances and usage events are serialized so that
// no decrement is lost or applied twice.
type Engine struct {
	mu    sync.Mutex
	clock *Clock
	store ItemStore
}

// NewEngine creates an engine over clock and store.
func NewEngine(clock *Clock, store ItemStore) *Engine {
	return &Engine{clock: clock, store: store}
}

// Clock returns the engine's clock.
func (e *Engine) Clock() *Clock { return e.clock }

// Advance moves the clock forward one day at a time. Each day applies the
// requested usage, clamping at zero, then records items that expired or ran
// out that day.
func (e *Engine) Advance(ctx context.Context, req Request) (Summary, error) {
	if (req.Days == nil) == (req.To == nil) {
		return Summary{}, cargoerr.Invalid("simulation.advance", "exactly one of days or target date is required")
	}
	if req.Days != nil && *req.Days < 0 {
		return Summary{}, cargoerr.Invalid("simulation.advance", "days must not be negative")
	}
	for id, n := range req.Usage {
		if n < 0 {
			return Summary{}, cargoerr.Invalid("simulation.advance", "usage for item %q must not be negative", id)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	from := e.clock.Today()
	target := from
	if req.Days != nil {
		target = from.AddDays(*req.Days)
	} else {
		target = model.NewDate(req.To.Time)
		if target.Before(from) {
			return Summary{}, cargoerr.Invalid("simulation.advance", "target date %s precedes current date %s", target, from)
		}
	}

	summary := Summary{
		From:          from,
		To:            target,
		Days:          from.DaysUntil(target),
		ItemsUsed:     []ItemUsage{},
		ItemsExpired:  []ItemRef{},
		ItemsDepleted: []ItemRef{},
	}
	if summary.Days == 0 {
		return summary, nil
	}

	items, err := e.store.List(ctx)
	if err != nil {
		return Summary{}, cargoerr.Internal("simulation.advance", err)
	}
	state := make(map[string]*model.Item, len(items))
	original := make(map[string]int, len(items))
	ids := make([]string, 0, len(items))
	for i := range items {
		it := items[i]
		state[it.ItemID] = &it
		original[it.ItemID] = it.UsageLimit
		ids = append(ids, it.ItemID)
	}
	sort.Strings(ids)

	usageIDs := make([]string, 0, len(req.Usage))
	for id, n := range req.Usage {
		if _, ok := state[id]; !ok {
			return Summary{}, cargoerr.NotFound("simulation.advance", "item %q", id)
		}
		if n > 0 {
			usageIDs = append(usageIDs, id)
		}
	}
	sort.Strings(usageIDs)

	remaining := make(map[string]int, len(usageIDs))
	for day := 1; day <= summary.Days; day++ {
		date := from.AddDays(day)
		yesterday := date.AddDays(-1)

		for _, id := range usageIDs {
			it := state[id]
			before := it.UsageLimit
			it.UsageLimit = max(0, before-req.Usage[id])
			remaining[id] = it.UsageLimit
			if before > 0 && it.UsageLimit == 0 {
				summary.ItemsDepleted = append(summary.ItemsDepleted, ItemRef{ItemID: id, Name: it.Name})
			}
		}
		for _, id := range ids {
			it := state[id]
			if it.Expired(date) && !it.Expired(yesterday) {
				summary.ItemsExpired = append(summary.ItemsExpired, ItemRef{ItemID: id, Name: it.Name})
			}
		}
	}

	written := make([]string, 0, len(usageIDs))
	for _, id := range usageIDs {
		summary.ItemsUsed = append(summary.ItemsUsed, ItemUsage{ItemID: id, Name: state[id].Name, RemainingUses: remaining[id]})
		if remaining[id] == original[id] {
			continue
		}
		if err := e.store.UpsertUsage(ctx, id, remaining[id]); err != nil {
			e.restoreUsage(ctx, written, original)
			return Summary{}, cargoerr.Internal("simulation.advance", err)
		}
		written = append(written, id)
	}

	e.clock.set(target)
	log.Info().
		Str("from", from.String()).
		Str("to", target.String()).
		Int("items_used", len(summary.ItemsUsed)).
		Int("items_expired", len(summary.ItemsExpired)).
		Int("items_depleted", len(summary.ItemsDepleted)).
		Msg("Simulation advanced")
	return summary, nil
}

// restoreUsage puts back the uses of items already written by a failed
// advance, so that a retry applies the day once. It runs even if ctx is done.
func (e *Engine) restoreUsage(ctx context.Context, written []string, original map[string]int) {
	ctx = context.WithoutCancel(ctx)
	for i := len(written) - 1; i >= 0; i-- {
		id := written[i]
		if err := e.store.UpsertUsage(ctx, id, original[id]); err != nil {
			log.Error().Err(err).Str("item_id", id).Int("usage_limit", original[id]).
				Msg("Failed to restore usage after aborted advance")
		}
	}
}

// Use consumes count uses of an item, clamping at zero, and returns the
// remaining uses and whether this call depleted it.
func (e *Engine) Use(ctx context.Context, itemID string, count int) (int, bool, error) {
	if count < 0 {
		return 0, false, cargoerr.Invalid("simulation.use", "count must not be negative")
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	it, err := e.store.Get(ctx, itemID)
	if err != nil {
		return 0, false, err
	}
	if it == nil {
		return 0, false, cargoerr.NotFound("simulation.use", "item %q", itemID)
	}
	remaining := max(0, it.UsageLimit-count)
	if remaining != it.UsageLimit {
		if err := e.store.UpsertUsage(ctx, itemID, remaining); err != nil {
			return 0, false, cargoerr.Internal("simulation.use", err)
		}
	}
	return remaining, it.UsageLimit > 0 && remaining == 0, nil
}
