package service

import (
	"context"
	"sort"

	"github.com/guttosm/cargo-service/internal/cargoerr"
	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/guttosm/cargo-service/internal/metrics"
	"github.com/guttosm/cargo-service/internal/observability"
	"github.com/guttosm/cargo-service/internal/repository"
	"github.com/guttosm/cargo-service/internal/simulation"
	"go.opentelemetry.io/otel/attribute"
)

// ItemUse names an item to use once per simulated day, by id or by name.
type ItemUse struct {
	ItemID string
	Name   string
}

// SimulationRequest advances the clock by Days or to To.
type SimulationRequest struct {
	Days  *int
	To    *model.Date
	Usage []ItemUse
}

// SimulationService advances simulated time.
type SimulationService interface {
	Advance(ctx context.Context, req SimulationRequest) (simulation.Summary, error)
	Today() model.Date
}

// SimulationServiceImpl implements SimulationService.
type SimulationServiceImpl struct {
	engine *simulation.Engine
	items  repository.ItemRepository
	events *ActionLog
}

// NewSimulationService creates a simulation service.
func NewSimulationService(engine *simulation.Engine, items repository.ItemRepository, events *ActionLog) SimulationService {
	return &SimulationServiceImpl{engine: engine, items: items, events: events}
}

func (s *SimulationServiceImpl) Today() model.Date { return s.engine.Clock().Today() }

// Advance resolves the named items and advances the engine. An item listed
// twice is used twice per day.
func (s *SimulationServiceImpl) Advance(ctx context.Context, req SimulationRequest) (_ simulation.Summary, err error) {
	ctx, span := observability.StartSpan(ctx, "simulation.advance", attribute.Int("cargo.usage_entries", len(req.Usage)))
	defer func() { observability.EndSpan(span, err) }()

	usage, err := s.resolveUsage(ctx, req.Usage)
	if err != nil {
		return simulation.Summary{}, err
	}
	summary, err := s.engine.Advance(ctx, simulation.Request{Days: req.Days, To: req.To, Usage: usage})
	if err != nil {
		return simulation.Summary{}, err
	}
	if summary.Days == 0 {
		return summary, nil
	}

	metrics.RecordSimulation(summary.Days, summary.To.Time)
	s.events.Append(ctx, (&model.LogEntry{ActionType: model.ActionSimulation}).WithFields(map[string]interface{}{
		"from":          summary.From.String(),
		"to":            summary.To.String(),
		"days":          summary.Days,
		"itemsUsed":     len(summary.ItemsUsed),
		"itemsExpired":  len(summary.ItemsExpired),
		"itemsDepleted": len(summary.ItemsDepleted),
	}))
	return summary, nil
}

func (s *SimulationServiceImpl) resolveUsage(ctx context.Context, uses []ItemUse) (map[string]int, error) {
	usage := make(map[string]int, len(uses))
	for _, u := range uses {
		switch {
		case u.ItemID != "":
			usage[u.ItemID]++
		case u.Name != "":
			matches, err := s.items.FindByName(ctx, u.Name)
			if err != nil {
				return nil, err
			}
			if len(matches) == 0 {
				return nil, cargoerr.NotFound("simulation.advance", "item named %q", u.Name)
			}
			sort.Slice(matches, func(i, j int) bool { return matches[i].ItemID < matches[j].ItemID })
			usage[matches[0].ItemID]++
		default:
			return nil, cargoerr.Invalid("simulation.advance", "each used item needs an itemId or a name")
		}
	}
	return usage, nil
}
