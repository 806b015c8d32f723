package service

import (
	"context"
	"time"

	"github.com/guttosm/cargo-service/internal/cargoerr"
	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/guttosm/cargo-service/internal/geometry"
	"github.com/guttosm/cargo-service/internal/logger"
	"github.com/guttosm/cargo-service/internal/metrics"
	"github.com/guttosm/cargo-service/internal/repository"
	"github.com/guttosm/cargo-service/internal/spaceindex"
	"github.com/guttosm/cargo-service/internal/transfer"
)

// ImportResult summarizes a bulk import.
type ImportResult struct {
	Imported int                 `json:"imported"`
	Errors   []transfer.RowError `json:"errors"`
}

// InventoryService manages containers and items.
type InventoryService interface {
	CreateContainer(ctx context.Context, c *model.Container) error
	GetContainer(ctx context.Context, containerID string) (*model.Container, error)
	ListContainers(ctx context.Context) ([]model.Container, error)
	DeleteContainer(ctx context.Context, containerID string) error

	CreateItem(ctx context.Context, item *model.Item) error
	GetItem(ctx context.Context, itemID string) (*model.Item, error)
	ListItems(ctx context.Context) ([]model.Item, error)
	DeleteItem(ctx context.Context, itemID string) error

	ImportItems(ctx context.Context, records []transfer.ItemRecord, rowErrors []transfer.RowError) ImportResult
	ImportContainers(ctx context.Context, records []transfer.ContainerRecord, rowErrors []transfer.RowError) ImportResult
}

// InventoryServiceImpl implements InventoryService.
type InventoryServiceImpl struct {
	repos  repository.Repositories
	space  *spaceKeeper
	events *ActionLog
	now    func() time.Time
}

// NewInventoryService creates an inventory service.
func NewInventoryService(repos repository.Repositories, registry *spaceindex.Registry, events *ActionLog) InventoryService {
	return &InventoryServiceImpl{
		repos:  repos,
		space:  newSpaceKeeper(repos, registry),
		events: events,
		now:    time.Now,
	}
}

func (s *InventoryServiceImpl) CreateContainer(ctx context.Context, c *model.Container) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.CreatedAt = s.now().UTC()
	if err := s.repos.Containers.Create(ctx, c); err != nil {
		return err
	}
	return s.space.ensure(ctx, *c)
}

func (s *InventoryServiceImpl) GetContainer(ctx context.Context, containerID string) (*model.Container, error) {
	return s.repos.Containers.Get(ctx, containerID)
}

func (s *InventoryServiceImpl) ListContainers(ctx context.Context) ([]model.Container, error) {
	return s.repos.Containers.List(ctx)
}

// DeleteContainer removes an empty container.
func (s *InventoryServiceImpl) DeleteContainer(ctx context.Context, containerID string) error {
	if _, err := s.repos.Containers.Get(ctx, containerID); err != nil {
		return err
	}
	placed, err := s.repos.Placements.ListByContainer(ctx, containerID)
	if err != nil {
		return err
	}
	if len(placed) > 0 {
		return cargoerr.Invalid("inventory.delete_container", "container %q still holds %d items", containerID, len(placed))
	}
	if s.space.registry.Has(containerID) {
		if err := s.space.registry.Unregister(ctx, containerID); err != nil && !cargoerr.Is(err, cargoerr.KindNotFound) {
			return err
		}
	}
	return s.repos.Containers.Delete(ctx, containerID)
}

func (s *InventoryServiceImpl) CreateItem(ctx context.Context, item *model.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	item.CreatedAt = s.now().UTC()
	return s.repos.Items.Create(ctx, item)
}

func (s *InventoryServiceImpl) GetItem(ctx context.Context, itemID string) (*model.Item, error) {
	return s.repos.Items.Get(ctx, itemID)
}

func (s *InventoryServiceImpl) ListItems(ctx context.Context) ([]model.Item, error) {
	return s.repos.Items.List(ctx)
}

// DeleteItem removes an item and frees its placement first.
func (s *InventoryServiceImpl) DeleteItem(ctx context.Context, itemID string) error {
	if _, err := s.repos.Items.Get(ctx, itemID); err != nil {
		return err
	}
	if _, err := s.space.unplace(ctx, itemID); err != nil {
		return err
	}
	return s.repos.Items.Delete(ctx, itemID)
}

// ImportItems upserts parsed items. Rows the store rejects are reported next
// to the rows the parser rejected.
func (s *InventoryServiceImpl) ImportItems(ctx context.Context, records []transfer.ItemRecord, rowErrors []transfer.RowError) ImportResult {
	res := ImportResult{Errors: append([]transfer.RowError{}, rowErrors...)}
	for _, rec := range records {
		it := rec.Item
		if err := s.upsertItem(ctx, &it); err != nil {
			res.Errors = append(res.Errors, transfer.RowError{Row: rec.Row, Message: err.Error()})
			continue
		}
		res.Imported++
	}
	s.recordImport(ctx, "items", res)
	return res
}

// ImportContainers creates parsed containers. Re-importing an identical
// container is accepted; changing the size of an existing one is not.
func (s *InventoryServiceImpl) ImportContainers(ctx context.Context, records []transfer.ContainerRecord, rowErrors []transfer.RowError) ImportResult {
	res := ImportResult{Errors: append([]transfer.RowError{}, rowErrors...)}
	for _, rec := range records {
		c := rec.Container
		if err := s.upsertContainer(ctx, &c); err != nil {
			res.Errors = append(res.Errors, transfer.RowError{Row: rec.Row, Message: err.Error()})
			continue
		}
		res.Imported++
	}
	s.recordImport(ctx, "containers", res)
	return res
}

func (s *InventoryServiceImpl) recordImport(ctx context.Context, entity string, res ImportResult) {
	metrics.RecordImport(entity, res.Imported, len(res.Errors))
	logger.Ctx(ctx).Info().
		Str("entity", entity).
		Int("imported", res.Imported).
		Int("rejected", len(res.Errors)).
		Msg("Import finished")
	s.events.Append(ctx, (&model.LogEntry{ActionType: model.ActionImport}).WithFields(map[string]interface{}{
		"entity":   entity,
		"imported": res.Imported,
		"rejected": len(res.Errors),
	}))
}

func (s *InventoryServiceImpl) upsertItem(ctx context.Context, item *model.Item) error {
	return upsertItem(ctx, s.repos, item, s.now())
}

func (s *InventoryServiceImpl) upsertContainer(ctx context.Context, c *model.Container) error {
	return upsertContainer(ctx, s.repos, s.space, c, s.now())
}

// upsertItem creates or replaces an item. An existing item keeps its remaining
// uses, which only the simulation spends. A placed item keeps its placement
// only if its new dimensions still match the placed box.
func upsertItem(ctx context.Context, repos repository.Repositories, item *model.Item, now time.Time) error {
	if err := item.Validate(); err != nil {
		return err
	}
	existing, err := repos.Items.Get(ctx, item.ItemID)
	switch {
	case cargoerr.Is(err, cargoerr.KindNotFound):
		item.CreatedAt = now.UTC()
	case err != nil:
		return err
	default:
		item.CreatedAt = existing.CreatedAt
		item.UsageLimit = existing.UsageLimit
		if existing.Dims != item.Dims {
			p, err := repos.Placements.Get(ctx, item.ItemID)
			if err != nil && !cargoerr.Is(err, cargoerr.KindNotFound) {
				return err
			}
			if p != nil && !geometry.IsOrientationOf(p.Position.Dims(), item.Dims) {
				return cargoerr.Invalid("inventory.upsert_item", "item %q is placed as %s and cannot be resized to %s", item.ItemID, p.Position.Dims(), item.Dims)
			}
		}
	}
	return repos.Items.Upsert(ctx, item)
}

// upsertContainer creates a container or accepts an identical existing one.
func upsertContainer(ctx context.Context, repos repository.Repositories, space *spaceKeeper, c *model.Container, now time.Time) error {
	if err := c.Validate(); err != nil {
		return err
	}
	existing, err := repos.Containers.Get(ctx, c.ContainerID)
	switch {
	case cargoerr.Is(err, cargoerr.KindNotFound):
		c.CreatedAt = now.UTC()
		if err := repos.Containers.Create(ctx, c); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		if existing.Dims != c.Dims || existing.Zone != c.Zone {
			return cargoerr.Invalid("inventory.upsert_container", "container %q already exists as %s in zone %q", c.ContainerID, existing.Dims, existing.Zone)
		}
		*c = *existing
	}
	return space.ensure(ctx, *c)
}
