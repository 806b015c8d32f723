package repository

import (
	"context"

	"github.com/guttosm/cargo-service/internal/domain/model"
)

// ItemRepository stores items. Identifiers are unique; Create fails with
// InvalidRequest on a duplicate and lookups fail with NotFound.
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	Upsert(ctx context.Context, item *model.Item) error
	Get(ctx context.Context, itemID string) (*model.Item, error)
	List(ctx context.Context) ([]model.Item, error)
	FindByName(ctx context.Context, name string) ([]model.Item, error)
	UpsertUsage(ctx context.Context, itemID string, usageLimit int) error
	Delete(ctx context.Context, itemID string) error
}

// ContainerRepository stores containers.
type ContainerRepository interface {
	Create(ctx context.Context, c *model.Container) error
	Upsert(ctx context.Context, c *model.Container) error
	Get(ctx context.Context, containerID string) (*model.Container, error)
	List(ctx context.Context) ([]model.Container, error)
	Delete(ctx context.Context, containerID string) error
}

// PlacementRepository stores at most one placement per item. Insert replaces
// an existing placement of the same item.
type PlacementRepository interface {
	Insert(ctx context.Context, p *model.Placement) error
	Get(ctx context.Context, itemID string) (*model.Placement, error)
	Delete(ctx context.Context, itemID string) error
	ListByContainer(ctx context.Context, containerID string) ([]model.Placement, error)
	List(ctx context.Context) ([]model.Placement, error)
}

// LogRepository is the append-only action log.
type LogRepository interface {
	Create(ctx context.Context, entry *model.LogEntry) error
	CreateMany(ctx context.Context, entries []*model.LogEntry) error
	Query(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)
	Count(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

// Repositories groups the stores used by the services.
type Repositories struct {
	Items      ItemRepository
	Containers ContainerRepository
	Placements PlacementRepository
	Logs       LogRepository
}
