package service

import (
	"context"
	"sync"

	"github.com/guttosm/cargo-service/internal/cargoerr"
	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/guttosm/cargo-service/internal/logger"
	"github.com/guttosm/cargo-service/internal/repository"
	"github.com/guttosm/cargo-service/internal/spaceindex"
)

// spaceKeeper keeps the space index registry in step with the container and
// placement stores. A container's index is built from its stored placements
// the first time the container is seen.
type spaceKeeper struct {
	repos    repository.Repositories
	registry *spaceindex.Registry
	mu       sync.Mutex
}

func newSpaceKeeper(repos repository.Repositories, registry *spaceindex.Registry) *spaceKeeper {
	return &spaceKeeper{repos: repos, registry: registry}
}

// ensure registers c and loads its placements if the registry does not know it.
func (k *spaceKeeper) ensure(ctx context.Context, c model.Container) error {
	if k.registry.Has(c.ContainerID) {
		return nil
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.registry.Has(c.ContainerID) {
		return nil
	}

	placements, err := k.repos.Placements.ListByContainer(ctx, c.ContainerID)
	if err != nil {
		return err
	}
	if err := k.registry.Register(c.ContainerID, c.Dims); err != nil {
		return err
	}
	return k.registry.Update(ctx, c.ContainerID, func(ix *spaceindex.Index) error {
		for _, p := range placements {
			if err := ix.Place(p.ItemID, p.Position); err != nil {
				logger.Ctx(ctx).Error().
					Err(err).
					Str("item_id", p.ItemID).
					Str("container_id", c.ContainerID).
					Msg("Stored placement rejected by space index")
			}
		}
		return nil
	})
}

// ensureAll registers every stored container.
func (k *spaceKeeper) ensureAll(ctx context.Context) ([]model.Container, error) {
	containers, err := k.repos.Containers.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range containers {
		if err := k.ensure(ctx, c); err != nil {
			return nil, err
		}
	}
	return containers, nil
}

// container loads a container and makes sure its index is registered.
func (k *spaceKeeper) container(ctx context.Context, containerID string) (*model.Container, error) {
	c, err := k.repos.Containers.Get(ctx, containerID)
	if err != nil {
		return nil, err
	}
	if err := k.ensure(ctx, *c); err != nil {
		return nil, err
	}
	return c, nil
}

// unplace removes the item's placement from the index and the store. An item
// without a placement is not an error.
func (k *spaceKeeper) unplace(ctx context.Context, itemID string) (*model.Placement, error) {
	p, err := k.repos.Placements.Get(ctx, itemID)
	if cargoerr.Is(err, cargoerr.KindNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if _, err := k.container(ctx, p.ContainerID); err != nil && !cargoerr.Is(err, cargoerr.KindNotFound) {
		return nil, err
	}
	if k.registry.Has(p.ContainerID) {
		if _, err := k.registry.Release(ctx, p.ContainerID, itemID); err != nil && !cargoerr.Is(err, cargoerr.KindNotFound) {
			return nil, err
		}
	}
	if err := k.repos.Placements.Delete(ctx, itemID); err != nil && !cargoerr.Is(err, cargoerr.KindNotFound) {
		return nil, err
	}
	return p, nil
}

// directory resolves every stored item by id.
func (k *spaceKeeper) directory(ctx context.Context) (map[string]model.Item, error) {
	items, err := k.repos.Items.List(ctx)
	if err != nil {
		return nil, err
	}
	dir := make(map[string]model.Item, len(items))
	for _, it := range items {
		dir[it.ItemID] = it
	}
	return dir, nil
}
