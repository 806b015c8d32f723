package service

import (
	"context"

	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/guttosm/cargo-service/internal/repository"
	"github.com/guttosm/cargo-service/internal/service/cache"
)

// CachedItems serves item lookups by id from a cache in front of an item
// repository. Every write invalidates the cached entry.
type CachedItems struct {
	repository.ItemRepository
	cache cache.Cache[model.Item]
}

// NewCachedItems wraps repo with c.
func NewCachedItems(repo repository.ItemRepository, c cache.Cache[model.Item]) *CachedItems {
	return &CachedItems{ItemRepository: repo, cache: c}
}

// Cache returns the underlying cache.
func (r *CachedItems) Cache() cache.Cache[model.Item] { return r.cache }

// Get returns a copy of the cached item or loads it from the repository.
func (r *CachedItems) Get(ctx context.Context, itemID string) (*model.Item, error) {
	if it, ok := r.cache.Get(itemID); ok {
		return cloneItem(it), nil
	}
	it, err := r.ItemRepository.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	r.cache.Set(itemID, *cloneItem(*it))
	return it, nil
}

func (r *CachedItems) Create(ctx context.Context, item *model.Item) error {
	defer r.cache.Invalidate(item.ItemID)
	return r.ItemRepository.Create(ctx, item)
}

func (r *CachedItems) Upsert(ctx context.Context, item *model.Item) error {
	defer r.cache.Invalidate(item.ItemID)
	return r.ItemRepository.Upsert(ctx, item)
}

func (r *CachedItems) UpsertUsage(ctx context.Context, itemID string, usageLimit int) error {
	defer r.cache.Invalidate(itemID)
	return r.ItemRepository.UpsertUsage(ctx, itemID, usageLimit)
}

func (r *CachedItems) Delete(ctx context.Context, itemID string) error {
	defer r.cache.Invalidate(itemID)
	return r.ItemRepository.Delete(ctx, itemID)
}

func cloneItem(it model.Item) *model.Item {
	if it.ExpiryDate != nil {
		d := *it.ExpiryDate
		it.ExpiryDate = &d
	}
	return &it
}
