package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/guttosm/cargo-service/internal/cargoerr"
	"github.com/guttosm/cargo-service/internal/domain/model"
)

// table is a mutex-guarded map of values keyed by identifier. Values are
// copied in and out so callers never share state with the store.
type table[T any] struct {
	mu   sync.RWMutex
	rows map[string]T
	what string
}

func newTable[T any](what string) *table[T] {
	return &table[T]{rows: make(map[string]T), what: what}
}

func (t *table[T]) create(op, id string, v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; ok {
		return cargoerr.Invalid(op, "%s %q already exists", t.what, id)
	}
	t.rows[id] = v
	return nil
}

func (t *table[T]) put(id string, v T) {
	t.mu.Lock()
	t.rows[id] = v
	t.mu.Unlock()
}

func (t *table[T]) get(op, id string) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[id]
	if !ok {
		return nil, cargoerr.NotFound(op, "%s %q not found", t.what, id)
	}
	return &v, nil
}

func (t *table[T]) update(op, id string, fn func(v *T)) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.rows[id]
	if !ok {
		return cargoerr.NotFound(op, "%s %q not found", t.what, id)
	}
	fn(&v)
	t.rows[id] = v
	return nil
}

func (t *table[T]) delete(op, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return cargoerr.NotFound(op, "%s %q not found", t.what, id)
	}
	delete(t.rows, id)
	return nil
}

// list returns the rows accepted by keep, ordered by id.
func (t *table[T]) list(keep func(T) bool) []T {
	t.mu.RLock()
	ids := make([]string, 0, len(t.rows))
	for id, v := range t.rows {
		if keep == nil || keep(v) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	out := make([]T, len(ids))
	for i, id := range ids {
		out[i] = t.rows[id]
	}
	t.mu.RUnlock()
	return out
}

// MemoryItems is an in-memory ItemRepository.
type MemoryItems struct{ t *table[model.Item] }

// NewMemoryItems creates an empty item store.
func NewMemoryItems() *MemoryItems { return &MemoryItems{t: newTable[model.Item]("item")} }

func (m *MemoryItems) Create(_ context.Context, item *model.Item) error {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	return m.t.create("items.create", item.ItemID, cloneItem(*item))
}

func (m *MemoryItems) Upsert(_ context.Context, item *model.Item) error {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	m.t.put(item.ItemID, cloneItem(*item))
	return nil
}

func (m *MemoryItems) Get(_ context.Context, itemID string) (*model.Item, error) {
	it, err := m.t.get("items.get", itemID)
	if err != nil {
		return nil, err
	}
	c := cloneItem(*it)
	return &c, nil
}

func (m *MemoryItems) List(context.Context) ([]model.Item, error) {
	items := m.t.list(nil)
	for i := range items {
		items[i] = cloneItem(items[i])
	}
	return items, nil
}

func (m *MemoryItems) FindByName(_ context.Context, name string) ([]model.Item, error) {
	items := m.t.list(func(it model.Item) bool { return it.Name == name })
	for i := range items {
		items[i] = cloneItem(items[i])
	}
	return items, nil
}

func (m *MemoryItems) UpsertUsage(_ context.Context, itemID string, usageLimit int) error {
	if usageLimit < 0 {
		return cargoerr.Invalid("items.upsert_usage", "usageLimit must not be negative")
	}
	return m.t.update("items.upsert_usage", itemID, func(it *model.Item) { it.UsageLimit = usageLimit })
}

func (m *MemoryItems) Delete(_ context.Context, itemID string) error {
	return m.t.delete("items.delete", itemID)
}

func cloneItem(it model.Item) model.Item {
	if it.ExpiryDate != nil {
		d := *it.ExpiryDate
		it.ExpiryDate = &d
	}
	return it
}

// MemoryContainers is an in-memory ContainerRepository.
type MemoryContainers struct{ t *table[model.Container] }

// NewMemoryContainers creates an empty container store.
func NewMemoryContainers() *MemoryContainers {
	return &MemoryContainers{t: newTable[model.Container]("container")}
}

func (m *MemoryContainers) Create(_ context.Context, c *model.Container) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	return m.t.create("containers.create", c.ContainerID, *c)
}

func (m *MemoryContainers) Upsert(_ context.Context, c *model.Container) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	m.t.put(c.ContainerID, *c)
	return nil
}

func (m *MemoryContainers) Get(_ context.Context, containerID string) (*model.Container, error) {
	return m.t.get("containers.get", containerID)
}

func (m *MemoryContainers) List(context.Context) ([]model.Container, error) {
	return m.t.list(nil), nil
}

func (m *MemoryContainers) Delete(_ context.Context, containerID string) error {
	return m.t.delete("containers.delete", containerID)
}

// MemoryPlacements is an in-memory PlacementRepository.
type MemoryPlacements struct{ t *table[model.Placement] }

// NewMemoryPlacements creates an empty placement store.
func NewMemoryPlacements() *MemoryPlacements {
	return &MemoryPlacements{t: newTable[model.Placement]("placement of item")}
}

func (m *MemoryPlacements) Insert(_ context.Context, p *model.Placement) error {
	if p.PlacedAt.IsZero() {
		p.PlacedAt = time.Now().UTC()
	}
	m.t.put(p.ItemID, *p)
	return nil
}

func (m *MemoryPlacements) Get(_ context.Context, itemID string) (*model.Placement, error) {
	return m.t.get("placements.get", itemID)
}

func (m *MemoryPlacements) Delete(_ context.Context, itemID string) error {
	return m.t.delete("placements.delete", itemID)
}

func (m *MemoryPlacements) ListByContainer(_ context.Context, containerID string) ([]model.Placement, error) {
	return m.t.list(func(p model.Placement) bool { return p.ContainerID == containerID }), nil
}

func (m *MemoryPlacements) List(context.Context) ([]model.Placement, error) {
	return m.t.list(nil), nil
}

// MemoryLogs is an in-memory LogRepository.
type MemoryLogs struct {
	mu      sync.RWMutex
	entries []model.LogEntry
}

// NewMemoryLogs creates an empty log.
func NewMemoryLogs() *MemoryLogs { return &MemoryLogs{} }

func (m *MemoryLogs) Create(_ context.Context, entry *model.LogEntry) error {
	stamp(entry)
	m.mu.Lock()
	m.entries = append(m.entries, *entry)
	m.mu.Unlock()
	return nil
}

func (m *MemoryLogs) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	for _, e := range entries {
		if err := m.Create(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (m *MemoryLogs) matching(opts model.LogQueryOptions) []model.LogEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.LogEntry, 0)
	for _, e := range m.entries {
		if opts.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Query returns matching entries, newest first.
func (m *MemoryLogs) Query(_ context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	out := m.matching(opts)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	if opts.Skip > 0 {
		if opts.Skip >= len(out) {
			return []model.LogEntry{}, nil
		}
		out = out[opts.Skip:]
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *MemoryLogs) Count(_ context.Context, opts model.LogQueryOptions) (int64, error) {
	return int64(len(m.matching(opts))), nil
}

// NewMemoryRepositories returns in-memory stores for every entity.
func NewMemoryRepositories() Repositories {
	return Repositories{
		Items:      NewMemoryItems(),
		Containers: NewMemoryContainers(),
		Placements: NewMemoryPlacements(),
		Logs:       NewMemoryLogs(),
	}
}
