package repository

import (
	"context"

	"github.com/guttosm/cargo-service/internal/circuitbreaker"
	"github.com/guttosm/cargo-service/internal/domain/model"
)

// ItemsWithCircuitBreaker guards an ItemRepository.
type ItemsWithCircuitBreaker struct {
	repo ItemRepository
	cb   *circuitbreaker.CircuitBreaker
}

// NewItemsWithCircuitBreaker wraps repo.
func NewItemsWithCircuitBreaker(repo ItemRepository, cb *circuitbreaker.CircuitBreaker) *ItemsWithCircuitBreaker {
	return &ItemsWithCircuitBreaker{repo: repo, cb: cb}
}

func (r *ItemsWithCircuitBreaker) Create(ctx context.Context, item *model.Item) error {
	return r.cb.Execute(ctx, func(ctx context.Context) error { return r.repo.Create(ctx, item) })
}

func (r *ItemsWithCircuitBreaker) Upsert(ctx context.Context, item *model.Item) error {
	return r.cb.Execute(ctx, func(ctx context.Context) error { return r.repo.Upsert(ctx, item) })
}

func (r *ItemsWithCircuitBreaker) Get(ctx context.Context, itemID string) (*model.Item, error) {
	return circuitbreaker.Call(ctx, r.cb, func(ctx context.Context) (*model.Item, error) { return r.repo.Get(ctx, itemID) })
}

func (r *ItemsWithCircuitBreaker) List(ctx context.Context) ([]model.Item, error) {
	return circuitbreaker.Call(ctx, r.cb, r.repo.List)
}

func (r *ItemsWithCircuitBreaker) FindByName(ctx context.Context, name string) ([]model.Item, error) {
	return circuitbreaker.Call(ctx, r.cb, func(ctx context.Context) ([]model.Item, error) { return r.repo.FindByName(ctx, name) })
}

func (r *ItemsWithCircuitBreaker) UpsertUsage(ctx context.Context, itemID string, usageLimit int) error {
	return r.cb.Execute(ctx, func(ctx context.Context) error { return r.repo.UpsertUsage(ctx, itemID, usageLimit) })
}

func (r *ItemsWithCircuitBreaker) Delete(ctx context.Context, itemID string) error {
	return r.cb.Execute(ctx, func(ctx context.Context) error { return r.repo.Delete(ctx, itemID) })
}

// CircuitBreaker returns the breaker for health reporting.
func (r *ItemsWithCircuitBreaker) CircuitBreaker() *circuitbreaker.CircuitBreaker { return r.cb }

// ContainersWithCircuitBreaker guards a ContainerRepository.
type ContainersWithCircuitBreaker struct {
	repo ContainerRepository
	cb   *circuitbreaker.CircuitBreaker
}

// NewContainersWithCircuitBreaker wraps repo.
func NewContainersWithCircuitBreaker(repo ContainerRepository, cb *circuitbreaker.CircuitBreaker) *ContainersWithCircuitBreaker {
	return &ContainersWithCircuitBreaker{repo: repo, cb: cb}
}

func (r *ContainersWithCircuitBreaker) Create(ctx context.Context, c *model.Container) error {
	return r.cb.Execute(ctx, func(ctx context.Context) error { return r.repo.Create(ctx, c) })
}

func (r *ContainersWithCircuitBreaker) Upsert(ctx context.Context, c *model.Container) error {
	return r.cb.Execute(ctx, func(ctx context.Context) error { return r.repo.Upsert(ctx, c) })
}

func (r *ContainersWithCircuitBreaker) Get(ctx context.Context, containerID string) (*model.Container, error) {
	return circuitbreaker.Call(ctx, r.cb, func(ctx context.Context) (*model.Container, error) { return r.repo.Get(ctx, containerID) })
}

func (r *ContainersWithCircuitBreaker) List(ctx context.Context) ([]model.Container, error) {
	return circuitbreaker.Call(ctx, r.cb, r.repo.List)
}

func (r *ContainersWithCircuitBreaker) Delete(ctx context.Context, containerID string) error {
	return r.cb.Execute(ctx, func(ctx context.Context) error { return r.repo.Delete(ctx, containerID) })
}

// CircuitBreaker returns the breaker for health reporting.
func (r *ContainersWithCircuitBreaker) CircuitBreaker() *circuitbreaker.CircuitBreaker { return r.cb }

// PlacementsWithCircuitBreaker guards a PlacementRepository.
type PlacementsWithCircuitBreaker struct {
	repo PlacementRepository
	cb   *circuitbreaker.CircuitBreaker
}

// NewPlacementsWithCircuitBreaker wraps repo.
func NewPlacementsWithCircuitBreaker(repo PlacementRepository, cb *circuitbreaker.CircuitBreaker) *PlacementsWithCircuitBreaker {
	return &PlacementsWithCircuitBreaker{repo: repo, cb: cb}
}

func (r *PlacementsWithCircuitBreaker) Insert(ctx context.Context, p *model.Placement) error {
	return r.cb.Execute(ctx, func(ctx context.Context) error { return r.repo.Insert(ctx, p) })
}

func (r *PlacementsWithCircuitBreaker) Get(ctx context.Context, itemID string) (*model.Placement, error) {
	return circuitbreaker.Call(ctx, r.cb, func(ctx context.Context) (*model.Placement, error) { return r.repo.Get(ctx, itemID) })
}

func (r *PlacementsWithCircuitBreaker) Delete(ctx context.Context, itemID string) error {
	return r.cb.Execute(ctx, func(ctx context.Context) error { return r.repo.Delete(ctx, itemID) })
}

func (r *PlacementsWithCircuitBreaker) ListByContainer(ctx context.Context, containerID string) ([]model.Placement, error) {
	return circuitbreaker.Call(ctx, r.cb, func(ctx context.Context) ([]model.Placement, error) {
		return r.repo.ListByContainer(ctx, containerID)
	})
}

func (r *PlacementsWithCircuitBreaker) List(ctx context.Context) ([]model.Placement, error) {
	return circuitbreaker.Call(ctx, r.cb, r.repo.List)
}

// CircuitBreaker returns the breaker for health reporting.
func (r *PlacementsWithCircuitBreaker) CircuitBreaker() *circuitbreaker.CircuitBreaker { return r.cb }

// LogsWithCircuitBreaker guards a LogRepository.
type LogsWithCircuitBreaker struct {
	repo LogRepository
	cb   *circuitbreaker.CircuitBreaker
}

// NewLogsWithCircuitBreaker wraps repo.
func NewLogsWithCircuitBreaker(repo LogRepository, cb *circuitbreaker.CircuitBreaker) *LogsWithCircuitBreaker {
	return &LogsWithCircuitBreaker{repo: repo, cb: cb}
}

func (r *LogsWithCircuitBreaker) Create(ctx context.Context, entry *model.LogEntry) error {
	return r.cb.Execute(ctx, func(ctx context.Context) error { return r.repo.Create(ctx, entry) })
}

func (r *LogsWithCircuitBreaker) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	return r.cb.Execute(ctx, func(ctx context.Context) error { return r.repo.CreateMany(ctx, entries) })
}

func (r *LogsWithCircuitBreaker) Query(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	return circuitbreaker.Call(ctx, r.cb, func(ctx context.Context) ([]model.LogEntry, error) { return r.repo.Query(ctx, opts) })
}

func (r *LogsWithCircuitBreaker) Count(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return circuitbreaker.Call(ctx, r.cb, func(ctx context.Context) (int64, error) { return r.repo.Count(ctx, opts) })
}

// CircuitBreaker returns the breaker for health reporting.
func (r *LogsWithCircuitBreaker) CircuitBreaker() *circuitbreaker.CircuitBreaker { return r.cb }

// NewMongoRepositories builds the MongoDB stores, each behind its own breaker.
// configure may adjust the default breaker settings; it may be nil.
func NewMongoRepositories(db *MongoDB, configure func(*circuitbreaker.Config)) (Repositories, []*circuitbreaker.CircuitBreaker) {
	breaker := func(name string) *circuitbreaker.CircuitBreaker {
		cfg := circuitbreaker.DefaultConfig(name)
		if configure != nil {
			configure(&cfg)
		}
		return circuitbreaker.New(cfg)
	}
	items := NewItemsWithCircuitBreaker(NewItemsRepository(db), breaker("mongodb-items"))
	containers := NewContainersWithCircuitBreaker(NewContainersRepository(db), breaker("mongodb-containers"))
	placements := NewPlacementsWithCircuitBreaker(NewPlacementsRepository(db), breaker("mongodb-placements"))
	logs := NewLogsWithCircuitBreaker(NewLogsRepository(db), breaker("mongodb-logs"))

	repos := Repositories{Items: items, Containers: containers, Placements: placements, Logs: logs}
	return repos, []*circuitbreaker.CircuitBreaker{items.cb, containers.cb, placements.cb, logs.cb}
}
