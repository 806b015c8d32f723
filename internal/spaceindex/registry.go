package spaceindex

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/guttosm/cargo-service/internal/cargoerr"
	"github.com/guttosm/cargo-service/internal/geometry"
)

// DefaultLockTimeout bounds lock acquisition when the caller's context has no deadline.
const DefaultLockTimeout = 2 * time.Second

// LockObserver is notified after every lock acquisition attempt.
type LockObserver func(containerID string, waited time.Duration, err error)

// Option configures a Registry.
type Option func(*Registry)

// WithLockTimeout sets the fallback lock bound.
func WithLockTimeout(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.lockTimeout = d
		}
	}
}

// WithLockObserver installs a hook used for metrics.
func WithLockObserver(fn LockObserver) Option {
	return func(r *Registry) {
		r.observer = fn
	}
}

type slot struct {
	sem   chan struct{}
	index *Index
}

// Registry owns the space index of every container and serializes mutations per
// container. Different containers never contend.
type Registry struct {
	mu          sync.RWMutex
	slots       map[string]*slot
	lockTimeout time.Duration
	observer    LockObserver
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		slots:       make(map[string]*slot),
		lockTimeout: DefaultLockTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a container. Registering an existing id is a no-op.
func (r *Registry) Register(containerID string, d geometry.Dims) error {
	if !d.Valid() {
		return cargoerr.Invalid("registry.register", "container %q has invalid dimensions %s", containerID, d)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.slots[containerID]; ok {
		return nil
	}
	r.slots[containerID] = &slot{sem: make(chan struct{}, 1), index: New(d)}
	return nil
}

// Unregister drops an empty container.
func (r *Registry) Unregister(ctx context.Context, containerID string) error {
	err := r.Update(ctx, containerID, func(ix *Index) error {
		if ix.Len() > 0 {
			return cargoerr.Invalid("registry.unregister", "container %q still holds %d items", containerID, ix.Len())
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.mu.Lock()
	delete(r.slots, containerID)
	r.mu.Unlock()
	return nil
}

// Has reports whether the container is registered.
func (r *Registry) Has(containerID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.slots[containerID]
	return ok
}

// ContainerIDs returns the registered ids in ascending order.
func (r *Registry) ContainerIDs() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.slots))
	for id := range r.slots {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

func (r *Registry) slot(op, containerID string) (*slot, error) {
	r.mu.RLock()
	s, ok := r.slots[containerID]
	r.mu.RUnlock()
	if !ok {
		return nil, cargoerr.NotFound(op, "container %q", containerID)
	}
	return s, nil
}

func (r *Registry) acquire(ctx context.Context, containerID string, s *slot) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.lockTimeout)
		defer cancel()
	}

	start := time.Now()
	var err error
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		err = cargoerr.Timeout("registry.lock", "container %q lock not acquired: %v", containerID, ctx.Err())
	}
	if r.observer != nil {
		r.observer(containerID, time.Since(start), err)
	}
	return err
}

func release(s *slot) { <-s.sem }

// Update runs fn with exclusive access to the container's index.
func (r *Registry) Update(ctx context.Context, containerID string, fn func(ix *Index) error) error {
	s, err := r.slot("registry.update", containerID)
	if err != nil {
		return err
	}
	if err := r.acquire(ctx, containerID, s); err != nil {
		return err
	}
	defer release(s)
	return fn(s.index)
}

// Snapshot returns a private copy of the container's index.
func (r *Registry) Snapshot(ctx context.Context, containerID string) (*Index, error) {
	var snap *Index
	err := r.Update(ctx, containerID, func(ix *Index) error {
		snap = ix.Clone()
		return nil
	})
	return snap, err
}

// Commit places box for itemID after re-validating it against the live index.
// An overlap with a box placed since the caller's snapshot is reported as
// ConcurrentModification.
func (r *Registry) Commit(ctx context.Context, containerID, itemID string, box geometry.Box) error {
	return r.Update(ctx, containerID, func(ix *Index) error {
		if err := ix.Check(itemID, box); err != nil {
			if cargoerr.Is(err, cargoerr.KindGeometry) {
				return cargoerr.Conflict("registry.commit", "container %q changed: %v", containerID, err)
			}
			return err
		}
		return ix.Place(itemID, box)
	})
}

// Release removes the placement of itemID from the container.
func (r *Registry) Release(ctx context.Context, containerID, itemID string) (geometry.Box, error) {
	var box geometry.Box
	err := r.Update(ctx, containerID, func(ix *Index) error {
		var err error
		box, err = ix.Remove(itemID)
		return err
	})
	return box, err
}

// Rebuild recomputes the container's free space from its occupied set.
func (r *Registry) Rebuild(ctx context.Context, containerID string) error {
	return r.Update(ctx, containerID, func(ix *Index) error {
		ix.Rebuild()
		return nil
	})
}
