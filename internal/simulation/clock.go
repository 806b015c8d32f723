// Package simulation advances simulated station time and applies daily usage.
package simulation

import (
	"sync"

	"github.com/guttosm/cargo-service/internal/domain/model"
)

// Clock holds the current simulated date. Only the Engine moves it, and only
// forward; everything else reads it and passes the date on explicitly.
type Clock struct {
	mu        sync.RWMutex
	current   model.Date
	listeners []func(model.Date)
}

// NewClock creates a clock at start.
func NewClock(start model.Date) *Clock {
	return &Clock{current: start}
}

// Today returns the current simulated date.
func (c *Clock) Today() model.Date {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// AddListener registers a callback invoked after every advance.
func (c *Clock) AddListener(fn func(model.Date)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

func (c *Clock) set(d model.Date) {
	c.mu.Lock()
	c.current = d
	listeners := append([]func(model.Date){}, c.listeners...)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(d)
	}
}
