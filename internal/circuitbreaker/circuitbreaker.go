// Package circuitbreaker guards calls to the persistence layer.
//
// A breaker counts consecutive infrastructure failures. Domain outcomes such
// as "item not found" or "duplicate identifier" are results, not failures,
// and never open the circuit.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/guttosm/cargo-service/internal/cargoerr"
	"github.com/rs/zerolog/log"
)

// ErrCircuitOpen is returned while the circuit rejects calls.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State of a breaker.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Config holds breaker settings.
type Config struct {
	// Name identifies the breaker in logs and metrics.
	Name string
	// FailureThreshold is the number of consecutive failures that opens the circuit.
	FailureThreshold int
	// SuccessThreshold is the number of half-open successes that closes it again.
	SuccessThreshold int
	// Timeout is how long the circuit stays open before probing.
	Timeout time.Duration
	// IsFailure classifies errors. Defaults to InfrastructureFailure.
	IsFailure func(error) bool
	// OnStateChange is called with the breaker lock released.
	OnStateChange func(name string, from, to State)
}

// DefaultConfig returns the settings used for MongoDB repositories.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
	}
}

// InfrastructureFailure reports whether err signals a broken dependency
// rather than a domain outcome.
func InfrastructureFailure(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	switch cargoerr.KindOf(err) {
	case cargoerr.KindNotFound, cargoerr.KindInvalidRequest, cargoerr.KindConcurrentModification:
		return false
	}
	return true
}

// CircuitBreaker implements the closed/open/half-open state machine.
type CircuitBreaker struct {
	config       Config
	mu           sync.Mutex
	state        State
	failures     int
	successes    int
	lastFailure  time.Time
	now          func() time.Time
	totalRejects int64
}

// New creates a closed breaker.
func New(config Config) *CircuitBreaker {
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = 1
	}
	if config.SuccessThreshold <= 0 {
		config.SuccessThreshold = 1
	}
	if config.IsFailure == nil {
		config.IsFailure = InfrastructureFailure
	}
	return &CircuitBreaker{config: config, state: StateClosed, now: time.Now}
}

// Name returns the configured name.
func (cb *CircuitBreaker) Name() string { return cb.config.Name }

// Execute runs fn unless the circuit is open.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return cargoerr.Wrap(cargoerr.KindTimeout, "circuitbreaker."+cb.config.Name, err)
	}
	if err := cb.before(); err != nil {
		return err
	}
	err := fn(ctx)
	cb.after(err)
	return err
}

// Call runs fn through cb and returns its value.
func Call[T any](ctx context.Context, cb *CircuitBreaker, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := cb.Execute(ctx, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

func (cb *CircuitBreaker) before() error {
	cb.mu.Lock()
	if cb.state != StateOpen {
		cb.mu.Unlock()
		return nil
	}
	if cb.now().Sub(cb.lastFailure) < cb.config.Timeout {
		cb.totalRejects++
		cb.mu.Unlock()
		return ErrCircuitOpen
	}
	cb.state = StateHalfOpen
	cb.successes = 0
	cb.mu.Unlock()

	log.Info().Str("circuit_breaker", cb.config.Name).Msg("Circuit breaker half-open, probing")
	cb.notify(StateOpen, StateHalfOpen)
	return nil
}

func (cb *CircuitBreaker) after(err error) {
	cb.mu.Lock()
	from := cb.state
	if cb.config.IsFailure(err) {
		cb.failures++
		cb.lastFailure = cb.now()
		if cb.state == StateHalfOpen || cb.failures >= cb.config.FailureThreshold {
			cb.state = StateOpen
		}
	} else {
		cb.failures = 0
		if cb.state == StateHalfOpen {
			cb.successes++
			if cb.successes >= cb.config.SuccessThreshold {
				cb.state = StateClosed
				cb.successes = 0
			}
		}
	}
	to, failures := cb.state, cb.failures
	cb.mu.Unlock()

	if from == to {
		return
	}
	switch to {
	case StateOpen:
		log.Warn().Str("circuit_breaker", cb.config.Name).Int("failure_count", failures).Err(err).Msg("Circuit breaker opened")
	case StateClosed:
		log.Info().Str("circuit_breaker", cb.config.Name).Msg("Circuit breaker closed after recovery")
	}
	cb.notify(from, to)
}

func (cb *CircuitBreaker) notify(from, to State) {
	if cb.config.OnStateChange != nil {
		cb.config.OnStateChange(cb.config.Name, from, to)
	}
}

// State returns the current state.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// IsOpen reports whether calls are currently rejected.
func (cb *CircuitBreaker) IsOpen() bool { return cb.State() == StateOpen }

// Stats is a point-in-time view of a breaker.
type Stats struct {
	Name         string    `json:"name"`
	State        string    `json:"state"`
	FailureCount int       `json:"failureCount"`
	Rejected     int64     `json:"rejected"`
	LastFailure  time.Time `json:"lastFailure,omitempty"`
	Healthy      bool      `json:"healthy"`
}

// Stats returns current statistics.
func (cb *CircuitBreaker) Stats() Stats {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return Stats{
		Name:         cb.config.Name,
		State:        cb.state.String(),
		FailureCount: cb.failures,
		Rejected:     cb.totalRejects,
		LastFailure:  cb.lastFailure,
		Healthy:      cb.state == StateClosed,
	}
}
