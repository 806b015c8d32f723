package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/guttosm/cargo-service/internal/logger"
	"github.com/guttosm/cargo-service/internal/metrics"
	"github.com/rs/zerolog/log"
)

// ActionLogConfig holds configuration for the action log.
type ActionLogConfig struct {
	// BufferSize is the size of the log entry channel buffer.
	BufferSize int
	// NumWorkers is the number of worker goroutines writing entries.
	NumWorkers int
	// WriteTimeout bounds a single write to the log sink.
	WriteTimeout time.Duration
}

// DefaultActionLogConfig returns the default action log configuration.
func DefaultActionLogConfig() ActionLogConfig {
	return ActionLogConfig{
		BufferSize:   1000,
		NumWorkers:   4,
		WriteTimeout: 5 * time.Second,
	}
}

// ActionLogStats counts what happened to appended entries.
type ActionLogStats struct {
	Enqueued int64 `json:"enqueued"`
	Sync     int64 `json:"sync"`
	Written  int64 `json:"written"`
	Errors   int64 `json:"errors"`
}

// ActionLog appends cargo events to the log sink through a bounded worker
// pool. When the queue is full, or after Stop, Append writes synchronously
// instead, so entries are never dropped.
type ActionLog struct {
	sink         LoggingService
	entryCh      chan *model.LogEntry
	stopCh       chan struct{}
	wg           sync.WaitGroup
	mu           sync.RWMutex
	stopped      bool
	writeTimeout time.Duration

	enqueued   atomic.Int64
	syncWrites atomic.Int64
	written    atomic.Int64
	errors     atomic.Int64
}

// NewActionLog starts the worker pool.
func NewActionLog(sink LoggingService, cfg ActionLogConfig) *ActionLog {
	def := DefaultActionLogConfig()
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = def.BufferSize
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = def.NumWorkers
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}

	al := &ActionLog{
		sink:         sink,
		entryCh:      make(chan *model.LogEntry, cfg.BufferSize),
		stopCh:       make(chan struct{}),
		writeTimeout: cfg.WriteTimeout,
	}
	for i := 0; i < cfg.NumWorkers; i++ {
		al.wg.Add(1)
		go al.worker()
	}
	return al
}

func (al *ActionLog) worker() {
	defer al.wg.Done()

	for {
		select {
		case entry := <-al.entryCh:
			al.write(entry, "async")
		case <-al.stopCh:
			for {
				select {
				case entry := <-al.entryCh:
					al.write(entry, "async")
				default:
					return
				}
			}
		}
	}
}

func (al *ActionLog) write(entry *model.LogEntry, path string) {
	ctx, cancel := context.WithTimeout(context.Background(), al.writeTimeout)
	defer cancel()

	err := al.sink.CreateLog(ctx, entry)
	metrics.RecordActionLog(path, err)
	if err != nil {
		al.errors.Add(1)
		log.Warn().
			Err(err).
			Str("action_type", entry.ActionType).
			Str("item_id", entry.ItemID).
			Str("request_id", entry.RequestID).
			Msg("Failed to write action log entry")
		return
	}
	al.written.Add(1)
}

// Append records entry. Request and user ids missing from the entry are
// taken from ctx. A nil ActionLog discards entries.
func (al *ActionLog) Append(ctx context.Context, entry *model.LogEntry) {
	if al == nil {
		return
	}
	if entry.RequestID == "" {
		entry.RequestID = logger.RequestID(ctx)
	}
	if entry.UserID == "" {
		entry.UserID = logger.UserID(ctx)
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	al.mu.RLock()
	if !al.stopped {
		select {
		case al.entryCh <- entry:
			al.mu.RUnlock()
			al.enqueued.Add(1)
			return
		default:
		}
	}
	al.mu.RUnlock()

	al.syncWrites.Add(1)
	logger.Ctx(ctx).Debug().Str("action_type", entry.ActionType).Msg("Action log queue unavailable, writing synchronously")
	al.write(entry, "sync")
}

// Stop drains pending entries and waits for the workers to exit.
func (al *ActionLog) Stop() {
	al.mu.Lock()
	if al.stopped {
		al.mu.Unlock()
		return
	}
	al.stopped = true
	close(al.stopCh)
	al.mu.Unlock()
	al.wg.Wait()
}

// Stats returns the action log counters.
func (al *ActionLog) Stats() ActionLogStats {
	return ActionLogStats{
		Enqueued: al.enqueued.Load(),
		Sync:     al.syncWrites.Load(),
		Written:  al.written.Load(),
		Errors:   al.errors.Load(),
	}
}
