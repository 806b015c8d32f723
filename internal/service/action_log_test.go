//go:build !integration

package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/guttosm/cargo-service/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink is a LoggingService that keeps entries in memory. When gate
// is set, the first write signals started and blocks until gate is closed.
type recordingSink struct {
	mu      sync.Mutex
	entries []*model.LogEntry
	err     error
	gate    chan struct{}
	started chan struct{}
	once    sync.Once
}

func (s *recordingSink) CreateLog(_ context.Context, entry *model.LogEntry) error {
	if s.gate != nil {
		first := false
		s.once.Do(func() { first = true })
		if first {
			close(s.started)
			<-s.gate
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *recordingSink) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	for _, e := range entries {
		if err := s.CreateLog(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (s *recordingSink) QueryLogs(context.Context, model.LogQueryOptions) ([]model.LogEntry, error) {
	return nil, nil
}

func (s *recordingSink) CountLogs(context.Context, model.LogQueryOptions) (int64, error) {
	return 0, nil
}

func (s *recordingSink) written() []*model.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.LogEntry(nil), s.entries...)
}

func TestActionLog_AppendWritesAsync(t *testing.T) {
	sink := &recordingSink{}
	al := NewActionLog(sink, ActionLogConfig{BufferSize: 10, NumWorkers: 2, WriteTimeout: time.Second})
	ctx := logger.WithUserID(logger.WithRequestID(context.Background(), "req-1"), "astro")

	for i := 0; i < 5; i++ {
		al.Append(ctx, &model.LogEntry{ActionType: model.ActionPlacement, ItemID: "a"})
	}
	al.Stop()

	entries := sink.written()
	require.Len(t, entries, 5)
	for _, e := range entries {
		assert.Equal(t, "req-1", e.RequestID)
		assert.Equal(t, "astro", e.UserID)
		assert.False(t, e.Timestamp.IsZero())
	}
	assert.Equal(t, ActionLogStats{Enqueued: 5, Written: 5}, al.Stats())
}

func TestActionLog_KeepsExplicitFields(t *testing.T) {
	sink := &recordingSink{}
	al := NewActionLog(sink, ActionLogConfig{BufferSize: 1, NumWorkers: 1})
	at := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	al.Append(logger.WithUserID(context.Background(), "ctx-user"), &model.LogEntry{ActionType: model.ActionRetrieval, UserID: "explicit", Timestamp: at})
	al.Stop()

	entries := sink.written()
	require.Len(t, entries, 1)
	assert.Equal(t, "explicit", entries[0].UserID)
	assert.Equal(t, at, entries[0].Timestamp)
}

func TestActionLog_FullQueueWritesSynchronously(t *testing.T) {
	sink := &recordingSink{gate: make(chan struct{}), started: make(chan struct{})}
	al := NewActionLog(sink, ActionLogConfig{BufferSize: 1, NumWorkers: 1, WriteTimeout: time.Second})
	ctx := context.Background()

	al.Append(ctx, &model.LogEntry{ActionType: model.ActionPlacement, ItemID: "1"})
	<-sink.started
	al.Append(ctx, &model.LogEntry{ActionType: model.ActionPlacement, ItemID: "2"})
	al.Append(ctx, &model.LogEntry{ActionType: model.ActionPlacement, ItemID: "3"})
	close(sink.gate)
	al.Stop()

	assert.Len(t, sink.written(), 3)
	assert.Equal(t, ActionLogStats{Enqueued: 2, Sync: 1, Written: 3}, al.Stats())
}

func TestActionLog_AfterStop(t *testing.T) {
	sink := &recordingSink{}
	al := NewActionLog(sink, DefaultActionLogConfig())
	al.Stop()
	al.Stop()

	al.Append(context.Background(), &model.LogEntry{ActionType: model.ActionDisposal})

	assert.Len(t, sink.written(), 1)
	assert.Equal(t, int64(1), al.Stats().Sync)
}

func TestActionLog_SinkErrors(t *testing.T) {
	sink := &recordingSink{err: errors.New("store down")}
	al := NewActionLog(sink, ActionLogConfig{BufferSize: 4, NumWorkers: 1})

	al.Append(context.Background(), &model.LogEntry{ActionType: model.ActionPlacement})
	al.Stop()

	assert.Equal(t, int64(1), al.Stats().Errors)
	assert.Equal(t, int64(0), al.Stats().Written)
}

func TestActionLog_Nil(t *testing.T) {
	var al *ActionLog
	assert.NotPanics(t, func() {
		al.Append(context.Background(), &model.LogEntry{ActionType: model.ActionPlacement})
	})
}
