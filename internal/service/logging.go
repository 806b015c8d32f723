package service

import (
	"context"
	"time"

	"github.com/guttosm/cargo-service/internal/cargoerr"
	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/guttosm/cargo-service/internal/repository"
)

// MaxLogQueryLimit caps a single log query.
const MaxLogQueryLimit = 1000

// LoggingService defines the interface for action log operations.
type LoggingService interface {
	// CreateLog stores a single log entry.
	CreateLog(ctx context.Context, entry *model.LogEntry) error

	// CreateLogs stores multiple log entries in bulk.
	CreateLogs(ctx context.Context, entries []*model.LogEntry) error

	// QueryLogs retrieves log entries matching the query options, newest first.
	QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)

	// CountLogs returns the count of log entries matching the query options.
	CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

// LoggingServiceImpl implements the LoggingService interface.
type LoggingServiceImpl struct {
	repo repository.LogRepository
	now  func() time.Time
}

// NewLoggingService creates a new logging service implementation.
func NewLoggingService(repo repository.LogRepository) LoggingService {
	return &LoggingServiceImpl{
		repo: repo,
		now:  time.Now,
	}
}

// CreateLog stores a single log entry.
func (s *LoggingServiceImpl) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	if entry == nil || entry.ActionType == "" {
		return cargoerr.Invalid("logs.create", "actionType is required")
	}
	s.stamp(entry)
	return s.repo.Create(ctx, entry)
}

// CreateLogs stores multiple log entries in bulk.
func (s *LoggingServiceImpl) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	for _, e := range entries {
		if e == nil || e.ActionType == "" {
			return cargoerr.Invalid("logs.create", "actionType is required")
		}
		s.stamp(e)
	}
	return s.repo.CreateMany(ctx, entries)
}

// QueryLogs retrieves log entries matching the query options.
func (s *LoggingServiceImpl) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	if err := validateLogQuery(&opts); err != nil {
		return nil, err
	}
	return s.repo.Query(ctx, opts)
}

// CountLogs returns the count of log entries matching the query options.
func (s *LoggingServiceImpl) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	if err := validateLogQuery(&opts); err != nil {
		return 0, err
	}
	return s.repo.Count(ctx, opts)
}

func (s *LoggingServiceImpl) stamp(entry *model.LogEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now().UTC()
	}
}

func validateLogQuery(opts *model.LogQueryOptions) error {
	if opts.StartTime != nil && opts.EndTime != nil && opts.EndTime.Before(*opts.StartTime) {
		return cargoerr.Invalid("logs.query", "endDate precedes startDate")
	}
	if opts.Limit < 0 || opts.Skip < 0 {
		return cargoerr.Invalid("logs.query", "limit and skip must not be negative")
	}
	if opts.Limit == 0 || opts.Limit > MaxLogQueryLimit {
		opts.Limit = MaxLogQueryLimit
	}
	return nil
}
