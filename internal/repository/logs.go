package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/cargo-service/internal/cargoerr"
	"github.com/guttosm/cargo-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LogsRepository is the MongoDB LogRepository.
type LogsRepository struct {
	collection *mongo.Collection
}

// NewLogsRepository creates a logs repository.
func NewLogsRepository(db *MongoDB) *LogsRepository {
	return &LogsRepository{collection: db.Logs}
}

func stamp(entry *model.LogEntry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
}

// Create appends one entry.
func (r *LogsRepository) Create(ctx context.Context, entry *model.LogEntry) error {
	stamp(entry)
	_, err := r.collection.InsertOne(ctx, entry)
	return translate("logs.create", err, "log entry", entry.ID)
}

// CreateMany appends entries in one round trip.
func (r *LogsRepository) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]interface{}, len(entries))
	for i, entry := range entries {
		stamp(entry)
		docs[i] = entry
	}
	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		return cargoerr.Internal("logs.create_many", err)
	}
	return nil
}

func logFilter(opts model.LogQueryOptions) bson.M {
	filter := bson.M{}
	if opts.ItemID != "" {
		filter["item_id"] = opts.ItemID
	}
	if opts.UserID != "" {
		filter["user_id"] = opts.UserID
	}
	if opts.ActionType != "" {
		filter["action_type"] = opts.ActionType
	}
	if opts.StartTime != nil || opts.EndTime != nil {
		window := bson.M{}
		if opts.StartTime != nil {
			window["$gte"] = *opts.StartTime
		}
		if opts.EndTime != nil {
			window["$lte"] = *opts.EndTime
		}
		filter["timestamp"] = window
	}
	return filter
}

// Query returns matching entries, newest first.
func (r *LogsRepository) Query(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: 1}})
	if opts.Limit > 0 {
		findOptions.SetLimit(int64(opts.Limit))
	}
	if opts.Skip > 0 {
		findOptions.SetSkip(int64(opts.Skip))
	}
	return findAll[model.LogEntry](ctx, r.collection, "logs.query", logFilter(opts), findOptions)
}

// Count returns the number of matching entries.
func (r *LogsRepository) Count(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, logFilter(opts))
	if err != nil {
		return 0, cargoerr.Internal("logs.count", err)
	}
	return n, nil
}
