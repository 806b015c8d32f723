package repository

import (
	"context"
	"time"

	"github.com/guttosm/cargo-service/internal/cargoerr"
	"github.com/guttosm/cargo-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ItemsRepository is the MongoDB ItemRepository.
type ItemsRepository struct {
	collection *mongo.Collection
}

// NewItemsRepository creates an items repository.
func NewItemsRepository(db *MongoDB) *ItemsRepository {
	return &ItemsRepository{collection: db.Items}
}

// Create inserts a new item.
func (r *ItemsRepository) Create(ctx context.Context, item *model.Item) error {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, item)
	return translate("items.create", err, "item", item.ItemID)
}

// Upsert inserts or replaces an item.
func (r *ItemsRepository) Upsert(ctx context.Context, item *model.Item) error {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.ReplaceOne(ctx, byID(item.ItemID), item, upsert())
	return translate("items.upsert", err, "item", item.ItemID)
}

// Get returns the item with the given id.
func (r *ItemsRepository) Get(ctx context.Context, itemID string) (*model.Item, error) {
	var item model.Item
	if err := r.collection.FindOne(ctx, byID(itemID)).Decode(&item); err != nil {
		return nil, translate("items.get", err, "item", itemID)
	}
	return &item, nil
}

// List returns every item ordered by id.
func (r *ItemsRepository) List(ctx context.Context) ([]model.Item, error) {
	return findAll[model.Item](ctx, r.collection, "items.list", bson.D{}, sortByID())
}

// FindByName returns the items with an exact name match.
func (r *ItemsRepository) FindByName(ctx context.Context, name string) ([]model.Item, error) {
	return findAll[model.Item](ctx, r.collection, "items.find_by_name", bson.D{{Key: "name", Value: name}}, sortByID())
}

// UpsertUsage sets the remaining uses of an item.
func (r *ItemsRepository) UpsertUsage(ctx context.Context, itemID string, usageLimit int) error {
	if usageLimit < 0 {
		return cargoerr.Invalid("items.upsert_usage", "usageLimit must not be negative")
	}
	res, err := r.collection.UpdateOne(ctx, byID(itemID), bson.D{{Key: "$set", Value: bson.D{{Key: "usage_limit", Value: usageLimit}}}})
	if err != nil {
		return translate("items.upsert_usage", err, "item", itemID)
	}
	if res.MatchedCount == 0 {
		return cargoerr.NotFound("items.upsert_usage", "item %q not found", itemID)
	}
	return nil
}

// Delete removes an item.
func (r *ItemsRepository) Delete(ctx context.Context, itemID string) error {
	res, err := r.collection.DeleteOne(ctx, byID(itemID))
	if err != nil {
		return translate("items.delete", err, "item", itemID)
	}
	if res.DeletedCount == 0 {
		return cargoerr.NotFound("items.delete", "item %q not found", itemID)
	}
	return nil
}
