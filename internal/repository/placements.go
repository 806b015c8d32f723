package repository

import (
	"context"
	"time"

	"github.com/guttosm/cargo-service/internal/cargoerr"
	"github.com/guttosm/cargo-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// PlacementsRepository is the MongoDB PlacementRepository. Documents are keyed
// by item id so an item has at most one placement.
type PlacementsRepository struct {
	collection *mongo.Collection
}

// NewPlacementsRepository creates a placements repository.
func NewPlacementsRepository(db *MongoDB) *PlacementsRepository {
	return &PlacementsRepository{collection: db.Placements}
}

// Insert stores p, replacing any previous placement of the item.
func (r *PlacementsRepository) Insert(ctx context.Context, p *model.Placement) error {
	if p.PlacedAt.IsZero() {
		p.PlacedAt = time.Now().UTC()
	}
	_, err := r.collection.ReplaceOne(ctx, byID(p.ItemID), p, upsert())
	return translate("placements.insert", err, "placement", p.ItemID)
}

// Get returns the placement of an item.
func (r *PlacementsRepository) Get(ctx context.Context, itemID string) (*model.Placement, error) {
	var p model.Placement
	if err := r.collection.FindOne(ctx, byID(itemID)).Decode(&p); err != nil {
		return nil, translate("placements.get", err, "placement of item", itemID)
	}
	return &p, nil
}

// Delete removes the placement of an item.
func (r *PlacementsRepository) Delete(ctx context.Context, itemID string) error {
	res, err := r.collection.DeleteOne(ctx, byID(itemID))
	if err != nil {
		return translate("placements.delete", err, "placement of item", itemID)
	}
	if res.DeletedCount == 0 {
		return cargoerr.NotFound("placements.delete", "placement of item %q not found", itemID)
	}
	return nil
}

// ListByContainer returns the placements inside one container.
func (r *PlacementsRepository) ListByContainer(ctx context.Context, containerID string) ([]model.Placement, error) {
	return findAll[model.Placement](ctx, r.collection, "placements.list_by_container",
		bson.D{{Key: "container_id", Value: containerID}}, sortByID())
}

// List returns every placement.
func (r *PlacementsRepository) List(ctx context.Context) ([]model.Placement, error) {
	return findAll[model.Placement](ctx, r.collection, "placements.list", bson.D{}, sortByID())
}
