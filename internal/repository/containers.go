package repository

import (
	"context"
	"time"

	"github.com/guttosm/cargo-service/internal/cargoerr"
	"github.com/guttosm/cargo-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ContainersRepository is the MongoDB ContainerRepository.
type ContainersRepository struct {
	collection *mongo.Collection
}

// NewContainersRepository creates a containers repository.
func NewContainersRepository(db *MongoDB) *ContainersRepository {
	return &ContainersRepository{collection: db.Containers}
}

// Create inserts a new container.
func (r *ContainersRepository) Create(ctx context.Context, c *model.Container) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, c)
	return translate("containers.create", err, "container", c.ContainerID)
}

// Upsert inserts or replaces a container.
func (r *ContainersRepository) Upsert(ctx context.Context, c *model.Container) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.ReplaceOne(ctx, byID(c.ContainerID), c, upsert())
	return translate("containers.upsert", err, "container", c.ContainerID)
}

// Get returns the container with the given id.
func (r *ContainersRepository) Get(ctx context.Context, containerID string) (*model.Container, error) {
	var c model.Container
	if err := r.collection.FindOne(ctx, byID(containerID)).Decode(&c); err != nil {
		return nil, translate("containers.get", err, "container", containerID)
	}
	return &c, nil
}

// List returns every container ordered by id.
func (r *ContainersRepository) List(ctx context.Context) ([]model.Container, error) {
	return findAll[model.Container](ctx, r.collection, "containers.list", bson.D{}, sortByID())
}

// Delete removes a container.
func (r *ContainersRepository) Delete(ctx context.Context, containerID string) error {
	res, err := r.collection.DeleteOne(ctx, byID(containerID))
	if err != nil {
		return translate("containers.delete", err, "container", containerID)
	}
	if res.DeletedCount == 0 {
		return cargoerr.NotFound("containers.delete", "container %q not found", containerID)
	}
	return nil
}
