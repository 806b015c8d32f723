// Package model provides the domain models of the cargo service.
package model

import (
	"strings"
	"time"

	"github.com/guttosm/cargo-service/internal/cargoerr"
	"github.com/guttosm/cargo-service/internal/geometry"
)

// WasteReason explains why an item is waste.
type WasteReason string

const (
	WasteExpired   WasteReason = "Expired"
	WasteOutOfUses WasteReason = "Out of Uses"
)

// Item is a cargo item. Dimensions are the nominal orientation; any axis
// permutation may be used when placing it.
type Item struct {
	ItemID        string `bson:"_id" json:"itemId"`
	Name          string `bson:"name" json:"name"`
	geometry.Dims `bson:",inline"`
	Mass          float64   `bson:"mass" json:"mass"`
	Priority      int       `bson:"priority" json:"priority"`
	ExpiryDate    *Date     `bson:"expiry_date,omitempty" json:"expiryDate,omitempty"`
	UsageLimit    int       `bson:"usage_limit" json:"usageLimit"`
	PreferredZone string    `bson:"preferred_zone" json:"preferredZone"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
}

// Validate checks the item invariants.
func (i Item) Validate() error {
	switch {
	case strings.TrimSpace(i.ItemID) == "":
		return cargoerr.Invalid("item.validate", "itemId is required")
	case !i.Dims.Valid():
		return cargoerr.Invalid("item.validate", "item %q: dimensions must be positive, got %s", i.ItemID, i.Dims)
	case i.Mass < 0:
		return cargoerr.Invalid("item.validate", "item %q: mass must not be negative", i.ItemID)
	case i.UsageLimit < 0:
		return cargoerr.Invalid("item.validate", "item %q: usageLimit must not be negative", i.ItemID)
	}
	return nil
}

// Expired reports whether the item's expiry date lies before day.
func (i Item) Expired(day Date) bool {
	return i.ExpiryDate != nil && !i.ExpiryDate.IsZero() && i.ExpiryDate.Before(day)
}

// Depleted reports whether every use has been consumed.
func (i Item) Depleted() bool { return i.UsageLimit == 0 }

// WasteReason returns why the item is waste on day, if it is.
func (i Item) WasteReason(day Date) (WasteReason, bool) {
	if i.Expired(day) {
		return WasteExpired, true
	}
	if i.Depleted() {
		return WasteOutOfUses, true
	}
	return "", false
}

// Container is a storage unit. Containers never change after creation.
type Container struct {
	ContainerID   string `bson:"_id" json:"containerId"`
	Zone          string `bson:"zone" json:"zone"`
	geometry.Dims `bson:",inline"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
}

// Validate checks the container invariants.
func (c Container) Validate() error {
	if strings.TrimSpace(c.ContainerID) == "" {
		return cargoerr.Invalid("container.validate", "containerId is required")
	}
	if !c.Dims.Valid() {
		return cargoerr.Invalid("container.validate", "container %q: dimensions must be positive, got %s", c.ContainerID, c.Dims)
	}
	return nil
}

// Placement records where an item sits.
type Placement struct {
	ItemID      string       `bson:"_id" json:"itemId"`
	ContainerID string       `bson:"container_id" json:"containerId"`
	Position    geometry.Box `bson:"position" json:"position"`
	PlacedAt    time.Time    `bson:"placed_at" json:"placedAt"`
}
