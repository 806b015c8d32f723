package testutil

import (
	"time"

	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/guttosm/cargo-service/internal/geometry"
)

// Day is a fixed simulated date used by tests.
var Day = model.NewDate(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))

// Item builds a valid item with the given id and dimensions.
func Item(id string, w, d, h int) model.Item {
	return model.Item{
		ItemID:     id,
		Name:       "Item " + id,
		Dims:       geometry.Dims{Width: w, Depth: d, Height: h},
		Mass:       1,
		Priority:   50,
		UsageLimit: 10,
	}
}

// Container builds a container in zone.
func Container(id, zone string, w, d, h int) model.Container {
	return model.Container{
		ContainerID: id,
		Zone:        zone,
		Dims:        geometry.Dims{Width: w, Depth: d, Height: h},
	}
}

// Expiring returns a copy of it that expires on date.
func Expiring(it model.Item, date model.Date) model.Item {
	it.ExpiryDate = &date
	return it
}
