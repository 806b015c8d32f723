package repository

import (
	"time"

	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/guttosm/cargo-service/internal/geometry"
)

func testItem(id, name string) *model.Item {
	expiry := model.NewDate(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	return &model.Item{
		ItemID:     id,
		Name:       name,
		Dims:       geometry.Dims{Width: 10, Depth: 10, Height: 20},
		Mass:       5,
		Priority:   80,
		ExpiryDate: &expiry,
		UsageLimit: 3,
	}
}
