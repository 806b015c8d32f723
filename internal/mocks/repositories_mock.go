// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *model.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Upsert(ctx context.Context, item *model.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Get(ctx context.Context, itemID string) (*model.Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemRepository) List(ctx context.Context) ([]model.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Item), args.Error(1)
}

func (m *MockItemRepository) FindByName(ctx context.Context, name string) ([]model.Item, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Item), args.Error(1)
}

func (m *MockItemRepository) UpsertUsage(ctx context.Context, itemID string, usageLimit int) error {
	args := m.Called(ctx, itemID, usageLimit)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, itemID string) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

type MockContainerRepository struct {
	mock.Mock
}

func (m *MockContainerRepository) Create(ctx context.Context, c *model.Container) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContainerRepository) Upsert(ctx context.Context, c *model.Container) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContainerRepository) Get(ctx context.Context, containerID string) (*model.Container, error) {
	args := m.Called(ctx, containerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Container), args.Error(1)
}

func (m *MockContainerRepository) List(ctx context.Context) ([]model.Container, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Container), args.Error(1)
}

func (m *MockContainerRepository) Delete(ctx context.Context, containerID string) error {
	args := m.Called(ctx, containerID)
	return args.Error(0)
}

type MockPlacementRepository struct {
	mock.Mock
}

func (m *MockPlacementRepository) Insert(ctx context.Context, p *model.Placement) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPlacementRepository) Get(ctx context.Context, itemID string) (*model.Placement, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Placement), args.Error(1)
}

func (m *MockPlacementRepository) Delete(ctx context.Context, itemID string) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockPlacementRepository) ListByContainer(ctx context.Context, containerID string) ([]model.Placement, error) {
	args := m.Called(ctx, containerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Placement), args.Error(1)
}

func (m *MockPlacementRepository) List(ctx context.Context) ([]model.Placement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Placement), args.Error(1)
}

type MockLogRepository struct {
	mock.Mock
}

func (m *MockLogRepository) Create(ctx context.Context, entry *model.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLogRepository) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLogRepository) Query(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LogEntry), args.Error(1)
}

func (m *MockLogRepository) Count(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	count, _ := args.Get(0).(int64)
	return count, args.Error(1)
}
