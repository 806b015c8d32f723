//go:build !integration

package dto

import (
	"strconv"
	"testing"
	"time"

	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/guttosm/cargo-service/internal/service"
	"github.com/guttosm/cargo-service/internal/simulation"
	"github.com/guttosm/cargo-service/internal/transfer"
	"github.com/stretchr/testify/assert"
)

func TestErrorResponse_WithRequestID(t *testing.T) {
	tests := []struct {
		name      string
		errCode   string
		message   string
		requestID string
		validate  func(*testing.T, ErrorResponse)
	}{
		{
			name:      "error response with request ID",
			errCode:   ErrCodeInternal,
			message:   "test error",
			requestID: "test-id",
			validate: func(t *testing.T, err ErrorResponse) {
				assert.Equal(t, "test-id", err.RequestID)
				assert.Equal(t, ErrCodeInternal, err.Error)
				assert.Equal(t, "test error", err.Message)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewError(tt.errCode, tt.message)
			err = err.WithRequestID(tt.requestID)
			if tt.validate != nil {
				tt.validate(t, err)
			}
		})
	}
}

func TestErrCodeFromStatus(t *testing.T) {
	tests := []struct {
		status       int
		expectedCode string
	}{
		{400, ErrCodeInvalidRequest},
		{404, ErrCodeNotFound},
		{409, ErrCodeConflict},
		{429, ErrCodeRateLimit},
		{500, ErrCodeInternal},
		{502, ErrCodeInternal},
		{503, ErrCodeUnavailable},
		{504, ErrCodeTimeout},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.status), func(t *testing.T) {
			code := ErrCodeFromStatus(tt.status)
			assert.Equal(t, tt.expectedCode, code)
		})
	}
}

func TestNewError(t *testing.T) {
	tests := []struct {
		name     string
		errCode  string
		message  string
		validate func(*testing.T, ErrorResponse)
	}{
		{
			name:    "new error with code and message",
			errCode: ErrCodeInvalidRequest,
			message: "test message",
			validate: func(t *testing.T, err ErrorResponse) {
				assert.Equal(t, ErrCodeInvalidRequest, err.Error)
				assert.Equal(t, "test message", err.Message)
				assert.NotZero(t, err.Timestamp)
				assert.WithinDuration(t, time.Now(), err.Timestamp, time.Second)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewError(tt.errCode, tt.message)
			if tt.validate != nil {
				tt.validate(t, err)
			}
		})
	}
}

func TestNewSimulateResponse(t *testing.T) {
	to, _ := model.ParseDate("2025-04-03")
	resp := NewSimulateResponse(simulation.Summary{
		To:           to,
		Days:         2,
		ItemsExpired: []simulation.ItemRef{{ItemID: "001", Name: "Food"}},
	})

	assert.True(t, resp.Success)
	assert.Equal(t, "2025-04-03", resp.NewDate.String())
	assert.NotNil(t, resp.Changes.ItemsUsed)
	assert.Empty(t, resp.Changes.ItemsUsed)
	assert.Len(t, resp.Changes.ItemsExpired, 1)
	assert.NotNil(t, resp.Changes.ItemsDepletedToday)
}

func TestImportResponses(t *testing.T) {
	items := NewItemsImportResponse(service.ImportResult{Imported: 3})
	assert.True(t, items.Success)
	if assert.NotNil(t, items.ItemsImported) {
		assert.Equal(t, 3, *items.ItemsImported)
	}
	assert.Nil(t, items.ContainersImported)
	assert.NotNil(t, items.Errors)

	containers := NewContainersImportResponse(service.ImportResult{
		Imported: 1,
		Errors:   []transfer.RowError{{Row: 3, Message: "missing zone value"}},
	})
	assert.Nil(t, containers.ItemsImported)
	if assert.NotNil(t, containers.ContainersImported) {
		assert.Equal(t, 1, *containers.ContainersImported)
	}
	assert.Len(t, containers.Errors, 1)
}
