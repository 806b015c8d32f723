package dto

import (
	"net/http"
	"time"

	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/guttosm/cargo-service/internal/service"
	"github.com/guttosm/cargo-service/internal/simulation"
	"github.com/guttosm/cargo-service/internal/transfer"
)

const (
	// ErrCodeInvalidRequest indicates an invalid request.
	ErrCodeInvalidRequest = "invalid_request"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound = "not_found"
	// ErrCodeRateLimit indicates rate limit exceeded.
	ErrCodeRateLimit = "rate_limit_exceeded"
	// ErrCodeConflict indicates a conflict with current state.
	ErrCodeConflict = "conflict"
	// ErrCodeTimeout indicates a request timeout.
	ErrCodeTimeout = "timeout"
	// ErrCodeUnavailable indicates the storage backend is not accepting calls.
	ErrCodeUnavailable = "service_unavailable"
)

// SuccessResponse wraps successful API responses with metadata.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data contains the actual response data
	// Example: {"containerId": "contA", "zone": "Crew Quarters", "width": 100, "depth": 85, "height": 200}
	Data interface{} `json:"data" swaggertype:"object"`
	// RequestID is the unique request identifier
	RequestID string `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Timestamp is when the response was generated
	Timestamp time.Time `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse represents a standardized error response for the API.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message,omitempty" example:"item \"001\": width must be positive"`
	// Details contains additional error details (optional)
	// Example: {"field": "error message"}
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2025-01-28T10:00:00Z"`
	TraceID   string            `json:"trace_id,omitempty" example:"trace-123"`
} // @name ErrorResponse

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// ErrCodeFromStatus returns the appropriate error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	case http.StatusServiceUnavailable:
		return ErrCodeUnavailable
	default:
		return ErrCodeInternal
	}
}

// PlacementResponse is the result of a placement batch.
// @Description Placement batch result
type PlacementResponse struct {
	Success bool `json:"success" example:"true"`
	service.PlacementResult
} // @name PlacementResponse

// PlaceResponse is the result of a manual placement.
type PlaceResponse struct {
	Success   bool             `json:"success" example:"true"`
	Placement *model.Placement `json:"placement"`
} // @name PlaceResponse

// SearchResponse locates an item and lists the steps to retrieve it.
type SearchResponse struct {
	Success bool `json:"success" example:"true"`
	service.SearchResult
} // @name SearchResponse

// RetrieveResponse reports the uses left after a retrieval.
type RetrieveResponse struct {
	Success bool `json:"success" example:"true"`
	service.RetrieveResult
} // @name RetrieveResponse

// WasteResponse lists the current waste items.
type WasteResponse struct {
	Success    bool                 `json:"success" example:"true"`
	WasteItems []service.WasteEntry `json:"wasteItems"`
} // @name WasteResponse

// ReturnPlanResponse is a proposed return plan.
type ReturnPlanResponse struct {
	Success bool `json:"success" example:"true"`
	service.ReturnPlanResult
} // @name ReturnPlanResponse

// UndockingResponse reports what left the station.
type UndockingResponse struct {
	Success bool `json:"success" example:"true"`
	service.UndockingResult
} // @name UndockingResponse

// SimulationChanges lists the transitions of a simulation advance.
type SimulationChanges struct {
	ItemsUsed          []simulation.ItemUsage `json:"itemsUsed"`
	ItemsExpired       []simulation.ItemRef   `json:"itemsExpired"`
	ItemsDepletedToday []simulation.ItemRef   `json:"itemsDepletedToday"`
} // @name SimulationChanges

// SimulateResponse is the simulated date after an advance and what changed.
type SimulateResponse struct {
	Success bool              `json:"success" example:"true"`
	NewDate model.Date        `json:"newDate" swaggertype:"string" example:"2025-04-02"`
	Changes SimulationChanges `json:"changes"`
} // @name SimulateResponse

// NewSimulateResponse builds the response of an advance.
func NewSimulateResponse(s simulation.Summary) SimulateResponse {
	return SimulateResponse{
		Success: true,
		NewDate: s.To,
		Changes: SimulationChanges{
			ItemsUsed:          nonNil(s.ItemsUsed),
			ItemsExpired:       nonNil(s.ItemsExpired),
			ItemsDepletedToday: nonNil(s.ItemsDepleted),
		},
	}
}

// DateResponse is the current simulated date.
type DateResponse struct {
	Success bool       `json:"success" example:"true"`
	Date    model.Date `json:"date" swaggertype:"string" example:"2025-04-01"`
} // @name DateResponse

// ImportResponse summarizes an import. Exactly one of the counters is set,
// depending on what was imported.
type ImportResponse struct {
	Success            bool                `json:"success" example:"true"`
	ItemsImported      *int                `json:"itemsImported,omitempty" example:"12"`
	ContainersImported *int                `json:"containersImported,omitempty"`
	Errors             []transfer.RowError `json:"errors"`
} // @name ImportResponse

// NewItemsImportResponse builds the response of an item import.
func NewItemsImportResponse(r service.ImportResult) ImportResponse {
	n := r.Imported
	return ImportResponse{Success: true, ItemsImported: &n, Errors: nonNil(r.Errors)}
}

// NewContainersImportResponse builds the response of a container import.
func NewContainersImportResponse(r service.ImportResult) ImportResponse {
	n := r.Imported
	return ImportResponse{Success: true, ContainersImported: &n, Errors: nonNil(r.Errors)}
}

// LogsResponse is a page of log entries.
type LogsResponse struct {
	Success bool             `json:"success" example:"true"`
	Logs    []model.LogEntry `json:"logs"`
	Total   int64            `json:"total" example:"42"`
} // @name LogsResponse

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
