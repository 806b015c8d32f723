// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"strings"
	"time"

	"github.com/guttosm/cargo-service/internal/domain/model"
	"github.com/guttosm/cargo-service/internal/geometry"
)

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ItemRequest is an item as sent by clients.
//
// @Description Cargo item
type ItemRequest struct {
	ItemID        string  `json:"itemId" binding:"required" example:"001"`
	Name          string  `json:"name" binding:"required" example:"Food Packet"`
	Width         int     `json:"width" example:"10"`
	Depth         int     `json:"depth" example:"10"`
	Height        int     `json:"height" example:"20"`
	Mass          float64 `json:"mass" example:"5"`
	Priority      int     `json:"priority" example:"80"`
	ExpiryDate    string  `json:"expiryDate,omitempty" example:"2025-05-20"`
	UsageLimit    int     `json:"usageLimit" example:"30"`
	PreferredZone string  `json:"preferredZone" example:"Crew Quarters"`
} // @name ItemRequest

// ToModel converts the request into a validated item. An empty or "N/A"
// expiry date means the item never expires.
func (r ItemRequest) ToModel() (model.Item, error) {
	it := model.Item{
		ItemID:        r.ItemID,
		Name:          r.Name,
		Dims:          geometry.Dims{Width: r.Width, Depth: r.Depth, Height: r.Height},
		Mass:          r.Mass,
		Priority:      r.Priority,
		UsageLimit:    r.UsageLimit,
		PreferredZone: r.PreferredZone,
	}
	if r.ExpiryDate != "" && !strings.EqualFold(r.ExpiryDate, "n/a") {
		d, err := ParseDay(r.ExpiryDate)
		if err != nil {
			return it, invalid("expiryDate", err.Error())
		}
		it.ExpiryDate = &d
	}
	return it, it.Validate()
}

// ContainerRequest is a container as sent by clients.
//
// @Description Storage container
type ContainerRequest struct {
	ContainerID string `json:"containerId" binding:"required" example:"contA"`
	Zone        string `json:"zone" binding:"required" example:"Crew Quarters"`
	Width       int    `json:"width" example:"100"`
	Depth       int    `json:"depth" example:"85"`
	Height      int    `json:"height" example:"200"`
} // @name ContainerRequest

// ToModel converts the request into a validated container.
func (r ContainerRequest) ToModel() (model.Container, error) {
	c := model.Container{
		ContainerID: r.ContainerID,
		Zone:        r.Zone,
		Dims:        geometry.Dims{Width: r.Width, Depth: r.Depth, Height: r.Height},
	}
	return c, c.Validate()
}

// PlacementRequest asks the engine to place a batch of items.
//
// @Description Placement batch; containers listed are created first
type PlacementRequest struct {
	Items      []ItemRequest      `json:"items" binding:"required"`
	Containers []ContainerRequest `json:"containers"`
} // @name PlacementRequest

// ToModel converts every item and container of the batch.
func (r PlacementRequest) ToModel() ([]model.Item, []model.Container, error) {
	items := make([]model.Item, 0, len(r.Items))
	for _, ir := range r.Items {
		it, err := ir.ToModel()
		if err != nil {
			return nil, nil, err
		}
		items = append(items, it)
	}
	containers := make([]model.Container, 0, len(r.Containers))
	for _, cr := range r.Containers {
		c, err := cr.ToModel()
		if err != nil {
			return nil, nil, err
		}
		containers = append(containers, c)
	}
	return items, containers, nil
}

// Coordinates is a corner of a box, in centimetres from the container origin.
type Coordinates struct {
	Width  int `json:"width" example:"0"`
	Depth  int `json:"depth" example:"0"`
	Height int `json:"height" example:"0"`
} // @name Coordinates

// Position is a box given by two opposite corners.
type Position struct {
	StartCoordinates Coordinates `json:"startCoordinates"`
	EndCoordinates   Coordinates `json:"endCoordinates"`
} // @name Position

// Box converts the position to a geometry box.
func (p Position) Box() geometry.Box {
	return geometry.Box{
		Start: geometry.Point(p.StartCoordinates),
		End:   geometry.Point(p.EndCoordinates),
	}
}

// PlaceRequest puts an item at a chosen position.
//
// @Description Manual placement
type PlaceRequest struct {
	ItemID      string   `json:"itemId" binding:"required" example:"001"`
	ContainerID string   `json:"containerId" binding:"required" example:"contA"`
	Position    Position `json:"position"`
	UserID      string   `json:"userId,omitempty" example:"astro-7"`
	Timestamp   string   `json:"timestamp,omitempty" example:"2025-04-01T10:00:00Z"`
} // @name PlaceRequest

// Validate checks the position is a proper box.
func (r *PlaceRequest) Validate() error {
	if r.Position.Box().Degenerate() {
		return invalid("position", "end coordinates must be greater than start coordinates on every axis")
	}
	_, err := ParseTimestamp(r.Timestamp)
	return err
}

// RetrieveRequest records that an astronaut took an item out.
//
// @Description Item retrieval
type RetrieveRequest struct {
	ItemID    string `json:"itemId" binding:"required" example:"001"`
	UserID    string `json:"userId,omitempty" example:"astro-7"`
	Timestamp string `json:"timestamp,omitempty" example:"2025-04-01T10:00:00Z"`
} // @name RetrieveRequest

// Validate checks the timestamp.
func (r *RetrieveRequest) Validate() error {
	_, err := ParseTimestamp(r.Timestamp)
	return err
}

// ReturnPlanRequest asks which waste should leave with an undocking module.
//
// @Description Return plan request
type ReturnPlanRequest struct {
	UndockingContainerID string  `json:"undockingContainerId" binding:"required" example:"contZ"`
	UndockingDate        string  `json:"undockingDate,omitempty" example:"2025-05-01"`
	MaxWeight            float64 `json:"maxWeight" example:"100"`
} // @name ReturnPlanRequest

// Validate checks the weight limit and the date format.
func (r *ReturnPlanRequest) Validate() error {
	if r.MaxWeight < 0 {
		return invalid("maxWeight", "must not be negative")
	}
	if r.UndockingDate != "" {
		if _, err := ParseDay(r.UndockingDate); err != nil {
			return invalid("undockingDate", err.Error())
		}
	}
	return nil
}

// Date returns the undocking date, or nil when none was sent.
func (r *ReturnPlanRequest) Date() *model.Date {
	if r.UndockingDate == "" {
		return nil
	}
	d, err := ParseDay(r.UndockingDate)
	if err != nil {
		return nil
	}
	return &d
}

// CompleteUndockingRequest confirms an undocking module has left.
//
// @Description Undocking confirmation
type CompleteUndockingRequest struct {
	UndockingContainerID string `json:"undockingContainerId" binding:"required" example:"contZ"`
	Timestamp            string `json:"timestamp,omitempty" example:"2025-05-01T08:00:00Z"`
} // @name CompleteUndockingRequest

// Validate checks the timestamp.
func (r *CompleteUndockingRequest) Validate() error {
	_, err := ParseTimestamp(r.Timestamp)
	return err
}

// ItemUseRequest names an item used once per simulated day.
type ItemUseRequest struct {
	ItemID string `json:"itemId,omitempty" example:"001"`
	Name   string `json:"name,omitempty" example:"Food Packet"`
} // @name ItemUseRequest

// SimulateRequest advances the simulated clock by a number of days or to a
// date. Exactly one of the two must be given.
//
// @Description Time simulation request
type SimulateRequest struct {
	NumOfDays           *int             `json:"numOfDays,omitempty" example:"1"`
	ToTimestamp         string           `json:"toTimestamp,omitempty" example:"2025-04-05"`
	ItemsToBeUsedPerDay []ItemUseRequest `json:"itemsToBeUsedPerDay"`
} // @name SimulateRequest

// Validate checks that exactly one target is given and is well formed.
func (r *SimulateRequest) Validate() error {
	switch {
	case r.NumOfDays == nil && r.ToTimestamp == "":
		return invalid("numOfDays", "numOfDays or toTimestamp is required")
	case r.NumOfDays != nil && r.ToTimestamp != "":
		return invalid("numOfDays", "numOfDays and toTimestamp are mutually exclusive")
	case r.NumOfDays != nil && *r.NumOfDays < 0:
		return invalid("numOfDays", "must not be negative")
	}
	if r.ToTimestamp != "" {
		if _, err := ParseTimestamp(r.ToTimestamp); err != nil {
			return err
		}
	}
	for _, u := range r.ItemsToBeUsedPerDay {
		if u.ItemID == "" && u.Name == "" {
			return invalid("itemsToBeUsedPerDay", "each entry needs an itemId or a name")
		}
	}
	return nil
}

// Target returns the date to advance to, or nil when advancing by days.
func (r *SimulateRequest) Target() *model.Date {
	if r.ToTimestamp == "" {
		return nil
	}
	t, err := ParseTimestamp(r.ToTimestamp)
	if err != nil {
		return nil
	}
	d := model.NewDate(t)
	return &d
}

// LogQuery filters the cargo log. Dates accept YYYY-MM-DD or RFC 3339.
type LogQuery struct {
	StartDate  string `form:"startDate"`
	EndDate    string `form:"endDate"`
	ItemID     string `form:"itemId"`
	UserID     string `form:"userId"`
	ActionType string `form:"actionType"`
	Limit      int    `form:"limit"`
	Skip       int    `form:"skip"`
}

// Options converts the query into repository options. A date-only end date
// covers the whole day.
func (q LogQuery) Options() (model.LogQueryOptions, error) {
	opts := model.LogQueryOptions{
		ItemID:     q.ItemID,
		UserID:     q.UserID,
		ActionType: q.ActionType,
		Limit:      q.Limit,
		Skip:       q.Skip,
	}
	if q.StartDate != "" {
		t, err := ParseTimestamp(q.StartDate)
		if err != nil {
			return opts, invalid("startDate", err.Error())
		}
		opts.StartTime = &t
	}
	if q.EndDate != "" {
		t, err := ParseTimestamp(q.EndDate)
		if err != nil {
			return opts, invalid("endDate", err.Error())
		}
		if len(q.EndDate) == len(model.DateLayout) {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		opts.EndTime = &t
	}
	if opts.StartTime != nil && opts.EndTime != nil && opts.EndTime.Before(*opts.StartTime) {
		return opts, invalid("endDate", "must not precede startDate")
	}
	return opts, nil
}

// ParseDay parses a YYYY-MM-DD date.
func ParseDay(s string) (model.Date, error) {
	d, err := model.ParseDate(s)
	if err != nil {
		return model.Date{}, invalid("date", "expected YYYY-MM-DD, got "+s)
	}
	return d, nil
}

// ParseTimestamp accepts RFC 3339 timestamps and plain dates. An empty string
// yields the zero time.
func ParseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, model.TimestampLayout, model.DateLayout} {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, invalid("timestamp", "expected RFC 3339 or YYYY-MM-DD, got "+s)
}
