package model

import "time"

// Action types recorded in the cargo log.
const (
	ActionPlacement     = "placement"
	ActionRearrangement = "rearrangement"
	ActionRetrieval     = "retrieval"
	ActionDisposal      = "disposal"
	ActionSimulation    = "simulation"
	ActionImport        = "import"
)

// LogEntry is an append-only record of a cargo event.
// Use Details for action-specific context.
type LogEntry struct {
	ID          string                 `bson:"_id" json:"id"`
	Timestamp   time.Time              `bson:"timestamp" json:"timestamp"`
	UserID      string                 `bson:"user_id,omitempty" json:"userId,omitempty"`
	ActionType  string                 `bson:"action_type" json:"actionType"`
	ItemID      string                 `bson:"item_id,omitempty" json:"itemId,omitempty"`
	ContainerID string                 `bson:"container_id,omitempty" json:"containerId,omitempty"`
	RequestID   string                 `bson:"request_id,omitempty" json:"requestId,omitempty"`
	Details     map[string]interface{} `bson:"details,omitempty" json:"details,omitempty"`
}

// WithField adds a detail to the entry.
// If Details is nil, it will be initialized.
func (e *LogEntry) WithField(key string, value interface{}) *LogEntry {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithFields adds multiple details to the entry.
func (e *LogEntry) WithFields(fields map[string]interface{}) *LogEntry {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range fields {
		e.Details[k] = v
	}
	return e
}

// LogQueryOptions filters log queries. Zero values match everything.
type LogQueryOptions struct {
	ItemID     string
	UserID     string
	ActionType string
	StartTime  *time.Time
	EndTime    *time.Time
	Limit      int
	Skip       int
}

// Matches reports whether e satisfies the filter, ignoring Limit and Skip.
func (o LogQueryOptions) Matches(e LogEntry) bool {
	switch {
	case o.ItemID != "" && e.ItemID != o.ItemID:
		return false
	case o.UserID != "" && e.UserID != o.UserID:
		return false
	case o.ActionType != "" && e.ActionType != o.ActionType:
		return false
	case o.StartTime != nil && e.Timestamp.Before(*o.StartTime):
		return false
	case o.EndTime != nil && e.Timestamp.After(*o.EndTime):
		return false
	}
	return true
}
