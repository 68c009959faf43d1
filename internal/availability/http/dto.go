package http

import (
	"time"

	"github.com/nekogravitycat/fleet-availability-backend/internal/availability"
)

// CheckRequest is the payload for an availability check.
type CheckRequest struct {
	ResourceID   string    `json:"resource_id" binding:"required,uuid"`
	ResourceType string    `json:"resource_type" binding:"required,oneof=vehicle driver"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	EndTime      time.Time `json:"end_time" binding:"required"`
}

// Validate performs custom validation for CheckRequest.
func (r *CheckRequest) Validate() error {
	if !r.StartTime.Before(r.EndTime) {
		return availability.ErrInvalidWindow
	}
	return nil
}

// ConflictResponse is the API shape of a single blocking record.
type ConflictResponse struct {
	Kind  string    `json:"kind"`
	ID    string    `json:"id"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// NewConflictList converts engine conflicts to their API shape.
// Returns an empty slice rather than nil so the JSON is always an array.
func NewConflictList(conflicts []availability.Conflict) []ConflictResponse {
	out := make([]ConflictResponse, 0, len(conflicts))
	for _, c := range conflicts {
		out = append(out, ConflictResponse{
			Kind:  string(c.Kind),
			ID:    c.ID,
			Start: c.Start,
			End:   c.End,
			Label: c.Label,
		})
	}
	return out
}

// CheckResponse is the outcome of an availability check.
type CheckResponse struct {
	Available bool               `json:"available"`
	Conflicts []ConflictResponse `json:"conflicts"`
}
