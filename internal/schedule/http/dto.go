package http

import (
	"time"

	"github.com/nekogravitycat/fleet-availability-backend/internal/availability"
	"github.com/nekogravitycat/fleet-availability-backend/internal/pkg/request"
	"github.com/nekogravitycat/fleet-availability-backend/internal/schedule"
)

// ListSchedulesRequest defines query parameters for listing schedule entries.
type ListSchedulesRequest struct {
	request.RangeParams
	ResourceID string `form:"resource_id" binding:"omitempty,uuid"`
}

// Validate performs custom validation for ListSchedulesRequest.
func (r *ListSchedulesRequest) Validate() error {
	return r.RangeParams.Validate()
}

// EntryResponse is the API shape of a schedule entry.
type EntryResponse struct {
	ID           string    `json:"id"`
	ResourceID   string    `json:"resource_id"`
	ResourceType string    `json:"resource_type"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	BookingRef   string    `json:"booking_ref"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewEntryResponse(e *schedule.Entry) EntryResponse {
	return EntryResponse{
		ID:           e.ID,
		ResourceID:   e.ResourceID,
		ResourceType: string(e.ResourceType),
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		BookingRef:   e.BookingRef,
		Status:       string(e.Status),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// AssignRequest records a pending assignment for a resource.
type AssignRequest struct {
	ResourceID   string    `json:"resource_id" binding:"required,uuid"`
	ResourceType string    `json:"resource_type" binding:"required,oneof=vehicle driver"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	EndTime      time.Time `json:"end_time" binding:"required"`
	BookingRef   string    `json:"booking_ref" binding:"required"`
}

// Validate performs custom validation for AssignRequest.
func (r *AssignRequest) Validate() error {
	if !r.StartTime.Before(r.EndTime) {
		return availability.ErrInvalidWindow
	}
	return nil
}
