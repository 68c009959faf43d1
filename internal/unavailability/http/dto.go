package http

import (
	"time"

	"github.com/nekogravitycat/fleet-availability-backend/internal/availability"
	"github.com/nekogravitycat/fleet-availability-backend/internal/pkg/request"
	"github.com/nekogravitycat/fleet-availability-backend/internal/unavailability"
)

// ListPeriodsRequest defines query parameters for listing blackout periods.
type ListPeriodsRequest struct {
	request.RangeParams
}

// Validate performs custom validation for ListPeriodsRequest.
func (r *ListPeriodsRequest) Validate() error {
	return r.RangeParams.Validate()
}

// PeriodResponse is the API shape of a blackout period.
type PeriodResponse struct {
	ID           string    `json:"id"`
	ResourceID   string    `json:"resource_id"`
	ResourceType string    `json:"resource_type"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Reason       string    `json:"reason"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewPeriodResponse(p *unavailability.Period) PeriodResponse {
	return PeriodResponse{
		ID:           p.ID,
		ResourceID:   p.ResourceID,
		ResourceType: string(p.ResourceType),
		StartTime:    p.StartTime,
		EndTime:      p.EndTime,
		Reason:       p.Reason,
		Notes:        p.Notes,
		CreatedAt:    p.CreatedAt,
	}
}

// CreatePeriodRequest declares a blackout window for a resource.
type CreatePeriodRequest struct {
	ResourceID   string    `json:"resource_id" binding:"required,uuid"`
	ResourceType string    `json:"resource_type" binding:"required,oneof=vehicle driver"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	EndTime      time.Time `json:"end_time" binding:"required"`
	Reason       string    `json:"reason" binding:"required"`
	Notes        *string   `json:"notes"`
}

// Validate performs custom validation for CreatePeriodRequest.
func (r *CreatePeriodRequest) Validate() error {
	if !r.StartTime.Before(r.EndTime) {
		return availability.ErrInvalidWindow
	}
	return nil
}
