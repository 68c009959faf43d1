package calendar

import (
	"context"
	"time"

	"github.com/nekogravitycat/fleet-availability-backend/internal/availability"
	"github.com/nekogravitycat/fleet-availability-backend/internal/fleet"
	"github.com/nekogravitycat/fleet-availability-backend/internal/schedule"
	"github.com/nekogravitycat/fleet-availability-backend/internal/unavailability"
)

// EventKind distinguishes the two event sources on the calendar.
type EventKind string

const (
	KindBooking     EventKind = "booking"
	KindUnavailable EventKind = "unavailable"
)

// Display colors are fixed per kind; consuming UIs render them as-is.
const (
	colorBooking     = "#3788d8"
	colorUnavailable = "#d32f2f"
)

// Event is a presentation-ready calendar entry. Never persisted; recomputed
// on every read. The calendar is display-only: availability decisions must
// go through the conflict engine, which looks beyond any visible range.
type Event struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Start        time.Time          `json:"start"`
	End          time.Time          `json:"end"`
	ResourceID   string             `json:"resource_id"`
	ResourceType fleet.ResourceType `json:"resource_type"`
	Kind         EventKind          `json:"kind"`
	Color        string             `json:"color"`
	Details      string             `json:"details,omitempty"`
}

// ScheduleSource is the range-scoped read the projector needs from the
// schedule adapter.
type ScheduleSource interface {
	ListVendor(ctx context.Context, vendorID string, from, to *time.Time) ([]*schedule.Entry, error)
}

// BlackoutSource is the range-scoped read from the unavailability store.
type BlackoutSource interface {
	ListVendor(ctx context.Context, vendorID string, from, to *time.Time) ([]*unavailability.Period, error)
}

type Service interface {
	// Project flattens schedule entries and blackout periods intersecting
	// [from, to) into a single event sequence. Ordering is stable for a fixed
	// input; consuming UIs re-sort by start time themselves.
	Project(ctx context.Context, vendorID string, from, to time.Time) ([]Event, error)
}

type service struct {
	schedules ScheduleSource
	blackouts BlackoutSource
}

func NewService(schedules ScheduleSource, blackouts BlackoutSource) Service {
	return &service{
		schedules: schedules,
		blackouts: blackouts,
	}
}

func (s *service) Project(ctx context.Context, vendorID string, from, to time.Time) ([]Event, error) {
	if !from.Before(to) {
		return nil, availability.ErrInvalidWindow
	}

	entries, err := s.schedules.ListVendor(ctx, vendorID, &from, &to)
	if err != nil {
		return nil, err
	}
	periods, err := s.blackouts.ListVendor(ctx, vendorID, &from, &to)
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(entries)+len(periods))
	for _, e := range entries {
		events = append(events, Event{
			ID:           e.ID,
			Title:        "Booking " + e.BookingRef,
			Start:        e.StartTime,
			End:          e.EndTime,
			ResourceID:   e.ResourceID,
			ResourceType: e.ResourceType,
			Kind:         KindBooking,
			Color:        colorBooking,
			Details:      string(e.Status),
		})
	}
	for _, p := range periods {
		details := ""
		if p.Notes != nil {
			details = *p.Notes
		}
		events = append(events, Event{
			ID:           p.ID,
			Title:        p.Reason,
			Start:        p.StartTime,
			End:          p.EndTime,
			ResourceID:   p.ResourceID,
			ResourceType: p.ResourceType,
			Kind:         KindUnavailable,
			Color:        colorUnavailable,
			Details:      details,
		})
	}

	return events, nil
}
