package schedule

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nekogravitycat/fleet-availability-backend/internal/availability"
	"github.com/nekogravitycat/fleet-availability-backend/internal/fleet"
	"github.com/nekogravitycat/fleet-availability-backend/internal/metrics"
)

// AssignRequest creates a pending assignment binding a resource to a booking.
type AssignRequest struct {
	VendorID     string
	ResourceID   string
	ResourceType fleet.ResourceType
	StartTime    time.Time
	EndTime      time.Time
	BookingRef   string
}

type Service interface {
	// Assign records a pending assignment. Pending entries are informational
	// only; they do not block other reservations until accepted.
	Assign(ctx context.Context, req AssignRequest) (*Entry, error)

	GetByID(ctx context.Context, id string) (*Entry, error)
	ListVendor(ctx context.Context, vendorID string, from, to *time.Time) ([]*Entry, error)
	ListResource(ctx context.Context, resourceID string, resourceType fleet.ResourceType, from, to *time.Time) ([]*Entry, error)

	// Accept confirms a pending assignment, making it a hard commitment.
	// Fails with a ConflictError when the window is no longer free.
	Accept(ctx context.Context, vendorID, id string) (*Entry, error)

	// Reject frees the resource; rejected entries never conflict again.
	Reject(ctx context.Context, vendorID, id string) (*Entry, error)
}

type service struct {
	repo     Repository
	registry fleet.Service
	engine   *availability.Engine
	recorder metrics.Recorder
}

// NewService creates the schedule service. recorder may be nil.
func NewService(repo Repository, registry fleet.Service, engine *availability.Engine, recorder metrics.Recorder) Service {
	return &service{
		repo:     repo,
		registry: registry,
		engine:   engine,
		recorder: recorder,
	}
}

func (s *service) Assign(ctx context.Context, req AssignRequest) (*Entry, error) {
	if !req.StartTime.Before(req.EndTime) {
		return nil, availability.ErrInvalidWindow
	}
	if strings.TrimSpace(req.BookingRef) == "" {
		return nil, ErrEmptyBooking
	}

	owns, err := s.registry.OwnsResource(ctx, req.VendorID, req.ResourceID, req.ResourceType)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, fleet.ErrNotOwned
	}

	e := &Entry{
		ResourceID:   req.ResourceID,
		ResourceType: req.ResourceType,
		VendorID:     req.VendorID,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		BookingRef:   strings.TrimSpace(req.BookingRef),
		Status:       StatusPending,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Entry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListVendor(ctx context.Context, vendorID string, from, to *time.Time) ([]*Entry, error) {
	return s.repo.ListVendor(ctx, vendorID, from, to)
}

func (s *service) ListResource(ctx context.Context, resourceID string, resourceType fleet.ResourceType, from, to *time.Time) ([]*Entry, error) {
	return s.repo.ListResource(ctx, resourceID, resourceType, from, to)
}

func (s *service) Accept(ctx context.Context, vendorID, id string) (*Entry, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.VendorID != vendorID {
		return nil, ErrNotOwned
	}
	if e.Status != StatusPending {
		return nil, ErrNotPending
	}

	// Pre-check for a precise conflict report. The pending entry itself is
	// never blocking, so there is no self-conflict to exclude.
	result, err := s.engine.Check(ctx, availability.Query{
		VendorID:     vendorID,
		ResourceID:   e.ResourceID,
		ResourceType: e.ResourceType,
		Start:        e.StartTime,
		End:          e.EndTime,
	})
	if err != nil {
		return nil, err
	}
	if !result.Available {
		if s.recorder != nil {
			s.recorder.RecordBlockedWrite("accept_assignment")
		}
		return nil, &availability.ConflictError{Conflicts: result.Conflicts}
	}

	// The repository re-checks under a lock; a concurrent accept that slipped
	// between the check above and the write surfaces as the same error.
	if err := s.repo.Accept(ctx, e); err != nil {
		if s.recorder != nil {
			var conflictErr *availability.ConflictError
			if errors.As(err, &conflictErr) || errors.Is(err, ErrTimeConflict) {
				s.recorder.RecordBlockedWrite("accept_assignment")
			}
		}
		return nil, err
	}
	return e, nil
}

func (s *service) Reject(ctx context.Context, vendorID, id string) (*Entry, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.VendorID != vendorID {
		return nil, ErrNotOwned
	}
	if e.Status != StatusPending {
		return nil, ErrNotPending
	}

	if err := s.repo.Reject(ctx, id); err != nil {
		return nil, err
	}
	e.Status = StatusRejected
	return e, nil
}
