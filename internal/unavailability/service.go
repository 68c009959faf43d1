package unavailability

import (
	"context"
	"strings"
	"time"

	"github.com/nekogravitycat/fleet-availability-backend/internal/availability"
	"github.com/nekogravitycat/fleet-availability-backend/internal/fleet"
	"github.com/nekogravitycat/fleet-availability-backend/internal/metrics"
)

type CreateRequest struct {
	VendorID     string
	ResourceID   string
	ResourceType fleet.ResourceType
	StartTime    time.Time
	EndTime      time.Time
	Reason       string
	Notes        *string
}

type Service interface {
	// Create declares a blackout period. Fails with a ConflictError when the
	// window overlaps an accepted schedule entry: a booking commitment to a
	// customer cannot be invalidated by a maintenance note.
	Create(ctx context.Context, req CreateRequest) (*Period, error)

	GetByID(ctx context.Context, id string) (*Period, error)
	ListVendor(ctx context.Context, vendorID string, from, to *time.Time) ([]*Period, error)

	// Delete is vendor-scoped; removing a blackout never creates a conflict,
	// so deleting is always permitted for the owner.
	Delete(ctx context.Context, vendorID, id string) error
}

type service struct {
	repo     Repository
	registry fleet.Service
	engine   *availability.Engine
	recorder metrics.Recorder
}

// NewService creates the unavailability service. recorder may be nil.
func NewService(repo Repository, registry fleet.Service, engine *availability.Engine, recorder metrics.Recorder) Service {
	return &service{
		repo:     repo,
		registry: registry,
		engine:   engine,
		recorder: recorder,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Period, error) {
	if !req.StartTime.Before(req.EndTime) {
		return nil, availability.ErrInvalidWindow
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, ErrEmptyReason
	}

	// Authorization precedes availability logic.
	owns, err := s.registry.OwnsResource(ctx, req.VendorID, req.ResourceID, req.ResourceType)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, fleet.ErrNotOwned
	}

	// Schedule-only check: existing blackouts never block a new one, but any
	// accepted booking in the window does.
	result, err := s.engine.CheckSchedule(ctx, availability.Query{
		VendorID:     req.VendorID,
		ResourceID:   req.ResourceID,
		ResourceType: req.ResourceType,
		Start:        req.StartTime,
		End:          req.EndTime,
	})
	if err != nil {
		return nil, err
	}
	if !result.Available {
		if s.recorder != nil {
			s.recorder.RecordBlockedWrite("mark_unavailable")
		}
		return nil, &availability.ConflictError{Conflicts: result.Conflicts}
	}

	p := &Period{
		ResourceID:   req.ResourceID,
		ResourceType: req.ResourceType,
		VendorID:     req.VendorID,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Reason:       strings.TrimSpace(req.Reason),
		Notes:        req.Notes,
	}

	// The repository re-checks inside the insert transaction; an accept that
	// committed between the check above and here surfaces the same way.
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Period, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListVendor(ctx context.Context, vendorID string, from, to *time.Time) ([]*Period, error) {
	return s.repo.ListVendor(ctx, vendorID, from, to)
}

func (s *service) Delete(ctx context.Context, vendorID, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.VendorID != vendorID {
		return ErrNotOwned
	}
	return s.repo.Delete(ctx, id)
}
