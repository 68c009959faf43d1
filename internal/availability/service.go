package availability

import (
	"context"

	"github.com/nekogravitycat/fleet-availability-backend/internal/fleet"
)

// Service is the vendor-facing entry point: it verifies resource ownership
// before any conflict logic runs, then delegates to the engine.
type Service interface {
	CheckAvailability(ctx context.Context, q Query) (*Result, error)
}

type service struct {
	engine   *Engine
	registry fleet.Service
}

func NewService(engine *Engine, registry fleet.Service) Service {
	return &service{
		engine:   engine,
		registry: registry,
	}
}

func (s *service) CheckAvailability(ctx context.Context, q Query) (*Result, error) {
	if !q.Start.Before(q.End) {
		return nil, ErrInvalidWindow
	}

	owns, err := s.registry.OwnsResource(ctx, q.VendorID, q.ResourceID, q.ResourceType)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, fleet.ErrNotOwned
	}

	return s.engine.Check(ctx, q)
}
