package schedule

import (
	"context"

	"github.com/nekogravitycat/fleet-availability-backend/internal/availability"
	"github.com/nekogravitycat/fleet-availability-backend/internal/fleet"
)

// BlockingSource adapts the schedule repository into the conflict engine's
// source interface: accepted/completed entries become booking conflicts.
type BlockingSource struct {
	repo Repository
}

func NewBlockingSource(repo Repository) *BlockingSource {
	return &BlockingSource{repo: repo}
}

func (s *BlockingSource) Blocking(ctx context.Context, resourceID string, resourceType fleet.ResourceType) ([]availability.Conflict, error) {
	entries, err := s.repo.ListBlocking(ctx, resourceID, resourceType)
	if err != nil {
		return nil, err
	}

	conflicts := make([]availability.Conflict, 0, len(entries))
	for _, e := range entries {
		conflicts = append(conflicts, availability.Conflict{
			Kind:         availability.KindBooking,
			ID:           e.ID,
			ResourceID:   e.ResourceID,
			ResourceType: e.ResourceType,
			Start:        e.StartTime,
			End:          e.EndTime,
			Label:        "Booking " + e.BookingRef,
		})
	}
	return conflicts, nil
}
