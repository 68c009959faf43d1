package unavailability

import (
	"context"

	"github.com/nekogravitycat/fleet-availability-backend/internal/availability"
	"github.com/nekogravitycat/fleet-availability-backend/internal/fleet"
)

// BlockingSource adapts the unavailability repository into the conflict
// engine's source interface: every declared period blocks its window.
type BlockingSource struct {
	repo Repository
}

func NewBlockingSource(repo Repository) *BlockingSource {
	return &BlockingSource{repo: repo}
}

func (s *BlockingSource) Blocking(ctx context.Context, resourceID string, resourceType fleet.ResourceType) ([]availability.Conflict, error) {
	periods, err := s.repo.ListResource(ctx, resourceID, resourceType)
	if err != nil {
		return nil, err
	}

	conflicts := make([]availability.Conflict, 0, len(periods))
	for _, p := range periods {
		conflicts = append(conflicts, availability.Conflict{
			Kind:         availability.KindBlackout,
			ID:           p.ID,
			ResourceID:   p.ResourceID,
			ResourceType: p.ResourceType,
			Start:        p.StartTime,
			End:          p.EndTime,
			Label:        p.Reason,
		})
	}
	return conflicts, nil
}
