package availability

import (
	"context"
	"fmt"

	"github.com/nekogravitycat/fleet-availability-backend/internal/fleet"
	"github.com/nekogravitycat/fleet-availability-backend/internal/metrics"
)

// BlockingSource yields every blocking interval known for a resource,
// unbounded in time. Range-limiting here would let a distant booking slip
// past the check, so sources must not apply a window.
type BlockingSource interface {
	Blocking(ctx context.Context, resourceID string, resourceType fleet.ResourceType) ([]Conflict, error)
}

// Engine is the single authority on "is resource R free for window W".
// It is stateless and read-only; the answer is accurate as of its own reads,
// and the write paths re-validate under a serializing transaction.
type Engine struct {
	schedules BlockingSource
	blackouts BlockingSource
	recorder  metrics.Recorder
}

// NewEngine creates an engine over the two conflict sources.
// recorder may be nil.
func NewEngine(schedules, blackouts BlockingSource, recorder metrics.Recorder) *Engine {
	return &Engine{
		schedules: schedules,
		blackouts: blackouts,
		recorder:  recorder,
	}
}

// Check runs the full availability check against both sources.
func (e *Engine) Check(ctx context.Context, q Query) (*Result, error) {
	return e.check(ctx, q, true)
}

// CheckSchedule runs the check against booking assignments only. Blackout
// creation uses this: a confirmed booking blocks a new blackout, but an
// existing blackout never blocks another one.
func (e *Engine) CheckSchedule(ctx context.Context, q Query) (*Result, error) {
	return e.check(ctx, q, false)
}

func (e *Engine) check(ctx context.Context, q Query, includeBlackouts bool) (*Result, error) {
	if !q.Start.Before(q.End) {
		return nil, ErrInvalidWindow
	}

	// Any source failure is a hard error. Defaulting to "available" on a
	// partial read would silently allow a double-booking.
	candidates, err := e.schedules.Blocking(ctx, q.ResourceID, q.ResourceType)
	if err != nil {
		return nil, fmt.Errorf("read schedule entries failed: %w", err)
	}

	if includeBlackouts {
		blackouts, err := e.blackouts.Blocking(ctx, q.ResourceID, q.ResourceType)
		if err != nil {
			return nil, fmt.Errorf("read unavailability periods failed: %w", err)
		}
		candidates = append(candidates, blackouts...)
	}

	// Collect the full conflict set; callers need to explain why a slot is
	// blocked, not merely that it is.
	var conflicts []Conflict
	for _, c := range candidates {
		if c.Overlaps(q.Start, q.End) {
			conflicts = append(conflicts, c)
		}
	}

	result := &Result{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}

	if e.recorder != nil {
		e.recorder.RecordCheck(result.Available)
		counts := map[Kind]int{}
		for _, c := range conflicts {
			counts[c.Kind]++
		}
		for kind, n := range counts {
			e.recorder.RecordConflicts(string(kind), n)
		}
	}

	return result, nil
}
