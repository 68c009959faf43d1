package availability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/fleet-availability-backend/internal/availability"
	"github.com/nekogravitycat/fleet-availability-backend/internal/fleet"
)

type fakeSource struct {
	conflicts []availability.Conflict
	err       error
}

func (f *fakeSource) Blocking(_ context.Context, _ string, _ fleet.ResourceType) ([]availability.Conflict, error) {
	return f.conflicts, f.err
}

type fakeRecorder struct {
	checks        []bool
	conflictKinds map[string]int
	blockedWrites []string
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{conflictKinds: map[string]int{}}
}

func (r *fakeRecorder) RecordCheck(available bool)             { r.checks = append(r.checks, available) }
func (r *fakeRecorder) RecordConflicts(kind string, count int) { r.conflictKinds[kind] += count }
func (r *fakeRecorder) RecordBlockedWrite(operation string) {
	r.blockedWrites = append(r.blockedWrites, operation)
}

func booking(id string, start, end time.Time) availability.Conflict {
	return availability.Conflict{
		Kind:         availability.KindBooking,
		ID:           id,
		ResourceID:   "res-1",
		ResourceType: fleet.TypeVehicle,
		Start:        start,
		End:          end,
		Label:        "Booking BK-" + id,
	}
}

func blackout(id string, start, end time.Time) availability.Conflict {
	return availability.Conflict{
		Kind:         availability.KindBlackout,
		ID:           id,
		ResourceID:   "res-1",
		ResourceType: fleet.TypeVehicle,
		Start:        start,
		End:          end,
		Label:        "maintenance",
	}
}

func query(start, end time.Time) availability.Query {
	return availability.Query{
		VendorID:     "vendor-1",
		ResourceID:   "res-1",
		ResourceType: fleet.TypeVehicle,
		Start:        start,
		End:          end,
	}
}

func TestEngineCheckInvalidWindow(t *testing.T) {
	engine := availability.NewEngine(&fakeSource{}, &fakeSource{}, nil)
	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	_, err := engine.Check(context.Background(), query(at, at))
	require.ErrorIs(t, err, availability.ErrInvalidWindow)

	_, err = engine.Check(context.Background(), query(at.Add(time.Hour), at))
	require.ErrorIs(t, err, availability.ErrInvalidWindow)
}

func TestEngineCheckAvailable(t *testing.T) {
	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	schedules := &fakeSource{conflicts: []availability.Conflict{
		booking("e1", at.Add(-2*time.Hour), at.Add(-time.Hour)),
		booking("e2", at.Add(3*time.Hour), at.Add(4*time.Hour)),
	}}
	engine := availability.NewEngine(schedules, &fakeSource{}, nil)

	result, err := engine.Check(context.Background(), query(at, at.Add(time.Hour)))
	require.NoError(t, err)
	require.True(t, result.Available)
	require.Empty(t, result.Conflicts)
}

// A window touching an existing booking end-to-start is free; back-to-back
// assignments must be possible.
func TestEngineCheckTouchingWindows(t *testing.T) {
	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	schedules := &fakeSource{conflicts: []availability.Conflict{
		booking("e1", at, at.Add(time.Hour)),
	}}
	engine := availability.NewEngine(schedules, &fakeSource{}, nil)

	result, err := engine.Check(context.Background(), query(at.Add(time.Hour), at.Add(2*time.Hour)))
	require.NoError(t, err)
	require.True(t, result.Available)

	result, err = engine.Check(context.Background(), query(at.Add(-time.Hour), at))
	require.NoError(t, err)
	require.True(t, result.Available)
}

func TestEngineCheckCollectsFullConflictSet(t *testing.T) {
	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	schedules := &fakeSource{conflicts: []availability.Conflict{
		booking("e1", at, at.Add(time.Hour)),
		booking("e2", at.Add(90*time.Minute), at.Add(3*time.Hour)),
		booking("e3", at.Add(10*time.Hour), at.Add(11*time.Hour)), // outside window
	}}
	blackouts := &fakeSource{conflicts: []availability.Conflict{
		blackout("p1", at.Add(2*time.Hour), at.Add(5*time.Hour)),
	}}
	engine := availability.NewEngine(schedules, blackouts, nil)

	result, err := engine.Check(context.Background(), query(at.Add(30*time.Minute), at.Add(4*time.Hour)))
	require.NoError(t, err)
	require.False(t, result.Available)
	require.Len(t, result.Conflicts, 3)

	ids := make([]string, 0, len(result.Conflicts))
	for _, c := range result.Conflicts {
		ids = append(ids, c.ID)
	}
	require.ElementsMatch(t, []string{"e1", "e2", "p1"}, ids)
}

// The check has no lookback horizon: a commitment far in the future must
// still block a query for that window.
func TestEngineCheckDistantConflict(t *testing.T) {
	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	distant := at.AddDate(0, 0, 300)
	schedules := &fakeSource{conflicts: []availability.Conflict{
		booking("far", distant, distant.Add(2*time.Hour)),
	}}
	engine := availability.NewEngine(schedules, &fakeSource{}, nil)

	result, err := engine.Check(context.Background(), query(distant.Add(time.Hour), distant.Add(3*time.Hour)))
	require.NoError(t, err)
	require.False(t, result.Available)
	require.Len(t, result.Conflicts, 1)
	require.Equal(t, "far", result.Conflicts[0].ID)
}

// A failed read must surface as an error, never as "available".
func TestEngineCheckSourceError(t *testing.T) {
	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	readErr := errors.New("connection refused")

	engine := availability.NewEngine(&fakeSource{err: readErr}, &fakeSource{}, nil)
	result, err := engine.Check(context.Background(), query(at, at.Add(time.Hour)))
	require.ErrorIs(t, err, readErr)
	require.Nil(t, result)

	engine = availability.NewEngine(&fakeSource{}, &fakeSource{err: readErr}, nil)
	result, err = engine.Check(context.Background(), query(at, at.Add(time.Hour)))
	require.ErrorIs(t, err, readErr)
	require.Nil(t, result)
}

func TestEngineCheckScheduleIgnoresBlackouts(t *testing.T) {
	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	blackouts := &fakeSource{conflicts: []availability.Conflict{
		blackout("p1", at, at.Add(8*time.Hour)),
	}}
	engine := availability.NewEngine(&fakeSource{}, blackouts, nil)

	result, err := engine.CheckSchedule(context.Background(), query(at, at.Add(time.Hour)))
	require.NoError(t, err)
	require.True(t, result.Available)

	result, err = engine.Check(context.Background(), query(at, at.Add(time.Hour)))
	require.NoError(t, err)
	require.False(t, result.Available)
}

func TestEngineCheckRecordsMetrics(t *testing.T) {
	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	schedules := &fakeSource{conflicts: []availability.Conflict{
		booking("e1", at, at.Add(time.Hour)),
		booking("e2", at.Add(30*time.Minute), at.Add(2*time.Hour)),
	}}
	blackouts := &fakeSource{conflicts: []availability.Conflict{
		blackout("p1", at, at.Add(time.Hour)),
	}}
	recorder := newFakeRecorder()
	engine := availability.NewEngine(schedules, blackouts, recorder)

	_, err := engine.Check(context.Background(), query(at, at.Add(time.Hour)))
	require.NoError(t, err)
	_, err = engine.Check(context.Background(), query(at.Add(5*time.Hour), at.Add(6*time.Hour)))
	require.NoError(t, err)

	require.Equal(t, []bool{false, true}, recorder.checks)
	require.Equal(t, 2, recorder.conflictKinds[string(availability.KindBooking)])
	require.Equal(t, 1, recorder.conflictKinds[string(availability.KindBlackout)])
}
