package unavailability_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/fleet-availability-backend/internal/availability"
	"github.com/nekogravitycat/fleet-availability-backend/internal/fleet"
	"github.com/nekogravitycat/fleet-availability-backend/internal/unavailability"
)

type fakeRepo struct {
	periods map[string]*unavailability.Period
	seq     int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{periods: map[string]*unavailability.Period{}}
}

func (r *fakeRepo) Create(_ context.Context, p *unavailability.Period) error {
	r.seq++
	p.ID = fmt.Sprintf("period-%d", r.seq)
	p.CreatedAt = time.Now()
	stored := *p
	r.periods[p.ID] = &stored
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*unavailability.Period, error) {
	p, ok := r.periods[id]
	if !ok {
		return nil, unavailability.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeRepo) ListVendor(_ context.Context, vendorID string, from, to *time.Time) ([]*unavailability.Period, error) {
	var out []*unavailability.Period
	for _, p := range r.periods {
		if p.VendorID != vendorID {
			continue
		}
		if from != nil && !p.EndTime.After(*from) {
			continue
		}
		if to != nil && !p.StartTime.Before(*to) {
			continue
		}
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeRepo) ListResource(_ context.Context, resourceID string, resourceType fleet.ResourceType) ([]*unavailability.Period, error) {
	var out []*unavailability.Period
	for _, p := range r.periods {
		if p.ResourceID != resourceID || p.ResourceType != resourceType {
			continue
		}
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.periods[id]; !ok {
		return unavailability.ErrNotFound
	}
	delete(r.periods, id)
	return nil
}

type fakeRegistry struct {
	resources map[string]*fleet.Resource
}

func (f *fakeRegistry) Create(_ context.Context, _ fleet.CreateRequest) (*fleet.Resource, error) {
	panic("not used")
}

func (f *fakeRegistry) GetByID(_ context.Context, id string) (*fleet.Resource, error) {
	res, ok := f.resources[id]
	if !ok {
		return nil, fleet.ErrNotFound
	}
	return res, nil
}

func (f *fakeRegistry) List(_ context.Context, _ string) (*fleet.List, error) {
	panic("not used")
}

func (f *fakeRegistry) Delete(_ context.Context, _, _ string) error {
	panic("not used")
}

func (f *fakeRegistry) OwnsResource(_ context.Context, vendorID, resourceID string, resourceType fleet.ResourceType) (bool, error) {
	res, ok := f.resources[resourceID]
	return ok && res.VendorID == vendorID && res.Type == resourceType, nil
}

type staticSource struct {
	conflicts []availability.Conflict
}

func (s staticSource) Blocking(_ context.Context, _ string, _ fleet.ResourceType) ([]availability.Conflict, error) {
	return s.conflicts, nil
}

type fakeRecorder struct {
	blockedWrites []string
}

func (r *fakeRecorder) RecordCheck(bool)            {}
func (r *fakeRecorder) RecordConflicts(string, int) {}
func (r *fakeRecorder) RecordBlockedWrite(operation string) {
	r.blockedWrites = append(r.blockedWrites, operation)
}

func newFixture(bookings []availability.Conflict) (unavailability.Service, *fakeRepo, *availability.Engine, *fakeRecorder) {
	repo := newFakeRepo()
	registry := &fakeRegistry{resources: map[string]*fleet.Resource{
		"veh-1": {ID: "veh-1", VendorID: "vendor-1", Type: fleet.TypeVehicle},
	}}
	recorder := &fakeRecorder{}
	engine := availability.NewEngine(staticSource{conflicts: bookings}, unavailability.NewBlockingSource(repo), recorder)
	return unavailability.NewService(repo, registry, engine, recorder), repo, engine, recorder
}

func createReq(start, end time.Time, reason string) unavailability.CreateRequest {
	return unavailability.CreateRequest{
		VendorID:     "vendor-1",
		ResourceID:   "veh-1",
		ResourceType: fleet.TypeVehicle,
		StartTime:    start,
		EndTime:      end,
		Reason:       reason,
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _, _, _ := newFixture(nil)
	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()

	_, err := svc.Create(ctx, createReq(at, at, "maintenance"))
	require.ErrorIs(t, err, availability.ErrInvalidWindow)

	_, err = svc.Create(ctx, createReq(at, at.Add(time.Hour), "   "))
	require.ErrorIs(t, err, unavailability.ErrEmptyReason)

	req := createReq(at, at.Add(time.Hour), "maintenance")
	req.VendorID = "vendor-2"
	_, err = svc.Create(ctx, req)
	require.ErrorIs(t, err, fleet.ErrNotOwned)
}

// An accepted booking in the window wins over the blackout declaration:
// creation fails and nothing is persisted.
func TestCreateBlockedByBooking(t *testing.T) {
	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc, repo, _, recorder := newFixture([]availability.Conflict{{
		Kind:       availability.KindBooking,
		ID:         "entry-1",
		ResourceID: "veh-1",
		Start:      at,
		End:        at.Add(2 * time.Hour),
		Label:      "Booking BK-1",
	}})

	_, err := svc.Create(context.Background(), createReq(at.Add(time.Hour), at.Add(3*time.Hour), "maintenance"))
	var conflictErr *availability.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)
	require.Equal(t, "entry-1", conflictErr.Conflicts[0].ID)

	require.Empty(t, repo.periods)
	require.Equal(t, []string{"mark_unavailable"}, recorder.blockedWrites)
}

// Blackouts never block other blackouts; overlapping periods may coexist.
func TestCreateOverlappingBlackoutsAllowed(t *testing.T) {
	svc, repo, _, _ := newFixture(nil)
	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()

	_, err := svc.Create(ctx, createReq(at, at.Add(4*time.Hour), "maintenance"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createReq(at.Add(time.Hour), at.Add(2*time.Hour), "inspection"))
	require.NoError(t, err)

	require.Len(t, repo.periods, 2)
}

// A declared blackout makes the window unavailable, with the reason carried
// in the conflict label; deleting it frees the window again.
func TestBlackoutLifecycle(t *testing.T) {
	svc, _, engine, _ := newFixture(nil)
	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()

	p, err := svc.Create(ctx, createReq(at, at.Add(3*time.Hour), "maintenance"))
	require.NoError(t, err)

	q := availability.Query{
		VendorID:     "vendor-1",
		ResourceID:   "veh-1",
		ResourceType: fleet.TypeVehicle,
		Start:        at.Add(time.Hour),
		End:          at.Add(2 * time.Hour),
	}
	result, err := engine.Check(ctx, q)
	require.NoError(t, err)
	require.False(t, result.Available)
	require.Len(t, result.Conflicts, 1)
	require.Equal(t, availability.KindBlackout, result.Conflicts[0].Kind)
	require.Equal(t, "maintenance", result.Conflicts[0].Label)

	require.NoError(t, svc.Delete(ctx, "vendor-1", p.ID))

	result, err = engine.Check(ctx, q)
	require.NoError(t, err)
	require.True(t, result.Available)
}

func TestDeleteGuards(t *testing.T) {
	svc, _, _, _ := newFixture(nil)
	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()

	p, err := svc.Create(ctx, createReq(at, at.Add(time.Hour), "maintenance"))
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, "vendor-2", p.ID), unavailability.ErrNotOwned)
	require.ErrorIs(t, svc.Delete(ctx, "vendor-1", "period-missing"), unavailability.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, "vendor-1", p.ID))
}
