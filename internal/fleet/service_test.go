package fleet_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/fleet-availability-backend/internal/fleet"
)

type fakeRepo struct {
	resources map[string]*fleet.Resource
	seq       int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{resources: map[string]*fleet.Resource{}}
}

func (r *fakeRepo) Create(_ context.Context, res *fleet.Resource) error {
	r.seq++
	res.ID = fmt.Sprintf("res-%d", r.seq)
	stored := *res
	r.resources[res.ID] = &stored
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*fleet.Resource, error) {
	res, ok := r.resources[id]
	if !ok {
		return nil, fleet.ErrNotFound
	}
	copied := *res
	return &copied, nil
}

func (r *fakeRepo) ListByVendor(_ context.Context, vendorID string) ([]*fleet.Resource, error) {
	var out []*fleet.Resource
	for _, res := range r.resources {
		if res.VendorID == vendorID {
			copied := *res
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.resources[id]; !ok {
		return fleet.ErrNotFound
	}
	delete(r.resources, id)
	return nil
}

func strPtr(s string) *string { return &s }

func TestCreateValidation(t *testing.T) {
	svc := fleet.NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, fleet.CreateRequest{VendorID: "vendor-1", Type: fleet.TypeVehicle, Name: "  "})
	require.ErrorIs(t, err, fleet.ErrEmptyName)

	_, err = svc.Create(ctx, fleet.CreateRequest{VendorID: "vendor-1", Type: "boat", Name: "Sea Ray"})
	require.ErrorIs(t, err, fleet.ErrInvalidType)

	res, err := svc.Create(ctx, fleet.CreateRequest{
		VendorID:    "vendor-1",
		Type:        fleet.TypeVehicle,
		Name:        " Sprinter 311 ",
		PlateNumber: strPtr("ABC-1234"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.ID)
	require.Equal(t, "Sprinter 311", res.Name)
}

func TestListSplitsByType(t *testing.T) {
	svc := fleet.NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, fleet.CreateRequest{VendorID: "vendor-1", Type: fleet.TypeVehicle, Name: "Sprinter"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, fleet.CreateRequest{VendorID: "vendor-1", Type: fleet.TypeDriver, Name: "Daniela", Phone: strPtr("+49 170 000")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, fleet.CreateRequest{VendorID: "vendor-2", Type: fleet.TypeVehicle, Name: "Crafter"})
	require.NoError(t, err)

	list, err := svc.List(ctx, "vendor-1")
	require.NoError(t, err)
	require.Len(t, list.Vehicles, 1)
	require.Len(t, list.Drivers, 1)
	require.Equal(t, "Sprinter", list.Vehicles[0].Name)
	require.Equal(t, "Daniela", list.Drivers[0].Name)
}

func TestDeleteOwnership(t *testing.T) {
	svc := fleet.NewService(newFakeRepo())
	ctx := context.Background()

	res, err := svc.Create(ctx, fleet.CreateRequest{VendorID: "vendor-1", Type: fleet.TypeVehicle, Name: "Sprinter"})
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, "vendor-2", res.ID), fleet.ErrNotOwned)
	require.ErrorIs(t, svc.Delete(ctx, "vendor-1", "res-missing"), fleet.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, "vendor-1", res.ID))
}

// Ownership fails closed: unknown resources, foreign vendors, and type
// mismatches are all "not owned", with no error for the unknown case.
func TestOwnsResource(t *testing.T) {
	svc := fleet.NewService(newFakeRepo())
	ctx := context.Background()

	res, err := svc.Create(ctx, fleet.CreateRequest{VendorID: "vendor-1", Type: fleet.TypeVehicle, Name: "Sprinter"})
	require.NoError(t, err)

	owns, err := svc.OwnsResource(ctx, "vendor-1", res.ID, fleet.TypeVehicle)
	require.NoError(t, err)
	require.True(t, owns)

	owns, err = svc.OwnsResource(ctx, "vendor-2", res.ID, fleet.TypeVehicle)
	require.NoError(t, err)
	require.False(t, owns)

	owns, err = svc.OwnsResource(ctx, "vendor-1", res.ID, fleet.TypeDriver)
	require.NoError(t, err)
	require.False(t, owns)

	owns, err = svc.OwnsResource(ctx, "vendor-1", "res-missing", fleet.TypeVehicle)
	require.NoError(t, err)
	require.False(t, owns)
}
