package fleet

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/fleet-availability-backend/internal/pkg/apperror"
)

var (
	ErrNotFound    = apperror.New(http.StatusNotFound, "resource not found")
	ErrNotOwned    = apperror.New(http.StatusForbidden, "resource does not belong to this vendor")
	ErrEmptyName   = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidType = apperror.New(http.StatusBadRequest, "resource type must be vehicle or driver")
	ErrInUse       = apperror.New(http.StatusConflict, "resource is referenced by schedule entries")
)

// ResourceType distinguishes the two kinds of schedulable resources.
type ResourceType string

const (
	TypeVehicle ResourceType = "vehicle"
	TypeDriver  ResourceType = "driver"
)

// Valid reports whether t is one of the known resource types.
func (t ResourceType) Valid() bool {
	return t == TypeVehicle || t == TypeDriver
}

// Resource is a schedulable unit (a vehicle or a driver) owned by exactly
// one vendor. Ownership never transfers while the resource is referenced.
type Resource struct {
	ID       string
	VendorID string
	Type     ResourceType
	Name     string

	// Vehicle fields
	PlateNumber *string

	// Driver fields
	LicenseNumber *string
	Phone         *string

	CreatedAt time.Time
}

// List groups a vendor's resources by type. Vendor fleets are small,
// so there is no pagination here.
type List struct {
	Vehicles []*Resource
	Drivers  []*Resource
}
