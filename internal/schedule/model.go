package schedule

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/fleet-availability-backend/internal/fleet"
	"github.com/nekogravitycat/fleet-availability-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "schedule entry not found")
	ErrNotOwned      = apperror.New(http.StatusForbidden, "schedule entry does not belong to this vendor")
	ErrNotPending    = apperror.New(http.StatusConflict, "only pending assignments can be accepted or rejected")
	ErrEmptyBooking  = apperror.New(http.StatusBadRequest, "booking reference is required")
	ErrTimeConflict  = apperror.New(http.StatusConflict, "resource is not available for the requested window")
	ErrInvalidStatus = apperror.New(http.StatusBadRequest, "invalid schedule entry status")
)

// Status of an assignment. Only accepted and completed entries bind the
// resource; pending entries may still be reassigned and rejected entries
// free the resource entirely.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
)

// Blocks reports whether an entry with this status constitutes a hard conflict.
func (s Status) Blocks() bool {
	return s == StatusAccepted || s == StatusCompleted
}

// Entry binds a resource to a booking for a half-open time window,
// typically pickup time to pickup time plus the estimated service duration.
type Entry struct {
	ID           string
	ResourceID   string
	ResourceType fleet.ResourceType
	VendorID     string
	StartTime    time.Time
	EndTime      time.Time
	BookingRef   string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
