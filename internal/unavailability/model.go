package unavailability

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/fleet-availability-backend/internal/fleet"
	"github.com/nekogravitycat/fleet-availability-backend/internal/pkg/apperror"
)

var (
	ErrNotFound    = apperror.New(http.StatusNotFound, "unavailability period not found")
	ErrNotOwned    = apperror.New(http.StatusForbidden, "unavailability period does not belong to this vendor")
	ErrEmptyReason = apperror.New(http.StatusBadRequest, "reason is required")
)

// Period is a vendor-declared blackout window for a resource (maintenance,
// leave, etc.), unrelated to any booking. Created and destroyed only by
// explicit vendor actions; there is no implicit expiry.
type Period struct {
	ID           string
	ResourceID   string
	ResourceType fleet.ResourceType
	VendorID     string
	StartTime    time.Time
	EndTime      time.Time
	Reason       string
	Notes        *string
	CreatedAt    time.Time
}
