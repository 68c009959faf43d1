package availability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/nekogravitycat/fleet-availability-backend/internal/fleet"
	"github.com/nekogravitycat/fleet-availability-backend/internal/pkg/apperror"
)

var ErrInvalidWindow = apperror.New(http.StatusBadRequest, "start time must be before end time")

// Kind tags the source a blocking interval came from.
type Kind string

const (
	KindBooking  Kind = "booking"
	KindBlackout Kind = "blackout"
)

// Conflict is the single shape the engine works with: a booking assignment
// and a blackout period both reduce to a resource-bound half-open interval
// with a human-readable label.
type Conflict struct {
	Kind         Kind
	ID           string
	ResourceID   string
	ResourceType fleet.ResourceType
	Start        time.Time
	End          time.Time
	Label        string
}

// Overlaps reports whether the conflict's [Start, End) window intersects
// [start, end). Touching windows (End == start) do not overlap, so
// back-to-back bookings are allowed.
func (c Conflict) Overlaps(start, end time.Time) bool {
	return c.Start.Before(end) && c.End.After(start)
}

// Query is the input to a single availability check. Never persisted.
type Query struct {
	VendorID     string
	ResourceID   string
	ResourceType fleet.ResourceType
	Start        time.Time
	End          time.Time
}

// Result is the outcome of a check: available iff the conflict set is empty.
type Result struct {
	Available bool
	Conflicts []Conflict
}

// ConflictError is returned by write paths whose proposed window collides
// with existing records. It carries the full conflict set so callers can
// tell the user exactly what is in the way.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("window conflicts with %d existing record(s)", len(e.Conflicts))
}
