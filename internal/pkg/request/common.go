package request

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/fleet-availability-backend/internal/pkg/apperror"
)

// ErrInvalidRange is returned when a from/to pair is sent out of order.
var ErrInvalidRange = apperror.New(http.StatusBadRequest, "'from' must be before 'to'")

// RangeParams holds the optional from/to window shared by list endpoints.
// Both bounds are optional; when both are present they must be ordered.
type RangeParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To   *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

// Validate performs custom validation for RangeParams.
func (r *RangeParams) Validate() error {
	if r.From != nil && r.To != nil && !r.From.Before(*r.To) {
		return ErrInvalidRange
	}
	return nil
}
