package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/fleet-availability-backend/internal/auth"
	"github.com/nekogravitycat/fleet-availability-backend/internal/calendar"
	"github.com/nekogravitycat/fleet-availability-backend/internal/pkg/response"
)

// ProjectRequest defines the required visible range for the calendar.
// Unlike list endpoints, both bounds are mandatory here: a calendar without
// a range would re-fetch a vendor's entire history on every render.
type ProjectRequest struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

type Handler struct {
	service calendar.Service
}

func NewHandler(service calendar.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Project(c *gin.Context) {
	var req ProjectRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	vendorID := auth.GetVendorID(c)

	events, err := h.service.Project(c.Request.Context(), vendorID, req.From, req.To)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}
