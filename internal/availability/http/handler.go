package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/fleet-availability-backend/internal/auth"
	"github.com/nekogravitycat/fleet-availability-backend/internal/availability"
	"github.com/nekogravitycat/fleet-availability-backend/internal/fleet"
	"github.com/nekogravitycat/fleet-availability-backend/internal/pkg/response"
)

type Handler struct {
	service availability.Service
}

func NewHandler(service availability.Service) *Handler {
	return &Handler{service: service}
}

// Check answers "can this resource be reserved for [start, end)" and always
// reveals why when it cannot.
func (h *Handler) Check(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	vendorID := auth.GetVendorID(c)

	result, err := h.service.CheckAvailability(c.Request.Context(), availability.Query{
		VendorID:     vendorID,
		ResourceID:   req.ResourceID,
		ResourceType: fleet.ResourceType(req.ResourceType),
		Start:        req.StartTime,
		End:          req.EndTime,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, CheckResponse{
		Available: result.Available,
		Conflicts: NewConflictList(result.Conflicts),
	})
}
