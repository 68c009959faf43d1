package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nekogravitycat/fleet-availability-backend/internal/auth"
	"github.com/nekogravitycat/fleet-availability-backend/internal/availability"
	availHttp "github.com/nekogravitycat/fleet-availability-backend/internal/availability/http"
	"github.com/nekogravitycat/fleet-availability-backend/internal/fleet"
	"github.com/nekogravitycat/fleet-availability-backend/internal/pkg/response"
	"github.com/nekogravitycat/fleet-availability-backend/internal/unavailability"
)

type Handler struct {
	service unavailability.Service
}

func NewHandler(service unavailability.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListPeriodsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	vendorID := auth.GetVendorID(c)

	periods, err := h.service.ListVendor(c.Request.Context(), vendorID, req.From, req.To)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]PeriodResponse, 0, len(periods))
	for _, p := range periods {
		items = append(items, NewPeriodResponse(p))
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	vendorID := auth.GetVendorID(c)

	p, err := h.service.Create(c.Request.Context(), unavailability.CreateRequest{
		VendorID:     vendorID,
		ResourceID:   req.ResourceID,
		ResourceType: fleet.ResourceType(req.ResourceType),
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Reason:       req.Reason,
		Notes:        req.Notes,
	})
	if err != nil {
		var conflictErr *availability.ConflictError
		if errors.As(err, &conflictErr) {
			response.ErrorWithDetails(c, http.StatusConflict,
				"window overlaps an accepted booking assignment",
				availHttp.NewConflictList(conflictErr.Conflicts))
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewPeriodResponse(p))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	vendorID := auth.GetVendorID(c)

	if err := h.service.Delete(c.Request.Context(), vendorID, id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
