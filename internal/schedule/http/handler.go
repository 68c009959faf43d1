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
	"github.com/nekogravitycat/fleet-availability-backend/internal/schedule"
)

type Handler struct {
	service schedule.Service
}

func NewHandler(service schedule.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListSchedulesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	vendorID := auth.GetVendorID(c)
	ctx := c.Request.Context()

	entries, err := h.service.ListVendor(ctx, vendorID, req.From, req.To)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		if req.ResourceID != "" && e.ResourceID != req.ResourceID {
			continue
		}
		items = append(items, NewEntryResponse(e))
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Assign(c *gin.Context) {
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	vendorID := auth.GetVendorID(c)

	e, err := h.service.Assign(c.Request.Context(), schedule.AssignRequest{
		VendorID:     vendorID,
		ResourceID:   req.ResourceID,
		ResourceType: fleet.ResourceType(req.ResourceType),
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		BookingRef:   req.BookingRef,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewEntryResponse(e))
}

func (h *Handler) Accept(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	vendorID := auth.GetVendorID(c)

	e, err := h.service.Accept(c.Request.Context(), vendorID, id)
	if err != nil {
		var conflictErr *availability.ConflictError
		if errors.As(err, &conflictErr) {
			response.ErrorWithDetails(c, http.StatusConflict,
				"resource is not available for the requested window",
				availHttp.NewConflictList(conflictErr.Conflicts))
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewEntryResponse(e))
}

func (h *Handler) Reject(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	vendorID := auth.GetVendorID(c)

	e, err := h.service.Reject(c.Request.Context(), vendorID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewEntryResponse(e))
}
