package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/schedules")

	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.POST("", h.Assign)
		group.POST("/:id/accept", h.Accept)
		group.POST("/:id/reject", h.Reject)
	}
}
