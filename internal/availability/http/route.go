package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/availability")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.POST("/rooms", h.CheckRooms)
		group.POST("/tables", h.CheckTables)
		group.POST("/service", h.CheckService)
		group.POST("/inventory", h.CheckInventory)
	}
}
