package http

import (
	"github.com/gin-gonic/gin"
)

// InventoryRoutes registers container and item management routes.
type InventoryRoutes struct {
	handler *Handler
}

// NewInventoryRoutes creates a new InventoryRoutes instance.
func NewInventoryRoutes(handler *Handler) *InventoryRoutes {
	return &InventoryRoutes{handler: handler}
}

// RegisterRoutes registers inventory routes.
func (r *InventoryRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/containers", r.handler.CreateContainer)
	rg.GET("/containers", r.handler.ListContainers)
	rg.GET("/containers/:id", r.handler.GetContainer)
	rg.DELETE("/containers/:id", r.handler.DeleteContainer)
	rg.GET("/containers/:id/free-space", r.handler.FreeSpace)
	rg.POST("/containers/:id/rebuild", r.handler.RebuildFreeSpace)

	rg.POST("/items", r.handler.CreateItem)
	rg.GET("/items", r.handler.ListItems)
	rg.GET("/items/:id", r.handler.GetItem)
	rg.DELETE("/items/:id", r.handler.DeleteItem)
}

// CargoRoutes registers placement, retrieval, waste, simulation, transfer
// and log routes.
type CargoRoutes struct {
	handler *Handler
}

// NewCargoRoutes creates a new CargoRoutes instance.
func NewCargoRoutes(handler *Handler) *CargoRoutes {
	return &CargoRoutes{handler: handler}
}

// RegisterRoutes registers the cargo operation routes.
func (r *CargoRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/placement", r.handler.PlaceItems)
	rg.POST("/place", r.handler.Place)
	rg.GET("/search", r.handler.Search)
	rg.POST("/retrieve", r.handler.Retrieve)

	waste := rg.Group("/waste")
	waste.GET("/identify", r.handler.IdentifyWaste)
	waste.POST("/return-plan", r.handler.ReturnPlan)
	waste.POST("/complete-undocking", r.handler.CompleteUndocking)

	simulate := rg.Group("/simulate")
	simulate.POST("/day", r.handler.Simulate)
	simulate.GET("/date", r.handler.CurrentDate)

	rg.POST("/import/items", r.handler.ImportItems)
	rg.POST("/import/containers", r.handler.ImportContainers)
	rg.GET("/export/arrangement", r.handler.ExportArrangement)

	rg.GET("/logs", r.handler.GetLogs)
}
