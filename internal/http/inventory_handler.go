package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-service/internal/domain/dto"
)

// CreateContainer handles POST /api/containers requests.
//
// @Summary      Create container
// @Description  Registers a storage container and its empty space index.
// @Tags         Inventory
// @Accept       json
// @Produce      json
// @Param        request body dto.ContainerRequest true "Container"
// @Success      201 {object} dto.SuccessResponse "Container created"
// @Failure      400 {object} dto.ErrorResponse "Invalid container"
// @Failure      503 {object} dto.ErrorResponse "Store unavailable"
// @Router       /api/containers [post]
func (h *Handler) CreateContainer(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := bindJSON[dto.ContainerRequest](c)
	if !ok {
		return
	}
	container, err := req.ToModel()
	if err != nil {
		builder.Fail(asInvalid("inventory.create_container", err))
		return
	}
	if err := h.inventory.CreateContainer(c.Request.Context(), &container); err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessCreated(container)
}

// ListContainers handles GET /api/containers requests.
//
// @Summary      List containers
// @Tags         Inventory
// @Produce      json
// @Success      200 {object} dto.SuccessResponse "Containers"
// @Failure      503 {object} dto.ErrorResponse "Store unavailable"
// @Router       /api/containers [get]
func (h *Handler) ListContainers(c *gin.Context) {
	builder := NewResponseBuilder(c)

	containers, err := h.inventory.ListContainers(c.Request.Context())
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(containers)
}

// GetContainer handles GET /api/containers/:id requests.
//
// @Summary      Get container
// @Tags         Inventory
// @Produce      json
// @Param        id path string true "Container ID"
// @Success      200 {object} dto.SuccessResponse "Container"
// @Failure      404 {object} dto.ErrorResponse "Unknown container"
// @Router       /api/containers/{id} [get]
func (h *Handler) GetContainer(c *gin.Context) {
	builder := NewResponseBuilder(c)

	container, err := h.inventory.GetContainer(c.Request.Context(), c.Param("id"))
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(container)
}

// DeleteContainer handles DELETE /api/containers/:id requests.
//
// @Summary      Delete container
// @Description  Removes an empty container. A container that still holds items is rejected.
// @Tags         Inventory
// @Produce      json
// @Param        id path string true "Container ID"
// @Success      200 {object} dto.SuccessResponse "Container deleted"
// @Failure      400 {object} dto.ErrorResponse "Container not empty"
// @Failure      404 {object} dto.ErrorResponse "Unknown container"
// @Router       /api/containers/{id} [delete]
func (h *Handler) DeleteContainer(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id := c.Param("id")
	if err := h.inventory.DeleteContainer(c.Request.Context(), id); err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(gin.H{"containerId": id, "deleted": true})
}

// CreateItem handles POST /api/items requests.
//
// @Summary      Create item
// @Description  Registers an item without placing it.
// @Tags         Inventory
// @Accept       json
// @Produce      json
// @Param        request body dto.ItemRequest true "Item"
// @Success      201 {object} dto.SuccessResponse "Item created"
// @Failure      400 {object} dto.ErrorResponse "Invalid item"
// @Failure      503 {object} dto.ErrorResponse "Store unavailable"
// @Router       /api/items [post]
func (h *Handler) CreateItem(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := bindJSON[dto.ItemRequest](c)
	if !ok {
		return
	}
	item, err := req.ToModel()
	if err != nil {
		builder.Fail(asInvalid("inventory.create_item", err))
		return
	}
	if err := h.inventory.CreateItem(c.Request.Context(), &item); err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessCreated(item)
}

// ListItems handles GET /api/items requests.
//
// @Summary      List items
// @Tags         Inventory
// @Produce      json
// @Success      200 {object} dto.SuccessResponse "Items"
// @Router       /api/items [get]
func (h *Handler) ListItems(c *gin.Context) {
	builder := NewResponseBuilder(c)

	items, err := h.inventory.ListItems(c.Request.Context())
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(items)
}

// GetItem handles GET /api/items/:id requests.
//
// @Summary      Get item
// @Tags         Inventory
// @Produce      json
// @Param        id path string true "Item ID"
// @Success      200 {object} dto.SuccessResponse "Item"
// @Failure      404 {object} dto.ErrorResponse "Unknown item"
// @Router       /api/items/{id} [get]
func (h *Handler) GetItem(c *gin.Context) {
	builder := NewResponseBuilder(c)

	item, err := h.inventory.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(item)
}

// DeleteItem handles DELETE /api/items/:id requests.
//
// @Summary      Delete item
// @Description  Removes an item, freeing its placement first.
// @Tags         Inventory
// @Produce      json
// @Param        id path string true "Item ID"
// @Success      200 {object} dto.SuccessResponse "Item deleted"
// @Failure      404 {object} dto.ErrorResponse "Unknown item"
// @Router       /api/items/{id} [delete]
func (h *Handler) DeleteItem(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id := c.Param("id")
	if err := h.inventory.DeleteItem(c.Request.Context(), id); err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(gin.H{"itemId": id, "deleted": true})
}
