package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-service/internal/domain/dto"
	"github.com/guttosm/cargo-service/internal/service"
)

// PlaceItems handles POST /api/placement requests.
//
// @Summary      Place a batch of items
// @Description  Upserts the listed containers and items, then places the items by descending priority. Items that do not fit directly get a rearrangement proposal or are reported unplaced. Supports idempotency via Idempotency-Key header.
// @Tags         Placement
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.PlacementRequest true "Items and containers"
// @Success      200 {object} dto.PlacementResponse "Placement result"
// @Failure      400 {object} dto.ErrorResponse "Invalid item or container"
// @Failure      409 {object} dto.ErrorResponse "Concurrent modification"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      503 {object} dto.ErrorResponse "Store unavailable"
// @Failure      504 {object} dto.ErrorResponse "Engine busy"
// @Router       /api/placement [post]
func (h *Handler) PlaceItems(c *gin.Context) {
	req, ok := bindJSON[dto.PlacementRequest](c)
	if !ok {
		return
	}
	items, containers, err := req.ToModel()
	if err != nil {
		NewResponseBuilder(c).Fail(asInvalid("placement.batch", err))
		return
	}

	res, err := h.placement.PlaceItems(c.Request.Context(), service.PlacementRequest{
		Items:      items,
		Containers: containers,
	})
	if err != nil {
		NewResponseBuilder(c).Fail(err)
		return
	}
	c.JSON(http.StatusOK, dto.PlacementResponse{Success: true, PlacementResult: res})
}

// Place handles POST /api/place requests.
//
// @Summary      Place an item manually
// @Description  Puts an item at the given position. The box must be an orientation of the item, lie inside the container and not overlap other items. Any previous placement of the item is replaced.
// @Tags         Placement
// @Accept       json
// @Produce      json
// @Param        request body dto.PlaceRequest true "Manual placement"
// @Success      200 {object} dto.PlaceResponse "Placement"
// @Failure      400 {object} dto.ErrorResponse "Invalid position"
// @Failure      404 {object} dto.ErrorResponse "Unknown item or container"
// @Failure      409 {object} dto.ErrorResponse "Position overlaps another item"
// @Router       /api/place [post]
func (h *Handler) Place(c *gin.Context) {
	req, ok := bindJSON[dto.PlaceRequest](c)
	if !ok {
		return
	}
	at, _ := dto.ParseTimestamp(req.Timestamp)

	p, err := h.placement.PlaceManually(actor(c, req.UserID), service.ManualPlacement{
		ItemID:      req.ItemID,
		ContainerID: req.ContainerID,
		Position:    req.Position.Box(),
		At:          at,
	})
	if err != nil {
		NewResponseBuilder(c).Fail(err)
		return
	}
	c.JSON(http.StatusOK, dto.PlaceResponse{Success: true, Placement: p})
}

// Search handles GET /api/search requests.
//
// @Summary      Find an item
// @Description  Locates an item by id or name and lists the items to remove before it can be taken out.
// @Tags         Retrieval
// @Produce      json
// @Param        itemId query string false "Item ID"
// @Param        itemName query string false "Item name, used when itemId is empty"
// @Success      200 {object} dto.SearchResponse "Search result"
// @Failure      400 {object} dto.ErrorResponse "Neither itemId nor itemName given"
// @Router       /api/search [get]
func (h *Handler) Search(c *gin.Context) {
	res, err := h.placement.Search(c.Request.Context(), service.SearchQuery{
		ItemID:   c.Query("itemId"),
		ItemName: c.Query("itemName"),
	})
	if err != nil {
		NewResponseBuilder(c).Fail(err)
		return
	}
	c.JSON(http.StatusOK, dto.SearchResponse{Success: true, SearchResult: res})
}

// Retrieve handles POST /api/retrieve requests.
//
// @Summary      Retrieve an item
// @Description  Consumes one use of the item. The item keeps its placement.
// @Tags         Retrieval
// @Accept       json
// @Produce      json
// @Param        request body dto.RetrieveRequest true "Retrieval"
// @Success      200 {object} dto.RetrieveResponse "Uses left"
// @Failure      404 {object} dto.ErrorResponse "Unknown item"
// @Failure      504 {object} dto.ErrorResponse "Engine busy"
// @Router       /api/retrieve [post]
func (h *Handler) Retrieve(c *gin.Context) {
	req, ok := bindJSON[dto.RetrieveRequest](c)
	if !ok {
		return
	}
	at, _ := dto.ParseTimestamp(req.Timestamp)

	res, err := h.placement.Retrieve(actor(c, req.UserID), req.ItemID, at)
	if err != nil {
		NewResponseBuilder(c).Fail(err)
		return
	}
	c.JSON(http.StatusOK, dto.RetrieveResponse{Success: true, RetrieveResult: res})
}

// FreeSpace handles GET /api/containers/:id/free-space requests.
//
// @Summary      Container free space
// @Description  Lists the maximal free boxes of a container and its free volume.
// @Tags         Placement
// @Produce      json
// @Param        id path string true "Container ID"
// @Success      200 {object} dto.SuccessResponse "Free space"
// @Failure      404 {object} dto.ErrorResponse "Unknown container"
// @Router       /api/containers/{id}/free-space [get]
func (h *Handler) FreeSpace(c *gin.Context) {
	builder := NewResponseBuilder(c)

	fs, err := h.placement.FreeSpace(c.Request.Context(), c.Param("id"))
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(fs)
}

// RebuildFreeSpace handles POST /api/containers/:id/rebuild requests.
//
// @Summary      Rebuild container free space
// @Description  Recomputes the free boxes of a container from the items placed in it.
// @Tags         Placement
// @Produce      json
// @Param        id path string true "Container ID"
// @Success      200 {object} dto.SuccessResponse "Rebuilt free space"
// @Failure      404 {object} dto.ErrorResponse "Unknown container"
// @Router       /api/containers/{id}/rebuild [post]
func (h *Handler) RebuildFreeSpace(c *gin.Context) {
	builder := NewResponseBuilder(c)

	fs, err := h.placement.Rebuild(c.Request.Context(), c.Param("id"))
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(fs)
}
