package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-service/internal/domain/dto"
	"github.com/guttosm/cargo-service/internal/service"
)

// IdentifyWaste handles GET /api/waste/identify requests.
//
// @Summary      List waste
// @Description  Lists items that are expired or out of uses on the simulated date, with their location.
// @Tags         Waste
// @Produce      json
// @Success      200 {object} dto.WasteResponse "Waste items"
// @Failure      503 {object} dto.ErrorResponse "Store unavailable"
// @Router       /api/waste/identify [get]
func (h *Handler) IdentifyWaste(c *gin.Context) {
	waste, err := h.waste.Identify(c.Request.Context())
	if err != nil {
		NewResponseBuilder(c).Fail(err)
		return
	}
	if waste == nil {
		waste = []service.WasteEntry{}
	}
	c.JSON(http.StatusOK, dto.WasteResponse{Success: true, WasteItems: waste})
}

// ReturnPlan handles POST /api/waste/return-plan requests.
//
// @Summary      Plan a waste return
// @Description  Selects the waste to load into the undocking container within its weight limit. The plan is a proposal; nothing is moved.
// @Tags         Waste
// @Accept       json
// @Produce      json
// @Param        request body dto.ReturnPlanRequest true "Undocking container and limits"
// @Success      200 {object} dto.ReturnPlanResponse "Return plan"
// @Failure      400 {object} dto.ErrorResponse "Invalid request"
// @Failure      404 {object} dto.ErrorResponse "Unknown container"
// @Router       /api/waste/return-plan [post]
func (h *Handler) ReturnPlan(c *gin.Context) {
	req, ok := bindJSON[dto.ReturnPlanRequest](c)
	if !ok {
		return
	}

	res, err := h.waste.PlanReturn(c.Request.Context(), service.ReturnPlanRequest{
		ContainerID:   req.UndockingContainerID,
		UndockingDate: req.Date(),
		MaxWeight:     req.MaxWeight,
	})
	if err != nil {
		NewResponseBuilder(c).Fail(err)
		return
	}
	c.JSON(http.StatusOK, dto.ReturnPlanResponse{Success: true, ReturnPlanResult: res})
}

// CompleteUndocking handles POST /api/waste/complete-undocking requests.
//
// @Summary      Complete an undocking
// @Description  Removes every item stored in the undocking container from the station.
// @Tags         Waste
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.CompleteUndockingRequest true "Undocking container"
// @Success      200 {object} dto.UndockingResponse "Items removed"
// @Failure      404 {object} dto.ErrorResponse "Unknown container"
// @Router       /api/waste/complete-undocking [post]
func (h *Handler) CompleteUndocking(c *gin.Context) {
	req, ok := bindJSON[dto.CompleteUndockingRequest](c)
	if !ok {
		return
	}
	at, _ := dto.ParseTimestamp(req.Timestamp)

	res, err := h.waste.CompleteUndocking(c.Request.Context(), req.UndockingContainerID, at)
	if err != nil {
		NewResponseBuilder(c).Fail(err)
		return
	}
	c.JSON(http.StatusOK, dto.UndockingResponse{Success: true, UndockingResult: res})
}
