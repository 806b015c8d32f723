package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-service/internal/domain/dto"
	"github.com/guttosm/cargo-service/internal/service"
)

// Simulate handles POST /api/simulate/day requests.
//
// @Summary      Advance simulated time
// @Description  Advances the clock by numOfDays or to toTimestamp, using the listed items once per day. Reports items used, expired and depleted.
// @Tags         Simulation
// @Accept       json
// @Produce      json
// @Param        request body dto.SimulateRequest true "Simulation target"
// @Success      200 {object} dto.SimulateResponse "New date and changes"
// @Failure      400 {object} dto.ErrorResponse "Invalid target"
// @Failure      404 {object} dto.ErrorResponse "Unknown item"
// @Failure      504 {object} dto.ErrorResponse "Engine busy"
// @Router       /api/simulate/day [post]
func (h *Handler) Simulate(c *gin.Context) {
	req, ok := bindJSON[dto.SimulateRequest](c)
	if !ok {
		return
	}

	usage := make([]service.ItemUse, 0, len(req.ItemsToBeUsedPerDay))
	for _, u := range req.ItemsToBeUsedPerDay {
		usage = append(usage, service.ItemUse{ItemID: u.ItemID, Name: u.Name})
	}

	summary, err := h.simulation.Advance(c.Request.Context(), service.SimulationRequest{
		Days:  req.NumOfDays,
		To:    req.Target(),
		Usage: usage,
	})
	if err != nil {
		NewResponseBuilder(c).Fail(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSimulateResponse(summary))
}

// CurrentDate handles GET /api/simulate/date requests.
//
// @Summary      Current simulated date
// @Tags         Simulation
// @Produce      json
// @Success      200 {object} dto.DateResponse "Simulated date"
// @Router       /api/simulate/date [get]
func (h *Handler) CurrentDate(c *gin.Context) {
	c.JSON(http.StatusOK, dto.DateResponse{Success: true, Date: h.simulation.Today()})
}
