package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-service/internal/domain/dto"
	"github.com/guttosm/cargo-service/internal/domain/model"
)

// GetLogs handles GET /api/logs requests.
//
// @Summary      Query the cargo log
// @Description  Returns logged actions (placement, rearrangement, retrieval, disposal, simulation, import), newest first.
// @Tags         Logs
// @Produce      json
// @Param        startDate query string false "Start date, YYYY-MM-DD or RFC 3339"
// @Param        endDate query string false "End date, YYYY-MM-DD or RFC 3339"
// @Param        itemId query string false "Item ID"
// @Param        userId query string false "User ID"
// @Param        actionType query string false "Action type"
// @Param        limit query int false "Page size"
// @Param        skip query int false "Entries to skip"
// @Success      200 {object} dto.LogsResponse "Log entries"
// @Failure      400 {object} dto.ErrorResponse "Invalid filter"
// @Router       /api/logs [get]
func (h *Handler) GetLogs(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var q dto.LogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		builder.Fail(asInvalid("logs.query", err))
		return
	}
	opts, err := q.Options()
	if err != nil {
		builder.Fail(asInvalid("logs.query", err))
		return
	}

	ctx := c.Request.Context()
	logs, err := h.logs.QueryLogs(ctx, opts)
	if err != nil {
		builder.Fail(err)
		return
	}
	total, err := h.logs.CountLogs(ctx, opts)
	if err != nil {
		builder.Fail(err)
		return
	}
	if logs == nil {
		logs = []model.LogEntry{}
	}
	c.JSON(http.StatusOK, dto.LogsResponse{Success: true, Logs: logs, Total: total})
}
