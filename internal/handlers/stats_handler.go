package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grindboard/practice-service/internal/services"
	"github.com/grindboard/practice-service/internal/utils"
)

type StatsHandler struct {
	BaseHandler
	statsService services.StatsService
}

func NewStatsHandler(statsService services.StatsService, logger utils.Logger) *StatsHandler {
	return &StatsHandler{
		BaseHandler:  NewBaseHandler(logger),
		statsService: statsService,
	}
}

// GetGlobalStats returns totals and the per-topic breakdown of the whole log
// @Summary Global stats
// @Tags stats
// @Produce json
// @Success 200 {object} models.GlobalStats
// @Failure 500 {object} ErrorResponse
// @Router /stats [get]
func (h *StatsHandler) GetGlobalStats(c *gin.Context) {
	h.LogRequest(c, "Getting global stats")

	stats, err := h.statsService.Global(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
