package httpapi

import (
	"net/http"
	"strconv"

	"github.com/zwelix28/canna-bomb-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StatsHandler struct {
	stats service.StatsService
	log   *zap.Logger
}

func NewStatsHandler(stats service.StatsService, log *zap.Logger) *StatsHandler {
	return &StatsHandler{stats: stats, log: log}
}

func (h *StatsHandler) Dashboard(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	d, err := h.stats.Dashboard(c.Request.Context(), days)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, d)
}
