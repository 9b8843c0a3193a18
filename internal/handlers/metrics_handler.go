package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"betmetric/internal/services"
)

// MetricsHandler serves portfolio-level metrics.
type MetricsHandler struct {
	metricsService services.MetricsServicer
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(metricsService services.MetricsServicer) *MetricsHandler {
	return &MetricsHandler{metricsService: metricsService}
}

// GetSummary handles the retrieval of portfolio metrics
// @Summary     Portfolio summary
// @Description Total burn and revenue, recent burn, remaining budget and runway across all bets
// @Tags        metrics
// @Produce     json
// @Success     200 {object} map[string]engine.PortfolioSummary "Portfolio summary"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /metrics/summary [get]
func (h *MetricsHandler) GetSummary(c *gin.Context) {
	summary, err := h.metricsService.GetSummaryMetrics(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
