package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"betmetric/internal/services"
)

// PipelineHandler exposes machine-to-machine jobs behind the API key.
type PipelineHandler struct {
	sweepService services.SweepServicer
}

// NewPipelineHandler creates a new PipelineHandler.
func NewPipelineHandler(sweepService services.SweepServicer) *PipelineHandler {
	return &PipelineHandler{sweepService: sweepService}
}

// Sweep runs one classification pass on demand
// @Summary     Run a classification sweep
// @Description Recompute inactivity for every bet and commit ACTIVE, DORMANT and ZOMBIE transitions
// @Tags        pipeline
// @Produce     json
// @Security    ApiKeyAuth
// @Success     200 {object} map[string]services.SweepResult "Sweep result"
// @Failure     401 {object} ErrorResponse "Invalid or missing API key"
// @Failure     503 {object} ErrorResponse "Pipeline not configured"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /pipeline/sweep [post]
func (h *PipelineHandler) Sweep(c *gin.Context) {
	result, err := h.sweepService.Sweep(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sweep": result})
}
