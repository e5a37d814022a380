package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stitts-dev/gridiron-sim/internal/services"
	"github.com/stitts-dev/gridiron-sim/pkg/logger"
	"github.com/stitts-dev/gridiron-sim/pkg/utils"
)

type SimulationHandler struct {
	service *services.MatchService
}

func NewSimulationHandler(service *services.MatchService) *SimulationHandler {
	return &SimulationHandler{service: service}
}

// RunSimulation runs a Monte Carlo batch of matches for one fixture
func (h *SimulationHandler) RunSimulation(c *gin.Context) {
	var req struct {
		Home string `json:"home"`
		Away string `json:"away"`
		Runs int    `json:"runs" binding:"required,min=1"`
		Seed int64  `json:"seed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	result, err := h.service.Simulate(c.Request.Context(), services.SimulationRequest{
		Home: req.Home,
		Away: req.Away,
		Runs: req.Runs,
		Seed: req.Seed,
	})
	if err != nil {
		if sendKnownError(c, "Simulation failed", err) {
			return
		}
		logger.GetLogger().WithError(err).Error("Simulation failed")
		utils.SendError(c, http.StatusInternalServerError,
			utils.NewAppError(utils.ErrCodeSimulation, "Simulation failed", err.Error()))
		return
	}
	utils.SendSuccess(c, result)
}
