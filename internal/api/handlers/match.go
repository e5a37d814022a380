package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stitts-dev/gridiron-sim/internal/football"
	"github.com/stitts-dev/gridiron-sim/internal/services"
	"github.com/stitts-dev/gridiron-sim/pkg/logger"
	"github.com/stitts-dev/gridiron-sim/pkg/utils"
)

const (
	defaultPerPage = 50
	maxPerPage     = 200
)

type MatchHandler struct {
	service *services.MatchService
}

func NewMatchHandler(service *services.MatchService) *MatchHandler {
	return &MatchHandler{service: service}
}

// CreateMatch plays a full match and returns its stored summary
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req services.MatchRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.SendValidationError(c, "Invalid request body", err.Error())
			return
		}
	}

	record, err := h.service.PlayMatch(c.Request.Context(), req)
	if err != nil {
		sendServiceError(c, "Failed to play match", err)
		return
	}
	utils.SendCreated(c, record)
}

// GetMatch returns a stored match with its scores and drives
func (h *MatchHandler) GetMatch(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}

	record, err := h.service.GetMatch(c.Request.Context(), id)
	if err != nil {
		sendServiceError(c, "Failed to load match", err)
		return
	}
	utils.SendSuccess(c, record)
}

// GetPlays returns a page of the play-by-play log
func (h *MatchHandler) GetPlays(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > maxPerPage {
		perPage = defaultPerPage
	}

	plays, total, err := h.service.GetPlays(c.Request.Context(), id, page, perPage)
	if err != nil {
		sendServiceError(c, "Failed to load plays", err)
		return
	}
	utils.SendSuccessWithMeta(c, plays, utils.NewMeta(page, perPage, total))
}

func parseMatchID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid match ID", err.Error())
		return uuid.Nil, false
	}
	return id, true
}

// sendServiceError maps service and domain errors onto API responses.
func sendServiceError(c *gin.Context, message string, err error) {
	if sendKnownError(c, message, err) {
		return
	}
	logger.GetLogger().WithError(err).Error(message)
	utils.SendInternalError(c, message)
}

// sendKnownError answers for errors callers can act on and reports whether
// it wrote a response.
func sendKnownError(c *gin.Context, message string, err error) bool {
	switch {
	case errors.Is(err, services.ErrMatchNotFound):
		utils.SendNotFound(c, "Match not found")
	case errors.Is(err, services.ErrInvalidFixture),
		errors.Is(err, services.ErrTooManySimulations),
		errors.Is(err, services.ErrNoSimulationRuns):
		utils.SendValidationError(c, message, err.Error())
	case errors.Is(err, football.ErrEmptyRoster),
		errors.Is(err, football.ErrIncompleteStaff),
		errors.Is(err, football.ErrMissingRole),
		errors.Is(err, football.ErrAttributeOutOfRange):
		utils.SendUnprocessable(c, utils.ErrCodeInvalidRoster, message, err.Error())
	default:
		return false
	}
	return true
}
