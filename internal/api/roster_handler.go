package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"motionscope/training-api/internal/service"
)

// RosterHandler exposes the coach-side athlete roster.
type RosterHandler struct {
	rosterService service.RosterService
}

func NewRosterHandler(rosterService service.RosterService) *RosterHandler {
	return &RosterHandler{rosterService: rosterService}
}

// ListRoster returns the calling coach's athletes.
func (h *RosterHandler) ListRoster(c *gin.Context) {
	coachID, _, ok := identity(c)
	if !ok {
		return
	}

	athletes, err := h.rosterService.ListRoster(c.Request.Context(), coachID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load roster")
		return
	}

	responses := make([]UserResponse, len(athletes))
	for i := range athletes {
		responses[i] = MapUserToResponse(&athletes[i])
	}
	c.JSON(http.StatusOK, responses)
}

// AddAthlete puts an athlete on the calling coach's roster.
func (h *RosterHandler) AddAthlete(c *gin.Context) {
	coachID, _, ok := identity(c)
	if !ok {
		return
	}
	athleteID, ok := pathID(c, "athleteId")
	if !ok {
		return
	}

	err := h.rosterService.AddAthlete(c.Request.Context(), coachID, athleteID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotAnAthlete), errors.Is(err, service.ErrAlreadyOnRoster):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to add athlete to roster")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Athlete added to roster"})
}

// RemoveAthlete drops an athlete from the calling coach's roster.
func (h *RosterHandler) RemoveAthlete(c *gin.Context) {
	coachID, _, ok := identity(c)
	if !ok {
		return
	}
	athleteID, ok := pathID(c, "athleteId")
	if !ok {
		return
	}

	err := h.rosterService.RemoveAthlete(c.Request.Context(), coachID, athleteID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotOnRoster):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to remove athlete from roster")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Athlete removed from roster"})
}

// LeaveCoach lets the calling athlete remove themselves from a coach's
// roster.
func (h *RosterHandler) LeaveCoach(c *gin.Context) {
	athleteID, _, ok := identity(c)
	if !ok {
		return
	}
	coachID, ok := pathID(c, "coachId")
	if !ok {
		return
	}

	err := h.rosterService.LeaveCoach(c.Request.Context(), athleteID, coachID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotACoach), errors.Is(err, service.ErrNotOnRoster):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to leave coach roster")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Removed from coach roster"})
}
