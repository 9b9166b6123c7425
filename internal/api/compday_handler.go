package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"motionscope/training-api/internal/domain"
	"motionscope/training-api/internal/service"
)

// CompDayHandler exposes competition-day attempt sheets.
type CompDayHandler struct {
	compDayService service.CompDayService
}

func NewCompDayHandler(compDayService service.CompDayService) *CompDayHandler {
	return &CompDayHandler{compDayService: compDayService}
}

// --- DTOs ---

type CreateCompDayRequest struct {
	Athlete         string                `json:"athlete" binding:"required"`
	CompetitionName string                `json:"competitionName" binding:"required"`
	Date            time.Time             `json:"date" binding:"required"`
	WeightClass     string                `json:"weightClass" binding:"required"`
	Lifts           []domain.LiftAttempts `json:"lifts" binding:"required"`
}

type UpdateCompDayRequest struct {
	CompetitionName string                `json:"competitionName" binding:"required"`
	Date            time.Time             `json:"date" binding:"required"`
	WeightClass     string                `json:"weightClass" binding:"required"`
	Lifts           []domain.LiftAttempts `json:"lifts" binding:"required"`
}

type MarkAttemptRequest struct {
	Lift      string              `json:"lift" binding:"required,oneof=Squat Bench Deadlift"`
	Round     domain.AttemptRound `json:"round" binding:"required,oneof=first second third"`
	Index     int                 `json:"index" binding:"omitempty,min=0"`
	Attempted *bool               `json:"attempted" binding:"required"`
}

// --- Handler Methods ---

// Create builds a new attempt sheet for a rostered athlete.
func (h *CompDayHandler) Create(c *gin.Context) {
	var req CreateCompDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	coachID, _, ok := identity(c)
	if !ok {
		return
	}
	athleteID, err := primitive.ObjectIDFromHex(req.Athlete)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid athlete ID")
		return
	}

	compDay := &domain.CompDay{
		Athlete:         athleteID,
		CompetitionName: req.CompetitionName,
		Date:            req.Date,
		WeightClass:     req.WeightClass,
		Lifts:           req.Lifts,
	}

	created, err := h.compDayService.Create(c.Request.Context(), coachID, compDay)
	if err != nil {
		compDayError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Get serves a sheet to its coach or its athlete.
func (h *CompDayHandler) Get(c *gin.Context) {
	userID, role, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	compDay, err := h.compDayService.Get(c.Request.Context(), userID, role, id)
	if err != nil {
		compDayError(c, err)
		return
	}
	c.JSON(http.StatusOK, compDay)
}

// Update is the coach-side plan rewrite.
func (h *CompDayHandler) Update(c *gin.Context) {
	var req UpdateCompDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	coachID, _, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	updated := &domain.CompDay{
		CompetitionName: req.CompetitionName,
		Date:            req.Date,
		WeightClass:     req.WeightClass,
		Lifts:           req.Lifts,
	}

	compDay, err := h.compDayService.CoachUpdate(c.Request.Context(), coachID, id, updated)
	if err != nil {
		compDayError(c, err)
		return
	}
	c.JSON(http.StatusOK, compDay)
}

// MarkAttempt flips the athlete-only flag on one attempt slot.
func (h *CompDayHandler) MarkAttempt(c *gin.Context) {
	var req MarkAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	athleteID, _, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	compDay, err := h.compDayService.MarkAttempt(c.Request.Context(), athleteID, id, req.Lift, req.Round, req.Index, *req.Attempted)
	if err != nil {
		compDayError(c, err)
		return
	}
	c.JSON(http.StatusOK, compDay)
}

// Delete removes a sheet and detaches it from its program.
func (h *CompDayHandler) Delete(c *gin.Context) {
	coachID, _, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.compDayService.Delete(c.Request.Context(), coachID, id); err != nil {
		compDayError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Competition day deleted"})
}

func compDayError(c *gin.Context, err error) {
	var vErr domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		abortWithError(c, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, service.ErrCompDayNotFound),
		errors.Is(err, service.ErrLiftNotFound),
		errors.Is(err, service.ErrAttemptNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAttemptedByCoach),
		errors.Is(err, service.ErrNotOnRoster):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrVersionConflict),
		errors.Is(err, service.ErrNoActiveProgram):
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Competition day operation failed")
	}
}
