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

// ProgramHandler exposes program lifecycle and the merged timeline.
type ProgramHandler struct {
	programService service.ProgramService
}

func NewProgramHandler(programService service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// --- DTOs ---

type CreateProgramRequest struct {
	Athlete string `json:"athlete" binding:"required"`
}

type SetArchivedRequest struct {
	IsArchived *bool `json:"isArchived" binding:"required"`
}

type ProgramResponse struct {
	ID         string    `json:"id"`
	Coach      string    `json:"coach"`
	Athlete    string    `json:"athlete"`
	Blocks     []string  `json:"blocks"`
	CompDays   []string  `json:"compDays"`
	IsArchived bool      `json:"isArchived"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CurrentProgramResponse pairs the program with its resolved timeline; the
// head of the timeline is the current training item.
type CurrentProgramResponse struct {
	Program  ProgramResponse       `json:"program"`
	Timeline []domain.TrainingItem `json:"timeline"`
	Current  *domain.TrainingItem  `json:"current,omitempty"`
}

func MapProgramToResponse(p *domain.Program) ProgramResponse {
	if p == nil {
		return ProgramResponse{}
	}
	resp := ProgramResponse{
		ID:         p.ID.Hex(),
		Coach:      p.Coach.Hex(),
		Athlete:    p.Athlete.Hex(),
		Blocks:     []string{},
		CompDays:   []string{},
		IsArchived: p.IsArchived,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	for _, id := range p.Blocks {
		resp.Blocks = append(resp.Blocks, id.Hex())
	}
	for _, id := range p.CompDays {
		resp.CompDays = append(resp.CompDays, id.Hex())
	}
	return resp
}

// --- Handler Methods ---

// Create opens a program for a rostered athlete.
func (h *ProgramHandler) Create(c *gin.Context) {
	var req CreateProgramRequest
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

	program, err := h.programService.Create(c.Request.Context(), coachID, athleteID)
	if err != nil {
		programError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapProgramToResponse(program))
}

// Current returns the merged, descending timeline of the athlete's active
// program.
func (h *ProgramHandler) Current(c *gin.Context) {
	userID, role, ok := identity(c)
	if !ok {
		return
	}
	athleteID, ok := pathID(c, "athleteId")
	if !ok {
		return
	}

	program, timeline, err := h.programService.Current(c.Request.Context(), userID, role, athleteID)
	if err != nil {
		programError(c, err)
		return
	}

	resp := CurrentProgramResponse{
		Program:  MapProgramToResponse(program),
		Timeline: timeline,
	}
	if len(timeline) > 0 {
		resp.Current = &timeline[0]
	}
	c.JSON(http.StatusOK, resp)
}

// SetArchived toggles the archived flag on a program.
func (h *ProgramHandler) SetArchived(c *gin.Context) {
	var req SetArchivedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	coachID, _, ok := identity(c)
	if !ok {
		return
	}
	programID, ok := pathID(c, "id")
	if !ok {
		return
	}

	program, err := h.programService.SetArchived(c.Request.Context(), coachID, programID, *req.IsArchived)
	if err != nil {
		programError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProgramToResponse(program))
}

// Delete removes a program and cascades to its blocks and comp days.
func (h *ProgramHandler) Delete(c *gin.Context) {
	coachID, _, ok := identity(c)
	if !ok {
		return
	}
	programID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.programService.Delete(c.Request.Context(), coachID, programID); err != nil {
		programError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Program deleted"})
}

func programError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProgramNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrProgramExists):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNotOnRoster):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Program operation failed")
	}
}
