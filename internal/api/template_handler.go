package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"motionscope/training-api/internal/domain"
	"motionscope/training-api/internal/service"
)

// TemplateHandler exposes a coach's saved block templates.
type TemplateHandler struct {
	templateService service.TemplateService
}

func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

type CreateTemplateRequest struct {
	TemplateName  string                  `json:"templateName" binding:"required,min=1,max=50"`
	NumberOfWeeks int                     `json:"numberOfWeeks" binding:"required,min=1,max=12"`
	Days          []string                `json:"days" binding:"required,min=1"`
	BlockSchedule []domain.WeeklySchedule `json:"blockSchedule" binding:"omitempty"`
}

// Create saves a reusable schedule shape for the calling coach.
func (h *TemplateHandler) Create(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	coachID, _, ok := identity(c)
	if !ok {
		return
	}

	template := &domain.SavedBlockTemplate{
		TemplateName:  req.TemplateName,
		NumberOfWeeks: req.NumberOfWeeks,
		Days:          req.Days,
		BlockSchedule: sanitizeCoachSchedule(req.BlockSchedule),
	}

	created, err := h.templateService.Create(c.Request.Context(), coachID, template)
	if err != nil {
		templateError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Get returns one of the calling coach's templates.
func (h *TemplateHandler) Get(c *gin.Context) {
	coachID, _, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	template, err := h.templateService.Get(c.Request.Context(), coachID, id)
	if err != nil {
		templateError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

// List returns the calling coach's templates.
func (h *TemplateHandler) List(c *gin.Context) {
	coachID, _, ok := identity(c)
	if !ok {
		return
	}

	templates, err := h.templateService.List(c.Request.Context(), coachID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve templates")
		return
	}
	if templates == nil {
		templates = []domain.SavedBlockTemplate{}
	}
	c.JSON(http.StatusOK, templates)
}

// Delete removes one of the calling coach's templates.
func (h *TemplateHandler) Delete(c *gin.Context) {
	coachID, _, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.templateService.Delete(c.Request.Context(), coachID, id); err != nil {
		templateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template deleted"})
}

func templateError(c *gin.Context, err error) {
	var vErr domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		abortWithError(c, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, service.ErrTemplateNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTemplateNameTaken):
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Template operation failed")
	}
}
