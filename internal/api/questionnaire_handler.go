package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"motionscope/training-api/internal/domain"
	"motionscope/training-api/internal/service"
)

// QuestionnaireHandler exposes the athlete onboarding form.
type QuestionnaireHandler struct {
	questionnaireService service.QuestionnaireService
}

func NewQuestionnaireHandler(questionnaireService service.QuestionnaireService) *QuestionnaireHandler {
	return &QuestionnaireHandler{questionnaireService: questionnaireService}
}

type SubmitQuestionnaireRequest struct {
	Birthday time.Time     `json:"birthday" binding:"required"`
	Gender   domain.Gender `json:"gender" binding:"required,oneof=Male Female"`
}

// Submit creates or replaces the calling athlete's form.
func (h *QuestionnaireHandler) Submit(c *gin.Context) {
	var req SubmitQuestionnaireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	athleteID, _, ok := identity(c)
	if !ok {
		return
	}

	q, err := h.questionnaireService.Submit(c.Request.Context(), athleteID, &domain.Questionnaire{
		Birthday: req.Birthday,
		Gender:   req.Gender,
	})
	if err != nil {
		questionnaireError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// GetOwn returns the calling athlete's form.
func (h *QuestionnaireHandler) GetOwn(c *gin.Context) {
	athleteID, _, ok := identity(c)
	if !ok {
		return
	}

	q, err := h.questionnaireService.GetOwn(c.Request.Context(), athleteID)
	if err != nil {
		questionnaireError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// GetForAthlete lets a coach read a rostered athlete's form.
func (h *QuestionnaireHandler) GetForAthlete(c *gin.Context) {
	coachID, _, ok := identity(c)
	if !ok {
		return
	}
	athleteID, ok := pathID(c, "athleteId")
	if !ok {
		return
	}

	q, err := h.questionnaireService.GetForAthlete(c.Request.Context(), coachID, athleteID)
	if err != nil {
		questionnaireError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func questionnaireError(c *gin.Context, err error) {
	var vErr domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		abortWithError(c, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, service.ErrQuestionnaireNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Questionnaire operation failed")
	}
}
