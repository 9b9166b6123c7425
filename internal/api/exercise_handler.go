package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"motionscope/training-api/internal/domain"
	"motionscope/training-api/internal/service"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs ---

// ExerciseRequest defines the expected JSON for creating or updating a
// catalog entry.
type ExerciseRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"omitempty"`
	MuscleGroup string `json:"muscleGroup" binding:"omitempty"`
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID          string              `json:"id"`
	Type        domain.ExerciseType `json:"type"`
	CreatedBy   string              `json:"createdBy"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	MuscleGroup string              `json:"muscleGroup,omitempty"`
	HasVideo    bool                `json:"hasVideo"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

type RequestVideoUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type VideoUploadTicketResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

type ConfirmVideoUploadRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
	Size      int64  `json:"size" binding:"required,gt=0"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:          ex.ID.Hex(),
		Type:        ex.Type,
		CreatedBy:   ex.CreatedBy.Hex(),
		Name:        ex.Name,
		Description: ex.Description,
		MuscleGroup: ex.MuscleGroup,
		HasVideo:    ex.VideoObjectKey != "",
		CreatedAt:   ex.CreatedAt,
		UpdatedAt:   ex.UpdatedAt,
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to DTOs.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	return responses
}

// --- Handler Methods ---

// CreatePreset adds a developer-curated catalog entry.
func (h *ExerciseHandler) CreatePreset(c *gin.Context) {
	h.create(c, true)
}

// CreateCustom adds a coach-scoped catalog entry.
func (h *ExerciseHandler) CreateCustom(c *gin.Context) {
	h.create(c, false)
}

func (h *ExerciseHandler) create(c *gin.Context, preset bool) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, _, ok := identity(c)
	if !ok {
		return
	}

	in := service.ExerciseInput{Name: req.Name, Description: req.Description, MuscleGroup: req.MuscleGroup}
	var exercise *domain.Exercise
	var err error
	if preset {
		exercise, err = h.exerciseService.CreatePreset(c.Request.Context(), userID, in)
	} else {
		exercise, err = h.exerciseService.CreateCustom(c.Request.Context(), userID, in)
	}
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create exercise")
		}
		return
	}

	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// List returns presets plus the calling coach's own customs.
func (h *ExerciseHandler) List(c *gin.Context) {
	userID, _, ok := identity(c)
	if !ok {
		return
	}

	exercises, err := h.exerciseService.ListForCoach(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises")
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// ListPresets returns the shared preset catalog.
func (h *ExerciseHandler) ListPresets(c *gin.Context) {
	exercises, err := h.exerciseService.ListPresets(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises")
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// ListCustom returns the calling coach's custom entries.
func (h *ExerciseHandler) ListCustom(c *gin.Context) {
	userID, _, ok := identity(c)
	if !ok {
		return
	}

	exercises, err := h.exerciseService.ListCustom(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises")
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// Get returns one exercise the caller may read.
func (h *ExerciseHandler) Get(c *gin.Context) {
	userID, role, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	exercise, err := h.exerciseService.Get(c.Request.Context(), userID, role, id)
	if err != nil {
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// Update modifies an exercise the caller owns.
func (h *ExerciseHandler) Update(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, role, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	exercise, err := h.exerciseService.Update(c.Request.Context(), userID, role, id,
		service.ExerciseInput{Name: req.Name, Description: req.Description, MuscleGroup: req.MuscleGroup})
	if err != nil {
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// Delete removes an exercise the caller owns.
func (h *ExerciseHandler) Delete(c *gin.Context) {
	userID, role, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.exerciseService.Delete(c.Request.Context(), userID, role, id); err != nil {
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Exercise deleted"})
}

// RequestVideoUpload hands out a presigned PUT URL for a demonstration
// video.
func (h *ExerciseHandler) RequestVideoUpload(c *gin.Context) {
	var req RequestVideoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, role, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ticket, err := h.exerciseService.RequestVideoUpload(c.Request.Context(), userID, role, id, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedMedia) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, VideoUploadTicketResponse{UploadURL: ticket.UploadURL, ObjectKey: ticket.ObjectKey})
}

// ConfirmVideoUpload records the uploaded object on the exercise.
func (h *ExerciseHandler) ConfirmVideoUpload(c *gin.Context) {
	var req ConfirmVideoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, role, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.exerciseService.ConfirmVideoUpload(c.Request.Context(), userID, role, id, req.ObjectKey, req.Size); err != nil {
		if errors.Is(err, service.ErrValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Video recorded"})
}

// VideoDownloadURL hands out a presigned GET URL for the exercise's video.
func (h *ExerciseHandler) VideoDownloadURL(c *gin.Context) {
	userID, role, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	url, err := h.exerciseService.VideoDownloadURL(c.Request.Context(), userID, role, id)
	if err != nil {
		if errors.Is(err, service.ErrNoVideo) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}

func (h *ExerciseHandler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExerciseNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrExerciseForbidden):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrValidation):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Exercise operation failed")
	}
}
