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

// BlockHandler exposes the training-block surface for both roles. Block
// responses serialize the domain tree directly; it carries no secrets and
// its json tags are the wire shape.
type BlockHandler struct {
	blockService service.BlockService
}

func NewBlockHandler(blockService service.BlockService) *BlockHandler {
	return &BlockHandler{blockService: blockService}
}

// --- DTOs ---

type CreateBlockRequest struct {
	Athlete        string                  `json:"athlete" binding:"required"`
	BlockName      string                  `json:"blockName" binding:"required"`
	NumberOfWeeks  int                     `json:"numberOfWeeks" binding:"required,min=1,max=12"`
	BlockStartDate time.Time               `json:"blockStartDate" binding:"required"`
	BlockEndDate   time.Time               `json:"blockEndDate" binding:"required"`
	Days           []string                `json:"days" binding:"required,min=1"`
	BlockSchedule  []domain.WeeklySchedule `json:"blockSchedule" binding:"required"`
}

type CreateBlockFromTemplateRequest struct {
	Athlete        string                  `json:"athlete" binding:"required"`
	BlockStartDate time.Time               `json:"blockStartDate" binding:"required"`
	BlockEndDate   time.Time               `json:"blockEndDate" binding:"required"`
	BlockName      string                  `json:"blockName" binding:"omitempty"`
	NumberOfWeeks  int                     `json:"numberOfWeeks" binding:"omitempty,min=1,max=12"`
	Days           []string                `json:"days" binding:"omitempty"`
	BlockSchedule  []domain.WeeklySchedule `json:"blockSchedule" binding:"omitempty"`
}

type PatchBlockRequest struct {
	BlockName       *string                 `json:"blockName"`
	NumberOfWeeks   *int                    `json:"numberOfWeeks"`
	Days            []string                `json:"days"`
	BlockStartDate  *time.Time              `json:"blockStartDate"`
	BlockEndDate    *time.Time              `json:"blockEndDate"`
	BlockSchedule   []domain.WeeklySchedule `json:"blockSchedule"`
	ConfirmTruncate bool                    `json:"confirmTruncate"`
}

type UpdateWeekRequest struct {
	DailySchedule []domain.DailySchedule `json:"dailySchedule" binding:"required"`
}

type UpdateDayRequest struct {
	Day domain.DailySchedule `json:"day" binding:"required"`
}

type AddExerciseRequest struct {
	WeekNumber int          `json:"weekNumber" binding:"required,min=1"`
	DayIndex   *int         `json:"dayIndex" binding:"required"`
	ExerciseID string       `json:"exerciseId" binding:"required"`
	SetsDetail []domain.Set `json:"setsDetail" binding:"omitempty"`
}

type AddWarmupSetRequest struct {
	ActualReps *int     `json:"actualReps"`
	ActualLoad *float64 `json:"actualLoad"`
}

// --- Handler Methods ---

// Create builds a new block for a rostered athlete.
func (h *BlockHandler) Create(c *gin.Context) {
	var req CreateBlockRequest
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

	block := &domain.Block{
		Athlete:        athleteID,
		BlockName:      req.BlockName,
		NumberOfWeeks:  req.NumberOfWeeks,
		BlockStartDate: req.BlockStartDate,
		BlockEndDate:   req.BlockEndDate,
		Days:           req.Days,
		BlockSchedule:  sanitizeCoachSchedule(req.BlockSchedule),
	}

	created, err := h.blockService.Create(c.Request.Context(), coachID, block)
	if err != nil {
		blockError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// CreateFromTemplate instantiates one of the coach's saved templates.
func (h *BlockHandler) CreateFromTemplate(c *gin.Context) {
	var req CreateBlockFromTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	coachID, _, ok := identity(c)
	if !ok {
		return
	}
	templateID, ok := pathID(c, "id")
	if !ok {
		return
	}
	athleteID, err := primitive.ObjectIDFromHex(req.Athlete)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid athlete ID")
		return
	}

	overrides := domain.BlockOverrides{
		BlockName:      req.BlockName,
		NumberOfWeeks:  req.NumberOfWeeks,
		Days:           req.Days,
		BlockSchedule:  sanitizeCoachSchedule(req.BlockSchedule),
		BlockStartDate: req.BlockStartDate,
		BlockEndDate:   req.BlockEndDate,
	}

	created, err := h.blockService.CreateFromTemplate(c.Request.Context(), coachID, templateID, athleteID, overrides)
	if err != nil {
		blockError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Get serves a single block to its coach or its athlete.
func (h *BlockHandler) Get(c *gin.Context) {
	userID, role, ok := identity(c)
	if !ok {
		return
	}
	blockID, ok := pathID(c, "id")
	if !ok {
		return
	}

	block, err := h.blockService.Get(c.Request.Context(), userID, role, blockID)
	if err != nil {
		blockError(c, err)
		return
	}
	c.JSON(http.StatusOK, block)
}

// ListForAthlete lists an athlete's blocks for either role.
func (h *BlockHandler) ListForAthlete(c *gin.Context) {
	userID, role, ok := identity(c)
	if !ok {
		return
	}
	athleteID, ok := pathID(c, "athleteId")
	if !ok {
		return
	}

	blocks, err := h.blockService.ListForAthlete(c.Request.Context(), userID, role, athleteID)
	if err != nil {
		blockError(c, err)
		return
	}
	if blocks == nil {
		blocks = []domain.Block{}
	}
	c.JSON(http.StatusOK, blocks)
}

// Patch updates top-level block fields.
func (h *BlockHandler) Patch(c *gin.Context) {
	var req PatchBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	coachID, _, ok := identity(c)
	if !ok {
		return
	}
	blockID, ok := pathID(c, "id")
	if !ok {
		return
	}

	patch := service.BlockPatch{
		BlockName:      req.BlockName,
		NumberOfWeeks:  req.NumberOfWeeks,
		Days:           req.Days,
		BlockStartDate: req.BlockStartDate,
		BlockEndDate:   req.BlockEndDate,
		BlockSchedule:  sanitizeCoachSchedule(req.BlockSchedule),
	}

	block, err := h.blockService.Patch(c.Request.Context(), coachID, blockID, patch, req.ConfirmTruncate)
	if err != nil {
		blockError(c, err)
		return
	}
	c.JSON(http.StatusOK, block)
}

// UpdateWeek replaces one week's daily schedule.
func (h *BlockHandler) UpdateWeek(c *gin.Context) {
	var req UpdateWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	coachID, _, ok := identity(c)
	if !ok {
		return
	}
	blockID, ok := pathID(c, "id")
	if !ok {
		return
	}
	weekNumber, valid := intParam(c, "weekNumber")
	if !valid {
		return
	}

	days := req.DailySchedule
	for i := range days {
		sanitizeCoachDay(&days[i])
	}

	block, err := h.blockService.UpdateWeek(c.Request.Context(), coachID, blockID, weekNumber, days)
	if err != nil {
		blockError(c, err)
		return
	}
	c.JSON(http.StatusOK, block)
}

// UpdateDay replaces a single day within a week.
func (h *BlockHandler) UpdateDay(c *gin.Context) {
	var req UpdateDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	coachID, _, ok := identity(c)
	if !ok {
		return
	}
	blockID, ok := pathID(c, "id")
	if !ok {
		return
	}
	weekNumber, valid := intParam(c, "weekNumber")
	if !valid {
		return
	}
	dayIndex, valid := intParam(c, "dayIndex")
	if !valid {
		return
	}

	day := req.Day
	sanitizeCoachDay(&day)

	block, err := h.blockService.UpdateDay(c.Request.Context(), coachID, blockID, weekNumber, dayIndex, day)
	if err != nil {
		blockError(c, err)
		return
	}
	c.JSON(http.StatusOK, block)
}

// AddExercise appends an exercise entry to a day.
func (h *BlockHandler) AddExercise(c *gin.Context) {
	var req AddExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	coachID, _, ok := identity(c)
	if !ok {
		return
	}
	blockID, ok := pathID(c, "id")
	if !ok {
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(req.ExerciseID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID")
		return
	}

	entry := domain.ExerciseEntry{
		ExerciseID: exerciseID,
		SetsDetail: req.SetsDetail,
	}
	for i := range entry.SetsDetail {
		entry.SetsDetail[i].ID = primitive.NilObjectID
		entry.SetsDetail[i].CreatedBy = domain.AuthorCoach
	}

	block, err := h.blockService.AddExercise(c.Request.Context(), coachID, blockID, req.WeekNumber, *req.DayIndex, entry)
	if err != nil {
		blockError(c, err)
		return
	}
	c.JSON(http.StatusOK, block)
}

// DeleteExercise removes an exercise entry from the block.
func (h *BlockHandler) DeleteExercise(c *gin.Context) {
	coachID, _, ok := identity(c)
	if !ok {
		return
	}
	blockID, ok := pathID(c, "id")
	if !ok {
		return
	}
	entryID, ok := pathID(c, "entryId")
	if !ok {
		return
	}

	block, err := h.blockService.DeleteExercise(c.Request.Context(), coachID, blockID, entryID)
	if err != nil {
		blockError(c, err)
		return
	}
	c.JSON(http.StatusOK, block)
}

// UpdateSet is the athlete logging path for actuals and notes.
func (h *BlockHandler) UpdateSet(c *gin.Context) {
	var patch domain.SetPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	athleteID, _, ok := identity(c)
	if !ok {
		return
	}
	blockID, ok := pathID(c, "id")
	if !ok {
		return
	}
	entryID, ok := pathID(c, "entryId")
	if !ok {
		return
	}
	setID, ok := pathID(c, "setId")
	if !ok {
		return
	}

	block, err := h.blockService.UpdateSet(c.Request.Context(), athleteID, blockID, entryID, setID, patch)
	if err != nil {
		blockError(c, err)
		return
	}
	c.JSON(http.StatusOK, block)
}

// AddWarmupSet lets the athlete log a warmup set on an entry.
func (h *BlockHandler) AddWarmupSet(c *gin.Context) {
	var req AddWarmupSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	athleteID, _, ok := identity(c)
	if !ok {
		return
	}
	blockID, ok := pathID(c, "id")
	if !ok {
		return
	}
	entryID, ok := pathID(c, "entryId")
	if !ok {
		return
	}

	block, err := h.blockService.AddWarmupSet(c.Request.Context(), athleteID, blockID, entryID,
		service.WarmupSetInput{ActualReps: req.ActualReps, ActualLoad: req.ActualLoad})
	if err != nil {
		blockError(c, err)
		return
	}
	c.JSON(http.StatusOK, block)
}

// DeleteWarmupSet removes one of the athlete's own warmup sets.
func (h *BlockHandler) DeleteWarmupSet(c *gin.Context) {
	athleteID, _, ok := identity(c)
	if !ok {
		return
	}
	blockID, ok := pathID(c, "id")
	if !ok {
		return
	}
	entryID, ok := pathID(c, "entryId")
	if !ok {
		return
	}
	setID, ok := pathID(c, "setId")
	if !ok {
		return
	}

	block, err := h.blockService.DeleteWarmupSet(c.Request.Context(), athleteID, blockID, entryID, setID)
	if err != nil {
		blockError(c, err)
		return
	}
	c.JSON(http.StatusOK, block)
}

// Delete removes a block and detaches it from its program.
func (h *BlockHandler) Delete(c *gin.Context) {
	coachID, _, ok := identity(c)
	if !ok {
		return
	}
	blockID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.blockService.Delete(c.Request.Context(), coachID, blockID); err != nil {
		blockError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Block deleted"})
}

// --- helpers ---

// sanitizeCoachSchedule strips client-supplied IDs and stamps coach
// authorship on every set; nested IDs are generated server-side.
func sanitizeCoachSchedule(schedule []domain.WeeklySchedule) []domain.WeeklySchedule {
	for wi := range schedule {
		for di := range schedule[wi].DailySchedule {
			sanitizeCoachDay(&schedule[wi].DailySchedule[di])
		}
	}
	return schedule
}

func sanitizeCoachDay(day *domain.DailySchedule) {
	for ei := range day.Exercises {
		day.Exercises[ei].ID = primitive.NilObjectID
		for si := range day.Exercises[ei].SetsDetail {
			set := &day.Exercises[ei].SetsDetail[si]
			set.ID = primitive.NilObjectID
			set.CreatedBy = domain.AuthorCoach
		}
	}
}

func blockError(c *gin.Context, err error) {
	var vErr domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		abortWithError(c, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, service.ErrBlockNotFound),
		errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, service.ErrWeekNotFound),
		errors.Is(err, service.ErrDayNotFound),
		errors.Is(err, service.ErrEntryNotFound),
		errors.Is(err, service.ErrSetNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrBlockOverlap),
		errors.Is(err, service.ErrVersionConflict),
		errors.Is(err, service.ErrTruncateNotConfirmed),
		errors.Is(err, service.ErrNoActiveProgram):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNotOnRoster),
		errors.Is(err, service.ErrSetReadOnly),
		errors.Is(err, service.ErrNotWarmupSet):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Block operation failed")
	}
}
