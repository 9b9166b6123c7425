package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"motionscope/training-api/internal/domain"
	"motionscope/training-api/internal/repository"
)

// --- Error Definitions ---
var (
	ErrBlockNotFound        = errors.New("block not found")
	ErrBlockOverlap         = errors.New("block overlaps an existing block for this athlete")
	ErrVersionConflict      = errors.New("the record was modified concurrently, reload and retry")
	ErrTruncateNotConfirmed = errors.New("shrinking numberOfWeeks discards weeks and must be confirmed")
	ErrNoActiveProgram      = errors.New("no active program exists for this coach and athlete")
	ErrWeekNotFound         = errors.New("week not found in block")
	ErrDayNotFound          = errors.New("day not found in week")
	ErrEntryNotFound        = errors.New("exercise entry not found in block")
	ErrSetNotFound          = errors.New("set not found in exercise entry")
	ErrSetReadOnly          = errors.New("this set does not accept writes")
	ErrNotWarmupSet         = errors.New("only athlete-created warmup sets can be removed")
	ErrTemplateNotFound     = errors.New("template not found")
)

// TxRunner runs a function inside a storage transaction. Satisfied by the
// mongo transaction helper; tests substitute a pass-through.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

// BlockPatch carries the top-level block fields a coach may change after
// creation. Nil means "leave alone".
type BlockPatch struct {
	BlockName      *string
	NumberOfWeeks  *int
	Days           []string
	BlockStartDate *time.Time
	BlockEndDate   *time.Time
	BlockSchedule  []domain.WeeklySchedule
}

// WarmupSetInput is what an athlete supplies when logging a warmup set.
type WarmupSetInput struct {
	ActualReps *int
	ActualLoad *float64
}

// BlockService owns the training-block lifecycle: coach-side authoring of
// the nested schedule and athlete-side logging of actuals.
type BlockService interface {
	Create(ctx context.Context, coachID primitive.ObjectID, block *domain.Block) (*domain.Block, error)
	CreateFromTemplate(ctx context.Context, coachID, templateID, athleteID primitive.ObjectID, overrides domain.BlockOverrides) (*domain.Block, error)
	Get(ctx context.Context, userID primitive.ObjectID, role domain.Role, blockID primitive.ObjectID) (*domain.Block, error)
	ListForAthlete(ctx context.Context, userID primitive.ObjectID, role domain.Role, athleteID primitive.ObjectID) ([]domain.Block, error)
	Patch(ctx context.Context, coachID, blockID primitive.ObjectID, patch BlockPatch, confirmTruncate bool) (*domain.Block, error)
	UpdateWeek(ctx context.Context, coachID, blockID primitive.ObjectID, weekNumber int, days []domain.DailySchedule) (*domain.Block, error)
	UpdateDay(ctx context.Context, coachID, blockID primitive.ObjectID, weekNumber, dayIndex int, day domain.DailySchedule) (*domain.Block, error)
	AddExercise(ctx context.Context, coachID, blockID primitive.ObjectID, weekNumber, dayIndex int, entry domain.ExerciseEntry) (*domain.Block, error)
	DeleteExercise(ctx context.Context, coachID, blockID, entryID primitive.ObjectID) (*domain.Block, error)
	UpdateSet(ctx context.Context, athleteID, blockID, entryID, setID primitive.ObjectID, patch domain.SetPatch) (*domain.Block, error)
	AddWarmupSet(ctx context.Context, athleteID, blockID, entryID primitive.ObjectID, in WarmupSetInput) (*domain.Block, error)
	DeleteWarmupSet(ctx context.Context, athleteID, blockID, entryID, setID primitive.ObjectID) (*domain.Block, error)
	Delete(ctx context.Context, coachID, blockID primitive.ObjectID) error
}

type blockService struct {
	blockRepo    repository.BlockRepository
	programRepo  repository.ProgramRepository
	templateRepo repository.TemplateRepository
	userRepo     repository.UserRepository
	tx           TxRunner
	now          func() time.Time
}

func NewBlockService(
	blockRepo repository.BlockRepository,
	programRepo repository.ProgramRepository,
	templateRepo repository.TemplateRepository,
	userRepo repository.UserRepository,
	tx TxRunner,
) BlockService {
	return &blockService{
		blockRepo:    blockRepo,
		programRepo:  programRepo,
		templateRepo: templateRepo,
		userRepo:     userRepo,
		tx:           tx,
		now:          time.Now,
	}
}

// Create validates the block, checks the athlete's calendar for overlap and
// inserts it, appending its ID to the pair's active program in the same
// transaction.
func (s *blockService) Create(ctx context.Context, coachID primitive.ObjectID, block *domain.Block) (*domain.Block, error) {
	coach, err := s.userRepo.GetByID(ctx, coachID)
	if err != nil {
		return nil, err
	}
	if !coach.HasAthlete(block.Athlete) {
		return nil, ErrNotOnRoster
	}

	block.Coach = coachID
	if err := block.Validate(s.now()); err != nil {
		return nil, err
	}

	program, err := s.programRepo.GetActiveByPair(ctx, coachID, block.Athlete)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActiveProgram
		}
		return nil, err
	}

	if _, err := s.blockRepo.FindOverlapping(ctx, block.Athlete, block); err == nil {
		return nil, ErrBlockOverlap
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	block.AssignIDs(s.now().UTC())

	err = s.tx.Run(ctx, func(ctx context.Context) error {
		id, err := s.blockRepo.Create(ctx, block)
		if err != nil {
			return err
		}
		block.ID = id
		return s.programRepo.AppendBlock(ctx, program.ID, id)
	})
	if err != nil {
		return nil, err
	}
	return block, nil
}

// CreateFromTemplate instantiates one of the coach's saved templates and
// runs it through the same pipeline as a hand-built block.
func (s *blockService) CreateFromTemplate(ctx context.Context, coachID, templateID, athleteID primitive.ObjectID, overrides domain.BlockOverrides) (*domain.Block, error) {
	template, err := s.templateRepo.GetByIDForCoach(ctx, templateID, coachID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	block := template.Instantiate(coachID, athleteID, overrides)
	return s.Create(ctx, coachID, &block)
}

// Get serves both roles; ownership scoping happens in the repository filter.
func (s *blockService) Get(ctx context.Context, userID primitive.ObjectID, role domain.Role, blockID primitive.ObjectID) (*domain.Block, error) {
	var block *domain.Block
	var err error
	switch role {
	case domain.RoleAthlete:
		block, err = s.blockRepo.GetByIDForAthlete(ctx, blockID, userID)
	default:
		block, err = s.blockRepo.GetByIDForCoach(ctx, blockID, userID)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBlockNotFound
		}
		return nil, err
	}
	return block, nil
}

// ListForAthlete returns an athlete's blocks. An athlete may only list their
// own; a coach only a rostered athlete's.
func (s *blockService) ListForAthlete(ctx context.Context, userID primitive.ObjectID, role domain.Role, athleteID primitive.ObjectID) ([]domain.Block, error) {
	if role == domain.RoleAthlete {
		if userID != athleteID {
			return nil, ErrBlockNotFound
		}
		return s.blockRepo.ListByAthlete(ctx, athleteID)
	}

	coach, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !coach.HasAthlete(athleteID) {
		return nil, ErrNotOnRoster
	}
	return s.blockRepo.ListByAthlete(ctx, athleteID)
}

// Patch updates top-level block fields. Shrinking numberOfWeeks discards
// trailing weeks and is gated behind confirmTruncate; growing requires the
// caller to supply the larger schedule explicitly.
func (s *blockService) Patch(ctx context.Context, coachID, blockID primitive.ObjectID, patch BlockPatch, confirmTruncate bool) (*domain.Block, error) {
	block, err := s.coachBlock(ctx, coachID, blockID)
	if err != nil {
		return nil, err
	}

	if patch.BlockName != nil {
		block.BlockName = *patch.BlockName
	}
	if len(patch.Days) > 0 {
		block.Days = patch.Days
	}
	if patch.BlockStartDate != nil {
		block.BlockStartDate = *patch.BlockStartDate
	}
	if patch.BlockEndDate != nil {
		block.BlockEndDate = *patch.BlockEndDate
	}
	if len(patch.BlockSchedule) > 0 {
		block.BlockSchedule = patch.BlockSchedule
	}
	if patch.NumberOfWeeks != nil {
		target := *patch.NumberOfWeeks
		if target < domain.MinWeeks || target > domain.MaxWeeks {
			return nil, domain.ValidationError{Field: "numberOfWeeks", Reason: "must be between 1 and 12"}
		}
		if target < len(block.BlockSchedule) {
			if !confirmTruncate {
				return nil, ErrTruncateNotConfirmed
			}
			block.BlockSchedule = block.BlockSchedule[:target]
		}
		block.NumberOfWeeks = target
	}

	// Date rules re-apply when either endpoint moved; a running block keeps
	// its past start date otherwise.
	if patch.BlockStartDate != nil || patch.BlockEndDate != nil || patch.NumberOfWeeks != nil {
		if block.BlockStartDate.Weekday() != time.Sunday {
			return nil, domain.ValidationError{Field: "blockStartDate", Reason: "must be a Sunday"}
		}
		expected := domain.ExpectedEndDate(block.BlockStartDate, block.NumberOfWeeks)
		if !block.BlockEndDate.Equal(expected) && !sameCalendarDay(block.BlockEndDate, expected) {
			return nil, domain.ValidationError{Field: "blockEndDate", Reason: "must be the Saturday closing the final week"}
		}
		if _, err := s.blockRepo.FindOverlapping(ctx, block.Athlete, block); err == nil {
			return nil, ErrBlockOverlap
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	if err := block.ValidateSchedule(); err != nil {
		return nil, err
	}
	block.AssignIDs(s.now().UTC())

	return s.save(ctx, block)
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// UpdateWeek replaces the daily schedule of one week wholesale.
func (s *blockService) UpdateWeek(ctx context.Context, coachID, blockID primitive.ObjectID, weekNumber int, days []domain.DailySchedule) (*domain.Block, error) {
	block, err := s.coachBlock(ctx, coachID, blockID)
	if err != nil {
		return nil, err
	}

	week := block.Week(weekNumber)
	if week == nil {
		return nil, ErrWeekNotFound
	}
	week.DailySchedule = days

	if err := block.ValidateSchedule(); err != nil {
		return nil, err
	}
	block.AssignIDs(s.now().UTC())

	return s.save(ctx, block)
}

// UpdateDay replaces one day within a week.
func (s *blockService) UpdateDay(ctx context.Context, coachID, blockID primitive.ObjectID, weekNumber, dayIndex int, day domain.DailySchedule) (*domain.Block, error) {
	block, err := s.coachBlock(ctx, coachID, blockID)
	if err != nil {
		return nil, err
	}

	week := block.Week(weekNumber)
	if week == nil {
		return nil, ErrWeekNotFound
	}
	target := week.Day(dayIndex)
	if target == nil {
		return nil, ErrDayNotFound
	}
	*target = day

	if err := block.ValidateSchedule(); err != nil {
		return nil, err
	}
	block.AssignIDs(s.now().UTC())

	return s.save(ctx, block)
}

// AddExercise appends a coach-authored entry to a day. All of its sets must
// be of a type a coach may create.
func (s *blockService) AddExercise(ctx context.Context, coachID, blockID primitive.ObjectID, weekNumber, dayIndex int, entry domain.ExerciseEntry) (*domain.Block, error) {
	block, err := s.coachBlock(ctx, coachID, blockID)
	if err != nil {
		return nil, err
	}
	if entry.ExerciseID == primitive.NilObjectID {
		return nil, domain.ValidationError{Field: "exerciseId", Reason: "is required"}
	}

	week := block.Week(weekNumber)
	if week == nil {
		return nil, ErrWeekNotFound
	}
	day := week.Day(dayIndex)
	if day == nil {
		return nil, ErrDayNotFound
	}

	for i := range entry.SetsDetail {
		entry.SetsDetail[i].CreatedBy = domain.AuthorCoach
		if !domain.AuthorMayCreate(domain.AuthorCoach, entry.SetsDetail[i].Type) {
			return nil, domain.ValidationError{Field: "setsDetail", Reason: "coach may not create a " + string(entry.SetsDetail[i].Type) + " set"}
		}
	}
	entry.ID = primitive.NilObjectID
	day.Exercises = append(day.Exercises, entry)

	block.AssignIDs(s.now().UTC())
	return s.save(ctx, block)
}

// DeleteExercise removes an entry, warmups and all.
func (s *blockService) DeleteExercise(ctx context.Context, coachID, blockID, entryID primitive.ObjectID) (*domain.Block, error) {
	block, err := s.coachBlock(ctx, coachID, blockID)
	if err != nil {
		return nil, err
	}

	removed := false
	for wi := range block.BlockSchedule {
		for di := range block.BlockSchedule[wi].DailySchedule {
			day := &block.BlockSchedule[wi].DailySchedule[di]
			for ei := range day.Exercises {
				if day.Exercises[ei].ID == entryID {
					day.Exercises = append(day.Exercises[:ei], day.Exercises[ei+1:]...)
					removed = true
					break
				}
			}
			if removed {
				break
			}
		}
		if removed {
			break
		}
	}
	if !removed {
		return nil, ErrEntryNotFound
	}

	return s.save(ctx, block)
}

// UpdateSet is the athlete logging path: the field-level write policy
// decides what lands, and a set outside the policy rejects the whole patch.
func (s *blockService) UpdateSet(ctx context.Context, athleteID, blockID, entryID, setID primitive.ObjectID, patch domain.SetPatch) (*domain.Block, error) {
	block, err := s.athleteBlock(ctx, athleteID, blockID)
	if err != nil {
		return nil, err
	}

	entry := block.FindExercise(entryID)
	if entry == nil {
		return nil, ErrEntryNotFound
	}
	set := entry.FindSet(setID)
	if set == nil {
		return nil, ErrSetNotFound
	}
	if !set.ApplyPatch(patch) {
		return nil, ErrSetReadOnly
	}

	return s.save(ctx, block)
}

// AddWarmupSet lets the athlete log a warmup against a coach-authored entry.
func (s *blockService) AddWarmupSet(ctx context.Context, athleteID, blockID, entryID primitive.ObjectID, in WarmupSetInput) (*domain.Block, error) {
	block, err := s.athleteBlock(ctx, athleteID, blockID)
	if err != nil {
		return nil, err
	}

	entry := block.FindExercise(entryID)
	if entry == nil {
		return nil, ErrEntryNotFound
	}

	now := s.now().UTC()
	entry.SetsDetail = append(entry.SetsDetail, domain.Set{
		ID:         primitive.NewObjectID(),
		Type:       domain.SetWarmup,
		CreatedBy:  domain.AuthorAthlete,
		ActualReps: in.ActualReps,
		ActualLoad: in.ActualLoad,
		CreatedAt:  now,
	})

	return s.save(ctx, block)
}

// DeleteWarmupSet removes one of the athlete's own warmup sets. Coach
// prescription is not deletable from the athlete side.
func (s *blockService) DeleteWarmupSet(ctx context.Context, athleteID, blockID, entryID, setID primitive.ObjectID) (*domain.Block, error) {
	block, err := s.athleteBlock(ctx, athleteID, blockID)
	if err != nil {
		return nil, err
	}

	entry := block.FindExercise(entryID)
	if entry == nil {
		return nil, ErrEntryNotFound
	}
	set := entry.FindSet(setID)
	if set == nil {
		return nil, ErrSetNotFound
	}
	if set.Type != domain.SetWarmup || set.CreatedBy != domain.AuthorAthlete {
		return nil, ErrNotWarmupSet
	}
	entry.RemoveSet(setID)

	return s.save(ctx, block)
}

// Delete removes the block and detaches it from its program. The block
// delete is authoritative; the program pull is cleanup.
func (s *blockService) Delete(ctx context.Context, coachID, blockID primitive.ObjectID) error {
	err := s.tx.Run(ctx, func(ctx context.Context) error {
		if err := s.blockRepo.Delete(ctx, blockID, coachID); err != nil {
			return err
		}
		if err := s.programRepo.RemoveBlock(ctx, blockID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return ErrBlockNotFound
	}
	return err
}

func (s *blockService) coachBlock(ctx context.Context, coachID, blockID primitive.ObjectID) (*domain.Block, error) {
	block, err := s.blockRepo.GetByIDForCoach(ctx, blockID, coachID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBlockNotFound
		}
		return nil, err
	}
	return block, nil
}

func (s *blockService) athleteBlock(ctx context.Context, athleteID, blockID primitive.ObjectID) (*domain.Block, error) {
	block, err := s.blockRepo.GetByIDForAthlete(ctx, blockID, athleteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBlockNotFound
		}
		return nil, err
	}
	return block, nil
}

func (s *blockService) save(ctx context.Context, block *domain.Block) (*domain.Block, error) {
	if err := s.blockRepo.Save(ctx, block); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrVersionConflict
		}
		return nil, err
	}
	return block, nil
}
