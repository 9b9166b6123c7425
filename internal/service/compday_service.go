package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"motionscope/training-api/internal/domain"
	"motionscope/training-api/internal/repository"
)

// --- Error Definitions ---
var (
	ErrCompDayNotFound  = errors.New("competition day not found")
	ErrAttemptedByCoach = errors.New("actuallyAttempted can only be set by the athlete")
	ErrLiftNotFound     = errors.New("lift not found on this sheet")
	ErrAttemptNotFound  = errors.New("attempt slot not found")
)

// CompDayService owns competition-day sheets: coach-authored attempt plans
// with an athlete-only flag per platform attempt.
type CompDayService interface {
	Create(ctx context.Context, coachID primitive.ObjectID, compDay *domain.CompDay) (*domain.CompDay, error)
	Get(ctx context.Context, userID primitive.ObjectID, role domain.Role, id primitive.ObjectID) (*domain.CompDay, error)
	CoachUpdate(ctx context.Context, coachID, id primitive.ObjectID, updated *domain.CompDay) (*domain.CompDay, error)
	MarkAttempt(ctx context.Context, athleteID, id primitive.ObjectID, liftName string, round domain.AttemptRound, index int, attempted bool) (*domain.CompDay, error)
	Delete(ctx context.Context, coachID, id primitive.ObjectID) error
}

type compDayService struct {
	compDayRepo repository.CompDayRepository
	programRepo repository.ProgramRepository
	userRepo    repository.UserRepository
	tx          TxRunner
}

func NewCompDayService(
	compDayRepo repository.CompDayRepository,
	programRepo repository.ProgramRepository,
	userRepo repository.UserRepository,
	tx TxRunner,
) CompDayService {
	return &compDayService{
		compDayRepo: compDayRepo,
		programRepo: programRepo,
		userRepo:    userRepo,
		tx:          tx,
	}
}

// Create validates the sheet and inserts it, appending its ID to the pair's
// active program in the same transaction.
func (s *compDayService) Create(ctx context.Context, coachID primitive.ObjectID, compDay *domain.CompDay) (*domain.CompDay, error) {
	coach, err := s.userRepo.GetByID(ctx, coachID)
	if err != nil {
		return nil, err
	}
	if !coach.HasAthlete(compDay.Athlete) {
		return nil, ErrNotOnRoster
	}

	compDay.Coach = coachID
	if err := compDay.Validate(); err != nil {
		return nil, err
	}
	// A freshly created plan has no attempts taken yet.
	if compDay.TouchesActuallyAttempted() {
		return nil, ErrAttemptedByCoach
	}

	program, err := s.programRepo.GetActiveByPair(ctx, coachID, compDay.Athlete)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActiveProgram
		}
		return nil, err
	}

	err = s.tx.Run(ctx, func(ctx context.Context) error {
		id, err := s.compDayRepo.Create(ctx, compDay)
		if err != nil {
			return err
		}
		compDay.ID = id
		return s.programRepo.AppendCompDay(ctx, program.ID, id)
	})
	if err != nil {
		return nil, err
	}
	return compDay, nil
}

func (s *compDayService) Get(ctx context.Context, userID primitive.ObjectID, role domain.Role, id primitive.ObjectID) (*domain.CompDay, error) {
	var compDay *domain.CompDay
	var err error
	switch role {
	case domain.RoleAthlete:
		compDay, err = s.compDayRepo.GetByIDForAthlete(ctx, id, userID)
	default:
		compDay, err = s.compDayRepo.GetByIDForCoach(ctx, id, userID)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCompDayNotFound
		}
		return nil, err
	}
	return compDay, nil
}

// CoachUpdate replaces the sheet's plan. A payload that sets any
// actuallyAttempted flag is rejected wholesale before a single field is
// applied; the flag belongs to the athlete.
func (s *compDayService) CoachUpdate(ctx context.Context, coachID, id primitive.ObjectID, updated *domain.CompDay) (*domain.CompDay, error) {
	if updated.TouchesActuallyAttempted() {
		return nil, ErrAttemptedByCoach
	}

	existing, err := s.compDayRepo.GetByIDForCoach(ctx, id, coachID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCompDayNotFound
		}
		return nil, err
	}

	existing.CompetitionName = updated.CompetitionName
	existing.Date = updated.Date
	existing.WeightClass = updated.WeightClass

	// Athlete-set flags on the stored sheet survive the plan rewrite.
	attempted := collectAttempted(existing)
	existing.Lifts = updated.Lifts
	restoreAttempted(existing, attempted)

	if err := existing.Validate(); err != nil {
		return nil, err
	}

	return s.save(ctx, existing)
}

// MarkAttempt flips the athlete-only flag on one attempt slot.
func (s *compDayService) MarkAttempt(ctx context.Context, athleteID, id primitive.ObjectID, liftName string, round domain.AttemptRound, index int, attempted bool) (*domain.CompDay, error) {
	compDay, err := s.compDayRepo.GetByIDForAthlete(ctx, id, athleteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCompDayNotFound
		}
		return nil, err
	}

	lift := compDay.Lift(liftName)
	if lift == nil {
		return nil, ErrLiftNotFound
	}
	if !lift.MarkAttempt(round, index, attempted) {
		return nil, ErrAttemptNotFound
	}

	return s.save(ctx, compDay)
}

func (s *compDayService) Delete(ctx context.Context, coachID, id primitive.ObjectID) error {
	err := s.tx.Run(ctx, func(ctx context.Context) error {
		if err := s.compDayRepo.Delete(ctx, id, coachID); err != nil {
			return err
		}
		if err := s.programRepo.RemoveCompDay(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCompDayNotFound
	}
	return err
}

func (s *compDayService) save(ctx context.Context, compDay *domain.CompDay) (*domain.CompDay, error) {
	if err := s.compDayRepo.Save(ctx, compDay); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrVersionConflict
		}
		return nil, err
	}
	return compDay, nil
}

// attemptKey addresses one attempt slot across a sheet rewrite.
type attemptKey struct {
	lift  string
	round domain.AttemptRound
	index int
}

func collectAttempted(c *domain.CompDay) map[attemptKey]bool {
	out := map[attemptKey]bool{}
	for _, lift := range c.Lifts {
		if lift.Attempts.First.ActuallyAttempted {
			out[attemptKey{lift.Name, domain.RoundFirst, 0}] = true
		}
		for i, a := range lift.Attempts.Second {
			if a.ActuallyAttempted {
				out[attemptKey{lift.Name, domain.RoundSecond, i}] = true
			}
		}
		for i, a := range lift.Attempts.Third {
			if a.ActuallyAttempted {
				out[attemptKey{lift.Name, domain.RoundThird, i}] = true
			}
		}
	}
	return out
}

func restoreAttempted(c *domain.CompDay, attempted map[attemptKey]bool) {
	for i := range c.Lifts {
		lift := &c.Lifts[i]
		if attempted[attemptKey{lift.Name, domain.RoundFirst, 0}] {
			lift.Attempts.First.ActuallyAttempted = true
		}
		for j := range lift.Attempts.Second {
			if attempted[attemptKey{lift.Name, domain.RoundSecond, j}] {
				lift.Attempts.Second[j].ActuallyAttempted = true
			}
		}
		for j := range lift.Attempts.Third {
			if attempted[attemptKey{lift.Name, domain.RoundThird, j}] {
				lift.Attempts.Third[j].ActuallyAttempted = true
			}
		}
	}
}
