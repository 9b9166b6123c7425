package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"motionscope/training-api/internal/domain"
	"motionscope/training-api/internal/repository"
)

// --- Error Definitions ---
var (
	ErrProgramNotFound = errors.New("program not found")
	ErrProgramExists   = errors.New("an active program already exists for this coach and athlete")
)

// ProgramService binds a coach/athlete pair to their training timeline.
type ProgramService interface {
	Create(ctx context.Context, coachID, athleteID primitive.ObjectID) (*domain.Program, error)
	// Current resolves the caller's active program into its merged
	// timeline; the head item is what's trained next.
	Current(ctx context.Context, userID primitive.ObjectID, role domain.Role, athleteID primitive.ObjectID) (*domain.Program, []domain.TrainingItem, error)
	SetArchived(ctx context.Context, coachID, programID primitive.ObjectID, archived bool) (*domain.Program, error)
	Delete(ctx context.Context, coachID, programID primitive.ObjectID) error
}

type programService struct {
	programRepo repository.ProgramRepository
	blockRepo   repository.BlockRepository
	compDayRepo repository.CompDayRepository
	userRepo    repository.UserRepository
	logger      *zap.Logger
}

func NewProgramService(
	programRepo repository.ProgramRepository,
	blockRepo repository.BlockRepository,
	compDayRepo repository.CompDayRepository,
	userRepo repository.UserRepository,
	logger *zap.Logger,
) ProgramService {
	return &programService{
		programRepo: programRepo,
		blockRepo:   blockRepo,
		compDayRepo: compDayRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// Create opens a program for a rostered athlete. The service check and the
// partial unique index both enforce the single-active-program rule.
func (s *programService) Create(ctx context.Context, coachID, athleteID primitive.ObjectID) (*domain.Program, error) {
	coach, err := s.userRepo.GetByID(ctx, coachID)
	if err != nil {
		return nil, err
	}
	if !coach.HasAthlete(athleteID) {
		return nil, ErrNotOnRoster
	}

	if _, err := s.programRepo.GetActiveByPair(ctx, coachID, athleteID); err == nil {
		return nil, ErrProgramExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	program := &domain.Program{
		Coach:   coachID,
		Athlete: athleteID,
	}
	id, err := s.programRepo.Create(ctx, program)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrProgramExists
		}
		return nil, err
	}
	program.ID = id
	return program, nil
}

// Current loads the active program for the athlete and merges its blocks
// and competition days into the descending timeline. A coach sees a
// rostered athlete's program; an athlete only their own.
func (s *programService) Current(ctx context.Context, userID primitive.ObjectID, role domain.Role, athleteID primitive.ObjectID) (*domain.Program, []domain.TrainingItem, error) {
	var program *domain.Program
	var err error

	switch role {
	case domain.RoleAthlete:
		if userID != athleteID {
			return nil, nil, ErrProgramNotFound
		}
		program, err = s.programRepo.GetActiveByAthlete(ctx, athleteID)
	default:
		program, err = s.programRepo.GetActiveByPair(ctx, userID, athleteID)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrProgramNotFound
		}
		return nil, nil, err
	}

	blocks, err := s.blockRepo.GetManyByID(ctx, program.Blocks)
	if err != nil {
		return nil, nil, err
	}
	compDays, err := s.compDayRepo.GetManyByID(ctx, program.CompDays)
	if err != nil {
		return nil, nil, err
	}

	return program, domain.MergeTimeline(blocks, compDays), nil
}

// SetArchived toggles the archived flag. Unarchiving fails when another
// active program took the pair's slot in the meantime.
func (s *programService) SetArchived(ctx context.Context, coachID, programID primitive.ObjectID, archived bool) (*domain.Program, error) {
	program, err := s.coachProgram(ctx, coachID, programID)
	if err != nil {
		return nil, err
	}

	if !archived {
		existing, err := s.programRepo.GetActiveByPair(ctx, program.Coach, program.Athlete)
		if err == nil && existing.ID != programID {
			return nil, ErrProgramExists
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	if err := s.programRepo.SetArchived(ctx, programID, archived); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrProgramExists
		}
		return nil, err
	}
	program.IsArchived = archived
	return program, nil
}

// Delete removes the program and everything it references. The cascade is
// not atomic; a failure partway leaves orphans behind, which is logged and
// accepted.
func (s *programService) Delete(ctx context.Context, coachID, programID primitive.ObjectID) error {
	program, err := s.coachProgram(ctx, coachID, programID)
	if err != nil {
		return err
	}

	if err := s.blockRepo.DeleteManyByID(ctx, program.Blocks); err != nil {
		s.logger.Error("program delete: block cascade failed",
			zap.String("program", programID.Hex()), zap.Error(err))
		return err
	}
	if err := s.compDayRepo.DeleteManyByID(ctx, program.CompDays); err != nil {
		s.logger.Error("program delete: comp day cascade failed",
			zap.String("program", programID.Hex()), zap.Error(err))
		return err
	}
	return s.programRepo.Delete(ctx, programID)
}

func (s *programService) coachProgram(ctx context.Context, coachID, programID primitive.ObjectID) (*domain.Program, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	if program.Coach != coachID {
		return nil, ErrProgramNotFound
	}
	return program, nil
}
