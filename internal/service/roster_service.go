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
	ErrUserNotFound    = errors.New("user not found")
	ErrNotAnAthlete    = errors.New("user is not an athlete")
	ErrNotACoach       = errors.New("user is not a coach")
	ErrAlreadyOnRoster = errors.New("athlete is already on the roster")
	ErrNotOnRoster     = errors.New("athlete is not on the roster")
)

// RosterService manages the coach-side athlete roster. The relation lives
// only on the coach document.
type RosterService interface {
	ListRoster(ctx context.Context, coachID primitive.ObjectID) ([]domain.User, error)
	AddAthlete(ctx context.Context, coachID, athleteID primitive.ObjectID) error
	RemoveAthlete(ctx context.Context, coachID, athleteID primitive.ObjectID) error
	// LeaveCoach lets an athlete remove themselves from a coach's roster.
	LeaveCoach(ctx context.Context, athleteID, coachID primitive.ObjectID) error
}

type rosterService struct {
	userRepo repository.UserRepository
}

func NewRosterService(userRepo repository.UserRepository) RosterService {
	return &rosterService{userRepo: userRepo}
}

// ListRoster resolves the coach's athlete IDs to public user records.
func (s *rosterService) ListRoster(ctx context.Context, coachID primitive.ObjectID) ([]domain.User, error) {
	coach, err := s.userRepo.GetByID(ctx, coachID)
	if err != nil {
		return nil, err
	}
	if !coach.IsCoach() {
		return nil, ErrNotACoach
	}

	athletes, err := s.userRepo.GetManyByID(ctx, coach.Athletes)
	if err != nil {
		return nil, err
	}
	for i := range athletes {
		athletes[i].PasswordHash = ""
	}
	return athletes, nil
}

// AddAthlete puts an athlete on the coach's roster. Only accounts with the
// athlete role can be rostered.
func (s *rosterService) AddAthlete(ctx context.Context, coachID, athleteID primitive.ObjectID) error {
	athlete, err := s.userRepo.GetByID(ctx, athleteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !athlete.IsAthlete() {
		return ErrNotAnAthlete
	}

	coach, err := s.userRepo.GetByID(ctx, coachID)
	if err != nil {
		return err
	}
	if coach.HasAthlete(athleteID) {
		return ErrAlreadyOnRoster
	}

	return s.userRepo.AddAthleteToRoster(ctx, coachID, athleteID)
}

// RemoveAthlete drops the athlete from the coach's roster. Removing someone
// who is not rostered is an error, not a no-op.
func (s *rosterService) RemoveAthlete(ctx context.Context, coachID, athleteID primitive.ObjectID) error {
	coach, err := s.userRepo.GetByID(ctx, coachID)
	if err != nil {
		return err
	}
	if !coach.HasAthlete(athleteID) {
		return ErrNotOnRoster
	}

	return s.userRepo.RemoveAthleteFromRoster(ctx, coachID, athleteID)
}

// LeaveCoach is the athlete-initiated variant of RemoveAthlete.
func (s *rosterService) LeaveCoach(ctx context.Context, athleteID, coachID primitive.ObjectID) error {
	coach, err := s.userRepo.GetByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !coach.IsCoach() {
		return ErrNotACoach
	}
	if !coach.HasAthlete(athleteID) {
		return ErrNotOnRoster
	}

	return s.userRepo.RemoveAthleteFromRoster(ctx, coachID, athleteID)
}
