package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"motionscope/training-api/internal/domain"
	"motionscope/training-api/internal/repository"
)

var ErrQuestionnaireNotFound = errors.New("questionnaire not found")

// QuestionnaireService owns the athlete onboarding form: one per athlete,
// written by the athlete, readable by any coach who rosters them.
type QuestionnaireService interface {
	Submit(ctx context.Context, athleteID primitive.ObjectID, q *domain.Questionnaire) (*domain.Questionnaire, error)
	GetOwn(ctx context.Context, athleteID primitive.ObjectID) (*domain.Questionnaire, error)
	GetForAthlete(ctx context.Context, coachID, athleteID primitive.ObjectID) (*domain.Questionnaire, error)
}

type questionnaireService struct {
	questionnaireRepo repository.QuestionnaireRepository
	userRepo          repository.UserRepository
}

func NewQuestionnaireService(questionnaireRepo repository.QuestionnaireRepository, userRepo repository.UserRepository) QuestionnaireService {
	return &questionnaireService{
		questionnaireRepo: questionnaireRepo,
		userRepo:          userRepo,
	}
}

// Submit creates or replaces the athlete's form.
func (s *questionnaireService) Submit(ctx context.Context, athleteID primitive.ObjectID, q *domain.Questionnaire) (*domain.Questionnaire, error) {
	q.Athlete = athleteID
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := s.questionnaireRepo.Upsert(ctx, q); err != nil {
		return nil, err
	}
	return s.questionnaireRepo.GetByAthlete(ctx, athleteID)
}

func (s *questionnaireService) GetOwn(ctx context.Context, athleteID primitive.ObjectID) (*domain.Questionnaire, error) {
	q, err := s.questionnaireRepo.GetByAthlete(ctx, athleteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuestionnaireNotFound
		}
		return nil, err
	}
	return q, nil
}

// GetForAthlete lets a coach read a rostered athlete's form.
func (s *questionnaireService) GetForAthlete(ctx context.Context, coachID, athleteID primitive.ObjectID) (*domain.Questionnaire, error) {
	coach, err := s.userRepo.GetByID(ctx, coachID)
	if err != nil {
		return nil, err
	}
	if !coach.HasAthlete(athleteID) {
		return nil, ErrQuestionnaireNotFound
	}
	return s.GetOwn(ctx, athleteID)
}
