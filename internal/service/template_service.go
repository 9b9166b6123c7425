package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"motionscope/training-api/internal/domain"
	"motionscope/training-api/internal/repository"
)

var ErrTemplateNameTaken = errors.New("a template with this name already exists")

// TemplateService manages a coach's saved block templates.
type TemplateService interface {
	Create(ctx context.Context, coachID primitive.ObjectID, template *domain.SavedBlockTemplate) (*domain.SavedBlockTemplate, error)
	Get(ctx context.Context, coachID, id primitive.ObjectID) (*domain.SavedBlockTemplate, error)
	List(ctx context.Context, coachID primitive.ObjectID) ([]domain.SavedBlockTemplate, error)
	Delete(ctx context.Context, coachID, id primitive.ObjectID) error
}

type templateService struct {
	templateRepo repository.TemplateRepository
}

func NewTemplateService(templateRepo repository.TemplateRepository) TemplateService {
	return &templateService{templateRepo: templateRepo}
}

func (s *templateService) Create(ctx context.Context, coachID primitive.ObjectID, template *domain.SavedBlockTemplate) (*domain.SavedBlockTemplate, error) {
	template.Coach = coachID
	if err := template.Validate(); err != nil {
		return nil, err
	}

	id, err := s.templateRepo.Create(ctx, template)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrTemplateNameTaken
		}
		return nil, err
	}
	template.ID = id
	return template, nil
}

func (s *templateService) Get(ctx context.Context, coachID, id primitive.ObjectID) (*domain.SavedBlockTemplate, error) {
	template, err := s.templateRepo.GetByIDForCoach(ctx, id, coachID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return template, nil
}

func (s *templateService) List(ctx context.Context, coachID primitive.ObjectID) ([]domain.SavedBlockTemplate, error) {
	return s.templateRepo.ListByCoach(ctx, coachID)
}

func (s *templateService) Delete(ctx context.Context, coachID, id primitive.ObjectID) error {
	err := s.templateRepo.Delete(ctx, id, coachID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTemplateNotFound
	}
	return err
}
