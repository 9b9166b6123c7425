package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"motionscope/training-api/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrConflict     = RepositoryError("conflict")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetManyByID(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error)
	AddAthleteToRoster(ctx context.Context, coachID, athleteID primitive.ObjectID) error
	RemoveAthleteFromRoster(ctx context.Context, coachID, athleteID primitive.ObjectID) error
}

// ExerciseRepository covers both preset and custom catalog entries; the
// variant lives in the document's type/createdBy fields.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	ListForCoach(ctx context.Context, coachID primitive.ObjectID) ([]domain.Exercise, error)
	ListByType(ctx context.Context, t domain.ExerciseType) ([]domain.Exercise, error)
	ListCustomByCoach(ctx context.Context, coachID primitive.ObjectID) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// BlockRepository defines the interface for interacting with block data.
// Owner-scoped lookups fold the ownership check into the query filter, so a
// block that exists but belongs to someone else surfaces as ErrNotFound.
type BlockRepository interface {
	Create(ctx context.Context, block *domain.Block) (primitive.ObjectID, error)
	GetByIDForCoach(ctx context.Context, id, coachID primitive.ObjectID) (*domain.Block, error)
	GetByIDForAthlete(ctx context.Context, id, athleteID primitive.ObjectID) (*domain.Block, error)
	GetManyByID(ctx context.Context, ids []primitive.ObjectID) ([]domain.Block, error)
	ListByAthlete(ctx context.Context, athleteID primitive.ObjectID) ([]domain.Block, error)
	FindOverlapping(ctx context.Context, athleteID primitive.ObjectID, block *domain.Block) (*domain.Block, error)
	// Save persists the full document, guarded by the block's version token;
	// a concurrent save in between surfaces as ErrConflict.
	Save(ctx context.Context, block *domain.Block) error
	Delete(ctx context.Context, id, coachID primitive.ObjectID) error
	DeleteManyByID(ctx context.Context, ids []primitive.ObjectID) error
}

// CompDayRepository defines the interface for interacting with competition
// day data.
type CompDayRepository interface {
	Create(ctx context.Context, compDay *domain.CompDay) (primitive.ObjectID, error)
	GetByIDForCoach(ctx context.Context, id, coachID primitive.ObjectID) (*domain.CompDay, error)
	GetByIDForAthlete(ctx context.Context, id, athleteID primitive.ObjectID) (*domain.CompDay, error)
	GetManyByID(ctx context.Context, ids []primitive.ObjectID) ([]domain.CompDay, error)
	Save(ctx context.Context, compDay *domain.CompDay) error
	Delete(ctx context.Context, id, coachID primitive.ObjectID) error
	DeleteManyByID(ctx context.Context, ids []primitive.ObjectID) error
}

// ProgramRepository defines the interface for interacting with program data.
type ProgramRepository interface {
	Create(ctx context.Context, program *domain.Program) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Program, error)
	GetActiveByPair(ctx context.Context, coachID, athleteID primitive.ObjectID) (*domain.Program, error)
	GetActiveByAthlete(ctx context.Context, athleteID primitive.ObjectID) (*domain.Program, error)
	AppendBlock(ctx context.Context, programID, blockID primitive.ObjectID) error
	RemoveBlock(ctx context.Context, blockID primitive.ObjectID) error
	AppendCompDay(ctx context.Context, programID, compDayID primitive.ObjectID) error
	RemoveCompDay(ctx context.Context, compDayID primitive.ObjectID) error
	SetArchived(ctx context.Context, id primitive.ObjectID, archived bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TemplateRepository defines the interface for saved block templates.
type TemplateRepository interface {
	Create(ctx context.Context, template *domain.SavedBlockTemplate) (primitive.ObjectID, error)
	GetByIDForCoach(ctx context.Context, id, coachID primitive.ObjectID) (*domain.SavedBlockTemplate, error)
	ListByCoach(ctx context.Context, coachID primitive.ObjectID) ([]domain.SavedBlockTemplate, error)
	Delete(ctx context.Context, id, coachID primitive.ObjectID) error
}

// QuestionnaireRepository defines the interface for onboarding forms.
type QuestionnaireRepository interface {
	Upsert(ctx context.Context, q *domain.Questionnaire) error
	GetByAthlete(ctx context.Context, athleteID primitive.ObjectID) (*domain.Questionnaire, error)
}
