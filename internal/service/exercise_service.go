package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"motionscope/training-api/internal/domain"
	"motionscope/training-api/internal/repository"
	"motionscope/training-api/internal/storage"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound  = errors.New("exercise not found")
	ErrExerciseForbidden = errors.New("not allowed to modify this exercise")
	ErrNoVideo           = errors.New("exercise has no demonstration video")
	ErrUnsupportedMedia  = errors.New("unsupported video content type")
)

// Content types accepted for demonstration videos.
var allowedVideoTypes = map[string]bool{
	"video/mp4":       true,
	"video/quicktime": true,
	"video/webm":      true,
}

// ExerciseInput carries the writable fields of a catalog entry.
type ExerciseInput struct {
	Name        string
	Description string
	MuscleGroup string
}

// VideoUploadTicket is handed to the client to upload a demonstration video
// straight to object storage.
type VideoUploadTicket struct {
	UploadURL string
	ObjectKey string
}

// ExerciseService manages the catalog: developer-curated presets shared by
// every coach, and customs scoped to their creating coach.
type ExerciseService interface {
	CreatePreset(ctx context.Context, developerID primitive.ObjectID, in ExerciseInput) (*domain.Exercise, error)
	CreateCustom(ctx context.Context, coachID primitive.ObjectID, in ExerciseInput) (*domain.Exercise, error)
	Get(ctx context.Context, userID primitive.ObjectID, role domain.Role, id primitive.ObjectID) (*domain.Exercise, error)
	ListForCoach(ctx context.Context, coachID primitive.ObjectID) ([]domain.Exercise, error)
	ListPresets(ctx context.Context) ([]domain.Exercise, error)
	ListCustom(ctx context.Context, coachID primitive.ObjectID) ([]domain.Exercise, error)
	Update(ctx context.Context, userID primitive.ObjectID, role domain.Role, id primitive.ObjectID, in ExerciseInput) (*domain.Exercise, error)
	Delete(ctx context.Context, userID primitive.ObjectID, role domain.Role, id primitive.ObjectID) error

	// Demonstration video flow: request a presigned PUT, upload out of band,
	// confirm so the metadata lands on the exercise, then anyone who can
	// read the exercise can fetch a presigned GET.
	RequestVideoUpload(ctx context.Context, userID primitive.ObjectID, role domain.Role, id primitive.ObjectID, contentType string) (*VideoUploadTicket, error)
	ConfirmVideoUpload(ctx context.Context, userID primitive.ObjectID, role domain.Role, id primitive.ObjectID, objectKey string, size int64) error
	VideoDownloadURL(ctx context.Context, userID primitive.ObjectID, role domain.Role, id primitive.ObjectID) (string, error)
}

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	fileStorage  storage.FileStorage
}

func NewExerciseService(exerciseRepo repository.ExerciseRepository, fileStorage storage.FileStorage) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		fileStorage:  fileStorage,
	}
}

func (s *exerciseService) CreatePreset(ctx context.Context, developerID primitive.ObjectID, in ExerciseInput) (*domain.Exercise, error) {
	return s.create(ctx, developerID, domain.ExercisePreset, in)
}

func (s *exerciseService) CreateCustom(ctx context.Context, coachID primitive.ObjectID, in ExerciseInput) (*domain.Exercise, error) {
	return s.create(ctx, coachID, domain.ExerciseCustom, in)
}

func (s *exerciseService) create(ctx context.Context, creatorID primitive.ObjectID, t domain.ExerciseType, in ExerciseInput) (*domain.Exercise, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrValidation
	}

	exercise := &domain.Exercise{
		Type:        t,
		CreatedBy:   creatorID,
		Name:        in.Name,
		Description: in.Description,
		MuscleGroup: in.MuscleGroup,
	}

	id, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	exercise.ID = id
	return exercise, nil
}

// Get returns the exercise if the caller may read it; anything else is a
// uniform not-found.
func (s *exerciseService) Get(ctx context.Context, userID primitive.ObjectID, role domain.Role, id primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if !exercise.ReadableBy(userID, role) {
		return nil, ErrExerciseNotFound
	}
	return exercise, nil
}

// ListForCoach returns presets plus the coach's own customs.
func (s *exerciseService) ListForCoach(ctx context.Context, coachID primitive.ObjectID) ([]domain.Exercise, error) {
	return s.exerciseRepo.ListForCoach(ctx, coachID)
}

func (s *exerciseService) ListPresets(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.ListByType(ctx, domain.ExercisePreset)
}

func (s *exerciseService) ListCustom(ctx context.Context, coachID primitive.ObjectID) ([]domain.Exercise, error) {
	return s.exerciseRepo.ListCustomByCoach(ctx, coachID)
}

func (s *exerciseService) Update(ctx context.Context, userID primitive.ObjectID, role domain.Role, id primitive.ObjectID, in ExerciseInput) (*domain.Exercise, error) {
	exercise, err := s.writable(ctx, userID, role, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrValidation
	}

	exercise.Name = in.Name
	exercise.Description = in.Description
	exercise.MuscleGroup = in.MuscleGroup

	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) Delete(ctx context.Context, userID primitive.ObjectID, role domain.Role, id primitive.ObjectID) error {
	exercise, err := s.writable(ctx, userID, role, id)
	if err != nil {
		return err
	}

	// Best effort: the catalog entry goes first, the object after.
	if err := s.exerciseRepo.Delete(ctx, id); err != nil {
		return err
	}
	if exercise.VideoObjectKey != "" {
		_ = s.fileStorage.DeleteObject(ctx, exercise.VideoObjectKey)
	}
	return nil
}

// writable loads the exercise and checks write access. A readable but
// unwritable entry surfaces as Forbidden, everything else as not-found.
func (s *exerciseService) writable(ctx context.Context, userID primitive.ObjectID, role domain.Role, id primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if exercise.WritableBy(userID, role) {
		return exercise, nil
	}
	if exercise.ReadableBy(userID, role) {
		return nil, ErrExerciseForbidden
	}
	return nil, ErrExerciseNotFound
}

func (s *exerciseService) RequestVideoUpload(ctx context.Context, userID primitive.ObjectID, role domain.Role, id primitive.ObjectID, contentType string) (*VideoUploadTicket, error) {
	exercise, err := s.writable(ctx, userID, role, id)
	if err != nil {
		return nil, err
	}
	if !allowedVideoTypes[contentType] {
		return nil, ErrUnsupportedMedia
	}

	objectKey := fmt.Sprintf("exercises/%s/%s", exercise.ID.Hex(), uuid.NewString())
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}

	// The content type is recorded now; confirm only supplies the size.
	exercise.VideoContentType = contentType
	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		return nil, err
	}

	return &VideoUploadTicket{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

func (s *exerciseService) ConfirmVideoUpload(ctx context.Context, userID primitive.ObjectID, role domain.Role, id primitive.ObjectID, objectKey string, size int64) error {
	exercise, err := s.writable(ctx, userID, role, id)
	if err != nil {
		return err
	}
	if objectKey == "" || size <= 0 {
		return ErrValidation
	}

	// A replaced video leaves no orphan behind.
	if exercise.VideoObjectKey != "" && exercise.VideoObjectKey != objectKey {
		_ = s.fileStorage.DeleteObject(ctx, exercise.VideoObjectKey)
	}

	exercise.VideoObjectKey = objectKey
	exercise.VideoSize = size
	return s.exerciseRepo.Update(ctx, exercise)
}

func (s *exerciseService) VideoDownloadURL(ctx context.Context, userID primitive.ObjectID, role domain.Role, id primitive.ObjectID) (string, error) {
	exercise, err := s.Get(ctx, userID, role, id)
	if err != nil {
		return "", err
	}
	if exercise.VideoObjectKey == "" {
		return "", ErrNoVideo
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, exercise.VideoObjectKey, storage.DefaultPresignedURLExpiry)
}
