package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseType distinguishes the globally curated catalog from coach-owned entries.
type ExerciseType string

const (
	ExercisePreset ExerciseType = "preset" // Developer-curated, readable by every coach
	ExerciseCustom ExerciseType = "custom" // Scoped to the creating coach
)

// Exercise is a catalog definition referenced by ID from block schedules.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type        ExerciseType       `bson:"type" json:"type"`
	CreatedBy   primitive.ObjectID `bson:"createdBy" json:"createdBy"` // Developer for presets, coach for customs
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	MuscleGroup string             `bson:"muscleGroup,omitempty" json:"muscleGroup,omitempty"`

	// Optional demonstration video stored in S3; the object key is internal,
	// clients only ever see presigned URLs.
	VideoObjectKey   string `bson:"videoObjectKey,omitempty" json:"-"`
	VideoContentType string `bson:"videoContentType,omitempty" json:"-"`
	VideoSize        int64  `bson:"videoSize,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ReadableBy reports whether the given user may view this exercise.
// Presets are visible to every coach and developer; customs only to their
// creating coach.
func (e *Exercise) ReadableBy(userID primitive.ObjectID, role Role) bool {
	if e.Type == ExercisePreset {
		return role == RoleCoach || role == RoleDeveloper
	}
	return role == RoleCoach && e.CreatedBy == userID
}

// WritableBy reports whether the given user may modify this exercise.
func (e *Exercise) WritableBy(userID primitive.ObjectID, role Role) bool {
	switch e.Type {
	case ExercisePreset:
		return role == RoleDeveloper
	case ExerciseCustom:
		return role == RoleCoach && e.CreatedBy == userID
	}
	return false
}
