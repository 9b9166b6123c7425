package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gender values accepted by the onboarding questionnaire.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Questionnaire is the athlete onboarding form, one per athlete.
type Questionnaire struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Athlete   primitive.ObjectID `bson:"athlete" json:"athlete"`
	Birthday  time.Time          `bson:"birthday" json:"birthday"`
	Gender    Gender             `bson:"gender" json:"gender"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (q *Questionnaire) Validate() error {
	if q.Birthday.IsZero() {
		return ValidationError{Field: "birthday", Reason: "is required"}
	}
	if q.Gender != GenderMale && q.Gender != GenderFemale {
		return ValidationError{Field: "gender", Reason: "must be Male or Female"}
	}
	return nil
}
