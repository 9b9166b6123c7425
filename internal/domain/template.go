package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SavedBlockTemplate is a coach-scoped, athlete-agnostic reusable schedule
// shape: the same nested week/day structure as a Block minus per-athlete
// dates. It acts as a factory for new blocks.
type SavedBlockTemplate struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Coach         primitive.ObjectID `bson:"coach" json:"coach"`
	TemplateName  string             `bson:"templateName" json:"templateName"`
	NumberOfWeeks int                `bson:"numberOfWeeks" json:"numberOfWeeks"`
	Days          []string           `bson:"days" json:"days"`
	BlockSchedule []WeeklySchedule   `bson:"blockSchedule" json:"blockSchedule"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the template shape. The schedule is optional; when
// present it must honor the same cardinality rules as a block.
func (t *SavedBlockTemplate) Validate() error {
	if t.TemplateName == "" || len(t.TemplateName) > 50 {
		return ValidationError{Field: "templateName", Reason: "must be 1-50 characters"}
	}
	if t.NumberOfWeeks < MinWeeks || t.NumberOfWeeks > MaxWeeks {
		return ValidationError{Field: "numberOfWeeks", Reason: "must be between 1 and 12"}
	}
	if len(t.Days) == 0 {
		return ValidationError{Field: "days", Reason: "select at least one training day"}
	}
	for _, d := range t.Days {
		if !validDayName(d) {
			return ValidationError{Field: "days", Reason: "unknown day name: " + d}
		}
	}
	if len(t.BlockSchedule) > 0 {
		shape := Block{
			NumberOfWeeks: len(t.BlockSchedule),
			Days:          t.Days,
			BlockSchedule: t.BlockSchedule,
		}
		return shape.ValidateSchedule()
	}
	return nil
}

// Instantiate builds a block from the template for the given pair, applying
// the non-zero override fields over the template's values. Caller validates
// the result and assigns nested IDs.
func (t *SavedBlockTemplate) Instantiate(coach, athlete primitive.ObjectID, o BlockOverrides) Block {
	b := Block{
		Coach:          coach,
		Athlete:        athlete,
		BlockName:      t.TemplateName,
		NumberOfWeeks:  t.NumberOfWeeks,
		Days:           append([]string(nil), t.Days...),
		BlockSchedule:  cloneSchedule(t.BlockSchedule),
		BlockStartDate: o.BlockStartDate,
		BlockEndDate:   o.BlockEndDate,
	}
	if o.BlockName != "" {
		b.BlockName = o.BlockName
	}
	if o.NumberOfWeeks != 0 {
		b.NumberOfWeeks = o.NumberOfWeeks
	}
	if len(o.Days) > 0 {
		b.Days = o.Days
	}
	if len(o.BlockSchedule) > 0 {
		b.BlockSchedule = o.BlockSchedule
	}
	return b
}

// BlockOverrides are the request-supplied fields that win over template
// values when instantiating a block. Dates are always request-supplied.
type BlockOverrides struct {
	BlockName      string
	NumberOfWeeks  int
	Days           []string
	BlockSchedule  []WeeklySchedule
	BlockStartDate time.Time
	BlockEndDate   time.Time
}

// cloneSchedule deep-copies the nested schedule so an instantiated block
// never aliases template slices.
func cloneSchedule(in []WeeklySchedule) []WeeklySchedule {
	out := make([]WeeklySchedule, len(in))
	for i, w := range in {
		out[i] = w
		out[i].DailySchedule = make([]DailySchedule, len(w.DailySchedule))
		for j, d := range w.DailySchedule {
			out[i].DailySchedule[j] = d
			out[i].DailySchedule[j].PrimExercises = append([]string(nil), d.PrimExercises...)
			out[i].DailySchedule[j].Exercises = make([]ExerciseEntry, len(d.Exercises))
			for k, e := range d.Exercises {
				out[i].DailySchedule[j].Exercises[k] = e
				out[i].DailySchedule[j].Exercises[k].ID = primitive.NilObjectID
				out[i].DailySchedule[j].Exercises[k].SetsDetail = append([]Set(nil), e.SetsDetail...)
				for s := range out[i].DailySchedule[j].Exercises[k].SetsDetail {
					out[i].DailySchedule[j].Exercises[k].SetsDetail[s].ID = primitive.NilObjectID
				}
			}
		}
	}
	return out
}
