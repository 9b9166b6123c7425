package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validTemplate() *SavedBlockTemplate {
	src := validBlock(3)
	return &SavedBlockTemplate{
		Coach:         primitive.NewObjectID(),
		TemplateName:  "3 Week Wave",
		NumberOfWeeks: 3,
		Days:          src.Days,
		BlockSchedule: src.BlockSchedule,
	}
}

func TestTemplateValidate(t *testing.T) {
	t.Run("valid template passes", func(t *testing.T) {
		assert.NoError(t, validTemplate().Validate())
	})

	t.Run("schedule is optional", func(t *testing.T) {
		tpl := validTemplate()
		tpl.BlockSchedule = nil
		assert.NoError(t, tpl.Validate())
	})

	t.Run("name bounds", func(t *testing.T) {
		tpl := validTemplate()
		tpl.TemplateName = ""
		assertFieldError(t, tpl.Validate(), "templateName")

		tpl.TemplateName = strings.Repeat("x", 51)
		assertFieldError(t, tpl.Validate(), "templateName")
	})

	t.Run("weeks out of range", func(t *testing.T) {
		tpl := validTemplate()
		tpl.BlockSchedule = nil
		tpl.NumberOfWeeks = 13
		assertFieldError(t, tpl.Validate(), "numberOfWeeks")
	})

	t.Run("unknown day name", func(t *testing.T) {
		tpl := validTemplate()
		tpl.BlockSchedule = nil
		tpl.Days = []string{"Blursday"}
		assertFieldError(t, tpl.Validate(), "days")
	})

	t.Run("present schedule must honor cardinality", func(t *testing.T) {
		tpl := validTemplate()
		tpl.BlockSchedule[1].DailySchedule = tpl.BlockSchedule[1].DailySchedule[:1]
		assertFieldError(t, tpl.Validate(), "blockSchedule")
	})
}

func TestTemplateInstantiate(t *testing.T) {
	coach := primitive.NewObjectID()
	athlete := primitive.NewObjectID()

	t.Run("template values carry over", func(t *testing.T) {
		tpl := validTemplate()
		b := tpl.Instantiate(coach, athlete, BlockOverrides{
			BlockStartDate: testStart,
			BlockEndDate:   ExpectedEndDate(testStart, 3),
		})

		assert.Equal(t, coach, b.Coach)
		assert.Equal(t, athlete, b.Athlete)
		assert.Equal(t, tpl.TemplateName, b.BlockName)
		assert.Equal(t, tpl.NumberOfWeeks, b.NumberOfWeeks)
		assert.Equal(t, tpl.Days, b.Days)
		assert.Len(t, b.BlockSchedule, 3)
		assert.NoError(t, b.Validate(testNow))
	})

	t.Run("overrides win", func(t *testing.T) {
		tpl := validTemplate()
		b := tpl.Instantiate(coach, athlete, BlockOverrides{
			BlockName:      "Comp Prep",
			NumberOfWeeks:  2,
			BlockStartDate: testStart,
			BlockEndDate:   ExpectedEndDate(testStart, 2),
		})

		assert.Equal(t, "Comp Prep", b.BlockName)
		assert.Equal(t, 2, b.NumberOfWeeks)
	})

	t.Run("instantiated schedule does not alias the template", func(t *testing.T) {
		tpl := validTemplate()
		tpl.BlockSchedule[0].DailySchedule[0].Exercises = []ExerciseEntry{{
			ID:         primitive.NewObjectID(),
			ExerciseID: primitive.NewObjectID(),
			SetsDetail: []Set{{ID: primitive.NewObjectID(), Type: SetWorking, CreatedBy: AuthorCoach, Reps: 5}},
		}}

		b := tpl.Instantiate(coach, athlete, BlockOverrides{})

		// Nested IDs are zeroed so the create path can mint fresh ones.
		got := b.BlockSchedule[0].DailySchedule[0].Exercises[0]
		assert.True(t, got.ID.IsZero())
		assert.True(t, got.SetsDetail[0].ID.IsZero())

		// Mutating the instance leaves the template untouched.
		b.BlockSchedule[0].DailySchedule[0].Exercises[0].SetsDetail[0].Reps = 99
		b.BlockSchedule[0].DailySchedule[0].PrimExercises[0] = "Primary Bench"
		assert.Equal(t, 5, tpl.BlockSchedule[0].DailySchedule[0].Exercises[0].SetsDetail[0].Reps)
		assert.Equal(t, "Primary Squat", tpl.BlockSchedule[0].DailySchedule[0].PrimExercises[0])
	})
}

func TestQuestionnaireValidate(t *testing.T) {
	q := &Questionnaire{
		Athlete:  primitive.NewObjectID(),
		Birthday: testStart.AddDate(-24, 0, 0),
		Gender:   GenderFemale,
	}
	require.NoError(t, q.Validate())

	q.Gender = Gender("Other")
	assertFieldError(t, q.Validate(), "gender")

	q.Gender = GenderMale
	q.Birthday = time.Time{}
	assertFieldError(t, q.Validate(), "birthday")
}
