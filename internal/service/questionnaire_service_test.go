package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motionscope/training-api/internal/domain"
)

func TestQuestionnaireService(t *testing.T) {
	ctx := context.Background()
	birthday := time.Date(2000, time.July, 4, 0, 0, 0, 0, time.UTC)

	t.Run("submit then read back", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := NewQuestionnaireService(newFakeQuestionnaireRepo(), users)
		athleteID := seedUser(users, domain.RoleAthlete, "athlete_main")

		saved, err := svc.Submit(ctx, athleteID, &domain.Questionnaire{
			Birthday: birthday,
			Gender:   domain.GenderFemale,
		})
		require.NoError(t, err)
		assert.Equal(t, athleteID, saved.Athlete)

		got, err := svc.GetOwn(ctx, athleteID)
		require.NoError(t, err)
		assert.Equal(t, domain.GenderFemale, got.Gender)
	})

	t.Run("resubmitting replaces the form", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := NewQuestionnaireService(newFakeQuestionnaireRepo(), users)
		athleteID := seedUser(users, domain.RoleAthlete, "athlete_main")

		_, err := svc.Submit(ctx, athleteID, &domain.Questionnaire{Birthday: birthday, Gender: domain.GenderMale})
		require.NoError(t, err)
		_, err = svc.Submit(ctx, athleteID, &domain.Questionnaire{Birthday: birthday.AddDate(1, 0, 0), Gender: domain.GenderMale})
		require.NoError(t, err)

		got, err := svc.GetOwn(ctx, athleteID)
		require.NoError(t, err)
		assert.Equal(t, birthday.AddDate(1, 0, 0), got.Birthday)
	})

	t.Run("invalid form", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := NewQuestionnaireService(newFakeQuestionnaireRepo(), users)
		athleteID := seedUser(users, domain.RoleAthlete, "athlete_main")

		_, err := svc.Submit(ctx, athleteID, &domain.Questionnaire{Gender: domain.GenderMale})
		var verr domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "birthday", verr.Field)
	})

	t.Run("nothing submitted yet", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := NewQuestionnaireService(newFakeQuestionnaireRepo(), users)
		athleteID := seedUser(users, domain.RoleAthlete, "athlete_main")

		_, err := svc.GetOwn(ctx, athleteID)
		assert.ErrorIs(t, err, ErrQuestionnaireNotFound)
	})

	t.Run("coach reads a rostered athlete's form", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := NewQuestionnaireService(newFakeQuestionnaireRepo(), users)
		coachID, athleteID := seedPair(users)

		_, err := svc.Submit(ctx, athleteID, &domain.Questionnaire{Birthday: birthday, Gender: domain.GenderMale})
		require.NoError(t, err)

		got, err := svc.GetForAthlete(ctx, coachID, athleteID)
		require.NoError(t, err)
		assert.Equal(t, athleteID, got.Athlete)
	})

	t.Run("unrostered athlete's form is invisible", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := NewQuestionnaireService(newFakeQuestionnaireRepo(), users)
		coachID := seedUser(users, domain.RoleCoach, "coach_main")
		stray := seedUser(users, domain.RoleAthlete, "athlete_stray")

		_, err := svc.Submit(ctx, stray, &domain.Questionnaire{Birthday: birthday, Gender: domain.GenderMale})
		require.NoError(t, err)

		_, err = svc.GetForAthlete(ctx, coachID, stray)
		assert.ErrorIs(t, err, ErrQuestionnaireNotFound)
	})
}
