package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"motionscope/training-api/internal/domain"
)

type compDayEnv struct {
	svc       CompDayService
	compDays  *fakeCompDayRepo
	programs  *fakeProgramRepo
	users     *fakeUserRepo
	coachID   primitive.ObjectID
	athleteID primitive.ObjectID
	programID primitive.ObjectID
}

func newCompDayEnv(t *testing.T) *compDayEnv {
	t.Helper()
	env := &compDayEnv{
		compDays: newFakeCompDayRepo(),
		programs: newFakeProgramRepo(),
		users:    newFakeUserRepo(),
	}
	env.coachID, env.athleteID = seedPair(env.users)

	programID, err := env.programs.Create(context.Background(), &domain.Program{
		Coach:   env.coachID,
		Athlete: env.athleteID,
	})
	require.NoError(t, err)
	env.programID = programID

	env.svc = NewCompDayService(env.compDays, env.programs, env.users, passTx{})
	return env
}

func (e *compDayEnv) mustCreate(t *testing.T) *domain.CompDay {
	t.Helper()
	created, err := e.svc.Create(context.Background(), e.coachID, testCompDay(e.coachID, e.athleteID))
	require.NoError(t, err)
	return created
}

func TestCompDayServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path appends to the program", func(t *testing.T) {
		env := newCompDayEnv(t)
		created := env.mustCreate(t)

		assert.False(t, created.ID.IsZero())
		program, err := env.programs.GetByID(ctx, env.programID)
		require.NoError(t, err)
		assert.Equal(t, []primitive.ObjectID{created.ID}, program.CompDays)
	})

	t.Run("athlete not on roster", func(t *testing.T) {
		env := newCompDayEnv(t)
		stranger := seedUser(env.users, domain.RoleAthlete, "athlete_stray")
		_, err := env.svc.Create(ctx, env.coachID, testCompDay(env.coachID, stranger))
		assert.ErrorIs(t, err, ErrNotOnRoster)
	})

	t.Run("no active program", func(t *testing.T) {
		env := newCompDayEnv(t)
		require.NoError(t, env.programs.SetArchived(ctx, env.programID, true))
		_, err := env.svc.Create(ctx, env.coachID, testCompDay(env.coachID, env.athleteID))
		assert.ErrorIs(t, err, ErrNoActiveProgram)
	})

	t.Run("plan with attempts already taken is rejected", func(t *testing.T) {
		env := newCompDayEnv(t)
		sheet := testCompDay(env.coachID, env.athleteID)
		sheet.Lifts[0].Attempts.First.ActuallyAttempted = true
		_, err := env.svc.Create(ctx, env.coachID, sheet)
		assert.ErrorIs(t, err, ErrAttemptedByCoach)
	})

	t.Run("invalid weight class", func(t *testing.T) {
		env := newCompDayEnv(t)
		sheet := testCompDay(env.coachID, env.athleteID)
		sheet.WeightClass = "heavyweight"
		_, err := env.svc.Create(ctx, env.coachID, sheet)
		var verr domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "weightClass", verr.Field)
	})
}

func TestCompDayServiceGet(t *testing.T) {
	ctx := context.Background()
	env := newCompDayEnv(t)
	created := env.mustCreate(t)

	got, err := env.svc.Get(ctx, env.athleteID, domain.RoleAthlete, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = env.svc.Get(ctx, primitive.NewObjectID(), domain.RoleCoach, created.ID)
	assert.ErrorIs(t, err, ErrCompDayNotFound)
}

func TestCompDayServiceCoachUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("plan rewrite keeps athlete flags", func(t *testing.T) {
		env := newCompDayEnv(t)
		created := env.mustCreate(t)

		// Athlete takes the squat opener and second attempt index 1.
		_, err := env.svc.MarkAttempt(ctx, env.athleteID, created.ID, "Squat", domain.RoundFirst, 0, true)
		require.NoError(t, err)
		_, err = env.svc.MarkAttempt(ctx, env.athleteID, created.ID, "Squat", domain.RoundSecond, 1, true)
		require.NoError(t, err)

		// Coach bumps the numbers without touching any flags.
		updated := testCompDay(env.coachID, env.athleteID)
		updated.CompetitionName = "Spring Open, flight B"
		updated.Lifts[0].Attempts.Second[1].Weight = 185

		after, err := env.svc.CoachUpdate(ctx, env.coachID, created.ID, updated)
		require.NoError(t, err)

		assert.Equal(t, "Spring Open, flight B", after.CompetitionName)
		squat := after.Lift("Squat")
		assert.True(t, squat.Attempts.First.ActuallyAttempted)
		assert.True(t, squat.Attempts.Second[1].ActuallyAttempted)
		assert.Equal(t, 185.0, squat.Attempts.Second[1].Weight)
		assert.False(t, squat.Attempts.Second[0].ActuallyAttempted)
	})

	t.Run("flag dropped when the slot disappears", func(t *testing.T) {
		env := newCompDayEnv(t)
		created := env.mustCreate(t)

		_, err := env.svc.MarkAttempt(ctx, env.athleteID, created.ID, "Squat", domain.RoundSecond, 1, true)
		require.NoError(t, err)

		updated := testCompDay(env.coachID, env.athleteID)
		updated.Lifts[0].Attempts.Second = updated.Lifts[0].Attempts.Second[:1]

		after, err := env.svc.CoachUpdate(ctx, env.coachID, created.ID, updated)
		require.NoError(t, err)
		assert.False(t, after.Lift("Squat").Attempts.Second[0].ActuallyAttempted)
	})

	t.Run("payload touching the flag is rejected wholesale", func(t *testing.T) {
		env := newCompDayEnv(t)
		created := env.mustCreate(t)

		updated := testCompDay(env.coachID, env.athleteID)
		updated.CompetitionName = "should not land"
		updated.Lifts[2].Attempts.Third[0].ActuallyAttempted = true

		_, err := env.svc.CoachUpdate(ctx, env.coachID, created.ID, updated)
		assert.ErrorIs(t, err, ErrAttemptedByCoach)

		// Nothing was applied.
		stored, err := env.svc.Get(ctx, env.coachID, domain.RoleCoach, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Spring Open", stored.CompetitionName)
	})

	t.Run("rewrite must still be a valid sheet", func(t *testing.T) {
		env := newCompDayEnv(t)
		created := env.mustCreate(t)

		updated := testCompDay(env.coachID, env.athleteID)
		updated.Lifts = updated.Lifts[:2]

		_, err := env.svc.CoachUpdate(ctx, env.coachID, created.ID, updated)
		var verr domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "lifts", verr.Field)
	})
}

func TestCompDayServiceMarkAttempt(t *testing.T) {
	ctx := context.Background()
	env := newCompDayEnv(t)
	created := env.mustCreate(t)

	t.Run("marks and unmarks", func(t *testing.T) {
		after, err := env.svc.MarkAttempt(ctx, env.athleteID, created.ID, "Bench", domain.RoundFirst, 0, true)
		require.NoError(t, err)
		assert.True(t, after.Lift("Bench").Attempts.First.ActuallyAttempted)

		after, err = env.svc.MarkAttempt(ctx, env.athleteID, created.ID, "Bench", domain.RoundFirst, 0, false)
		require.NoError(t, err)
		assert.False(t, after.Lift("Bench").Attempts.First.ActuallyAttempted)
	})

	t.Run("unknown lift", func(t *testing.T) {
		_, err := env.svc.MarkAttempt(ctx, env.athleteID, created.ID, "Press", domain.RoundFirst, 0, true)
		assert.ErrorIs(t, err, ErrLiftNotFound)
	})

	t.Run("index past the candidate list", func(t *testing.T) {
		_, err := env.svc.MarkAttempt(ctx, env.athleteID, created.ID, "Bench", domain.RoundThird, 0, true)
		assert.ErrorIs(t, err, ErrAttemptNotFound)
	})

	t.Run("coach cannot reach the athlete path", func(t *testing.T) {
		_, err := env.svc.MarkAttempt(ctx, env.coachID, created.ID, "Bench", domain.RoundFirst, 0, true)
		assert.ErrorIs(t, err, ErrCompDayNotFound)
	})
}

func TestCompDayServiceDelete(t *testing.T) {
	ctx := context.Background()
	env := newCompDayEnv(t)
	created := env.mustCreate(t)

	require.NoError(t, env.svc.Delete(ctx, env.coachID, created.ID))

	program, err := env.programs.GetByID(ctx, env.programID)
	require.NoError(t, err)
	assert.Empty(t, program.CompDays)

	assert.ErrorIs(t, env.svc.Delete(ctx, env.coachID, created.ID), ErrCompDayNotFound)
}
