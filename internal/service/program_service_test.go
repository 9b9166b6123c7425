package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"motionscope/training-api/internal/domain"
)

type programEnv struct {
	svc       ProgramService
	programs  *fakeProgramRepo
	blocks    *fakeBlockRepo
	compDays  *fakeCompDayRepo
	users     *fakeUserRepo
	coachID   primitive.ObjectID
	athleteID primitive.ObjectID
}

func newProgramEnv(t *testing.T) *programEnv {
	t.Helper()
	env := &programEnv{
		programs: newFakeProgramRepo(),
		blocks:   newFakeBlockRepo(),
		compDays: newFakeCompDayRepo(),
		users:    newFakeUserRepo(),
	}
	env.coachID, env.athleteID = seedPair(env.users)
	env.svc = NewProgramService(env.programs, env.blocks, env.compDays, env.users, zap.NewNop())
	return env
}

func TestProgramServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		env := newProgramEnv(t)
		program, err := env.svc.Create(ctx, env.coachID, env.athleteID)
		require.NoError(t, err)
		assert.False(t, program.ID.IsZero())
		assert.False(t, program.IsArchived)
		assert.Empty(t, program.Blocks)
	})

	t.Run("athlete not on roster", func(t *testing.T) {
		env := newProgramEnv(t)
		stranger := seedUser(env.users, domain.RoleAthlete, "athlete_stray")
		_, err := env.svc.Create(ctx, env.coachID, stranger)
		assert.ErrorIs(t, err, ErrNotOnRoster)
	})

	t.Run("second active program for the pair", func(t *testing.T) {
		env := newProgramEnv(t)
		_, err := env.svc.Create(ctx, env.coachID, env.athleteID)
		require.NoError(t, err)

		_, err = env.svc.Create(ctx, env.coachID, env.athleteID)
		assert.ErrorIs(t, err, ErrProgramExists)
	})

	t.Run("archived program frees the slot", func(t *testing.T) {
		env := newProgramEnv(t)
		first, err := env.svc.Create(ctx, env.coachID, env.athleteID)
		require.NoError(t, err)
		_, err = env.svc.SetArchived(ctx, env.coachID, first.ID, true)
		require.NoError(t, err)

		_, err = env.svc.Create(ctx, env.coachID, env.athleteID)
		assert.NoError(t, err)
	})
}

func TestProgramServiceCurrent(t *testing.T) {
	ctx := context.Background()

	seedTimeline := func(t *testing.T, env *programEnv, programID primitive.ObjectID) (blockID, compDayID primitive.ObjectID) {
		block := testBlock(env.coachID, env.athleteID, 4)
		var err error
		blockID, err = env.blocks.Create(ctx, block)
		require.NoError(t, err)
		require.NoError(t, env.programs.AppendBlock(ctx, programID, blockID))

		compDay := testCompDay(env.coachID, env.athleteID)
		compDayID, err = env.compDays.Create(ctx, compDay)
		require.NoError(t, err)
		require.NoError(t, env.programs.AppendCompDay(ctx, programID, compDayID))
		return blockID, compDayID
	}

	t.Run("coach view merges the timeline", func(t *testing.T) {
		env := newProgramEnv(t)
		program, err := env.svc.Create(ctx, env.coachID, env.athleteID)
		require.NoError(t, err)
		blockID, compDayID := seedTimeline(t, env, program.ID)

		got, timeline, err := env.svc.Current(ctx, env.coachID, domain.RoleCoach, env.athleteID)
		require.NoError(t, err)
		assert.Equal(t, program.ID, got.ID)
		require.Len(t, timeline, 2)

		// The comp day (May) sorts before the block (March).
		assert.Equal(t, domain.ItemCompDay, timeline[0].Kind)
		assert.Equal(t, compDayID, timeline[0].CompDay.ID)
		assert.Equal(t, domain.ItemBlock, timeline[1].Kind)
		assert.Equal(t, blockID, timeline[1].Block.ID)
	})

	t.Run("athlete view is self only", func(t *testing.T) {
		env := newProgramEnv(t)
		program, err := env.svc.Create(ctx, env.coachID, env.athleteID)
		require.NoError(t, err)
		seedTimeline(t, env, program.ID)

		_, timeline, err := env.svc.Current(ctx, env.athleteID, domain.RoleAthlete, env.athleteID)
		require.NoError(t, err)
		assert.Len(t, timeline, 2)

		_, _, err = env.svc.Current(ctx, env.athleteID, domain.RoleAthlete, env.coachID)
		assert.ErrorIs(t, err, ErrProgramNotFound)
	})

	t.Run("no active program", func(t *testing.T) {
		env := newProgramEnv(t)
		_, _, err := env.svc.Current(ctx, env.coachID, domain.RoleCoach, env.athleteID)
		assert.ErrorIs(t, err, ErrProgramNotFound)
	})
}

func TestProgramServiceSetArchived(t *testing.T) {
	ctx := context.Background()

	t.Run("archive and unarchive round trip", func(t *testing.T) {
		env := newProgramEnv(t)
		program, err := env.svc.Create(ctx, env.coachID, env.athleteID)
		require.NoError(t, err)

		archived, err := env.svc.SetArchived(ctx, env.coachID, program.ID, true)
		require.NoError(t, err)
		assert.True(t, archived.IsArchived)

		restored, err := env.svc.SetArchived(ctx, env.coachID, program.ID, false)
		require.NoError(t, err)
		assert.False(t, restored.IsArchived)
	})

	t.Run("unarchive fails when the slot is taken", func(t *testing.T) {
		env := newProgramEnv(t)
		first, err := env.svc.Create(ctx, env.coachID, env.athleteID)
		require.NoError(t, err)
		_, err = env.svc.SetArchived(ctx, env.coachID, first.ID, true)
		require.NoError(t, err)

		_, err = env.svc.Create(ctx, env.coachID, env.athleteID)
		require.NoError(t, err)

		_, err = env.svc.SetArchived(ctx, env.coachID, first.ID, false)
		assert.ErrorIs(t, err, ErrProgramExists)
	})

	t.Run("another coach's program is invisible", func(t *testing.T) {
		env := newProgramEnv(t)
		program, err := env.svc.Create(ctx, env.coachID, env.athleteID)
		require.NoError(t, err)

		otherCoach := seedUser(env.users, domain.RoleCoach, "coach_other")
		_, err = env.svc.SetArchived(ctx, otherCoach, program.ID, true)
		assert.ErrorIs(t, err, ErrProgramNotFound)
	})
}

func TestProgramServiceDelete(t *testing.T) {
	ctx := context.Background()
	env := newProgramEnv(t)
	program, err := env.svc.Create(ctx, env.coachID, env.athleteID)
	require.NoError(t, err)

	blockID, err := env.blocks.Create(ctx, testBlock(env.coachID, env.athleteID, 4))
	require.NoError(t, err)
	require.NoError(t, env.programs.AppendBlock(ctx, program.ID, blockID))
	compDayID, err := env.compDays.Create(ctx, testCompDay(env.coachID, env.athleteID))
	require.NoError(t, err)
	require.NoError(t, env.programs.AppendCompDay(ctx, program.ID, compDayID))

	require.NoError(t, env.svc.Delete(ctx, env.coachID, program.ID))

	// The cascade took the referenced documents with it.
	_, err = env.blocks.GetByIDForCoach(ctx, blockID, env.coachID)
	assert.Error(t, err)
	_, err = env.compDays.GetByIDForCoach(ctx, compDayID, env.coachID)
	assert.Error(t, err)

	assert.ErrorIs(t, env.svc.Delete(ctx, env.coachID, program.ID), ErrProgramNotFound)
}
