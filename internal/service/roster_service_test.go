package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"motionscope/training-api/internal/domain"
)

func TestRosterService(t *testing.T) {
	ctx := context.Background()

	t.Run("add then list", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := NewRosterService(users)
		coachID := seedUser(users, domain.RoleCoach, "coach_main")
		athleteID := seedUser(users, domain.RoleAthlete, "athlete_main")

		require.NoError(t, svc.AddAthlete(ctx, coachID, athleteID))

		roster, err := svc.ListRoster(ctx, coachID)
		require.NoError(t, err)
		require.Len(t, roster, 1)
		assert.Equal(t, athleteID, roster[0].ID)
		assert.Empty(t, roster[0].PasswordHash)
	})

	t.Run("adding twice is a conflict", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := NewRosterService(users)
		coachID := seedUser(users, domain.RoleCoach, "coach_main")
		athleteID := seedUser(users, domain.RoleAthlete, "athlete_main")

		require.NoError(t, svc.AddAthlete(ctx, coachID, athleteID))
		assert.ErrorIs(t, svc.AddAthlete(ctx, coachID, athleteID), ErrAlreadyOnRoster)
	})

	t.Run("only athletes can be rostered", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := NewRosterService(users)
		coachID := seedUser(users, domain.RoleCoach, "coach_main")
		otherCoach := seedUser(users, domain.RoleCoach, "coach_other")

		assert.ErrorIs(t, svc.AddAthlete(ctx, coachID, otherCoach), ErrNotAnAthlete)
	})

	t.Run("unknown athlete", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := NewRosterService(users)
		coachID := seedUser(users, domain.RoleCoach, "coach_main")

		assert.ErrorIs(t, svc.AddAthlete(ctx, coachID, primitive.NewObjectID()), ErrUserNotFound)
	})

	t.Run("listing as an athlete fails", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := NewRosterService(users)
		athleteID := seedUser(users, domain.RoleAthlete, "athlete_main")

		_, err := svc.ListRoster(ctx, athleteID)
		assert.ErrorIs(t, err, ErrNotACoach)
	})

	t.Run("remove requires membership", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := NewRosterService(users)
		coachID, athleteID := seedPair(users)

		require.NoError(t, svc.RemoveAthlete(ctx, coachID, athleteID))
		assert.ErrorIs(t, svc.RemoveAthlete(ctx, coachID, athleteID), ErrNotOnRoster)
	})

	t.Run("athlete leaves the coach", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := NewRosterService(users)
		coachID, athleteID := seedPair(users)

		require.NoError(t, svc.LeaveCoach(ctx, athleteID, coachID))

		roster, err := svc.ListRoster(ctx, coachID)
		require.NoError(t, err)
		assert.Empty(t, roster)

		assert.ErrorIs(t, svc.LeaveCoach(ctx, athleteID, coachID), ErrNotOnRoster)
	})

	t.Run("leaving a non-coach fails", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := NewRosterService(users)
		athleteID := seedUser(users, domain.RoleAthlete, "athlete_main")
		otherAthlete := seedUser(users, domain.RoleAthlete, "athlete_other")

		assert.ErrorIs(t, svc.LeaveCoach(ctx, athleteID, otherAthlete), ErrNotACoach)
	})
}
