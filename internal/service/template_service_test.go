package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"motionscope/training-api/internal/domain"
)

func testTemplate() *domain.SavedBlockTemplate {
	src := testBlock(primitive.NewObjectID(), primitive.NewObjectID(), 3)
	return &domain.SavedBlockTemplate{
		TemplateName:  "3 Week Wave",
		NumberOfWeeks: 3,
		Days:          src.Days,
		BlockSchedule: src.BlockSchedule,
	}
}

func TestTemplateService(t *testing.T) {
	ctx := context.Background()

	t.Run("create stamps the coach and timestamps", func(t *testing.T) {
		svc := NewTemplateService(newFakeTemplateRepo())
		coachID := primitive.NewObjectID()

		created, err := svc.Create(ctx, coachID, testTemplate())
		require.NoError(t, err)
		assert.False(t, created.ID.IsZero())
		assert.Equal(t, coachID, created.Coach)
		assert.False(t, created.CreatedAt.IsZero())
		assert.False(t, created.UpdatedAt.IsZero())
	})

	t.Run("name is unique per coach", func(t *testing.T) {
		svc := NewTemplateService(newFakeTemplateRepo())
		coachID := primitive.NewObjectID()

		_, err := svc.Create(ctx, coachID, testTemplate())
		require.NoError(t, err)
		_, err = svc.Create(ctx, coachID, testTemplate())
		assert.ErrorIs(t, err, ErrTemplateNameTaken)

		// A different coach may reuse the name.
		_, err = svc.Create(ctx, primitive.NewObjectID(), testTemplate())
		assert.NoError(t, err)
	})

	t.Run("invalid template", func(t *testing.T) {
		svc := NewTemplateService(newFakeTemplateRepo())
		tpl := testTemplate()
		tpl.TemplateName = ""
		_, err := svc.Create(ctx, primitive.NewObjectID(), tpl)
		var verr domain.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("get and list are coach scoped", func(t *testing.T) {
		svc := NewTemplateService(newFakeTemplateRepo())
		coachID := primitive.NewObjectID()
		created, err := svc.Create(ctx, coachID, testTemplate())
		require.NoError(t, err)

		got, err := svc.Get(ctx, coachID, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)

		_, err = svc.Get(ctx, primitive.NewObjectID(), created.ID)
		assert.ErrorIs(t, err, ErrTemplateNotFound)

		list, err := svc.List(ctx, coachID)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("delete", func(t *testing.T) {
		svc := NewTemplateService(newFakeTemplateRepo())
		coachID := primitive.NewObjectID()
		created, err := svc.Create(ctx, coachID, testTemplate())
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, coachID, created.ID))
		assert.ErrorIs(t, svc.Delete(ctx, coachID, created.ID), ErrTemplateNotFound)
	})
}
