package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"motionscope/training-api/internal/domain"
	"motionscope/training-api/internal/repository"
)

const questionnaireCollectionName = "questionnaires"

type mongoQuestionnaireRepository struct {
	collection *mongo.Collection
}

func NewMongoQuestionnaireRepository(db *mongo.Database) repository.QuestionnaireRepository {
	return &mongoQuestionnaireRepository{
		collection: db.Collection(questionnaireCollectionName),
	}
}

// Upsert keeps a single questionnaire per athlete; resubmitting replaces the
// previous answers.
func (r *mongoQuestionnaireRepository) Upsert(ctx context.Context, q *domain.Questionnaire) error {
	if q.Athlete == primitive.NilObjectID {
		return errors.New("questionnaire requires an athlete")
	}

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"birthday":  q.Birthday,
			"gender":    q.Gender,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"athlete":   q.Athlete,
			"createdAt": now,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"athlete": q.Athlete}, update, opts)
	return err
}

func (r *mongoQuestionnaireRepository) GetByAthlete(ctx context.Context, athleteID primitive.ObjectID) (*domain.Questionnaire, error) {
	var q domain.Questionnaire
	err := r.collection.FindOne(ctx, bson.M{"athlete": athleteID}).Decode(&q)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

// EnsureQuestionnaireIndexes creates necessary indexes for the
// questionnaires collection.
func EnsureQuestionnaireIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "athlete", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
