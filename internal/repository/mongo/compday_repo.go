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

const compDayCollectionName = "compdays"

type mongoCompDayRepository struct {
	collection *mongo.Collection
}

func NewMongoCompDayRepository(db *mongo.Database) repository.CompDayRepository {
	return &mongoCompDayRepository{
		collection: db.Collection(compDayCollectionName),
	}
}

func (r *mongoCompDayRepository) Create(ctx context.Context, compDay *domain.CompDay) (primitive.ObjectID, error) {
	if compDay.Coach == primitive.NilObjectID || compDay.Athlete == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("comp day requires coach and athlete")
	}

	compDay.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	compDay.CreatedAt = now
	compDay.UpdatedAt = now
	compDay.Version = 1

	result, err := r.collection.InsertOne(ctx, compDay)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted comp day ID")
	}
	return insertedID, nil
}

func (r *mongoCompDayRepository) GetByIDForCoach(ctx context.Context, id, coachID primitive.ObjectID) (*domain.CompDay, error) {
	return r.findOne(ctx, bson.M{"_id": id, "coach": coachID})
}

func (r *mongoCompDayRepository) GetByIDForAthlete(ctx context.Context, id, athleteID primitive.ObjectID) (*domain.CompDay, error) {
	return r.findOne(ctx, bson.M{"_id": id, "athlete": athleteID})
}

func (r *mongoCompDayRepository) findOne(ctx context.Context, filter bson.M) (*domain.CompDay, error) {
	var compDay domain.CompDay
	err := r.collection.FindOne(ctx, filter).Decode(&compDay)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &compDay, nil
}

func (r *mongoCompDayRepository) GetManyByID(ctx context.Context, ids []primitive.ObjectID) ([]domain.CompDay, error) {
	if len(ids) == 0 {
		return []domain.CompDay{}, nil
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var compDays []domain.CompDay
	if err = cursor.All(ctx, &compDays); err != nil {
		return nil, err
	}
	return compDays, nil
}

// Save replaces the whole sheet under the version guard, same contract as
// block saves.
func (r *mongoCompDayRepository) Save(ctx context.Context, compDay *domain.CompDay) error {
	if compDay.ID == primitive.NilObjectID {
		return errors.New("comp day ID is required for save")
	}

	loadedVersion := compDay.Version
	compDay.Version = loadedVersion + 1
	compDay.UpdatedAt = time.Now().UTC()

	filter := bson.M{"_id": compDay.ID, "version": loadedVersion}
	result, err := r.collection.ReplaceOne(ctx, filter, compDay)
	if err != nil {
		compDay.Version = loadedVersion
		return err
	}
	if result.MatchedCount == 0 {
		compDay.Version = loadedVersion
		return repository.ErrConflict
	}
	return nil
}

func (r *mongoCompDayRepository) Delete(ctx context.Context, id, coachID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "coach": coachID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoCompDayRepository) DeleteManyByID(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return err
}

// EnsureCompDayIndexes creates necessary indexes for the compdays collection.
func EnsureCompDayIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "coach", Value: 1}, {Key: "athlete", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "athlete", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
