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

const programCollectionName = "programs"

type mongoProgramRepository struct {
	collection *mongo.Collection
}

func NewMongoProgramRepository(db *mongo.Database) repository.ProgramRepository {
	return &mongoProgramRepository{
		collection: db.Collection(programCollectionName),
	}
}

func (r *mongoProgramRepository) Create(ctx context.Context, program *domain.Program) (primitive.ObjectID, error) {
	if program.Coach == primitive.NilObjectID || program.Athlete == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("program requires coach and athlete")
	}

	program.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	program.CreatedAt = now
	program.UpdatedAt = now
	if program.Blocks == nil {
		program.Blocks = []primitive.ObjectID{}
	}
	if program.CompDays == nil {
		program.CompDays = []primitive.ObjectID{}
	}

	result, err := r.collection.InsertOne(ctx, program)
	if err != nil {
		// The partial unique index on the active pair turns a duplicate
		// active program into a conflict.
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrConflict
		}
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted program ID")
	}
	return insertedID, nil
}

func (r *mongoProgramRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Program, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoProgramRepository) GetActiveByPair(ctx context.Context, coachID, athleteID primitive.ObjectID) (*domain.Program, error) {
	return r.findOne(ctx, bson.M{"coach": coachID, "athlete": athleteID, "isArchived": false})
}

func (r *mongoProgramRepository) GetActiveByAthlete(ctx context.Context, athleteID primitive.ObjectID) (*domain.Program, error) {
	return r.findOne(ctx, bson.M{"athlete": athleteID, "isArchived": false})
}

func (r *mongoProgramRepository) findOne(ctx context.Context, filter bson.M) (*domain.Program, error) {
	var program domain.Program
	err := r.collection.FindOne(ctx, filter).Decode(&program)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &program, nil
}

func (r *mongoProgramRepository) AppendBlock(ctx context.Context, programID, blockID primitive.ObjectID) error {
	return r.mutateList(ctx, bson.M{"_id": programID}, bson.M{"$addToSet": bson.M{"blocks": blockID}})
}

// RemoveBlock pulls the block reference from whichever program carries it.
func (r *mongoProgramRepository) RemoveBlock(ctx context.Context, blockID primitive.ObjectID) error {
	return r.mutateList(ctx, bson.M{"blocks": blockID}, bson.M{"$pull": bson.M{"blocks": blockID}})
}

func (r *mongoProgramRepository) AppendCompDay(ctx context.Context, programID, compDayID primitive.ObjectID) error {
	return r.mutateList(ctx, bson.M{"_id": programID}, bson.M{"$addToSet": bson.M{"compDays": compDayID}})
}

func (r *mongoProgramRepository) RemoveCompDay(ctx context.Context, compDayID primitive.ObjectID) error {
	return r.mutateList(ctx, bson.M{"compDays": compDayID}, bson.M{"$pull": bson.M{"compDays": compDayID}})
}

func (r *mongoProgramRepository) mutateList(ctx context.Context, filter, update bson.M) error {
	update["$set"] = bson.M{"updatedAt": time.Now().UTC()}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoProgramRepository) SetArchived(ctx context.Context, id primitive.ObjectID, archived bool) error {
	update := bson.M{"$set": bson.M{"isArchived": archived, "updatedAt": time.Now().UTC()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrConflict
		}
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoProgramRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureProgramIndexes creates necessary indexes for the programs
// collection. The partial unique index admits at most one non-archived
// program per coach/athlete pair while archived history piles up freely.
func EnsureProgramIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "coach", Value: 1}, {Key: "athlete", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"isArchived": false}),
		},
		{
			Keys:    bson.D{{Key: "athlete", Value: 1}, {Key: "isArchived", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "blocks", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "compDays", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
