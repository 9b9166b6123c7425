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

const blockCollectionName = "blocks"

// mongoBlockRepository implements repository.BlockRepository. The whole
// nested schedule is embedded in one document; saves replace it atomically
// guarded by the version token.
type mongoBlockRepository struct {
	collection *mongo.Collection
}

func NewMongoBlockRepository(db *mongo.Database) repository.BlockRepository {
	return &mongoBlockRepository{
		collection: db.Collection(blockCollectionName),
	}
}

func (r *mongoBlockRepository) Create(ctx context.Context, block *domain.Block) (primitive.ObjectID, error) {
	if block.Coach == primitive.NilObjectID || block.Athlete == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("block requires coach and athlete")
	}

	block.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	block.CreatedAt = now
	block.UpdatedAt = now
	block.Version = 1

	result, err := r.collection.InsertOne(ctx, block)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted block ID")
	}
	return insertedID, nil
}

// GetByIDForCoach scopes the lookup by owner: a block owned by another
// coach is indistinguishable from a missing one.
func (r *mongoBlockRepository) GetByIDForCoach(ctx context.Context, id, coachID primitive.ObjectID) (*domain.Block, error) {
	return r.findOne(ctx, bson.M{"_id": id, "coach": coachID})
}

func (r *mongoBlockRepository) GetByIDForAthlete(ctx context.Context, id, athleteID primitive.ObjectID) (*domain.Block, error) {
	return r.findOne(ctx, bson.M{"_id": id, "athlete": athleteID})
}

func (r *mongoBlockRepository) findOne(ctx context.Context, filter bson.M) (*domain.Block, error) {
	var block domain.Block
	err := r.collection.FindOne(ctx, filter).Decode(&block)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &block, nil
}

func (r *mongoBlockRepository) GetManyByID(ctx context.Context, ids []primitive.ObjectID) ([]domain.Block, error) {
	if len(ids) == 0 {
		return []domain.Block{}, nil
	}
	return r.list(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *mongoBlockRepository) ListByAthlete(ctx context.Context, athleteID primitive.ObjectID) ([]domain.Block, error) {
	return r.list(ctx, bson.M{"athlete": athleteID})
}

func (r *mongoBlockRepository) list(ctx context.Context, filter bson.M) ([]domain.Block, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "blockStartDate", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var blocks []domain.Block
	if err = cursor.All(ctx, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// FindOverlapping returns the first existing block for the athlete whose
// inclusive date range intersects the candidate's, excluding the candidate
// itself on updates. ErrNotFound means the range is free.
func (r *mongoBlockRepository) FindOverlapping(ctx context.Context, athleteID primitive.ObjectID, block *domain.Block) (*domain.Block, error) {
	filter := bson.M{
		"athlete":        athleteID,
		"blockStartDate": bson.M{"$lte": block.BlockEndDate},
		"blockEndDate":   bson.M{"$gte": block.BlockStartDate},
	}
	if block.ID != primitive.NilObjectID {
		filter["_id"] = bson.M{"$ne": block.ID}
	}
	return r.findOne(ctx, filter)
}

// Save replaces the whole document if and only if the version on disk still
// matches the one the caller loaded; a lost race surfaces as ErrConflict.
func (r *mongoBlockRepository) Save(ctx context.Context, block *domain.Block) error {
	if block.ID == primitive.NilObjectID {
		return errors.New("block ID is required for save")
	}

	loadedVersion := block.Version
	block.Version = loadedVersion + 1
	block.UpdatedAt = time.Now().UTC()

	filter := bson.M{"_id": block.ID, "version": loadedVersion}
	result, err := r.collection.ReplaceOne(ctx, filter, block)
	if err != nil {
		block.Version = loadedVersion
		return err
	}
	if result.MatchedCount == 0 {
		block.Version = loadedVersion
		return repository.ErrConflict
	}
	return nil
}

// Delete removes the block, scoped to its owning coach.
func (r *mongoBlockRepository) Delete(ctx context.Context, id, coachID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "coach": coachID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteManyByID removes blocks in bulk; used by the program delete cascade.
func (r *mongoBlockRepository) DeleteManyByID(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return err
}

// EnsureBlockIndexes creates necessary indexes for the blocks collection.
func EnsureBlockIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "coach", Value: 1}, {Key: "athlete", Value: 1}},
			Options: options.Index(),
		},
		{
			// Backs the overlap query on create.
			Keys:    bson.D{{Key: "athlete", Value: 1}, {Key: "blockStartDate", Value: 1}, {Key: "blockEndDate", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
