// internal/repository/mongo/exercise_repo.go
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"alcyxob/workout-log/internal/domain"
	"alcyxob/workout-log/internal/repository"
)

const exerciseCollectionName = "exercises"

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
	workouts   *mongo.Collection
	ids        *sequence
	now        func() time.Time
}

// NewMongoExerciseRepository creates a new Exercise repository.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
		workouts:   db.Collection(workoutCollectionName),
		ids:        newSequence(db),
		now:        time.Now,
	}
}

// Create inserts a new exercise into the library.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error) {
	now := r.now().UTC().Truncate(time.Millisecond)
	created := *exercise
	created.ApplyDefaults()
	created.CreatedAt = now
	created.UpdatedAt = now

	id, err := r.ids.next(ctx, exerciseCollectionName)
	if err != nil {
		return nil, fmt.Errorf("allocate exercise id: %w", err)
	}
	created.ID = id

	if _, err := r.collection.InsertOne(ctx, newExerciseDocument(created)); err != nil {
		return nil, fmt.Errorf("insert exercise: %w", err)
	}
	return &created, nil
}

// GetByID retrieves a single exercise by its ID.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	var doc exerciseDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get exercise %d: %w", id, err)
	}
	e := doc.toDomain()
	return &e, nil
}

// List retrieves the global catalog plus the custom exercises of userID.
func (r *mongoExerciseRepository) List(ctx context.Context, userID string) ([]domain.Exercise, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"isCustom": false},
		bson.M{"createdBy": userID},
	}}
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []exerciseDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode exercises: %w", err)
	}

	exercises := make([]domain.Exercise, 0, len(docs))
	for _, d := range docs {
		exercises = append(exercises, d.toDomain())
	}
	return exercises, nil
}

// Delete removes a custom exercise owned by userID once no workout references it.
func (r *mongoExerciseRepository) Delete(ctx context.Context, userID string, id int64) error {
	owned := bson.M{"_id": id, "isCustom": true, "createdBy": userID}
	if err := r.collection.FindOne(ctx, owned).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("get exercise %d: %w", id, err)
	}

	uses, err := r.workouts.CountDocuments(ctx, bson.M{"exercises.exerciseId": id})
	if err != nil {
		return fmt.Errorf("check exercise %d usage: %w", id, err)
	}
	if uses > 0 {
		return repository.ErrInUse
	}

	result, err := r.collection.DeleteOne(ctx, owned)
	if err != nil {
		return fmt.Errorf("delete exercise %d: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureExerciseIndexes creates necessary indexes for the exercises collection.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("exercises_name"),
		},
		{
			// Custom entries by owner
			Keys:    bson.D{{Key: "isCustom", Value: 1}, {Key: "createdBy", Value: 1}},
			Options: options.Index().SetName("exercises_custom_owner"),
		},
		{
			Keys:    bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}},
			Options: options.Index().SetName("exercise_text_search"),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
	return err
}
