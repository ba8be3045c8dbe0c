// internal/repository/mongo/workout_repo.go
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

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository.
// Exercises and sets are embedded in the workout document.
type mongoWorkoutRepository struct {
	collection *mongo.Collection
	exercises  *mongo.Collection
	ids        *sequence
	now        func() time.Time
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
		exercises:  db.Collection(exerciseCollectionName),
		ids:        newSequence(db),
		now:        time.Now,
	}
}

// timestamp returns now at the precision BSON dates keep.
func (r *mongoWorkoutRepository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Millisecond)
}

// ListByUserBetween retrieves the user's workouts started within [start, end).
func (r *mongoWorkoutRepository) ListByUserBetween(ctx context.Context, userID string, start, end time.Time) ([]domain.WorkoutDetail, error) {
	filter := bson.M{
		"userId":    userID,
		"startedAt": bson.M{"$gte": start.UTC(), "$lt": end.UTC()},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "startedAt", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []workoutDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode workouts: %w", err)
	}
	return r.hydrate(ctx, docs)
}

func (r *mongoWorkoutRepository) findDocument(ctx context.Context, userID string, id int64) (*workoutDocument, error) {
	var doc workoutDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get workout %d: %w", id, err)
	}
	return &doc, nil
}

// GetByIDForUser retrieves a single workout owned by userID.
func (r *mongoWorkoutRepository) GetByIDForUser(ctx context.Context, userID string, id int64) (*domain.Workout, error) {
	doc, err := r.findDocument(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	w := doc.toDomain()
	return &w, nil
}

func (r *mongoWorkoutRepository) GetDetailByIDForUser(ctx context.Context, userID string, id int64) (*domain.WorkoutDetail, error) {
	doc, err := r.findDocument(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	details, err := r.hydrate(ctx, []workoutDocument{*doc})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// hydrate resolves the catalog entries of the embedded exercises in one query.
func (r *mongoWorkoutRepository) hydrate(ctx context.Context, docs []workoutDocument) ([]domain.WorkoutDetail, error) {
	catalog := map[int64]domain.Exercise{}
	if ids := exerciseIDs(docs); len(ids) > 0 {
		cursor, err := r.exercises.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			return nil, fmt.Errorf("list exercises: %w", err)
		}
		defer cursor.Close(ctx)

		var exercises []exerciseDocument
		if err = cursor.All(ctx, &exercises); err != nil {
			return nil, fmt.Errorf("decode exercises: %w", err)
		}
		for _, e := range exercises {
			catalog[e.ID] = e.toDomain()
		}
	}

	workouts, exercises, sets := flatten(docs, catalog)
	return repository.Assemble(workouts, exercises, sets), nil
}

// Create inserts a new workout with no exercises.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (*domain.Workout, error) {
	now := r.timestamp()
	created := *workout
	if created.StartedAt.IsZero() {
		created.StartedAt = now
	}
	created.StartedAt = created.StartedAt.UTC().Truncate(time.Millisecond)
	created.CompletedAt = truncPtr(created.CompletedAt)
	created.CreatedAt = now
	created.UpdatedAt = now

	id, err := r.ids.next(ctx, workoutCollectionName)
	if err != nil {
		return nil, fmt.Errorf("allocate workout id: %w", err)
	}
	created.ID = id

	if _, err := r.collection.InsertOne(ctx, newWorkoutDocument(created)); err != nil {
		return nil, fmt.Errorf("insert workout: %w", err)
	}
	return &created, nil
}

// UpdateForUser replaces name and notes of a workout owned by userID.
func (r *mongoWorkoutRepository) UpdateForUser(ctx context.Context, userID string, id int64, name string, notes *string) (*domain.Workout, error) {
	update := bson.M{"$set": bson.M{
		"name":      name,
		"notes":     notes,
		"updatedAt": r.timestamp(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc workoutDocument
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id, "userId": userID}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("update workout %d: %w", id, err)
	}
	w := doc.toDomain()
	return &w, nil
}

// DeleteForUser removes a workout and, being embedded, its exercises and sets.
func (r *mongoWorkoutRepository) DeleteForUser(ctx context.Context, userID string, id int64) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return fmt.Errorf("delete workout %d: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddExercise appends an exercise to an existing workout.
func (r *mongoWorkoutRepository) AddExercise(ctx context.Context, we *domain.WorkoutExercise) (*domain.WorkoutExercise, error) {
	count, err := r.exercises.CountDocuments(ctx, bson.M{"_id": we.ExerciseID})
	if err != nil {
		return nil, fmt.Errorf("check exercise %d: %w", we.ExerciseID, err)
	}
	if count == 0 {
		return nil, repository.ErrNotFound
	}

	now := r.timestamp()
	created := *we
	created.ApplyDefaults()
	created.CreatedAt = now
	created.UpdatedAt = now

	id, err := r.ids.next(ctx, "workout_exercises")
	if err != nil {
		return nil, fmt.Errorf("allocate workout exercise id: %w", err)
	}
	created.ID = id

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": created.WorkoutID},
		bson.M{"$push": bson.M{"exercises": newWorkoutExerciseDocument(created)}},
	)
	if err != nil {
		return nil, fmt.Errorf("insert workout exercise: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, repository.ErrNotFound
	}
	return &created, nil
}

// AddSet appends a set to the embedded workout exercise it belongs to.
func (r *mongoWorkoutRepository) AddSet(ctx context.Context, set *domain.Set) (*domain.Set, error) {
	now := r.timestamp()
	created := *set
	created.ApplyDefaults(now)
	created.CompletedAt = created.CompletedAt.UTC().Truncate(time.Millisecond)
	created.CreatedAt = now
	created.UpdatedAt = now

	id, err := r.ids.next(ctx, "sets")
	if err != nil {
		return nil, fmt.Errorf("allocate set id: %w", err)
	}
	created.ID = id

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"exercises.id": created.WorkoutExerciseID},
		bson.M{"$push": bson.M{"exercises.$.sets": newSetDocument(created)}},
	)
	if err != nil {
		return nil, fmt.Errorf("insert set: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, repository.ErrNotFound
	}
	return &created, nil
}

func truncPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC().Truncate(time.Millisecond)
	return &u
}

// EnsureWorkoutIndexes creates necessary indexes for the workouts collection.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Dashboard window queries
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "startedAt", Value: -1}},
			Options: options.Index().SetName("workouts_user_started"),
		},
		{
			// AddSet locates the parent by embedded id
			Keys:    bson.D{{Key: "exercises.id", Value: 1}},
			Options: options.Index().SetName("workouts_exercise_entry"),
		},
		{
			// Usage check before deleting a catalog exercise
			Keys:    bson.D{{Key: "exercises.exerciseId", Value: 1}},
			Options: options.Index().SetName("workouts_exercise_ref"),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
	return err
}
