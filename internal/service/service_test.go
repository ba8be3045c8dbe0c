package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"alcyxob/workout-log/internal/domain"
	"alcyxob/workout-log/internal/repository"
	"alcyxob/workout-log/internal/repository/sqlite"
)

func ptr[T any](v T) *T { return &v }

var (
	alice     = domain.Principal{UserID: "user-alice"}
	bob       = domain.Principal{UserID: "user-bob"}
	anonymous = domain.Principal{}
)

type testStore struct {
	workouts  repository.WorkoutRepository
	exercises repository.ExerciseRepository
}

func newTestStore(t *testing.T) testStore {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "service.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(context.Background(), db))
	return testStore{
		workouts:  sqlite.NewSQLiteWorkoutRepository(db),
		exercises: sqlite.NewSQLiteExerciseRepository(db),
	}
}

func (s testStore) catalogExercise(t *testing.T, name string) *domain.Exercise {
	t.Helper()
	e, err := s.exercises.Create(context.Background(), &domain.Exercise{
		Name:               name,
		PrimaryMuscleGroup: domain.MuscleQuads,
		Equipment:          domain.EquipmentBarbell,
	})
	require.NoError(t, err)
	return e
}

// workoutWithSets stores a workout for userID holding one exercise with the given reps/weights.
func (s testStore) workoutWithSets(t *testing.T, userID, name string, startedAt time.Time, exerciseID int64, reps []int, weight float64) *domain.Workout {
	t.Helper()
	ctx := context.Background()
	w, err := s.workouts.Create(ctx, &domain.Workout{UserID: userID, Name: ptr(name), StartedAt: startedAt})
	require.NoError(t, err)
	we, err := s.workouts.AddExercise(ctx, &domain.WorkoutExercise{WorkoutID: w.ID, ExerciseID: exerciseID, OrderIndex: 1})
	require.NoError(t, err)
	for i, r := range reps {
		_, err := s.workouts.AddSet(ctx, &domain.Set{
			WorkoutExerciseID: we.ID,
			SetNumber:         i + 1,
			Reps:              ptr(r),
			Weight:            ptr(weight),
			Completed:         true,
			CompletedAt:       startedAt.Add(time.Duration(i+1) * time.Minute),
		})
		require.NoError(t, err)
	}
	return w
}
