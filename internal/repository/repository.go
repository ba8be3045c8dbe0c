package repository

import (
	"context"
	"time"

	"alcyxob/workout-log/internal/domain"
)

// Error constants for the repository layer. Every backend maps its driver errors onto these.
var (
	ErrNotFound = RepositoryError("not found")
	ErrInUse    = RepositoryError("record is still referenced")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// WorkoutRepository stores workouts together with their exercises and sets.
// Every read and write of a workout is scoped to the owning user id.
type WorkoutRepository interface {
	// ListByUserBetween returns the user's workouts with startedAt in [start, end),
	// hydrated and ordered as described by Assemble. The result is never nil.
	ListByUserBetween(ctx context.Context, userID string, start, end time.Time) ([]domain.WorkoutDetail, error)
	GetByIDForUser(ctx context.Context, userID string, id int64) (*domain.Workout, error)
	GetDetailByIDForUser(ctx context.Context, userID string, id int64) (*domain.WorkoutDetail, error)

	// Create inserts the workout and returns the stored row, ID and timestamps included.
	Create(ctx context.Context, workout *domain.Workout) (*domain.Workout, error)
	// UpdateForUser sets name and notes. A workout owned by someone else is ErrNotFound.
	UpdateForUser(ctx context.Context, userID string, id int64, name string, notes *string) (*domain.Workout, error)
	// DeleteForUser removes the workout along with its exercises and sets.
	DeleteForUser(ctx context.Context, userID string, id int64) error

	// AddExercise and AddSet apply the domain defaults before insert. A missing parent is ErrNotFound.
	AddExercise(ctx context.Context, we *domain.WorkoutExercise) (*domain.WorkoutExercise, error)
	AddSet(ctx context.Context, set *domain.Set) (*domain.Set, error)
}

// ExerciseRepository defines the interface for interacting with the exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error)
	GetByID(ctx context.Context, id int64) (*domain.Exercise, error)
	// List returns the shared catalog plus the custom exercises created by userID, ordered by name.
	List(ctx context.Context, userID string) ([]domain.Exercise, error)
	// Delete removes a custom exercise owned by userID. ErrInUse while any workout references it.
	Delete(ctx context.Context, userID string, id int64) error
}
