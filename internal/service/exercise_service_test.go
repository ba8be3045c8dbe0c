package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/workout-log/internal/domain"
)

func TestCreateCustomExerciseDefaults(t *testing.T) {
	store := newTestStore(t)
	svc := NewExerciseService(store.exercises)

	created, err := svc.CreateCustomExercise(context.Background(), alice, ExerciseInput{
		Name:               " Zercher Squat ",
		PrimaryMuscleGroup: "quads",
		Description:        ptr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "Zercher Squat", created.Name)
	assert.Equal(t, domain.TypeStrength, created.Type)
	assert.Equal(t, domain.EquipmentBodyweight, created.Equipment)
	assert.True(t, created.IsCustom)
	assert.Equal(t, alice.UserID, *created.CreatedBy)
	assert.Nil(t, created.Description)
}

func TestCreateCustomExerciseValidation(t *testing.T) {
	svc := NewExerciseService(newTestStore(t).exercises)

	_, err := svc.CreateCustomExercise(context.Background(), alice, ExerciseInput{
		Name:                 "Thing",
		Type:                 "yoga",
		PrimaryMuscleGroup:   "wings",
		SecondaryMuscleGroup: ptr("tail"),
		Equipment:            "spaceship",
		VideoURL:             ptr("not a url"),
	})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	for _, field := range []string{"type", "primaryMuscleGroup", "secondaryMuscleGroup", "equipment", "videoUrl"} {
		assert.Contains(t, verr.Fields, field)
	}

	_, err = svc.CreateCustomExercise(context.Background(), anonymous, ExerciseInput{})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestListExercisesShowsOwnCustomEntries(t *testing.T) {
	store := newTestStore(t)
	svc := NewExerciseService(store.exercises)
	store.catalogExercise(t, "Deadlift")

	_, err := svc.CreateCustomExercise(context.Background(), alice, ExerciseInput{Name: "Alice Special", PrimaryMuscleGroup: "back"})
	require.NoError(t, err)

	list, err := svc.ListExercises(context.Background(), alice)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = svc.ListExercises(context.Background(), bob)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Deadlift", list[0].Name)
}

func TestDeleteCustomExercise(t *testing.T) {
	store := newTestStore(t)
	svc := NewExerciseService(store.exercises)
	ctx := context.Background()
	catalog := store.catalogExercise(t, "Bench Press")

	custom, err := svc.CreateCustomExercise(ctx, alice, ExerciseInput{Name: "Mine", PrimaryMuscleGroup: "chest"})
	require.NoError(t, err)
	store.workoutWithSets(t, alice.UserID, "Uses it", time.Now().UTC(), custom.ID, []int{5}, 50)

	assert.ErrorIs(t, svc.DeleteCustomExercise(ctx, alice, catalog.ID), ErrExerciseNotFound)
	assert.ErrorIs(t, svc.DeleteCustomExercise(ctx, bob, custom.ID), ErrExerciseNotFound)
	assert.ErrorIs(t, svc.DeleteCustomExercise(ctx, alice, custom.ID), ErrExerciseInUse)
	assert.ErrorIs(t, svc.DeleteCustomExercise(ctx, alice, -1), ErrExerciseNotFound)

	unused, err := svc.CreateCustomExercise(ctx, alice, ExerciseInput{Name: "Unused", PrimaryMuscleGroup: "chest"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteCustomExercise(ctx, alice, unused.ID))
}
