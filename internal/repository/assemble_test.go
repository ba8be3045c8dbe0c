package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/workout-log/internal/domain"
)

func TestComparators(t *testing.T) {
	base := time.Date(2026, 1, 27, 8, 0, 0, 0, time.UTC)

	early := domain.Workout{ID: 1, StartedAt: base}
	late := domain.Workout{ID: 2, StartedAt: base.Add(time.Hour)}
	tie := domain.Workout{ID: 3, StartedAt: base}
	assert.Negative(t, WorkoutsByStartedAtDesc(late, early))
	assert.Positive(t, WorkoutsByStartedAtDesc(early, late))
	assert.Negative(t, WorkoutsByStartedAtDesc(tie, early), "ties broken by id descending")

	we := func(id int64, order int) domain.WorkoutExerciseDetail {
		return domain.WorkoutExerciseDetail{WorkoutExercise: domain.WorkoutExercise{ID: id, OrderIndex: order}}
	}
	assert.Negative(t, ExercisesByOrderIndex(we(9, 1), we(1, 2)))
	assert.Negative(t, ExercisesByOrderIndex(we(1, 2), we(9, 2)))
	assert.Zero(t, ExercisesByOrderIndex(we(4, 2), we(4, 2)))

	assert.Negative(t, SetsBySetNumber(domain.Set{ID: 7, SetNumber: 1}, domain.Set{ID: 2, SetNumber: 3}))
	assert.Positive(t, SetsBySetNumber(domain.Set{ID: 7, SetNumber: 2}, domain.Set{ID: 2, SetNumber: 2}))
}

func TestAssemble(t *testing.T) {
	base := time.Date(2026, 1, 27, 8, 0, 0, 0, time.UTC)
	workouts := []domain.Workout{
		{ID: 10, StartedAt: base},
		{ID: 11, StartedAt: base.Add(3 * time.Hour)},
		{ID: 12, StartedAt: base.Add(time.Hour)},
	}
	exercises := []domain.WorkoutExerciseDetail{
		{WorkoutExercise: domain.WorkoutExercise{ID: 100, WorkoutID: 10, OrderIndex: 2}, Exercise: domain.Exercise{Name: "Deadlift"}},
		{WorkoutExercise: domain.WorkoutExercise{ID: 101, WorkoutID: 10, OrderIndex: 1}, Exercise: domain.Exercise{Name: "Back Squat"}},
		{WorkoutExercise: domain.WorkoutExercise{ID: 102, WorkoutID: 11, OrderIndex: 1}, Exercise: domain.Exercise{Name: "Rowing"}},
		{WorkoutExercise: domain.WorkoutExercise{ID: 103, WorkoutID: 99, OrderIndex: 1}},
	}
	sets := []domain.Set{
		{ID: 1000, WorkoutExerciseID: 101, SetNumber: 3},
		{ID: 1001, WorkoutExerciseID: 101, SetNumber: 1},
		{ID: 1002, WorkoutExerciseID: 101, SetNumber: 2},
		{ID: 1003, WorkoutExerciseID: 100, SetNumber: 1},
		{ID: 1004, WorkoutExerciseID: 555, SetNumber: 1},
	}

	got := Assemble(workouts, exercises, sets)
	require.Len(t, got, 3)

	assert.Equal(t, []int64{11, 12, 10}, []int64{got[0].ID, got[1].ID, got[2].ID})

	assert.NotNil(t, got[1].Exercises)
	assert.Empty(t, got[1].Exercises)

	squatDay := got[2]
	require.Len(t, squatDay.Exercises, 2)
	assert.Equal(t, "Back Squat", squatDay.Exercises[0].Exercise.Name)
	assert.Equal(t, "Deadlift", squatDay.Exercises[1].Exercise.Name)

	var numbers []int
	for _, s := range squatDay.Exercises[0].Sets {
		numbers = append(numbers, s.SetNumber)
	}
	assert.Equal(t, []int{1, 2, 3}, numbers)

	rowing := got[0].Exercises[0]
	assert.NotNil(t, rowing.Sets)
	assert.Empty(t, rowing.Sets)

	// input order is left untouched
	assert.Equal(t, int64(10), workouts[0].ID)
}

func TestAssembleEmpty(t *testing.T) {
	got := Assemble(nil, nil, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRepositoryErrorsWrap(t *testing.T) {
	err := fmt.Errorf("delete exercise 4: %w", ErrInUse)
	assert.True(t, errors.Is(err, ErrInUse))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "not found", ErrNotFound.Error())
}

func TestIDs(t *testing.T) {
	assert.Equal(t, []int64{3, 1}, WorkoutIDs([]domain.Workout{{ID: 3}, {ID: 1}}))
	assert.Equal(t, []int64{}, WorkoutIDs(nil))
	assert.Equal(t, []int64{5}, WorkoutExerciseIDs([]domain.WorkoutExerciseDetail{{WorkoutExercise: domain.WorkoutExercise{ID: 5}}}))
}
