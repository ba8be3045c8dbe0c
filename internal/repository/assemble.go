package repository

import (
	"cmp"
	"slices"

	"alcyxob/workout-log/internal/domain"
)

// WorkoutsByStartedAtDesc orders workouts most recent first. Equal start times fall back to id descending.
func WorkoutsByStartedAtDesc(a, b domain.Workout) int {
	if c := b.StartedAt.Compare(a.StartedAt); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

// ExercisesByOrderIndex orders the exercises of one workout by orderIndex, then id.
func ExercisesByOrderIndex(a, b domain.WorkoutExerciseDetail) int {
	if c := cmp.Compare(a.OrderIndex, b.OrderIndex); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// SetsBySetNumber orders the sets of one workout exercise by setNumber, then id.
func SetsBySetNumber(a, b domain.Set) int {
	if c := cmp.Compare(a.SetNumber, b.SetNumber); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Assemble builds workout aggregates from flat rows as fetched by the backends:
// workouts, workout exercises with their catalog entry already joined, and sets.
// Rows whose parent is not in the input are dropped. Nested slices are never nil.
func Assemble(workouts []domain.Workout, exercises []domain.WorkoutExerciseDetail, sets []domain.Set) []domain.WorkoutDetail {
	setsByExercise := make(map[int64][]domain.Set, len(exercises))
	for _, s := range sets {
		setsByExercise[s.WorkoutExerciseID] = append(setsByExercise[s.WorkoutExerciseID], s)
	}

	exercisesByWorkout := make(map[int64][]domain.WorkoutExerciseDetail, len(workouts))
	for _, we := range exercises {
		we.Sets = setsByExercise[we.ID]
		if we.Sets == nil {
			we.Sets = []domain.Set{}
		}
		slices.SortFunc(we.Sets, SetsBySetNumber)
		exercisesByWorkout[we.WorkoutID] = append(exercisesByWorkout[we.WorkoutID], we)
	}

	ordered := slices.Clone(workouts)
	slices.SortFunc(ordered, WorkoutsByStartedAtDesc)

	out := make([]domain.WorkoutDetail, 0, len(ordered))
	for _, w := range ordered {
		wes := exercisesByWorkout[w.ID]
		if wes == nil {
			wes = []domain.WorkoutExerciseDetail{}
		}
		slices.SortFunc(wes, ExercisesByOrderIndex)
		out = append(out, domain.WorkoutDetail{Workout: w, Exercises: wes})
	}
	return out
}

// WorkoutIDs collects the ids of workouts, in input order.
func WorkoutIDs(workouts []domain.Workout) []int64 {
	ids := make([]int64, len(workouts))
	for i, w := range workouts {
		ids[i] = w.ID
	}
	return ids
}

// WorkoutExerciseIDs collects the ids of workout exercises, in input order.
func WorkoutExerciseIDs(exercises []domain.WorkoutExerciseDetail) []int64 {
	ids := make([]int64, len(exercises))
	for i, we := range exercises {
		ids[i] = we.ID
	}
	return ids
}
