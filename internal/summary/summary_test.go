package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"alcyxob/workout-log/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestFormatDuration(t *testing.T) {
	cases := map[int]string{
		0:     "0s",
		59:    "59s",
		60:    "1m 0s",
		125:   "2m 5s",
		3600:  "1h 0m",
		3725:  "1h 2m",
		4500:  "1h 15m",
		90061: "25h 1m",
		-30:   "0s",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatDuration(in), "FormatDuration(%d)", in)
	}
}

func TestExerciseSets(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", ExerciseSets(nil))
		assert.Equal(t, "", ExerciseSets([]domain.Set{}))
	})

	t.Run("null reps excluded from count and totals", func(t *testing.T) {
		sets := []domain.Set{
			{SetNumber: 1, Reps: ptr(5), Weight: ptr(185.0)},
			{SetNumber: 2, Reps: ptr(5), Weight: ptr(205.0)},
			{SetNumber: 3, Weight: ptr(0.0)},
		}
		assert.Equal(t, "2 sets, 10 reps @ 205 lbs", ExerciseSets(sets))
	})

	t.Run("all null reps counts every set", func(t *testing.T) {
		sets := []domain.Set{
			{SetNumber: 1, Duration: ptr(102), Distance: ptr(500.0)},
			{SetNumber: 2, Duration: ptr(98), Distance: ptr(500.0)},
			{SetNumber: 3, Duration: ptr(100), Distance: ptr(500.0)},
		}
		assert.Equal(t, "3 sets", ExerciseSets(sets))
	})

	t.Run("bodyweight omits weight", func(t *testing.T) {
		sets := []domain.Set{
			{SetNumber: 1, Reps: ptr(10)},
			{SetNumber: 2, Reps: ptr(8), Weight: ptr(0.0)},
		}
		assert.Equal(t, "2 sets, 18 reps", ExerciseSets(sets))
	})

	t.Run("unit comes from first set with reps", func(t *testing.T) {
		sets := []domain.Set{
			{SetNumber: 1, WeightUnit: ptr("lbs")},
			{SetNumber: 2, Reps: ptr(3), Weight: ptr(92.5), WeightUnit: ptr("kg")},
			{SetNumber: 3, Reps: ptr(3), Weight: ptr(100.0), WeightUnit: ptr("lbs")},
		}
		assert.Equal(t, "2 sets, 6 reps @ 100 kg", ExerciseSets(sets))
	})

	t.Run("skipped flag does not affect the count", func(t *testing.T) {
		sets := []domain.Set{
			{SetNumber: 1, Reps: ptr(5), Weight: ptr(135.0), Completed: true},
			{SetNumber: 2, Reps: ptr(0), Weight: ptr(135.0), Completed: false},
		}
		assert.Equal(t, "2 sets, 5 reps @ 135 lbs", ExerciseSets(sets))
	})
}

func TestFormatWeight(t *testing.T) {
	assert.Equal(t, "205", FormatWeight(205))
	assert.Equal(t, "92.5", FormatWeight(92.5))
	assert.Equal(t, "0.25", FormatWeight(0.25))
}

func TestWorkoutDuration(t *testing.T) {
	start := time.Date(2026, 1, 27, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, "", WorkoutDuration(domain.Workout{StartedAt: start}))
	assert.Equal(t, "1h 15m", WorkoutDuration(domain.Workout{StartedAt: start, Duration: ptr(4500)}))

	done := start.Add(42*time.Minute + 10*time.Second)
	assert.Equal(t, "42m 10s", WorkoutDuration(domain.Workout{StartedAt: start, CompletedAt: &done}))

	// Stored duration wins over the timestamps.
	assert.Equal(t, "1h 0m", WorkoutDuration(domain.Workout{StartedAt: start, CompletedAt: &done, Duration: ptr(3600)}))
}
