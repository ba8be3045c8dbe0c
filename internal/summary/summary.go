// Package summary holds the pure formatting helpers used by the dashboard and the API.
package summary

import (
	"fmt"
	"strconv"

	"alcyxob/workout-log/internal/domain"
)

// FormatDuration renders seconds as "1h 2m", "2m 5s" or "45s". Negative input counts as zero.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// ExerciseSets reduces the sets of one workout exercise to a line such as
// "3 sets, 15 reps @ 205 lbs".
//
// Only sets that recorded reps are counted. This is not the same as Set.Completed:
// a skipped set can still carry reps, and a timed set never does.
func ExerciseSets(sets []domain.Set) string {
	if len(sets) == 0 {
		return ""
	}

	var withReps []domain.Set
	for _, s := range sets {
		if s.Reps != nil {
			withReps = append(withReps, s)
		}
	}
	if len(withReps) == 0 {
		return fmt.Sprintf("%d sets", len(sets))
	}

	totalReps := 0
	maxWeight := 0.0
	for _, s := range withReps {
		totalReps += *s.Reps
		if s.Weight != nil && *s.Weight > maxWeight {
			maxWeight = *s.Weight
		}
	}

	if maxWeight > 0 {
		unit := domain.WeightUnitOrDefault(withReps[0].WeightUnit)
		return fmt.Sprintf("%d sets, %d reps @ %s %s", len(withReps), totalReps, FormatWeight(maxWeight), unit)
	}
	return fmt.Sprintf("%d sets, %d reps", len(withReps), totalReps)
}

// FormatWeight prints the shortest decimal that round-trips, so 205 stays "205" and 92.5 stays "92.5".
func FormatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// WorkoutDuration picks the stored duration, then completedAt minus startedAt.
// It returns "" when neither is known.
func WorkoutDuration(w domain.Workout) string {
	if w.Duration != nil {
		return FormatDuration(*w.Duration)
	}
	if w.CompletedAt != nil {
		return FormatDuration(int(w.CompletedAt.Sub(w.StartedAt).Seconds()))
	}
	return ""
}
