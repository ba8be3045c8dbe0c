package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DefaultWeightUnit applies to Set.WeightUnit and WorkoutExercise.TargetWeightUnit
// whenever no unit was recorded.
const DefaultWeightUnit = "lbs"

// WeightUnitOrDefault is the single default policy for weight unit fields.
// Storage backends call it before insert and the summary layer calls it when rendering.
func WeightUnitOrDefault(unit *string) string {
	if unit == nil || *unit == "" {
		return DefaultWeightUnit
	}
	return *unit
}

// ErrInvalidRecord is wrapped by every import-time validation failure.
var ErrInvalidRecord = errors.New("invalid record")

// ApplyDefaults fills the insert-time defaults of a WorkoutExercise.
func (we *WorkoutExercise) ApplyDefaults() {
	if we.OrderIndex == 0 {
		we.OrderIndex = 1
	}
	unit := WeightUnitOrDefault(we.TargetWeightUnit)
	we.TargetWeightUnit = &unit
}

// Validate checks the invariants of a WorkoutExercise before it is stored.
func (we *WorkoutExercise) Validate() error {
	if we.WorkoutID <= 0 || we.ExerciseID <= 0 {
		return fmt.Errorf("%w: workout exercise requires workoutId and exerciseId", ErrInvalidRecord)
	}
	if we.OrderIndex < 1 {
		return fmt.Errorf("%w: orderIndex must be >= 1, got %d", ErrInvalidRecord, we.OrderIndex)
	}
	return nil
}

// ApplyDefaults fills the insert-time defaults of a Set. A zero CompletedAt
// becomes now, matching the column default.
func (s *Set) ApplyDefaults(now time.Time) {
	if s.SetNumber == 0 {
		s.SetNumber = 1
	}
	unit := WeightUnitOrDefault(s.WeightUnit)
	s.WeightUnit = &unit
	if s.CompletedAt.IsZero() {
		s.CompletedAt = now
	}
}

// Validate checks the numeric ranges of a Set.
func (s *Set) Validate() error {
	if s.WorkoutExerciseID <= 0 {
		return fmt.Errorf("%w: set requires workoutExerciseId", ErrInvalidRecord)
	}
	if s.SetNumber < 1 {
		return fmt.Errorf("%w: setNumber must be >= 1, got %d", ErrInvalidRecord, s.SetNumber)
	}
	if s.RIR != nil && (*s.RIR < 0 || *s.RIR > 10) {
		return fmt.Errorf("%w: rir must be between 0 and 10, got %d", ErrInvalidRecord, *s.RIR)
	}
	if s.RPE != nil {
		rpe := *s.RPE
		if rpe < 1 || rpe > 10 || math.Mod(rpe*2, 1) != 0 {
			return fmt.Errorf("%w: rpe must be 1-10 in 0.5 steps, got %v", ErrInvalidRecord, rpe)
		}
	}
	for name, v := range map[string]*int{"reps": s.Reps, "duration": s.Duration, "restTime": s.RestTime} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%w: %s cannot be negative", ErrInvalidRecord, name)
		}
	}
	return nil
}

// Validate checks the invariants of a Workout before it is stored.
func (w *Workout) Validate() error {
	if w.UserID == "" {
		return fmt.Errorf("%w: workout requires a user", ErrInvalidRecord)
	}
	if w.CompletedAt != nil && w.CompletedAt.Before(w.StartedAt) {
		return fmt.Errorf("%w: completedAt is before startedAt", ErrInvalidRecord)
	}
	if w.Duration != nil && *w.Duration < 0 {
		return fmt.Errorf("%w: duration cannot be negative", ErrInvalidRecord)
	}
	return nil
}

// Validate checks enum membership and the custom-exercise convention.
func (e *Exercise) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("%w: exercise name is required", ErrInvalidRecord)
	}
	if !e.Type.Valid() {
		return fmt.Errorf("%w: unknown exercise type %q", ErrInvalidRecord, e.Type)
	}
	if !e.PrimaryMuscleGroup.Valid() {
		return fmt.Errorf("%w: unknown muscle group %q", ErrInvalidRecord, e.PrimaryMuscleGroup)
	}
	if e.SecondaryMuscleGroup != nil && !e.SecondaryMuscleGroup.Valid() {
		return fmt.Errorf("%w: unknown muscle group %q", ErrInvalidRecord, *e.SecondaryMuscleGroup)
	}
	if !e.Equipment.Valid() {
		return fmt.Errorf("%w: unknown equipment %q", ErrInvalidRecord, e.Equipment)
	}
	if e.IsCustom && (e.CreatedBy == nil || *e.CreatedBy == "") {
		return fmt.Errorf("%w: custom exercise requires a creator", ErrInvalidRecord)
	}
	return nil
}
