package domain

import "time"

// Workout is one logged session. It belongs to exactly one user.
type Workout struct {
	ID          int64      `json:"id"`
	UserID      string     `json:"userId"`
	Name        *string    `json:"name,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"` // nil while in progress
	Duration    *int       `json:"duration,omitempty"`    // seconds
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// WorkoutExercise is one exercise's appearance within a workout.
type WorkoutExercise struct {
	ID               int64     `json:"id"`
	WorkoutID        int64     `json:"workoutId"`
	ExerciseID       int64     `json:"exerciseId"`
	OrderIndex       int       `json:"orderIndex"` // 1-based
	Notes            *string   `json:"notes,omitempty"`
	TargetSets       *int      `json:"targetSets,omitempty"`
	TargetReps       *int      `json:"targetReps,omitempty"`
	TargetWeight     *float64  `json:"targetWeight,omitempty"`
	TargetWeightUnit *string   `json:"targetWeightUnit,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Set is one performed or skipped set. Every metric is independently optional.
type Set struct {
	ID                int64     `json:"id"`
	WorkoutExerciseID int64     `json:"workoutExerciseId"`
	SetNumber         int       `json:"setNumber"` // 1-based
	Reps              *int      `json:"reps,omitempty"`
	Weight            *float64  `json:"weight,omitempty"`
	WeightUnit        *string   `json:"weightUnit,omitempty"`
	RIR               *int      `json:"rir,omitempty"`
	RPE               *float64  `json:"rpe,omitempty"`
	Duration          *int      `json:"duration,omitempty"` // seconds
	Distance          *float64  `json:"distance,omitempty"`
	DistanceUnit      *string   `json:"distanceUnit,omitempty"`
	Tempo             *string   `json:"tempo,omitempty"`    // e.g. "3-0-1-0"
	RestTime          *int      `json:"restTime,omitempty"` // seconds before this set
	Notes             *string   `json:"notes,omitempty"`
	Completed         bool      `json:"completed"` // false marks a skipped set
	CompletedAt       time.Time `json:"completedAt"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// WorkoutExerciseDetail is a WorkoutExercise with its catalog entry and ordered sets.
type WorkoutExerciseDetail struct {
	WorkoutExercise
	Exercise Exercise `json:"exercise"`
	Sets     []Set    `json:"sets"`
}

// WorkoutDetail is a Workout hydrated with its ordered exercises.
type WorkoutDetail struct {
	Workout
	Exercises []WorkoutExerciseDetail `json:"workoutExercises"`
}
