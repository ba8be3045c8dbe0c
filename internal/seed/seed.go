// Package seed loads the demo exercise catalog and a few sample workouts.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"alcyxob/workout-log/internal/domain"
	"alcyxob/workout-log/internal/repository"
)

// Result counts the rows written by Run.
type Result struct {
	Exercises        int
	Workouts         int
	WorkoutExercises int
	Sets             int
}

func ptr[T any](v T) *T { return &v }

func muscle(m domain.MuscleGroup) *domain.MuscleGroup { return &m }

// Catalog is the shared exercise library.
func Catalog() []domain.Exercise {
	return []domain.Exercise{
		{
			Name:                 "Back Squat",
			Description:          ptr("Barbell squat with bar on upper back"),
			Type:                 domain.TypeStrength,
			PrimaryMuscleGroup:   domain.MuscleQuads,
			SecondaryMuscleGroup: muscle(domain.MuscleGlutes),
			Equipment:            domain.EquipmentBarbell,
			Instructions:         ptr("Place bar on upper traps, squat to parallel, drive up through heels"),
		},
		{
			Name:                 "Deadlift",
			Description:          ptr("Conventional barbell deadlift"),
			Type:                 domain.TypeStrength,
			PrimaryMuscleGroup:   domain.MuscleBack,
			SecondaryMuscleGroup: muscle(domain.MuscleHamstrings),
			Equipment:            domain.EquipmentBarbell,
			Instructions:         ptr("Grip bar shoulder width, hinge at hips, keep back flat, drive through floor"),
		},
		{
			Name:                 "Pull-ups",
			Description:          ptr("Strict pull-up from dead hang"),
			Type:                 domain.TypeStrength,
			PrimaryMuscleGroup:   domain.MuscleBack,
			SecondaryMuscleGroup: muscle(domain.MuscleBiceps),
			Equipment:            domain.EquipmentBodyweight,
			Instructions:         ptr("Hang from bar, pull chin over bar, lower with control"),
		},
		{
			Name:                 "Push Press",
			Description:          ptr("Overhead press with leg drive"),
			Type:                 domain.TypeStrength,
			PrimaryMuscleGroup:   domain.MuscleShoulders,
			SecondaryMuscleGroup: muscle(domain.MuscleTriceps),
			Equipment:            domain.EquipmentBarbell,
			Instructions:         ptr("Dip knees slightly, drive bar overhead using leg momentum"),
		},
		{
			Name:                 "Box Jumps",
			Description:          ptr("Explosive jump onto box"),
			Type:                 domain.TypePlyometric,
			PrimaryMuscleGroup:   domain.MuscleQuads,
			SecondaryMuscleGroup: muscle(domain.MuscleCalves),
			Equipment:            domain.EquipmentBox,
			Instructions:         ptr("Stand facing box, jump and land softly with both feet, step down"),
		},
		{
			Name:               "Rowing",
			Description:        ptr("Concept2 rowing for cardio"),
			Type:               domain.TypeCardio,
			PrimaryMuscleGroup: domain.MuscleFullBody,
			Equipment:          domain.EquipmentRower,
			Instructions:       ptr("Drive with legs, lean back, pull handle to chest, reverse sequence"),
		},
	}
}

type sampleExercise struct {
	exercise string
	entry    domain.WorkoutExercise
	sets     []domain.Set
}

type sampleWorkout struct {
	workout   domain.Workout
	exercises []sampleExercise
}

// numbered sets the set numbers and the unit of every weighted set.
func numbered(unit string, rows ...domain.Set) []domain.Set {
	for i := range rows {
		rows[i].SetNumber = i + 1
		rows[i].Completed = true
		if rows[i].Weight != nil {
			rows[i].WeightUnit = ptr(unit)
		}
	}
	return rows
}

func samples() []sampleWorkout {
	at := func(s string) time.Time {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			panic(err)
		}
		return t
	}
	return []sampleWorkout{
		{
			workout: domain.Workout{
				Name:        ptr("Leg Day"),
				Notes:       ptr("Focus on squat depth"),
				StartedAt:   at("2026-01-27T08:00:00Z"),
				CompletedAt: ptr(at("2026-01-27T09:15:00Z")),
				Duration:    ptr(4500),
			},
			exercises: []sampleExercise{
				{
					exercise: "Back Squat",
					entry:    domain.WorkoutExercise{OrderIndex: 1, Notes: ptr("Warm up with empty bar first"), TargetSets: ptr(5), TargetReps: ptr(5), TargetWeight: ptr(225.0), TargetWeightUnit: ptr("lbs")},
					sets: numbered("lbs",
						domain.Set{Reps: ptr(5), Weight: ptr(185.0), RIR: ptr(3), RPE: ptr(7.0), RestTime: ptr(180), Notes: ptr("Warm-up set")},
						domain.Set{Reps: ptr(5), Weight: ptr(205.0), RIR: ptr(2), RPE: ptr(8.0), RestTime: ptr(180)},
						domain.Set{Reps: ptr(5), Weight: ptr(225.0), RIR: ptr(1), RPE: ptr(8.5), RestTime: ptr(180), Notes: ptr("Hit target")},
						domain.Set{Reps: ptr(5), Weight: ptr(225.0), RIR: ptr(1), RPE: ptr(9.0), RestTime: ptr(180)},
						domain.Set{Reps: ptr(5), Weight: ptr(225.0), RIR: ptr(0), RPE: ptr(9.5), Notes: ptr("Last rep was a grinder")},
					),
				},
				{
					exercise: "Box Jumps",
					entry:    domain.WorkoutExercise{OrderIndex: 2, Notes: ptr("24 inch box"), TargetSets: ptr(3), TargetReps: ptr(10)},
					sets: numbered("lbs",
						domain.Set{Reps: ptr(10), RPE: ptr(6.0), RestTime: ptr(90)},
						domain.Set{Reps: ptr(10), RPE: ptr(7.0), RestTime: ptr(90)},
						domain.Set{Reps: ptr(10), RPE: ptr(7.5)},
					),
				},
			},
		},
		{
			workout: domain.Workout{
				Name:        ptr("Pull Day"),
				Notes:       ptr("Back and biceps emphasis"),
				StartedAt:   at("2026-01-28T07:30:00Z"),
				CompletedAt: ptr(at("2026-01-28T08:45:00Z")),
				Duration:    ptr(4500),
			},
			exercises: []sampleExercise{
				{
					exercise: "Deadlift",
					entry:    domain.WorkoutExercise{OrderIndex: 1, Notes: ptr("Build up to working weight"), TargetSets: ptr(5), TargetReps: ptr(5), TargetWeight: ptr(315.0), TargetWeightUnit: ptr("lbs")},
					sets: numbered("lbs",
						domain.Set{Reps: ptr(5), Weight: ptr(225.0), RIR: ptr(4), RPE: ptr(6.0), RestTime: ptr(180), Notes: ptr("Warm-up")},
						domain.Set{Reps: ptr(5), Weight: ptr(275.0), RIR: ptr(2), RPE: ptr(7.5), RestTime: ptr(180)},
						domain.Set{Reps: ptr(5), Weight: ptr(315.0), RIR: ptr(1), RPE: ptr(8.5), RestTime: ptr(180), Notes: ptr("PR attempt")},
						domain.Set{Reps: ptr(5), Weight: ptr(315.0), RIR: ptr(0), RPE: ptr(9.0), RestTime: ptr(180)},
						domain.Set{Reps: ptr(4), Weight: ptr(315.0), RIR: ptr(0), RPE: ptr(10.0), Notes: ptr("Missed 5th rep")},
					),
				},
				{
					exercise: "Pull-ups",
					entry:    domain.WorkoutExercise{OrderIndex: 2, Notes: ptr("Strict, no kipping"), TargetSets: ptr(4), TargetReps: ptr(8)},
					sets: numbered("lbs",
						domain.Set{Reps: ptr(8), RIR: ptr(2), RPE: ptr(7.0), RestTime: ptr(120)},
						domain.Set{Reps: ptr(8), RIR: ptr(1), RPE: ptr(8.0), RestTime: ptr(120)},
						domain.Set{Reps: ptr(7), RIR: ptr(0), RPE: ptr(9.0), RestTime: ptr(120), Notes: ptr("Failed last rep")},
						domain.Set{Reps: ptr(6), RIR: ptr(0), RPE: ptr(9.5), Notes: ptr("Fatigued")},
					),
				},
			},
		},
		{
			workout: domain.Workout{
				Name:        ptr("Full Body WOD"),
				Notes:       ptr("CrossFit metcon style"),
				StartedAt:   at("2026-01-29T17:00:00Z"),
				CompletedAt: ptr(at("2026-01-29T18:00:00Z")),
				Duration:    ptr(3600),
			},
			exercises: []sampleExercise{
				{
					exercise: "Push Press",
					entry:    domain.WorkoutExercise{OrderIndex: 1, Notes: ptr("Part of the metcon"), TargetSets: ptr(3), TargetReps: ptr(10), TargetWeight: ptr(95.0), TargetWeightUnit: ptr("lbs")},
					sets: numbered("lbs",
						domain.Set{Reps: ptr(10), Weight: ptr(95.0), RPE: ptr(7.0), RestTime: ptr(60)},
						domain.Set{Reps: ptr(10), Weight: ptr(95.0), RPE: ptr(8.0), RestTime: ptr(60)},
						domain.Set{Reps: ptr(10), Weight: ptr(95.0), RPE: ptr(8.5), Notes: ptr("Unbroken")},
					),
				},
				{
					exercise: "Rowing",
					entry:    domain.WorkoutExercise{OrderIndex: 2, Notes: ptr("500m intervals"), TargetSets: ptr(3)},
					sets: numbered("lbs",
						domain.Set{Duration: ptr(102), Distance: ptr(500.0), DistanceUnit: ptr("m"), RPE: ptr(7.0), RestTime: ptr(120), Notes: ptr("1:42 pace")},
						domain.Set{Duration: ptr(105), Distance: ptr(500.0), DistanceUnit: ptr("m"), RPE: ptr(8.0), RestTime: ptr(120), Notes: ptr("1:45 pace")},
						domain.Set{Duration: ptr(110), Distance: ptr(500.0), DistanceUnit: ptr("m"), RPE: ptr(9.0), Notes: ptr("1:50 pace, gassed")},
					),
				},
			},
		},
	}
}

// Run inserts the catalog entries that do not exist yet, then the sample workouts for userID.
// Workouts are inserted on every call.
func Run(ctx context.Context, workouts repository.WorkoutRepository, exercises repository.ExerciseRepository, userID string) (*Result, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("seed: user id is required")
	}
	result := &Result{}

	existing, err := exercises.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("seed: list exercises: %w", err)
	}
	byName := make(map[string]int64, len(existing))
	for _, e := range existing {
		if !e.IsCustom {
			byName[e.Name] = e.ID
		}
	}

	for _, e := range Catalog() {
		if _, ok := byName[e.Name]; ok {
			continue
		}
		created, err := exercises.Create(ctx, &e)
		if err != nil {
			return nil, fmt.Errorf("seed: create exercise %q: %w", e.Name, err)
		}
		byName[created.Name] = created.ID
		result.Exercises++
	}

	for _, sample := range samples() {
		w := sample.workout
		w.UserID = userID
		created, err := workouts.Create(ctx, &w)
		if err != nil {
			return nil, fmt.Errorf("seed: create workout %q: %w", *w.Name, err)
		}
		result.Workouts++

		for _, se := range sample.exercises {
			entry := se.entry
			entry.WorkoutID = created.ID
			entry.ExerciseID = byName[se.exercise]
			we, err := workouts.AddExercise(ctx, &entry)
			if err != nil {
				return nil, fmt.Errorf("seed: add %q to %q: %w", se.exercise, *w.Name, err)
			}
			result.WorkoutExercises++

			for i, set := range se.sets {
				set.WorkoutExerciseID = we.ID
				set.CompletedAt = created.StartedAt.Add(time.Duration(i+1) * 3 * time.Minute)
				if _, err := workouts.AddSet(ctx, &set); err != nil {
					return nil, fmt.Errorf("seed: add set %d of %q: %w", set.SetNumber, se.exercise, err)
				}
				result.Sets++
			}
		}
	}

	log.Printf("INFO: Seeded %d exercises, %d workouts, %d workout exercises and %d sets for user %s",
		result.Exercises, result.Workouts, result.WorkoutExercises, result.Sets, userID)
	return result, nil
}
