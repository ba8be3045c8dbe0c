package postgres

import (
	"alcyxob/workout-log/internal/domain"
)

type rowScanner interface {
	Scan(dest ...any) error
}

const workoutColumns = `id, user_id, name, notes, started_at, completed_at, duration, created_at, updated_at`

const exerciseColumns = `id, name, description, type::text, primary_muscle_group::text, secondary_muscle_group::text,
	equipment::text, instructions, video_url, is_custom, created_by, created_at, updated_at`

const workoutExerciseColumns = `we.id, we.workout_id, we.exercise_id, we.order_index, we.notes, we.target_sets,
	we.target_reps, we.target_weight, we.target_weight_unit, we.created_at, we.updated_at,
	e.id, e.name, e.description, e.type::text, e.primary_muscle_group::text, e.secondary_muscle_group::text,
	e.equipment::text, e.instructions, e.video_url, e.is_custom, e.created_by, e.created_at, e.updated_at`

const setColumns = `id, workout_exercise_id, set_number, reps, weight, weight_unit, rir, rpe, duration,
	distance, distance_unit, tempo, rest_time, notes, completed, completed_at, created_at, updated_at`

func scanWorkout(row rowScanner) (domain.Workout, error) {
	var w domain.Workout
	err := row.Scan(&w.ID, &w.UserID, &w.Name, &w.Notes, &w.StartedAt, &w.CompletedAt, &w.Duration, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return domain.Workout{}, err
	}
	w.StartedAt = w.StartedAt.UTC()
	w.CompletedAt = utcPtr(w.CompletedAt)
	w.CreatedAt = w.CreatedAt.UTC()
	w.UpdatedAt = w.UpdatedAt.UTC()
	return w, nil
}

func exerciseDest(e *domain.Exercise, isCustom *int) []any {
	return []any{
		&e.ID, &e.Name, &e.Description, &e.Type, &e.PrimaryMuscleGroup, &e.SecondaryMuscleGroup,
		&e.Equipment, &e.Instructions, &e.VideoURL, isCustom, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	}
}

func finishExercise(e *domain.Exercise, isCustom int) {
	e.IsCustom = isCustom != 0
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
}

func scanExercise(row rowScanner) (domain.Exercise, error) {
	var e domain.Exercise
	var isCustom int
	if err := row.Scan(exerciseDest(&e, &isCustom)...); err != nil {
		return domain.Exercise{}, err
	}
	finishExercise(&e, isCustom)
	return e, nil
}

func scanWorkoutExercise(row rowScanner) (domain.WorkoutExerciseDetail, error) {
	var d domain.WorkoutExerciseDetail
	var isCustom int
	dest := []any{
		&d.ID, &d.WorkoutID, &d.ExerciseID, &d.OrderIndex, &d.Notes, &d.TargetSets,
		&d.TargetReps, &d.TargetWeight, &d.TargetWeightUnit, &d.CreatedAt, &d.UpdatedAt,
	}
	dest = append(dest, exerciseDest(&d.Exercise, &isCustom)...)
	if err := row.Scan(dest...); err != nil {
		return domain.WorkoutExerciseDetail{}, err
	}
	d.CreatedAt = d.CreatedAt.UTC()
	d.UpdatedAt = d.UpdatedAt.UTC()
	finishExercise(&d.Exercise, isCustom)
	return d, nil
}

func scanSet(row rowScanner) (domain.Set, error) {
	var s domain.Set
	var completed int
	err := row.Scan(&s.ID, &s.WorkoutExerciseID, &s.SetNumber, &s.Reps, &s.Weight, &s.WeightUnit, &s.RIR, &s.RPE,
		&s.Duration, &s.Distance, &s.DistanceUnit, &s.Tempo, &s.RestTime, &s.Notes, &completed,
		&s.CompletedAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return domain.Set{}, err
	}
	s.Completed = completed != 0
	s.CompletedAt = s.CompletedAt.UTC()
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}
