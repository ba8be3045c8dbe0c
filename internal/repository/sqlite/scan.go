package sqlite

import (
	"database/sql"

	"alcyxob/workout-log/internal/domain"
)

type rowScanner interface {
	Scan(dest ...any) error
}

const workoutColumns = `id, user_id, name, notes, started_at, completed_at, duration, created_at, updated_at`

const exerciseColumns = `id, name, description, type, primary_muscle_group, secondary_muscle_group,
	equipment, instructions, video_url, is_custom, created_by, created_at, updated_at`

const workoutExerciseColumns = `we.id, we.workout_id, we.exercise_id, we.order_index, we.notes, we.target_sets,
	we.target_reps, we.target_weight, we.target_weight_unit, we.created_at, we.updated_at,
	e.id, e.name, e.description, e.type, e.primary_muscle_group, e.secondary_muscle_group,
	e.equipment, e.instructions, e.video_url, e.is_custom, e.created_by, e.created_at, e.updated_at`

const setColumns = `id, workout_exercise_id, set_number, reps, weight, weight_unit, rir, rpe, duration,
	distance, distance_unit, tempo, rest_time, notes, completed, completed_at, created_at, updated_at`

func scanWorkout(row rowScanner) (domain.Workout, error) {
	var w domain.Workout
	var startedAt, createdAt, updatedAt int64
	var completedAt sql.NullInt64
	err := row.Scan(&w.ID, &w.UserID, &w.Name, &w.Notes, &startedAt, &completedAt, &w.Duration, &createdAt, &updatedAt)
	if err != nil {
		return domain.Workout{}, err
	}
	w.StartedAt = fromMillis(startedAt)
	w.CompletedAt = timePtr(completedAt)
	w.CreatedAt = fromMillis(createdAt)
	w.UpdatedAt = fromMillis(updatedAt)
	return w, nil
}

type exerciseScan struct {
	isCustom             int
	createdAt, updatedAt int64
}

func (s *exerciseScan) dest(e *domain.Exercise) []any {
	return []any{
		&e.ID, &e.Name, &e.Description, &e.Type, &e.PrimaryMuscleGroup, &e.SecondaryMuscleGroup,
		&e.Equipment, &e.Instructions, &e.VideoURL, &s.isCustom, &e.CreatedBy, &s.createdAt, &s.updatedAt,
	}
}

func (s *exerciseScan) finish(e *domain.Exercise) {
	e.IsCustom = s.isCustom != 0
	e.CreatedAt = fromMillis(s.createdAt)
	e.UpdatedAt = fromMillis(s.updatedAt)
}

func scanExercise(row rowScanner) (domain.Exercise, error) {
	var e domain.Exercise
	var s exerciseScan
	if err := row.Scan(s.dest(&e)...); err != nil {
		return domain.Exercise{}, err
	}
	s.finish(&e)
	return e, nil
}

func scanWorkoutExercise(row rowScanner) (domain.WorkoutExerciseDetail, error) {
	var d domain.WorkoutExerciseDetail
	var createdAt, updatedAt int64
	var s exerciseScan
	dest := []any{
		&d.ID, &d.WorkoutID, &d.ExerciseID, &d.OrderIndex, &d.Notes, &d.TargetSets,
		&d.TargetReps, &d.TargetWeight, &d.TargetWeightUnit, &createdAt, &updatedAt,
	}
	dest = append(dest, s.dest(&d.Exercise)...)
	if err := row.Scan(dest...); err != nil {
		return domain.WorkoutExerciseDetail{}, err
	}
	d.CreatedAt = fromMillis(createdAt)
	d.UpdatedAt = fromMillis(updatedAt)
	s.finish(&d.Exercise)
	return d, nil
}

func scanSet(row rowScanner) (domain.Set, error) {
	var s domain.Set
	var completed int
	var completedAt, createdAt, updatedAt int64
	err := row.Scan(&s.ID, &s.WorkoutExerciseID, &s.SetNumber, &s.Reps, &s.Weight, &s.WeightUnit, &s.RIR, &s.RPE,
		&s.Duration, &s.Distance, &s.DistanceUnit, &s.Tempo, &s.RestTime, &s.Notes, &completed,
		&completedAt, &createdAt, &updatedAt)
	if err != nil {
		return domain.Set{}, err
	}
	s.Completed = completed != 0
	s.CompletedAt = fromMillis(completedAt)
	s.CreatedAt = fromMillis(createdAt)
	s.UpdatedAt = fromMillis(updatedAt)
	return s, nil
}
