package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"alcyxob/workout-log/internal/domain"
	"alcyxob/workout-log/internal/repository"
)

// sqliteWorkoutRepository implements repository.WorkoutRepository
type sqliteWorkoutRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteWorkoutRepository creates a new Workout repository backed by SQLite.
func NewSQLiteWorkoutRepository(db *sql.DB) repository.WorkoutRepository {
	return &sqliteWorkoutRepository{db: db, now: time.Now}
}

func (r *sqliteWorkoutRepository) ListByUserBetween(ctx context.Context, userID string, start, end time.Time) ([]domain.WorkoutDetail, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+workoutColumns+`
		FROM workouts
		WHERE user_id = ? AND started_at >= ? AND started_at < ?
		ORDER BY started_at DESC, id DESC
	`, userID, toMillis(start), toMillis(end))
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	var workouts []domain.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	// Release the only connection before hydrating.
	rows.Close()

	return r.hydrate(ctx, workouts)
}

func (r *sqliteWorkoutRepository) GetByIDForUser(ctx context.Context, userID string, id int64) (*domain.Workout, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+workoutColumns+` FROM workouts WHERE id = ? AND user_id = ?`, id, userID)
	w, err := scanWorkout(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get workout %d: %w", id, err)
	}
	return &w, nil
}

func (r *sqliteWorkoutRepository) GetDetailByIDForUser(ctx context.Context, userID string, id int64) (*domain.WorkoutDetail, error) {
	w, err := r.GetByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	details, err := r.hydrate(ctx, []domain.Workout{*w})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (r *sqliteWorkoutRepository) hydrate(ctx context.Context, workouts []domain.Workout) ([]domain.WorkoutDetail, error) {
	if len(workouts) == 0 {
		return repository.Assemble(nil, nil, nil), nil
	}

	marks, args := placeholders(repository.WorkoutIDs(workouts))
	exercises, err := r.queryWorkoutExercises(ctx, `
		SELECT `+workoutExerciseColumns+`
		FROM workout_exercises we
		JOIN exercises e ON e.id = we.exercise_id
		WHERE we.workout_id IN (`+marks+`)
		ORDER BY we.workout_id, we.order_index, we.id
	`, args...)
	if err != nil {
		return nil, err
	}

	var sets []domain.Set
	if len(exercises) > 0 {
		marks, args := placeholders(repository.WorkoutExerciseIDs(exercises))
		sets, err = r.querySets(ctx, `
			SELECT `+setColumns+`
			FROM sets
			WHERE workout_exercise_id IN (`+marks+`)
			ORDER BY workout_exercise_id, set_number, id
		`, args...)
		if err != nil {
			return nil, err
		}
	}

	return repository.Assemble(workouts, exercises, sets), nil
}

func (r *sqliteWorkoutRepository) queryWorkoutExercises(ctx context.Context, query string, args ...any) ([]domain.WorkoutExerciseDetail, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workout exercises: %w", err)
	}
	defer rows.Close()

	var out []domain.WorkoutExerciseDetail
	for rows.Next() {
		we, err := scanWorkoutExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workout exercise: %w", err)
		}
		out = append(out, we)
	}
	return out, rows.Err()
}

func (r *sqliteWorkoutRepository) querySets(ctx context.Context, query string, args ...any) ([]domain.Set, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	defer rows.Close()

	var out []domain.Set
	for rows.Next() {
		s, err := scanSet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan set: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *sqliteWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (*domain.Workout, error) {
	now := r.now().UTC().Truncate(time.Millisecond)
	created := *workout
	if created.StartedAt.IsZero() {
		created.StartedAt = now
	}
	created.StartedAt = created.StartedAt.UTC().Truncate(time.Millisecond)
	created.CreatedAt = now
	created.UpdatedAt = now

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO workouts (user_id, name, notes, started_at, completed_at, duration, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`, created.UserID, created.Name, created.Notes, toMillis(created.StartedAt), nullMillis(created.CompletedAt),
		created.Duration, toMillis(now), toMillis(now))
	if err := row.Scan(&created.ID); err != nil {
		return nil, fmt.Errorf("insert workout: %w", err)
	}
	created.CompletedAt = timePtr(nullMillis(created.CompletedAt))
	return &created, nil
}

func (r *sqliteWorkoutRepository) UpdateForUser(ctx context.Context, userID string, id int64, name string, notes *string) (*domain.Workout, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE workouts
		SET name = ?, notes = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
		RETURNING `+workoutColumns, name, notes, toMillis(r.now()), id, userID)
	w, err := scanWorkout(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("update workout %d: %w", id, err)
	}
	return &w, nil
}

func (r *sqliteWorkoutRepository) DeleteForUser(ctx context.Context, userID string, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM workouts WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete workout %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete workout %d: %w", id, err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *sqliteWorkoutRepository) AddExercise(ctx context.Context, we *domain.WorkoutExercise) (*domain.WorkoutExercise, error) {
	now := r.now().UTC().Truncate(time.Millisecond)
	created := *we
	created.ApplyDefaults()
	created.CreatedAt = now
	created.UpdatedAt = now

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO workout_exercises (workout_id, exercise_id, order_index, notes, target_sets, target_reps,
			target_weight, target_weight_unit, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`, created.WorkoutID, created.ExerciseID, created.OrderIndex, created.Notes, created.TargetSets,
		created.TargetReps, created.TargetWeight, created.TargetWeightUnit, toMillis(now), toMillis(now))
	if err := row.Scan(&created.ID); err != nil {
		if isForeignKeyViolation(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("insert workout exercise: %w", err)
	}
	return &created, nil
}

func (r *sqliteWorkoutRepository) AddSet(ctx context.Context, set *domain.Set) (*domain.Set, error) {
	now := r.now().UTC().Truncate(time.Millisecond)
	created := *set
	created.ApplyDefaults(now)
	created.CompletedAt = created.CompletedAt.UTC().Truncate(time.Millisecond)
	created.CreatedAt = now
	created.UpdatedAt = now

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO sets (workout_exercise_id, set_number, reps, weight, weight_unit, rir, rpe, duration,
			distance, distance_unit, tempo, rest_time, notes, completed, completed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`, created.WorkoutExerciseID, created.SetNumber, created.Reps, created.Weight, created.WeightUnit,
		created.RIR, created.RPE, created.Duration, created.Distance, created.DistanceUnit, created.Tempo,
		created.RestTime, created.Notes, boolToInt(created.Completed), toMillis(created.CompletedAt),
		toMillis(now), toMillis(now))
	if err := row.Scan(&created.ID); err != nil {
		if isForeignKeyViolation(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("insert set: %w", err)
	}
	return &created, nil
}
