package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"alcyxob/workout-log/internal/domain"
	"alcyxob/workout-log/internal/repository"
)

// postgresWorkoutRepository implements repository.WorkoutRepository
type postgresWorkoutRepository struct {
	db  Querier
	now func() time.Time
}

// NewPostgresWorkoutRepository creates a new Workout repository backed by PostgreSQL.
func NewPostgresWorkoutRepository(db Querier) repository.WorkoutRepository {
	return &postgresWorkoutRepository{db: db, now: time.Now}
}

func (r *postgresWorkoutRepository) ListByUserBetween(ctx context.Context, userID string, start, end time.Time) ([]domain.WorkoutDetail, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+workoutColumns+`
		FROM workouts
		WHERE user_id = $1 AND started_at >= $2 AND started_at < $3
		ORDER BY started_at DESC, id DESC
	`, userID, start, end)
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
	return r.hydrate(ctx, workouts)
}

func (r *postgresWorkoutRepository) GetByIDForUser(ctx context.Context, userID string, id int64) (*domain.Workout, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+workoutColumns+`
		FROM workouts WHERE id = $1 AND user_id = $2
	`, id, userID)
	w, err := scanWorkout(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get workout %d: %w", id, err)
	}
	return &w, nil
}

func (r *postgresWorkoutRepository) GetDetailByIDForUser(ctx context.Context, userID string, id int64) (*domain.WorkoutDetail, error) {
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

// hydrate loads the exercises and sets of the given workouts with one query per level.
func (r *postgresWorkoutRepository) hydrate(ctx context.Context, workouts []domain.Workout) ([]domain.WorkoutDetail, error) {
	if len(workouts) == 0 {
		return repository.Assemble(nil, nil, nil), nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+workoutExerciseColumns+`
		FROM workout_exercises we
		JOIN exercises e ON e.id = we.exercise_id
		WHERE we.workout_id = ANY($1)
		ORDER BY we.workout_id, we.order_index, we.id
	`, repository.WorkoutIDs(workouts))
	if err != nil {
		return nil, fmt.Errorf("list workout exercises: %w", err)
	}
	var exercises []domain.WorkoutExerciseDetail
	for rows.Next() {
		we, err := scanWorkoutExercise(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan workout exercise: %w", err)
		}
		exercises = append(exercises, we)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list workout exercises: %w", err)
	}

	var sets []domain.Set
	if len(exercises) > 0 {
		rows, err := r.db.Query(ctx, `
			SELECT `+setColumns+`
			FROM sets
			WHERE workout_exercise_id = ANY($1)
			ORDER BY workout_exercise_id, set_number, id
		`, repository.WorkoutExerciseIDs(exercises))
		if err != nil {
			return nil, fmt.Errorf("list sets: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			s, err := scanSet(rows)
			if err != nil {
				return nil, fmt.Errorf("scan set: %w", err)
			}
			sets = append(sets, s)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("list sets: %w", err)
		}
	}

	return repository.Assemble(workouts, exercises, sets), nil
}

func (r *postgresWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (*domain.Workout, error) {
	created := *workout
	if created.StartedAt.IsZero() {
		created.StartedAt = r.now()
	}
	created.StartedAt = created.StartedAt.UTC()

	row := r.db.QueryRow(ctx, `
		INSERT INTO workouts (user_id, name, notes, started_at, completed_at, duration)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, created.UserID, created.Name, created.Notes, created.StartedAt, created.CompletedAt, created.Duration)
	if err := row.Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert workout: %w", err)
	}
	created.CreatedAt = created.CreatedAt.UTC()
	created.UpdatedAt = created.UpdatedAt.UTC()
	return &created, nil
}

func (r *postgresWorkoutRepository) UpdateForUser(ctx context.Context, userID string, id int64, name string, notes *string) (*domain.Workout, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE workouts
		SET name = $3, notes = $4, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING `+workoutColumns, id, userID, name, notes)
	w, err := scanWorkout(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("update workout %d: %w", id, err)
	}
	return &w, nil
}

func (r *postgresWorkoutRepository) DeleteForUser(ctx context.Context, userID string, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM workouts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete workout %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *postgresWorkoutRepository) AddExercise(ctx context.Context, we *domain.WorkoutExercise) (*domain.WorkoutExercise, error) {
	created := *we
	created.ApplyDefaults()

	row := r.db.QueryRow(ctx, `
		INSERT INTO workout_exercises (workout_id, exercise_id, order_index, notes, target_sets, target_reps, target_weight, target_weight_unit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, created.WorkoutID, created.ExerciseID, created.OrderIndex, created.Notes, created.TargetSets,
		created.TargetReps, created.TargetWeight, created.TargetWeightUnit)
	if err := row.Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("insert workout exercise: %w", err)
	}
	created.CreatedAt = created.CreatedAt.UTC()
	created.UpdatedAt = created.UpdatedAt.UTC()
	return &created, nil
}

func (r *postgresWorkoutRepository) AddSet(ctx context.Context, set *domain.Set) (*domain.Set, error) {
	created := *set
	created.ApplyDefaults(r.now().UTC())
	created.CompletedAt = created.CompletedAt.UTC()

	row := r.db.QueryRow(ctx, `
		INSERT INTO sets (workout_exercise_id, set_number, reps, weight, weight_unit, rir, rpe, duration,
			distance, distance_unit, tempo, rest_time, notes, completed, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`, created.WorkoutExerciseID, created.SetNumber, created.Reps, created.Weight, created.WeightUnit,
		created.RIR, created.RPE, created.Duration, created.Distance, created.DistanceUnit, created.Tempo,
		created.RestTime, created.Notes, boolToInt(created.Completed), created.CompletedAt)
	if err := row.Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("insert set: %w", err)
	}
	created.CreatedAt = created.CreatedAt.UTC()
	created.UpdatedAt = created.UpdatedAt.UTC()
	return &created, nil
}
