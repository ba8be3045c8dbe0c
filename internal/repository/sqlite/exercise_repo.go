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

// sqliteExerciseRepository implements repository.ExerciseRepository
type sqliteExerciseRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteExerciseRepository creates a new Exercise repository backed by SQLite.
func NewSQLiteExerciseRepository(db *sql.DB) repository.ExerciseRepository {
	return &sqliteExerciseRepository{db: db, now: time.Now}
}

func (r *sqliteExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error) {
	now := r.now().UTC().Truncate(time.Millisecond)
	created := *exercise
	created.ApplyDefaults()
	created.CreatedAt = now
	created.UpdatedAt = now

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO exercises (name, description, type, primary_muscle_group, secondary_muscle_group,
			equipment, instructions, video_url, is_custom, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`, created.Name, created.Description, string(created.Type), string(created.PrimaryMuscleGroup),
		created.SecondaryMuscleGroup, string(created.Equipment), created.Instructions, created.VideoURL,
		boolToInt(created.IsCustom), created.CreatedBy, toMillis(now), toMillis(now))
	if err := row.Scan(&created.ID); err != nil {
		return nil, fmt.Errorf("insert exercise: %w", err)
	}
	return &created, nil
}

func (r *sqliteExerciseRepository) GetByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+exerciseColumns+` FROM exercises WHERE id = ?`, id)
	e, err := scanExercise(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get exercise %d: %w", id, err)
	}
	return &e, nil
}

func (r *sqliteExerciseRepository) List(ctx context.Context, userID string) ([]domain.Exercise, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+exerciseColumns+`
		FROM exercises
		WHERE is_custom = 0 OR created_by = ?
		ORDER BY name, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	exercises := []domain.Exercise{}
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	return exercises, nil
}

func (r *sqliteExerciseRepository) Delete(ctx context.Context, userID string, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM exercises WHERE id = ? AND is_custom = 1 AND created_by = ?`, id, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrInUse
		}
		return fmt.Errorf("delete exercise %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete exercise %d: %w", id, err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
