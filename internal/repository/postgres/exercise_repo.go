package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"alcyxob/workout-log/internal/domain"
	"alcyxob/workout-log/internal/repository"
)

// postgresExerciseRepository implements repository.ExerciseRepository
type postgresExerciseRepository struct {
	db Querier
}

// NewPostgresExerciseRepository creates a new Exercise repository backed by PostgreSQL.
func NewPostgresExerciseRepository(db Querier) repository.ExerciseRepository {
	return &postgresExerciseRepository{db: db}
}

func (r *postgresExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error) {
	created := *exercise
	created.ApplyDefaults()

	var secondary *string
	if created.SecondaryMuscleGroup != nil {
		s := string(*created.SecondaryMuscleGroup)
		secondary = &s
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO exercises (name, description, type, primary_muscle_group, secondary_muscle_group,
			equipment, instructions, video_url, is_custom, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, created.Name, created.Description, string(created.Type), string(created.PrimaryMuscleGroup), secondary,
		string(created.Equipment), created.Instructions, created.VideoURL, boolToInt(created.IsCustom), created.CreatedBy)
	if err := row.Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert exercise: %w", err)
	}
	created.CreatedAt = created.CreatedAt.UTC()
	created.UpdatedAt = created.UpdatedAt.UTC()
	return &created, nil
}

func (r *postgresExerciseRepository) GetByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	row := r.db.QueryRow(ctx, `SELECT `+exerciseColumns+` FROM exercises WHERE id = $1`, id)
	e, err := scanExercise(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get exercise %d: %w", id, err)
	}
	return &e, nil
}

func (r *postgresExerciseRepository) List(ctx context.Context, userID string) ([]domain.Exercise, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+exerciseColumns+`
		FROM exercises
		WHERE is_custom = 0 OR created_by = $1
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

func (r *postgresExerciseRepository) Delete(ctx context.Context, userID string, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM exercises WHERE id = $1 AND is_custom = 1 AND created_by = $2`, id, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrInUse
		}
		return fmt.Errorf("delete exercise %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
