package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/workout-log/internal/domain"
	"alcyxob/workout-log/internal/repository"
)

func ptr[T any](v T) *T { return &v }

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

var (
	workoutCols = []string{"id", "user_id", "name", "notes", "started_at", "completed_at", "duration", "created_at", "updated_at"}
	weCols      = []string{
		"id", "workout_id", "exercise_id", "order_index", "notes", "target_sets", "target_reps", "target_weight",
		"target_weight_unit", "created_at", "updated_at",
		"id", "name", "description", "type", "primary_muscle_group", "secondary_muscle_group", "equipment",
		"instructions", "video_url", "is_custom", "created_by", "created_at", "updated_at",
	}
	setCols = []string{
		"id", "workout_exercise_id", "set_number", "reps", "weight", "weight_unit", "rir", "rpe", "duration",
		"distance", "distance_unit", "tempo", "rest_time", "notes", "completed", "completed_at", "created_at", "updated_at",
	}
)

func weRow(id, workoutID, exerciseID int64, order int, name string, ts time.Time) []any {
	return []any{
		id, workoutID, exerciseID, order, (*string)(nil), (*int)(nil), (*int)(nil), (*float64)(nil), ptr("lbs"), ts, ts,
		exerciseID, name, (*string)(nil), domain.TypeStrength, domain.MuscleQuads, (*domain.MuscleGroup)(nil),
		domain.EquipmentBarbell, (*string)(nil), (*string)(nil), 0, (*string)(nil), ts, ts,
	}
}

func setRow(id, weID int64, number int, reps *int, weight *float64, ts time.Time) []any {
	return []any{
		id, weID, number, reps, weight, ptr("lbs"), (*int)(nil), (*float64)(nil), (*int)(nil),
		(*float64)(nil), (*string)(nil), (*string)(nil), (*int)(nil), (*string)(nil), 1, ts, ts, ts,
	}
}

func TestMigrate(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`CREATE TYPE exercise_type AS ENUM`).WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, Migrate(context.Background(), mock))
}

func TestListByUserBetweenEmpty(t *testing.T) {
	mock := newMock(t)
	start := time.Date(2026, 1, 27, 5, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Millisecond)

	mock.ExpectQuery(`FROM workouts\s+WHERE user_id = \$1 AND started_at >= \$2 AND started_at < \$3`).
		WithArgs("user-1", start, end).
		WillReturnRows(pgxmock.NewRows(workoutCols))

	got, err := NewPostgresWorkoutRepository(mock).ListByUserBetween(context.Background(), "user-1", start, end)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListByUserBetweenHydrates(t *testing.T) {
	mock := newMock(t)
	ts := time.Date(2026, 1, 27, 14, 0, 0, 0, time.UTC)
	start := time.Date(2026, 1, 27, 5, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Millisecond)

	mock.ExpectQuery(`FROM workouts`).
		WithArgs("user-1", start, end).
		WillReturnRows(pgxmock.NewRows(workoutCols).
			AddRow(int64(2), "user-1", ptr("Evening"), (*string)(nil), ts.Add(5*time.Hour), (*time.Time)(nil), (*int)(nil), ts, ts).
			AddRow(int64(1), "user-1", ptr("Leg Day"), ptr("heavy"), ts, ptr(ts.Add(75*time.Minute)), ptr(4500), ts, ts))

	mock.ExpectQuery(`FROM workout_exercises we\s+JOIN exercises e`).
		WithArgs([]int64{2, 1}).
		WillReturnRows(pgxmock.NewRows(weCols).
			AddRow(weRow(10, 1, 100, 1, "Back Squat", ts)...).
			AddRow(weRow(11, 1, 101, 2, "Deadlift", ts)...))

	mock.ExpectQuery(`FROM sets\s+WHERE workout_exercise_id = ANY\(\$1\)`).
		WithArgs([]int64{10, 11}).
		WillReturnRows(pgxmock.NewRows(setCols).
			AddRow(setRow(100, 10, 1, ptr(5), ptr(185.0), ts)...).
			AddRow(setRow(101, 10, 2, ptr(5), ptr(205.0), ts)...).
			AddRow(setRow(102, 11, 1, ptr(3), ptr(315.0), ts)...))

	got, err := NewPostgresWorkoutRepository(mock).ListByUserBetween(context.Background(), "user-1", start, end)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, int64(2), got[0].ID)
	assert.Empty(t, got[0].Exercises)

	legDay := got[1]
	assert.Equal(t, "Leg Day", *legDay.Name)
	require.NotNil(t, legDay.Duration)
	assert.Equal(t, 4500, *legDay.Duration)
	require.Len(t, legDay.Exercises, 2)
	assert.Equal(t, "Back Squat", legDay.Exercises[0].Exercise.Name)
	assert.Equal(t, domain.EquipmentBarbell, legDay.Exercises[0].Exercise.Equipment)
	require.Len(t, legDay.Exercises[0].Sets, 2)
	assert.Equal(t, 205.0, *legDay.Exercises[0].Sets[1].Weight)
	assert.True(t, legDay.Exercises[0].Sets[0].Completed)
	assert.Len(t, legDay.Exercises[1].Sets, 1)
}

func TestGetByIDForUserNotFound(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`FROM workouts WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(7), "intruder").
		WillReturnRows(pgxmock.NewRows(workoutCols))

	_, err := NewPostgresWorkoutRepository(mock).GetByIDForUser(context.Background(), "intruder", 7)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateWorkout(t *testing.T) {
	mock := newMock(t)
	now := time.Date(2026, 1, 27, 8, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO workouts`).
		WithArgs("user-1", ptr("Push Day"), (*string)(nil), now, (*time.Time)(nil), (*int)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(42), now, now))

	repo := NewPostgresWorkoutRepository(mock).(*postgresWorkoutRepository)
	repo.now = func() time.Time { return now }

	created, err := repo.Create(context.Background(), &domain.Workout{UserID: "user-1", Name: ptr("Push Day")})
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, now, created.StartedAt)
	assert.Equal(t, now, created.CreatedAt)
}

func TestUpdateForUserScopedToOwner(t *testing.T) {
	mock := newMock(t)
	ts := time.Date(2026, 1, 27, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`UPDATE workouts\s+SET name = \$3, notes = \$4`).
		WithArgs(int64(1), "someone-else", "Hijacked", (*string)(nil)).
		WillReturnRows(pgxmock.NewRows(workoutCols))

	mock.ExpectQuery(`UPDATE workouts`).
		WithArgs(int64(1), "user-1", "Leg Day II", ptr("felt strong")).
		WillReturnRows(pgxmock.NewRows(workoutCols).
			AddRow(int64(1), "user-1", ptr("Leg Day II"), ptr("felt strong"), ts, (*time.Time)(nil), (*int)(nil), ts, ts.Add(time.Hour)))

	repo := NewPostgresWorkoutRepository(mock)

	_, err := repo.UpdateForUser(context.Background(), "someone-else", 1, "Hijacked", nil)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	updated, err := repo.UpdateForUser(context.Background(), "user-1", 1, "Leg Day II", ptr("felt strong"))
	require.NoError(t, err)
	assert.Equal(t, "Leg Day II", *updated.Name)
	assert.Equal(t, ts.Add(time.Hour), updated.UpdatedAt)
}

func TestDeleteForUser(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`DELETE FROM workouts WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(3), "user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM workouts`).
		WithArgs(int64(3), "user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewPostgresWorkoutRepository(mock)
	require.NoError(t, repo.DeleteForUser(context.Background(), "user-1", 3))
	assert.ErrorIs(t, repo.DeleteForUser(context.Background(), "user-1", 3), repository.ErrNotFound)
}

func TestAddSetAppliesDefaults(t *testing.T) {
	mock := newMock(t)
	now := time.Date(2026, 1, 27, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO sets`).
		WithArgs(int64(10), 1, ptr(8), (*float64)(nil), ptr("lbs"), (*int)(nil), ptr(8.5), (*int)(nil),
			(*float64)(nil), (*string)(nil), (*string)(nil), (*int)(nil), (*string)(nil), 1, now).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(500), now, now))

	repo := NewPostgresWorkoutRepository(mock).(*postgresWorkoutRepository)
	repo.now = func() time.Time { return now }

	created, err := repo.AddSet(context.Background(), &domain.Set{WorkoutExerciseID: 10, Reps: ptr(8), RPE: ptr(8.5), Completed: true})
	require.NoError(t, err)
	assert.Equal(t, int64(500), created.ID)
	assert.Equal(t, 1, created.SetNumber)
	assert.Equal(t, "lbs", *created.WeightUnit)
	assert.Equal(t, now, created.CompletedAt)
}

func TestAddExerciseMissingParent(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO workout_exercises`).
		WithArgs(int64(99), int64(1), 1, (*string)(nil), (*int)(nil), (*int)(nil), (*float64)(nil), ptr("lbs")).
		WillReturnError(&pgconn.PgError{Code: foreignKeyViolation})

	_, err := NewPostgresWorkoutRepository(mock).AddExercise(context.Background(), &domain.WorkoutExercise{WorkoutID: 99, ExerciseID: 1})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
