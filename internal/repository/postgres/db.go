package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// foreignKeyViolation is the SQLSTATE raised when a REFERENCES constraint rejects a write.
const foreignKeyViolation = "23503"

// Querier represents the minimal database operations used by the repositories.
// Both *pgxpool.Pool and pgxmock pools satisfy this interface.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ConnectDB opens a pool for the given connection string and pings it.
func ConnectDB(ctx context.Context, url string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

const schema = `
DO $$ BEGIN
	CREATE TYPE exercise_type AS ENUM ('strength', 'cardio', 'flexibility', 'balance', 'plyometric', 'other');
EXCEPTION WHEN duplicate_object THEN NULL;
END $$;

DO $$ BEGIN
	CREATE TYPE equipment AS ENUM ('barbell', 'dumbbell', 'kettlebell', 'machine', 'cable', 'bodyweight',
		'resistance_band', 'medicine_ball', 'box', 'rower', 'bike', 'treadmill', 'other', 'none');
EXCEPTION WHEN duplicate_object THEN NULL;
END $$;

DO $$ BEGIN
	CREATE TYPE muscle_group AS ENUM ('chest', 'back', 'shoulders', 'biceps', 'triceps', 'forearms', 'abs',
		'obliques', 'quads', 'hamstrings', 'glutes', 'calves', 'full_body', 'cardio');
EXCEPTION WHEN duplicate_object THEN NULL;
END $$;

CREATE TABLE IF NOT EXISTS exercises (
	id                     BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	name                   TEXT NOT NULL,
	description            TEXT,
	type                   exercise_type NOT NULL DEFAULT 'strength',
	primary_muscle_group   muscle_group NOT NULL,
	secondary_muscle_group muscle_group,
	equipment              equipment NOT NULL DEFAULT 'bodyweight',
	instructions           TEXT,
	video_url              TEXT,
	is_custom              INTEGER NOT NULL DEFAULT 0,
	created_by             TEXT,
	created_at             TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at             TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS exercises_name_idx ON exercises(name);
CREATE INDEX IF NOT EXISTS exercises_type_idx ON exercises(type);
CREATE INDEX IF NOT EXISTS exercises_muscle_group_idx ON exercises(primary_muscle_group);
CREATE INDEX IF NOT EXISTS exercises_created_by_idx ON exercises(created_by);

CREATE TABLE IF NOT EXISTS workouts (
	id           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	user_id      TEXT NOT NULL,
	name         TEXT,
	notes        TEXT,
	started_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	completed_at TIMESTAMPTZ,
	duration     INTEGER,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS workouts_user_id_idx ON workouts(user_id);
CREATE INDEX IF NOT EXISTS workouts_started_at_idx ON workouts(started_at);
CREATE INDEX IF NOT EXISTS workouts_completed_at_idx ON workouts(completed_at);
CREATE INDEX IF NOT EXISTS workouts_user_started_idx ON workouts(user_id, started_at);

CREATE TABLE IF NOT EXISTS workout_exercises (
	id                 BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	workout_id         BIGINT NOT NULL REFERENCES workouts(id) ON DELETE CASCADE,
	exercise_id        BIGINT NOT NULL REFERENCES exercises(id) ON DELETE RESTRICT,
	order_index        INTEGER NOT NULL DEFAULT 1,
	notes              TEXT,
	target_sets        INTEGER,
	target_reps        INTEGER,
	target_weight      DOUBLE PRECISION,
	target_weight_unit TEXT DEFAULT 'lbs',
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS workout_exercises_workout_id_idx ON workout_exercises(workout_id);
CREATE INDEX IF NOT EXISTS workout_exercises_exercise_id_idx ON workout_exercises(exercise_id);
CREATE INDEX IF NOT EXISTS workout_exercises_order_idx ON workout_exercises(workout_id, order_index);

CREATE TABLE IF NOT EXISTS sets (
	id                  BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	workout_exercise_id BIGINT NOT NULL REFERENCES workout_exercises(id) ON DELETE CASCADE,
	set_number          INTEGER NOT NULL DEFAULT 1,
	reps                INTEGER,
	weight              DOUBLE PRECISION,
	weight_unit         TEXT DEFAULT 'lbs',
	rir                 INTEGER,
	rpe                 DOUBLE PRECISION,
	duration            INTEGER,
	distance            DOUBLE PRECISION,
	distance_unit       TEXT,
	tempo               TEXT,
	rest_time           INTEGER,
	notes               TEXT,
	completed           INTEGER NOT NULL DEFAULT 1,
	completed_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS sets_workout_exercise_id_idx ON sets(workout_exercise_id);
CREATE INDEX IF NOT EXISTS sets_set_number_idx ON sets(workout_exercise_id, set_number);
CREATE INDEX IF NOT EXISTS sets_completed_at_idx ON sets(completed_at);
`

// Migrate ensures the enums, tables and indexes exist. It is safe to run repeatedly.
func Migrate(ctx context.Context, q Querier) error {
	_, err := q.Exec(ctx, schema)
	return err
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// utcPtr normalizes a nullable timestamp read from the driver.
func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
