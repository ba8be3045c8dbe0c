// Package sqlite stores workouts in an embedded SQLite file using modernc.org/sqlite (pure Go, no CGO).
// Timestamps are stored as INTEGER unix milliseconds in UTC so range filters compare numerically.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Open opens or creates the database at path with foreign keys enforced.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	// Pragmas in the DSN run on every new connection.
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single writer avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS exercises (
	id                     INTEGER PRIMARY KEY AUTOINCREMENT,
	name                   TEXT NOT NULL,
	description            TEXT,
	type                   TEXT NOT NULL DEFAULT 'strength'
		CHECK (type IN ('strength', 'cardio', 'flexibility', 'balance', 'plyometric', 'other')),
	primary_muscle_group   TEXT NOT NULL,
	secondary_muscle_group TEXT,
	equipment              TEXT NOT NULL DEFAULT 'bodyweight',
	instructions           TEXT,
	video_url              TEXT,
	is_custom              INTEGER NOT NULL DEFAULT 0,
	created_by             TEXT,
	created_at             INTEGER NOT NULL,
	updated_at             INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS exercises_name_idx ON exercises(name);
CREATE INDEX IF NOT EXISTS exercises_created_by_idx ON exercises(created_by);

CREATE TABLE IF NOT EXISTS workouts (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id      TEXT NOT NULL,
	name         TEXT,
	notes        TEXT,
	started_at   INTEGER NOT NULL,
	completed_at INTEGER,
	duration     INTEGER,
	created_at   INTEGER NOT NULL,
	updated_at   INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS workouts_user_started_idx ON workouts(user_id, started_at);

CREATE TABLE IF NOT EXISTS workout_exercises (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	workout_id         INTEGER NOT NULL REFERENCES workouts(id) ON DELETE CASCADE,
	exercise_id        INTEGER NOT NULL REFERENCES exercises(id) ON DELETE RESTRICT,
	order_index        INTEGER NOT NULL DEFAULT 1,
	notes              TEXT,
	target_sets        INTEGER,
	target_reps        INTEGER,
	target_weight      REAL,
	target_weight_unit TEXT DEFAULT 'lbs',
	created_at         INTEGER NOT NULL,
	updated_at         INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS workout_exercises_workout_id_idx ON workout_exercises(workout_id, order_index);
CREATE INDEX IF NOT EXISTS workout_exercises_exercise_id_idx ON workout_exercises(exercise_id);

CREATE TABLE IF NOT EXISTS sets (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	workout_exercise_id INTEGER NOT NULL REFERENCES workout_exercises(id) ON DELETE CASCADE,
	set_number          INTEGER NOT NULL DEFAULT 1,
	reps                INTEGER,
	weight              REAL,
	weight_unit         TEXT DEFAULT 'lbs',
	rir                 INTEGER,
	rpe                 REAL,
	duration            INTEGER,
	distance            REAL,
	distance_unit       TEXT,
	tempo               TEXT,
	rest_time           INTEGER,
	notes               TEXT,
	completed           INTEGER NOT NULL DEFAULT 1,
	completed_at        INTEGER NOT NULL,
	created_at          INTEGER NOT NULL,
	updated_at          INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS sets_workout_exercise_id_idx ON sets(workout_exercise_id, set_number);
`

// Migrate creates the tables and indexes. It is safe to run repeatedly.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func isForeignKeyViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY ||
		(sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqliteErr.Error(), "FOREIGN KEY"))
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func nullMillis(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixMilli(), Valid: true}
}

func timePtr(ms sql.NullInt64) *time.Time {
	if !ms.Valid {
		return nil
	}
	t := fromMillis(ms.Int64)
	return &t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// placeholders returns "?, ?, ?" for n arguments along with the ids as driver args.
func placeholders(ids []int64) (string, []any) {
	marks := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		marks[i] = "?"
		args[i] = id
	}
	return strings.Join(marks, ", "), args
}
