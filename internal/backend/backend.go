// Package backend opens the storage backend selected by configuration.
package backend

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"alcyxob/workout-log/internal/config"
	"alcyxob/workout-log/internal/repository"
	"alcyxob/workout-log/internal/repository/mongo"
	"alcyxob/workout-log/internal/repository/postgres"
	"alcyxob/workout-log/internal/repository/sqlite"
)

// Backend bundles the repositories of one storage engine.
type Backend struct {
	Driver    string
	Workouts  repository.WorkoutRepository
	Exercises repository.ExerciseRepository

	migrate func(ctx context.Context) error
	close   func() error
}

// Open connects to the configured engine. An empty driver means sqlite.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Backend, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		return openSQLite(cfg.Path)
	case config.DriverPostgres:
		return openPostgres(ctx, cfg.URL)
	case config.DriverMongo:
		return openMongo(cfg.URI, cfg.Name)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Migrate creates the schema, or the indexes for document stores. It is idempotent.
func (b *Backend) Migrate(ctx context.Context) error {
	return b.migrate(ctx)
}

func (b *Backend) Close() error {
	return b.close()
}

func openSQLite(path string) (*Backend, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	log.Printf("INFO: Using SQLite database at %s", path)
	return &Backend{
		Driver:    config.DriverSQLite,
		Workouts:  sqlite.NewSQLiteWorkoutRepository(db),
		Exercises: sqlite.NewSQLiteExerciseRepository(db),
		migrate:   func(ctx context.Context) error { return sqlite.Migrate(ctx, db) },
		close:     db.Close,
	}, nil
}

func openPostgres(ctx context.Context, url string) (*Backend, error) {
	if url == "" {
		return nil, errors.New("database.url is required for the postgres driver")
	}
	pool, err := postgres.ConnectDB(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	log.Println("INFO: Connected to PostgreSQL")
	return &Backend{
		Driver:    config.DriverPostgres,
		Workouts:  postgres.NewPostgresWorkoutRepository(pool),
		Exercises: postgres.NewPostgresExerciseRepository(pool),
		migrate:   func(ctx context.Context) error { return postgres.Migrate(ctx, pool) },
		close:     closePool(pool),
	}, nil
}

func closePool(pool *pgxpool.Pool) func() error {
	return func() error {
		pool.Close()
		return nil
	}
}

func openMongo(uri, name string) (*Backend, error) {
	client, err := mongo.ConnectDB(uri)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	log.Printf("INFO: Connected to MongoDB database %s", name)
	db := client.Database(name)
	return &Backend{
		Driver:    config.DriverMongo,
		Workouts:  mongo.NewMongoWorkoutRepository(db),
		Exercises: mongo.NewMongoExerciseRepository(db),
		migrate:   func(ctx context.Context) error { return mongo.EnsureIndexes(ctx, db) },
		close:     closeMongo(client),
	}, nil
}

func closeMongo(client *mongodriver.Client) func() error {
	return func() error { return mongo.DisconnectDB(client) }
}
