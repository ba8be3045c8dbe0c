package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"alcyxob/workout-log/internal/api"
	"alcyxob/workout-log/internal/backend"
	"alcyxob/workout-log/internal/config"
	"alcyxob/workout-log/internal/service"
	"alcyxob/workout-log/internal/storage"
)

func main() {
	log.Println("Starting Workout Log Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Printf("Configuration loaded (database driver %q).", cfg.Database.Driver)

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := backend.Open(ctx, cfg.Database)
	cancel()
	if err != nil {
		log.Fatalf("FATAL: Could not open database: %v", err)
	}
	defer func() {
		log.Println("Closing database...")
		if err := store.Close(); err != nil {
			log.Printf("ERROR: Failed to close database: %v", err)
		}
	}()

	// --- Schema / Indexes ---
	migrate := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		return store.Migrate(ctx)
	}
	if store.Driver == config.DriverMongo {
		log.Println("Ensuring database indexes...")
		go func() { // Index creation runs in the background
			if err := migrate(); err != nil {
				log.Printf("WARN: Index creation failed: %v", err)
				return
			}
			log.Println("Index creation process completed.")
		}()
	} else {
		if err := migrate(); err != nil {
			log.Fatalf("FATAL: Could not migrate database: %v", err)
		}
		log.Println("Database schema is up to date.")
	}

	// --- Initialize Storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled() {
		log.Println("Initializing file storage service...")
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
		}
	} else {
		log.Println("WARN: No S3 bucket configured, exports are disabled.")
	}

	// --- Initialize Services ---
	log.Println("Initializing services...")
	tokenService := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Expiration)
	workoutService := service.NewWorkoutService(store.Workouts)
	exerciseService := service.NewExerciseService(store.Exercises)
	exportService := service.NewExportService(store.Workouts, store.Exercises, fileStorage, cfg.Export.URLExpiry)

	// --- Initialize Gin Engine ---
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	// --- Setup Routes ---
	log.Println("Setting up routes...")
	api.SetupRoutes(router, tokenService, workoutService, exerciseService, exportService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
