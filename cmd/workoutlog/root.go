package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"alcyxob/workout-log/internal/backend"
	"alcyxob/workout-log/internal/config"
)

var (
	configPath string

	cfg   config.Config
	store *backend.Backend
)

var rootCmd = &cobra.Command{
	Use:   "workoutlog",
	Short: "Administer the workout log",
	Long: `workoutlog manages the workout log database outside the web server.

It reads the same config.yaml and environment variables as the server,
so DATABASE_DRIVER, DATABASE_PATH, DATABASE_URL and JWT_SECRET apply here too.

EXAMPLES:

  workoutlog migrate
  workoutlog seed --user user_123
  workoutlog token --user user_123
  workoutlog export --user user_123 --from 2026-01-01 --to 2026-01-31 --tz Europe/Berlin -o jan.json
  workoutlog import --user user_123 jan.json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if !needsDatabase(cmd) {
			return nil
		}
		store, err = backend.Open(cmd.Context(), cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

func needsDatabase(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "token", "help", "version":
		return false
	}
	return true
}

// ensureSchema makes every data command safe to run on a fresh database.
func ensureSchema(ctx context.Context) error {
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "directory containing config.yaml")
}
