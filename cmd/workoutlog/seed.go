package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"alcyxob/workout-log/internal/seed"
)

var seedUser string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the exercise catalog and sample workouts",
	Long: `Insert the shared exercise catalog (skipping entries that already exist)
and three sample workouts for the given user.

Each run adds the sample workouts again.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureSchema(cmd.Context()); err != nil {
			return err
		}
		result, err := seed.Run(cmd.Context(), store.Workouts, store.Exercises, seedUser)
		if err != nil {
			return err
		}

		color.Green("✓ Seed completed")
		fmt.Printf("  Exercises:         %d\n", result.Exercises)
		fmt.Printf("  Workouts:          %d\n", result.Workouts)
		fmt.Printf("  Workout exercises: %d\n", result.WorkoutExercises)
		fmt.Printf("  Sets:              %d\n", result.Sets)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedUser, "user", "", "user id that owns the sample workouts")
	_ = seedCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(seedCmd)
}
