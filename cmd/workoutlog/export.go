package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"alcyxob/workout-log/internal/domain"
	"alcyxob/workout-log/internal/service"
)

var (
	exportUser   string
	exportFrom   string
	exportTo     string
	exportTZ     string
	exportFormat string
	exportOutput string

	importUser string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a user's workouts",
	Long: `Export the workouts a user started between two local dates (inclusive).

FORMATS:

  json   Full export, suitable for import
  yaml   Same document, human-readable

EXAMPLES:

  workoutlog export --user user_123 --from 2026-01-01 --to 2026-01-31 --tz Europe/Berlin
  workoutlog export --user user_123 --from 2026-01-27 --to 2026-01-29 --tz UTC --format yaml -o week.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exports := service.NewExportService(store.Workouts, store.Exercises, nil, cfg.Export.URLExpiry)
		doc, err := exports.Build(cmd.Context(), domain.Principal{UserID: exportUser}, service.ExportRequest{
			From:     exportFrom,
			To:       exportTo,
			Timezone: exportTZ,
			Format:   exportFormat,
		})
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		data, _, err := service.Encode(doc, exportFormat)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported %d workouts to %s", len(doc.Workouts), exportOutput)
		} else {
			fmt.Println(string(data))
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import workouts from an export file",
	Long: `Import workouts from a JSON or YAML export into the given user's log.

Exercises are matched to the catalog by name. Unknown names become custom
exercises of the user. Import stops at the first invalid record. The
workout holding that record is removed again; earlier workouts are kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]
		if err := ensureSchema(cmd.Context()); err != nil {
			return err
		}

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		doc, err := service.Decode(data, service.FormatFromPath(filename))
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		exports := service.NewExportService(store.Workouts, store.Exercises, nil, cfg.Export.URLExpiry)
		result, err := exports.Import(cmd.Context(), domain.Principal{UserID: importUser}, doc)
		if result != nil && result.Workouts > 0 && err != nil {
			color.Yellow("! %d complete workouts were imported before the error", result.Workouts)
		}
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported from %s", filename)
		fmt.Printf("  Workouts:          %d\n", result.Workouts)
		fmt.Printf("  Workout exercises: %d\n", result.WorkoutExercises)
		fmt.Printf("  Sets:              %d\n", result.Sets)
		fmt.Printf("  New exercises:     %d\n", result.CreatedExercises)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportUser, "user", "", "user id whose workouts are exported")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "first local date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "last local date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportTZ, "tz", "UTC", "IANA timezone the dates are in")
	exportCmd.Flags().StringVar(&exportFormat, "format", service.FormatJSON, "json or yaml")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	for _, name := range []string{"user", "from", "to"} {
		_ = exportCmd.MarkFlagRequired(name)
	}

	importCmd.Flags().StringVar(&importUser, "user", "", "user id that receives the workouts")
	_ = importCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
