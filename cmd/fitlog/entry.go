// ABOUTME: CLI commands for the exercise log.
// ABOUTME: Supports add, list with filters, and delete.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fitlog/internal/dosesim"
	"fitlog/internal/models"
	"fitlog/internal/storage"
)

var (
	entryQuant string
	entryQual  string

	entryListDate     string
	entryListFrom     string
	entryListTo       string
	entryListCategory string
	entryListLimit    int
)

var entryCmd = &cobra.Command{
	Use:     "entry",
	Aliases: []string{"e"},
	Short:   "Manage the exercise log",
	Long: `Manage the exercise log.

Each entry is one exercise on one date: a category (lifting or cardio),
the specific exercise, and optional quantitative and qualitative notes.

Examples:
  fitlog entry add 2026-01-05 lifting squat --quant "5x5 @ 100kg"
  fitlog entry add today cardio running --quant "5km 26:30" --qual "felt strong"
  fitlog entry list --category lifting
  fitlog entry list --from 2026-01-01 --to 2026-01-31
  fitlog entry delete a3f`,
}

var entryAddCmd = &cobra.Command{
	Use:   "add <date> <category> <exercise>",
	Short: "Log an exercise",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDoseDate(args[0])
		if err != nil {
			return fmt.Errorf("invalid date: %s (use YYYY-MM-DD or 'today')", args[0])
		}

		if !models.IsValidCategory(args[1]) {
			return fmt.Errorf("unknown category: %s\nValid categories: lifting, cardio", args[1])
		}

		e := models.NewExerciseEntry(date, models.Category(args[1]), args[2])
		if entryQuant != "" {
			e.WithQuantitative(entryQuant)
		}
		if entryQual != "" {
			e.WithQualitative(entryQual)
		}

		if err := repo.CreateEntry(e); err != nil {
			return fmt.Errorf("failed to create entry: %w", err)
		}

		color.Green("✓ Logged %s/%s", e.Category, e.SubExercise)
		fmt.Printf("  %s %s\n",
			color.New(color.Faint).Sprint(e.ID.String()[:8]),
			e.ExerciseDate)

		return nil
	},
}

var entryListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List exercise entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := storage.EntryFilter{Limit: entryListLimit}

		if entryListDate != "" {
			d, err := parseDoseDate(entryListDate)
			if err != nil {
				return fmt.Errorf("invalid date: %s", entryListDate)
			}
			filter.Date = &d
		}
		if entryListFrom != "" {
			d, err := dosesim.ParseDate(entryListFrom)
			if err != nil {
				return fmt.Errorf("invalid from date: %s", entryListFrom)
			}
			filter.From = &d
		}
		if entryListTo != "" {
			d, err := dosesim.ParseDate(entryListTo)
			if err != nil {
				return fmt.Errorf("invalid to date: %s", entryListTo)
			}
			filter.To = &d
		}
		if entryListCategory != "" {
			if !models.IsValidCategory(entryListCategory) {
				return fmt.Errorf("unknown category: %s", entryListCategory)
			}
			c := models.Category(entryListCategory)
			filter.Category = &c
		}

		entries, err := repo.ListEntries(filter)
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No entries found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, e := range entries {
			notes := ""
			if e.NotesQuantitative != nil && *e.NotesQuantitative != "" {
				notes = " " + truncate(*e.NotesQuantitative, 30)
			}
			if e.NotesQualitative != nil && *e.NotesQualitative != "" {
				notes += faint.Sprintf(" (%s)", truncate(*e.NotesQualitative, 30))
			}
			fmt.Printf("%s %s %s %s%s\n",
				faint.Sprint(e.ID.String()[:8]),
				e.ExerciseDate,
				padRight(string(e.Category), 8),
				padRight(truncate(e.SubExercise, 20), 20),
				notes)
		}

		return nil
	},
}

var entryDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an exercise entry",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.DeleteEntry(args[0]); err != nil {
			return err
		}

		color.Green("✓ Deleted entry %s", args[0])
		return nil
	},
}

func init() {
	entryAddCmd.Flags().StringVar(&entryQuant, "quant", "", "quantitative notes (sets/reps/weight, distance/time)")
	entryAddCmd.Flags().StringVar(&entryQual, "qual", "", "qualitative notes (how it felt)")

	entryListCmd.Flags().StringVar(&entryListDate, "date", "", "filter to a single date")
	entryListCmd.Flags().StringVar(&entryListFrom, "from", "", "filter from date (inclusive)")
	entryListCmd.Flags().StringVar(&entryListTo, "to", "", "filter to date (inclusive)")
	entryListCmd.Flags().StringVarP(&entryListCategory, "category", "c", "", "filter by category (lifting, cardio)")
	entryListCmd.Flags().IntVarP(&entryListLimit, "limit", "n", 20, "max number of results")

	entryCmd.AddCommand(entryAddCmd)
	entryCmd.AddCommand(entryListCmd)
	entryCmd.AddCommand(entryDeleteCmd)
	rootCmd.AddCommand(entryCmd)
}
