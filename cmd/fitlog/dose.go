// ABOUTME: CLI commands for the dose ledger.
// ABOUTME: set overwrites per-date amounts; zero clears a day.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fitlog/internal/dosesim"
)

var doseCmd = &cobra.Command{
	Use:     "dose",
	Aliases: []string{"d"},
	Short:   "Record compound doses",
	Long: `Record compound doses.

The ledger keeps one amount per compound per date. Setting a dose for a
date that already has one replaces it, it never adds to it. To correct
a typo, just set the right amount; to undo a day entirely, use zero.

Examples:
  fitlog dose set comp 2026-01-05 50
  fitlog dose set comp today 50
  fitlog dose zero comp 2026-01-05
  fitlog dose list comp`,
}

// parseDoseDate accepts YYYY-MM-DD or the literal "today".
func parseDoseDate(s string) (dosesim.Date, error) {
	if s == "today" {
		return dosesim.Today(), nil
	}
	return dosesim.ParseDate(s)
}

var doseSetCmd = &cobra.Command{
	Use:   "set <compound> <date> <amount>",
	Short: "Set the dose for a date",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := repo.GetCompound(args[0])
		if err != nil {
			return err
		}

		date, err := parseDoseDate(args[1])
		if err != nil {
			return fmt.Errorf("invalid date: %s (use YYYY-MM-DD or 'today')", args[1])
		}

		amount, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid amount: %s", args[2])
		}
		if amount < 0 {
			return fmt.Errorf("dose amount must be non-negative")
		}

		if _, err := repo.UpsertDose(c.ID, date, amount); err != nil {
			return fmt.Errorf("failed to save dose: %w", err)
		}

		color.Green("✓ Set %s dose", c.Name)
		fmt.Printf("  %s  %.2f mg\n", date, amount)

		return nil
	},
}

var doseZeroCmd = &cobra.Command{
	Use:   "zero <compound> <date>",
	Short: "Clear the dose for a date",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := repo.GetCompound(args[0])
		if err != nil {
			return err
		}

		date, err := parseDoseDate(args[1])
		if err != nil {
			return fmt.Errorf("invalid date: %s (use YYYY-MM-DD or 'today')", args[1])
		}

		if _, err := repo.UpsertDose(c.ID, date, 0); err != nil {
			return fmt.Errorf("failed to clear dose: %w", err)
		}

		color.Green("✓ Cleared %s dose on %s", c.Name, date)
		return nil
	},
}

var doseListCmd = &cobra.Command{
	Use:     "list <compound>",
	Aliases: []string{"ls"},
	Short:   "List recorded doses for a compound",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := repo.GetCompound(args[0])
		if err != nil {
			return err
		}

		doses, err := repo.ListDoses(c.ID)
		if err != nil {
			return fmt.Errorf("failed to list doses: %w", err)
		}

		if len(doses) == 0 {
			fmt.Println("No doses recorded.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, d := range doses {
			fmt.Printf("%s %s  %8.2f mg\n",
				faint.Sprint(d.ID.String()[:8]),
				d.DoseDate,
				d.DoseAmount)
		}

		return nil
	},
}

func init() {
	doseCmd.AddCommand(doseSetCmd)
	doseCmd.AddCommand(doseZeroCmd)
	doseCmd.AddCommand(doseListCmd)
	rootCmd.AddCommand(doseCmd)
}
