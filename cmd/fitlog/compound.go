// ABOUTME: CLI commands for managing compounds.
// ABOUTME: Supports add, list, show, edit, and delete.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fitlog/internal/dosesim"
	"fitlog/internal/models"
)

var (
	compoundHalfLife float64
	compoundStart    string

	editName     string
	editHalfLife float64
	editStart    string
)

var compoundCmd = &cobra.Command{
	Use:     "compound",
	Aliases: []string{"c"},
	Short:   "Manage tracked compounds",
	Long: `Manage tracked compounds.

A compound decays with a single exponential half-life. The start date
anchors the decay series: doses logged before it are ignored by the
series view, so pick a date on or before your first dose.

Examples:
  fitlog compound add "Compound A" --half-life 1.5 --start 2026-01-01
  fitlog compound list
  fitlog compound show a3f
  fitlog compound edit a3f --half-life 2
  fitlog compound delete a3f`,
}

var compoundAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a compound",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if compoundStart == "" {
			compoundStart = dosesim.Today().String()
		}
		start, err := dosesim.ParseDate(compoundStart)
		if err != nil {
			return fmt.Errorf("invalid start date: %s (use YYYY-MM-DD)", compoundStart)
		}

		c := models.NewCompound(args[0], compoundHalfLife, start)
		if err := c.Validate(); err != nil {
			return err
		}

		if err := repo.CreateCompound(c); err != nil {
			return fmt.Errorf("failed to create compound: %w", err)
		}

		color.Green("✓ Added %s", c.Name)
		fmt.Printf("  %s half-life %.2g days, tracking from %s\n",
			color.New(color.Faint).Sprint(c.ID.String()[:8]),
			c.HalfLifeDays, c.StartDate)

		return nil
	},
}

var compoundListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List compounds",
	RunE: func(cmd *cobra.Command, args []string) error {
		compounds, err := repo.ListCompounds(0)
		if err != nil {
			return fmt.Errorf("failed to list compounds: %w", err)
		}

		if len(compounds) == 0 {
			fmt.Println("No compounds found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, c := range compounds {
			fmt.Printf("%s %s half-life %.2g days, from %s\n",
				faint.Sprint(c.ID.String()[:8]),
				padRight(truncate(c.Name, 24), 24),
				c.HalfLifeDays,
				c.StartDate)
		}

		return nil
	},
}

var compoundShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a compound and its dose ledger",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := repo.GetCompound(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", color.New(color.Bold).Sprint(c.Name))
		fmt.Printf("  ID:        %s\n", c.ID)
		fmt.Printf("  Half-life: %.2g days\n", c.HalfLifeDays)
		fmt.Printf("  Start:     %s\n", c.StartDate)

		doses, err := repo.ListDoses(c.ID)
		if err != nil {
			return fmt.Errorf("failed to list doses: %w", err)
		}

		if len(doses) == 0 {
			fmt.Println("\nNo doses recorded.")
			return nil
		}

		fmt.Printf("\nDoses (%d):\n", len(doses))
		for _, d := range doses {
			fmt.Printf("  %s  %8.2f mg\n", d.DoseDate, d.DoseAmount)
		}

		return nil
	},
}

var compoundEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a compound",
	Long: `Edit a compound's name, half-life, or start date.

Only the flags you pass change; everything else keeps its stored value.
Changing the half-life or start date reshapes the series view on the
next computation, the dose ledger itself is untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := repo.GetCompound(args[0])
		if err != nil {
			return err
		}

		if editName != "" {
			c.Name = editName
		}
		if cmd.Flags().Changed("half-life") {
			c.HalfLifeDays = editHalfLife
		}
		if editStart != "" {
			start, err := dosesim.ParseDate(editStart)
			if err != nil {
				return fmt.Errorf("invalid start date: %s (use YYYY-MM-DD)", editStart)
			}
			c.StartDate = start
		}

		if err := c.Validate(); err != nil {
			return err
		}

		if err := repo.UpdateCompound(c); err != nil {
			return fmt.Errorf("failed to update compound: %w", err)
		}

		color.Green("✓ Updated %s", c.Name)
		return nil
	},
}

var compoundDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a compound and its dose history",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := repo.GetCompound(args[0])
		if err != nil {
			return err
		}

		if err := repo.DeleteCompound(args[0]); err != nil {
			return fmt.Errorf("failed to delete compound: %w", err)
		}

		color.Green("✓ Deleted %s", c.Name)
		return nil
	},
}

func init() {
	compoundAddCmd.Flags().Float64Var(&compoundHalfLife, "half-life", 0, "half-life in days (required)")
	compoundAddCmd.Flags().StringVar(&compoundStart, "start", "", "tracking start date (default: today)")
	_ = compoundAddCmd.MarkFlagRequired("half-life")

	compoundEditCmd.Flags().StringVar(&editName, "name", "", "new name")
	compoundEditCmd.Flags().Float64Var(&editHalfLife, "half-life", 0, "new half-life in days")
	compoundEditCmd.Flags().StringVar(&editStart, "start", "", "new start date (YYYY-MM-DD)")

	compoundCmd.AddCommand(compoundAddCmd)
	compoundCmd.AddCommand(compoundListCmd)
	compoundCmd.AddCommand(compoundShowCmd)
	compoundCmd.AddCommand(compoundEditCmd)
	compoundCmd.AddCommand(compoundDeleteCmd)
	rootCmd.AddCommand(compoundCmd)
}
