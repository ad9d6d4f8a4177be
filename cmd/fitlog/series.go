// ABOUTME: CLI command for the dose decay series view.
// ABOUTME: Prints a daily table with an ASCII bar chart of active dose.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fitlog/internal/dosesim"
	"fitlog/internal/models"
)

var (
	seriesDays int
	seriesAll  bool
)

const seriesBarWidth = 40

var seriesCmd = &cobra.Command{
	Use:   "series <compound>",
	Short: "Show the decay series for a compound",
	Long: `Show the daily decay series for a compound.

The series runs from the compound's start date through today plus the
forecast horizon. Each day shows the dose added that day (if any) and
the total active amount after adding it, with a bar scaled to the peak.

Examples:
  fitlog series comp             # Forecast 30 days past today
  fitlog series comp --days 90   # Longer forecast
  fitlog series comp --all       # Include every day, not just recent ones`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := repo.GetCompound(args[0])
		if err != nil {
			return err
		}

		doses, err := repo.ListDoses(c.ID)
		if err != nil {
			return fmt.Errorf("failed to list doses: %w", err)
		}

		days := seriesDays
		if !cmd.Flags().Changed("days") {
			days = cfg.GetForecastDays()
		}

		end := dosesim.Today().AddDays(days)
		rows := dosesim.ComputeSeries(c.StartDate, c.HalfLifeDays, models.SimDoses(doses), end)
		if len(rows) == 0 {
			fmt.Println("Nothing to show: the start date is after the series end.")
			return nil
		}

		// Scale bars to the series peak.
		var peak float64
		for _, r := range rows {
			if r.ActiveDose > peak {
				peak = r.ActiveDose
			}
		}

		// Without --all, show the last two weeks plus the forecast.
		visible := rows
		if !seriesAll {
			visible = recentWindow(rows, dosesim.Today().AddDays(-14))
		}

		fmt.Printf("%s  half-life %.2g days, peak %.2f mg\n\n",
			color.New(color.Bold).Sprint(c.Name), c.HalfLifeDays, peak)

		faint := color.New(color.Faint)
		today := dosesim.Today()
		for _, r := range visible {
			marker := " "
			if r.Date == today {
				marker = color.YellowString("◀")
			}

			added := "        "
			if r.AddedDose != 0 {
				added = color.GreenString("%+7.2f ", r.AddedDose)
			}

			fmt.Printf("%s %s %8.2f %s%s\n",
				faint.Sprint(r.Date),
				added,
				r.ActiveDose,
				bar(r.ActiveDose, peak),
				marker)
		}

		return nil
	},
}

// recentWindow trims rows to those on or after cutoff. The series always
// runs through today plus the forecast, so normally some row survives;
// if every row predates the cutoff, the full series is returned rather
// than an empty view.
func recentWindow(rows []dosesim.Row, cutoff dosesim.Date) []dosesim.Row {
	for i, r := range rows {
		if !r.Date.Before(cutoff) {
			return rows[i:]
		}
	}
	return rows
}

// bar renders a fixed-width bar proportional to value/peak.
func bar(value, peak float64) string {
	if peak <= 0 {
		return ""
	}
	n := int(value / peak * seriesBarWidth)
	if n < 0 {
		n = 0
	}
	if value > 0 && n == 0 {
		n = 1
	}
	return color.CyanString(strings.Repeat("█", n))
}

func init() {
	seriesCmd.Flags().IntVar(&seriesDays, "days", 30, "forecast days past today")
	seriesCmd.Flags().BoolVar(&seriesAll, "all", false, "show the full series from the start date")
	rootCmd.AddCommand(seriesCmd)
}
