// ABOUTME: CLI command for exercise activity statistics.
// ABOUTME: Shows per-category counts and a monthly activity chart.
package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fitlog/internal/dosesim"
	"fitlog/internal/storage"
)

var statsYear int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show exercise activity statistics",
	Long: `Show exercise activity statistics for a year.

Counts entries per category and per exercise, plus a month-by-month
activity chart and a per-day heatmap for each category. Defaults to
the current year.

Examples:
  fitlog stats
  fitlog stats --year 2025`,
	RunE: func(cmd *cobra.Command, args []string) error {
		year := statsYear
		if year == 0 {
			year = dosesim.Today().Year
		}

		from := dosesim.Date{Year: year, Month: time.January, Day: 1}
		to := dosesim.Date{Year: year, Month: time.December, Day: 31}
		entries, err := repo.ListEntries(storage.EntryFilter{From: &from, To: &to})
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}

		if len(entries) == 0 {
			fmt.Printf("No entries in %d.\n", year)
			return nil
		}

		byCategory := make(map[string]int)
		byExercise := make(map[string]int)
		byMonth := make([]int, 13)
		activeDays := make(map[dosesim.Date]bool)
		dayCounts := map[string]map[dosesim.Date]int{
			"lifting": make(map[dosesim.Date]int),
			"cardio":  make(map[dosesim.Date]int),
		}

		for _, e := range entries {
			byCategory[string(e.Category)]++
			byExercise[string(e.Category)+"/"+e.SubExercise]++
			byMonth[int(e.ExerciseDate.Month)]++
			activeDays[e.ExerciseDate] = true
			if counts, ok := dayCounts[string(e.Category)]; ok {
				counts[e.ExerciseDate]++
			}
		}

		fmt.Printf("%s\n\n", color.New(color.Bold).Sprintf("Activity in %d", year))
		fmt.Printf("  Entries:     %d\n", len(entries))
		fmt.Printf("  Active days: %d\n", len(activeDays))
		for _, cat := range []string{"lifting", "cardio"} {
			if n := byCategory[cat]; n > 0 {
				label := strings.ToUpper(cat[:1]) + cat[1:]
				fmt.Printf("  %s  %d\n", padRight(label+":", 12), n)
			}
		}

		// Top exercises by entry count.
		type exerciseCount struct {
			name  string
			count int
		}
		var top []exerciseCount
		for name, count := range byExercise {
			top = append(top, exerciseCount{name, count})
		}
		sort.Slice(top, func(i, j int) bool {
			if top[i].count != top[j].count {
				return top[i].count > top[j].count
			}
			return top[i].name < top[j].name
		})
		if len(top) > 10 {
			top = top[:10]
		}

		fmt.Println("\nTop exercises:")
		for _, t := range top {
			fmt.Printf("  %s %d\n", padRight(truncate(t.name, 28), 28), t.count)
		}

		// Monthly chart scaled to the busiest month.
		peak := 0
		for _, n := range byMonth {
			if n > peak {
				peak = n
			}
		}

		fmt.Println("\nBy month:")
		for m := time.January; m <= time.December; m++ {
			n := byMonth[int(m)]
			width := 0
			if peak > 0 {
				width = n * 30 / peak
			}
			if n > 0 && width == 0 {
				width = 1
			}
			fmt.Printf("  %s %3d %s\n",
				m.String()[:3], n,
				color.CyanString(strings.Repeat("█", width)))
		}

		// Per-day grids, one per category.
		paints := map[string]*color.Color{
			"lifting": color.New(color.FgBlue),
			"cardio":  color.New(color.FgGreen),
		}
		for _, cat := range []string{"lifting", "cardio"} {
			if byCategory[cat] == 0 {
				continue
			}
			label := strings.ToUpper(cat[:1]) + cat[1:]
			fmt.Printf("\n%s\n", color.New(color.Bold).Sprint(label))
			for _, line := range renderHeatmap(year, dayCounts[cat], paints[cat]) {
				fmt.Println(line)
			}
		}

		return nil
	},
}

func init() {
	statsCmd.Flags().IntVar(&statsYear, "year", 0, "year to summarize (default: current year)")
	rootCmd.AddCommand(statsCmd)
}
