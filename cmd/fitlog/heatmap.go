// ABOUTME: Per-day activity heatmap rendering for the stats command.
// ABOUTME: Week-column grid per category with shade levels by entry count.
package main

import (
	"strings"
	"time"

	"github.com/fatih/color"

	"fitlog/internal/dosesim"
)

// outOfYear marks grid cells padding the first and last week columns.
const outOfYear = -1

// heatmapDayLabels follows the web calendar: label Mon/Wed/Fri only.
var heatmapDayLabels = [7]string{"   ", "Mon", "   ", "Wed", "   ", "Fri", "   "}

// shadeForCount maps a day's entry count to one of four intensity
// levels, plus a dot for empty days.
func shadeForCount(count int) string {
	switch {
	case count <= 0:
		return "·"
	case count == 1:
		return "░"
	case count == 2:
		return "▒"
	case count == 3:
		return "▓"
	default:
		return "█"
	}
}

// heatmapFirstSunday returns the Sunday of the week containing Jan 1,
// the top-left cell of the grid.
func heatmapFirstSunday(year int) dosesim.Date {
	jan1 := dosesim.Date{Year: year, Month: time.January, Day: 1}
	return jan1.AddDays(-int(jan1.Time().Weekday()))
}

// buildHeatmapGrid lays a year of per-day counts out in column-per-week,
// row-per-weekday order. Cells outside the year hold outOfYear.
func buildHeatmapGrid(year int, counts map[dosesim.Date]int) [][7]int {
	firstSunday := heatmapFirstSunday(year)
	dec31 := dosesim.Date{Year: year, Month: time.December, Day: 31}
	weeks := (firstSunday.DaysUntil(dec31) + 7) / 7

	grid := make([][7]int, weeks)
	day := firstSunday
	for w := 0; w < weeks; w++ {
		for dow := 0; dow < 7; dow++ {
			if day.Year != year {
				grid[w][dow] = outOfYear
			} else {
				grid[w][dow] = counts[day]
			}
			day = day.AddDays(1)
		}
	}
	return grid
}

// heatmapMonthRow builds the month-label header. A month's three-letter
// name sits above the week its first in-year day falls in.
func heatmapMonthRow(year, weeks int) string {
	firstSunday := heatmapFirstSunday(year)

	buf := make([]rune, weeks*2)
	for i := range buf {
		buf[i] = ' '
	}

	current := time.Month(0)
	for w := 0; w < weeks; w++ {
		for dow := 0; dow < 7; dow++ {
			d := firstSunday.AddDays(w*7 + dow)
			if d.Year != year {
				continue
			}
			if d.Month != current {
				current = d.Month
				for i, r := range d.Month.String()[:3] {
					if pos := w*2 + i; pos < len(buf) {
						buf[pos] = r
					}
				}
			}
			break
		}
	}

	// Indent past the day-label gutter.
	return "    " + strings.TrimRight(string(buf), " ")
}

// renderHeatmap renders a year of per-day counts as terminal lines:
// a month header plus seven weekday rows, one two-char cell per week.
func renderHeatmap(year int, counts map[dosesim.Date]int, paint *color.Color) []string {
	grid := buildHeatmapGrid(year, counts)
	faint := color.New(color.Faint)

	lines := make([]string, 0, 8)
	lines = append(lines, heatmapMonthRow(year, len(grid)))

	for dow := 0; dow < 7; dow++ {
		var b strings.Builder
		b.WriteString(heatmapDayLabels[dow] + " ")
		for w := range grid {
			switch count := grid[w][dow]; {
			case count == outOfYear:
				b.WriteString("  ")
			case count == 0:
				b.WriteString(faint.Sprint(shadeForCount(0)) + " ")
			default:
				b.WriteString(paint.Sprint(shadeForCount(count)) + " ")
			}
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}

	return lines
}
