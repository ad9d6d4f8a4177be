// ABOUTME: Dose-decay series calculator for tracked compounds.
// ABOUTME: Pure single-exponential decay recurrence over a daily window.
package dosesim

import "math"

// Dose is one administered amount on a calendar date. The ledger holds
// at most one amount per date for a compound; storage enforces this via
// upsert, so callers hand the calculator an already-deduplicated set.
type Dose struct {
	Date   Date
	Amount float64
}

// Row is one computed day of the simulation window.
type Row struct {
	// Date of the row, between the window start and end inclusive.
	Date Date `json:"date"`
	// Index is the 1-based ordinal of the day; the window start is index 1.
	Index int `json:"index"`
	// ActiveDose is the amount present in the body as of this day:
	// yesterday's decayed carryover plus today's administered dose.
	ActiveDose float64 `json:"active_dose"`
	// CalculatedNext is what ActiveDose decays to by the following day.
	CalculatedNext float64 `json:"calculated_next"`
	// AddedDose is the raw amount administered this day, 0 if none.
	AddedDose float64 `json:"added_dose"`
}

// ComputeSeries computes the daily active-dose series for a compound
// from start through end inclusive, in ascending date order.
//
// The recurrence: activeDose starts at 0 before the first day. Each day
// adds that day's administered dose to the carried-over decayed amount,
// then decays the total by 0.5^(1/halfLifeDays) for the next day.
//
// halfLifeDays must be positive; the caller validates before persisting
// a compound, so no check is made here. Doses dated outside the window
// are never visited and contribute nothing: in particular a dose before
// start has no effect at all, because decay state is seeded at zero on
// the start date rather than carried in from history.
//
// The function is pure: no I/O, no mutation of doses, and identical
// inputs yield bit-identical rows. A start after end yields no rows.
func ComputeSeries(start Date, halfLifeDays float64, doses []Dose, end Date) []Row {
	if start.After(end) {
		return nil
	}

	// Last write wins on duplicate dates; upstream upsert normally
	// prevents duplicates from reaching here.
	byDate := make(map[Date]float64, len(doses))
	for _, d := range doses {
		byDate[d.Date] = d.Amount
	}

	days := start.DaysUntil(end) + 1
	rows := make([]Row, 0, days)

	decay := math.Pow(0.5, 1/halfLifeDays)
	activeDose := 0.0
	day := start

	for i := 1; i <= days; i++ {
		addedDose := byDate[day]

		// Today's dose lands on top of yesterday's decayed carryover.
		activeDose += addedDose

		// What this amount will have decayed to by tomorrow.
		calculatedNext := activeDose * decay

		rows = append(rows, Row{
			Date:           day,
			Index:          i,
			ActiveDose:     activeDose,
			CalculatedNext: calculatedNext,
			AddedDose:      addedDose,
		})

		activeDose = calculatedNext
		day = day.AddDays(1)
	}

	return rows
}
