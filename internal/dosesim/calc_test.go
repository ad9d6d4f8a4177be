// ABOUTME: Tests for the dose-decay series calculator.
// ABOUTME: Covers decay curves, re-dosing, window bounds, and determinism.
package dosesim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitlog/internal/dosesim"
)

func date(s string) dosesim.Date {
	return dosesim.MustParseDate(s)
}

// TestComputeSeries_NoDoses verifies that a window with no doses stays
// flat at zero for every field on every row.
func TestComputeSeries_NoDoses(t *testing.T) {
	rows := dosesim.ComputeSeries(date("2026-01-01"), 2.5, nil, date("2026-01-10"))

	require.Len(t, rows, 10)
	for _, r := range rows {
		assert.Equal(t, 0.0, r.AddedDose)
		assert.Equal(t, 0.0, r.ActiveDose)
		assert.Equal(t, 0.0, r.CalculatedNext)
	}
}

// TestComputeSeries_SingleDoseHalving checks the canonical halving curve:
// one dose of 100 with a one-day half-life halves each subsequent day.
func TestComputeSeries_SingleDoseHalving(t *testing.T) {
	doses := []dosesim.Dose{{Date: date("2026-01-01"), Amount: 100}}

	rows := dosesim.ComputeSeries(date("2026-01-01"), 1, doses, date("2026-01-04"))
	require.Len(t, rows, 4)

	want := []struct {
		added, active, next float64
	}{
		{100, 100, 50},
		{0, 50, 25},
		{0, 25, 12.5},
		{0, 12.5, 6.25},
	}
	for i, w := range want {
		assert.Equal(t, i+1, rows[i].Index, "row %d index", i)
		assert.Equal(t, w.added, rows[i].AddedDose, "row %d addedDose", i)
		assert.Equal(t, w.active, rows[i].ActiveDose, "row %d activeDose", i)
		assert.Equal(t, w.next, rows[i].CalculatedNext, "row %d calculatedNext", i)
	}

	assert.Equal(t, "2026-01-01", rows[0].Date.String())
	assert.Equal(t, "2026-01-04", rows[3].Date.String())
}

// TestComputeSeries_AdditiveRedosing verifies that a new dose stacks on
// top of the decayed carryover from the previous day.
func TestComputeSeries_AdditiveRedosing(t *testing.T) {
	doses := []dosesim.Dose{
		{Date: date("2026-01-01"), Amount: 100},
		{Date: date("2026-01-02"), Amount: 50},
	}

	rows := dosesim.ComputeSeries(date("2026-01-01"), 1, doses, date("2026-01-02"))
	require.Len(t, rows, 2)

	// Day 2: 50 carried in from day 1 + 50 new = 100, decaying to 50.
	assert.Equal(t, 50.0, rows[1].AddedDose)
	assert.Equal(t, 100.0, rows[1].ActiveDose)
	assert.Equal(t, 50.0, rows[1].CalculatedNext)
}

// TestComputeSeries_StartAfterEnd verifies an inverted window yields no rows.
func TestComputeSeries_StartAfterEnd(t *testing.T) {
	doses := []dosesim.Dose{{Date: date("2026-01-01"), Amount: 100}}

	rows := dosesim.ComputeSeries(date("2026-02-01"), 1, doses, date("2026-01-01"))
	assert.Empty(t, rows)
}

// TestComputeSeries_ZeroLengthWindow verifies a one-day window produces
// exactly one row whose active dose is that day's own dose.
func TestComputeSeries_ZeroLengthWindow(t *testing.T) {
	doses := []dosesim.Dose{{Date: date("2026-03-15"), Amount: 75}}

	rows := dosesim.ComputeSeries(date("2026-03-15"), 3, doses, date("2026-03-15"))
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Index)
	assert.Equal(t, 75.0, rows[0].ActiveDose)
	assert.Equal(t, 75.0, rows[0].AddedDose)
}

// TestComputeSeries_OutOfWindowDosesIgnored verifies doses dated before
// the start or after the end have zero effect on the emitted rows. A
// dose before the start is lost entirely: decay state seeds at zero on
// the start date, not from history.
func TestComputeSeries_OutOfWindowDosesIgnored(t *testing.T) {
	doses := []dosesim.Dose{
		{Date: date("2025-12-25"), Amount: 500}, // before start
		{Date: date("2026-01-20"), Amount: 500}, // after end
	}

	rows := dosesim.ComputeSeries(date("2026-01-01"), 1, doses, date("2026-01-05"))
	require.Len(t, rows, 5)
	for _, r := range rows {
		assert.Equal(t, 0.0, r.ActiveDose, "day %s", r.Date)
		assert.Equal(t, 0.0, r.CalculatedNext, "day %s", r.Date)
	}
}

// TestComputeSeries_DuplicateDatesLastWins verifies lookup construction
// takes the last amount when the input contains duplicate dates.
func TestComputeSeries_DuplicateDatesLastWins(t *testing.T) {
	doses := []dosesim.Dose{
		{Date: date("2026-01-01"), Amount: 30},
		{Date: date("2026-01-01"), Amount: 50},
	}

	rows := dosesim.ComputeSeries(date("2026-01-01"), 1, doses, date("2026-01-01"))
	require.Len(t, rows, 1)
	assert.Equal(t, 50.0, rows[0].ActiveDose, "later write replaces, never accumulates")
}

// TestComputeSeries_FractionalHalfLife checks the decay factor is computed
// with real exponentiation for non-integer half-lives.
func TestComputeSeries_FractionalHalfLife(t *testing.T) {
	doses := []dosesim.Dose{{Date: date("2026-01-01"), Amount: 100}}

	rows := dosesim.ComputeSeries(date("2026-01-01"), 2, doses, date("2026-01-03"))
	require.Len(t, rows, 3)

	// With a two-day half-life the per-day factor is 2^-0.5 ≈ 0.70710678.
	assert.InDelta(t, 70.710678, rows[0].CalculatedNext, 1e-6)
	// Two days out the amount has halved exactly once.
	assert.InDelta(t, 50.0, rows[2].ActiveDose, 1e-9)
}

// TestComputeSeries_NegativeDoseApplied documents that the calculator
// imposes no floor: negative amounts flow through arithmetically and
// input layers are responsible for rejecting them.
func TestComputeSeries_NegativeDoseApplied(t *testing.T) {
	doses := []dosesim.Dose{
		{Date: date("2026-01-01"), Amount: 100},
		{Date: date("2026-01-02"), Amount: -60},
	}

	rows := dosesim.ComputeSeries(date("2026-01-01"), 1, doses, date("2026-01-02"))
	require.Len(t, rows, 2)
	assert.Equal(t, -10.0, rows[1].ActiveDose) // 50 carryover - 60
}

// TestComputeSeries_Deterministic verifies repeated calls with identical
// inputs produce bit-identical rows.
func TestComputeSeries_Deterministic(t *testing.T) {
	doses := []dosesim.Dose{
		{Date: date("2026-01-03"), Amount: 12.5},
		{Date: date("2026-01-09"), Amount: 33.3},
		{Date: date("2026-02-01"), Amount: 7.75},
	}

	first := dosesim.ComputeSeries(date("2026-01-01"), 1.7, doses, date("2026-03-01"))
	second := dosesim.ComputeSeries(date("2026-01-01"), 1.7, doses, date("2026-03-01"))

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i], second[i], "row %d", i)
	}
}

// TestComputeSeries_InputNotMutated verifies the dose slice is untouched.
func TestComputeSeries_InputNotMutated(t *testing.T) {
	doses := []dosesim.Dose{
		{Date: date("2026-01-02"), Amount: 40},
		{Date: date("2026-01-01"), Amount: 80},
	}
	snapshot := make([]dosesim.Dose, len(doses))
	copy(snapshot, doses)

	dosesim.ComputeSeries(date("2026-01-01"), 1, doses, date("2026-01-10"))
	assert.Equal(t, snapshot, doses)
}

// TestComputeSeries_MultiYearWindow sanity-checks a long projection window:
// correct row count, strictly ascending dates, monotone decay after the
// final dose.
func TestComputeSeries_MultiYearWindow(t *testing.T) {
	doses := []dosesim.Dose{{Date: date("2026-01-01"), Amount: 200}}

	rows := dosesim.ComputeSeries(date("2026-01-01"), 14, doses, date("2028-12-31"))
	require.Len(t, rows, 1096) // 2026 + 2027 + 2028 (leap)

	for i := 1; i < len(rows); i++ {
		assert.True(t, rows[i-1].Date.Before(rows[i].Date), "dates ascend at row %d", i)
		assert.Less(t, rows[i].ActiveDose, rows[i-1].ActiveDose, "decay is monotone at row %d", i)
	}
}
