// ABOUTME: Tests for the timezone-naive Date type.
// ABOUTME: Covers parsing, arithmetic, rollover, and JSON round-trips.
package dosesim_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitlog/internal/dosesim"
)

func TestParseDate(t *testing.T) {
	d, err := dosesim.ParseDate("2026-08-28")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year)
	assert.Equal(t, "2026-08-28", d.String())

	_, err = dosesim.ParseDate("28/08/2026")
	assert.Error(t, err)
	_, err = dosesim.ParseDate("")
	assert.Error(t, err)
}

func TestDateAddDaysRollover(t *testing.T) {
	tests := []struct {
		start string
		days  int
		want  string
	}{
		{"2026-01-31", 1, "2026-02-01"},
		{"2026-12-31", 1, "2027-01-01"},
		{"2028-02-28", 1, "2028-02-29"}, // leap year
		{"2026-03-01", -1, "2026-02-28"},
		{"2026-06-15", 0, "2026-06-15"},
	}
	for _, tt := range tests {
		got := dosesim.MustParseDate(tt.start).AddDays(tt.days)
		assert.Equal(t, tt.want, got.String(), "%s + %d days", tt.start, tt.days)
	}
}

func TestDateDaysUntil(t *testing.T) {
	a := dosesim.MustParseDate("2026-01-01")
	b := dosesim.MustParseDate("2026-01-31")

	assert.Equal(t, 30, a.DaysUntil(b))
	assert.Equal(t, -30, b.DaysUntil(a))
	assert.Equal(t, 0, a.DaysUntil(a))

	// Across a DST boundary in most zones; UTC-normalized arithmetic
	// must still count whole days.
	c := dosesim.MustParseDate("2026-03-01")
	d := dosesim.MustParseDate("2026-04-01")
	assert.Equal(t, 31, c.DaysUntil(d))
}

func TestDateOrdering(t *testing.T) {
	early := dosesim.MustParseDate("2026-01-01")
	late := dosesim.MustParseDate("2026-01-02")

	assert.True(t, early.Before(late))
	assert.True(t, late.After(early))
	assert.False(t, early.After(early))
	assert.False(t, early.Before(early))
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := dosesim.MustParseDate("2026-08-28")

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-08-28"`, string(data))

	var back dosesim.Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)

	assert.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &back))
	assert.Error(t, json.Unmarshal([]byte(`42`), &back))
}

func TestDateIsZero(t *testing.T) {
	var zero dosesim.Date
	assert.True(t, zero.IsZero())
	assert.False(t, dosesim.Today().IsZero())
}
