package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildMonthGrid(t *testing.T) {
	tests := []struct {
		name       string
		ref        time.Time
		wantBlanks int
		wantDays   int
	}{
		{name: "June 2024 starts on Saturday", ref: date(2024, time.June, 18), wantBlanks: 5, wantDays: 30},
		{name: "April 2024 starts on Monday", ref: date(2024, time.April, 30), wantBlanks: 0, wantDays: 30},
		{name: "September 2024 starts on Sunday", ref: date(2024, time.September, 1), wantBlanks: 6, wantDays: 30},
		{name: "February of a leap year", ref: date(2024, time.February, 10), wantBlanks: 3, wantDays: 29},
		{name: "February of a common year", ref: date(2023, time.February, 28), wantBlanks: 2, wantDays: 28},
		{name: "February 2021 fits 4 rows", ref: date(2021, time.February, 1), wantBlanks: 0, wantDays: 28},
		{name: "December rolls over the year", ref: date(2024, time.December, 31), wantBlanks: 6, wantDays: 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := BuildMonthGrid(tt.ref)
			require.NoError(t, err)

			assert.Equal(t, tt.ref.Year(), g.Year)
			assert.Equal(t, tt.ref.Month(), g.Month)
			assert.Equal(t, tt.wantBlanks, g.LeadingBlanks())
			assert.Equal(t, tt.wantDays, g.DaysInMonth())
			assert.Len(t, g.Cells, tt.wantBlanks+tt.wantDays)

			for i := 0; i < tt.wantBlanks; i++ {
				assert.Zero(t, g.Cells[i], "cell %d should be blank", i)
			}
			for d := 1; d <= tt.wantDays; d++ {
				assert.Equal(t, d, g.Cells[tt.wantBlanks+d-1])
			}
		})
	}
}

func TestBuildMonthGrid_sameMonthSameGrid(t *testing.T) {
	g1, err := BuildMonthGrid(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	g2, err := BuildMonthGrid(time.Date(2024, time.June, 30, 23, 59, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, g1, g2)
}

func TestBuildMonthGrid_blanksWithinAWeek(t *testing.T) {
	ref := date(2000, time.January, 1)
	for i := 0; i < 12*30; i++ {
		g, err := BuildMonthGrid(ref.AddDate(0, i, 0))
		require.NoError(t, err)
		if b := g.LeadingBlanks(); b < 0 || b > 6 {
			t.Fatalf("BuildMonthGrid(%v) blanks = %d, want within [0, 6]", ref.AddDate(0, i, 0), b)
		}
	}
}

func TestBuildMonthGrid_invalid(t *testing.T) {
	tests := []struct {
		name string
		ref  time.Time
	}{
		{name: "zero time", ref: time.Time{}},
		{name: "year 10000", ref: date(10000, time.January, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildMonthGrid(tt.ref)
			if !IsInvalidDate(err) {
				t.Errorf("BuildMonthGrid() error = %v, want *InvalidDateError", err)
			}
		})
	}
}

func TestGrid_Weeks(t *testing.T) {
	g, err := BuildMonthGrid(date(2024, time.June, 1))
	require.NoError(t, err)

	weeks := g.Weeks()
	require.Len(t, weeks, 5)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 1, 2}, weeks[0])
	assert.Equal(t, []int{24, 25, 26, 27, 28, 29, 30}, weeks[4])
}

func TestISOWeekday(t *testing.T) {
	assert.Equal(t, 1, ISOWeekday(date(2024, time.June, 17)))
	assert.Equal(t, 6, ISOWeekday(date(2024, time.June, 1)))
	assert.Equal(t, 7, ISOWeekday(date(2024, time.June, 2)))
}

func TestStartOfWeek(t *testing.T) {
	assert.Equal(t, date(2024, time.June, 17), StartOfWeek(time.Date(2024, time.June, 23, 18, 30, 0, 0, time.UTC)))
	assert.Equal(t, date(2024, time.June, 17), StartOfWeek(date(2024, time.June, 17)))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-06-18", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.June, 18), got)

	for _, s := range []string{"", "2024-13-01", "18/06/2024", "2024-02-30"} {
		if _, err := ParseDate(s, time.UTC); !IsInvalidDate(err) {
			t.Errorf("ParseDate(%q) error = %v, want *InvalidDateError", s, err)
		}
	}
}
