package calendar

import (
	"time"
)

const dateLayout = "2006-01-02"

// Grid is the Monday-first layout of one month: leading blank cells (0) followed by the day numbers 1..N.
// No trailing padding is added after the last day.
type Grid struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Cells []int      `json:"cells"`
}

// BuildMonthGrid lays out the month containing ref.
// The result only depends on the year and month of ref.
func BuildMonthGrid(ref time.Time) (Grid, error) {
	if ref.IsZero() {
		return Grid{}, newInvalidDateError(ref, "no reference date")
	}
	if y := ref.Year(); y < 1 || y > 9999 {
		return Grid{}, newInvalidDateError(ref, "year out of range")
	}

	first := FirstOfMonth(ref)
	blanks := ISOWeekday(first) - 1
	days := DaysInMonth(ref.Year(), ref.Month())

	cells := make([]int, blanks, blanks+days)
	for d := 1; d <= days; d++ {
		cells = append(cells, d)
	}
	return Grid{Year: ref.Year(), Month: ref.Month(), Cells: cells}, nil
}

// LeadingBlanks is the number of empty cells before day 1.
func (g Grid) LeadingBlanks() int {
	for i, c := range g.Cells {
		if c != 0 {
			return i
		}
	}
	return len(g.Cells)
}

// DaysInMonth is the number of day cells.
func (g Grid) DaysInMonth() int {
	return len(g.Cells) - g.LeadingBlanks()
}

// Weeks splits the cells into rows of 7; the last row may be shorter.
func (g Grid) Weeks() [][]int {
	var rows [][]int
	for i := 0; i < len(g.Cells); i += 7 {
		end := i + 7
		if end > len(g.Cells) {
			end = len(g.Cells)
		}
		rows = append(rows, g.Cells[i:end])
	}
	return rows
}

// ISOWeekday maps time.Weekday to Monday=1 ... Sunday=7.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// DaysInMonth returns the number of days of month in year.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstOfMonth returns midnight of the first day of t's month, in t's location.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// StartOfDay returns midnight of t's day, in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Monday of t's week.
func StartOfWeek(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, -(ISOWeekday(t) - 1))
}

// SameDate reports whether a and b fall on the same calendar date once a is moved to b's location.
func SameDate(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ParseDate parses a "YYYY-MM-DD" date at midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, &InvalidDateError{Value: s, Reason: "expected YYYY-MM-DD"}
	}
	return t, nil
}

// FormatDate formats t as "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
