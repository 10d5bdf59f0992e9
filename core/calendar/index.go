package calendar

import (
	"sort"
	"time"
)

// EventsOnDay returns the events falling on day of the month containing refMonth, in their original order.
// Dates are compared in refMonth's location.
func EventsOnDay(events []Event, day int, refMonth time.Time) []Event {
	loc := refMonth.Location()
	y, m := refMonth.Year(), refMonth.Month()

	var found []Event
	for _, e := range events {
		d := e.Date.In(loc)
		if d.Day() == day && d.Month() == m && d.Year() == y {
			found = append(found, e)
		}
	}
	return found
}

// EventsOnDate returns the events on the calendar date of date (time of day ignored), in their original order.
func EventsOnDate(events []Event, date time.Time) []Event {
	var found []Event
	for _, e := range events {
		if SameDate(e.Date, date) {
			found = append(found, e)
		}
	}
	return found
}

// EventsInWeek buckets the events of ref's Monday-first week, one slice per day.
func EventsInWeek(events []Event, ref time.Time) [7][]Event {
	var week [7][]Event
	start := StartOfWeek(ref)
	for i := range week {
		week[i] = EventsOnDate(events, start.AddDate(0, 0, i))
	}
	return week
}

// SortByTime sorts events by start time of day. Events starting at the same minute keep their order.
func SortByTime(events []Event) []Event {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinutesOfDay() < sorted[j].MinutesOfDay()
	})
	return sorted
}

// Truncate keeps the first n events and reports how many were left out ("+K more").
// n <= 0 keeps everything.
func Truncate(events []Event, n int) ([]Event, int) {
	if n <= 0 || len(events) <= n {
		return events, 0
	}
	return events[:n], len(events) - n
}
