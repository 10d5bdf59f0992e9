package calendar

import (
	"time"
)

type Status string

const (
	StatusPast     Status = "past"
	StatusActive   Status = "active"
	StatusUpcoming Status = "upcoming"
)

// TodayEvent is an event as listed on the day agenda.
type TodayEvent struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Time         string `json:"time"`
	Duration     int    `json:"duration"` // minutes
	Location     string `json:"location,omitempty"`
	Participants int    `json:"participants"`
	Color        string `json:"color"`
	Type         Kind   `json:"type"`
	Status       Status `json:"status"`
}

type Agenda struct {
	Date   string       `json:"date"`
	Events []TodayEvent `json:"events"`
	Counts map[Kind]int `json:"counts"`
	Next   *TodayEvent  `json:"next,omitempty"`
}

// StatusAt tells whether e is over, running or still to come at now.
func StatusAt(e Event, now time.Time) Status {
	switch {
	case e.Date.After(now):
		return StatusUpcoming
	case now.Before(e.End()):
		return StatusActive
	default:
		return StatusPast
	}
}

// BuildAgenda lists the events on now's date sorted by start time.
// participants reports the number of people expected for a course; nil counts nobody.
func BuildAgenda(events []Event, now time.Time, participants func(courseID string) int) Agenda {
	today := SortByTime(EventsOnDate(events, now))

	agenda := Agenda{
		Date:   FormatDate(now),
		Events: make([]TodayEvent, 0, len(today)),
		Counts: make(map[Kind]int, len(Kinds)),
	}
	for _, k := range Kinds {
		agenda.Counts[k] = 0
	}

	for _, e := range today {
		te := TodayEvent{
			ID:       e.ID,
			Title:    e.Title,
			Time:     e.Time(),
			Duration: int(e.End().Sub(e.Date) / time.Minute),
			Location: e.Location,
			Color:    e.Color,
			Type:     e.Kind,
			Status:   StatusAt(e, now),
		}
		if te.Type == "" {
			te.Type = KindClass
		}
		if participants != nil {
			te.Participants = participants(e.CourseID)
		}
		agenda.Counts[te.Type]++
		agenda.Events = append(agenda.Events, te)
	}

	for i := range agenda.Events {
		if agenda.Events[i].Status == StatusUpcoming {
			agenda.Next = &agenda.Events[i]
			break
		}
	}
	return agenda
}
