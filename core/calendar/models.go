package calendar

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/kalendar/core"
)

const (
	clockLayout     = "15:04"
	DefaultDuration = 45 * time.Minute
	DefaultColor    = "#3B82F6"
)

// Kind is what an event is about.
type Kind string

const (
	KindClass   Kind = "class"
	KindMeeting Kind = "meeting"
	KindExam    Kind = "exam"
	KindEvent   Kind = "event"
)

var Kinds = []Kind{KindClass, KindMeeting, KindExam, KindEvent}

// Event is a scheduled calendar entry bound to a course. Events are immutable once created.
type Event struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Date      time.Time     `json:"date"`
	Color     string        `json:"color"`
	CourseID  string        `json:"course_id"`
	Location  string        `json:"location,omitempty"`
	Kind      Kind          `json:"type"`
	Duration  time.Duration `json:"-"`
	CreatedAt time.Time     `json:"-"`
}

// Time is the "HH:MM" start of the event, derived from Date.
func (e Event) Time() string {
	return e.Date.Format(clockLayout)
}

// MinutesOfDay is the start of the event in minutes since midnight.
func (e Event) MinutesOfDay() int {
	return e.Date.Hour()*60 + e.Date.Minute()
}

func (e Event) End() time.Time {
	d := e.Duration
	if d <= 0 {
		d = DefaultDuration
	}
	return e.Date.Add(d)
}

func (e Event) MarshalJSON() ([]byte, error) {
	type event Event
	return json.Marshal(struct {
		event
		Time     string `json:"time"`
		Duration int    `json:"duration"`
	}{
		event:    event(e),
		Time:     e.Time(),
		Duration: int(e.Duration / time.Minute),
	})
}

// NewEvent contains information needed to create a new Event.
// Title and Color default to the course's name and color.
type NewEvent struct {
	Title    string `json:"title" validate:"omitempty,max=120"`
	CourseID string `json:"course_id" validate:"required"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string `json:"time" validate:"required,datetime=15:04"`
	Color    string `json:"color" validate:"omitempty,hexcolor"`
	Location string `json:"location" validate:"omitempty,max=120"`
	Kind     Kind   `json:"type" validate:"omitempty,eventkind"`
	Duration int    `json:"duration" validate:"omitempty,min=1,max=1440"` // minutes
}

func (ne *NewEvent) Validate(validate *validator.Validate) error {
	ne.Title = core.CleanString(ne.Title)
	ne.CourseID = core.CleanString(ne.CourseID)
	ne.Date = core.CleanString(ne.Date)
	ne.Time = core.CleanString(ne.Time)
	ne.Color = core.CleanString(ne.Color)
	ne.Location = core.CleanString(ne.Location)
	return validate.Struct(ne)
}

// Start combines Date and Time in loc.
func (ne NewEvent) Start(loc *time.Location) (time.Time, error) {
	day, err := ParseDate(ne.Date, loc)
	if err != nil {
		return time.Time{}, err
	}
	clock, err := time.Parse(clockLayout, ne.Time)
	if err != nil {
		return time.Time{}, &InvalidDateError{Value: ne.Time, Reason: "expected HH:MM"}
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, day.Location()), nil
}

type QueryFilter struct {
	CourseID string    `query:"course_id"`
	From     time.Time `query:"-"`
	To       time.Time `query:"-"` // exclusive
}

func (qf QueryFilter) match(e Event) bool {
	if qf.CourseID != "" && e.CourseID != qf.CourseID {
		return false
	}
	if !qf.From.IsZero() && e.Date.Before(qf.From) {
		return false
	}
	if !qf.To.IsZero() && !e.Date.Before(qf.To) {
		return false
	}
	return true
}
