package calendar

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(s); g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return g, nil
	}
	return "", errors.Wrapf(ErrInvalidAction, "unknown granularity %q", s)
}

// Direction of a navigation step.
type Direction string

const (
	Prev Direction = "prev"
	Next Direction = "next"
)

type SwipeDirection string

const (
	SwipeLeft  SwipeDirection = "left"
	SwipeRight SwipeDirection = "right"
	SwipeUp    SwipeDirection = "up"
	SwipeDown  SwipeDirection = "down"
)

// pinch bands: [min, monthBelow) -> month, [monthBelow, dayAbove] -> week, (dayAbove, max] -> day
const (
	monthBelow = 0.7
	dayAbove   = 1.3
)

// ZoomBounds limits the pinch scale.
type ZoomBounds struct {
	Min float64
	Max float64
}

var DefaultZoomBounds = ZoomBounds{Min: 0.5, Max: 3.0}

func (b ZoomBounds) Clamp(scale float64) float64 {
	return math.Min(b.Max, math.Max(b.Min, scale))
}

// ViewState is what the calendar is showing. Transitions return a new state and never mutate the receiver.
type ViewState struct {
	ReferenceDate time.Time   `json:"reference_date"`
	Granularity   Granularity `json:"granularity"`
	ZoomLevel     float64     `json:"zoom_level"`
}

// NewViewState is the initial view: the week of now at zoom 1.
func NewViewState(now time.Time) ViewState {
	return ViewState{ReferenceDate: now, Granularity: GranularityWeek, ZoomLevel: 1}
}

// Navigate moves one page back or forth: a month, a week (7 days) or a day.
// Month steps keep the day of month, clamped to the target month's length.
func (s ViewState) Navigate(dir Direction) ViewState {
	step := 1
	if dir == Prev {
		step = -1
	} else if dir != Next {
		return s
	}

	switch s.Granularity {
	case GranularityMonth:
		s.ReferenceDate = AddMonths(s.ReferenceDate, step)
	case GranularityWeek:
		s.ReferenceDate = s.ReferenceDate.AddDate(0, 0, 7*step)
	case GranularityDay:
		s.ReferenceDate = s.ReferenceDate.AddDate(0, 0, step)
	}
	return s
}

// Pinch sets the zoom level to the clamped scale and picks the granularity of its band.
func (s ViewState) Pinch(scale float64, bounds ZoomBounds) ViewState {
	if math.IsNaN(scale) {
		return s
	}
	s.ZoomLevel = bounds.Clamp(scale)
	s.Granularity = GranularityForScale(s.ZoomLevel)
	return s
}

// Swipe left shows the next page, right the previous one. Vertical swipes change nothing.
func (s ViewState) Swipe(dir SwipeDirection) ViewState {
	switch dir {
	case SwipeLeft:
		return s.Navigate(Next)
	case SwipeRight:
		return s.Navigate(Prev)
	}
	return s
}

// SelectGranularity switches the layout without moving the reference date.
func (s ViewState) SelectGranularity(g Granularity) ViewState {
	s.Granularity = g
	return s
}

// GranularityForScale maps a zoom level to its layout.
func GranularityForScale(scale float64) Granularity {
	switch {
	case scale < monthBelow:
		return GranularityMonth
	case scale > dayAbove:
		return GranularityDay
	default:
		return GranularityWeek
	}
}

// AddMonths adds n months to t keeping the day of month when it exists in the target month,
// the last day of the target month otherwise: Jan 31 + 1 -> Feb 28/29.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := DaysInMonth(first.Year(), first.Month()); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

// Range is the [Start, End) interval displayed by the state.
func (s ViewState) Range() (time.Time, time.Time) {
	switch s.Granularity {
	case GranularityMonth:
		start := FirstOfMonth(s.ReferenceDate)
		return start, start.AddDate(0, 1, 0)
	case GranularityDay:
		start := StartOfDay(s.ReferenceDate)
		return start, start.AddDate(0, 0, 1)
	default:
		start := StartOfWeek(s.ReferenceDate)
		return start, start.AddDate(0, 0, 7)
	}
}

type ActionType string

const (
	ActionNavigate ActionType = "navigate"
	ActionPinch    ActionType = "pinch"
	ActionSwipe    ActionType = "swipe"
	ActionSelect   ActionType = "select"
)

// Action is a serialised view transition.
type Action struct {
	Type        ActionType     `json:"type" validate:"required,oneof=navigate pinch swipe select"`
	Direction   string         `json:"direction,omitempty"`
	Scale       float64        `json:"scale,omitempty"`
	Granularity Granularity    `json:"granularity,omitempty"`
	Swipe       SwipeDirection `json:"swipe,omitempty"`
}

// Apply runs a on s.
func (s ViewState) Apply(a Action, bounds ZoomBounds) (ViewState, error) {
	switch a.Type {
	case ActionNavigate:
		dir := Direction(a.Direction)
		if dir != Prev && dir != Next {
			return s, errors.Wrapf(ErrInvalidAction, "unknown direction %q", a.Direction)
		}
		return s.Navigate(dir), nil
	case ActionPinch:
		if a.Scale <= 0 {
			return s, errors.Wrap(ErrInvalidAction, "scale must be positive")
		}
		return s.Pinch(a.Scale, bounds), nil
	case ActionSwipe:
		switch a.Swipe {
		case SwipeLeft, SwipeRight, SwipeUp, SwipeDown:
			return s.Swipe(a.Swipe), nil
		}
		return s, errors.Wrapf(ErrInvalidAction, "unknown swipe %q", a.Swipe)
	case ActionSelect:
		g, err := ParseGranularity(string(a.Granularity))
		if err != nil {
			return s, err
		}
		return s.SelectGranularity(g), nil
	}
	return s, errors.Wrapf(ErrInvalidAction, "unknown action %q", a.Type)
}
