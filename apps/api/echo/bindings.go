package echoapi

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/kalendar/core/calendar"
)

const (
	dateParam     = "date"
	fromParam     = "from"
	toParam       = "to"
	courseIDParam = "course_id"
)

// bindDate reads the `date` query param (YYYY-MM-DD) in loc. A missing date means today.
func bindDate(ctx echo.Context, loc *time.Location, now time.Time) (time.Time, error) {
	val := ctx.QueryParam(dateParam)
	if val == "" {
		return now.In(loc), nil
	}
	return calendar.ParseDate(val, loc)
}

// EventQuery binds the event list filter: `course_id`, and `from`/`to` dates (to inclusive).
type EventQuery struct {
	Filter calendar.QueryFilter
}

func (eq *EventQuery) Bind(ctx echo.Context, loc *time.Location) error {
	eq.Filter.CourseID = ctx.QueryParam(courseIDParam)

	if val := ctx.QueryParam(fromParam); val != "" {
		from, err := calendar.ParseDate(val, loc)
		if err != nil {
			return errors.Wrap(err, "binding from")
		}
		eq.Filter.From = from
	}
	if val := ctx.QueryParam(toParam); val != "" {
		to, err := calendar.ParseDate(val, loc)
		if err != nil {
			return errors.Wrap(err, "binding to")
		}
		eq.Filter.To = to.AddDate(0, 0, 1)
	}
	return nil
}
