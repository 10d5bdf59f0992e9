package calendar

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/kalendar/core"
)

var (
	ErrNotFound      = core.NewNotFoundError("event")
	ErrInvalidAction = errors.New("invalid view action")
)

// InvalidDateError is returned when a date cannot be placed on a calendar grid.
type InvalidDateError struct {
	Value  string
	Reason string
}

func newInvalidDateError(t time.Time, reason string) error {
	v := "zero time"
	if !t.IsZero() {
		v = t.Format(time.RFC3339)
	}
	return &InvalidDateError{Value: v, Reason: reason}
}

func (err InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q: %s", err.Value, err.Reason)
}

// IsInvalidDate reports whether the root cause of err is an *InvalidDateError.
func IsInvalidDate(err error) bool {
	_, ok := errors.Cause(err).(*InvalidDateError)
	return ok
}
