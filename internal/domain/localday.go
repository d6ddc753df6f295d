package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDay is returned by ParseDay for anything that is not YYYY-MM-DD.
var ErrInvalidDay = errors.New("invalid date")

// DateLayout is the calendar-date format used for entries and the draft.
const DateLayout = "2006-01-02"

// LocalDay returns the calendar date of t in t's own location.
// Callers pass time.Now() (local zone); converting to UTC first would move
// entries logged late in the evening onto the next day.
func LocalDay(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the local calendar date.
func Today() string {
	return LocalDay(time.Now())
}

// ParseDay validates a YYYY-MM-DD string.
func ParseDay(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidDay, s)
	}
	return d, nil
}
