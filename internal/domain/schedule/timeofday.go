package schedule

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTimeOfDay = errors.New("invalid time of day")

// TimeOfDay is minutes since midnight. Reservation grids never cross
// midnight, so the range is [0, 1440).
type TimeOfDay int

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, ErrInvalidTimeOfDay
	}
	return TimeOfDay(hour*60 + minute), nil
}

// ParseTimeOfDay accepts "15:04" formatted values.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidTimeOfDay
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// At anchors the time of day on a calendar date in the date's location.
func (t TimeOfDay) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}
