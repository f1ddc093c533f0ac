package schedule

import (
	"time"

	"github.com/google/uuid"
)

type SpecialDateMode string

const (
	ModeClosed      SpecialDateMode = "closed"
	ModeCustomHours SpecialDateMode = "custom_hours"
)

// SpecialPeriod is the synthetic time grid a custom-hours special date
// carries. It has no Period identity: slots generated from it are tagged
// with a nil period ID.
type SpecialPeriod struct {
	StartTime   TimeOfDay
	EndTime     TimeOfDay
	IntervalMin int
}

func (p SpecialPeriod) Times() []TimeOfDay {
	return gridTimes(p.StartTime, p.EndTime, p.IntervalMin)
}

// SpecialDate overrides the recurring schedule for a date range. It takes
// precedence over both Periods and legacy ClosureDates for covered dates.
type SpecialDate struct {
	ID                uuid.UUID
	StartDate         time.Time // midnight, inclusive
	EndDate           time.Time // midnight, inclusive
	Mode              SpecialDateMode
	Periods           []SpecialPeriod
	DiningDurationMin *int
}

// Covers reports whether the override applies to the given date (compared
// at day granularity).
func (s SpecialDate) Covers(date time.Time) bool {
	d := truncateToDay(date)
	return !d.Before(truncateToDay(s.StartDate)) && !d.After(truncateToDay(s.EndDate))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
