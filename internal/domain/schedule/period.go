package schedule

import (
	"time"

	"github.com/google/uuid"
)

// Weekdays is a bitmask over time.Weekday (bit 0 = Sunday).
type Weekdays uint8

const AllWeekdays Weekdays = 0x7F

func NewWeekdays(days ...time.Weekday) Weekdays {
	var w Weekdays
	for _, d := range days {
		w |= 1 << uint(d)
	}
	return w
}

func (w Weekdays) Has(d time.Weekday) bool {
	return w&(1<<uint(d)) != 0
}

// Period is a recurring reservation time grid: on the configured weekdays
// the restaurant offers seating times from StartTime to EndTime inclusive,
// stepped by IntervalMin.
type Period struct {
	ID          uuid.UUID
	Name        string
	Weekdays    Weekdays
	StartTime   TimeOfDay
	EndTime     TimeOfDay
	IntervalMin int
	Active      bool
}

// AppliesTo reports whether the period offers slots on the given date.
func (p Period) AppliesTo(date time.Time) bool {
	return p.Active && p.Weekdays.Has(date.Weekday())
}

// Times emits the seating grid, end inclusive.
func (p Period) Times() []TimeOfDay {
	return gridTimes(p.StartTime, p.EndTime, p.IntervalMin)
}

func gridTimes(start, end TimeOfDay, intervalMin int) []TimeOfDay {
	if intervalMin <= 0 || end < start {
		return nil
	}
	var out []TimeOfDay
	for t := start; t <= end; t += TimeOfDay(intervalMin) {
		out = append(out, t)
	}
	return out
}
