package schedule

import (
	"time"

	"github.com/google/uuid"
)

// Slot is one offered seating time. PeriodID is nil when the slot comes
// from a special date's synthetic grid.
type Slot struct {
	Time     TimeOfDay
	PeriodID *uuid.UUID
}

// DayGrid is the resolved schedule for one date.
type DayGrid struct {
	Date   time.Time
	Closed bool
	Slots  []Slot
	// DiningDurationMin is set when a custom-hours special date overrides
	// the restaurant default for this date.
	DiningDurationMin *int
}

// ResolveDay applies the precedence rules for one date, highest first:
// a covering SpecialDate (closed => no slots; custom_hours => only its own
// grid), then a matching legacy ClosureDate, then the recurring Periods for
// the date's weekday.
func ResolveDay(date time.Time, specials []SpecialDate, closures []ClosureDate, periods []Period) DayGrid {
	grid := DayGrid{Date: truncateToDay(date)}

	for _, s := range specials {
		if !s.Covers(date) {
			continue
		}
		if s.Mode == ModeClosed {
			grid.Closed = true
			return grid
		}
		for _, p := range s.Periods {
			for _, t := range p.Times() {
				grid.Slots = append(grid.Slots, Slot{Time: t})
			}
		}
		grid.DiningDurationMin = s.DiningDurationMin
		if len(grid.Slots) == 0 {
			grid.Closed = true
		}
		return grid
	}

	for _, c := range closures {
		if c.Matches(date) {
			grid.Closed = true
			return grid
		}
	}

	for _, p := range periods {
		if !p.AppliesTo(date) {
			continue
		}
		id := p.ID
		for _, t := range p.Times() {
			grid.Slots = append(grid.Slots, Slot{Time: t, PeriodID: &id})
		}
	}
	if len(grid.Slots) == 0 {
		grid.Closed = true
	}
	return grid
}

// SlotAt returns the slot matching an exact seating time, or nil when the
// requested time is not on the offered grid.
func (g DayGrid) SlotAt(t TimeOfDay) *Slot {
	for i := range g.Slots {
		if g.Slots[i].Time == t {
			return &g.Slots[i]
		}
	}
	return nil
}
