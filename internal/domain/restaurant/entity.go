package restaurant

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant carries the identity and the derived seating capacity. The
// capacity is computed from active bookable tables when loaded, not stored.
type Restaurant struct {
	ID            uuid.UUID
	Name          string
	TotalCapacity int
}

// Policy is the reservation policy configured per restaurant.
type Policy struct {
	MinPartySize         int
	MaxPartySize         int
	AdvanceBookingDays   int
	DiningDurationMin    int
	UnlimitedDiningTime  bool
	AllowCombinations    bool
	MaxCombinationTables int
}

func (p Policy) PartySizeAllowed(n int) bool {
	if n <= 0 {
		return false
	}
	if p.MinPartySize > 0 && n < p.MinPartySize {
		return false
	}
	if p.MaxPartySize > 0 && n > p.MaxPartySize {
		return false
	}
	return true
}

// WithinBookingWindow reports whether a date falls between today and the
// advance-booking horizon (0 days = no horizon).
func (p Policy) WithinBookingWindow(today, date time.Time) bool {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	if day.Before(today) {
		return false
	}
	if p.AdvanceBookingDays <= 0 {
		return true
	}
	horizon := today.AddDate(0, 0, p.AdvanceBookingDays)
	return !day.After(horizon)
}

// DiningDuration resolves the occupancy span, honoring a per-date override
// from a special date when present.
func (p Policy) DiningDuration(overrideMin *int) time.Duration {
	minutes := p.DiningDurationMin
	if overrideMin != nil && *overrideMin > 0 {
		minutes = *overrideMin
	}
	if minutes <= 0 {
		minutes = 120
	}
	return time.Duration(minutes) * time.Minute
}
