package schedule

import (
	"time"

	"github.com/google/uuid"
)

// ClosureDate is the legacy single-date closure. A SpecialDate covering the
// same date wins; see ResolveDay.
type ClosureDate struct {
	ID        uuid.UUID
	Date      time.Time
	Recurring bool // matches the same month/day every year
}

func (c ClosureDate) Matches(date time.Time) bool {
	if c.Recurring {
		return c.Date.Month() == date.Month() && c.Date.Day() == date.Day()
	}
	return truncateToDay(c.Date).Equal(truncateToDay(date))
}
