package queries

import (
	"context"
	"time"

	"tablebook/internal/domain/allocation"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/domain/table"

	"github.com/google/uuid"
)

// Snapshot is the request-scoped availability cache: reservations,
// closures, special dates and tables for the whole requested range are
// fetched once, and every per-date or per-time question after that is
// answered in memory. It is deliberately not shared across requests, so
// repeated reads within one request are idempotent and staleness ends with
// the request.
type Snapshot struct {
	Restaurant RestaurantSnapshot

	tables   []table.Table
	groups   []table.Group
	periods  []schedule.Period
	specials []schedule.SpecialDate
	closures []schedule.ClosureDate
	bookings []allocation.Booking
}

// SnapshotLoader batches the store reads backing one Snapshot.
type SnapshotLoader struct {
	restaurants  RestaurantReader
	tables       TableReader
	schedules    ScheduleReader
	reservations ReservationReader
}

func NewSnapshotLoader(
	restaurants RestaurantReader,
	tables TableReader,
	schedules ScheduleReader,
	reservations ReservationReader,
) *SnapshotLoader {
	return &SnapshotLoader{
		restaurants:  restaurants,
		tables:       tables,
		schedules:    schedules,
		reservations: reservations,
	}
}

// Load fetches everything needed to answer availability for dates in
// [from, to] (inclusive at day granularity) with one call per store.
func (l *SnapshotLoader) Load(ctx context.Context, restaurantID uuid.UUID, from, to time.Time) (*Snapshot, error) {
	rest, err := l.restaurants.FindByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	tables, err := l.tables.Tables(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	groups, err := l.tables.Groups(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	periods, err := l.schedules.Periods(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	specials, err := l.schedules.SpecialDates(ctx, restaurantID, from, to)
	if err != nil {
		return nil, err
	}
	closures, err := l.schedules.Closures(ctx, restaurantID, from, to)
	if err != nil {
		return nil, err
	}
	bookings, err := l.reservations.ConfirmedBetween(ctx, restaurantID, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Restaurant: *rest,
		tables:     tables,
		groups:     groups,
		periods:    periods,
		specials:   specials,
		closures:   closures,
		bookings:   bookings,
	}, nil
}

// DayGrid resolves one date's offered seating times with the special-date >
// closure > period precedence.
func (s *Snapshot) DayGrid(date time.Time) schedule.DayGrid {
	return schedule.ResolveDay(date, s.specials, s.closures, s.periods)
}

// DiningDuration resolves the occupancy span for a date, honoring a
// custom-hours override.
func (s *Snapshot) DiningDuration(grid schedule.DayGrid) time.Duration {
	return s.Restaurant.Policy.DiningDuration(grid.DiningDurationMin)
}

// Allocate runs the pure allocator against the cached data for one
// concrete seating time.
func (s *Snapshot) Allocate(at time.Time, periodID *uuid.UUID, adults, children int, duration time.Duration) *allocation.Result {
	return allocation.Allocate(allocation.Input{
		TotalCapacity: s.Restaurant.Restaurant.TotalCapacity,
		Policy:        s.Restaurant.Policy,
		Tables:        s.tables,
		Groups:        s.groups,
		PartySize:     adults + children,
		Children:      children,
		StartsAt:      at,
		PeriodID:      periodID,
		Duration:      duration,
		Bookings:      s.bookings,
	})
}

// HasFeasibleSlot reports whether any offered time on the date can seat
// the party.
func (s *Snapshot) HasFeasibleSlot(date time.Time, adults, children int) bool {
	grid := s.DayGrid(date)
	if grid.Closed {
		return false
	}
	duration := s.DiningDuration(grid)
	for _, slot := range grid.Slots {
		if s.Allocate(slot.Time.At(date), slot.PeriodID, adults, children, duration) != nil {
			return true
		}
	}
	return false
}
