package queries

import (
	"context"
	"time"

	"tablebook/internal/domain/allocation"
	"tablebook/internal/domain/restaurant"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/domain/table"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type TimeSlotView struct {
	Time     string     `json:"time"`
	Datetime time.Time  `json:"datetime"`
	PeriodID *uuid.UUID `json:"period_id,omitempty"`
}

type DayAvailability struct {
	Date   string         `json:"date"`
	Closed bool           `json:"closed"`
	Times  []TimeSlotView `json:"times"`
}

type TableView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	MinCapacity int       `json:"min_capacity"`
	MaxCapacity int       `json:"max_capacity"`
	Type        string    `json:"type"`
}

type AvailabilityResult struct {
	HasAvailability bool        `json:"has_availability"`
	AllocationType  string      `json:"allocation_type"` // single | combination | none
	AvailableTables []TableView `json:"available_tables"`
}

type RestaurantSnapshot struct {
	Restaurant restaurant.Restaurant
	Policy     restaurant.Policy
}

// Read ports implemented by infra/readstore. Each is a range query so one
// availability request costs a fixed number of round trips regardless of
// how many dates it inspects.
type RestaurantReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RestaurantSnapshot, error)
}

type TableReader interface {
	Tables(ctx context.Context, restaurantID uuid.UUID) ([]table.Table, error)
	Groups(ctx context.Context, restaurantID uuid.UUID) ([]table.Group, error)
}

type ScheduleReader interface {
	Periods(ctx context.Context, restaurantID uuid.UUID) ([]schedule.Period, error)
	SpecialDates(ctx context.Context, restaurantID uuid.UUID, from, to time.Time) ([]schedule.SpecialDate, error)
	Closures(ctx context.Context, restaurantID uuid.UUID, from, to time.Time) ([]schedule.ClosureDate, error)
}

type ReservationReader interface {
	ConfirmedBetween(ctx context.Context, restaurantID uuid.UUID, from, to time.Time) ([]allocation.Booking, error)
}

func tableViews(tables []table.Table) []TableView {
	out := make([]TableView, len(tables))
	for i, t := range tables {
		out[i] = TableView{
			ID:          t.ID,
			Name:        t.Name,
			MinCapacity: t.MinCapacity,
			MaxCapacity: t.MaxCapacity,
			Type:        string(t.Type),
		}
	}
	return out
}
