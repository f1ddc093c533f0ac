package queries

import (
	"context"
	"time"

	"tablebook/internal/domain/allocation"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/infra"
	"tablebook/internal/pkg/clock"
	"tablebook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrRestaurantNotFound = errs.New("restaurant not found")

const dateLayout = "2006-01-02"

type CheckAvailabilityRequest struct {
	RestaurantID uuid.UUID
	At           time.Time
	Adults       int
	Children     int
}

type AvailabilityQueries interface {
	// AvailableDates answers which dates in [from, to] have at least one
	// feasible seating for the party.
	AvailableDates(ctx context.Context, restaurantID uuid.UUID, from, to time.Time, adults, children int) ([]string, error)
	// AvailableTimes answers the exact offered times for one date.
	AvailableTimes(ctx context.Context, restaurantID uuid.UUID, date time.Time, adults, children int) (*DayAvailability, error)
	// Check answers whether one concrete datetime can seat the party and
	// with which tables.
	Check(ctx context.Context, req CheckAvailabilityRequest) (*AvailabilityResult, error)
}

type availabilityQueriesImpl struct {
	loader *SnapshotLoader
	clock  clock.Clock
}

func NewAvailabilityQueries(loader *SnapshotLoader, clk clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{loader: loader, clock: clk}
}

func (q *availabilityQueriesImpl) AvailableDates(ctx context.Context, restaurantID uuid.UUID, from, to time.Time, adults, children int) ([]string, error) {
	if adults+children <= 0 || to.Before(from) {
		return []string{}, nil
	}

	snap, err := q.load(ctx, restaurantID, from, to)
	if err != nil {
		return nil, err
	}

	today := clock.Today(q.clock)
	out := []string{}
	for date := dayOf(from); !date.After(dayOf(to)); date = date.AddDate(0, 0, 1) {
		if !snap.Restaurant.Policy.WithinBookingWindow(today, date) {
			continue
		}
		if snap.HasFeasibleSlot(date, adults, children) {
			out = append(out, date.Format(dateLayout))
		}
	}
	return out, nil
}

func (q *availabilityQueriesImpl) AvailableTimes(ctx context.Context, restaurantID uuid.UUID, date time.Time, adults, children int) (*DayAvailability, error) {
	day := dayOf(date)
	result := &DayAvailability{Date: day.Format(dateLayout), Times: []TimeSlotView{}}

	if adults+children <= 0 {
		result.Closed = true
		return result, nil
	}

	snap, err := q.load(ctx, restaurantID, day, day)
	if err != nil {
		return nil, err
	}

	if !snap.Restaurant.Policy.WithinBookingWindow(clock.Today(q.clock), day) {
		result.Closed = true
		return result, nil
	}

	grid := snap.DayGrid(day)
	if grid.Closed {
		result.Closed = true
		return result, nil
	}

	duration := snap.DiningDuration(grid)
	for _, slot := range grid.Slots {
		at := slot.Time.At(day)
		if snap.Allocate(at, slot.PeriodID, adults, children, duration) == nil {
			continue
		}
		result.Times = append(result.Times, TimeSlotView{
			Time:     slot.Time.String(),
			Datetime: at,
			PeriodID: slot.PeriodID,
		})
	}
	return result, nil
}

func (q *availabilityQueriesImpl) Check(ctx context.Context, req CheckAvailabilityRequest) (*AvailabilityResult, error) {
	none := &AvailabilityResult{AllocationType: string(allocation.KindNone), AvailableTables: []TableView{}}
	if req.Adults+req.Children <= 0 {
		return none, nil
	}

	day := dayOf(req.At)
	snap, err := q.load(ctx, req.RestaurantID, day, day)
	if err != nil {
		return nil, err
	}

	if !snap.Restaurant.Policy.WithinBookingWindow(clock.Today(q.clock), day) {
		return none, nil
	}

	grid := snap.DayGrid(day)
	if grid.Closed {
		return none, nil
	}

	tod, err := schedule.ParseTimeOfDay(req.At.Format("15:04"))
	if err != nil {
		return none, nil
	}
	slot := grid.SlotAt(tod)
	if slot == nil {
		return none, nil
	}

	result := snap.Allocate(slot.Time.At(day), slot.PeriodID, req.Adults, req.Children, snap.DiningDuration(grid))
	if result == nil {
		return none, nil
	}
	return &AvailabilityResult{
		HasAvailability: true,
		AllocationType:  string(result.Kind()),
		AvailableTables: tableViews(result.Tables()),
	}, nil
}

func (q *availabilityQueriesImpl) load(ctx context.Context, restaurantID uuid.UUID, from, to time.Time) (*Snapshot, error) {
	snap, err := q.loader.Load(ctx, restaurantID, from, to)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, errs.Wrap(err, "failed to load availability snapshot")
	}
	return snap, nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
