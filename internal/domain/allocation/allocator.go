package allocation

import (
	"sort"
	"time"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/restaurant"
	"tablebook/internal/domain/table"

	"github.com/google/uuid"
)

// Booking is an existing occupancy seen by the allocator. Combination
// membership is pre-expanded into TableIDs by the loader so the allocator
// never touches the store.
type Booking struct {
	ReservationID uuid.UUID
	TableIDs      []uuid.UUID
	PartySize     int
	StartsAt      time.Time
	PeriodID      *uuid.UUID
}

// Input is everything one allocation decision needs. The allocator is pure
// computation: the caller owns locking, snapshotting and persistence.
type Input struct {
	TotalCapacity int
	Policy        restaurant.Policy
	Tables        []table.Table
	Groups        []table.Group
	PartySize     int
	Children      int
	StartsAt      time.Time
	PeriodID      *uuid.UUID
	Duration      time.Duration
	Bookings      []Booking
}

type Kind string

const (
	KindSingle      Kind = "single"
	KindCombination Kind = "combination"
	KindNone        Kind = "none"
)

// Result is either one table or an ordered same-group combination.
type Result struct {
	Table       *table.Table
	Combination []table.Table
}

func (r *Result) Kind() Kind {
	switch {
	case r == nil:
		return KindNone
	case r.Table != nil:
		return KindSingle
	default:
		return KindCombination
	}
}

func (r *Result) Tables() []table.Table {
	if r == nil {
		return nil
	}
	if r.Table != nil {
		return []table.Table{*r.Table}
	}
	return r.Combination
}

// Allocate picks a table or combination for the request, or nil when no
// feasible assignment exists. Infeasibility is a normal nil result, never
// an error.
func Allocate(in Input) *Result {
	if in.PartySize <= 0 || in.PartySize > in.TotalCapacity {
		return nil
	}
	if in.Duration <= 0 && !in.Policy.UnlimitedDiningTime {
		in.Duration = in.Policy.DiningDuration(nil)
	}

	busy := busyTables(in)

	groupOrder := make(map[uuid.UUID]int, len(in.Groups))
	for _, g := range in.Groups {
		groupOrder[g.ID] = g.SortOrder
	}

	candidates := candidatePool(in, busy)
	sortBySeatingOrder(candidates, groupOrder)

	result := searchSingle(candidates, in.PartySize)
	if result == nil && in.Policy.AllowCombinations {
		result = searchCombination(candidates, groupOrder, in.PartySize, in.Policy.MaxCombinationTables)
	}
	if result == nil {
		return nil
	}

	if exceedsTotalCapacity(in) {
		return nil
	}
	return result
}

// candidatePool filters to usable tables not in the busy set. Bar seats are
// excluded whenever children are present, on both the single and the
// combination path.
func candidatePool(in Input, busy map[uuid.UUID]struct{}) []table.Table {
	out := make([]table.Table, 0, len(in.Tables))
	for _, t := range in.Tables {
		if !t.Usable() {
			continue
		}
		if _, taken := busy[t.ID]; taken {
			continue
		}
		if in.Children > 0 && t.Type == table.TypeBar {
			continue
		}
		out = append(out, t)
	}
	return out
}

func sortBySeatingOrder(tables []table.Table, groupOrder map[uuid.UUID]int) {
	sort.SliceStable(tables, func(i, j int) bool {
		gi, gj := groupOrder[tables[i].GroupID], groupOrder[tables[j].GroupID]
		if gi != gj {
			return gi < gj
		}
		return tables[i].SortOrder < tables[j].SortOrder
	})
}

func searchSingle(candidates []table.Table, partySize int) *Result {
	for i := range candidates {
		if candidates[i].Fits(partySize) {
			t := candidates[i]
			return &Result{Table: &t}
		}
	}
	return nil
}

// exceedsTotalCapacity guards against combinations double-counting seats:
// all concurrently seated parties plus this one must fit the restaurant.
func exceedsTotalCapacity(in Input) bool {
	seated := in.PartySize
	for _, b := range in.Bookings {
		if bookingConflicts(in, b) {
			seated += b.PartySize
		}
	}
	return seated > in.TotalCapacity
}

func busyTables(in Input) map[uuid.UUID]struct{} {
	busy := make(map[uuid.UUID]struct{})
	for _, b := range in.Bookings {
		if !bookingConflicts(in, b) {
			continue
		}
		for _, id := range b.TableIDs {
			busy[id] = struct{}{}
		}
	}
	return busy
}

// bookingConflicts applies the occupancy model: under unlimited dining time
// a (table, period) pair is taken for the whole date; otherwise occupancy
// is a time-window intersection.
func bookingConflicts(in Input, b Booking) bool {
	target := reservation.NewWindow(in.StartsAt, in.Duration)
	booked := reservation.NewWindow(b.StartsAt, in.Duration)

	if in.Policy.UnlimitedDiningTime {
		return target.SameDay(booked) && samePeriod(in.PeriodID, b.PeriodID)
	}
	return target.Intersects(booked)
}

func samePeriod(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
