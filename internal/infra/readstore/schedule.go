package readstore

import (
	"context"
	"time"

	"tablebook/internal/domain/schedule"
	"tablebook/internal/infra"
	"tablebook/internal/infra/db"

	"github.com/google/uuid"
)

type ScheduleReadStore struct {
	db db.DBTX
}

func NewScheduleReadStore(dbtx db.DBTX) *ScheduleReadStore {
	return &ScheduleReadStore{db: dbtx}
}

func (s *ScheduleReadStore) Periods(ctx context.Context, restaurantID uuid.UUID) ([]schedule.Period, error) {
	const query = `
		SELECT id, name, weekdays, start_min, end_min, interval_min, active
		FROM reservation_periods
		WHERE restaurant_id = $1
		ORDER BY start_min`

	rows, err := s.db.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservation periods", err)
	}
	defer rows.Close()

	var out []schedule.Period
	for rows.Next() {
		var p schedule.Period
		var weekdays int16
		var startMin, endMin int
		if err := rows.Scan(&p.ID, &p.Name, &weekdays, &startMin, &endMin, &p.IntervalMin, &p.Active); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation period row", err)
		}
		p.Weekdays = schedule.Weekdays(weekdays) // #nosec G115 -- 7-bit mask
		p.StartTime = schedule.TimeOfDay(startMin)
		p.EndTime = schedule.TimeOfDay(endMin)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation period rows", err)
	}
	return out, nil
}

// SpecialDates returns overrides whose date range touches [from, to],
// custom-hours grids included.
func (s *ScheduleReadStore) SpecialDates(ctx context.Context, restaurantID uuid.UUID, from, to time.Time) ([]schedule.SpecialDate, error) {
	const query = `
		SELECT id, start_date, end_date, mode, dining_duration_min
		FROM special_reservation_dates
		WHERE restaurant_id = $1 AND start_date <= $3 AND end_date >= $2
		ORDER BY start_date`

	rows, err := s.db.Query(ctx, query, restaurantID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list special reservation dates", err)
	}
	defer rows.Close()

	var out []schedule.SpecialDate
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var sd schedule.SpecialDate
		if err := rows.Scan(&sd.ID, &sd.StartDate, &sd.EndDate, &sd.Mode, &sd.DiningDurationMin); err != nil {
			return nil, infra.WrapRepoErr("failed to scan special reservation date row", err)
		}
		index[sd.ID] = len(out)
		out = append(out, sd)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate special reservation date rows", err)
	}
	if len(out) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(out))
	for _, sd := range out {
		ids = append(ids, sd.ID)
	}

	const periodQuery = `
		SELECT special_date_id, start_min, end_min, interval_min
		FROM special_reservation_date_periods
		WHERE special_date_id = ANY($1)
		ORDER BY special_date_id, position`

	periodRows, err := s.db.Query(ctx, periodQuery, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list special date periods", err)
	}
	defer periodRows.Close()

	for periodRows.Next() {
		var owner uuid.UUID
		var startMin, endMin, intervalMin int
		if err := periodRows.Scan(&owner, &startMin, &endMin, &intervalMin); err != nil {
			return nil, infra.WrapRepoErr("failed to scan special date period row", err)
		}
		i := index[owner]
		out[i].Periods = append(out[i].Periods, schedule.SpecialPeriod{
			StartTime:   schedule.TimeOfDay(startMin),
			EndTime:     schedule.TimeOfDay(endMin),
			IntervalMin: intervalMin,
		})
	}
	if err := periodRows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate special date period rows", err)
	}
	return out, nil
}

// Closures returns one-off closures inside [from, to] plus every recurring
// closure; recurring rows match by month/day so date filtering happens in
// the domain.
func (s *ScheduleReadStore) Closures(ctx context.Context, restaurantID uuid.UUID, from, to time.Time) ([]schedule.ClosureDate, error) {
	const query = `
		SELECT id, closure_date, recurring
		FROM closure_dates
		WHERE restaurant_id = $1
		  AND (recurring OR (closure_date >= $2 AND closure_date <= $3))
		ORDER BY closure_date`

	rows, err := s.db.Query(ctx, query, restaurantID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list closure dates", err)
	}
	defer rows.Close()

	var out []schedule.ClosureDate
	for rows.Next() {
		var c schedule.ClosureDate
		if err := rows.Scan(&c.ID, &c.Date, &c.Recurring); err != nil {
			return nil, infra.WrapRepoErr("failed to scan closure date row", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate closure date rows", err)
	}
	return out, nil
}
