package readstore

import (
	"context"
	"time"

	"tablebook/internal/domain/allocation"
	"tablebook/internal/infra"
	"tablebook/internal/infra/db"

	"github.com/google/uuid"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

// ConfirmedBetween loads every occupying reservation starting in [from, to)
// with combination membership expanded to table IDs, so availability for a
// whole date range costs one round trip.
func (s *ReservationReadStore) ConfirmedBetween(ctx context.Context, restaurantID uuid.UUID, from, to time.Time) ([]allocation.Booking, error) {
	const query = `
		SELECT r.id, r.party_size, r.starts_at, r.period_id,
		       COALESCE(
		           CASE WHEN r.table_id IS NOT NULL THEN ARRAY[r.table_id] END,
		           (SELECT array_agg(m.table_id ORDER BY m.position)
		              FROM table_combination_members m
		             WHERE m.combination_id = r.combination_id),
		           '{}'
		       ) AS table_ids
		FROM reservations r
		WHERE r.restaurant_id = $1
		  AND r.status IN ('confirmed', 'seated')
		  AND r.starts_at >= $2 AND r.starts_at < $3
		ORDER BY r.starts_at`

	rows, err := s.db.Query(ctx, query, restaurantID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list confirmed reservations", err)
	}
	defer rows.Close()

	var out []allocation.Booking
	for rows.Next() {
		var b allocation.Booking
		if err := rows.Scan(&b.ReservationID, &b.PartySize, &b.StartsAt, &b.PeriodID, &b.TableIDs); err != nil {
			return nil, infra.WrapRepoErr("failed to scan confirmed reservation row", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate confirmed reservation rows", err)
	}
	return out, nil
}
