package repository

import (
	"context"
	"time"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/table"
	"tablebook/internal/infra"
	"tablebook/internal/infra/db"
	"tablebook/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation, combo *table.Combination) error {
	if combo != nil {
		if err := r.createCombination(ctx, res.RestaurantID(), combo); err != nil {
			return err
		}
	}

	const query = `
		INSERT INTO reservations
			(id, restaurant_id, party_size, adults, children, starts_at,
			 period_id, status, table_id, combination_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())`

	_, err := r.db.Exec(ctx, query,
		res.ID(), res.RestaurantID(), res.PartySize(), res.Adults(), res.Children(),
		res.StartsAt(), res.PeriodID(), res.Status(), res.TableID(), res.CombinationID(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) createCombination(ctx context.Context, restaurantID uuid.UUID, combo *table.Combination) error {
	const comboQuery = `
		INSERT INTO table_combinations (id, restaurant_id, group_id, created_at)
		VALUES ($1, $2, $3, now())`

	if _, err := r.db.Exec(ctx, comboQuery, combo.ID(), restaurantID, combo.GroupID()); err != nil {
		return infra.WrapRepoErr("failed to create table combination", err)
	}

	const memberQuery = `
		INSERT INTO table_combination_members (combination_id, table_id, position)
		VALUES ($1, $2, $3)`

	for i, tableID := range combo.TableIDs() {
		if _, err := r.db.Exec(ctx, memberQuery, combo.ID(), tableID, i); err != nil {
			return infra.WrapRepoErr("failed to create table combination member", err)
		}
	}
	return nil
}

// CountConflicting re-validates non-occupancy right before insert, with the
// candidate rows locked. It closes the race the coarse coordination lock
// cannot: two different party sizes competing for the same table.
func (r *ReservationRepository) CountConflicting(ctx context.Context, q shared.ConflictQuery) (int, error) {
	var query string
	var args []any

	if q.Unlimited {
		y, m, d := q.StartsAt.Date()
		dayStart := time.Date(y, m, d, 0, 0, 0, 0, q.StartsAt.Location())
		query = `
			SELECT count(*)
			FROM (
				SELECT r.id
				FROM reservations r
				LEFT JOIN table_combination_members m ON m.combination_id = r.combination_id
				WHERE r.restaurant_id = $1
				  AND r.status IN ('confirmed', 'seated')
				  AND (r.table_id = ANY($2) OR m.table_id = ANY($2))
				  AND r.starts_at >= $3 AND r.starts_at < $4
				  AND r.period_id IS NOT DISTINCT FROM $5
				FOR UPDATE OF r
			) conflicts`
		args = []any{q.RestaurantID, q.TableIDs, dayStart, dayStart.AddDate(0, 0, 1), q.PeriodID}
	} else {
		query = `
			SELECT count(*)
			FROM (
				SELECT r.id
				FROM reservations r
				LEFT JOIN table_combination_members m ON m.combination_id = r.combination_id
				WHERE r.restaurant_id = $1
				  AND r.status IN ('confirmed', 'seated')
				  AND (r.table_id = ANY($2) OR m.table_id = ANY($2))
				  AND r.starts_at < $4
				  AND r.starts_at + $5::interval > $3
				FOR UPDATE OF r
			) conflicts`
		args = []any{q.RestaurantID, q.TableIDs, q.StartsAt, q.StartsAt.Add(q.Duration), q.Duration}
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to recheck reservation conflicts", err)
	}
	return count, nil
}

func (r *ReservationRepository) Cancel(ctx context.Context, id uuid.UUID) error {
	const query = `
		UPDATE reservations
		SET status = 'canceled', table_id = NULL, combination_id = NULL, updated_at = now()
		WHERE id = $1 AND status <> 'canceled'`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return infra.WrapRepoErr("failed to cancel reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found or already canceled", nil, infra.KindNotFound)
	}
	return nil
}
