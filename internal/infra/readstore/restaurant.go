package readstore

import (
	"context"

	"tablebook/internal/infra"
	"tablebook/internal/infra/db"
	"tablebook/internal/pkg/pgconv"
	"tablebook/internal/usecase/queries"

	"github.com/google/uuid"
)

type RestaurantReadStore struct {
	db db.DBTX
}

func NewRestaurantReadStore(dbtx db.DBTX) *RestaurantReadStore {
	return &RestaurantReadStore{db: dbtx}
}

// FindByID loads the restaurant with its policy; total capacity is derived
// from active bookable tables at read time, not stored.
func (s *RestaurantReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RestaurantSnapshot, error) {
	const query = `
		SELECT r.id, r.name,
		       r.min_party_size, r.max_party_size, r.advance_booking_days,
		       r.dining_duration_min, r.unlimited_dining_time,
		       r.allow_combinations, r.max_combination_tables,
		       COALESCE((
		           SELECT SUM(t.max_capacity)
		           FROM tables t
		           WHERE t.restaurant_id = r.id
		             AND t.bookable
		             AND t.operational_status = 'normal'
		       ), 0) AS total_capacity
		FROM restaurants r
		WHERE r.id = $1`

	var snap queries.RestaurantSnapshot
	err := s.db.QueryRow(ctx, query, id).Scan(
		&snap.Restaurant.ID,
		&snap.Restaurant.Name,
		&snap.Policy.MinPartySize,
		&snap.Policy.MaxPartySize,
		&snap.Policy.AdvanceBookingDays,
		&snap.Policy.DiningDurationMin,
		&snap.Policy.UnlimitedDiningTime,
		&snap.Policy.AllowCombinations,
		&snap.Policy.MaxCombinationTables,
		&snap.Restaurant.TotalCapacity,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("restaurant not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find restaurant by ID", err)
	}
	return &snap, nil
}
