package shared

import (
	"context"
	"time"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/table"

	"github.com/google/uuid"
)

// UnitOfWork scopes one booking write to a single database transaction so a
// reservation and its table combination never exist without each other.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Reservations() ReservationRepository
}

// ConflictQuery parameterizes the transaction-time occupancy recheck. The
// coordination lock key is coarse (it includes party size), so this check
// inside the transaction is mandatory, not defensive polish.
type ConflictQuery struct {
	RestaurantID uuid.UUID
	TableIDs     []uuid.UUID
	StartsAt     time.Time
	Duration     time.Duration
	PeriodID     *uuid.UUID
	Unlimited    bool
}

type ReservationRepository interface {
	// Create persists the reservation and, when present, its combination
	// in the surrounding transaction.
	Create(ctx context.Context, res *reservation.Reservation, combo *table.Combination) error
	// CountConflicting locks and counts occupying reservations that clash
	// with the chosen tables.
	CountConflicting(ctx context.Context, q ConflictQuery) (int, error)
	// Cancel clears the assignment and marks the reservation canceled.
	Cancel(ctx context.Context, id uuid.UUID) error
}
