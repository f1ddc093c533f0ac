package reservation

import (
	"errors"
	"time"

	"tablebook/internal/domain/restaurant"
	"tablebook/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrInvalidPartySize      = errors.New("invalid party size")
	ErrInvalidComposition    = errors.New("adults and children must sum to party size")
	ErrOutsideBookingWindow  = errors.New("date is outside the booking window")
	ErrAlreadyCanceled       = errors.New("reservation is already canceled")
	ErrInconsistentAssigning = errors.New("reservation cannot hold both a table and a combination")
)

type Services struct {
	Clock clock.Clock
}

// Reservation is a confirmed (or later canceled) booking. The table
// assignment is set atomically at creation: exactly one of tableID or
// combinationID, never both.
type Reservation struct {
	id            uuid.UUID
	restaurantID  uuid.UUID
	partySize     int
	adults        int
	children      int
	startsAt      time.Time
	periodID      *uuid.UUID
	status        Status
	tableID       *uuid.UUID
	combinationID *uuid.UUID
	createdAt     time.Time
	updatedAt     time.Time
}

func NewReservation(
	services *Services,
	restaurantID uuid.UUID,
	policy restaurant.Policy,
	adults, children int,
	startsAt time.Time,
	periodID *uuid.UUID,
) (*Reservation, error) {
	partySize := adults + children
	if adults < 0 || children < 0 || !policy.PartySizeAllowed(partySize) {
		return nil, ErrInvalidPartySize
	}
	if !policy.WithinBookingWindow(clock.Today(services.Clock), startsAt) {
		return nil, ErrOutsideBookingWindow
	}

	var pid *uuid.UUID
	if periodID != nil {
		id := *periodID
		pid = &id
	}

	return &Reservation{
		id:           uuid.New(),
		restaurantID: restaurantID,
		partySize:    partySize,
		adults:       adults,
		children:     children,
		startsAt:     startsAt,
		periodID:     pid,
		status:       StatusConfirmed,
	}, nil
}

func ReconstructReservation(
	id, restaurantID uuid.UUID,
	partySize, adults, children int,
	startsAt time.Time,
	periodID *uuid.UUID,
	status Status,
	tableID, combinationID *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:            id,
		restaurantID:  restaurantID,
		partySize:     partySize,
		adults:        adults,
		children:      children,
		startsAt:      startsAt,
		periodID:      periodID,
		status:        status,
		tableID:       tableID,
		combinationID: combinationID,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// AssignTable places the party at a single table.
func (r *Reservation) AssignTable(tableID uuid.UUID) error {
	if r.combinationID != nil {
		return ErrInconsistentAssigning
	}
	id := tableID
	r.tableID = &id
	return nil
}

// AssignCombination places the party across a table combination.
func (r *Reservation) AssignCombination(combinationID uuid.UUID) error {
	if r.tableID != nil {
		return ErrInconsistentAssigning
	}
	id := combinationID
	r.combinationID = &id
	return nil
}

// Cancel clears the assignment so the tables become reusable; the row
// itself is kept.
func (r *Reservation) Cancel() error {
	if r.status == StatusCanceled {
		return ErrAlreadyCanceled
	}
	r.status = StatusCanceled
	r.tableID = nil
	r.combinationID = nil
	return nil
}

func (r *Reservation) Window(duration time.Duration) Window {
	return NewWindow(r.startsAt, duration)
}

func (r *Reservation) ID() uuid.UUID             { return r.id }
func (r *Reservation) RestaurantID() uuid.UUID   { return r.restaurantID }
func (r *Reservation) PartySize() int            { return r.partySize }
func (r *Reservation) Adults() int               { return r.adults }
func (r *Reservation) Children() int             { return r.children }
func (r *Reservation) StartsAt() time.Time       { return r.startsAt }
func (r *Reservation) PeriodID() *uuid.UUID      { return r.periodID }
func (r *Reservation) Status() Status            { return r.status }
func (r *Reservation) TableID() *uuid.UUID       { return r.tableID }
func (r *Reservation) CombinationID() *uuid.UUID { return r.combinationID }
func (r *Reservation) CreatedAt() time.Time      { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time      { return r.updatedAt }
