package commands

import (
	"context"
	"log/slog"
	"time"

	"tablebook/internal/domain/allocation"
	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/domain/table"
	"tablebook/internal/infra"
	"tablebook/internal/pkg/clock"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/usecase/queries"
	"tablebook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRestaurantNotFound      = errs.New("restaurant not found")
	ErrNoAvailability          = errs.New("no tables available for the requested slot")
	ErrReservationConflict     = errs.New("reservation conflict")
	ErrInvalidRequest          = errs.New("invalid reservation request")
	ErrReservationNotFound     = errs.New("reservation not found")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateReservationParams struct {
	RestaurantID uuid.UUID
	Adults       int
	Children     int
	At           time.Time
}

type CreateReservationResult struct {
	ReservationID  uuid.UUID
	StartsAt       time.Time
	PartySize      int
	AllocationType string
	Tables         []queries.TableView
}

// SlotLocker is the coordination lock around the book flow; satisfied by
// lock.Manager.
type SlotLocker interface {
	WithLock(ctx context.Context, restaurantID uuid.UUID, at time.Time, partySize int, fn func(ctx context.Context) error) error
}

type BookingCommands interface {
	CreateReservation(ctx context.Context, p CreateReservationParams) (*CreateReservationResult, error)
	CancelReservation(ctx context.Context, id uuid.UUID) error
}

type bookingCommandsImpl struct {
	locks    SlotLocker
	loader   *queries.SnapshotLoader
	uow      shared.UnitOfWork
	services *reservation.Services
	clock    clock.Clock
	logger   *slog.Logger
}

func NewBookingCommands(
	locks SlotLocker,
	loader *queries.SnapshotLoader,
	uow shared.UnitOfWork,
	services *reservation.Services,
	clk clock.Clock,
	logger *slog.Logger,
) BookingCommands {
	return &bookingCommandsImpl{
		locks:    locks,
		loader:   loader,
		uow:      uow,
		services: services,
		clock:    clk,
		logger:   logger,
	}
}

// CreateReservation runs [snapshot → allocate → persist] entirely inside
// the slot lock. The transaction re-validates non-occupancy right before
// insert because the lock key is coarser than a table.
func (c *bookingCommandsImpl) CreateReservation(ctx context.Context, p CreateReservationParams) (*CreateReservationResult, error) {
	partySize := p.Adults + p.Children
	if partySize <= 0 || p.Adults < 0 || p.Children < 0 || p.At.IsZero() {
		return nil, ErrInvalidRequest
	}

	var result *CreateReservationResult
	err := c.locks.WithLock(ctx, p.RestaurantID, p.At, partySize, func(ctx context.Context) error {
		booked, bookErr := c.book(ctx, p, partySize)
		if bookErr != nil {
			return bookErr
		}
		result = booked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *bookingCommandsImpl) book(ctx context.Context, p CreateReservationParams, partySize int) (*CreateReservationResult, error) {
	day := dayOf(p.At)
	snap, err := c.loader.Load(ctx, p.RestaurantID, day, day)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	grid := snap.DayGrid(day)
	if grid.Closed {
		return nil, ErrNoAvailability
	}

	tod, err := schedule.ParseTimeOfDay(p.At.Format("15:04"))
	if err != nil {
		return nil, ErrInvalidRequest
	}
	slot := grid.SlotAt(tod)
	if slot == nil {
		return nil, ErrNoAvailability
	}

	duration := snap.DiningDuration(grid)
	startsAt := slot.Time.At(day)

	allocated := snap.Allocate(startsAt, slot.PeriodID, p.Adults, p.Children, duration)
	if allocated == nil {
		return nil, ErrNoAvailability
	}

	res, err := reservation.NewReservation(c.services, p.RestaurantID, snap.Restaurant.Policy, p.Adults, p.Children, startsAt, slot.PeriodID)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRequest)
	}

	combo, err := c.assign(res, allocated, partySize, snap.Restaurant.Policy.MaxCombinationTables)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRequest)
	}

	conflictQuery := shared.ConflictQuery{
		RestaurantID: p.RestaurantID,
		TableIDs:     tableIDs(allocated.Tables()),
		StartsAt:     startsAt,
		Duration:     duration,
		PeriodID:     slot.PeriodID,
		Unlimited:    snap.Restaurant.Policy.UnlimitedDiningTime,
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		conflicts, err := tx.Reservations().CountConflicting(ctx, conflictQuery)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if conflicts > 0 {
			// A conflicting row appeared between lock acquisition and
			// insert; the caller may retry.
			return ErrReservationConflict
		}
		if err := tx.Reservations().Create(ctx, res, combo); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateReservationResult{
		ReservationID:  res.ID(),
		StartsAt:       startsAt,
		PartySize:      partySize,
		AllocationType: string(allocated.Kind()),
		Tables:         tableViewsOf(allocated),
	}, nil
}

func (c *bookingCommandsImpl) assign(res *reservation.Reservation, allocated *allocation.Result, partySize, maxTables int) (*table.Combination, error) {
	if allocated.Table != nil {
		return nil, res.AssignTable(allocated.Table.ID)
	}

	combo, err := table.NewCombination(allocated.Combination, partySize, maxTables)
	if err != nil {
		return nil, err
	}
	if err := res.AssignCombination(combo.ID()); err != nil {
		return nil, err
	}
	return combo, nil
}

func (c *bookingCommandsImpl) CancelReservation(ctx context.Context, id uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Reservations().Cancel(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func tableIDs(tables []table.Table) []uuid.UUID {
	ids := make([]uuid.UUID, len(tables))
	for i, t := range tables {
		ids[i] = t.ID
	}
	return ids
}

func tableViewsOf(allocated *allocation.Result) []queries.TableView {
	tables := allocated.Tables()
	out := make([]queries.TableView, len(tables))
	for i, t := range tables {
		out[i] = queries.TableView{
			ID:          t.ID,
			Name:        t.Name,
			MinCapacity: t.MinCapacity,
			MaxCapacity: t.MaxCapacity,
			Type:        string(t.Type),
		}
	}
	return out
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
