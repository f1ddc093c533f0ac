//go:build unit

package commands

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"tablebook/internal/domain/allocation"
	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/restaurant"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/domain/table"
	"tablebook/internal/infra"
	"tablebook/internal/pkg/clock"
	"tablebook/internal/usecase/queries"
	"tablebook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStores struct {
	restaurantID uuid.UUID
	snapshot     queries.RestaurantSnapshot
	tables       []table.Table
	groups       []table.Group
	periods      []schedule.Period
	bookings     []allocation.Booking
}

func (f *fakeStores) FindByID(_ context.Context, id uuid.UUID) (*queries.RestaurantSnapshot, error) {
	if id != f.restaurantID {
		return nil, infra.WrapRepoErr("restaurant not found", nil, infra.KindNotFound)
	}
	snap := f.snapshot
	return &snap, nil
}

func (f *fakeStores) Tables(_ context.Context, _ uuid.UUID) ([]table.Table, error) {
	return f.tables, nil
}

func (f *fakeStores) Groups(_ context.Context, _ uuid.UUID) ([]table.Group, error) {
	return f.groups, nil
}

func (f *fakeStores) Periods(_ context.Context, _ uuid.UUID) ([]schedule.Period, error) {
	return f.periods, nil
}

func (f *fakeStores) SpecialDates(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]schedule.SpecialDate, error) {
	return nil, nil
}

func (f *fakeStores) Closures(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]schedule.ClosureDate, error) {
	return nil, nil
}

func (f *fakeStores) ConfirmedBetween(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]allocation.Booking, error) {
	return f.bookings, nil
}

// fakeLocker records every lock round trip so tests can assert the booking
// ran under the lock and the lock came back.
type fakeLocker struct {
	acquired int
	released int
	contend  bool
}

func (l *fakeLocker) WithLock(ctx context.Context, _ uuid.UUID, _ time.Time, _ int, fn func(ctx context.Context) error) error {
	if l.contend {
		return ErrReservationConflict
	}
	l.acquired++
	defer func() { l.released++ }()
	return fn(ctx)
}

type fakeReservationRepo struct {
	conflicts   int
	countErr    error
	createErr   error
	cancelErr   error
	created     *reservation.Reservation
	createdAlso *table.Combination
	lastQuery   shared.ConflictQuery
	canceledID  uuid.UUID
}

func (r *fakeReservationRepo) Create(_ context.Context, res *reservation.Reservation, combo *table.Combination) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = res
	r.createdAlso = combo
	return nil
}

func (r *fakeReservationRepo) CountConflicting(_ context.Context, q shared.ConflictQuery) (int, error) {
	r.lastQuery = q
	return r.conflicts, r.countErr
}

func (r *fakeReservationRepo) Cancel(_ context.Context, id uuid.UUID) error {
	if r.cancelErr != nil {
		return r.cancelErr
	}
	r.canceledID = id
	return nil
}

type fakeUoW struct {
	repo *fakeReservationRepo
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u)
}

func (u *fakeUoW) Reservations() shared.ReservationRepository {
	return u.repo
}

var bookingToday = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

func newBookingFixture(t *testing.T) *fakeStores {
	t.Helper()
	group := table.Group{ID: uuid.New(), Name: "main", SortOrder: 1}
	start, err := schedule.ParseTimeOfDay("18:00")
	require.NoError(t, err)
	end, err := schedule.ParseTimeOfDay("20:00")
	require.NoError(t, err)

	return &fakeStores{
		restaurantID: uuid.New(),
		snapshot: queries.RestaurantSnapshot{
			Restaurant: restaurant.Restaurant{ID: uuid.New(), Name: "Trattoria", TotalCapacity: 8},
			Policy: restaurant.Policy{
				MaxPartySize:       8,
				AdvanceBookingDays: 30,
				DiningDurationMin:  120,
				AllowCombinations:  true,
			},
		},
		groups: []table.Group{group},
		tables: []table.Table{
			{ID: uuid.New(), GroupID: group.ID, Name: "T1", MinCapacity: 2, MaxCapacity: 4, Type: table.TypeRegular, SortOrder: 1, Status: table.StatusNormal, Bookable: true},
			{ID: uuid.New(), GroupID: group.ID, Name: "T2", MinCapacity: 1, MaxCapacity: 2, Type: table.TypeRegular, SortOrder: 2, CanCombine: true, Status: table.StatusNormal, Bookable: true},
			{ID: uuid.New(), GroupID: group.ID, Name: "T3", MinCapacity: 1, MaxCapacity: 2, Type: table.TypeRegular, SortOrder: 3, CanCombine: true, Status: table.StatusNormal, Bookable: true},
		},
		periods: []schedule.Period{{
			ID:          uuid.New(),
			Name:        "dinner",
			Weekdays:    schedule.AllWeekdays,
			StartTime:   start,
			EndTime:     end,
			IntervalMin: 60,
			Active:      true,
		}},
	}
}

func newBookingCommands(f *fakeStores, locker *fakeLocker, repo *fakeReservationRepo) BookingCommands {
	clk := clock.NewMockClock(bookingToday)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	loader := queries.NewSnapshotLoader(f, f, f, f)
	return NewBookingCommands(locker, loader, &fakeUoW{repo: repo}, &reservation.Services{Clock: clk}, clk, logger)
}

func seatingAt(hour int) time.Time {
	return time.Date(2026, time.March, 7, hour, 0, 0, 0, time.UTC)
}

func TestCreateReservation(t *testing.T) {
	ctx := t.Context()

	t.Run("single table booking", func(t *testing.T) {
		f := newBookingFixture(t)
		locker := &fakeLocker{}
		repo := &fakeReservationRepo{}
		cmds := newBookingCommands(f, locker, repo)

		result, err := cmds.CreateReservation(ctx, CreateReservationParams{
			RestaurantID: f.restaurantID,
			Adults:       2,
			At:           seatingAt(18),
		})
		require.NoError(t, err)

		assert.Equal(t, "single", result.AllocationType)
		assert.Equal(t, 2, result.PartySize)
		assert.Equal(t, seatingAt(18), result.StartsAt)
		require.Len(t, result.Tables, 1)
		assert.Equal(t, "T1", result.Tables[0].Name)

		require.NotNil(t, repo.created)
		assert.Equal(t, result.ReservationID, repo.created.ID())
		assert.NotNil(t, repo.created.TableID())
		assert.Nil(t, repo.createdAlso)

		assert.Equal(t, 1, locker.acquired)
		assert.Equal(t, 1, locker.released)
	})

	t.Run("combination booking persists the combination", func(t *testing.T) {
		f := newBookingFixture(t)
		// The four-top is taken, forcing the party of four onto T2+T3.
		f.bookings = []allocation.Booking{{
			ReservationID: uuid.New(),
			TableIDs:      []uuid.UUID{f.tables[0].ID},
			PartySize:     4,
			StartsAt:      seatingAt(18),
			PeriodID:      &f.periods[0].ID,
		}}
		repo := &fakeReservationRepo{}
		cmds := newBookingCommands(f, &fakeLocker{}, repo)

		result, err := cmds.CreateReservation(ctx, CreateReservationParams{
			RestaurantID: f.restaurantID,
			Adults:       4,
			At:           seatingAt(18),
		})
		require.NoError(t, err)

		assert.Equal(t, "combination", result.AllocationType)
		require.NotNil(t, repo.createdAlso)
		assert.Len(t, repo.createdAlso.Members(), 2)
		require.NotNil(t, repo.created.CombinationID())
		assert.Equal(t, repo.createdAlso.ID(), *repo.created.CombinationID())
		assert.Nil(t, repo.created.TableID())

		// The recheck must cover exactly the chosen tables.
		assert.ElementsMatch(t, repo.createdAlso.TableIDs(), repo.lastQuery.TableIDs)
	})

	t.Run("transactional conflict surfaces as a conflict", func(t *testing.T) {
		f := newBookingFixture(t)
		locker := &fakeLocker{}
		repo := &fakeReservationRepo{conflicts: 1}
		cmds := newBookingCommands(f, locker, repo)

		_, err := cmds.CreateReservation(ctx, CreateReservationParams{
			RestaurantID: f.restaurantID,
			Adults:       2,
			At:           seatingAt(18),
		})
		assert.ErrorIs(t, err, ErrReservationConflict)
		assert.Nil(t, repo.created)
		assert.Equal(t, locker.acquired, locker.released)
	})

	t.Run("lock contention rejects before any work", func(t *testing.T) {
		f := newBookingFixture(t)
		repo := &fakeReservationRepo{}
		cmds := newBookingCommands(f, &fakeLocker{contend: true}, repo)

		_, err := cmds.CreateReservation(ctx, CreateReservationParams{
			RestaurantID: f.restaurantID,
			Adults:       2,
			At:           seatingAt(18),
		})
		assert.ErrorIs(t, err, ErrReservationConflict)
		assert.Nil(t, repo.created)
	})

	t.Run("fully booked slot", func(t *testing.T) {
		f := newBookingFixture(t)
		f.bookings = []allocation.Booking{{
			ReservationID: uuid.New(),
			TableIDs:      []uuid.UUID{f.tables[0].ID, f.tables[1].ID, f.tables[2].ID},
			PartySize:     8,
			StartsAt:      seatingAt(18),
			PeriodID:      &f.periods[0].ID,
		}}
		locker := &fakeLocker{}
		cmds := newBookingCommands(f, locker, &fakeReservationRepo{})

		_, err := cmds.CreateReservation(ctx, CreateReservationParams{
			RestaurantID: f.restaurantID,
			Adults:       2,
			At:           seatingAt(18),
		})
		assert.ErrorIs(t, err, ErrNoAvailability)
		assert.Equal(t, locker.acquired, locker.released)
	})

	t.Run("off-grid seating time", func(t *testing.T) {
		f := newBookingFixture(t)
		cmds := newBookingCommands(f, &fakeLocker{}, &fakeReservationRepo{})

		_, err := cmds.CreateReservation(ctx, CreateReservationParams{
			RestaurantID: f.restaurantID,
			Adults:       2,
			At:           seatingAt(18).Add(30 * time.Minute),
		})
		assert.ErrorIs(t, err, ErrNoAvailability)
	})

	t.Run("invalid party composition", func(t *testing.T) {
		f := newBookingFixture(t)
		cmds := newBookingCommands(f, &fakeLocker{}, &fakeReservationRepo{})

		_, err := cmds.CreateReservation(ctx, CreateReservationParams{
			RestaurantID: f.restaurantID,
			Adults:       0,
			Children:     0,
			At:           seatingAt(18),
		})
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("unknown restaurant", func(t *testing.T) {
		f := newBookingFixture(t)
		locker := &fakeLocker{}
		cmds := newBookingCommands(f, locker, &fakeReservationRepo{})

		_, err := cmds.CreateReservation(ctx, CreateReservationParams{
			RestaurantID: uuid.New(),
			Adults:       2,
			At:           seatingAt(18),
		})
		assert.ErrorIs(t, err, ErrRestaurantNotFound)
		assert.Equal(t, locker.acquired, locker.released)
	})

	t.Run("database failure during the recheck", func(t *testing.T) {
		f := newBookingFixture(t)
		locker := &fakeLocker{}
		repo := &fakeReservationRepo{countErr: infra.WrapRepoErr("count failed", assert.AnError)}
		cmds := newBookingCommands(f, locker, repo)

		_, err := cmds.CreateReservation(ctx, CreateReservationParams{
			RestaurantID: f.restaurantID,
			Adults:       2,
			At:           seatingAt(18),
		})
		assert.ErrorIs(t, err, ErrDatabaseOperationFailed)
		assert.Equal(t, locker.acquired, locker.released)
	})
}

func TestCancelReservation(t *testing.T) {
	ctx := t.Context()

	t.Run("cancel an existing reservation", func(t *testing.T) {
		repo := &fakeReservationRepo{}
		cmds := newBookingCommands(newBookingFixture(t), &fakeLocker{}, repo)

		id := uuid.New()
		require.NoError(t, cmds.CancelReservation(ctx, id))
		assert.Equal(t, id, repo.canceledID)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		repo := &fakeReservationRepo{cancelErr: infra.WrapRepoErr("no rows", nil, infra.KindNotFound)}
		cmds := newBookingCommands(newBookingFixture(t), &fakeLocker{}, repo)

		err := cmds.CancelReservation(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("database failure", func(t *testing.T) {
		repo := &fakeReservationRepo{cancelErr: infra.WrapRepoErr("db down", assert.AnError)}
		cmds := newBookingCommands(newBookingFixture(t), &fakeLocker{}, repo)

		err := cmds.CancelReservation(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrDatabaseOperationFailed)
	})
}
