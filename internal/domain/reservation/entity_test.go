//go:build unit

package reservation

import (
	"testing"
	"time"

	"tablebook/internal/domain/restaurant"
	"tablebook/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServices() *Services {
	return &Services{
		Clock: clock.NewMockClock(time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)),
	}
}

func testPolicy() restaurant.Policy {
	return restaurant.Policy{
		MinPartySize:       1,
		MaxPartySize:       8,
		AdvanceBookingDays: 30,
		DiningDurationMin:  120,
	}
}

func TestNewReservation(t *testing.T) {
	restaurantID := uuid.New()
	periodID := uuid.New()
	seating := time.Date(2026, time.March, 7, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		adults   int
		children int
		startsAt time.Time
		wantErr  error
	}{
		{name: "valid family booking", adults: 2, children: 1, startsAt: seating},
		{name: "party above the policy ceiling", adults: 9, startsAt: seating, wantErr: ErrInvalidPartySize},
		{name: "negative children", adults: 3, children: -1, startsAt: seating, wantErr: ErrInvalidPartySize},
		{name: "date in the past", adults: 2, startsAt: seating.AddDate(0, -1, 0), wantErr: ErrOutsideBookingWindow},
		{name: "date beyond the horizon", adults: 2, startsAt: seating.AddDate(0, 2, 0), wantErr: ErrOutsideBookingWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewReservation(testServices(), restaurantID, testPolicy(), tt.adults, tt.children, tt.startsAt, &periodID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, restaurantID, res.RestaurantID())
			assert.Equal(t, tt.adults+tt.children, res.PartySize())
			assert.Equal(t, StatusConfirmed, res.Status())
		})
	}
}

func TestReservationAssignment(t *testing.T) {
	seating := time.Date(2026, time.March, 7, 18, 0, 0, 0, time.UTC)

	newReservation := func(t *testing.T) *Reservation {
		t.Helper()
		res, err := NewReservation(testServices(), uuid.New(), testPolicy(), 2, 0, seating, nil)
		require.NoError(t, err)
		return res
	}

	t.Run("table and combination are mutually exclusive", func(t *testing.T) {
		res := newReservation(t)
		require.NoError(t, res.AssignTable(uuid.New()))
		assert.ErrorIs(t, res.AssignCombination(uuid.New()), ErrInconsistentAssigning)

		res = newReservation(t)
		require.NoError(t, res.AssignCombination(uuid.New()))
		assert.ErrorIs(t, res.AssignTable(uuid.New()), ErrInconsistentAssigning)
	})

	t.Run("cancel clears the assignment", func(t *testing.T) {
		res := newReservation(t)
		require.NoError(t, res.AssignTable(uuid.New()))

		require.NoError(t, res.Cancel())
		assert.Equal(t, StatusCanceled, res.Status())
		assert.Nil(t, res.TableID())
		assert.Nil(t, res.CombinationID())

		assert.ErrorIs(t, res.Cancel(), ErrAlreadyCanceled)
	})
}

func TestWindow(t *testing.T) {
	start := time.Date(2026, time.March, 7, 18, 0, 0, 0, time.UTC)
	w := NewWindow(start, 2*time.Hour)

	tests := []struct {
		name  string
		other Window
		want  bool
	}{
		{name: "identical", other: NewWindow(start, 2*time.Hour), want: true},
		{name: "overlapping tail", other: NewWindow(start.Add(time.Hour), 2*time.Hour), want: true},
		{name: "overlapping head", other: NewWindow(start.Add(-time.Hour), 2*time.Hour), want: true},
		{name: "contained", other: NewWindow(start.Add(30*time.Minute), time.Hour), want: true},
		{name: "touching end is free", other: NewWindow(start.Add(2*time.Hour), 2*time.Hour), want: false},
		{name: "touching start is free", other: NewWindow(start.Add(-2*time.Hour), 2*time.Hour), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.Intersects(tt.other))
		})
	}

	assert.True(t, w.SameDay(NewWindow(start.Add(4*time.Hour), time.Hour)))
	assert.False(t, w.SameDay(NewWindow(start.AddDate(0, 0, 1), time.Hour)))
}

func TestStatusOccupies(t *testing.T) {
	assert.True(t, StatusConfirmed.Occupies())
	assert.True(t, StatusSeated.Occupies())
	assert.False(t, StatusCompleted.Occupies())
	assert.False(t, StatusCanceled.Occupies())
	assert.False(t, StatusNoShow.Occupies())
}
