//go:build unit

package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, s string) TimeOfDay {
	t.Helper()
	tod, err := ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{name: "morning", input: "09:30", want: TimeOfDay(9*60 + 30)},
		{name: "midnight", input: "00:00", want: TimeOfDay(0)},
		{name: "last minute", input: "23:59", want: TimeOfDay(23*60 + 59)},
		{name: "no leading zero", input: "9:30", wantErr: true},
		{name: "out of range hour", input: "24:00", wantErr: true},
		{name: "garbage", input: "lunch", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeOfDay)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeriodTimes(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		interval int
		want     []string
	}{
		{
			name:  "end boundary is a seating time",
			start: "18:00", end: "20:00", interval: 120,
			want: []string{"18:00", "20:00"},
		},
		{
			name:  "half hour grid",
			start: "11:00", end: "13:00", interval: 30,
			want: []string{"11:00", "11:30", "12:00", "12:30", "13:00"},
		},
		{
			name:  "interval overshoots end",
			start: "18:00", end: "19:00", interval: 90,
			want: []string{"18:00"},
		},
		{
			name:  "single point grid",
			start: "18:00", end: "18:00", interval: 60,
			want: []string{"18:00"},
		},
		{
			name:  "end before start",
			start: "20:00", end: "18:00", interval: 30,
			want: nil,
		},
		{
			name:  "zero interval",
			start: "18:00", end: "20:00", interval: 0,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Period{
				StartTime:   mustTime(t, tt.start),
				EndTime:     mustTime(t, tt.end),
				IntervalMin: tt.interval,
			}
			got := p.Times()
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			strs := make([]string, len(got))
			for i, tod := range got {
				strs[i] = tod.String()
			}
			assert.Equal(t, tt.want, strs)
		})
	}
}

func TestPeriodAppliesTo(t *testing.T) {
	p := Period{
		Weekdays: NewWeekdays(time.Saturday, time.Sunday),
		Active:   true,
	}

	saturday := date(2026, time.March, 7)
	monday := date(2026, time.March, 9)

	assert.True(t, p.AppliesTo(saturday))
	assert.False(t, p.AppliesTo(monday))

	p.Active = false
	assert.False(t, p.AppliesTo(saturday))
}

func TestClosureDateMatches(t *testing.T) {
	oneOff := ClosureDate{Date: date(2026, time.May, 5)}
	assert.True(t, oneOff.Matches(date(2026, time.May, 5)))
	assert.False(t, oneOff.Matches(date(2027, time.May, 5)))

	annual := ClosureDate{Date: date(2020, time.January, 1), Recurring: true}
	assert.True(t, annual.Matches(date(2026, time.January, 1)))
	assert.True(t, annual.Matches(date(2030, time.January, 1)))
	assert.False(t, annual.Matches(date(2026, time.January, 2)))
}

func TestResolveDayPrecedence(t *testing.T) {
	day := date(2026, time.March, 7) // Saturday

	period := Period{
		ID:          uuid.New(),
		Weekdays:    AllWeekdays,
		StartTime:   mustTime(t, "18:00"),
		EndTime:     mustTime(t, "20:00"),
		IntervalMin: 60,
		Active:      true,
	}
	closure := ClosureDate{Date: day}
	customDuration := 90
	custom := SpecialDate{
		StartDate: day,
		EndDate:   day,
		Mode:      ModeCustomHours,
		Periods: []SpecialPeriod{
			{StartTime: mustTime(t, "12:00"), EndTime: mustTime(t, "13:00"), IntervalMin: 60},
		},
		DiningDurationMin: &customDuration,
	}
	closedSpecial := SpecialDate{StartDate: day, EndDate: day, Mode: ModeClosed}

	t.Run("periods alone produce the recurring grid", func(t *testing.T) {
		grid := ResolveDay(day, nil, nil, []Period{period})
		require.False(t, grid.Closed)
		require.Len(t, grid.Slots, 3)
		assert.Equal(t, "18:00", grid.Slots[0].Time.String())
		require.NotNil(t, grid.Slots[0].PeriodID)
		assert.Equal(t, period.ID, *grid.Slots[0].PeriodID)
	})

	t.Run("closure beats periods", func(t *testing.T) {
		grid := ResolveDay(day, nil, []ClosureDate{closure}, []Period{period})
		assert.True(t, grid.Closed)
		assert.Empty(t, grid.Slots)
	})

	t.Run("custom hours beat closure and periods", func(t *testing.T) {
		grid := ResolveDay(day, []SpecialDate{custom}, []ClosureDate{closure}, []Period{period})
		require.False(t, grid.Closed)
		require.Len(t, grid.Slots, 2)
		assert.Equal(t, "12:00", grid.Slots[0].Time.String())
		assert.Nil(t, grid.Slots[0].PeriodID)
		require.NotNil(t, grid.DiningDurationMin)
		assert.Equal(t, 90, *grid.DiningDurationMin)
	})

	t.Run("closed special beats everything", func(t *testing.T) {
		grid := ResolveDay(day, []SpecialDate{closedSpecial, custom}, nil, []Period{period})
		assert.True(t, grid.Closed)
		assert.Empty(t, grid.Slots)
	})

	t.Run("special with empty grid closes the day", func(t *testing.T) {
		empty := SpecialDate{StartDate: day, EndDate: day, Mode: ModeCustomHours}
		grid := ResolveDay(day, []SpecialDate{empty}, nil, []Period{period})
		assert.True(t, grid.Closed)
	})

	t.Run("no schedule at all closes the day", func(t *testing.T) {
		grid := ResolveDay(day, nil, nil, nil)
		assert.True(t, grid.Closed)
	})
}

func TestSpecialDateCovers(t *testing.T) {
	s := SpecialDate{
		StartDate: date(2026, time.August, 10),
		EndDate:   date(2026, time.August, 16),
		Mode:      ModeClosed,
	}

	assert.True(t, s.Covers(date(2026, time.August, 10)))
	assert.True(t, s.Covers(date(2026, time.August, 16)))
	assert.True(t, s.Covers(time.Date(2026, time.August, 12, 19, 30, 0, 0, time.UTC)))
	assert.False(t, s.Covers(date(2026, time.August, 9)))
	assert.False(t, s.Covers(date(2026, time.August, 17)))
}

func TestDayGridSlotAt(t *testing.T) {
	day := date(2026, time.March, 7)
	period := Period{
		ID:          uuid.New(),
		Weekdays:    AllWeekdays,
		StartTime:   mustTime(t, "18:00"),
		EndTime:     mustTime(t, "20:00"),
		IntervalMin: 60,
		Active:      true,
	}
	grid := ResolveDay(day, nil, nil, []Period{period})

	slot := grid.SlotAt(mustTime(t, "19:00"))
	require.NotNil(t, slot)
	assert.Equal(t, "19:00", slot.Time.String())

	assert.Nil(t, grid.SlotAt(mustTime(t, "19:30")))
}
