package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewDateRange_PastPickup(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

	_, _, err := NewDateRange(date(2024, 6, 14), date(2024, 6, 20), now)
	assert.ErrorIs(t, err, ErrPastPickup)

	// An instant before the start of today fails even on the same calendar day boundary.
	_, _, err = NewDateRange(time.Date(2024, 6, 14, 23, 59, 0, 0, time.UTC), date(2024, 6, 20), now)
	assert.ErrorIs(t, err, ErrPastPickup)

	// The start of today itself is allowed.
	_, _, err = NewDateRange(date(2024, 6, 15), date(2024, 6, 20), now)
	assert.NoError(t, err)
}

func TestNewDateRange_InvalidOrder(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	_, _, err := NewDateRange(date(2024, 6, 10), date(2024, 6, 10), now)
	assert.ErrorIs(t, err, ErrInvalidOrder)

	_, _, err = NewDateRange(date(2024, 6, 10), date(2024, 6, 8), now)
	assert.ErrorIs(t, err, ErrInvalidOrder)
}

func TestNewDateRange_RangeTooLong(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	_, _, err := NewDateRange(date(2024, 6, 1), date(2024, 7, 2), now)
	assert.ErrorIs(t, err, ErrRangeTooLong)

	// Exactly 30 days is the longest accepted window.
	dr, days, err := NewDateRange(date(2024, 6, 1), date(2024, 7, 1), now)
	require.NoError(t, err)
	assert.Equal(t, 30, days)
	assert.Equal(t, date(2024, 6, 1), dr.Pickup)
	assert.Equal(t, date(2024, 7, 1), dr.Return)
}

func TestDayCount(t *testing.T) {
	tests := []struct {
		name   string
		pickup time.Time
		ret    time.Time
		want   int
	}{
		{"three whole days", date(2024, 7, 1), date(2024, 7, 4), 3},
		{"partial day rounds up", date(2024, 7, 1), time.Date(2024, 7, 3, 12, 0, 0, 0, time.UTC), 3},
		{"under a day bills one day", date(2024, 7, 1), time.Date(2024, 7, 1, 6, 0, 0, 0, time.UTC), 1},
		{"single day", date(2024, 7, 1), date(2024, 7, 2), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DayCount(tt.pickup, tt.ret))
		})
	}
}

func TestDateRange_Overlaps(t *testing.T) {
	existing := DateRange{Pickup: date(2024, 6, 1), Return: date(2024, 6, 5)}

	tests := []struct {
		name  string
		query DateRange
		want  bool
	}{
		{"touching endpoint conflicts", DateRange{Pickup: date(2024, 6, 5), Return: date(2024, 6, 8)}, true},
		{"disjoint after", DateRange{Pickup: date(2024, 6, 6), Return: date(2024, 6, 8)}, false},
		{"disjoint before", DateRange{Pickup: date(2024, 5, 20), Return: date(2024, 5, 31)}, false},
		{"touching start conflicts", DateRange{Pickup: date(2024, 5, 28), Return: date(2024, 6, 1)}, true},
		{"contained", DateRange{Pickup: date(2024, 6, 2), Return: date(2024, 6, 3)}, true},
		{"containing", DateRange{Pickup: date(2024, 5, 28), Return: date(2024, 6, 10)}, true},
		{"identical", existing, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, existing.Overlaps(tt.query))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, tt.query.Overlaps(existing))
		})
	}
}
