package booking

import (
	"fmt"
	"time"

	"github.com/driveport/service-rental/internal/domain"
)

// MaxRentalDays is the longest rental window a single booking may cover.
const MaxRentalDays = 30

var (
	// ErrPastPickup is returned when the pickup instant falls before the
	// start of the current day.
	ErrPastPickup = domain.NewValidationError("pickup date cannot be in the past")

	// ErrInvalidOrder is returned when the return instant is not strictly
	// after the pickup instant.
	ErrInvalidOrder = domain.NewValidationError("return date must be after pickup date")

	// ErrRangeTooLong is returned when the rental window exceeds MaxRentalDays.
	ErrRangeTooLong = domain.NewValidationError(fmt.Sprintf("booking cannot exceed %d days", MaxRentalDays))
)

// DateRange is the requested rental window. Both instants are held in UTC
// and the range is treated as a closed interval on both ends.
type DateRange struct {
	Pickup time.Time
	Return time.Time
}

// NewDateRange validates a rental window against the business rules and
// returns the normalized range together with the billable day count.
// The current time is an explicit input so callers and tests control it.
//
// Rules, checked in order:
//   - the pickup instant must not fall before the start of today,
//   - the return instant must be strictly after the pickup instant,
//   - the window may not exceed MaxRentalDays billable days.
func NewDateRange(pickup, ret, now time.Time) (DateRange, int, error) {
	today := startOfDay(now.UTC())
	if pickup.Before(today) {
		return DateRange{}, 0, ErrPastPickup
	}
	if !ret.After(pickup) {
		return DateRange{}, 0, ErrInvalidOrder
	}

	days := DayCount(pickup, ret)
	if days > MaxRentalDays {
		return DateRange{}, 0, ErrRangeTooLong
	}

	return DateRange{Pickup: pickup.UTC(), Return: ret.UTC()}, days, nil
}

// DayCount returns the billable day count for a window: the duration in
// whole days, rounded up. A window of any positive length bills at least
// one day.
func DayCount(pickup, ret time.Time) int {
	d := ret.Sub(pickup)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// Overlaps reports whether two closed ranges intersect. Touching endpoints
// count as a conflict: a rental returning at the exact instant another one
// picks up still blocks it.
func (r DateRange) Overlaps(other DateRange) bool {
	return !other.Pickup.After(r.Return) && !other.Return.Before(r.Pickup)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
