package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookingRepository defines the persistence contract for booking aggregates.
type BookingRepository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByUserID retrieves bookings placed by a user, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*Booking, error)

	// FindByOwnerID retrieves bookings on a car owner's fleet, newest first.
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*Booking, error)

	// HasOverlapping reports whether any stored booking for the car
	// overlaps the given range. All statuses count, including cancelled.
	HasOverlapping(ctx context.Context, carID uuid.UUID, dateRange DateRange) (bool, error)

	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// UpdateStatus persists a status change for an existing booking.
	UpdateStatus(ctx context.Context, id uuid.UUID, status BookingStatus) error

	// ExpirePendingBefore cancels pending bookings whose pickup instant is
	// before the cutoff and returns the number of bookings affected.
	ExpirePendingBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
