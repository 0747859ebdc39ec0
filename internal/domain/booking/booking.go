package booking

import (
	"time"

	"github.com/driveport/service-rental/internal/domain"
	"github.com/google/uuid"
)

// Booking is the aggregate root for the rental booking domain. The owner
// is always derived from the booked car, never supplied by the requester.
type Booking struct {
	id         uuid.UUID
	carID      uuid.UUID
	ownerID    uuid.UUID
	userID     uuid.UUID
	dateRange  DateRange
	priceCents int64
	status     BookingStatus

	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new Booking aggregate with status=pending.
func NewBooking(carID, ownerID, userID uuid.UUID, dateRange DateRange, priceCents int64) (*Booking, error) {
	if carID == uuid.Nil {
		return nil, domain.NewValidationError("car ID is required")
	}
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user ID is required")
	}
	if !dateRange.Return.After(dateRange.Pickup) {
		return nil, ErrInvalidOrder
	}
	if priceCents <= 0 {
		return nil, domain.NewValidationError("price must be positive")
	}

	now := time.Now().UTC()
	return &Booking{
		id:         uuid.New(),
		carID:      carID,
		ownerID:    ownerID,
		userID:     userID,
		dateRange:  dateRange,
		priceCents: priceCents,
		status:     StatusPending,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id, carID, ownerID, userID uuid.UUID,
	dateRange DateRange,
	priceCents int64,
	status BookingStatus,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		carID:      carID,
		ownerID:    ownerID,
		userID:     userID,
		dateRange:  dateRange,
		priceCents: priceCents,
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// CarID returns the booked car's identifier.
func (b *Booking) CarID() uuid.UUID { return b.carID }

// OwnerID returns the identifier of the user who owns the booked car.
func (b *Booking) OwnerID() uuid.UUID { return b.ownerID }

// UserID returns the identifier of the user who placed the booking.
func (b *Booking) UserID() uuid.UUID { return b.userID }

// DateRange returns the rental window.
func (b *Booking) DateRange() DateRange { return b.dateRange }

// PriceCents returns the total rental price in cents.
func (b *Booking) PriceCents() int64 { return b.priceCents }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// IsOwnedBy checks whether the booking belongs to the given car owner.
func (b *Booking) IsOwnedBy(ownerID uuid.UUID) bool {
	return b.ownerID == ownerID
}

// ChangeStatus sets the booking status. Any valid status may replace any
// other; the enum membership is the only constraint.
func (b *Booking) ChangeStatus(status BookingStatus) error {
	if !status.IsValid() {
		return domain.NewValidationError("invalid booking status: " + string(status))
	}
	b.status = status
	b.updatedAt = time.Now().UTC()
	return nil
}
