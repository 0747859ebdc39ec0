package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicBookingEvents is the Kafka topic carrying booking lifecycle events.
const TopicBookingEvents = "rental.booking.events"

// Event type identifiers.
const (
	BookingCreated       = "rental.booking.created"
	BookingStatusChanged = "rental.booking.status_changed"
)

// BookingCreatedEvent is published after a booking is persisted.
type BookingCreatedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	CarID      uuid.UUID `json:"car_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	UserID     uuid.UUID `json:"user_id"`
	PickupDate time.Time `json:"pickup_date"`
	ReturnDate time.Time `json:"return_date"`
	PriceCents int64     `json:"price_cents"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingStatusChangedEvent is published after a booking status update.
type BookingStatusChangedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	ChangedBy  uuid.UUID `json:"changed_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
