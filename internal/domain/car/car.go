package car

import (
	"time"

	"github.com/driveport/service-rental/internal/domain"
	"github.com/google/uuid"
)

// Car is the aggregate root for a rental car listing. From the booking
// core's perspective a car is read-only reference data; the listing flag
// is a coarse switch independent of date-specific bookings.
type Car struct {
	id               uuid.UUID
	ownerID          uuid.UUID
	brand            string
	model            string
	year             int
	category         string
	seats            int
	location         string
	pricePerDayCents int64
	isAvailable      bool
	createdAt        time.Time
	updatedAt        time.Time
}

// NewCar creates a new car listing with validated fields.
func NewCar(
	ownerID uuid.UUID,
	brand, model string,
	year int,
	category string,
	seats int,
	location string,
	pricePerDayCents int64,
) (*Car, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if brand == "" {
		return nil, domain.NewValidationError("car brand is required")
	}
	if model == "" {
		return nil, domain.NewValidationError("car model is required")
	}
	if location == "" {
		return nil, domain.NewValidationError("car location is required")
	}
	if pricePerDayCents <= 0 {
		return nil, domain.NewValidationError("price per day must be positive")
	}

	now := time.Now().UTC()
	return &Car{
		id:               uuid.New(),
		ownerID:          ownerID,
		brand:            brand,
		model:            model,
		year:             year,
		category:         category,
		seats:            seats,
		location:         location,
		pricePerDayCents: pricePerDayCents,
		isAvailable:      true,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// Reconstruct rebuilds a Car from persistence data (no validation).
func Reconstruct(
	id, ownerID uuid.UUID,
	brand, model string,
	year int,
	category string,
	seats int,
	location string,
	pricePerDayCents int64,
	isAvailable bool,
	createdAt, updatedAt time.Time,
) *Car {
	return &Car{
		id:               id,
		ownerID:          ownerID,
		brand:            brand,
		model:            model,
		year:             year,
		category:         category,
		seats:            seats,
		location:         location,
		pricePerDayCents: pricePerDayCents,
		isAvailable:      isAvailable,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// --- Getters ---

func (c *Car) ID() uuid.UUID           { return c.id }
func (c *Car) OwnerID() uuid.UUID      { return c.ownerID }
func (c *Car) Brand() string           { return c.brand }
func (c *Car) Model() string           { return c.model }
func (c *Car) Year() int               { return c.year }
func (c *Car) Category() string        { return c.category }
func (c *Car) Seats() int              { return c.seats }
func (c *Car) Location() string        { return c.location }
func (c *Car) PricePerDayCents() int64 { return c.pricePerDayCents }
func (c *Car) IsAvailable() bool       { return c.isAvailable }
func (c *Car) CreatedAt() time.Time    { return c.createdAt }
func (c *Car) UpdatedAt() time.Time    { return c.updatedAt }

// IsOwnedBy checks if the car belongs to the given owner.
func (c *Car) IsOwnedBy(ownerID uuid.UUID) bool {
	return c.ownerID == ownerID
}
