package car

import (
	"context"

	"github.com/google/uuid"
)

// CarRepository defines the persistence contract for car listings.
type CarRepository interface {
	// FindByID retrieves a car by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Car, error)

	// FindByIDs retrieves the cars for the given identifiers, keyed by ID.
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Car, error)

	// FindAvailableByLocation retrieves listed cars at a location whose
	// coarse availability flag is set.
	FindAvailableByLocation(ctx context.Context, location string) ([]*Car, error)

	// Save persists a new car listing.
	Save(ctx context.Context, car *Car) error
}
