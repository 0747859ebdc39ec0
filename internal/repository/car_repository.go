package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/driveport/service-rental/internal/domain"
	carDomain "github.com/driveport/service-rental/internal/domain/car"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CarModel is the GORM model for the cars table.
type CarModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Brand            string    `gorm:"type:varchar(100);not null"`
	Model            string    `gorm:"type:varchar(100);not null"`
	Year             int       `gorm:"type:int"`
	Category         string    `gorm:"type:varchar(50)"`
	Seats            int       `gorm:"type:int"`
	Location         string    `gorm:"type:varchar(100);not null;index"`
	PricePerDayCents int64     `gorm:"not null"`
	IsAvailable      bool      `gorm:"not null;default:true"`
	CreatedAt        time.Time `gorm:"type:timestamptz;not null"`
	UpdatedAt        time.Time `gorm:"type:timestamptz;not null"`
}

// TableName returns the table name for the GORM model.
func (CarModel) TableName() string {
	return "cars"
}

// GormCarRepository is the GORM-based implementation of CarRepository.
type GormCarRepository struct {
	db *gorm.DB
}

// NewGormCarRepository creates a new GormCarRepository.
func NewGormCarRepository(db *gorm.DB) *GormCarRepository {
	return &GormCarRepository{db: db}
}

// FindByID retrieves a car by its unique identifier.
func (r *GormCarRepository) FindByID(ctx context.Context, id uuid.UUID) (*carDomain.Car, error) {
	var model CarModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Car", id.String())
		}
		return nil, fmt.Errorf("failed to find car by ID: %w", err)
	}
	return toDomainCar(&model), nil
}

// FindByIDs retrieves the cars for the given identifiers, keyed by ID.
func (r *GormCarRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*carDomain.Car, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]*carDomain.Car{}, nil
	}

	var models []CarModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find cars by IDs: %w", err)
	}

	cars := make(map[uuid.UUID]*carDomain.Car, len(models))
	for i := range models {
		cars[models[i].ID] = toDomainCar(&models[i])
	}
	return cars, nil
}

// FindAvailableByLocation retrieves listed cars at a location whose coarse
// availability flag is set.
func (r *GormCarRepository) FindAvailableByLocation(ctx context.Context, location string) ([]*carDomain.Car, error) {
	var models []CarModel
	if err := r.db.WithContext(ctx).
		Where("location = ? AND is_available = ?", location, true).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find cars by location: %w", err)
	}

	cars := make([]*carDomain.Car, len(models))
	for i := range models {
		cars[i] = toDomainCar(&models[i])
	}
	return cars, nil
}

// Save persists a new car listing.
func (r *GormCarRepository) Save(ctx context.Context, c *carDomain.Car) error {
	model := toCarModel(c)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save car: %w", err)
	}
	return nil
}

// --- Conversion Helpers ---

func toCarModel(c *carDomain.Car) *CarModel {
	return &CarModel{
		ID:               c.ID(),
		OwnerID:          c.OwnerID(),
		Brand:            c.Brand(),
		Model:            c.Model(),
		Year:             c.Year(),
		Category:         c.Category(),
		Seats:            c.Seats(),
		Location:         c.Location(),
		PricePerDayCents: c.PricePerDayCents(),
		IsAvailable:      c.IsAvailable(),
		CreatedAt:        c.CreatedAt(),
		UpdatedAt:        c.UpdatedAt(),
	}
}

func toDomainCar(m *CarModel) *carDomain.Car {
	return carDomain.Reconstruct(
		m.ID, m.OwnerID,
		m.Brand, m.Model,
		m.Year, m.Category, m.Seats,
		m.Location,
		m.PricePerDayCents,
		m.IsAvailable,
		m.CreatedAt, m.UpdatedAt,
	)
}
