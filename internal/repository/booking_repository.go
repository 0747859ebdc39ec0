package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/driveport/service-rental/internal/domain"
	bookingDomain "github.com/driveport/service-rental/internal/domain/booking"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CarID      uuid.UUID `gorm:"type:uuid;not null;index:idx_bookings_car_dates,priority:1"`
	OwnerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	PickupDate time.Time `gorm:"type:timestamptz;not null;index:idx_bookings_car_dates,priority:2"`
	ReturnDate time.Time `gorm:"type:timestamptz;not null;index:idx_bookings_car_dates,priority:3"`
	PriceCents int64     `gorm:"not null"`
	Status     string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt  time.Time `gorm:"type:timestamptz;not null"`
	UpdatedAt  time.Time `gorm:"type:timestamptz;not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model), nil
}

// FindByUserID retrieves bookings placed by a user, newest first.
func (r *GormBookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find user bookings: %w", err)
	}
	return toDomainBookings(models), nil
}

// FindByOwnerID retrieves bookings on a car owner's fleet, newest first.
func (r *GormBookingRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find owner bookings: %w", err)
	}
	return toDomainBookings(models), nil
}

// HasOverlapping reports whether any stored booking for the car overlaps
// the given range. The interval is closed on both ends: a booking whose
// return instant equals the queried pickup still conflicts. Status is not
// filtered, so cancelled bookings block the range too.
func (r *GormBookingRepository) HasOverlapping(ctx context.Context, carID uuid.UUID, dateRange bookingDomain.DateRange) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("car_id = ? AND pickup_date <= ? AND return_date >= ?", carID, dateRange.Return, dateRange.Pickup).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}
	return count > 0, nil
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// UpdateStatus persists a status change for an existing booking.
func (r *GormBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status bookingDomain.BookingStatus) error {
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Booking", id.String())
	}
	return nil
}

// ExpirePendingBefore cancels pending bookings whose pickup instant is
// before the cutoff.
func (r *GormBookingRepository) ExpirePendingBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("status = ? AND pickup_date < ?", string(bookingDomain.StatusPending), cutoff).
		Updates(map[string]interface{}{
			"status":     string(bookingDomain.StatusCancelled),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to expire pending bookings: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:         bk.ID(),
		CarID:      bk.CarID(),
		OwnerID:    bk.OwnerID(),
		UserID:     bk.UserID(),
		PickupDate: bk.DateRange().Pickup,
		ReturnDate: bk.DateRange().Return,
		PriceCents: bk.PriceCents(),
		Status:     string(bk.Status()),
		CreatedAt:  bk.CreatedAt(),
		UpdatedAt:  bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) *bookingDomain.Booking {
	return bookingDomain.Reconstruct(
		m.ID, m.CarID, m.OwnerID, m.UserID,
		bookingDomain.DateRange{Pickup: m.PickupDate, Return: m.ReturnDate},
		m.PriceCents,
		bookingDomain.BookingStatus(m.Status),
		m.CreatedAt, m.UpdatedAt,
	)
}

func toDomainBookings(models []BookingModel) []*bookingDomain.Booking {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bookings[i] = toDomainBooking(&m)
	}
	return bookings
}
