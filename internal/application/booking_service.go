package application

import (
	"context"
	"sync"
	"time"

	"github.com/driveport/service-rental/internal/domain"
	bookingDomain "github.com/driveport/service-rental/internal/domain/booking"
	carDomain "github.com/driveport/service-rental/internal/domain/car"
	userDomain "github.com/driveport/service-rental/internal/domain/user"
	"github.com/driveport/service-rental/internal/events"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const eventSource = "service-rental"

// EventPublisher publishes booking lifecycle events.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event events.CloudEvent) error
}

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	Car        string `json:"car" binding:"required"`
	PickupDate string `json:"pickupDate" binding:"required"`
	ReturnDate string `json:"returnDate" binding:"required"`
}

// CheckAvailabilityRequest holds the data for an availability search.
type CheckAvailabilityRequest struct {
	Location   string `json:"location" binding:"required"`
	PickupDate string `json:"pickupDate" binding:"required"`
	ReturnDate string `json:"returnDate" binding:"required"`
}

// CarDTO is the API representation of a car listing.
type CarDTO struct {
	ID          uuid.UUID `json:"id"`
	Owner       uuid.UUID `json:"owner"`
	Brand       string    `json:"brand"`
	Model       string    `json:"model"`
	Year        int       `json:"year,omitempty"`
	Category    string    `json:"category,omitempty"`
	Seats       int       `json:"seats,omitempty"`
	Location    string    `json:"location"`
	PricePerDay int64     `json:"pricePerDay"`
	IsAvailable bool      `json:"isAvailable"`
}

// UserDTO is the API representation of a user. The password hash is never
// part of it.
type UserDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// BookingDTO is the API representation of a booking with its joined car
// and, for owner listings, the requesting user.
type BookingDTO struct {
	ID         uuid.UUID `json:"id"`
	Car        *CarDTO   `json:"car,omitempty"`
	Owner      uuid.UUID `json:"owner"`
	User       *UserDTO  `json:"user,omitempty"`
	PickupDate time.Time `json:"pickupDate"`
	ReturnDate time.Time `json:"returnDate"`
	Price      int64     `json:"price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BookingService orchestrates booking use cases: availability search,
// creation, listings and status updates.
type BookingService struct {
	bookings  bookingDomain.BookingRepository
	cars      carDomain.CarRepository
	users     userDomain.UserRepository
	pricing   bookingDomain.PricingStrategy
	publisher EventPublisher
	logger    *zap.Logger

	// now is injected so the date validation is a pure function of its
	// inputs in tests.
	now func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.BookingRepository,
	cars carDomain.CarRepository,
	users userDomain.UserRepository,
	pricing bookingDomain.PricingStrategy,
	publisher EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		cars:      cars,
		users:     users,
		pricing:   pricing,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// CheckAvailability reports whether the car is free for the given range.
// Read-only: two calls with no intervening writes return the same result.
func (s *BookingService) CheckAvailability(ctx context.Context, carID uuid.UUID, dateRange bookingDomain.DateRange) (bool, error) {
	overlapping, err := s.bookings.HasOverlapping(ctx, carID, dateRange)
	if err != nil {
		return false, err
	}
	return !overlapping, nil
}

// CreateBooking validates the requested range, checks availability,
// computes the price and persists a new pending booking. Each step is a
// hard precondition; the first failure aborts with no record written.
func (s *BookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	carID, err := uuid.Parse(req.Car)
	if err != nil {
		return nil, domain.NewValidationError("invalid car ID")
	}

	pickup, ret, err := parseDates(req.PickupDate, req.ReturnDate)
	if err != nil {
		return nil, err
	}

	dateRange, days, err := bookingDomain.NewDateRange(pickup, ret, s.now())
	if err != nil {
		return nil, err
	}

	available, err := s.CheckAvailability(ctx, carID, dateRange)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, domain.NewUnavailableError("car is not available for the requested dates")
	}

	c, err := s.cars.FindByID(ctx, carID)
	if err != nil {
		return nil, err
	}

	price, err := s.pricing.Quote(c.PricePerDayCents(), days)
	if err != nil {
		return nil, domain.NewValidationError("pricing error: " + err.Error())
	}

	bk, err := bookingDomain.NewBooking(carID, c.OwnerID(), userID, dateRange, price)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Save(ctx, bk); err != nil {
		return nil, err
	}

	s.publishBookingCreated(ctx, bk)

	s.logger.Info("booking created",
		zap.String("booking_id", bk.ID().String()),
		zap.String("car_id", carID.String()),
		zap.Int64("price_cents", price),
	)

	result := toBookingDTO(bk, toCarDTOPtr(c), nil)
	return &result, nil
}

// SearchAvailableCars validates the range, fetches the listed cars at the
// location and keeps only those with no overlapping booking. The per-car
// checks are read-only and run concurrently; ordering between cars is not
// guaranteed.
func (s *BookingService) SearchAvailableCars(ctx context.Context, req CheckAvailabilityRequest) ([]CarDTO, error) {
	pickup, ret, err := parseDates(req.PickupDate, req.ReturnDate)
	if err != nil {
		return nil, err
	}

	dateRange, _, err := bookingDomain.NewDateRange(pickup, ret, s.now())
	if err != nil {
		return nil, err
	}

	cars, err := s.cars.FindAvailableByLocation(ctx, req.Location)
	if err != nil {
		return nil, err
	}

	type checkResult struct {
		available bool
		err       error
	}
	results := make([]checkResult, len(cars))

	var wg sync.WaitGroup
	for i, c := range cars {
		wg.Add(1)
		go func(i int, carID uuid.UUID) {
			defer wg.Done()
			available, err := s.CheckAvailability(ctx, carID, dateRange)
			results[i] = checkResult{available: available, err: err}
		}(i, c.ID())
	}
	wg.Wait()

	available := make([]CarDTO, 0, len(cars))
	for i, c := range cars {
		if results[i].err != nil {
			return nil, results[i].err
		}
		if results[i].available {
			available = append(available, toCarDTO(c))
		}
	}
	return available, nil
}

// GetUserBookings returns the bookings placed by a user, newest first,
// each joined with its car.
func (s *BookingService) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]BookingDTO, error) {
	bookings, err := s.bookings.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cars, err := s.carsForBookings(ctx, bookings)
	if err != nil {
		return nil, err
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk, toCarDTOPtr(cars[bk.CarID()]), nil)
	}
	return dtos, nil
}

// GetOwnerBookings returns the bookings on an owner's fleet, newest
// first, joined with car and requesting user. Only accounts with the
// owner role may call it.
func (s *BookingService) GetOwnerBookings(ctx context.Context, ownerID uuid.UUID, role userDomain.Role) ([]BookingDTO, error) {
	if role != userDomain.RoleOwner {
		return nil, domain.NewUnauthorizedError("unauthorized")
	}

	bookings, err := s.bookings.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	cars, err := s.carsForBookings(ctx, bookings)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uuid.UUID, 0, len(bookings))
	seen := make(map[uuid.UUID]bool, len(bookings))
	for _, bk := range bookings {
		if !seen[bk.UserID()] {
			seen[bk.UserID()] = true
			userIDs = append(userIDs, bk.UserID())
		}
	}
	users, err := s.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk, toCarDTOPtr(cars[bk.CarID()]), toUserDTOPtr(users[bk.UserID()]))
	}
	return dtos, nil
}

// ChangeBookingStatus updates a booking's status. Only the owner of the
// booked car may change it.
func (s *BookingService) ChangeBookingStatus(ctx context.Context, requesterID, bookingID uuid.UUID, status string) error {
	newStatus, err := bookingDomain.ParseBookingStatus(status)
	if err != nil {
		return domain.NewValidationError(err.Error())
	}

	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if !bk.IsOwnedBy(requesterID) {
		return domain.NewUnauthorizedError("unauthorized")
	}

	oldStatus := bk.Status()
	if err := s.bookings.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		return err
	}

	s.publishStatusChanged(ctx, bookingID, requesterID, oldStatus, newStatus)

	s.logger.Info("booking status updated",
		zap.String("booking_id", bookingID.String()),
		zap.String("status", string(newStatus)),
	)
	return nil
}

// --- Helpers ---

func (s *BookingService) carsForBookings(ctx context.Context, bookings []*bookingDomain.Booking) (map[uuid.UUID]*carDomain.Car, error) {
	carIDs := make([]uuid.UUID, 0, len(bookings))
	seen := make(map[uuid.UUID]bool, len(bookings))
	for _, bk := range bookings {
		if !seen[bk.CarID()] {
			seen[bk.CarID()] = true
			carIDs = append(carIDs, bk.CarID())
		}
	}
	return s.cars.FindByIDs(ctx, carIDs)
}

func (s *BookingService) publishBookingCreated(ctx context.Context, bk *bookingDomain.Booking) {
	evt := events.BookingCreatedEvent{
		BookingID:  bk.ID(),
		CarID:      bk.CarID(),
		OwnerID:    bk.OwnerID(),
		UserID:     bk.UserID(),
		PickupDate: bk.DateRange().Pickup,
		ReturnDate: bk.DateRange().Return,
		PriceCents: bk.PriceCents(),
		OccurredAt: time.Now().UTC(),
	}
	s.publishEvent(ctx, events.BookingCreated, bk.ID().String(), evt)
}

func (s *BookingService) publishStatusChanged(ctx context.Context, bookingID, changedBy uuid.UUID, oldStatus, newStatus bookingDomain.BookingStatus) {
	evt := events.BookingStatusChangedEvent{
		BookingID:  bookingID,
		OldStatus:  string(oldStatus),
		NewStatus:  string(newStatus),
		ChangedBy:  changedBy,
		OccurredAt: time.Now().UTC(),
	}
	s.publishEvent(ctx, events.BookingStatusChanged, bookingID.String(), evt)
}

func (s *BookingService) publishEvent(ctx context.Context, eventType, key string, data interface{}) {
	cloudEvent, err := events.NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.publisher.PublishEvent(ctx, events.TopicBookingEvents, key, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

// parseDates parses the pickup and return date strings, accepting RFC3339
// timestamps or bare dates, interpreted as UTC.
func parseDates(pickupStr, returnStr string) (time.Time, time.Time, error) {
	pickup, err := parseDate(pickupStr)
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewValidationError("invalid pickup date: " + pickupStr)
	}
	ret, err := parseDate(returnStr)
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewValidationError("invalid return date: " + returnStr)
	}
	return pickup, ret, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func toBookingDTO(bk *bookingDomain.Booking, car *CarDTO, usr *UserDTO) BookingDTO {
	return BookingDTO{
		ID:         bk.ID(),
		Car:        car,
		Owner:      bk.OwnerID(),
		User:       usr,
		PickupDate: bk.DateRange().Pickup,
		ReturnDate: bk.DateRange().Return,
		Price:      bk.PriceCents(),
		Status:     string(bk.Status()),
		CreatedAt:  bk.CreatedAt(),
	}
}

func toCarDTO(c *carDomain.Car) CarDTO {
	return CarDTO{
		ID:          c.ID(),
		Owner:       c.OwnerID(),
		Brand:       c.Brand(),
		Model:       c.Model(),
		Year:        c.Year(),
		Category:    c.Category(),
		Seats:       c.Seats(),
		Location:    c.Location(),
		PricePerDay: c.PricePerDayCents(),
		IsAvailable: true,
	}
}

func toCarDTOPtr(c *carDomain.Car) *CarDTO {
	if c == nil {
		return nil
	}
	dto := toCarDTO(c)
	dto.IsAvailable = c.IsAvailable()
	return &dto
}

func toUserDTOPtr(u *userDomain.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:    u.ID(),
		Name:  u.Name(),
		Email: u.Email(),
		Role:  string(u.Role()),
	}
}
