package handler

import (
	"github.com/driveport/service-rental/internal/application"
	"github.com/driveport/service-rental/internal/auth"
	"github.com/driveport/service-rental/internal/domain/user"
	"github.com/driveport/service-rental/internal/middleware"
	"github.com/driveport/service-rental/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
// The availability search is public; everything else sits behind the auth
// gate.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager, users user.UserRepository) {
	bookings := r.Group("/api/bookings")
	bookings.POST("/check-availability", h.CheckAvailability)

	authed := r.Group("/api/bookings")
	authed.Use(middleware.AuthMiddleware(jwtManager, users))
	{
		authed.POST("", h.CreateBooking)
		authed.GET("/mine", h.GetMyBookings)
		authed.GET("/owner", h.GetOwnerBookings)
		authed.PATCH("/status", h.ChangeStatus)
	}
}

// CheckAvailability handles POST /api/bookings/check-availability.
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	var req application.CheckAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cars, err := h.service.SearchAvailableCars(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"availableCars": cars})
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "not authorized")
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if _, err := h.service.CreateBooking(c.Request.Context(), userID, req); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "booking created")
}

// GetMyBookings handles GET /api/bookings/mine.
func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "not authorized")
		return
	}

	bookings, err := h.service.GetUserBookings(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"bookings": bookings})
}

// GetOwnerBookings handles GET /api/bookings/owner.
func (h *BookingHandler) GetOwnerBookings(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "not authorized")
		return
	}

	bookings, err := h.service.GetOwnerBookings(c.Request.Context(), u.ID(), u.Role())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"bookings": bookings})
}

// changeStatusRequest is the body for PATCH /api/bookings/status.
type changeStatusRequest struct {
	BookingID string `json:"bookingId" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

// ChangeStatus handles PATCH /api/bookings/status.
func (h *BookingHandler) ChangeStatus(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "not authorized")
		return
	}

	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	if err := h.service.ChangeBookingStatus(c.Request.Context(), userID, bookingID, req.Status); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "status updated")
}
