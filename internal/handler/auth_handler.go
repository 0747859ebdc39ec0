package handler

import (
	"github.com/driveport/service-rental/internal/application"
	"github.com/driveport/service-rental/internal/auth"
	"github.com/driveport/service-rental/internal/domain/user"
	"github.com/driveport/service-rental/internal/middleware"
	"github.com/driveport/service-rental/internal/response"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration, login and identity lookup.
type AuthHandler struct {
	service *application.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *application.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterRoutes registers all auth routes on the given router group.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager, users user.UserRepository) {
	authRoutes := r.Group("/api/auth")
	authRoutes.POST("/register", h.Register)
	authRoutes.POST("/login", h.Login)
	authRoutes.GET("/me", middleware.AuthMiddleware(jwtManager, users), h.Me)
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req application.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"token": result.Token, "user": result.User})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req application.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"token": result.Token, "user": result.User})
}

// Me handles GET /api/auth/me, returning the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "not authorized")
		return
	}

	response.OK(c, gin.H{"user": gin.H{
		"id":    u.ID(),
		"name":  u.Name(),
		"email": u.Email(),
		"role":  u.Role(),
	}})
}
