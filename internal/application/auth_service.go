package application

import (
	"context"

	"github.com/driveport/service-rental/internal/auth"
	"github.com/driveport/service-rental/internal/domain"
	userDomain "github.com/driveport/service-rental/internal/domain/user"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegisterRequest holds the data needed to create an account.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

// LoginRequest holds the credentials for a login attempt.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResult carries the issued token and the user it identifies.
type AuthResult struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// AuthService implements account registration and token issuance.
type AuthService struct {
	users      userDomain.UserRepository
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users userDomain.UserRepository, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, jwtManager: jwtManager, logger: logger}
}

// Register creates a new account and issues a token for it. The role
// defaults to customer when omitted.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, domain.NewConflictError("user already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := userDomain.Role(req.Role)
	if req.Role == "" {
		role = userDomain.RoleCustomer
	}

	u, err := userDomain.NewUser(req.Name, req.Email, string(hash), role)
	if err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", u.ID().String()),
		zap.String("role", string(u.Role())),
	)
	return s.issue(u)
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.NewUnauthorizedError("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash()), []byte(req.Password)); err != nil {
		return nil, domain.NewUnauthorizedError("invalid credentials")
	}

	return s.issue(u)
}

func (s *AuthService) issue(u *userDomain.User) (*AuthResult, error) {
	token, err := s.jwtManager.Generate(u.ID(), string(u.Role()))
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Token: token,
		User:  *toUserDTOPtr(u),
	}, nil
}
