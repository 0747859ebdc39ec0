package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/driveport/service-rental/internal/auth"
	"github.com/driveport/service-rental/internal/domain"
	"github.com/driveport/service-rental/internal/domain/user"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserRepo struct {
	users map[uuid.UUID]*user.User
}

func (s *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, domain.NewNotFoundError("User", id.String())
}

func (s *stubUserRepo) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*user.User, error) {
	out := make(map[uuid.UUID]*user.User)
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range s.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, domain.NewNotFoundError("User", email)
}

func (s *stubUserRepo) Save(_ context.Context, u *user.User) error {
	s.users[u.ID()] = u
	return nil
}

func setupAuthRouter(t *testing.T) (*gin.Engine, *auth.JWTManager, *user.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	u, err := user.NewUser("olivia", "olivia@example.com", "hash", user.RoleOwner)
	require.NoError(t, err)

	repo := &stubUserRepo{users: map[uuid.UUID]*user.User{u.ID(): u}}
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	router := gin.New()
	router.GET("/protected", AuthMiddleware(jwtManager, repo), func(c *gin.Context) {
		current, ok := CurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"userId": current.ID().String()})
	})
	return router, jwtManager, u
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	router, jwtManager, u := setupAuthRouter(t)

	token, err := jwtManager.Generate(u.ID(), string(u.Role()))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), u.ID().String())
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router, _, _ := setupAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestAuthMiddleware_BadToken(t *testing.T) {
	router, _, _ := setupAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_UnknownUser(t *testing.T) {
	router, jwtManager, _ := setupAuthRouter(t)

	// A well-formed token whose subject no longer exists is rejected.
	token, err := jwtManager.Generate(uuid.New(), "customer")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
