package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// memoryUserStore is an in-memory store.UserStore for handler tests.
type memoryUserStore struct {
	byID    map[uuid.UUID]*domain.User
	byEmail map[string]*domain.User
}

var _ store.UserStore = (*memoryUserStore)(nil)

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{
		byID:    make(map[uuid.UUID]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (s *memoryUserStore) Create(ctx context.Context, user *domain.User) error {
	if _, exists := s.byEmail[user.Email]; exists {
		return store.ErrEmailExists
	}
	copied := *user
	s.byID[user.ID] = &copied
	s.byEmail[user.Email] = &copied
	return nil
}

func (s *memoryUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := s.byID[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *memoryUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "test-jwt-secret-that-is-32-chars-long",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 1440,
		BCryptCost:                  bcrypt.MinCost,
	}
}

func newTestAuthHandler(t *testing.T, users *memoryUserStore) *AuthHandler {
	t.Helper()
	jwtService, err := auth.NewJWTService(testAuthConfig())
	require.NoError(t, err)
	return NewAuthHandler(
		users,
		jwtService,
		auth.NewBcryptHasher(bcrypt.MinCost),
		auth.NewBcryptVerifier(),
		nil,
	)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

type authResponseBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		ID           uuid.UUID `json:"id"`
		Name         string    `json:"name"`
		Email        string    `json:"email"`
		Role         string    `json:"role"`
		Token        string    `json:"token"`
		RefreshToken string    `json:"refresh_token"`
	} `json:"data"`
}

func decodeAuthResponse(t *testing.T, rec *httptest.ResponseRecorder) authResponseBody {
	t.Helper()
	var body authResponseBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates user and returns token pair", func(t *testing.T) {
		t.Parallel()
		users := newMemoryUserStore()
		handler := newTestAuthHandler(t, users)

		rec := postJSON(t, handler.Register, "/api/users/register", RegisterRequest{
			Name:     "Ada Lovelace",
			Email:    "ada@example.com",
			Password: "correct-horse-battery",
		})

		assert.Equal(t, http.StatusCreated, rec.Code)
		body := decodeAuthResponse(t, rec)
		assert.True(t, body.Success)
		assert.Equal(t, "ada@example.com", body.Data.Email)
		assert.Equal(t, "user", body.Data.Role)
		assert.NotEmpty(t, body.Data.Token)
		assert.NotEmpty(t, body.Data.RefreshToken)

		// The stored user carries only a hash.
		stored, err := users.GetByEmail(context.Background(), "ada@example.com")
		require.NoError(t, err)
		assert.Empty(t, stored.Password)
		assert.NotEmpty(t, stored.HashedPassword)
		assert.NotEqual(t, "correct-horse-battery", stored.HashedPassword)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		t.Parallel()
		users := newMemoryUserStore()
		handler := newTestAuthHandler(t, users)

		payload := RegisterRequest{
			Name:     "Ada",
			Email:    "ada@example.com",
			Password: "correct-horse-battery",
		}
		first := postJSON(t, handler.Register, "/api/users/register", payload)
		require.Equal(t, http.StatusCreated, first.Code)

		second := postJSON(t, handler.Register, "/api/users/register", payload)
		assert.Equal(t, http.StatusConflict, second.Code)
		body := decodeAuthResponse(t, second)
		assert.False(t, body.Success)
		assert.Equal(t, "Email already registered", body.Message)
	})

	t.Run("rejects short password", func(t *testing.T) {
		t.Parallel()
		handler := newTestAuthHandler(t, newMemoryUserStore())

		rec := postJSON(t, handler.Register, "/api/users/register", RegisterRequest{
			Name:     "Ada",
			Email:    "ada@example.com",
			Password: "short",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()
		handler := newTestAuthHandler(t, newMemoryUserStore())

		req := httptest.NewRequest(http.MethodPost, "/api/users/register", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()
		handler.Register(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	registered := func(t *testing.T) (*AuthHandler, *memoryUserStore) {
		t.Helper()
		users := newMemoryUserStore()
		handler := newTestAuthHandler(t, users)
		rec := postJSON(t, handler.Register, "/api/users/register", RegisterRequest{
			Name:     "Ada",
			Email:    "ada@example.com",
			Password: "correct-horse-battery",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		return handler, users
	}

	t.Run("valid credentials return token pair", func(t *testing.T) {
		t.Parallel()
		handler, _ := registered(t)

		rec := postJSON(t, handler.Login, "/api/users/login", LoginRequest{
			Email:    "ada@example.com",
			Password: "correct-horse-battery",
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeAuthResponse(t, rec)
		assert.True(t, body.Success)
		assert.NotEmpty(t, body.Data.Token)
		assert.NotEmpty(t, body.Data.RefreshToken)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		t.Parallel()
		handler, _ := registered(t)

		wrongPassword := postJSON(t, handler.Login, "/api/users/login", LoginRequest{
			Email:    "ada@example.com",
			Password: "wrong-password-here",
		})
		unknownEmail := postJSON(t, handler.Login, "/api/users/login", LoginRequest{
			Email:    "nobody@example.com",
			Password: "correct-horse-battery",
		})

		assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
		assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
		assert.Equal(t,
			decodeAuthResponse(t, wrongPassword).Message,
			decodeAuthResponse(t, unknownEmail).Message)
	})
}

func TestRefreshToken(t *testing.T) {
	t.Parallel()

	t.Run("rotates token pair", func(t *testing.T) {
		t.Parallel()
		users := newMemoryUserStore()
		handler := newTestAuthHandler(t, users)

		reg := postJSON(t, handler.Register, "/api/users/register", RegisterRequest{
			Name:     "Ada",
			Email:    "ada@example.com",
			Password: "correct-horse-battery",
		})
		require.Equal(t, http.StatusCreated, reg.Code)
		refreshToken := decodeAuthResponse(t, reg).Data.RefreshToken

		rec := postJSON(t, handler.RefreshToken, "/api/users/refresh", RefreshTokenRequest{
			RefreshToken: refreshToken,
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeAuthResponse(t, rec)
		assert.NotEmpty(t, body.Data.Token)
		assert.NotEmpty(t, body.Data.RefreshToken)
	})

	t.Run("access token rejected", func(t *testing.T) {
		t.Parallel()
		users := newMemoryUserStore()
		handler := newTestAuthHandler(t, users)

		reg := postJSON(t, handler.Register, "/api/users/register", RegisterRequest{
			Name:     "Ada",
			Email:    "ada@example.com",
			Password: "correct-horse-battery",
		})
		require.Equal(t, http.StatusCreated, reg.Code)
		accessToken := decodeAuthResponse(t, reg).Data.Token

		rec := postJSON(t, handler.RefreshToken, "/api/users/refresh", RefreshTokenRequest{
			RefreshToken: accessToken,
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		t.Parallel()
		handler := newTestAuthHandler(t, newMemoryUserStore())

		rec := postJSON(t, handler.RefreshToken, "/api/users/refresh", RefreshTokenRequest{
			RefreshToken: "garbage",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestLogout(t *testing.T) {
	t.Parallel()

	handler := newTestAuthHandler(t, newMemoryUserStore())

	req := httptest.NewRequest(http.MethodPost, "/api/users/logout", nil)
	rec := httptest.NewRecorder()
	handler.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Message string `json:"message"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Logged out successfully", body.Data.Message)
}
