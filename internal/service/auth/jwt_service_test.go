package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/config"
)

const testSecret = "test-jwt-secret-that-is-32-chars-long"

// newTestJWTService builds an HMAC service with an injectable clock so
// expiry behavior is deterministic.
func newTestJWTService(secret string, lifetime time.Duration, timeFunc func() time.Time) *hmacJWTService {
	return &hmacJWTService{
		signingKey:           []byte(secret),
		tokenLifetime:        lifetime,
		refreshTokenLifetime: 24 * time.Hour,
		timeFunc:             timeFunc,
		clockSkew:            2 * time.Minute,
	}
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("accepts sufficiently long secret", func(t *testing.T) {
		t.Parallel()
		svc, err := NewJWTService(config.AuthConfig{
			JWTSecret:                   testSecret,
			TokenLifetimeMinutes:        60,
			RefreshTokenLifetimeMinutes: 1440,
		})
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})

	t.Run("rejects short secret", func(t *testing.T) {
		t.Parallel()
		_, err := NewJWTService(config.AuthConfig{
			JWTSecret:                   "too-short",
			TokenLifetimeMinutes:        60,
			RefreshTokenLifetimeMinutes: 1440,
		})
		assert.Error(t, err)
	})
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	userID := uuid.New()

	svc := newTestJWTService(testSecret, tokenLifetime, func() time.Time {
		return fixedTime
	})

	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, tokenTypeAccess, claims.TokenType)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(tokenLifetime).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	wrongSecret := "wrong-secret-that-is-also-32-chars-xx"
	userID := uuid.New()

	atTime := func(ts time.Time) *hmacJWTService {
		return newTestJWTService(testSecret, tokenLifetime, func() time.Time { return ts })
	}

	tests := []struct {
		name      string
		setupFunc func() (*hmacJWTService, string)
		wantErr   error
	}{
		{
			name: "valid token",
			setupFunc: func() (*hmacJWTService, string) {
				svc := atTime(fixedTime)
				token, _ := svc.GenerateToken(context.Background(), userID)
				return svc, token
			},
		},
		{
			name: "expired token",
			setupFunc: func() (*hmacJWTService, string) {
				genSvc := atTime(fixedTime)
				token, _ := genSvc.GenerateToken(context.Background(), userID)
				return atTime(fixedTime.Add(tokenLifetime + time.Hour)), token
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "within clock skew of expiry",
			setupFunc: func() (*hmacJWTService, string) {
				genSvc := atTime(fixedTime)
				token, _ := genSvc.GenerateToken(context.Background(), userID)
				return atTime(fixedTime.Add(tokenLifetime + time.Minute)), token
			},
		},
		{
			name: "invalid signature",
			setupFunc: func() (*hmacJWTService, string) {
				genSvc := newTestJWTService(wrongSecret, tokenLifetime, func() time.Time { return fixedTime })
				token, _ := genSvc.GenerateToken(context.Background(), userID)
				return atTime(fixedTime), token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "malformed token",
			setupFunc: func() (*hmacJWTService, string) {
				return atTime(fixedTime), "not.a.jwt"
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "refresh token rejected as access token",
			setupFunc: func() (*hmacJWTService, string) {
				svc := atTime(fixedTime)
				token, _ := svc.GenerateRefreshToken(context.Background(), userID)
				return svc, token
			},
			wantErr: ErrWrongTokenType,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, token := tc.setupFunc()

			claims, err := svc.ValidateToken(context.Background(), token)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, claims.UserID)
		})
	}
}

func TestValidateRefreshToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	atTime := func(ts time.Time) *hmacJWTService {
		return newTestJWTService(testSecret, time.Hour, func() time.Time { return ts })
	}

	t.Run("valid refresh token round trip", func(t *testing.T) {
		t.Parallel()
		svc := atTime(fixedTime)
		token, err := svc.GenerateRefreshToken(context.Background(), userID)
		require.NoError(t, err)

		claims, err := svc.ValidateRefreshToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, tokenTypeRefresh, claims.TokenType)
	})

	t.Run("access token rejected as refresh token", func(t *testing.T) {
		t.Parallel()
		svc := atTime(fixedTime)
		token, err := svc.GenerateToken(context.Background(), userID)
		require.NoError(t, err)

		_, err = svc.ValidateRefreshToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})

	t.Run("expired refresh token maps to refresh sentinel", func(t *testing.T) {
		t.Parallel()
		genSvc := atTime(fixedTime)
		token, err := genSvc.GenerateRefreshToken(context.Background(), userID)
		require.NoError(t, err)

		valSvc := atTime(fixedTime.Add(25 * time.Hour))
		_, err = valSvc.ValidateRefreshToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrExpiredRefreshToken)
	})

	t.Run("garbage refresh token maps to refresh sentinel", func(t *testing.T) {
		t.Parallel()
		svc := atTime(fixedTime)
		_, err := svc.ValidateRefreshToken(context.Background(), "garbage")
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}

func TestTokenIDsAreUnique(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(testSecret, time.Hour, time.Now)
	userID := uuid.New()

	first, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	second, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)

	firstClaims, err := svc.ValidateToken(context.Background(), first)
	require.NoError(t, err)
	secondClaims, err := svc.ValidateToken(context.Background(), second)
	require.NoError(t, err)

	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}
