package auth

import (
	"testing"
	"time"

	"trailhead/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, ttl time.Duration) *jwtService {
	t.Helper()

	cfg := &config.Config{
		Auth: &config.AuthConfig{
			JWTSecret: "test_secret_key_very_long_for_testing",
			TokenTTL:  ttl,
		},
	}

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{Auth: &config.AuthConfig{}})
	assert.Error(t, err)

	_, err = NewJWTService(&config.Config{})
	assert.Error(t, err)
}

func TestJWTService_IssueAndParse(t *testing.T) {
	svc := newTestTokenService(t, 15*time.Minute)
	userID := uuid.New()

	before := time.Now()
	token, err := svc.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.WithinDuration(t, before, claims.IssuedAt, 2*time.Second)
}

func TestJWTService_Parse_Rejections(t *testing.T) {
	svc := newTestTokenService(t, 15*time.Minute)
	userID := uuid.New()

	t.Run("malformed token", func(t *testing.T) {
		claims, err := svc.Parse("clearly-not-a-jwt")
		assert.ErrorIs(t, err, ErrTokenInvalid)
		assert.Nil(t, claims)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := svc.Parse("")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("wrong signature", func(t *testing.T) {
		other := newTestTokenService(t, 15*time.Minute)
		other.secret = []byte("a_different_secret_entirely")

		token, err := other.Issue(userID)
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := newTestTokenService(t, -time.Minute)

		token, err := expired.Issue(userID)
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("wrong signing method", func(t *testing.T) {
		// alg=none must never be accepted.
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"sub": userID.String(),
			"iat": time.Now().Unix(),
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("subject is not a uuid", func(t *testing.T) {
		bogus := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "42",
			"iat": time.Now().Unix(),
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		token, err := bogus.SignedString(svc.secret)
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}

func TestJWTService_TTL(t *testing.T) {
	svc := newTestTokenService(t, 42*time.Minute)
	assert.Equal(t, 42*time.Minute, svc.TTL())
}
