package tokens

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	userID := uuid.NewString()
	exp := time.Now().Add(15 * time.Minute).UTC()

	token, err := NewAccessToken(userID, "buyer@example.com", exp, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := AccessClaimsFromToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.Subject)
	assert.Equal(t, "buyer@example.com", claims.Email)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestAccessToken_WrongSecretRejected(t *testing.T) {
	t.Parallel()

	token, err := NewAccessToken(uuid.NewString(), "buyer@example.com", time.Now().Add(time.Hour), testSecret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, []byte("other-secret"))
	assert.Error(t, err)
}

func TestAccessToken_ExpiredRejected(t *testing.T) {
	t.Parallel()

	token, err := NewAccessToken(uuid.NewString(), "buyer@example.com", time.Now().Add(-time.Minute), testSecret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, testSecret)
	assert.Error(t, err)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	t.Parallel()

	userID := uuid.NewString()
	jti := uuid.NewString()

	token, err := NewRefreshToken(userID, jti, time.Now().Add(24*time.Hour), testSecret)
	require.NoError(t, err)

	claims, err := RefreshClaimsFromToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.Subject)
	assert.Equal(t, jti, claims.ID)
}

func TestRefreshToken_NotValidAsAccessSecret(t *testing.T) {
	t.Parallel()

	token, err := NewRefreshToken(uuid.NewString(), uuid.NewString(), time.Now().Add(time.Hour), testSecret)
	require.NoError(t, err)

	_, err = RefreshClaimsFromToken(token, []byte("access-secret"))
	assert.Error(t, err)
}
