package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woodharbor/slabstore/pkg/tokens"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()

	return &AuthService{
		Repo:          newTestRepo(t),
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "empty email", email: "", password: "secret"},
		{name: "empty password", email: "user@example.com", password: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			user, err := svc.Register(ctx, tt.email, tt.password, "", "")
			require.Error(t, err)
			assert.Nil(t, user)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthService_Register_NormalizesEmailAndRejectsDuplicates(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "  Buyer@Example.COM ", "secret", "Buyer", "")
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", user.Email)
	assert.NotEqual(t, "secret", user.PasswordHash)

	_, err = svc.Register(ctx, "buyer@example.com", "other", "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthService_Login_IssuesVerifiableTokens(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "buyer@example.com", "secret", "", "")
	require.NoError(t, err)

	result, err := svc.Login(ctx, "buyer@example.com", "secret")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, registered.ID, result.User.ID)

	claims, err := tokens.AccessClaimsFromToken(result.AccessToken, svc.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, registered.ID.String(), claims.Subject)
	assert.Equal(t, "buyer@example.com", claims.Email)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, result.AccessExp, claims.ExpiresAt.Time, time.Second)

	refresh, err := tokens.RefreshClaimsFromToken(result.RefreshToken, svc.RefreshSecret)
	require.NoError(t, err)
	assert.Equal(t, registered.ID.String(), refresh.Subject)
	assert.NotEmpty(t, refresh.ID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "buyer@example.com", "secret", "", "")
	require.NoError(t, err)

	result, err := svc.Login(ctx, "buyer@example.com", "wrong")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidLogin)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)

	result, err := svc.Login(context.Background(), "ghost@example.com", "secret")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidLogin)
}

func TestAuthService_Refresh_RotatesJTI(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "buyer@example.com", "secret", "", "")
	require.NoError(t, err)
	login, err := svc.Login(ctx, "buyer@example.com", "secret")
	require.NoError(t, err)

	rotated, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, rotated.RefreshToken)

	// The old token was revoked by the rotation and cannot be replayed.
	_, err = svc.Refresh(ctx, login.RefreshToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidLogin)
}

func TestAuthService_Refresh_InvalidToken(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)

	result, err := svc.Refresh(context.Background(), "not-a-valid-jwt")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidLogin)
}

func TestAuthService_Logout_RevokesAllSessions(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "buyer@example.com", "secret", "", "")
	require.NoError(t, err)
	login, err := svc.Login(ctx, "buyer@example.com", "secret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, user.ID))

	_, err = svc.Refresh(ctx, login.RefreshToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidLogin)
}
