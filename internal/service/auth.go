package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/woodharbor/slabstore/internal/hash"
	"github.com/woodharbor/slabstore/internal/models"
	"github.com/woodharbor/slabstore/internal/repo"
	"github.com/woodharbor/slabstore/pkg/logging"
	"github.com/woodharbor/slabstore/pkg/tokens"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
}

type LoginResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

func (s *AuthService) Register(ctx context.Context, email, password, displayName, phone string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password required: %w", ErrValidation)
	}

	if _, err := s.Repo.UserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: pwHash,
		DisplayName:  displayName,
		Phone:        phone,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		return nil, err
	}

	l.Info("register_success", "user_id", user.ID)
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password required: %w", ErrValidation)
	}

	user, err := s.Repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidLogin
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidLogin
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		l.Error("login_error", "error", err)
		return nil, err
	}

	l.Info("login_success", "user_id", user.ID)
	return result, nil
}

// Refresh rotates the refresh token: the presented JTI is revoked and a new
// pair is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, ErrInvalidLogin
	}

	valid, err := s.Repo.RefreshTokenValid(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, ErrInvalidLogin
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidLogin
	}
	user, err := s.Repo.UserByID(ctx, userID)
	if err != nil {
		return nil, ErrInvalidLogin
	}

	if err := s.Repo.RevokeRefreshToken(ctx, claims.ID); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.Repo.RevokeUserRefreshTokens(ctx, userID)
}

func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.Repo.UserByID(ctx, userID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, displayName, phone string) (*models.User, error) {
	return s.Repo.UpdateProfile(ctx, userID, displayName, phone)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*LoginResult, error) {
	accessExp := time.Now().Add(accessTokenTTL)
	accessToken, err := tokens.NewAccessToken(user.ID.String(), user.Email, accessExp, s.JWTSecret)
	if err != nil {
		return nil, err
	}

	refreshExp := time.Now().Add(refreshTokenTTL)
	jti := uuid.NewString()
	refreshToken, err := tokens.NewRefreshToken(user.ID.String(), jti, refreshExp, s.RefreshSecret)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.SaveRefreshToken(ctx, user.ID, jti, refreshExp.UTC()); err != nil {
		return nil, err
	}

	return &LoginResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}
