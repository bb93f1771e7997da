package application

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/dugouthq/dugout/internal/domain/entity"
	"github.com/dugouthq/dugout/internal/domain/repository"
	"github.com/dugouthq/dugout/pkg/helpers"
)

// AuthService owns registration, login, token refresh, and logout.
// Token verification stays stateless; the only server-side token state is the
// Redis revocation list populated by logout.
type AuthService struct {
	Repo   repository.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewAuthService(repo repository.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, Redis: rdb, Logger: logger}
}

// Register hashes the password, persists the identity, and issues a token
// pair in the same call so the client needs no second round trip. The raw
// password is never stored or logged.
func (s *AuthService) Register(ctx context.Context, firstName, lastName, email, password string) (*entity.User, helpers.TokenPair, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, helpers.TokenPair{}, err
	}
	u := &entity.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, helpers.TokenPair{}, ErrDuplicateEmail
		}
		return nil, helpers.TokenPair{}, err
	}
	pair, err := s.JWT.IssueTokenPair(u.ID, u.DisplayName())
	if err != nil {
		return nil, helpers.TokenPair{}, err
	}
	s.Logger.WithField("user_id", u.ID).Info("user registered")
	return u, pair, nil
}

// Login validates email/password and issues a fresh token pair. A prior
// session is never reused or extended.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, helpers.TokenPair, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, helpers.TokenPair{}, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, helpers.TokenPair{}, ErrInvalidCredentials
	}
	pair, err := s.JWT.IssueTokenPair(u.ID, u.DisplayName())
	if err != nil {
		return nil, helpers.TokenPair{}, err
	}
	return u, pair, nil
}

// Refresh verifies the refresh token and mints a new access token for the
// same subject. The refresh token is not rotated; it stays valid until its
// natural expiry or a logout revocation.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", helpers.ErrInvalidToken
	}
	if helpers.TokenRevoked(ctx, s.Redis, claims.ID) {
		return "", ErrRevoked
	}
	access, _, err := s.JWT.GenerateAccessToken(claims.UserID, claims.Name)
	if err != nil {
		return "", err
	}
	return access, nil
}

// Logout revokes the presented refresh token for the remainder of its
// lifetime. Access tokens stay client-side deletion only; their 15 minute
// window bounds the exposure.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		// Nothing verifiable to revoke; treat as already logged out.
		return nil
	}
	if s.Redis == nil {
		return nil
	}
	if err := helpers.RevokeToken(ctx, s.Redis, claims.ID, claims.ExpiresAt.Time); err != nil {
		s.Logger.WithError(err).WithField("user_id", claims.UserID).Warn("refresh token revocation failed")
		return err
	}
	return nil
}
