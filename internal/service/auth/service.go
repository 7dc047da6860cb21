// Package auth authenticates users and issues access tokens.
package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arcofed/federation-api/internal/model"
	"github.com/arcofed/federation-api/internal/repository"
	"github.com/arcofed/federation-api/pkg/auth"
	apperrors "github.com/arcofed/federation-api/pkg/errors"
	"github.com/arcofed/federation-api/pkg/security"
)

type Service struct {
	users  repository.UserRepository
	jwtSvc auth.JWTService
	hasher security.PasswordHasher
	logger zerolog.Logger
}

func NewService(users repository.UserRepository, jwtSvc auth.JWTService, hasher security.PasswordHasher, logger zerolog.Logger) *Service {
	return &Service{users: users, jwtSvc: jwtSvc, hasher: hasher, logger: logger}
}

type LoginResult struct {
	AccessToken string      `json:"access_token"`
	User        *model.User `json:"user"`
}

// Login verifies credentials and returns a signed access token. Unknown
// emails and wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, apperrors.Unauthorized(model.ErrInvalidCredentials)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.logger.Warn().Str("email", email).Msg("failed login attempt")
		return nil, apperrors.Unauthorized(model.ErrInvalidCredentials)
	}

	token, err := s.jwtSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &LoginResult{AccessToken: token, User: user}, nil
}

// Validate decodes a bearer token into claims.
func (s *Service) Validate(token string) (*model.TokenClaims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}
	return claims, nil
}
