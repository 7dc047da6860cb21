// Package simulation lets super admins preview the application as
// another role or a specific user. Sessions live server side so the
// auth middleware has a single source of truth for effective identity.
package simulation

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/arcofed/federation-api/internal/model"
	"github.com/arcofed/federation-api/internal/repository"
	apperrors "github.com/arcofed/federation-api/pkg/errors"
)

const (
	sessionTTL      = 4 * time.Hour
	cleanupInterval = 10 * time.Minute
)

type Service struct {
	users    repository.UserRepository
	sessions *cache.Cache
	logger   zerolog.Logger
}

func NewService(users repository.UserRepository, logger zerolog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: cache.New(sessionTTL, cleanupInterval),
		logger:   logger,
	}
}

// StartRole begins a role-only simulation for the given admin. Any
// previous session for that admin is replaced.
func (s *Service) StartRole(ctx context.Context, adminUserID string, role model.Role) (*model.SimulationState, error) {
	if !role.IsValid() {
		return nil, apperrors.BadRequest("unknown role", nil)
	}
	state := &model.SimulationState{
		AdminUserID: adminUserID,
		Mode:        model.SimulationModeRole,
		Role:        role,
		StartedAt:   time.Now().UTC(),
	}
	s.sessions.Set(adminUserID, state, sessionTTL)
	s.logger.Info().Str("admin_user_id", adminUserID).Str("role", string(role)).Msg("role simulation started")
	return state, nil
}

// StartUser begins simulation of a specific user, looked up by external
// ID. When the lookup fails the session still starts, carrying only the
// requested role label and a degraded flag; no profile is fabricated.
func (s *Service) StartUser(ctx context.Context, adminUserID, targetExternalID string, requestedRole model.Role) (*model.SimulationState, error) {
	if !requestedRole.IsValid() {
		return nil, apperrors.BadRequest("unknown role", nil)
	}

	state := &model.SimulationState{
		AdminUserID: adminUserID,
		Mode:        model.SimulationModeUser,
		Role:        requestedRole,
		TargetID:    targetExternalID,
		StartedAt:   time.Now().UTC(),
	}

	// A failed lookup, whether not-found or a repository error, starts
	// a degraded session carrying only the requested role label. The
	// admin can still preview; no profile is fabricated.
	target, err := s.users.GetByExternalID(ctx, targetExternalID)
	if err != nil || target == nil {
		state.Degraded = true
		s.logger.Warn().
			Err(err).
			Str("admin_user_id", adminUserID).
			Str("target_id", targetExternalID).
			Msg("simulation target lookup failed, starting degraded session")
	} else {
		state.TargetUser = target
	}

	s.sessions.Set(adminUserID, state, sessionTTL)
	s.logger.Info().
		Str("admin_user_id", adminUserID).
		Str("target_id", targetExternalID).
		Bool("degraded", state.Degraded).
		Msg("user simulation started")
	return state, nil
}

// Get returns the admin's active session, or nil when none exists.
func (s *Service) Get(adminUserID string) *model.SimulationState {
	if v, ok := s.sessions.Get(adminUserID); ok {
		return v.(*model.SimulationState)
	}
	return nil
}

// Clear ends the admin's session, restoring their real identity.
// Clearing with no active session is a no-op.
func (s *Service) Clear(adminUserID string) {
	s.sessions.Delete(adminUserID)
	s.logger.Info().Str("admin_user_id", adminUserID).Msg("simulation cleared")
}
