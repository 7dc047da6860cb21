// Package permissions manages the editable role permission matrix and
// per-role UI settings overrides.
package permissions

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arcofed/federation-api/internal/model"
	"github.com/arcofed/federation-api/internal/registry"
	"github.com/arcofed/federation-api/internal/repository"
	"github.com/arcofed/federation-api/internal/resolver"
	apperrors "github.com/arcofed/federation-api/pkg/errors"
	"github.com/arcofed/federation-api/pkg/metrics"
)

type Service struct {
	perms    repository.RolePermissionsRepository
	settings repository.UISettingsRepository
	outbox   repository.OutboxRepository
	resolver *resolver.Resolver
	logger   zerolog.Logger
	metrics  *metrics.Metrics
}

func NewService(
	perms repository.RolePermissionsRepository,
	settings repository.UISettingsRepository,
	outbox repository.OutboxRepository,
	res *resolver.Resolver,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{perms: perms, settings: settings, outbox: outbox, resolver: res, logger: logger, metrics: m}
}

// Matrix returns the effective permission record for every role.
func (s *Service) Matrix(ctx context.Context) map[model.Role]*model.RolePermissions {
	out := make(map[model.Role]*model.RolePermissions, len(model.AllRoles))
	for _, role := range model.AllRoles {
		out[role] = s.resolver.PermissionRecord(ctx, role)
	}
	return out
}

// RoleMatrix returns the effective permission record for one role.
func (s *Service) RoleMatrix(ctx context.Context, role model.Role) (*model.RolePermissions, error) {
	if !role.IsValid() {
		return nil, apperrors.BadRequest("unknown role", nil)
	}
	return s.resolver.PermissionRecord(ctx, role), nil
}

// UpdatePermission flips a single action bit on one (role, module)
// tuple. Only that role's record is touched; every other role keeps
// its current state.
func (s *Service) UpdatePermission(ctx context.Context, role model.Role, module string, action model.Action, allowed bool) (*model.RolePermissions, error) {
	if !role.IsValid() {
		return nil, apperrors.BadRequest("unknown role", nil)
	}
	if !registry.Exists(module) {
		return nil, apperrors.NotFound("module", nil)
	}

	record := s.resolver.PermissionRecord(ctx, role).Clone()
	perm, _ := record.Find(module)
	record.Upsert(perm.Set(action, allowed))

	if err := s.perms.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save permission record: %w", err)
	}

	if s.metrics != nil {
		s.metrics.ConfigSaves.WithLabelValues("permission").Inc()
	}
	s.resolver.Invalidate()
	s.emit(ctx, model.EventPermissionUpdated, record)
	return record, nil
}

// ResetRole discards the stored record and restores the static
// defaults. Resetting an untouched role is a no-op.
func (s *Service) ResetRole(ctx context.Context, role model.Role) (*model.RolePermissions, error) {
	if !role.IsValid() {
		return nil, apperrors.BadRequest("unknown role", nil)
	}

	if err := s.perms.Delete(ctx, role); err != nil {
		return nil, fmt.Errorf("failed to reset permission record: %w", err)
	}

	if s.metrics != nil {
		s.metrics.ConfigResets.WithLabelValues("permission").Inc()
	}
	s.resolver.Invalidate()
	s.emit(ctx, model.EventPermissionReset, map[string]string{"role": string(role)})
	return registry.DefaultPermissions(role), nil
}

// UISettings returns the role's persisted UI settings, or the static
// defaults when none are stored.
func (s *Service) UISettings(ctx context.Context, role model.Role) (*model.RoleUISettings, error) {
	if !role.IsValid() {
		return nil, apperrors.BadRequest("unknown role", nil)
	}
	stored, err := s.settings.Get(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to load ui settings: %w", err)
	}
	if stored == nil {
		return registry.DefaultUISettings(role), nil
	}
	return stored, nil
}

// SaveUISettings overwrites the role's UI settings. Unknown module
// references in the sidebar list are dropped.
func (s *Service) SaveUISettings(ctx context.Context, settings *model.RoleUISettings) (*model.RoleUISettings, error) {
	if !settings.Role.IsValid() {
		return nil, apperrors.BadRequest("unknown role", nil)
	}
	settings = settings.Clone()
	settings.SidebarModules = registry.FilterKnown(settings.SidebarModules)

	if err := s.settings.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save ui settings: %w", err)
	}

	if s.metrics != nil {
		s.metrics.ConfigSaves.WithLabelValues("ui_settings").Inc()
	}
	s.resolver.Invalidate()
	return settings, nil
}

// ResetUISettings deletes the stored settings and restores defaults.
func (s *Service) ResetUISettings(ctx context.Context, role model.Role) (*model.RoleUISettings, error) {
	if !role.IsValid() {
		return nil, apperrors.BadRequest("unknown role", nil)
	}
	if err := s.settings.Delete(ctx, role); err != nil {
		return nil, fmt.Errorf("failed to reset ui settings: %w", err)
	}
	if s.metrics != nil {
		s.metrics.ConfigResets.WithLabelValues("ui_settings").Inc()
	}
	s.resolver.Invalidate()
	return registry.DefaultUISettings(role), nil
}

func (s *Service) emit(ctx context.Context, eventType string, payload interface{}) {
	if s.outbox == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Msg("failed to marshal event payload")
		return
	}
	if err := s.outbox.Create(ctx, &model.OutboxEvent{EventType: eventType, Payload: raw}); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Msg("failed to create outbox event")
	}
}
