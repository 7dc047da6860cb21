// Package modules exposes enable/disable state and granular
// sub-feature configuration for (role, module) and (organization,
// module) pairs.
package modules

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arcofed/federation-api/internal/model"
	"github.com/arcofed/federation-api/internal/registry"
	"github.com/arcofed/federation-api/internal/repository"
	"github.com/arcofed/federation-api/internal/resolver"
	apperrors "github.com/arcofed/federation-api/pkg/errors"
	"github.com/arcofed/federation-api/pkg/metrics"
)

type Service struct {
	roleCfgs repository.RoleModuleConfigRepository
	orgCfgs  repository.OrgModuleConfigRepository
	outbox   repository.OutboxRepository
	resolver *resolver.Resolver
	logger   zerolog.Logger
	metrics  *metrics.Metrics
}

func NewService(
	roleCfgs repository.RoleModuleConfigRepository,
	orgCfgs repository.OrgModuleConfigRepository,
	outbox repository.OutboxRepository,
	res *resolver.Resolver,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		roleCfgs: roleCfgs,
		orgCfgs:  orgCfgs,
		outbox:   outbox,
		resolver: res,
		logger:   logger,
		metrics:  m,
	}
}

// ModuleUpdate is one entry of a batch write.
type ModuleUpdate struct {
	Module    string         `json:"module" binding:"required"`
	IsEnabled bool           `json:"is_enabled"`
	Config    model.JSONBlob `json:"config"`
}

// Registry returns the full static module catalog.
func (s *Service) Registry() []model.Module {
	return registry.Catalog
}

// GetRoleModules returns every module the role is entitled to see,
// annotated with its resolved enabled state and config. When an orgID
// is given, the organization's override layer takes precedence over
// the role-level config.
func (s *Service) GetRoleModules(ctx context.Context, role model.Role, orgID *uuid.UUID) ([]*model.RoleModule, error) {
	if !role.IsValid() {
		return nil, apperrors.BadRequest("unknown role", nil)
	}

	roleConfigs := make(map[string]*model.RoleModuleConfig)
	stored, err := s.roleCfgs.List(ctx, role)
	if err != nil {
		// Absence of config is never fatal: modules degrade to their
		// default-enabled state.
		s.logger.Warn().Err(err).Str("role", string(role)).Msg("role module config fetch failed, using defaults")
	} else {
		for _, cfg := range stored {
			roleConfigs[cfg.Module] = cfg
		}
	}

	orgConfigs := make(map[string]*model.OrgModuleConfig)
	if orgID != nil {
		overrides, err := s.orgCfgs.List(ctx, *orgID)
		if err != nil {
			s.logger.Warn().Err(err).Str("org_id", orgID.String()).Msg("org module config fetch failed, ignoring overrides")
		} else {
			for _, cfg := range overrides {
				orgConfigs[cfg.Module] = cfg
			}
		}
	}

	var out []*model.RoleModule
	for _, mod := range registry.ModulesFor(role) {
		rm := &model.RoleModule{Module: mod, IsEnabled: true}

		if cfg, ok := roleConfigs[mod.Code]; ok {
			rm.IsEnabled = cfg.IsEnabled
			rm.Config = cfg.Config
		}
		// Organization override wins over the role-level config.
		if cfg, ok := orgConfigs[mod.Code]; ok {
			rm.IsEnabled = cfg.IsEnabled
			if len(cfg.Config) > 0 {
				rm.Config = cfg.Config
			}
		}
		// Foundation modules are locked on no matter what is stored.
		if mod.IsFoundation() {
			rm.IsEnabled = true
		}

		rm.EnabledSubModules = enabledSubModules(&mod, rm.IsEnabled, rm.Config)
		out = append(out, rm)
	}
	return out, nil
}

// enabledSubModules lists the sub-module codes that pass the module's
// feature gate. A disabled parent disables every sub-module regardless
// of the gate.
func enabledSubModules(mod *model.Module, parentEnabled bool, cfg model.JSONBlob) []string {
	if len(mod.SubModules) == 0 {
		return nil
	}
	if !parentEnabled {
		return []string{}
	}
	gate := model.GateFromConfig(cfg)
	out := make([]string, 0, len(mod.SubModules))
	for _, sm := range mod.SubModules {
		if gate.Enabled(sm.Code) {
			out = append(out, sm.Code)
		}
	}
	return out
}

// UpdateRoleModuleConfig persists a new enabled/config pair for one
// (role, module). Disabling a foundation module is rejected before any
// write.
func (s *Service) UpdateRoleModuleConfig(ctx context.Context, role model.Role, module string, isEnabled bool, config model.JSONBlob) (*model.RoleModuleConfig, error) {
	mod, err := s.validateToggle(role, module, isEnabled)
	if err != nil {
		return nil, err
	}

	cfg := &model.RoleModuleConfig{Role: role, Module: mod.Code, IsEnabled: isEnabled, Config: config}
	if existing, err := s.roleCfgs.Get(ctx, role, mod.Code); err == nil && existing != nil {
		cfg.ID = existing.ID
		cfg.CreatedAt = existing.CreatedAt
		if config == nil {
			cfg.Config = existing.Config
		}
	}
	if cfg.Config == nil {
		cfg.Config = model.JSONBlob{}
	}

	if err := s.roleCfgs.Upsert(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to persist role module config: %w", err)
	}

	s.afterMutation("role_module")
	s.emit(ctx, model.EventRoleModuleUpdated, cfg)
	return cfg, nil
}

// BatchUpdateRoleModuleConfigs applies several updates for one role.
// Each entry is validated independently; the first policy violation
// aborts the batch before any of the remaining writes.
func (s *Service) BatchUpdateRoleModuleConfigs(ctx context.Context, role model.Role, updates []ModuleUpdate) error {
	for _, u := range updates {
		if _, err := s.validateToggle(role, u.Module, u.IsEnabled); err != nil {
			return err
		}
	}
	for _, u := range updates {
		if _, err := s.UpdateRoleModuleConfig(ctx, role, u.Module, u.IsEnabled, u.Config); err != nil {
			return err
		}
	}
	return nil
}

// ToggleSubModule flips one sub-module's enabled state. When no
// enabled_features key exists the effective set is all sub-module
// codes; the toggled code is then removed or added and the explicit
// set written back alongside the existing config keys.
func (s *Service) ToggleSubModule(ctx context.Context, role model.Role, module, subCode string) (*model.RoleModuleConfig, error) {
	if !role.IsValid() {
		return nil, apperrors.BadRequest("unknown role", nil)
	}
	mod, ok := registry.Lookup(module)
	if !ok {
		return nil, apperrors.NotFound("module", nil)
	}
	codes := mod.SubModuleCodes()
	if indexOfCode(codes, subCode) < 0 {
		return nil, apperrors.NotFound("sub-module", nil)
	}

	existing, err := s.roleCfgs.Get(ctx, role, module)
	if err != nil {
		return nil, fmt.Errorf("failed to load role module config: %w", err)
	}

	cfg := &model.RoleModuleConfig{Role: role, Module: module, IsEnabled: true, Config: model.JSONBlob{}}
	if existing != nil {
		cfg = existing
	}

	gate := model.GateFromConfig(cfg.Config)
	cfg.Config = gate.Toggle(subCode, codes).ApplyTo(cfg.Config)

	if err := s.roleCfgs.Upsert(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to persist sub-module toggle: %w", err)
	}

	s.afterMutation("role_module")
	s.emit(ctx, model.EventRoleModuleUpdated, cfg)
	return cfg, nil
}

// ListOrgConfigs returns an organization's module overrides.
func (s *Service) ListOrgConfigs(ctx context.Context, orgID uuid.UUID) ([]*model.OrgModuleConfig, error) {
	configs, err := s.orgCfgs.List(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list org module configs: %w", err)
	}
	return configs, nil
}

// UpsertOrgConfig writes one organization-level override, with the
// same foundation lock as the role layer.
func (s *Service) UpsertOrgConfig(ctx context.Context, orgID uuid.UUID, module string, isEnabled bool, config model.JSONBlob) (*model.OrgModuleConfig, error) {
	mod, ok := registry.Lookup(module)
	if !ok {
		return nil, apperrors.NotFound("module", nil)
	}
	if mod.IsFoundation() && !isEnabled {
		if s.metrics != nil {
			s.metrics.PolicyViolations.WithLabelValues("foundation_lock").Inc()
		}
		return nil, apperrors.PolicyViolation(fmt.Sprintf("module %q is a foundation module and cannot be disabled", module))
	}

	cfg := &model.OrgModuleConfig{OrganizationID: orgID, Module: module, IsEnabled: isEnabled, Config: config}
	if cfg.Config == nil {
		cfg.Config = model.JSONBlob{}
	}
	if err := s.orgCfgs.Upsert(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to persist org module config: %w", err)
	}

	s.afterMutation("org_module")
	s.emit(ctx, model.EventOrgModuleUpdated, cfg)
	return cfg, nil
}

func (s *Service) validateToggle(role model.Role, module string, isEnabled bool) (*model.Module, error) {
	if !role.IsValid() {
		return nil, apperrors.BadRequest("unknown role", nil)
	}
	mod, ok := registry.Lookup(module)
	if !ok {
		return nil, apperrors.NotFound("module", nil)
	}
	if mod.IsFoundation() && !isEnabled {
		if s.metrics != nil {
			s.metrics.PolicyViolations.WithLabelValues("foundation_lock").Inc()
		}
		return nil, apperrors.PolicyViolation(fmt.Sprintf("module %q is a foundation module and cannot be disabled", module))
	}
	return mod, nil
}

func (s *Service) afterMutation(kind string) {
	if s.metrics != nil {
		s.metrics.ConfigSaves.WithLabelValues(kind).Inc()
	}
	if s.resolver != nil {
		s.resolver.Invalidate()
	}
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

func indexOfCode(codes []string, code string) int {
	for i, c := range codes {
		if c == code {
			return i
		}
	}
	return -1
}
