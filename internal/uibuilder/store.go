package uibuilder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arcofed/federation-api/internal/model"
	"github.com/arcofed/federation-api/internal/registry"
	"github.com/arcofed/federation-api/internal/repository"
	apperrors "github.com/arcofed/federation-api/pkg/errors"
	"github.com/arcofed/federation-api/pkg/metrics"
)

// DocumentVersion tags the persisted UI builder document shape.
const DocumentVersion = 2

// Store persists and serves per-role UI builder configuration.
// Saves write a role's section whole; reset is a full overwrite with
// the hard-coded defaults, never a partial merge.
type Store struct {
	repo    repository.UIBuilderRepository
	outbox  repository.OutboxRepository
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

func NewStore(repo repository.UIBuilderRepository, outbox repository.OutboxRepository, logger zerolog.Logger, m *metrics.Metrics) *Store {
	return &Store{repo: repo, outbox: outbox, logger: logger, metrics: m}
}

// Get returns the role's stored config, or the default config built
// from the static tables when nothing is persisted yet.
func (s *Store) Get(ctx context.Context, role model.Role) (*model.RoleUIBuilderConfig, error) {
	if !role.IsValid() {
		return nil, apperrors.BadRequest("unknown role", nil)
	}

	cfg, err := s.repo.GetRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to load ui builder config: %w", err)
	}
	if cfg == nil {
		return DefaultConfig(role), nil
	}
	return cfg, nil
}

// Document assembles the full multi-role document served to the admin
// editor: version tag, timestamp, one entry per role.
func (s *Store) Document(ctx context.Context) (*model.UIBuilderDocument, error) {
	doc := &model.UIBuilderDocument{
		Version:   DocumentVersion,
		UpdatedAt: time.Now(),
		Roles:     make(map[model.Role]model.RoleUIBuilderConfig, len(model.AllRoles)),
	}
	for _, role := range model.AllRoles {
		cfg, err := s.Get(ctx, role)
		if err != nil {
			return nil, err
		}
		doc.Roles[role] = *cfg
	}
	return doc, nil
}

// Save persists a role's section whole. Module references that are not
// in the registry and not among the role's custom modules are dropped
// silently before writing.
func (s *Store) Save(ctx context.Context, cfg *model.RoleUIBuilderConfig) error {
	if !cfg.Role.IsValid() {
		return apperrors.BadRequest("unknown role", nil)
	}

	custom := make(map[string]struct{}, len(cfg.CustomModules))
	for _, cm := range cfg.CustomModules {
		custom[cm.ID] = struct{}{}
	}
	for i := range cfg.Groups {
		kept := make([]string, 0, len(cfg.Groups[i].Modules))
		for _, m := range cfg.Groups[i].Modules {
			if registry.Exists(m) {
				kept = append(kept, m)
				continue
			}
			if _, ok := custom[m]; ok {
				kept = append(kept, m)
			}
		}
		cfg.Groups[i].Modules = kept
	}

	if err := s.repo.SaveRole(ctx, cfg); err != nil {
		return fmt.Errorf("failed to save ui builder config: %w", err)
	}
	if s.metrics != nil {
		s.metrics.ConfigSaves.WithLabelValues("ui_builder").Inc()
	}
	s.emit(ctx, model.EventUIBuilderSaved, cfg)
	return nil
}

// Reset discards the role's customization and returns the defaults.
func (s *Store) Reset(ctx context.Context, role model.Role) (*model.RoleUIBuilderConfig, error) {
	if !role.IsValid() {
		return nil, apperrors.BadRequest("unknown role", nil)
	}
	if err := s.repo.DeleteRole(ctx, role); err != nil {
		return nil, fmt.Errorf("failed to reset ui builder config: %w", err)
	}
	if s.metrics != nil {
		s.metrics.ConfigResets.WithLabelValues("ui_builder").Inc()
	}
	return DefaultConfig(role), nil
}

// AddCustomModule validates and appends a custom module to the role's
// config, assigning its ID and order index.
func (s *Store) AddCustomModule(ctx context.Context, role model.Role, cm model.CustomModule) (*model.CustomModule, error) {
	if !cm.Layout.IsValid() {
		return nil, apperrors.BadRequest(fmt.Sprintf("unknown layout type %q", cm.Layout), nil)
	}
	if cm.Name == "" {
		return nil, apperrors.BadRequest("custom module name is required", nil)
	}

	cfg, err := s.Get(ctx, role)
	if err != nil {
		return nil, err
	}

	cm.ID = "custom-" + uuid.NewString()
	cm.OrderIndex = len(cfg.CustomModules)
	cfg.CustomModules = append(cfg.CustomModules, cm)

	if err := s.Save(ctx, cfg); err != nil {
		return nil, err
	}
	return &cm, nil
}

// DeleteCustomModule removes a custom module and any group references
// to it.
func (s *Store) DeleteCustomModule(ctx context.Context, role model.Role, id string) error {
	cfg, err := s.Get(ctx, role)
	if err != nil {
		return err
	}

	kept := make([]model.CustomModule, 0, len(cfg.CustomModules))
	found := false
	for _, cm := range cfg.CustomModules {
		if cm.ID == id {
			found = true
			continue
		}
		kept = append(kept, cm)
	}
	if !found {
		return apperrors.NotFound("custom module", nil)
	}
	cfg.CustomModules = kept
	cfg.Groups = RemoveModule(cfg.Groups, id)

	return s.Save(ctx, cfg)
}

// DefaultConfig builds a role's default UI builder section from the
// static tables.
func DefaultConfig(role model.Role) *model.RoleUIBuilderConfig {
	settings := registry.DefaultUISettings(role)
	modules := registry.ModulesFor(role)

	entries := make([]model.RoleModuleEntry, len(modules))
	for i, m := range modules {
		entries[i] = model.RoleModuleEntry{Module: m.Code, Visible: true}
	}

	return &model.RoleUIBuilderConfig{
		Role:          role,
		PrimaryColor:  settings.PrimaryColor,
		AccentColor:   settings.AccentColor,
		Groups:        registry.DefaultSidebarGroups(role),
		ModuleEntries: entries,
		CustomModules: []model.CustomModule{},
	}
}

func (s *Store) emit(ctx context.Context, eventType string, payload interface{}) {
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
