// Package memory provides in-memory implementations of the repository
// interfaces. Tests substitute them for Postgres; the service also
// falls back to them when the database is unreachable so the
// application always serves a usable (if default) configuration.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arcofed/federation-api/internal/model"
	"github.com/arcofed/federation-api/internal/repository"
)

type RolePermissionsRepository struct {
	mu      sync.RWMutex
	records map[model.Role]*model.RolePermissions
}

func NewRolePermissionsRepository() *RolePermissionsRepository {
	return &RolePermissionsRepository{records: make(map[model.Role]*model.RolePermissions)}
}

func (r *RolePermissionsRepository) Get(_ context.Context, role model.Role) (*model.RolePermissions, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[role]
	if !ok {
		return nil, nil
	}
	return record.Clone(), nil
}

func (r *RolePermissionsRepository) Save(_ context.Context, record *model.RolePermissions) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.Role] = record.Clone()
	return nil
}

func (r *RolePermissionsRepository) Delete(_ context.Context, role model.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, role)
	return nil
}

type UISettingsRepository struct {
	mu      sync.RWMutex
	records map[model.Role]*model.RoleUISettings
}

func NewUISettingsRepository() *UISettingsRepository {
	return &UISettingsRepository{records: make(map[model.Role]*model.RoleUISettings)}
}

func (r *UISettingsRepository) Get(_ context.Context, role model.Role) (*model.RoleUISettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[role]
	if !ok {
		return nil, nil
	}
	return record.Clone(), nil
}

func (r *UISettingsRepository) Save(_ context.Context, settings *model.RoleUISettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[settings.Role] = settings.Clone()
	return nil
}

func (r *UISettingsRepository) Delete(_ context.Context, role model.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, role)
	return nil
}

type SidebarLayoutRepository struct {
	mu      sync.RWMutex
	layouts map[model.Role]*model.SidebarLayout
}

func NewSidebarLayoutRepository() *SidebarLayoutRepository {
	return &SidebarLayoutRepository{layouts: make(map[model.Role]*model.SidebarLayout)}
}

func (r *SidebarLayoutRepository) Get(_ context.Context, role model.Role) (*model.SidebarLayout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	layout, ok := r.layouts[role]
	if !ok {
		return nil, nil
	}
	return layout.Clone(), nil
}

func (r *SidebarLayoutRepository) Save(_ context.Context, layout *model.SidebarLayout) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := layout.Clone()
	clone.UpdatedAt = time.Now()
	r.layouts[layout.Role] = clone
	return nil
}

func (r *SidebarLayoutRepository) Delete(_ context.Context, role model.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.layouts, role)
	return nil
}

type UIBuilderRepository struct {
	mu      sync.RWMutex
	configs map[model.Role]*model.RoleUIBuilderConfig
}

func NewUIBuilderRepository() *UIBuilderRepository {
	return &UIBuilderRepository{configs: make(map[model.Role]*model.RoleUIBuilderConfig)}
}

func (r *UIBuilderRepository) GetRole(_ context.Context, role model.Role) (*model.RoleUIBuilderConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.configs[role]
	if !ok {
		return nil, nil
	}
	clone := *cfg
	return &clone, nil
}

func (r *UIBuilderRepository) SaveRole(_ context.Context, cfg *model.RoleUIBuilderConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *cfg
	r.configs[cfg.Role] = &clone
	return nil
}

func (r *UIBuilderRepository) DeleteRole(_ context.Context, role model.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.configs, role)
	return nil
}

type roleModuleKey struct {
	role   model.Role
	module string
}

type RoleModuleConfigRepository struct {
	mu      sync.RWMutex
	configs map[roleModuleKey]*model.RoleModuleConfig
}

func NewRoleModuleConfigRepository() *RoleModuleConfigRepository {
	return &RoleModuleConfigRepository{configs: make(map[roleModuleKey]*model.RoleModuleConfig)}
}

func (r *RoleModuleConfigRepository) Get(_ context.Context, role model.Role, module string) (*model.RoleModuleConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.configs[roleModuleKey{role, module}]
	if !ok {
		return nil, nil
	}
	clone := *cfg
	clone.Config = cfg.Config.Clone()
	return &clone, nil
}

func (r *RoleModuleConfigRepository) List(_ context.Context, role model.Role) ([]*model.RoleModuleConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*model.RoleModuleConfig
	for key, cfg := range r.configs {
		if key.role != role {
			continue
		}
		clone := *cfg
		clone.Config = cfg.Config.Clone()
		out = append(out, &clone)
	}
	return out, nil
}

func (r *RoleModuleConfigRepository) Upsert(_ context.Context, cfg *model.RoleModuleConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	cfg.UpdatedAt = time.Now()
	clone := *cfg
	clone.Config = cfg.Config.Clone()
	r.configs[roleModuleKey{cfg.Role, cfg.Module}] = &clone
	return nil
}

type orgModuleKey struct {
	orgID  uuid.UUID
	module string
}

type OrgModuleConfigRepository struct {
	mu      sync.RWMutex
	configs map[orgModuleKey]*model.OrgModuleConfig
}

func NewOrgModuleConfigRepository() *OrgModuleConfigRepository {
	return &OrgModuleConfigRepository{configs: make(map[orgModuleKey]*model.OrgModuleConfig)}
}

func (r *OrgModuleConfigRepository) Get(_ context.Context, orgID uuid.UUID, module string) (*model.OrgModuleConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.configs[orgModuleKey{orgID, module}]
	if !ok {
		return nil, nil
	}
	clone := *cfg
	clone.Config = cfg.Config.Clone()
	return &clone, nil
}

func (r *OrgModuleConfigRepository) List(_ context.Context, orgID uuid.UUID) ([]*model.OrgModuleConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*model.OrgModuleConfig
	for key, cfg := range r.configs {
		if key.orgID != orgID {
			continue
		}
		clone := *cfg
		clone.Config = cfg.Config.Clone()
		out = append(out, &clone)
	}
	return out, nil
}

func (r *OrgModuleConfigRepository) Upsert(_ context.Context, cfg *model.OrgModuleConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	cfg.UpdatedAt = time.Now()
	clone := *cfg
	clone.Config = cfg.Config.Clone()
	r.configs[orgModuleKey{cfg.OrganizationID, cfg.Module}] = &clone
	return nil
}

type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*model.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]*model.User)}
}

func (r *UserRepository) Add(user *model.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	r.users[user.ID] = &clone
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (r *UserRepository) GetByExternalID(_ context.Context, externalID string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.ExternalID == externalID {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

type OutboxRepository struct {
	mu     sync.RWMutex
	events []*model.OutboxEvent
}

func NewOutboxRepository() *OutboxRepository {
	return &OutboxRepository{}
}

func (r *OutboxRepository) Create(_ context.Context, event *model.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.ID = uuid.New()
	event.Status = string(model.OutboxStatusPending)
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	clone := *event
	r.events = append(r.events, &clone)
	return nil
}

func (r *OutboxRepository) GetPendingEventsWithLock(_ context.Context, limit int) ([]*model.OutboxEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*model.OutboxEvent
	for _, evt := range r.events {
		if evt.Status != string(model.OutboxStatusPending) {
			continue
		}
		clone := *evt
		out = append(out, &clone)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *OutboxRepository) UpdateStatus(_ context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, evt := range r.events {
		if evt.ID == id {
			evt.Status = string(status)
			evt.ErrorMessage = errorMessage
			evt.UpdatedAt = time.Now()
			if status == model.OutboxStatusProcessed {
				now := time.Now()
				evt.ProcessedAt = &now
			}
			return nil
		}
	}
	return nil
}

func (r *OutboxRepository) DeleteProcessedBefore(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []*model.OutboxEvent
	var deleted int64
	for _, evt := range r.events {
		if evt.Status == string(model.OutboxStatusProcessed) && evt.ProcessedAt != nil && evt.ProcessedAt.Before(before) {
			deleted++
			continue
		}
		kept = append(kept, evt)
	}
	r.events = kept
	return deleted, nil
}

// Events returns a snapshot of all events, newest last. Test helper.
func (r *OutboxRepository) Events() []*model.OutboxEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.OutboxEvent, len(r.events))
	copy(out, r.events)
	return out
}

var (
	_ repository.RolePermissionsRepository  = (*RolePermissionsRepository)(nil)
	_ repository.UISettingsRepository       = (*UISettingsRepository)(nil)
	_ repository.SidebarLayoutRepository    = (*SidebarLayoutRepository)(nil)
	_ repository.UIBuilderRepository        = (*UIBuilderRepository)(nil)
	_ repository.RoleModuleConfigRepository = (*RoleModuleConfigRepository)(nil)
	_ repository.OrgModuleConfigRepository  = (*OrgModuleConfigRepository)(nil)
	_ repository.UserRepository             = (*UserRepository)(nil)
	_ repository.OutboxRepository           = (*OutboxRepository)(nil)
)
