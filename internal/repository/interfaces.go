package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/arcofed/federation-api/internal/model"
)

// All repository interfaces in one file.
//
// Absence is not an error anywhere in this subsystem: Get methods
// return (nil, nil) when no record exists and callers fall back to the
// static defaults.
type (
	// RolePermissionsRepository stores per-role permission records.
	RolePermissionsRepository interface {
		Get(ctx context.Context, role model.Role) (*model.RolePermissions, error)
		Save(ctx context.Context, record *model.RolePermissions) error
		Delete(ctx context.Context, role model.Role) error
	}

	// UISettingsRepository stores per-role UI settings overrides.
	UISettingsRepository interface {
		Get(ctx context.Context, role model.Role) (*model.RoleUISettings, error)
		Save(ctx context.Context, settings *model.RoleUISettings) error
		Delete(ctx context.Context, role model.Role) error
	}

	// SidebarLayoutRepository stores per-role sidebar group layouts.
	SidebarLayoutRepository interface {
		Get(ctx context.Context, role model.Role) (*model.SidebarLayout, error)
		Save(ctx context.Context, layout *model.SidebarLayout) error
		Delete(ctx context.Context, role model.Role) error
	}

	// UIBuilderRepository stores per-role UI builder documents.
	UIBuilderRepository interface {
		GetRole(ctx context.Context, role model.Role) (*model.RoleUIBuilderConfig, error)
		SaveRole(ctx context.Context, cfg *model.RoleUIBuilderConfig) error
		DeleteRole(ctx context.Context, role model.Role) error
	}

	// RoleModuleConfigRepository stores (role, module) enable/config pairs.
	RoleModuleConfigRepository interface {
		Get(ctx context.Context, role model.Role, module string) (*model.RoleModuleConfig, error)
		List(ctx context.Context, role model.Role) ([]*model.RoleModuleConfig, error)
		Upsert(ctx context.Context, cfg *model.RoleModuleConfig) error
	}

	// OrgModuleConfigRepository stores (organization, module) pairs.
	OrgModuleConfigRepository interface {
		Get(ctx context.Context, orgID uuid.UUID, module string) (*model.OrgModuleConfig, error)
		List(ctx context.Context, orgID uuid.UUID) ([]*model.OrgModuleConfig, error)
		Upsert(ctx context.Context, cfg *model.OrgModuleConfig) error
	}

	// UserRepository resolves identities for auth and simulation.
	UserRepository interface {
		GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByExternalID(ctx context.Context, externalID string) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
	}

	// OutboxRepository stores config-change events pending publication.
	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEventsWithLock(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
