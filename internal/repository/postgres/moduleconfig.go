package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/arcofed/federation-api/internal/model"
)

func (r *roleModuleConfigRepository) Get(ctx context.Context, role model.Role, module string) (*model.RoleModuleConfig, error) {
	query := `
		SELECT id, role, module, is_enabled, config, created_at, updated_at
		FROM role_module_configs
		WHERE role = $1 AND module = $2
	`
	var cfg model.RoleModuleConfig
	err := r.db.GetContext(ctx, &cfg, query, role, module)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get role module config: %w", err)
	}
	return &cfg, nil
}

func (r *roleModuleConfigRepository) List(ctx context.Context, role model.Role) ([]*model.RoleModuleConfig, error) {
	query := `
		SELECT id, role, module, is_enabled, config, created_at, updated_at
		FROM role_module_configs
		WHERE role = $1
		ORDER BY module ASC
	`
	var configs []*model.RoleModuleConfig
	err := r.db.SelectContext(ctx, &configs, query, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list role module configs: %w", err)
	}
	return configs, nil
}

func (r *roleModuleConfigRepository) Upsert(ctx context.Context, cfg *model.RoleModuleConfig) error {
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	cfg.UpdatedAt = time.Now()
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = cfg.UpdatedAt
	}

	query := `
		INSERT INTO role_module_configs (id, role, module, is_enabled, config, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (role, module) DO UPDATE
		SET is_enabled = EXCLUDED.is_enabled,
		    config = EXCLUDED.config,
		    updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		cfg.ID,
		cfg.Role,
		cfg.Module,
		cfg.IsEnabled,
		cfg.Config,
		cfg.CreatedAt,
		cfg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert role module config: %w", err)
	}
	return nil
}

func (r *orgModuleConfigRepository) Get(ctx context.Context, orgID uuid.UUID, module string) (*model.OrgModuleConfig, error) {
	query := `
		SELECT id, organization_id, module, is_enabled, config, created_at, updated_at
		FROM org_module_configs
		WHERE organization_id = $1 AND module = $2
	`
	var cfg model.OrgModuleConfig
	err := r.db.GetContext(ctx, &cfg, query, orgID, module)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get org module config: %w", err)
	}
	return &cfg, nil
}

func (r *orgModuleConfigRepository) List(ctx context.Context, orgID uuid.UUID) ([]*model.OrgModuleConfig, error) {
	query := `
		SELECT id, organization_id, module, is_enabled, config, created_at, updated_at
		FROM org_module_configs
		WHERE organization_id = $1
		ORDER BY module ASC
	`
	var configs []*model.OrgModuleConfig
	err := r.db.SelectContext(ctx, &configs, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list org module configs: %w", err)
	}
	return configs, nil
}

func (r *orgModuleConfigRepository) Upsert(ctx context.Context, cfg *model.OrgModuleConfig) error {
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	cfg.UpdatedAt = time.Now()
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = cfg.UpdatedAt
	}

	query := `
		INSERT INTO org_module_configs (id, organization_id, module, is_enabled, config, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (organization_id, module) DO UPDATE
		SET is_enabled = EXCLUDED.is_enabled,
		    config = EXCLUDED.config,
		    updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		cfg.ID,
		cfg.OrganizationID,
		cfg.Module,
		cfg.IsEnabled,
		cfg.Config,
		cfg.CreatedAt,
		cfg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert org module config: %w", err)
	}
	return nil
}
