package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arcofed/federation-api/internal/model"
)

func (r *rolePermissionsRepository) Get(ctx context.Context, role model.Role) (*model.RolePermissions, error) {
	query := `
		SELECT permissions
		FROM role_permissions
		WHERE role = $1
	`
	var raw []byte
	err := r.db.GetContext(ctx, &raw, query, role)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get role permissions: %w", err)
	}

	var perms []model.ModulePermission
	if err := json.Unmarshal(raw, &perms); err != nil {
		// Malformed stored data degrades to "no record", the caller
		// falls back to static defaults.
		return nil, nil
	}
	return &model.RolePermissions{Role: role, Permissions: perms}, nil
}

func (r *rolePermissionsRepository) Save(ctx context.Context, record *model.RolePermissions) error {
	raw, err := json.Marshal(record.Permissions)
	if err != nil {
		return fmt.Errorf("failed to marshal permissions: %w", err)
	}

	query := `
		INSERT INTO role_permissions (role, permissions, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (role) DO UPDATE
		SET permissions = EXCLUDED.permissions, updated_at = EXCLUDED.updated_at
	`
	_, err = r.db.ExecContext(ctx, query, record.Role, raw, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save role permissions: %w", err)
	}
	return nil
}

func (r *rolePermissionsRepository) Delete(ctx context.Context, role model.Role) error {
	query := `
		DELETE FROM role_permissions
		WHERE role = $1
	`
	if _, err := r.db.ExecContext(ctx, query, role); err != nil {
		return fmt.Errorf("failed to delete role permissions: %w", err)
	}
	return nil
}

func (r *uiSettingsRepository) Get(ctx context.Context, role model.Role) (*model.RoleUISettings, error) {
	query := `
		SELECT settings
		FROM role_ui_settings
		WHERE role = $1
	`
	var raw []byte
	err := r.db.GetContext(ctx, &raw, query, role)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ui settings: %w", err)
	}

	var settings model.RoleUISettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, nil
	}
	settings.Role = role
	return &settings, nil
}

func (r *uiSettingsRepository) Save(ctx context.Context, settings *model.RoleUISettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal ui settings: %w", err)
	}

	query := `
		INSERT INTO role_ui_settings (role, settings, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (role) DO UPDATE
		SET settings = EXCLUDED.settings, updated_at = EXCLUDED.updated_at
	`
	_, err = r.db.ExecContext(ctx, query, settings.Role, raw, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save ui settings: %w", err)
	}
	return nil
}

func (r *uiSettingsRepository) Delete(ctx context.Context, role model.Role) error {
	query := `
		DELETE FROM role_ui_settings
		WHERE role = $1
	`
	if _, err := r.db.ExecContext(ctx, query, role); err != nil {
		return fmt.Errorf("failed to delete ui settings: %w", err)
	}
	return nil
}
