package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arcofed/federation-api/internal/model"
)

func (r *uiBuilderRepository) GetRole(ctx context.Context, role model.Role) (*model.RoleUIBuilderConfig, error) {
	query := `
		SELECT document
		FROM ui_builder_configs
		WHERE role = $1
	`
	var raw []byte
	err := r.db.GetContext(ctx, &raw, query, role)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ui builder config: %w", err)
	}

	var cfg model.RoleUIBuilderConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, nil
	}
	cfg.Role = role
	return &cfg, nil
}

func (r *uiBuilderRepository) SaveRole(ctx context.Context, cfg *model.RoleUIBuilderConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal ui builder config: %w", err)
	}

	query := `
		INSERT INTO ui_builder_configs (role, document, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (role) DO UPDATE
		SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at
	`
	_, err = r.db.ExecContext(ctx, query, cfg.Role, raw, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save ui builder config: %w", err)
	}
	return nil
}

func (r *uiBuilderRepository) DeleteRole(ctx context.Context, role model.Role) error {
	query := `
		DELETE FROM ui_builder_configs
		WHERE role = $1
	`
	if _, err := r.db.ExecContext(ctx, query, role); err != nil {
		return fmt.Errorf("failed to delete ui builder config: %w", err)
	}
	return nil
}
