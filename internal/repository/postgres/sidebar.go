package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arcofed/federation-api/internal/model"
)

func (r *sidebarLayoutRepository) Get(ctx context.Context, role model.Role) (*model.SidebarLayout, error) {
	query := `
		SELECT groups, updated_at
		FROM sidebar_layouts
		WHERE role = $1
	`
	var row struct {
		Groups    []byte    `db:"groups"`
		UpdatedAt time.Time `db:"updated_at"`
	}
	err := r.db.GetContext(ctx, &row, query, role)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sidebar layout: %w", err)
	}

	var groups []model.SidebarGroup
	if err := json.Unmarshal(row.Groups, &groups); err != nil {
		return nil, nil
	}
	return &model.SidebarLayout{Role: role, Groups: groups, UpdatedAt: row.UpdatedAt}, nil
}

func (r *sidebarLayoutRepository) Save(ctx context.Context, layout *model.SidebarLayout) error {
	raw, err := json.Marshal(layout.Groups)
	if err != nil {
		return fmt.Errorf("failed to marshal sidebar groups: %w", err)
	}

	query := `
		INSERT INTO sidebar_layouts (role, groups, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (role) DO UPDATE
		SET groups = EXCLUDED.groups, updated_at = EXCLUDED.updated_at
	`
	layout.UpdatedAt = time.Now()
	_, err = r.db.ExecContext(ctx, query, layout.Role, raw, layout.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save sidebar layout: %w", err)
	}
	return nil
}

func (r *sidebarLayoutRepository) Delete(ctx context.Context, role model.Role) error {
	query := `
		DELETE FROM sidebar_layouts
		WHERE role = $1
	`
	if _, err := r.db.ExecContext(ctx, query, role); err != nil {
		return fmt.Errorf("failed to delete sidebar layout: %w", err)
	}
	return nil
}
