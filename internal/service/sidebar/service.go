// Package sidebar manages per-role sidebar group layouts.
package sidebar

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/arcofed/federation-api/internal/model"
	"github.com/arcofed/federation-api/internal/registry"
	"github.com/arcofed/federation-api/internal/repository"
	"github.com/arcofed/federation-api/internal/resolver"
	apperrors "github.com/arcofed/federation-api/pkg/errors"
	"github.com/arcofed/federation-api/pkg/metrics"
)

type Service struct {
	layouts  repository.SidebarLayoutRepository
	outbox   repository.OutboxRepository
	resolver *resolver.Resolver
	logger   zerolog.Logger
	metrics  *metrics.Metrics
}

func NewService(
	layouts repository.SidebarLayoutRepository,
	outbox repository.OutboxRepository,
	res *resolver.Resolver,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{layouts: layouts, outbox: outbox, resolver: res, logger: logger, metrics: m}
}

// Get returns the role's sidebar layout: the persisted one when it
// exists, otherwise the built-in default grouping. Patched modules are
// appended so older saved layouts pick up later additions.
func (s *Service) Get(ctx context.Context, role model.Role) (*model.SidebarLayout, error) {
	if !role.IsValid() {
		return nil, apperrors.BadRequest("unknown role", nil)
	}

	stored, err := s.layouts.Get(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to load sidebar layout: %w", err)
	}
	if stored == nil {
		return &model.SidebarLayout{Role: role, Groups: registry.DefaultSidebarGroups(role)}, nil
	}

	layout := stored.Clone()
	layout.Groups = appendPatched(role, layout.Groups)
	return layout, nil
}

// Save overwrites the role's layout wholesale. Module references that
// are neither registered nor present in the defaults are dropped.
func (s *Service) Save(ctx context.Context, role model.Role, groups []model.SidebarGroup) (*model.SidebarLayout, error) {
	if !role.IsValid() {
		return nil, apperrors.BadRequest("unknown role", nil)
	}

	cleaned := make([]model.SidebarGroup, 0, len(groups))
	for _, g := range groups {
		if g.ID == "" {
			return nil, apperrors.BadRequest("sidebar group is missing an id", nil)
		}
		g = g.Clone()
		g.Modules = registry.FilterKnown(g.Modules)
		cleaned = append(cleaned, g)
	}

	layout := &model.SidebarLayout{Role: role, Groups: cleaned, UpdatedAt: time.Now().UTC()}
	if err := s.layouts.Save(ctx, layout); err != nil {
		return nil, fmt.Errorf("failed to save sidebar layout: %w", err)
	}

	if s.metrics != nil {
		s.metrics.ConfigSaves.WithLabelValues("sidebar").Inc()
	}
	if s.resolver != nil {
		s.resolver.Invalidate()
	}
	s.emit(ctx, model.EventSidebarSaved, layout)
	return layout, nil
}

// Reset deletes the persisted layout and returns the defaults. It is
// a no-op when nothing was stored.
func (s *Service) Reset(ctx context.Context, role model.Role) (*model.SidebarLayout, error) {
	if !role.IsValid() {
		return nil, apperrors.BadRequest("unknown role", nil)
	}

	if err := s.layouts.Delete(ctx, role); err != nil {
		return nil, fmt.Errorf("failed to reset sidebar layout: %w", err)
	}

	if s.metrics != nil {
		s.metrics.ConfigResets.WithLabelValues("sidebar").Inc()
	}
	if s.resolver != nil {
		s.resolver.Invalidate()
	}
	s.emit(ctx, model.EventSidebarReset, map[string]string{"role": string(role)})
	return &model.SidebarLayout{Role: role, Groups: registry.DefaultSidebarGroups(role)}, nil
}

// appendPatched adds patch-introduced modules missing from a stored
// layout to its last group.
func appendPatched(role model.Role, groups []model.SidebarGroup) []model.SidebarGroup {
	if len(groups) == 0 {
		return groups
	}
	var flat []string
	for _, g := range groups {
		flat = append(flat, g.Modules...)
	}
	patched := registry.ApplySidebarPatches(role, flat)
	if len(patched) == len(flat) {
		return groups
	}
	last := len(groups) - 1
	groups[last].Modules = append(groups[last].Modules, patched[len(flat):]...)
	return groups
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
