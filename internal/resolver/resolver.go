// Package resolver answers the two questions everything else depends
// on: can a role perform an action on a module, and what is a role's
// effective sidebar. It merges static defaults with persisted role and
// organization overrides. It never returns errors: missing or broken
// data degrades to the static defaults so navigation always renders.
package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/arcofed/federation-api/internal/model"
	"github.com/arcofed/federation-api/internal/registry"
	"github.com/arcofed/federation-api/internal/repository"
	"github.com/arcofed/federation-api/pkg/metrics"
)

const (
	cacheTTL      = 5 * time.Minute
	cacheCleanup  = 15 * time.Minute
	permKeyPrefix = "perm:"
)

type Resolver struct {
	perms    repository.RolePermissionsRepository
	settings repository.UISettingsRepository
	sidebars repository.SidebarLayoutRepository
	orgCfgs  repository.OrgModuleConfigRepository
	cache    *gocache.Cache
	logger   zerolog.Logger
	metrics  *metrics.Metrics
}

func New(
	perms repository.RolePermissionsRepository,
	settings repository.UISettingsRepository,
	sidebars repository.SidebarLayoutRepository,
	orgCfgs repository.OrgModuleConfigRepository,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *Resolver {
	return &Resolver{
		perms:    perms,
		settings: settings,
		sidebars: sidebars,
		orgCfgs:  orgCfgs,
		cache:    gocache.New(cacheTTL, cacheCleanup),
		logger:   logger,
		metrics:  m,
	}
}

// HasPermission reports whether a role may perform an action on a
// module. Unknown roles, unknown modules, and modules absent from the
// role's record all resolve to false. No action implies another.
func (r *Resolver) HasPermission(ctx context.Context, role model.Role, module string, action model.Action) bool {
	if r.metrics != nil {
		r.metrics.ResolverQueries.WithLabelValues("has_permission").Inc()
		defer prometheus.NewTimer(r.metrics.ResolverLatency).ObserveDuration()
	}
	if !role.IsValid() || !registry.Exists(module) {
		return false
	}

	record := r.permissionRecord(ctx, role)
	perm, ok := record.Find(module)
	if !ok {
		return false
	}
	return perm.Allows(action)
}

// PermissionRecord returns the role's effective permission record:
// the stored record (with forward-migration patches applied) when one
// exists, the static defaults otherwise.
func (r *Resolver) PermissionRecord(ctx context.Context, role model.Role) *model.RolePermissions {
	if !role.IsValid() {
		return &model.RolePermissions{Role: role}
	}
	return r.permissionRecord(ctx, role)
}

func (r *Resolver) permissionRecord(ctx context.Context, role model.Role) *model.RolePermissions {
	key := permKeyPrefix + string(role)
	if cached, ok := r.cache.Get(key); ok {
		if r.metrics != nil {
			r.metrics.ResolverCacheHits.Inc()
		}
		return cached.(*model.RolePermissions)
	}

	record, err := r.perms.Get(ctx, role)
	if err != nil {
		r.logger.Warn().Err(err).Str("role", string(role)).Msg("permission record fetch failed, using defaults")
		record = nil
	}
	if record == nil {
		record = registry.DefaultPermissions(role)
	} else {
		registry.ApplyPermissionPatches(record)
	}

	r.cache.Set(key, record, gocache.DefaultExpiration)
	return record
}

// EffectiveSidebar computes the final ordered list of visible modules
// for a role, applying overrides in precedence order: organization
// override beats the role-admin layout, which beats the static
// default. Dangling module references are dropped from every layer.
// Unknown roles yield an empty sidebar.
func (r *Resolver) EffectiveSidebar(ctx context.Context, role model.Role, orgID *uuid.UUID) []string {
	if r.metrics != nil {
		r.metrics.ResolverQueries.WithLabelValues("effective_sidebar").Inc()
		defer prometheus.NewTimer(r.metrics.ResolverLatency).ObserveDuration()
	}
	if !role.IsValid() {
		return nil
	}

	key := sidebarKey(role, orgID)
	if cached, ok := r.cache.Get(key); ok {
		if r.metrics != nil {
			r.metrics.ResolverCacheHits.Inc()
		}
		return append([]string(nil), cached.([]string)...)
	}

	base := r.baseSidebar(ctx, role)
	if orgID != nil {
		base = r.applyOrgOverride(ctx, role, *orgID, base)
	}
	result := registry.FilterKnown(base)

	r.cache.Set(key, result, gocache.DefaultExpiration)
	return append([]string(nil), result...)
}

// baseSidebar picks the role-admin layout when one is persisted, the
// role's UI settings otherwise, the static defaults as last resort.
func (r *Resolver) baseSidebar(ctx context.Context, role model.Role) []string {
	layout, err := r.sidebars.Get(ctx, role)
	if err != nil {
		r.logger.Warn().Err(err).Str("role", string(role)).Msg("sidebar layout fetch failed")
	}
	if layout != nil {
		return registry.ApplySidebarPatches(role, layout.ModuleNames())
	}

	settings, err := r.settings.Get(ctx, role)
	if err != nil {
		r.logger.Warn().Err(err).Str("role", string(role)).Msg("ui settings fetch failed, using defaults")
	}
	if settings != nil {
		return registry.ApplySidebarPatches(role, settings.SidebarModules)
	}

	return registry.DefaultUISettings(role).SidebarModules
}

// applyOrgOverride removes modules the organization disabled and
// appends modules it enabled beyond the role's base list, provided the
// role is entitled to see them.
func (r *Resolver) applyOrgOverride(ctx context.Context, role model.Role, orgID uuid.UUID, base []string) []string {
	overrides, err := r.orgCfgs.List(ctx, orgID)
	if err != nil {
		r.logger.Warn().Err(err).Str("org_id", orgID.String()).Msg("org module config fetch failed, ignoring overrides")
		return base
	}
	if len(overrides) == 0 {
		return base
	}

	disabled := make(map[string]struct{})
	var additions []string
	present := make(map[string]struct{}, len(base))
	for _, m := range base {
		present[m] = struct{}{}
	}

	for _, o := range overrides {
		if !o.IsEnabled {
			disabled[o.Module] = struct{}{}
			continue
		}
		if _, ok := present[o.Module]; ok {
			continue
		}
		mod, ok := registry.Lookup(o.Module)
		if ok && mod.VisibleTo(role) {
			additions = append(additions, o.Module)
		}
	}

	out := make([]string, 0, len(base)+len(additions))
	for _, m := range base {
		if _, ok := disabled[m]; ok {
			continue
		}
		out = append(out, m)
	}
	return append(out, additions...)
}

// Invalidate discards cached results after a mutation. Sidebar entries
// are keyed per organization, so the whole cache is flushed rather
// than tracking every key.
func (r *Resolver) Invalidate() {
	r.cache.Flush()
}

func sidebarKey(role model.Role, orgID *uuid.UUID) string {
	if orgID == nil {
		return fmt.Sprintf("sidebar:%s", role)
	}
	return fmt.Sprintf("sidebar:%s:%s", role, orgID)
}
