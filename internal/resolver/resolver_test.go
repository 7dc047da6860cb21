package resolver

import (
	"context"
	"testing"

	"github.com/google/uuid"
	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcofed/federation-api/internal/model"
	"github.com/arcofed/federation-api/internal/registry"
	"github.com/arcofed/federation-api/internal/repository/memory"
	"github.com/arcofed/federation-api/pkg/metrics"
)

type fixture struct {
	perms    *memory.RolePermissionsRepository
	settings *memory.UISettingsRepository
	sidebars *memory.SidebarLayoutRepository
	orgCfgs  *memory.OrgModuleConfigRepository
	resolver *Resolver
}

func newFixture() *fixture {
	perms := memory.NewRolePermissionsRepository()
	settings := memory.NewUISettingsRepository()
	sidebars := memory.NewSidebarLayoutRepository()
	orgCfgs := memory.NewOrgModuleConfigRepository()
	return &fixture{
		perms:    perms,
		settings: settings,
		sidebars: sidebars,
		orgCfgs:  orgCfgs,
		resolver: New(perms, settings, sidebars, orgCfgs, zerolog.Nop(), nil),
	}
}

func TestHasPermissionFallsBackToDefaults(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// Nothing persisted: static defaults apply.
	assert.True(t, f.resolver.HasPermission(ctx, model.RoleAthlete, "scoring", model.ActionCreate))
	assert.False(t, f.resolver.HasPermission(ctx, model.RoleAthlete, "scoring", model.ActionDelete))
}

func TestHasPermissionCoachFinanceDenied(t *testing.T) {
	f := newFixture()
	assert.False(t, f.resolver.HasPermission(context.Background(), model.RoleCoach, "finance", model.ActionView))
}

func TestHasPermissionUnknownInputs(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	assert.False(t, f.resolver.HasPermission(ctx, model.Role("ghost"), "dashboard", model.ActionView))
	assert.False(t, f.resolver.HasPermission(ctx, model.RoleSuperAdmin, "no_such_module", model.ActionView))
}

func TestHasPermissionStoredRecordWins(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	stored := registry.DefaultPermissions(model.RoleCoach)
	stored.Upsert(model.ModulePermission{Module: "finance", CanView: true})
	require.NoError(t, f.perms.Save(ctx, stored))

	assert.True(t, f.resolver.HasPermission(ctx, model.RoleCoach, "finance", model.ActionView))
}

func TestPermissionRecordAppliesPatches(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// A stored athlete record predating the training module.
	stored := &model.RolePermissions{
		Role: model.RoleAthlete,
		Permissions: []model.ModulePermission{
			{Module: "dashboard", CanView: true},
		},
	}
	require.NoError(t, f.perms.Save(ctx, stored))

	record := f.resolver.PermissionRecord(ctx, model.RoleAthlete)
	p, ok := record.Find("training")
	require.True(t, ok)
	assert.True(t, p.CanView)
}

func TestEffectiveSidebarDefaults(t *testing.T) {
	f := newFixture()

	got := f.resolver.EffectiveSidebar(context.Background(), model.RoleAthlete, nil)
	assert.Equal(t, registry.DefaultUISettings(model.RoleAthlete).SidebarModules, got)
}

func TestEffectiveSidebarUnknownRoleEmpty(t *testing.T) {
	f := newFixture()
	assert.Empty(t, f.resolver.EffectiveSidebar(context.Background(), model.Role("ghost"), nil))
}

func TestEffectiveSidebarDropsDanglingReferences(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.settings.Save(ctx, &model.RoleUISettings{
		Role:           model.RoleJudge,
		SidebarModules: []string{"dashboard", "retired_module", "scoring"},
	}))

	got := f.resolver.EffectiveSidebar(ctx, model.RoleJudge, nil)
	assert.Equal(t, []string{"dashboard", "scoring"}, got)
}

func TestEffectiveSidebarLayoutBeatsSettings(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.settings.Save(ctx, &model.RoleUISettings{
		Role:           model.RoleClub,
		SidebarModules: []string{"dashboard"},
	}))
	require.NoError(t, f.sidebars.Save(ctx, &model.SidebarLayout{
		Role: model.RoleClub,
		Groups: []model.SidebarGroup{
			{ID: "g1", Modules: []string{"clubs", "athletes"}},
			{ID: "g2", Modules: []string{"events"}},
		},
	}))

	got := f.resolver.EffectiveSidebar(ctx, model.RoleClub, nil)
	assert.Equal(t, []string{"clubs", "athletes", "events"}, got)
}

func TestEffectiveSidebarOrgOverrideWins(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	orgID := uuid.New()

	// Role layer says scoring is in; the organization disables it and
	// enables jerseys instead.
	require.NoError(t, f.settings.Save(ctx, &model.RoleUISettings{
		Role:           model.RoleAthlete,
		SidebarModules: []string{"dashboard", "scoring", "events"},
	}))
	require.NoError(t, f.orgCfgs.Upsert(ctx, &model.OrgModuleConfig{
		OrganizationID: orgID,
		Module:         "scoring",
		IsEnabled:      false,
	}))
	require.NoError(t, f.orgCfgs.Upsert(ctx, &model.OrgModuleConfig{
		OrganizationID: orgID,
		Module:         "jerseys",
		IsEnabled:      true,
	}))

	// The athlete training patch appends to the stored list before the
	// organization layer applies.
	got := f.resolver.EffectiveSidebar(ctx, model.RoleAthlete, &orgID)
	assert.Equal(t, []string{"dashboard", "events", "training", "jerseys"}, got)

	// Without the org scope the role layer stands.
	got = f.resolver.EffectiveSidebar(ctx, model.RoleAthlete, nil)
	assert.Contains(t, got, "scoring")
}

func TestEffectiveSidebarOrgCannotAddInvisibleModule(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	orgID := uuid.New()

	// finance is not visible to athletes, so enabling it org-wide must
	// not leak it into their sidebar.
	require.NoError(t, f.orgCfgs.Upsert(ctx, &model.OrgModuleConfig{
		OrganizationID: orgID,
		Module:         "finance",
		IsEnabled:      true,
	}))

	got := f.resolver.EffectiveSidebar(ctx, model.RoleAthlete, &orgID)
	assert.NotContains(t, got, "finance")
}

func TestInvalidateDropsCachedRecords(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	assert.False(t, f.resolver.HasPermission(ctx, model.RoleCoach, "finance", model.ActionView))

	stored := registry.DefaultPermissions(model.RoleCoach)
	stored.Upsert(model.ModulePermission{Module: "finance", CanView: true})
	require.NoError(t, f.perms.Save(ctx, stored))

	// Still cached.
	assert.False(t, f.resolver.HasPermission(ctx, model.RoleCoach, "finance", model.ActionView))

	f.resolver.Invalidate()
	assert.True(t, f.resolver.HasPermission(ctx, model.RoleCoach, "finance", model.ActionView))
}

func TestResolverQueriesAreTimed(t *testing.T) {
	// A dedicated namespace keeps the default registry free of
	// duplicate registrations across test packages.
	m := metrics.NewMetrics("federation_resolver_test", "api")
	f := newFixture()
	res := New(f.perms, f.settings, f.sidebars, f.orgCfgs, zerolog.Nop(), m)
	ctx := context.Background()

	res.HasPermission(ctx, model.RoleAthlete, "scoring", model.ActionView)
	res.EffectiveSidebar(ctx, model.RoleAthlete, nil)

	var dm dto.Metric
	require.NoError(t, m.ResolverLatency.Write(&dm))
	assert.Equal(t, uint64(2), dm.GetHistogram().GetSampleCount())
}
