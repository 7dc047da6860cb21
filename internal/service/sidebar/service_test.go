package sidebar

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcofed/federation-api/internal/model"
	"github.com/arcofed/federation-api/internal/registry"
	"github.com/arcofed/federation-api/internal/repository/memory"
	"github.com/arcofed/federation-api/internal/resolver"
)

type fixture struct {
	svc     *Service
	layouts *memory.SidebarLayoutRepository
	outbox  *memory.OutboxRepository
}

func newFixture() *fixture {
	layouts := memory.NewSidebarLayoutRepository()
	outbox := memory.NewOutboxRepository()
	res := resolver.New(
		memory.NewRolePermissionsRepository(),
		memory.NewUISettingsRepository(),
		layouts,
		memory.NewOrgModuleConfigRepository(),
		zerolog.Nop(),
		nil,
	)
	return &fixture{
		svc:     NewService(layouts, outbox, res, zerolog.Nop(), nil),
		layouts: layouts,
		outbox:  outbox,
	}
}

func TestGetFallsBackToDefaults(t *testing.T) {
	f := newFixture()

	layout, err := f.svc.Get(context.Background(), model.RoleClub)
	require.NoError(t, err)
	assert.Equal(t, registry.DefaultSidebarGroups(model.RoleClub), layout.Groups)
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	saved, err := f.svc.Save(ctx, model.RoleClub, []model.SidebarGroup{
		{ID: "main", Label: "Main", Modules: []string{"dashboard", "events"}},
		{ID: "shop", Label: "Shop", Modules: []string{"jerseys"}},
	})
	require.NoError(t, err)
	require.Len(t, saved.Groups, 2)

	layout, err := f.svc.Get(ctx, model.RoleClub)
	require.NoError(t, err)
	require.Len(t, layout.Groups, 2)
	assert.Equal(t, []string{"dashboard", "events"}, layout.Groups[0].Modules)
	assert.Equal(t, []string{"jerseys"}, layout.Groups[1].Modules)

	events := f.outbox.Events()
	require.Len(t, events, 1)
	assert.Equal(t, model.EventSidebarSaved, events[0].EventType)
}

func TestSaveDropsUnknownModules(t *testing.T) {
	f := newFixture()

	saved, err := f.svc.Save(context.Background(), model.RoleClub, []model.SidebarGroup{
		{ID: "main", Label: "Main", Modules: []string{"dashboard", "telepathy"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"dashboard"}, saved.Groups[0].Modules)
}

func TestSaveRequiresGroupID(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Save(context.Background(), model.RoleClub, []model.SidebarGroup{
		{Label: "Main", Modules: []string{"dashboard"}},
	})
	assert.Error(t, err)
}

func TestGetAppendsPatchedModulesToStoredLayout(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// A layout saved before the athlete training rollout.
	_, err := f.svc.Save(ctx, model.RoleAthlete, []model.SidebarGroup{
		{ID: "main", Label: "Main", Modules: []string{"dashboard"}},
		{ID: "sport", Label: "Sport", Modules: []string{"scoring"}},
	})
	require.NoError(t, err)

	layout, err := f.svc.Get(ctx, model.RoleAthlete)
	require.NoError(t, err)
	require.Len(t, layout.Groups, 2)
	assert.Equal(t, []string{"dashboard"}, layout.Groups[0].Modules)
	assert.Equal(t, []string{"scoring", "training"}, layout.Groups[1].Modules)
}

func TestGetDoesNotDuplicatePatchedModules(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Save(ctx, model.RoleAthlete, []model.SidebarGroup{
		{ID: "main", Label: "Main", Modules: []string{"dashboard", "training"}},
	})
	require.NoError(t, err)

	layout, err := f.svc.Get(ctx, model.RoleAthlete)
	require.NoError(t, err)
	assert.Equal(t, []string{"dashboard", "training"}, layout.Groups[0].Modules)
}

func TestResetRestoresDefaults(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Save(ctx, model.RoleClub, []model.SidebarGroup{
		{ID: "main", Label: "Main", Modules: []string{"dashboard"}},
	})
	require.NoError(t, err)

	layout, err := f.svc.Reset(ctx, model.RoleClub)
	require.NoError(t, err)
	assert.Equal(t, registry.DefaultSidebarGroups(model.RoleClub), layout.Groups)

	stored, err := f.svc.Get(ctx, model.RoleClub)
	require.NoError(t, err)
	assert.Equal(t, registry.DefaultSidebarGroups(model.RoleClub), stored.Groups)

	events := f.outbox.Events()
	require.Len(t, events, 2)
	assert.Equal(t, model.EventSidebarReset, events[1].EventType)
}

func TestUnknownRoleRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Get(ctx, model.Role("wizard"))
	assert.Error(t, err)
	_, err = f.svc.Save(ctx, model.Role("wizard"), nil)
	assert.Error(t, err)
	_, err = f.svc.Reset(ctx, model.Role("wizard"))
	assert.Error(t, err)
}
