package permissions

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
	svc      *Service
	perms    *memory.RolePermissionsRepository
	settings *memory.UISettingsRepository
	outbox   *memory.OutboxRepository
}

func newFixture() *fixture {
	perms := memory.NewRolePermissionsRepository()
	settings := memory.NewUISettingsRepository()
	outbox := memory.NewOutboxRepository()
	res := resolver.New(
		perms,
		settings,
		memory.NewSidebarLayoutRepository(),
		memory.NewOrgModuleConfigRepository(),
		zerolog.Nop(),
		nil,
	)
	return &fixture{
		svc:      NewService(perms, settings, outbox, res, zerolog.Nop(), nil),
		perms:    perms,
		settings: settings,
		outbox:   outbox,
	}
}

func TestMatrixCoversAllRoles(t *testing.T) {
	f := newFixture()

	matrix := f.svc.Matrix(context.Background())
	require.Len(t, matrix, len(model.AllRoles))
	for _, role := range model.AllRoles {
		record, ok := matrix[role]
		require.True(t, ok, role)
		assert.Equal(t, role, record.Role)
	}
}

func TestUpdatePermissionTouchesOnlyThatRole(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	record, err := f.svc.UpdatePermission(ctx, model.RoleAthlete, "scoring", model.ActionDelete, true)
	require.NoError(t, err)

	perm, ok := record.Find("scoring")
	require.True(t, ok)
	assert.True(t, perm.CanDelete)

	// Coach keeps its default scoring permissions.
	coach, err := f.svc.RoleMatrix(ctx, model.RoleCoach)
	require.NoError(t, err)
	defaultPerm, _ := registry.DefaultPermissions(model.RoleCoach).Find("scoring")
	coachPerm, _ := coach.Find("scoring")
	assert.Equal(t, defaultPerm, coachPerm)

	events := f.outbox.Events()
	require.Len(t, events, 1)
	assert.Equal(t, model.EventPermissionUpdated, events[0].EventType)
}

func TestUpdatePermissionPersistsAcrossReads(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.UpdatePermission(ctx, model.RoleCoach, "finance", model.ActionView, true)
	require.NoError(t, err)

	record, err := f.svc.RoleMatrix(ctx, model.RoleCoach)
	require.NoError(t, err)
	perm, ok := record.Find("finance")
	require.True(t, ok)
	assert.True(t, perm.CanView)
}

func TestUpdatePermissionUnknownModule(t *testing.T) {
	f := newFixture()

	_, err := f.svc.UpdatePermission(context.Background(), model.RoleAthlete, "telepathy", model.ActionView, true)
	assert.Error(t, err)
}

func TestResetRoleRestoresDefaults(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.UpdatePermission(ctx, model.RoleAthlete, "scoring", model.ActionDelete, true)
	require.NoError(t, err)

	record, err := f.svc.ResetRole(ctx, model.RoleAthlete)
	require.NoError(t, err)
	assert.Equal(t, registry.DefaultPermissions(model.RoleAthlete), record)

	// The reset is visible on subsequent reads too.
	record, err = f.svc.RoleMatrix(ctx, model.RoleAthlete)
	require.NoError(t, err)
	perm, _ := record.Find("scoring")
	assert.False(t, perm.CanDelete)
}

func TestResetRoleIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.svc.ResetRole(ctx, model.RoleJudge)
	require.NoError(t, err)
	second, err := f.svc.ResetRole(ctx, model.RoleJudge)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestUISettingsFallBackToDefaults(t *testing.T) {
	f := newFixture()

	settings, err := f.svc.UISettings(context.Background(), model.RoleClub)
	require.NoError(t, err)
	assert.Equal(t, registry.DefaultUISettings(model.RoleClub), settings)
}

func TestSaveUISettingsDropsUnknownModules(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	saved, err := f.svc.SaveUISettings(ctx, &model.RoleUISettings{
		Role:           model.RoleClub,
		PrimaryColor:   "#102030",
		SidebarModules: []string{"dashboard", "telepathy", "events"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"dashboard", "events"}, saved.SidebarModules)

	stored, err := f.svc.UISettings(ctx, model.RoleClub)
	require.NoError(t, err)
	assert.Equal(t, "#102030", stored.PrimaryColor)
	assert.Equal(t, []string{"dashboard", "events"}, stored.SidebarModules)
}

func TestResetUISettings(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.SaveUISettings(ctx, &model.RoleUISettings{Role: model.RoleClub, PrimaryColor: "#ff0000"})
	require.NoError(t, err)

	settings, err := f.svc.ResetUISettings(ctx, model.RoleClub)
	require.NoError(t, err)
	assert.Equal(t, registry.DefaultUISettings(model.RoleClub), settings)

	stored, err := f.svc.UISettings(ctx, model.RoleClub)
	require.NoError(t, err)
	assert.Equal(t, registry.DefaultUISettings(model.RoleClub), stored)
}

func TestUnknownRoleRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.RoleMatrix(ctx, model.Role("wizard"))
	assert.Error(t, err)
	_, err = f.svc.UpdatePermission(ctx, model.Role("wizard"), "scoring", model.ActionView, true)
	assert.Error(t, err)
	_, err = f.svc.ResetRole(ctx, model.Role("wizard"))
	assert.Error(t, err)
	_, err = f.svc.UISettings(ctx, model.Role("wizard"))
	assert.Error(t, err)
}
