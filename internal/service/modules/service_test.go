package modules

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcofed/federation-api/internal/model"
	"github.com/arcofed/federation-api/internal/repository/memory"
	"github.com/arcofed/federation-api/internal/resolver"
	apperrors "github.com/arcofed/federation-api/pkg/errors"
)

type fixture struct {
	svc      *Service
	roleCfgs *memory.RoleModuleConfigRepository
	orgCfgs  *memory.OrgModuleConfigRepository
	outbox   *memory.OutboxRepository
}

func newFixture() *fixture {
	roleCfgs := memory.NewRoleModuleConfigRepository()
	orgCfgs := memory.NewOrgModuleConfigRepository()
	outbox := memory.NewOutboxRepository()
	res := resolver.New(
		memory.NewRolePermissionsRepository(),
		memory.NewUISettingsRepository(),
		memory.NewSidebarLayoutRepository(),
		orgCfgs,
		zerolog.Nop(),
		nil,
	)
	return &fixture{
		svc:      NewService(roleCfgs, orgCfgs, outbox, res, zerolog.Nop(), nil),
		roleCfgs: roleCfgs,
		orgCfgs:  orgCfgs,
		outbox:   outbox,
	}
}

func TestUpdateRoleModuleConfigPersists(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	cfg, err := f.svc.UpdateRoleModuleConfig(ctx, model.RoleAthlete, "scoring", false, nil)
	require.NoError(t, err)
	assert.False(t, cfg.IsEnabled)

	stored, err := f.roleCfgs.Get(ctx, model.RoleAthlete, "scoring")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.False(t, stored.IsEnabled)

	events := f.outbox.Events()
	require.Len(t, events, 1)
	assert.Equal(t, model.EventRoleModuleUpdated, events[0].EventType)
}

func TestUpdateRoleModuleConfigKeepsExistingConfigWhenNil(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.UpdateRoleModuleConfig(ctx, model.RoleAthlete, "scoring", true, model.JSONBlob{"theme": "dark"})
	require.NoError(t, err)

	cfg, err := f.svc.UpdateRoleModuleConfig(ctx, model.RoleAthlete, "scoring", false, nil)
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Config["theme"])
}

func TestFoundationModuleCannotBeDisabled(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.UpdateRoleModuleConfig(ctx, model.RoleAthlete, "dashboard", false, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsPolicyViolation(err))

	// Rejected before any write.
	stored, err := f.roleCfgs.Get(ctx, model.RoleAthlete, "dashboard")
	require.NoError(t, err)
	assert.Nil(t, stored)
	assert.Empty(t, f.outbox.Events())
}

func TestFoundationModuleCanBeReEnabled(t *testing.T) {
	f := newFixture()

	_, err := f.svc.UpdateRoleModuleConfig(context.Background(), model.RoleAthlete, "dashboard", true, nil)
	assert.NoError(t, err)
}

func TestUpdateUnknownModule(t *testing.T) {
	f := newFixture()

	_, err := f.svc.UpdateRoleModuleConfig(context.Background(), model.RoleAthlete, "telepathy", true, nil)
	require.Error(t, err)
	assert.False(t, apperrors.IsPolicyViolation(err))
}

func TestBatchAbortsOnPolicyViolationBeforeAnyWrite(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	err := f.svc.BatchUpdateRoleModuleConfigs(ctx, model.RoleAthlete, []ModuleUpdate{
		{Module: "scoring", IsEnabled: false},
		{Module: "profile", IsEnabled: false},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsPolicyViolation(err))

	stored, err := f.roleCfgs.Get(ctx, model.RoleAthlete, "scoring")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestBatchAppliesAllUpdates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	err := f.svc.BatchUpdateRoleModuleConfigs(ctx, model.RoleAthlete, []ModuleUpdate{
		{Module: "scoring", IsEnabled: false},
		{Module: "training", IsEnabled: true},
	})
	require.NoError(t, err)

	scoring, err := f.roleCfgs.Get(ctx, model.RoleAthlete, "scoring")
	require.NoError(t, err)
	require.NotNil(t, scoring)
	assert.False(t, scoring.IsEnabled)

	training, err := f.roleCfgs.Get(ctx, model.RoleAthlete, "training")
	require.NoError(t, err)
	require.NotNil(t, training)
	assert.True(t, training.IsEnabled)
}

func TestGetRoleModulesDefaultsEverythingEnabled(t *testing.T) {
	f := newFixture()

	mods, err := f.svc.GetRoleModules(context.Background(), model.RoleAthlete, nil)
	require.NoError(t, err)
	require.NotEmpty(t, mods)
	for _, rm := range mods {
		assert.True(t, rm.IsEnabled, rm.Code)
	}
}

func TestGetRoleModulesAppliesStoredConfig(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.UpdateRoleModuleConfig(ctx, model.RoleAthlete, "scoring", false, nil)
	require.NoError(t, err)

	mods, err := f.svc.GetRoleModules(ctx, model.RoleAthlete, nil)
	require.NoError(t, err)

	rm := findModule(t, mods, "scoring")
	assert.False(t, rm.IsEnabled)
	// A disabled parent disables every sub-module.
	assert.Empty(t, rm.EnabledSubModules)
	assert.NotNil(t, rm.EnabledSubModules)
}

func TestGetRoleModulesOrgOverrideWins(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	orgID := uuid.New()

	_, err := f.svc.UpdateRoleModuleConfig(ctx, model.RoleAthlete, "scoring", true, nil)
	require.NoError(t, err)
	_, err = f.svc.UpsertOrgConfig(ctx, orgID, "scoring", false, nil)
	require.NoError(t, err)

	mods, err := f.svc.GetRoleModules(ctx, model.RoleAthlete, &orgID)
	require.NoError(t, err)
	assert.False(t, findModule(t, mods, "scoring").IsEnabled)

	// Without the org scope the role-level config applies.
	mods, err = f.svc.GetRoleModules(ctx, model.RoleAthlete, nil)
	require.NoError(t, err)
	assert.True(t, findModule(t, mods, "scoring").IsEnabled)
}

func TestGetRoleModulesFoundationLockedOn(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// A stray disabled row for a foundation module is ignored on read.
	require.NoError(t, f.roleCfgs.Upsert(ctx, &model.RoleModuleConfig{
		Role: model.RoleAthlete, Module: "dashboard", IsEnabled: false,
	}))

	mods, err := f.svc.GetRoleModules(ctx, model.RoleAthlete, nil)
	require.NoError(t, err)
	assert.True(t, findModule(t, mods, "dashboard").IsEnabled)
}

func TestGetRoleModulesSubModuleGating(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.UpdateRoleModuleConfig(ctx, model.RoleAthlete, "scoring", true, model.JSONBlob{
		"enabled_features": []interface{}{"practice", "history"},
	})
	require.NoError(t, err)

	mods, err := f.svc.GetRoleModules(ctx, model.RoleAthlete, nil)
	require.NoError(t, err)

	rm := findModule(t, mods, "scoring")
	assert.ElementsMatch(t, []string{"practice", "history"}, rm.EnabledSubModules)
}

func TestGetRoleModulesUnknownRole(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetRoleModules(context.Background(), model.Role("wizard"), nil)
	assert.Error(t, err)
}

func TestToggleSubModuleRoundTrip(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	all := []string{"practice", "competition", "history"}

	// First toggle materializes the full set minus the toggled code.
	cfg, err := f.svc.ToggleSubModule(ctx, model.RoleAthlete, "scoring", "competition")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"practice", "history"}, model.GateFromConfig(cfg.Config).EnabledCodes())

	// Toggling back restores full membership.
	cfg, err = f.svc.ToggleSubModule(ctx, model.RoleAthlete, "scoring", "competition")
	require.NoError(t, err)
	assert.ElementsMatch(t, all, model.GateFromConfig(cfg.Config).EnabledCodes())
}

func TestToggleSubModulePreservesOtherConfigKeys(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.UpdateRoleModuleConfig(ctx, model.RoleAthlete, "scoring", true, model.JSONBlob{"theme": "dark"})
	require.NoError(t, err)

	cfg, err := f.svc.ToggleSubModule(ctx, model.RoleAthlete, "scoring", "history")
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Config["theme"])
}

func TestToggleSubModuleUnknownCode(t *testing.T) {
	f := newFixture()

	_, err := f.svc.ToggleSubModule(context.Background(), model.RoleAthlete, "scoring", "quidditch")
	assert.Error(t, err)

	_, err = f.svc.ToggleSubModule(context.Background(), model.RoleAthlete, "profile", "anything")
	assert.Error(t, err)
}

func TestUpsertOrgConfigFoundationLock(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	orgID := uuid.New()

	_, err := f.svc.UpsertOrgConfig(ctx, orgID, "profile", false, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsPolicyViolation(err))

	configs, err := f.svc.ListOrgConfigs(ctx, orgID)
	require.NoError(t, err)
	assert.Empty(t, configs)
}

func findModule(t *testing.T, mods []*model.RoleModule, code string) *model.RoleModule {
	t.Helper()
	for _, rm := range mods {
		if rm.Code == code {
			return rm
		}
	}
	t.Fatalf("module %q not in result", code)
	return nil
}
