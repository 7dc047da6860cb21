package uibuilder

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcofed/federation-api/internal/model"
	"github.com/arcofed/federation-api/internal/registry"
	"github.com/arcofed/federation-api/internal/repository/memory"
)

func newStore() (*Store, *memory.OutboxRepository) {
	outbox := memory.NewOutboxRepository()
	return NewStore(memory.NewUIBuilderRepository(), outbox, zerolog.Nop(), nil), outbox
}

func TestGetFallsBackToDefaults(t *testing.T) {
	store, _ := newStore()

	cfg, err := store.Get(context.Background(), model.RoleAthlete)
	require.NoError(t, err)

	assert.Equal(t, model.RoleAthlete, cfg.Role)
	assert.Equal(t, registry.DefaultSidebarGroups(model.RoleAthlete), cfg.Groups)
	assert.NotEmpty(t, cfg.ModuleEntries)
}

func TestSaveDropsDanglingModuleReferences(t *testing.T) {
	store, _ := newStore()
	ctx := context.Background()

	cfg := DefaultConfig(model.RoleClub)
	cfg.Groups[0].Modules = append(cfg.Groups[0].Modules, "retired_module")
	require.NoError(t, store.Save(ctx, cfg))

	stored, err := store.Get(ctx, model.RoleClub)
	require.NoError(t, err)
	for _, g := range stored.Groups {
		assert.NotContains(t, g.Modules, "retired_module")
	}
}

func TestSaveKeepsCustomModuleReferences(t *testing.T) {
	store, _ := newStore()
	ctx := context.Background()

	cfg := DefaultConfig(model.RoleClub)
	cfg.CustomModules = []model.CustomModule{{ID: "custom-abc", Name: "rankings", Layout: model.LayoutTable}}
	cfg.Groups[0].Modules = append(cfg.Groups[0].Modules, "custom-abc")
	require.NoError(t, store.Save(ctx, cfg))

	stored, err := store.Get(ctx, model.RoleClub)
	require.NoError(t, err)
	assert.Contains(t, stored.Groups[0].Modules, "custom-abc")
}

func TestSaveEmitsOutboxEvent(t *testing.T) {
	store, outbox := newStore()

	require.NoError(t, store.Save(context.Background(), DefaultConfig(model.RoleClub)))

	events := outbox.Events()
	require.Len(t, events, 1)
	assert.Equal(t, model.EventUIBuilderSaved, events[0].EventType)
}

func TestResetRestoresDefaults(t *testing.T) {
	store, _ := newStore()
	ctx := context.Background()

	cfg := DefaultConfig(model.RoleAthlete)
	cfg.PrimaryColor = "#000000"
	require.NoError(t, store.Save(ctx, cfg))

	got, err := store.Reset(ctx, model.RoleAthlete)
	require.NoError(t, err)
	assert.Equal(t, registry.DefaultUISettings(model.RoleAthlete).PrimaryColor, got.PrimaryColor)

	// The stored customization is gone, not merged.
	stored, err := store.Get(ctx, model.RoleAthlete)
	require.NoError(t, err)
	assert.Equal(t, got.PrimaryColor, stored.PrimaryColor)
}

func TestAddCustomModuleAssignsIDAndOrder(t *testing.T) {
	store, _ := newStore()
	ctx := context.Background()

	first, err := store.AddCustomModule(ctx, model.RoleClub, model.CustomModule{Name: "rankings", Layout: model.LayoutTable})
	require.NoError(t, err)
	second, err := store.AddCustomModule(ctx, model.RoleClub, model.CustomModule{Name: "gallery", Layout: model.LayoutGallery})
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 0, first.OrderIndex)
	assert.Equal(t, 1, second.OrderIndex)
}

func TestAddCustomModuleRejectsBadLayout(t *testing.T) {
	store, _ := newStore()

	_, err := store.AddCustomModule(context.Background(), model.RoleClub, model.CustomModule{Name: "x", Layout: model.LayoutType("hologram")})
	assert.Error(t, err)
}

func TestDeleteCustomModuleRemovesGroupReferences(t *testing.T) {
	store, _ := newStore()
	ctx := context.Background()

	cm, err := store.AddCustomModule(ctx, model.RoleClub, model.CustomModule{Name: "rankings", Layout: model.LayoutTable})
	require.NoError(t, err)

	cfg, err := store.Get(ctx, model.RoleClub)
	require.NoError(t, err)
	cfg.Groups[0].Modules = append(cfg.Groups[0].Modules, cm.ID)
	require.NoError(t, store.Save(ctx, cfg))

	require.NoError(t, store.DeleteCustomModule(ctx, model.RoleClub, cm.ID))

	stored, err := store.Get(ctx, model.RoleClub)
	require.NoError(t, err)
	assert.Empty(t, stored.CustomModules)
	for _, g := range stored.Groups {
		assert.NotContains(t, g.Modules, cm.ID)
	}
}

func TestDeleteCustomModuleUnknownID(t *testing.T) {
	store, _ := newStore()
	err := store.DeleteCustomModule(context.Background(), model.RoleClub, "custom-missing")
	assert.Error(t, err)
}

func TestDocumentCoversEveryRole(t *testing.T) {
	store, _ := newStore()

	doc, err := store.Document(context.Background())
	require.NoError(t, err)

	assert.Equal(t, DocumentVersion, doc.Version)
	assert.Len(t, doc.Roles, len(model.AllRoles))
	for _, role := range model.AllRoles {
		_, ok := doc.Roles[role]
		assert.True(t, ok, "missing role %s", role)
	}
}
