package uibuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcofed/federation-api/internal/model"
)

func testGroups() []model.SidebarGroup {
	return []model.SidebarGroup{
		{ID: "g1", Label: "One", Modules: []string{"a", "b", "c"}},
		{ID: "g2", Label: "Two", Modules: []string{"d"}},
		{ID: "g3", Label: "Empty"},
	}
}

func allModules(groups []model.SidebarGroup) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g.Modules...)
	}
	return out
}

func TestMoveModuleBetweenGroups(t *testing.T) {
	got, err := MoveModule(testGroups(), "b", "g1", "g2", 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "c"}, got[0].Modules)
	assert.Equal(t, []string{"b", "d"}, got[1].Modules)
}

func TestMoveModulePreservesCardinality(t *testing.T) {
	before := testGroups()
	got, err := MoveModule(before, "a", "g1", "g3", 0)
	require.NoError(t, err)

	assert.ElementsMatch(t, allModules(before), allModules(got))
	assert.Len(t, allModules(got), 4)
}

func TestMoveModuleOutOfRangeIndexAppends(t *testing.T) {
	got, err := MoveModule(testGroups(), "a", "g1", "g2", 99)
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "a"}, got[1].Modules)
}

func TestMoveModuleFromAvailablePool(t *testing.T) {
	got, err := MoveModule(testGroups(), "zz", "", "g2", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"zz", "d"}, got[1].Modules)
}

func TestMoveModuleErrors(t *testing.T) {
	_, err := MoveModule(testGroups(), "a", "g1", "missing", 0)
	assert.Error(t, err)

	_, err = MoveModule(testGroups(), "a", "missing", "g2", 0)
	assert.Error(t, err)

	_, err = MoveModule(testGroups(), "zz", "g1", "g2", 0)
	assert.Error(t, err)

	// Already grouped: cannot move from the pool.
	_, err = MoveModule(testGroups(), "a", "", "g2", 0)
	assert.Error(t, err)
}

func TestMoveModuleDoesNotMutateInput(t *testing.T) {
	before := testGroups()
	_, err := MoveModule(before, "b", "g1", "g2", 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, before[0].Modules)
	assert.Equal(t, []string{"d"}, before[1].Modules)
}

func TestReorderModuleIsAPermutation(t *testing.T) {
	got, err := ReorderModule(testGroups(), "g1", 0, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "c", "a"}, got[0].Modules)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, got[0].Modules)
}

func TestReorderModuleBadIndex(t *testing.T) {
	_, err := ReorderModule(testGroups(), "g1", 7, 0)
	assert.Error(t, err)
}

func TestRemoveModuleReturnsToPool(t *testing.T) {
	got := RemoveModule(testGroups(), "b")
	assert.Equal(t, []string{"a", "c"}, got[0].Modules)

	// Ungrouped module: no-op.
	got = RemoveModule(testGroups(), "zz")
	assert.Equal(t, allModules(testGroups()), allModules(got))
}

func TestAddElementCreatesSection(t *testing.T) {
	layout := &model.ModuleLayout{}

	layout = AddElement(layout, "header", model.UIElement{ID: "e1", Kind: "banner"})
	layout = AddElement(layout, "header", model.UIElement{ID: "e2", Kind: "stat"})
	layout = AddElement(layout, "body", model.UIElement{ID: "e3", Kind: "table"})

	require.Len(t, layout.Sections, 2)
	assert.Len(t, layout.Sections[0].Elements, 2)
	assert.Equal(t, "body", layout.Sections[1].Name)
}

func TestRemoveElementKeepsOrder(t *testing.T) {
	layout := &model.ModuleLayout{Sections: []model.LayoutSection{
		{Name: "body", Elements: []model.UIElement{{ID: "e1"}, {ID: "e2"}, {ID: "e3"}}},
	}}

	layout = RemoveElement(layout, "body", "e2")
	require.Len(t, layout.Sections[0].Elements, 2)
	assert.Equal(t, "e1", layout.Sections[0].Elements[0].ID)
	assert.Equal(t, "e3", layout.Sections[0].Elements[1].ID)

	// Unknown section and ID are no-ops.
	layout = RemoveElement(layout, "missing", "e1")
	layout = RemoveElement(layout, "body", "missing")
	assert.Len(t, layout.Sections[0].Elements, 2)
}
