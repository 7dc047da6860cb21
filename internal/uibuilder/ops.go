// Package uibuilder implements the admin-facing module tree editor:
// pure array operations for drag-and-drop group editing and a
// persistence-backed document store. The operations are framework-free
// on purpose so they can be tested in isolation.
package uibuilder

import (
	"fmt"

	"github.com/arcofed/federation-api/internal/model"
)

func cloneGroups(groups []model.SidebarGroup) []model.SidebarGroup {
	out := make([]model.SidebarGroup, len(groups))
	for i, g := range groups {
		out[i] = g.Clone()
	}
	return out
}

func findGroup(groups []model.SidebarGroup, id string) int {
	for i, g := range groups {
		if g.ID == id {
			return i
		}
	}
	return -1
}

func indexOf(modules []string, module string) int {
	for i, m := range modules {
		if m == module {
			return i
		}
	}
	return -1
}

func removeAt(modules []string, i int) []string {
	out := make([]string, 0, len(modules)-1)
	out = append(out, modules[:i]...)
	return append(out, modules[i+1:]...)
}

func insertAt(modules []string, i int, module string) []string {
	if i < 0 || i > len(modules) {
		i = len(modules)
	}
	out := make([]string, 0, len(modules)+1)
	out = append(out, modules[:i]...)
	out = append(out, module)
	return append(out, modules[i:]...)
}

// MoveModule moves a module from one group to another, inserting it at
// toIndex in the destination (appended when toIndex is out of range,
// which is how dropping onto empty space behaves). The module leaves
// exactly one source group; relative order of untouched modules is
// preserved in both groups. An empty fromID moves the module out of
// the ungrouped "available" pool.
func MoveModule(groups []model.SidebarGroup, module, fromID, toID string, toIndex int) ([]model.SidebarGroup, error) {
	out := cloneGroups(groups)

	to := findGroup(out, toID)
	if to < 0 {
		return nil, fmt.Errorf("destination group %q not found", toID)
	}

	if fromID != "" {
		from := findGroup(out, fromID)
		if from < 0 {
			return nil, fmt.Errorf("source group %q not found", fromID)
		}
		i := indexOf(out[from].Modules, module)
		if i < 0 {
			return nil, fmt.Errorf("module %q not in group %q", module, fromID)
		}
		out[from].Modules = removeAt(out[from].Modules, i)
	} else if g := containingGroup(out, module); g >= 0 {
		return nil, fmt.Errorf("module %q already belongs to group %q", module, out[g].ID)
	}

	if indexOf(out[to].Modules, module) >= 0 {
		return nil, fmt.Errorf("module %q already in group %q", module, toID)
	}
	out[to].Modules = insertAt(out[to].Modules, toIndex, module)
	return out, nil
}

// ReorderModule permutes a module within a single group from one index
// to another. No module is gained or lost.
func ReorderModule(groups []model.SidebarGroup, groupID string, fromIndex, toIndex int) ([]model.SidebarGroup, error) {
	out := cloneGroups(groups)

	g := findGroup(out, groupID)
	if g < 0 {
		return nil, fmt.Errorf("group %q not found", groupID)
	}
	modules := out[g].Modules
	if fromIndex < 0 || fromIndex >= len(modules) {
		return nil, fmt.Errorf("index %d out of range", fromIndex)
	}

	module := modules[fromIndex]
	modules = removeAt(modules, fromIndex)
	if toIndex > len(modules) {
		toIndex = len(modules)
	}
	out[g].Modules = insertAt(modules, toIndex, module)
	return out, nil
}

// RemoveModule takes a module out of whichever group holds it,
// returning it to the available pool. Removing an ungrouped module is
// a no-op.
func RemoveModule(groups []model.SidebarGroup, module string) []model.SidebarGroup {
	out := cloneGroups(groups)
	if g := containingGroup(out, module); g >= 0 {
		i := indexOf(out[g].Modules, module)
		out[g].Modules = removeAt(out[g].Modules, i)
	}
	return out
}

func containingGroup(groups []model.SidebarGroup, module string) int {
	for i, g := range groups {
		if indexOf(g.Modules, module) >= 0 {
			return i
		}
	}
	return -1
}

// AddElement appends a typed element to a named layout section,
// creating the section when it does not exist yet.
func AddElement(layout *model.ModuleLayout, section string, elem model.UIElement) *model.ModuleLayout {
	out := cloneLayout(layout)
	for i := range out.Sections {
		if out.Sections[i].Name == section {
			out.Sections[i].Elements = append(out.Sections[i].Elements, elem)
			return out
		}
	}
	out.Sections = append(out.Sections, model.LayoutSection{
		Name:     section,
		Elements: []model.UIElement{elem},
	})
	return out
}

// RemoveElement deletes an element by identifier from a named section,
// leaving remaining order intact. Unknown sections or IDs are no-ops.
func RemoveElement(layout *model.ModuleLayout, section, elemID string) *model.ModuleLayout {
	out := cloneLayout(layout)
	for i := range out.Sections {
		if out.Sections[i].Name != section {
			continue
		}
		kept := make([]model.UIElement, 0, len(out.Sections[i].Elements))
		for _, e := range out.Sections[i].Elements {
			if e.ID != elemID {
				kept = append(kept, e)
			}
		}
		out.Sections[i].Elements = kept
	}
	return out
}

func cloneLayout(layout *model.ModuleLayout) *model.ModuleLayout {
	if layout == nil {
		return &model.ModuleLayout{}
	}
	sections := make([]model.LayoutSection, len(layout.Sections))
	for i, s := range layout.Sections {
		elems := make([]model.UIElement, len(s.Elements))
		copy(elems, s.Elements)
		sections[i] = model.LayoutSection{Name: s.Name, Elements: elems}
	}
	return &model.ModuleLayout{Sections: sections}
}
