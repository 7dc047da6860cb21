package model

import "time"

// SidebarGroup is an admin-defined visual grouping of modules in a
// role's sidebar. A module belongs to at most one group at a time;
// ungrouped modules live in the virtual "available" pool.
type SidebarGroup struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Icon    string   `json:"icon"`
	Color   string   `json:"color"`
	Modules []string `json:"modules"`
}

// Clone returns a deep copy of the group.
func (g SidebarGroup) Clone() SidebarGroup {
	modules := make([]string, len(g.Modules))
	copy(modules, g.Modules)
	g.Modules = modules
	return g
}

// SidebarLayout is the persisted group arrangement for one role.
type SidebarLayout struct {
	Role      Role           `json:"role"`
	Groups    []SidebarGroup `json:"groups"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Clone returns a deep copy of the layout.
func (l *SidebarLayout) Clone() *SidebarLayout {
	groups := make([]SidebarGroup, len(l.Groups))
	for i, g := range l.Groups {
		groups[i] = g.Clone()
	}
	return &SidebarLayout{Role: l.Role, Groups: groups, UpdatedAt: l.UpdatedAt}
}

// ModuleNames flattens the layout into the ordered module list it
// produces, group by group.
func (l *SidebarLayout) ModuleNames() []string {
	var out []string
	for _, g := range l.Groups {
		out = append(out, g.Modules...)
	}
	return out
}

// UIElement is one typed element inside a layout section.
type UIElement struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Value string `json:"value,omitempty"`
}

// LayoutSection is a named slot holding an ordered list of elements.
type LayoutSection struct {
	Name     string      `json:"name"`
	Elements []UIElement `json:"elements"`
}

// ModuleLayout is the per-module slot customization. At most three
// named sections (left/middle/right title slots in the editor).
type ModuleLayout struct {
	Sections []LayoutSection `json:"sections"`
}

// RoleModuleEntry is one module's entry in a role's UI builder document.
type RoleModuleEntry struct {
	Module  string        `json:"module"`
	Visible bool          `json:"visible"`
	Layout  *ModuleLayout `json:"layout,omitempty"`
}

// RoleUIBuilderConfig is one role's section of the UI builder document.
type RoleUIBuilderConfig struct {
	Role          Role              `json:"role"`
	PrimaryColor  string            `json:"primary_color"`
	AccentColor   string            `json:"accent_color"`
	Groups        []SidebarGroup    `json:"groups"`
	ModuleEntries []RoleModuleEntry `json:"module_entries"`
	CustomModules []CustomModule    `json:"custom_modules"`
}

// UIBuilderDocument is the full persisted UI builder state: a version
// tag, last-updated timestamp, and one entry per role. Saves always
// write a role's section whole; resets overwrite it with defaults.
type UIBuilderDocument struct {
	Version   int                          `json:"version"`
	UpdatedAt time.Time                    `json:"updated_at"`
	Roles     map[Role]RoleUIBuilderConfig `json:"roles"`
}
