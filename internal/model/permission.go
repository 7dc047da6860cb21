package model

// Action is one of the four independent capabilities on a module.
// No action implies another.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// ParseAction normalizes an action string.
func ParseAction(s string) (Action, bool) {
	switch Action(s) {
	case ActionView, ActionCreate, ActionEdit, ActionDelete:
		return Action(s), true
	}
	return "", false
}

// ModulePermission is the capability tuple for one module within one
// role's permission record.
type ModulePermission struct {
	Module    string `json:"module" db:"module"`
	CanView   bool   `json:"can_view" db:"can_view"`
	CanCreate bool   `json:"can_create" db:"can_create"`
	CanEdit   bool   `json:"can_edit" db:"can_edit"`
	CanDelete bool   `json:"can_delete" db:"can_delete"`
}

// Allows returns the boolean field matching the requested action.
func (p ModulePermission) Allows(action Action) bool {
	switch action {
	case ActionView:
		return p.CanView
	case ActionCreate:
		return p.CanCreate
	case ActionEdit:
		return p.CanEdit
	case ActionDelete:
		return p.CanDelete
	}
	return false
}

// Set returns a copy of the tuple with one capability changed.
func (p ModulePermission) Set(action Action, allowed bool) ModulePermission {
	switch action {
	case ActionView:
		p.CanView = allowed
	case ActionCreate:
		p.CanCreate = allowed
	case ActionEdit:
		p.CanEdit = allowed
	case ActionDelete:
		p.CanDelete = allowed
	}
	return p
}

// RolePermissions is one role's full permission record: one tuple per
// module. A module missing from the record means no access.
type RolePermissions struct {
	Role        Role               `json:"role"`
	Permissions []ModulePermission `json:"permissions"`
}

// Find returns the tuple for a module, or a zero tuple (all false) when
// the module is absent from the record.
func (rp *RolePermissions) Find(module string) (ModulePermission, bool) {
	for _, p := range rp.Permissions {
		if p.Module == module {
			return p, true
		}
	}
	return ModulePermission{Module: module}, false
}

// Upsert replaces the tuple for a module, appending when absent.
// The receiver's slice is copied so callers never share backing arrays
// between role records.
func (rp *RolePermissions) Upsert(perm ModulePermission) {
	for i, p := range rp.Permissions {
		if p.Module == perm.Module {
			out := make([]ModulePermission, len(rp.Permissions))
			copy(out, rp.Permissions)
			out[i] = perm
			rp.Permissions = out
			return
		}
	}
	out := make([]ModulePermission, len(rp.Permissions), len(rp.Permissions)+1)
	copy(out, rp.Permissions)
	rp.Permissions = append(out, perm)
}

// Clone returns a deep copy of the record.
func (rp *RolePermissions) Clone() *RolePermissions {
	perms := make([]ModulePermission, len(rp.Permissions))
	copy(perms, rp.Permissions)
	return &RolePermissions{Role: rp.Role, Permissions: perms}
}

// RoleUISettings holds one role's default presentation: colors, the
// ordered default sidebar module list, and dashboard widgets.
type RoleUISettings struct {
	Role             Role     `json:"role"`
	PrimaryColor     string   `json:"primary_color"`
	AccentColor      string   `json:"accent_color"`
	SidebarModules   []string `json:"sidebar_modules"`
	DashboardWidgets []string `json:"dashboard_widgets"`
}

// Clone returns a deep copy of the settings.
func (s *RoleUISettings) Clone() *RoleUISettings {
	sidebar := make([]string, len(s.SidebarModules))
	copy(sidebar, s.SidebarModules)
	widgets := make([]string, len(s.DashboardWidgets))
	copy(widgets, s.DashboardWidgets)
	return &RoleUISettings{
		Role:             s.Role,
		PrimaryColor:     s.PrimaryColor,
		AccentColor:      s.AccentColor,
		SidebarModules:   sidebar,
		DashboardWidgets: widgets,
	}
}
