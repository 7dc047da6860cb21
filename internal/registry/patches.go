package registry

import "github.com/arcofed/federation-api/internal/model"

// Patch is a one-time forward-migration step: a module that was added
// to the catalog after a role's record was first persisted, injected
// into stored records at load time. These are recorded historical
// fixes, not a general auto-heal policy, so the list is explicit and
// versioned.
type Patch struct {
	Version       int
	Role          model.Role
	Module        string
	GrantView     bool
	AppendSidebar bool
}

// Patches, in application order. Do not reorder released entries.
var Patches = []Patch{
	// v2: training shipped after athlete and coach records existed.
	{Version: 2, Role: model.RoleAthlete, Module: "training", GrantView: true, AppendSidebar: true},
	{Version: 2, Role: model.RoleCoach, Module: "training", GrantView: true, AppendSidebar: true},
	// v3: manpower shipped after event organizer records existed.
	{Version: 3, Role: model.RoleEventOrganizer, Module: "manpower", GrantView: true, AppendSidebar: true},
}

// ApplyPermissionPatches injects missing patched modules into a stored
// permission record with view granted. Records that already carry the
// module are left alone.
func ApplyPermissionPatches(rp *model.RolePermissions) {
	for _, p := range Patches {
		if !p.GrantView || p.Role != rp.Role {
			continue
		}
		if _, ok := rp.Find(p.Module); ok {
			continue
		}
		rp.Upsert(model.ModulePermission{Module: p.Module, CanView: true})
	}
}

// ApplySidebarPatches appends missing patched module names to a stored
// sidebar list, preserving existing order.
func ApplySidebarPatches(role model.Role, sidebar []string) []string {
	present := make(map[string]struct{}, len(sidebar))
	for _, m := range sidebar {
		present[m] = struct{}{}
	}
	out := sidebar
	for _, p := range Patches {
		if !p.AppendSidebar || p.Role != role {
			continue
		}
		if _, ok := present[p.Module]; ok {
			continue
		}
		out = append(out, p.Module)
		present[p.Module] = struct{}{}
	}
	return out
}
