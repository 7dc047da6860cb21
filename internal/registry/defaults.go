package registry

import "github.com/arcofed/federation-api/internal/model"

// perm is a compact constructor for default matrix rows.
func perm(module string, view, create, edit, del bool) model.ModulePermission {
	return model.ModulePermission{
		Module:    module,
		CanView:   view,
		CanCreate: create,
		CanEdit:   edit,
		CanDelete: del,
	}
}

// defaultMatrix is the static per-role capability table. Modules absent
// from a role's row resolve to all-false. Rows are cloned on every
// read so no two callers ever share a record.
var defaultMatrix = map[model.Role][]model.ModulePermission{
	model.RoleSuperAdmin: {
		perm("dashboard", true, true, true, true),
		perm("profile", true, true, true, true),
		perm("notifications", true, true, true, true),
		perm("clubs", true, true, true, true),
		perm("athletes", true, true, true, true),
		perm("coaches", true, true, true, true),
		perm("judges", true, true, true, true),
		perm("schools", true, true, true, true),
		perm("events", true, true, true, true),
		perm("scoring", true, true, true, true),
		perm("training", true, true, true, true),
		perm("jerseys", true, true, true, true),
		perm("suppliers", true, true, true, true),
		perm("finance", true, true, true, true),
		perm("manpower", true, true, true, true),
		perm("reports", true, true, true, true),
		perm("user_management", true, true, true, true),
		perm("role_settings", true, true, true, true),
	},
	model.RoleFederation: {
		perm("dashboard", true, false, true, false),
		perm("profile", true, false, true, false),
		perm("notifications", true, true, false, true),
		perm("clubs", true, true, true, true),
		perm("athletes", true, true, true, true),
		perm("coaches", true, true, true, true),
		perm("judges", true, true, true, true),
		perm("schools", true, true, true, true),
		perm("events", true, true, true, true),
		perm("jerseys", true, true, true, false),
		perm("suppliers", true, true, true, false),
		perm("finance", true, true, true, false),
		perm("manpower", true, true, true, true),
		perm("reports", true, false, false, false),
	},
	model.RoleClub: {
		perm("dashboard", true, false, true, false),
		perm("profile", true, false, true, false),
		perm("notifications", true, false, false, true),
		perm("clubs", true, false, true, false),
		perm("athletes", true, true, true, false),
		perm("coaches", true, true, true, false),
		perm("events", true, true, true, false),
		perm("scoring", true, false, false, false),
		perm("jerseys", true, true, false, false),
		perm("finance", true, false, true, false),
	},
	model.RoleSchool: {
		perm("dashboard", true, false, true, false),
		perm("profile", true, false, true, false),
		perm("notifications", true, false, false, true),
		perm("schools", true, false, true, false),
		perm("athletes", true, true, true, false),
		perm("coaches", true, true, false, false),
		perm("events", true, true, false, false),
		perm("scoring", true, false, false, false),
	},
	model.RoleAthlete: {
		perm("dashboard", true, false, false, false),
		perm("profile", true, false, true, false),
		perm("notifications", true, false, false, true),
		perm("events", true, true, false, false),
		perm("scoring", true, true, true, false),
		perm("training", true, false, false, false),
		perm("jerseys", true, true, false, false),
	},
	model.RoleParent: {
		perm("dashboard", true, false, false, false),
		perm("profile", true, false, true, false),
		perm("notifications", true, false, false, true),
		perm("events", true, false, false, false),
		perm("training", true, false, false, false),
		perm("jerseys", true, true, false, false),
	},
	model.RoleCoach: {
		perm("dashboard", true, false, false, false),
		perm("profile", true, false, true, false),
		perm("notifications", true, false, false, true),
		perm("athletes", true, false, true, false),
		perm("events", true, true, false, false),
		perm("scoring", true, true, true, false),
		perm("training", true, true, true, false),
	},
	model.RoleJudge: {
		perm("dashboard", true, false, false, false),
		perm("profile", true, false, true, false),
		perm("notifications", true, false, false, true),
		perm("judges", true, false, true, false),
		perm("events", true, false, false, false),
		perm("scoring", true, true, true, false),
	},
	model.RoleEventOrganizer: {
		perm("dashboard", true, false, false, false),
		perm("profile", true, false, true, false),
		perm("notifications", true, true, false, true),
		perm("clubs", true, false, false, false),
		perm("judges", true, false, false, false),
		perm("events", true, true, true, true),
		perm("manpower", true, true, true, false),
	},
	model.RoleSupplier: {
		perm("dashboard", true, false, false, false),
		perm("profile", true, false, true, false),
		perm("notifications", true, false, false, true),
		perm("jerseys", true, true, true, false),
		perm("suppliers", true, false, true, false),
		perm("finance", true, false, false, false),
	},
	model.RoleManpower: {
		perm("dashboard", true, false, false, false),
		perm("profile", true, false, true, false),
		perm("notifications", true, false, false, true),
		perm("events", true, false, false, false),
		perm("manpower", true, false, true, false),
	},
}

// DefaultPermissions returns a role's static default permission record.
// Unknown roles get an empty record (no access to anything).
func DefaultPermissions(role model.Role) *model.RolePermissions {
	row, ok := defaultMatrix[role.Canonical()]
	if !ok {
		return &model.RolePermissions{Role: role}
	}
	perms := make([]model.ModulePermission, len(row))
	copy(perms, row)
	return &model.RolePermissions{Role: role, Permissions: perms}
}

var defaultUISettings = map[model.Role]model.RoleUISettings{
	model.RoleSuperAdmin: {
		PrimaryColor:     "#1e293b",
		AccentColor:      "#f59e0b",
		SidebarModules:   []string{"dashboard", "user_management", "role_settings", "reports", "clubs", "athletes", "events", "finance", "notifications", "profile"},
		DashboardWidgets: []string{"system_health", "role_activity", "recent_changes"},
	},
	model.RoleFederation: {
		PrimaryColor:     "#0f766e",
		AccentColor:      "#f59e0b",
		SidebarModules:   []string{"dashboard", "clubs", "athletes", "coaches", "judges", "schools", "events", "finance", "suppliers", "jerseys", "manpower", "reports", "notifications", "profile"},
		DashboardWidgets: []string{"member_counts", "upcoming_events", "finance_summary"},
	},
	model.RoleClub: {
		PrimaryColor:     "#1d4ed8",
		AccentColor:      "#f97316",
		SidebarModules:   []string{"dashboard", "clubs", "athletes", "coaches", "events", "scoring", "finance", "jerseys", "notifications", "profile"},
		DashboardWidgets: []string{"member_counts", "upcoming_events", "club_scores"},
	},
	model.RoleSchool: {
		PrimaryColor:     "#7c3aed",
		AccentColor:      "#22c55e",
		SidebarModules:   []string{"dashboard", "schools", "athletes", "coaches", "events", "scoring", "notifications", "profile"},
		DashboardWidgets: []string{"student_counts", "upcoming_events"},
	},
	model.RoleAthlete: {
		PrimaryColor:     "#b91c1c",
		AccentColor:      "#fbbf24",
		SidebarModules:   []string{"dashboard", "scoring", "training", "events", "jerseys", "notifications", "profile"},
		DashboardWidgets: []string{"my_scores", "next_event", "training_plan"},
	},
	model.RoleParent: {
		PrimaryColor:     "#0369a1",
		AccentColor:      "#fbbf24",
		SidebarModules:   []string{"dashboard", "training", "events", "jerseys", "notifications", "profile"},
		DashboardWidgets: []string{"child_progress", "next_event"},
	},
	model.RoleCoach: {
		PrimaryColor:     "#15803d",
		AccentColor:      "#f59e0b",
		SidebarModules:   []string{"dashboard", "athletes", "training", "scoring", "events", "notifications", "profile"},
		DashboardWidgets: []string{"squad_overview", "training_plan", "next_event"},
	},
	model.RoleJudge: {
		PrimaryColor:     "#44403c",
		AccentColor:      "#eab308",
		SidebarModules:   []string{"dashboard", "events", "scoring", "judges", "notifications", "profile"},
		DashboardWidgets: []string{"assigned_events", "recent_results"},
	},
	model.RoleEventOrganizer: {
		PrimaryColor:     "#9d174d",
		AccentColor:      "#38bdf8",
		SidebarModules:   []string{"dashboard", "events", "manpower", "judges", "clubs", "notifications", "profile"},
		DashboardWidgets: []string{"event_pipeline", "staffing_gaps"},
	},
	model.RoleSupplier: {
		PrimaryColor:     "#92400e",
		AccentColor:      "#4ade80",
		SidebarModules:   []string{"dashboard", "jerseys", "suppliers", "finance", "notifications", "profile"},
		DashboardWidgets: []string{"open_orders", "stock_alerts"},
	},
	model.RoleManpower: {
		PrimaryColor:     "#334155",
		AccentColor:      "#f472b6",
		SidebarModules:   []string{"dashboard", "manpower", "events", "notifications", "profile"},
		DashboardWidgets: []string{"my_shifts", "next_event"},
	},
}

// DefaultUISettings returns a role's static default UI settings.
// Unknown roles get a minimal foundation-only sidebar.
func DefaultUISettings(role model.Role) *model.RoleUISettings {
	row, ok := defaultUISettings[role.Canonical()]
	if !ok {
		return &model.RoleUISettings{
			Role:           role,
			PrimaryColor:   "#334155",
			AccentColor:    "#94a3b8",
			SidebarModules: []string{"dashboard", "profile"},
		}
	}
	s := row
	s.Role = role
	return s.Clone()
}

// defaultGroups is the hard-coded "role → groups" table the sidebar
// layout reset reverts to, always via full overwrite.
var defaultGroups = map[model.Role][]model.SidebarGroup{
	model.RoleFederation: {
		{ID: "grp-overview", Label: "Overview", Icon: "home", Color: "#0f766e", Modules: []string{"dashboard", "reports"}},
		{ID: "grp-people", Label: "People", Icon: "users", Color: "#0369a1", Modules: []string{"clubs", "athletes", "coaches", "judges", "schools"}},
		{ID: "grp-operations", Label: "Operations", Icon: "settings", Color: "#92400e", Modules: []string{"events", "manpower", "finance"}},
		{ID: "grp-commerce", Label: "Commerce", Icon: "shopping-bag", Color: "#9d174d", Modules: []string{"jerseys", "suppliers"}},
		{ID: "grp-personal", Label: "Personal", Icon: "user", Color: "#334155", Modules: []string{"notifications", "profile"}},
	},
	model.RoleClub: {
		{ID: "grp-overview", Label: "Overview", Icon: "home", Color: "#1d4ed8", Modules: []string{"dashboard", "clubs"}},
		{ID: "grp-people", Label: "People", Icon: "users", Color: "#0369a1", Modules: []string{"athletes", "coaches"}},
		{ID: "grp-activity", Label: "Activity", Icon: "target", Color: "#15803d", Modules: []string{"events", "scoring"}},
		{ID: "grp-admin", Label: "Administration", Icon: "wallet", Color: "#92400e", Modules: []string{"finance", "jerseys"}},
		{ID: "grp-personal", Label: "Personal", Icon: "user", Color: "#334155", Modules: []string{"notifications", "profile"}},
	},
	model.RoleAthlete: {
		{ID: "grp-shoot", Label: "Shooting", Icon: "crosshair", Color: "#b91c1c", Modules: []string{"scoring", "training"}},
		{ID: "grp-compete", Label: "Competition", Icon: "calendar", Color: "#0369a1", Modules: []string{"events"}},
		{ID: "grp-gear", Label: "Gear", Icon: "shirt", Color: "#92400e", Modules: []string{"jerseys"}},
		{ID: "grp-personal", Label: "Personal", Icon: "user", Color: "#334155", Modules: []string{"dashboard", "notifications", "profile"}},
	},
}

// DefaultSidebarGroups returns the default group arrangement for a
// role. Roles without a dedicated table get a single group holding the
// role's default sidebar list.
func DefaultSidebarGroups(role model.Role) []model.SidebarGroup {
	if row, ok := defaultGroups[role.Canonical()]; ok {
		out := make([]model.SidebarGroup, len(row))
		for i, g := range row {
			out[i] = g.Clone()
		}
		return out
	}
	settings := DefaultUISettings(role)
	return []model.SidebarGroup{
		{ID: "grp-main", Label: "Menu", Icon: "menu", Color: "#334155", Modules: settings.SidebarModules},
	}
}
