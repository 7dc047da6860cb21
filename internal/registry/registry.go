// Package registry holds the static module catalog and the per-role
// default tables the rest of the system resolves against. Everything
// here is compile-time data: stored records override it, they never
// replace it.
package registry

import "github.com/arcofed/federation-api/internal/model"

// Catalog is the full static module registry, in display order.
// Every module referenced by permission or sidebar data must exist
// here; dangling references are filtered out during resolution.
var Catalog = []model.Module{
	{
		Code:     "dashboard",
		Label:    "Dashboard",
		Icon:     "layout-dashboard",
		Type:     model.ModuleTypeUniversal,
		Category: model.CategoryFoundation,
	},
	{
		Code:     "profile",
		Label:    "My Profile",
		Icon:     "user-circle",
		Type:     model.ModuleTypeUniversal,
		Category: model.CategoryFoundation,
	},
	{
		Code:     "notifications",
		Label:    "Notifications",
		Icon:     "bell",
		Type:     model.ModuleTypeUniversal,
		Category: model.CategoryFoundation,
	},
	{
		Code:        "clubs",
		Label:       "Clubs",
		Icon:        "shield",
		Type:        model.ModuleTypeRole,
		Category:    model.CategorySport,
		TargetRoles: []model.Role{model.RoleFederation, model.RoleClub, model.RoleEventOrganizer},
		SubModules: []model.SubModule{
			{Code: "members", Label: "Members"},
			{Code: "facilities", Label: "Facilities"},
			{Code: "affiliations", Label: "Affiliations"},
		},
	},
	{
		Code:        "athletes",
		Label:       "Athletes",
		Icon:        "target",
		Type:        model.ModuleTypeRole,
		Category:    model.CategorySport,
		TargetRoles: []model.Role{model.RoleFederation, model.RoleClub, model.RoleSchool, model.RoleCoach},
		SubModules: []model.SubModule{
			{Code: "licenses", Label: "Licenses"},
			{Code: "classifications", Label: "Classifications"},
			{Code: "transfers", Label: "Transfers"},
		},
	},
	{
		Code:        "coaches",
		Label:       "Coaches",
		Icon:        "clipboard-list",
		Type:        model.ModuleTypeRole,
		Category:    model.CategorySport,
		TargetRoles: []model.Role{model.RoleFederation, model.RoleClub, model.RoleSchool},
	},
	{
		Code:        "judges",
		Label:       "Judges",
		Icon:        "scale",
		Type:        model.ModuleTypeRole,
		Category:    model.CategorySport,
		TargetRoles: []model.Role{model.RoleFederation, model.RoleEventOrganizer, model.RoleJudge},
	},
	{
		Code:        "schools",
		Label:       "Schools",
		Icon:        "graduation-cap",
		Type:        model.ModuleTypeRole,
		Category:    model.CategorySport,
		TargetRoles: []model.Role{model.RoleFederation, model.RoleSchool},
	},
	{
		Code:     "events",
		Label:    "Events",
		Icon:     "calendar",
		Type:     model.ModuleTypeUniversal,
		Category: model.CategoryOps,
		SubModules: []model.SubModule{
			{Code: "registration", Label: "Registration"},
			{Code: "scheduling", Label: "Scheduling"},
			{Code: "results", Label: "Results"},
		},
	},
	{
		Code:        "scoring",
		Label:       "Scoring",
		Icon:        "crosshair",
		Type:        model.ModuleTypeRole,
		Category:    model.CategorySport,
		TargetRoles: []model.Role{model.RoleAthlete, model.RoleCoach, model.RoleJudge, model.RoleClub, model.RoleSchool},
		SubModules: []model.SubModule{
			{Code: "practice", Label: "Practice Rounds"},
			{Code: "competition", Label: "Competition"},
			{Code: "history", Label: "Score History"},
		},
	},
	{
		Code:        "training",
		Label:       "Training",
		Icon:        "dumbbell",
		Type:        model.ModuleTypeRole,
		Category:    model.CategoryAthlete,
		TargetRoles: []model.Role{model.RoleAthlete, model.RoleCoach, model.RoleParent},
		SubModules: []model.SubModule{
			{Code: "plans", Label: "Training Plans"},
			{Code: "attendance", Label: "Attendance"},
		},
	},
	{
		Code:     "jerseys",
		Label:    "Jerseys & Merchandise",
		Icon:     "shirt",
		Type:     model.ModuleTypeUniversal,
		Category: model.CategoryCommerce,
		SubModules: []model.SubModule{
			{Code: "catalog", Label: "Catalog"},
			{Code: "orders", Label: "Orders"},
			{Code: "stock", Label: "Stock"},
		},
	},
	{
		Code:        "suppliers",
		Label:       "Suppliers",
		Icon:        "truck",
		Type:        model.ModuleTypeRole,
		Category:    model.CategoryCommerce,
		TargetRoles: []model.Role{model.RoleFederation, model.RoleSupplier},
	},
	{
		Code:        "finance",
		Label:       "Finance",
		Icon:        "wallet",
		Type:        model.ModuleTypeRole,
		Category:    model.CategoryOps,
		TargetRoles: []model.Role{model.RoleFederation, model.RoleClub, model.RoleSupplier},
		SubModules: []model.SubModule{
			{Code: "invoices", Label: "Invoices"},
			{Code: "fees", Label: "Membership Fees"},
			{Code: "payouts", Label: "Payouts"},
		},
	},
	{
		Code:        "manpower",
		Label:       "Manpower",
		Icon:        "users",
		Type:        model.ModuleTypeRole,
		Category:    model.CategoryOps,
		TargetRoles: []model.Role{model.RoleFederation, model.RoleEventOrganizer, model.RoleManpower},
	},
	{
		Code:     "reports",
		Label:    "Reports",
		Icon:     "bar-chart",
		Type:     model.ModuleTypeAdmin,
		Category: model.CategoryAdmin,
	},
	{
		Code:     "user_management",
		Label:    "User Management",
		Icon:     "user-cog",
		Type:     model.ModuleTypeAdmin,
		Category: model.CategoryAdmin,
	},
	{
		Code:     "role_settings",
		Label:    "Role Settings",
		Icon:     "sliders",
		Type:     model.ModuleTypeAdmin,
		Category: model.CategoryAdmin,
	},
}

var catalogIndex = func() map[string]*model.Module {
	idx := make(map[string]*model.Module, len(Catalog))
	for i := range Catalog {
		idx[Catalog[i].Code] = &Catalog[i]
	}
	return idx
}()

// Lookup returns the module with the given code, if it exists.
func Lookup(code string) (*model.Module, bool) {
	m, ok := catalogIndex[code]
	return m, ok
}

// Exists reports whether a module code is part of the registry.
func Exists(code string) bool {
	_, ok := catalogIndex[code]
	return ok
}

// ModulesFor returns the registry modules a role is entitled to see,
// in catalog order.
func ModulesFor(role model.Role) []model.Module {
	var out []model.Module
	for _, m := range Catalog {
		if m.VisibleTo(role) {
			out = append(out, m)
		}
	}
	return out
}

// FilterKnown drops module codes that are not in the registry,
// preserving order. Dangling references are invisible, never errors.
func FilterKnown(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if Exists(c) {
			out = append(out, c)
		}
	}
	return out
}
