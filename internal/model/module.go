package model

// ModuleType determines which roles can see a module at all.
type ModuleType string

const (
	ModuleTypeUniversal ModuleType = "universal"
	ModuleTypeRole      ModuleType = "role_specific"
	ModuleTypeAdmin     ModuleType = "admin_only"
)

// ModuleCategory is the federation-level grouping of a module.
// Foundation modules can never be disabled.
type ModuleCategory string

const (
	CategoryFoundation ModuleCategory = "foundation"
	CategoryCommerce   ModuleCategory = "commerce"
	CategoryOps        ModuleCategory = "ops"
	CategorySport      ModuleCategory = "sport"
	CategoryAdmin      ModuleCategory = "admin"
	CategoryAthlete    ModuleCategory = "athlete"
)

// SubModule is a finer-grained toggle nested inside a module, identified
// by a code unique within its parent.
type SubModule struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// Module is a named feature unit gating one area of the application.
type Module struct {
	Code        string         `json:"code"`
	Label       string         `json:"label"`
	Icon        string         `json:"icon"`
	Type        ModuleType     `json:"type"`
	Category    ModuleCategory `json:"category"`
	TargetRoles []Role         `json:"target_roles,omitempty"`
	SubModules  []SubModule    `json:"sub_modules,omitempty"`
}

// IsFoundation reports whether the module belongs to the foundation
// category and is therefore locked on.
func (m *Module) IsFoundation() bool {
	return m.Category == CategoryFoundation
}

// VisibleTo reports whether a role is entitled to see this module at
// all, before any enable/disable configuration is applied.
func (m *Module) VisibleTo(role Role) bool {
	switch m.Type {
	case ModuleTypeUniversal:
		return true
	case ModuleTypeAdmin:
		return role == RoleSuperAdmin || role == RoleFederation
	case ModuleTypeRole:
		canonical := role.Canonical()
		for _, t := range m.TargetRoles {
			if t == role || t == canonical {
				return true
			}
		}
	}
	return false
}

// SubModuleCodes returns the codes of every sub-module, in declared order.
func (m *Module) SubModuleCodes() []string {
	if len(m.SubModules) == 0 {
		return nil
	}
	codes := make([]string, len(m.SubModules))
	for i, sm := range m.SubModules {
		codes[i] = sm.Code
	}
	return codes
}

// LayoutType is the rendering style of a custom module.
type LayoutType string

const (
	LayoutCalendar   LayoutType = "calendar"
	LayoutDeck       LayoutType = "deck"
	LayoutTable      LayoutType = "table"
	LayoutGallery    LayoutType = "gallery"
	LayoutDetail     LayoutType = "detail"
	LayoutMap        LayoutType = "map"
	LayoutChart      LayoutType = "chart"
	LayoutDashboard  LayoutType = "dashboard"
	LayoutForm       LayoutType = "form"
	LayoutOnboarding LayoutType = "onboarding"
	LayoutCard       LayoutType = "card"
)

var validLayouts = map[LayoutType]struct{}{
	LayoutCalendar: {}, LayoutDeck: {}, LayoutTable: {}, LayoutGallery: {},
	LayoutDetail: {}, LayoutMap: {}, LayoutChart: {}, LayoutDashboard: {},
	LayoutForm: {}, LayoutOnboarding: {}, LayoutCard: {},
}

// IsValid reports whether the layout type is one of the fixed set.
func (l LayoutType) IsValid() bool {
	_, ok := validLayouts[l]
	return ok
}

// CustomModule is an organization/role-defined module that is not part
// of the static registry. Created through the two-step wizard (choose
// layout type, then configure), persisted per role.
type CustomModule struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Label      string     `json:"label"`
	Icon       string     `json:"icon"`
	Layout     LayoutType `json:"layout"`
	DataSource string     `json:"data_source"`
	Visible    bool       `json:"visible"`
	OrderIndex int        `json:"order_index"`
}
