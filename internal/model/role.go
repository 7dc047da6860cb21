package model

import "strings"

// Role identifies a user's function within the federation.
type Role string

const (
	RoleSuperAdmin     Role = "super_admin"
	RoleFederation     Role = "federation"
	RoleClub           Role = "club"
	RoleClubOwner      Role = "club_owner"
	RoleSchool         Role = "school"
	RoleAthlete        Role = "athlete"
	RoleParent         Role = "parent"
	RoleCoach          Role = "coach"
	RoleJudge          Role = "judge"
	RoleEventOrganizer Role = "event_organizer"
	RoleSupplier       Role = "supplier"
	RoleManpower       Role = "manpower"
)

// AllRoles lists every role the system knows about, in display order.
var AllRoles = []Role{
	RoleSuperAdmin,
	RoleFederation,
	RoleClub,
	RoleClubOwner,
	RoleSchool,
	RoleAthlete,
	RoleParent,
	RoleCoach,
	RoleJudge,
	RoleEventOrganizer,
	RoleSupplier,
	RoleManpower,
}

var validRoles = func() map[Role]struct{} {
	m := make(map[Role]struct{}, len(AllRoles))
	for _, r := range AllRoles {
		m[r] = struct{}{}
	}
	return m
}()

// ParseRole normalizes a role string. The second return value reports
// whether the role is known.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	_, ok := validRoles[r]
	return r, ok
}

// IsValid reports whether the role is one of the enumerated roles.
func (r Role) IsValid() bool {
	_, ok := validRoles[r]
	return ok
}

// Canonical resolves role aliases when consulting default tables.
// club_owner shares the club defaults but keeps its own persisted
// overrides.
func (r Role) Canonical() Role {
	if r == RoleClubOwner {
		return RoleClub
	}
	return r
}

func (r Role) String() string {
	return string(r)
}
