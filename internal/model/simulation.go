package model

import "time"

// SimulationMode distinguishes role-only simulation from simulation of
// a specific user. The two modes are mutually exclusive: starting one
// replaces the other.
type SimulationMode string

const (
	SimulationModeRole SimulationMode = "role"
	SimulationModeUser SimulationMode = "user"
)

// SimulationState is a super-admin's active impersonation session.
// When TargetUser resolved successfully its role overrides Role for
// display; when the lookup failed, Role carries the requested label and
// Degraded is set.
type SimulationState struct {
	AdminUserID string         `json:"admin_user_id"`
	Mode        SimulationMode `json:"mode"`
	Role        Role           `json:"role"`
	TargetID    string         `json:"target_id,omitempty"`
	TargetUser  *User          `json:"target_user,omitempty"`
	Degraded    bool           `json:"degraded,omitempty"`
	StartedAt   time.Time      `json:"started_at"`
}

// EffectiveRole is the role downstream consumers must use while the
// simulation is active.
func (s *SimulationState) EffectiveRole() Role {
	if s.TargetUser != nil {
		return s.TargetUser.Role
	}
	return s.Role
}
