package model

import (
	"time"

	"github.com/google/uuid"
)

// enabledFeaturesKey is the config blob key gating sub-modules.
// Its absence means every sub-module is enabled (legacy default-on);
// an empty list means every sub-module is disabled. The two states are
// never conflated.
const enabledFeaturesKey = "enabled_features"

// FeatureGate is the effective sub-module gating of one module config.
// It is either unrestricted (no enabled_features key) or an explicit,
// possibly empty, set of enabled sub-module codes.
type FeatureGate struct {
	restricted bool
	features   map[string]struct{}
}

// UnrestrictedGate returns the gate meaning "all sub-modules enabled".
func UnrestrictedGate() FeatureGate {
	return FeatureGate{}
}

// ExplicitGate returns a gate enabling exactly the given codes.
func ExplicitGate(codes []string) FeatureGate {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return FeatureGate{restricted: true, features: set}
}

// GateFromConfig derives the gate from a config blob.
func GateFromConfig(cfg JSONBlob) FeatureGate {
	codes, ok := cfg.StringSlice(enabledFeaturesKey)
	if !ok {
		return UnrestrictedGate()
	}
	return ExplicitGate(codes)
}

// IsRestricted reports whether the gate carries an explicit set.
func (g FeatureGate) IsRestricted() bool {
	return g.restricted
}

// Enabled reports whether a sub-module code passes the gate.
func (g FeatureGate) Enabled(code string) bool {
	if !g.restricted {
		return true
	}
	_, ok := g.features[code]
	return ok
}

// EnabledCodes returns the explicit set, or nil when unrestricted.
func (g FeatureGate) EnabledCodes() []string {
	if !g.restricted {
		return nil
	}
	out := make([]string, 0, len(g.features))
	for c := range g.features {
		out = append(out, c)
	}
	return out
}

// Toggle flips one sub-module code. An unrestricted gate is first
// materialized as the full set of the module's sub-module codes, then
// the toggled code is removed or added.
func (g FeatureGate) Toggle(code string, allCodes []string) FeatureGate {
	var set map[string]struct{}
	if g.restricted {
		set = make(map[string]struct{}, len(g.features))
		for c := range g.features {
			set[c] = struct{}{}
		}
	} else {
		set = make(map[string]struct{}, len(allCodes))
		for _, c := range allCodes {
			set[c] = struct{}{}
		}
	}

	if _, enabled := set[code]; enabled {
		delete(set, code)
	} else {
		set[code] = struct{}{}
	}

	return FeatureGate{restricted: true, features: set}
}

// ApplyTo writes the gate back into a config blob, preserving all other
// keys. An unrestricted gate removes the enabled_features key.
func (g FeatureGate) ApplyTo(cfg JSONBlob) JSONBlob {
	out := cfg.Clone()
	if !g.restricted {
		delete(out, enabledFeaturesKey)
		return out
	}
	out[enabledFeaturesKey] = g.EnabledCodes()
	return out
}

// RoleModuleConfig is the persisted enable/config state for one
// (role, module) pair.
type RoleModuleConfig struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Role      Role      `json:"role" db:"role"`
	Module    string    `json:"module" db:"module"`
	IsEnabled bool      `json:"is_enabled" db:"is_enabled"`
	Config    JSONBlob  `json:"config" db:"config"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// OrgModuleConfig is the organization-scoped override layer, same shape
// and foundation-lock rules as RoleModuleConfig but keyed by org.
type OrgModuleConfig struct {
	ID             uuid.UUID `json:"id" db:"id"`
	OrganizationID uuid.UUID `json:"organization_id" db:"organization_id"`
	Module         string    `json:"module" db:"module"`
	IsEnabled      bool      `json:"is_enabled" db:"is_enabled"`
	Config         JSONBlob  `json:"config" db:"config"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// RoleModule is a registry module annotated with its resolved
// enable/config state for one role, the shape served to clients.
type RoleModule struct {
	Module
	IsEnabled         bool     `json:"is_enabled"`
	Config            JSONBlob `json:"config,omitempty"`
	EnabledSubModules []string `json:"enabled_sub_modules,omitempty"`
}
