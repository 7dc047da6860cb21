package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateAbsentKeyMeansAllEnabled(t *testing.T) {
	g := GateFromConfig(JSONBlob{"theme": "dark"})
	assert.False(t, g.IsRestricted())
	assert.True(t, g.Enabled("anything"))
}

func TestGateEmptyListMeansAllDisabled(t *testing.T) {
	g := GateFromConfig(JSONBlob{"enabled_features": []interface{}{}})
	assert.True(t, g.IsRestricted())
	assert.False(t, g.Enabled("anything"))
}

func TestGateExplicitSet(t *testing.T) {
	g := GateFromConfig(JSONBlob{"enabled_features": []interface{}{"practice", "history"}})
	assert.True(t, g.Enabled("practice"))
	assert.True(t, g.Enabled("history"))
	assert.False(t, g.Enabled("competition"))
}

func TestGateStringifiedList(t *testing.T) {
	// Legacy rows store the list as a JSON-encoded string.
	g := GateFromConfig(JSONBlob{"enabled_features": `["practice"]`})
	assert.True(t, g.IsRestricted())
	assert.True(t, g.Enabled("practice"))
	assert.False(t, g.Enabled("competition"))

	// A malformed value reads as absence of the key.
	g = GateFromConfig(JSONBlob{"enabled_features": "practice,competition"})
	assert.False(t, g.IsRestricted())
}

func TestToggleMaterializesFullSetFirst(t *testing.T) {
	all := []string{"a", "b", "c"}

	g := UnrestrictedGate().Toggle("b", all)
	require.True(t, g.IsRestricted())
	assert.True(t, g.Enabled("a"))
	assert.False(t, g.Enabled("b"))
	assert.True(t, g.Enabled("c"))
}

func TestToggleRoundTripRestoresMembership(t *testing.T) {
	all := []string{"a", "b", "c"}

	g := UnrestrictedGate().Toggle("b", all).Toggle("b", all)
	assert.ElementsMatch(t, all, g.EnabledCodes())
}

func TestApplyToPreservesOtherKeys(t *testing.T) {
	cfg := JSONBlob{"theme": "dark", "enabled_features": []interface{}{"a", "b"}}

	g := GateFromConfig(cfg).Toggle("a", []string{"a", "b"})
	out := g.ApplyTo(cfg)

	assert.Equal(t, "dark", out["theme"])
	codes, ok := out.StringSlice("enabled_features")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"b"}, codes)

	// Source config untouched.
	orig, _ := cfg.StringSlice("enabled_features")
	assert.ElementsMatch(t, []string{"a", "b"}, orig)
}

func TestApplyToUnrestrictedRemovesKey(t *testing.T) {
	cfg := JSONBlob{"enabled_features": []interface{}{"a"}, "theme": "light"}
	out := UnrestrictedGate().ApplyTo(cfg)

	_, ok := out["enabled_features"]
	assert.False(t, ok)
	assert.Equal(t, "light", out["theme"])
}
