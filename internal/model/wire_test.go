package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListDecodesArray(t *testing.T) {
	var l StringList
	require.NoError(t, json.Unmarshal([]byte(`["coach","athlete"]`), &l))
	assert.Equal(t, StringList{"coach", "athlete"}, l)
}

func TestStringListDecodesStringifiedArray(t *testing.T) {
	var l StringList
	require.NoError(t, json.Unmarshal([]byte(`"[\"coach\",\"athlete\"]"`), &l))
	assert.Equal(t, StringList{"coach", "athlete"}, l)
}

func TestStringListMalformedYieldsEmpty(t *testing.T) {
	var l StringList
	require.NoError(t, json.Unmarshal([]byte(`"not json at all"`), &l))
	assert.Empty(t, l)

	require.NoError(t, json.Unmarshal([]byte(`42`), &l))
	assert.Empty(t, l)
}

func TestJSONBlobScanMalformed(t *testing.T) {
	var b JSONBlob
	require.NoError(t, b.Scan([]byte(`{{{broken`)))
	assert.NotNil(t, b)
	assert.Empty(t, b)
}

func TestJSONBlobScanNull(t *testing.T) {
	var b JSONBlob
	require.NoError(t, b.Scan(nil))
	assert.NotNil(t, b)
	assert.Empty(t, b)
}

func TestJSONBlobDoubleEncoded(t *testing.T) {
	var b JSONBlob
	require.NoError(t, json.Unmarshal([]byte(`"{\"enabled_features\":[\"a\"]}"`), &b))
	codes, ok := b.StringSlice("enabled_features")
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, codes)
}

func TestJSONBlobStringSlice(t *testing.T) {
	b := JSONBlob{
		"mixed":   []interface{}{"a", 1},
		"strings": []interface{}{"a", "b"},
		"scalar":  "x",
	}

	codes, ok := b.StringSlice("strings")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, codes)

	_, ok = b.StringSlice("mixed")
	assert.False(t, ok)

	_, ok = b.StringSlice("scalar")
	assert.False(t, ok)

	_, ok = b.StringSlice("missing")
	assert.False(t, ok)
}

func TestJSONBlobStringSliceStringified(t *testing.T) {
	b := JSONBlob{
		"encoded": `["practice","history"]`,
		"empty":   `[]`,
		"garbage": `{"not":"a list"}`,
	}

	codes, ok := b.StringSlice("encoded")
	assert.True(t, ok)
	assert.Equal(t, []string{"practice", "history"}, codes)

	// An encoded empty list is an explicit empty set, not absence.
	codes, ok = b.StringSlice("empty")
	assert.True(t, ok)
	assert.Empty(t, codes)

	_, ok = b.StringSlice("garbage")
	assert.False(t, ok)
}

func TestJSONBlobCloneIsolation(t *testing.T) {
	b := JSONBlob{"k": "v"}
	c := b.Clone()
	c["k"] = "changed"
	c["new"] = true

	assert.Equal(t, "v", b["k"])
	_, exists := b["new"]
	assert.False(t, exists)
}
