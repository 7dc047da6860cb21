package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList decodes a wire field that may arrive either as a JSON
// array or as a JSON-encoded string containing an array. Legacy config
// rows carry both shapes. A payload that cannot be decoded yields an
// empty list, never an error: a malformed list excludes the feature
// rather than crashing the caller.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var direct []string
	if err := json.Unmarshal(data, &direct); err == nil {
		*l = direct
		return nil
	}

	var encoded string
	if err := json.Unmarshal(data, &encoded); err == nil {
		var inner []string
		if err := json.Unmarshal([]byte(encoded), &inner); err == nil {
			*l = inner
			return nil
		}
	}

	*l = nil
	return nil
}

// JSONBlob is an arbitrary JSON configuration object stored in a jsonb
// column. A null or malformed value scans as an empty map.
type JSONBlob map[string]interface{}

func (b JSONBlob) Value() (driver.Value, error) {
	if b == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(b)
}

func (b *JSONBlob) Scan(src interface{}) error {
	if src == nil {
		*b = JSONBlob{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		*b = JSONBlob{}
		return nil
	}
	*b = m
	return nil
}

func (b *JSONBlob) UnmarshalJSON(data []byte) error {
	var direct map[string]interface{}
	if err := json.Unmarshal(data, &direct); err == nil {
		*b = direct
		return nil
	}

	// Doubly encoded config blobs show up in legacy records.
	var encoded string
	if err := json.Unmarshal(data, &encoded); err == nil {
		var inner map[string]interface{}
		if err := json.Unmarshal([]byte(encoded), &inner); err == nil {
			*b = inner
			return nil
		}
	}

	*b = JSONBlob{}
	return nil
}

// Clone returns a shallow copy of the blob, safe for top-level key edits.
func (b JSONBlob) Clone() JSONBlob {
	out := make(JSONBlob, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// StringSlice extracts a []string value stored under key, tolerating
// the []interface{} shape json.Unmarshal produces and the JSON-encoded
// string shape found in legacy rows. Missing or malformed values
// return (nil, false).
func (b JSONBlob) StringSlice(key string) ([]string, bool) {
	raw, ok := b[key]
	if !ok {
		return nil, false
	}
	switch v := raw.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, true
	case string:
		var list StringList
		if err := json.Unmarshal([]byte(v), &list); err != nil || list == nil {
			return nil, false
		}
		return list, true
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}
