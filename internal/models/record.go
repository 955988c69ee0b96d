package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Record is one job listing as returned by the search API, merged with the
// optional detail lookup. The field set is open: sources disagree on schema,
// so unknown fields pass through untouched. The single reserved field is
// scraped_at, stamped once when the record leaves the pipeline.
type Record map[string]any

// FlatRecord is a flattened projection of a Record for tabular export.
// It carries no map- or slice-valued fields.
type FlatRecord map[string]any

// Clone returns a shallow copy. Nested values are shared; callers that need
// to rewrite nested structure build a new record instead (see normalize).
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge unions base and overlay into a new record, overlay winning on key
// collision. Neither input is mutated.
func Merge(base, overlay Record) Record {
	out := make(Record, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}

// StringField returns the field as a non-empty string.
func (r Record) StringField(key string) (string, bool) {
	s, ok := r[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// FloatField coerces the field to a float64. JSON numbers arrive as float64,
// but salary fields in the wild also show up as strings and ints.
func (r Record) FloatField(key string) (float64, bool) {
	v, ok := r[key]
	if !ok {
		return 0, false
	}
	return AsFloat(v)
}

// BoolField reports whether the field holds a truthy value. Missing fields
// are false.
func (r Record) BoolField(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "1"
	case float64:
		return v != 0
	case int:
		return v != 0
	default:
		return false
	}
}

// AsFloat coerces scalar values to float64, parsing numeric strings.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func (r Record) MarshalBinary() ([]byte, error) {
	return json.Marshal(r)
}

func (r *Record) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, r)
}
