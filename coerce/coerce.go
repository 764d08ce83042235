// Package coerce normalizes loosely typed content fields, as decoded by
// encoding/json into any, into render-ready values. Every function is total:
// nil, wrong-typed and empty inputs produce the zero value instead of an error.
package coerce

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// String returns v as text. Strings pass through, numbers and booleans are
// formatted, anything else yields "".
func String(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// Int returns v as a whole number. Fractional numbers and non-numeric values
// yield 0; numeric strings are parsed.
func Int(v any) int {
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) || math.IsNaN(t) {
			return 0
		}
		return int(t)
	case int:
		return t
	case int64:
		return int(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n)
		}
		return 0
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// Float returns v as a float64, parsing numeric strings.
func Float(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		f, _ := t.Float64()
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// List returns v when it is a sequence, nil otherwise.
func List(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case []map[string]any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = t[i]
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i := range t {
			out[i] = t[i]
		}
		return out
	default:
		return nil
	}
}

// Map returns v when it is a mapping, nil otherwise.
func Map(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// Field returns String(m[key]) for mappings and "" for anything else.
func Field(v any, key string) string {
	m := Map(v)
	if m == nil {
		return ""
	}
	return String(m[key])
}

// Media resolves a media reference: a bare URL string, or a mapping exposing
// a string url field.
func Media(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		if u, ok := t["url"].(string); ok {
			return u
		}
	}
	return ""
}

// Strings normalizes a list whose elements are either strings or mappings
// carrying the text under field. A non-list or empty list yields nil.
func Strings(v any, field string) []string {
	items := List(v)
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
			continue
		}
		out = append(out, Field(item, field))
	}
	return out
}

// TextOrList handles fields that arrive either as a bare string or as a
// sequence. A non-empty sequence is returned as items; otherwise the value is
// treated as optional text.
func TextOrList(v any) (items []any, text string) {
	if l := List(v); len(l) > 0 {
		return l, ""
	}
	return nil, String(v)
}

// FirstNonEmpty returns the first non-empty value.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
