// Package models defines data structures shared across the service.
package models

import "strings"

// Performer is one upstream record. The upstream schema drifts between
// providers, so the record stays an untyped bag of fields and callers go
// through the typed accessors below instead of assuming a fixed shape.
type Performer map[string]any

// Str returns the named field when it holds a string, otherwise "".
func (p Performer) Str(key string) string {
	if p == nil {
		return ""
	}
	s, _ := p[key].(string)
	return s
}

// ItemID returns the trimmed unique identifier, or "" when absent.
func (p Performer) ItemID() string {
	return strings.TrimSpace(p.Str("itemId"))
}

// DisplayName returns the cleaned name when present, falling back to the
// raw name field.
func (p Performer) DisplayName() string {
	if s := p.Str("nameClean"); s != "" {
		return s
	}
	return p.Str("name")
}

// GenderRaw returns the first non-empty gender field, preferring the nested
// characteristic block over the flat fields.
func (p Performer) GenderRaw() string {
	if p == nil {
		return ""
	}
	if ch, ok := p["characteristic"].(map[string]any); ok {
		if s, _ := ch["genderCode"].(string); s != "" {
			return s
		}
		if s, _ := ch["gender"].(string); s != "" {
			return s
		}
	}
	if s := p.Str("genderCode"); s != "" {
		return s
	}
	return p.Str("gender")
}

// LiveFlag reports whether the upstream live flag is truthy. Providers send
// it either as a boolean or as the string "true".
func (p Performer) LiveFlag() bool {
	if p == nil {
		return false
	}
	switch v := p["live"].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	}
	return false
}

// HasAnyURL reports whether any of the named fields holds a non-empty string.
func (p Performer) HasAnyURL(keys ...string) bool {
	for _, k := range keys {
		if p.Str(k) != "" {
			return true
		}
	}
	return false
}

// StringList returns the named field as a list of non-empty strings.
// Non-array and non-string elements are skipped.
func (p Performer) StringList(key string) []string {
	if p == nil {
		return nil
	}
	arr, ok := p[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
