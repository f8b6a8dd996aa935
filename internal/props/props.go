// Package props provides the property storage attached to workspaces,
// projects and project items.
//
// A Set is an ordered collection of string key/value pairs. Insertion order
// is preserved so documents round-trip without reshuffling, and keys are
// unique within a set.
package props

import (
	"maps"
	"slices"
)

// Set is an ordered string key/value store.
// The zero value is an empty, usable set.
type Set struct {
	keys   []string
	values map[string]string
}

// New creates an empty property set.
func New() *Set {
	return &Set{values: make(map[string]string)}
}

// Len returns the number of properties.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Get returns the value for key and whether it was present.
func (s *Set) Get(key string) (string, bool) {
	if s == nil || s.values == nil {
		return "", false
	}
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key. It reports whether the set changed.
func (s *Set) Set(key, value string) bool {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	old, ok := s.values[key]
	if ok && old == value {
		return false
	}
	if !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
	return true
}

// Delete removes key. It reports whether the key was present.
func (s *Set) Delete(key string) bool {
	if s == nil || s.values == nil {
		return false
	}
	if _, ok := s.values[key]; !ok {
		return false
	}
	delete(s.values, key)
	s.keys = slices.DeleteFunc(s.keys, func(k string) bool { return k == key })
	return true
}

// Clear removes every property.
func (s *Set) Clear() {
	s.keys = nil
	s.values = make(map[string]string)
}

// Keys returns the keys in insertion order.
func (s *Set) Keys() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.keys)
}

// Clone returns an independent copy of the set.
func (s *Set) Clone() *Set {
	out := New()
	if s == nil {
		return out
	}
	out.keys = slices.Clone(s.keys)
	maps.Copy(out.values, s.values)
	return out
}

// Equal reports whether both sets hold the same keys and values.
// Order is not significant.
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, k := range s.Keys() {
		v, _ := s.Get(k)
		ov, ok := other.Get(k)
		if !ok || ov != v {
			return false
		}
	}
	return true
}
