// Package metadata implements the ordered key/value maps displayed next to a
// projection (patient, examination, image and ROI fields) and the merge
// semantics shared by all of them: existing keys are overwritten in place,
// new keys are appended, and iteration order is insertion order.
package metadata

import (
	"fmt"
	"strings"
)

// Map is an ordered key→string collection. The zero value is not usable;
// create instances with NewMap or Pairs.
type Map struct {
	keys   []string
	values map[string]string
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]string)}
}

// Pairs builds a Map from alternating key/value arguments, preserving the
// argument order. It panics when given an odd number of arguments; it is
// meant for literal construction of update payloads.
func Pairs(kv ...string) *Map {
	if len(kv)%2 != 0 {
		panic(fmt.Sprintf("metadata.Pairs: odd argument count %d", len(kv)))
	}
	m := NewMap()
	for i := 0; i < len(kv); i += 2 {
		m.Set(kv[i], kv[i+1])
	}
	return m
}

// Set inserts key with value, or overwrites the value if key is already
// present. Insertion order of pre-existing keys is unaffected.
func (m *Map) Set(key, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key and whether the key is present.
func (m *Map) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (m *Map) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.keys)
}

// Merge applies every entry of partial to m in partial's order, overwriting
// existing keys and appending new ones, and returns m. A nil partial is a
// no-op.
func (m *Map) Merge(partial *Map) *Map {
	if partial == nil {
		return m
	}
	for _, k := range partial.keys {
		m.Set(k, partial.values[k])
	}
	return m
}

// Clone returns an independent copy of m. Callers handing maps to a
// presentation layer should hand out clones so the originals stay owned by
// their projection.
func (m *Map) Clone() *Map {
	c := &Map{
		keys:   make([]string, len(m.keys)),
		values: make(map[string]string, len(m.values)),
	}
	copy(c.keys, m.keys)
	for k, v := range m.values {
		c.values[k] = v
	}
	return c
}

// String renders the map as "key: value" lines in insertion order.
func (m *Map) String() string {
	var b strings.Builder
	for i, k := range m.keys {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(m.values[k])
	}
	return b.String()
}
