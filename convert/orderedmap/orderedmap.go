package orderedmap

import (
	"encoding/json"

	"github.com/dolthub/swiss"
)

// Map is an insertion-ordered dictionary: O(1) lookup via a swiss table,
// with iteration/marshaling in first-seen key order, matching Python's
// dict semantics that the converter's algorithm relies on for "first
// definition wins" and stable emission order.
type Map[K comparable, V any] struct {
	keys   []K
	values *swiss.Map[K, V]
}

// New returns an empty Map sized for at least capacity entries.
func New[K comparable, V any](capacity int) *Map[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &Map[K, V]{values: swiss.NewMap[K, V](uint32(capacity))}
}

// Has reports whether k has been Set.
func (m *Map[K, V]) Has(k K) bool {
	_, ok := m.values.Get(k)
	return ok
}

// Get returns k's value and whether it was present.
func (m *Map[K, V]) Get(k K) (V, bool) {
	return m.values.Get(k)
}

// Set inserts or overwrites k's value, recording k's position on first
// insertion only.
func (m *Map[K, V]) Set(k K, v V) {
	if !m.Has(k) {
		m.keys = append(m.keys, k)
	}
	m.values.Put(k, v)
}

// Keys returns keys in insertion order.
func (m *Map[K, V]) Keys() []K { return m.keys }

// Values returns values in insertion order.
func (m *Map[K, V]) Values() []V {
	vs := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		v, _ := m.values.Get(k)
		vs = append(vs, v)
	}
	return vs
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return len(m.keys) }

// Reorder replaces the iteration order with newKeys, which must be a
// permutation of the current keys. Used by the converter's
// non-Sequence/Select-first post-processing pass.
func (m *Map[K, V]) Reorder(newKeys []K) { m.keys = newKeys }

// MarshalJSON emits values as a JSON array in insertion order, the shape
// the converter's actions output takes on the wire.
func (m *Map[K, V]) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Values())
}
