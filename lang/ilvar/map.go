package ilvar

import "github.com/dolthub/swiss"

// denseThreshold is the highest variable number for which Map still prefers
// its dense slice over the swiss-table fallback. FuzzIL programs commonly
// number variables contiguously from 0, so the dense path covers the common
// case; sparser maps (e.g. per-branch abstract-interpreter states that only
// ever touch a handful of variables out of a much larger program) fall back
// to the hash table instead of allocating a huge mostly-empty slice.
const denseThreshold = 256

// Map is a sparse associative container keyed by Variable, the VariableMap<V>
// of the spec. Iteration order is unspecified and must never be relied upon.
type Map[V any] struct {
	dense    []entry[V] // index i holds the entry for Variable(i), if present
	sparse   *swiss.Map[Variable, V]
	useDense bool
}

type entry[V any] struct {
	present bool
	value   V
}

// NewMap returns an empty Map. sizeHint, if known, is the expected number of
// entries and is used to pick the initial representation.
func NewMap[V any](sizeHint int) *Map[V] {
	if sizeHint <= denseThreshold {
		return &Map[V]{useDense: true}
	}
	return &Map[V]{sparse: swiss.NewMap[Variable, V](uint32(sizeHint))}
}

// Get returns the value associated with v, and whether it was present.
func (m *Map[V]) Get(v Variable) (V, bool) {
	if m.useDense {
		if int(v) < len(m.dense) && m.dense[v].present {
			return m.dense[v].value, true
		}
		var zero V
		return zero, false
	}
	return m.sparse.Get(v)
}

// Has reports whether v is present in the map.
func (m *Map[V]) Has(v Variable) bool {
	_, ok := m.Get(v)
	return ok
}

// Set associates v with value, overwriting any previous association.
func (m *Map[V]) Set(v Variable, value V) {
	if m.useDense {
		if int(v) >= denseThreshold {
			m.spill()
		} else {
			if int(v) >= len(m.dense) {
				grown := make([]entry[V], int(v)+1)
				copy(grown, m.dense)
				m.dense = grown
			}
			m.dense[v] = entry[V]{present: true, value: value}
			return
		}
	}
	m.sparse.Put(v, value)
}

// Delete removes v from the map, if present.
func (m *Map[V]) Delete(v Variable) {
	if m.useDense {
		if int(v) < len(m.dense) {
			m.dense[v] = entry[V]{}
		}
		return
	}
	m.sparse.Delete(v)
}

// Len returns the number of entries in the map.
func (m *Map[V]) Len() int {
	if m.useDense {
		n := 0
		for _, e := range m.dense {
			if e.present {
				n++
			}
		}
		return n
	}
	return m.sparse.Count()
}

// Each calls fn once for every entry. Iteration order is unspecified.
func (m *Map[V]) Each(fn func(Variable, V)) {
	if m.useDense {
		for i, e := range m.dense {
			if e.present {
				fn(Variable(i), e.value)
			}
		}
		return
	}
	m.sparse.Iter(func(k Variable, v V) bool {
		fn(k, v)
		return false
	})
}

// spill migrates a dense map that has outgrown its slice representation to
// the swiss-table backing store.
func (m *Map[V]) spill() {
	sp := swiss.NewMap[Variable, V](len(m.dense))
	for i, e := range m.dense {
		if e.present {
			sp.Put(Variable(i), e.value)
		}
	}
	m.sparse = sp
	m.dense = nil
	m.useDense = false
}

// Clone returns a shallow copy of m; values are copied by assignment.
func (m *Map[V]) Clone() *Map[V] {
	cl := &Map[V]{useDense: m.useDense}
	if m.useDense {
		cl.dense = append([]entry[V](nil), m.dense...)
		return cl
	}
	cl.sparse = swiss.NewMap[Variable, V](m.sparse.Count())
	m.sparse.Iter(func(k Variable, v V) bool {
		cl.sparse.Put(k, v)
		return false
	})
	return cl
}
