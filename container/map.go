package container

import "github.com/sndels/wheels-sub000/allocator"

// Map is an open-addressed hash map from K to V, sharing its probing and
// tombstone logic with Set through the internal table engine.
type Map[K comparable, V any] struct {
	t *table[K, V]
}

// NewMap constructs a Map backed by alloc, reserving room for at least
// initialCapacity entries (clamped to 32, rounded up to a power of two).
// Keys are hashed with DefaultHasher[K].
func NewMap[K comparable, V any](alloc allocator.Allocator, initialCapacity int) *Map[K, V] {
	return NewMapWithHasher[K, V](alloc, initialCapacity, DefaultHasher[K]())
}

// NewMapWithHasher is NewMap with an explicit Hasher.
func NewMapWithHasher[K comparable, V any](alloc allocator.Allocator, initialCapacity int, hasher Hasher[K]) *Map[K, V] {
	return &Map[K, V]{t: newTable[K, V](alloc, hasher, initialCapacity)}
}

// Len returns the number of entries currently in the map.
func (m *Map[K, V]) Len() int { return m.t.size }

// Find returns the value stored for key and true, or the zero value and
// false if key is absent.
func (m *Map[K, V]) Find(key K) (V, bool) {
	i, ok := m.t.find(key)
	if !ok {
		var zero V
		return zero, false
	}
	return m.t.slots[i].value, true
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.t.find(key)
	return ok
}

// Insert stores value under key, overwriting any existing value for that
// key. Returns true if key was newly inserted.
func (m *Map[K, V]) Insert(key K, value V) bool {
	_, inserted := m.t.insertSlot(key, value)
	return inserted
}

// Remove deletes key if present, returning the removed value and true.
func (m *Map[K, V]) Remove(key K) (V, bool) {
	return m.t.remove(key)
}

// Clear removes every entry, retaining the current capacity.
func (m *Map[K, V]) Clear() { m.t.clear() }

// Close destroys every entry and releases the map's backing storage back to
// its allocator. The map must not be used afterwards.
func (m *Map[K, V]) Close() { m.t.close() }

// Take transfers this map's storage to a freshly returned Map, leaving the
// receiver empty, mirroring the C++ original's move constructor/assignment
// (see DESIGN.md's Open Question resolution).
func (m *Map[K, V]) Take() *Map[K, V] {
	moved := &Map[K, V]{t: m.t}
	m.t = newTable[K, V](m.t.alloc, m.t.hasher, minCapacity)
	return moved
}

// MapIterator walks a Map's entries in unspecified order.
type MapIterator[K comparable, V any] struct {
	it iterator[K, V]
}

// Iterate returns an iterator positioned at the map's first entry, if any.
func (m *Map[K, V]) Iterate() MapIterator[K, V] {
	return MapIterator[K, V]{it: m.t.begin()}
}

// Done reports whether iteration has exhausted the map.
func (it *MapIterator[K, V]) Done() bool { return it.it.end() }

// Next advances the iterator. Calling Next when Done is a programmer error.
func (it *MapIterator[K, V]) Next() { it.it.next() }

// Key returns the key at the iterator's current position.
func (it *MapIterator[K, V]) Key() K { return it.it.key() }

// Value returns the value at the iterator's current position.
func (it *MapIterator[K, V]) Value() V { return it.it.value() }
