package container

import "github.com/sndels/wheels-sub000/allocator"

// Set is an open-addressed hash set over K, sharing its probing and
// tombstone logic with Map through the internal table engine.
type Set[K comparable] struct {
	t *table[K, struct{}]
}

// NewSet constructs a Set backed by alloc, reserving room for at least
// initialCapacity elements (clamped to 32, rounded up to a power of two).
// Keys are hashed with DefaultHasher[K].
func NewSet[K comparable](alloc allocator.Allocator, initialCapacity int) *Set[K] {
	return NewSetWithHasher[K](alloc, initialCapacity, DefaultHasher[K]())
}

// NewSetWithHasher is NewSet with an explicit Hasher, for key types
// DefaultHasher cannot hash meaningfully from raw bytes (e.g. a struct
// holding a string, whose raw bytes are the string header rather than its
// contents).
func NewSetWithHasher[K comparable](alloc allocator.Allocator, initialCapacity int, hasher Hasher[K]) *Set[K] {
	return &Set[K]{t: newTable[K, struct{}](alloc, hasher, initialCapacity)}
}

// Len returns the number of elements currently in the set.
func (s *Set[K]) Len() int { return s.t.size }

// Contains reports whether key is a member of the set.
func (s *Set[K]) Contains(key K) bool {
	_, ok := s.t.find(key)
	return ok
}

// Insert adds key to the set. Inserting a key already present is a no-op.
// Returns true if key was newly added.
func (s *Set[K]) Insert(key K) bool {
	_, inserted := s.t.insertSlot(key, struct{}{})
	return inserted
}

// Remove deletes key from the set if present, returning whether it was.
func (s *Set[K]) Remove(key K) bool {
	_, ok := s.t.remove(key)
	return ok
}

// Clear removes every element, retaining the current capacity.
func (s *Set[K]) Clear() { s.t.clear() }

// Close destroys every element and releases the set's backing storage back
// to its allocator. The set must not be used afterwards.
func (s *Set[K]) Close() { s.t.close() }

// Take transfers this set's storage to a freshly returned Set, leaving the
// receiver empty, mirroring the C++ original's move constructor/assignment
// (see DESIGN.md's Open Question resolution).
func (s *Set[K]) Take() *Set[K] {
	moved := &Set[K]{t: s.t}
	s.t = newTable[K, struct{}](s.t.alloc, s.t.hasher, minCapacity)
	return moved
}

// SetIterator walks a Set's elements in unspecified order.
type SetIterator[K comparable] struct {
	it iterator[K, struct{}]
}

// Iterate returns an iterator positioned at the set's first element, if
// any.
func (s *Set[K]) Iterate() SetIterator[K] {
	return SetIterator[K]{it: s.t.begin()}
}

// Done reports whether iteration has exhausted the set.
func (it *SetIterator[K]) Done() bool { return it.it.end() }

// Next advances the iterator. Calling Next when Done is a programmer error.
func (it *SetIterator[K]) Next() { it.it.next() }

// Key returns the element at the iterator's current position.
func (it *SetIterator[K]) Key() K { return it.it.key() }
