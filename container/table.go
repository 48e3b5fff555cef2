package container

import (
	"unsafe"

	"github.com/sndels/wheels-sub000/allocator"
)

// metadata byte values, per spec.md §6: 0x80 Empty, 0xFF Deleted, 0x00-0x7F
// occupied with the low 7 bits holding H2.
const (
	ctrlEmpty   byte = 0x80
	ctrlDeleted byte = 0xFF
)

const minCapacity = 32

// slot is one key/value pair storage location. Set uses slot[K, struct{}];
// Map uses slot[K, V].
type slot[K comparable, V any] struct {
	key   K
	value V
}

func slotSize[K comparable, V any]() uintptr {
	var zero slot[K, V]
	return unsafe.Sizeof(zero)
}

// table is the open-addressed hash table shared by Set and Map: one
// allocation for keys/values and a parallel metadata-byte array, linear
// probing, and tombstone-based deletion, exactly the algorithm in
// original_source/include/wheels/containers/hash_map.hpp. Both arrays are
// carved from alloc, the same way Array[T] carves its own storage -- the
// table has no more claim to plain Go-heap memory than Array does.
type table[K comparable, V any] struct {
	alloc  allocator.Allocator
	hasher Hasher[K]

	slotsData unsafe.Pointer
	slots     []slot[K, V]

	ctrlData unsafe.Pointer
	ctrl     []byte

	size     int
	capacity int
}

func newTable[K comparable, V any](alloc allocator.Allocator, hasher Hasher[K], initialCapacity int) *table[K, V] {
	if initialCapacity < minCapacity {
		initialCapacity = minCapacity
	}
	capacity := int(allocator.RoundUpPowerOfTwo(uint64(initialCapacity)))

	t := &table[K, V]{alloc: alloc, hasher: hasher}
	t.allocateArrays(capacity)
	return t
}

func (t *table[K, V]) h1(hash uint64) int  { return int(hash >> 7) }
func (t *table[K, V]) h2(hash uint64) byte { return byte(hash & 0x7F) }

// allocateArrays carves fresh slots/ctrl storage of capacity from t.alloc
// and installs it, marking every control byte Empty. It does not touch
// whatever arrays t currently holds -- the caller owns freeing those.
func (t *table[K, V]) allocateArrays(capacity int) {
	slotsData := t.alloc.Allocate(uintptr(capacity) * slotSize[K, V]())
	if slotsData == nil {
		panic("container: table allocator exhausted allocating slot storage")
	}
	ctrlData := t.alloc.Allocate(uintptr(capacity))
	if ctrlData == nil {
		panic("container: table allocator exhausted allocating metadata storage")
	}

	t.slotsData = slotsData
	t.slots = unsafe.Slice((*slot[K, V])(slotsData), capacity)
	t.ctrlData = ctrlData
	t.ctrl = unsafe.Slice((*byte)(ctrlData), capacity)
	t.capacity = capacity

	for i := range t.ctrl {
		t.ctrl[i] = ctrlEmpty
	}
}

// growTo replaces the table's backing arrays with ones sized to capacity,
// moving every live entry across and freeing the old arrays through
// t.alloc, matching original_source/include/wheels/containers/hash_map.hpp's
// grow() (m_allocator.allocate/deallocate for both the data and metadata
// arrays).
func (t *table[K, V]) growTo(capacity int) {
	oldSlots := t.slots
	oldCtrl := t.ctrl
	oldSlotsData := t.slotsData
	oldCtrlData := t.ctrlData

	t.allocateArrays(capacity)
	t.size = 0

	for i, c := range oldCtrl {
		if c == ctrlEmpty || c == ctrlDeleted {
			continue
		}
		moved := allocator.DestroyAt[slot[K, V]](unsafe.Pointer(&oldSlots[i]))
		t.insertSlot(moved.key, moved.value)
	}

	t.alloc.Deallocate(oldSlotsData)
	t.alloc.Deallocate(oldCtrlData)
}

func (t *table[K, V]) isOverMaxLoad() bool {
	return 16*(t.size+1) > 15*t.capacity
}

// find returns the index of the slot holding key and true, or an undefined
// index and false if key is absent. Probing stops definitively at the first
// Empty slot, or after a full cycle back to the start.
func (t *table[K, V]) find(key K) (int, bool) {
	hash := t.hasher.Hash(key)
	start := t.h1(hash) & (t.capacity - 1)
	h2 := t.h2(hash)

	i := start
	for {
		c := t.ctrl[i]
		if c == ctrlEmpty {
			return 0, false
		}
		if c == h2 && t.slots[i].key == key {
			return i, true
		}
		i = (i + 1) & (t.capacity - 1)
		if i == start {
			return 0, false
		}
	}
}

// insertSlot places key/value, growing first if the load factor demands it,
// and returns the slot index and whether the key was newly inserted (false
// means an existing slot's value was overwritten).
func (t *table[K, V]) insertSlot(key K, value V) (int, bool) {
	if t.isOverMaxLoad() {
		t.growTo(t.capacity * 2)
	}

	hash := t.hasher.Hash(key)
	start := t.h1(hash) & (t.capacity - 1)
	h2 := t.h2(hash)

	// Probe past Deleted slots so an existing key further along is found and
	// overwritten; a new key goes into the first Deleted or Empty slot seen.
	target := -1
	i := start
	for {
		c := t.ctrl[i]
		if c == h2 && t.slots[i].key == key {
			t.slots[i].value = value
			return i, false
		}
		if target < 0 && (c == ctrlEmpty || c == ctrlDeleted) {
			target = i
		}
		i = (i + 1) & (t.capacity - 1)
		if c == ctrlEmpty || i == start {
			break
		}
	}

	allocator.ConstructAt(unsafe.Pointer(&t.slots[target]), slot[K, V]{key: key, value: value})
	t.ctrl[target] = h2
	t.size++
	return target, true
}

// remove deletes key if present, returning the removed value and true.
func (t *table[K, V]) remove(key K) (V, bool) {
	i, ok := t.find(key)
	if !ok {
		var zero V
		return zero, false
	}

	removed := allocator.DestroyAt[slot[K, V]](unsafe.Pointer(&t.slots[i]))
	t.ctrl[i] = ctrlDeleted
	t.size--

	if t.size == 0 {
		t.clear()
	}

	return removed.value, true
}

// clear destroys every occupied slot and resets all metadata to Empty.
func (t *table[K, V]) clear() {
	if t.size > 0 {
		for i, c := range t.ctrl {
			if c != ctrlEmpty && c != ctrlDeleted {
				allocator.DestroyAt[slot[K, V]](unsafe.Pointer(&t.slots[i]))
			}
		}
	}
	for i := range t.ctrl {
		t.ctrl[i] = ctrlEmpty
	}
	t.size = 0
}

// close destroys every occupied slot and releases the backing arrays. The
// table must not be used afterwards.
func (t *table[K, V]) close() {
	t.clear()
	if t.slotsData != nil {
		t.alloc.Deallocate(t.slotsData)
		t.slotsData = nil
		t.slots = nil
	}
	if t.ctrlData != nil {
		t.alloc.Deallocate(t.ctrlData)
		t.ctrlData = nil
		t.ctrl = nil
	}
	t.capacity = 0
}

// iterator walks occupied slots in storage order. Iteration order is not a
// contract, per spec.md §4.H.
type iterator[K comparable, V any] struct {
	t   *table[K, V]
	pos int
}

func (t *table[K, V]) begin() iterator[K, V] {
	it := iterator[K, V]{t: t, pos: 0}
	it.advanceToOccupied()
	return it
}

func (it *iterator[K, V]) end() bool { return it.pos >= it.t.capacity }

func (it *iterator[K, V]) advanceToOccupied() {
	for it.pos < it.t.capacity {
		c := it.t.ctrl[it.pos]
		if c != ctrlEmpty && c != ctrlDeleted {
			return
		}
		it.pos++
	}
}

func (it *iterator[K, V]) next() {
	it.pos++
	it.advanceToOccupied()
}

func (it *iterator[K, V]) key() K   { return it.t.slots[it.pos].key }
func (it *iterator[K, V]) value() V { return it.t.slots[it.pos].value }
