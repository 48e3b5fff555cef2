package container

import (
	"fmt"
	"unsafe"

	"github.com/sndels/wheels-sub000/allocator"
)

// Array is a dynamic, allocator-backed array of T. Unlike a Go slice, growth
// is explicit: storage comes from the Allocator supplied at construction,
// and every element's destructor runs on every removal path (Clear, Erase,
// EraseSwapLast, Close), matching spec.md §4.G / §5's ownership summary.
//
// Array holds a non-owning reference to its allocator, which must outlive
// it. There is no reallocation fast path for trivially copyable T: Go has no
// compile-time "trivially copyable" trait to branch on the way the C++
// original does, so every grow moves elements one at a time through
// allocator.ConstructAt / allocator.DestroyAt. See DESIGN.md.
type Array[T any] struct {
	alloc    allocator.Allocator
	data     unsafe.Pointer
	size     int
	capacity int
}

// NewArray constructs an Array backed by alloc. If initialCapacity > 0,
// storage for exactly that many elements is reserved up front; otherwise no
// allocation happens until the first PushBack.
func NewArray[T any](alloc allocator.Allocator, initialCapacity int) *Array[T] {
	a := &Array[T]{alloc: alloc}
	if initialCapacity > 0 {
		a.Reserve(initialCapacity)
	}
	return a
}

func elemSize[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

func (a *Array[T]) elemAt(i int) unsafe.Pointer {
	return unsafe.Add(a.data, uintptr(i)*elemSize[T]())
}

// Len returns the number of live elements.
func (a *Array[T]) Len() int { return a.size }

// Cap returns the number of elements storage is currently reserved for.
func (a *Array[T]) Cap() int { return a.capacity }

// Reserve ensures capacity for at least capacity elements, reallocating and
// moving existing elements if the current capacity is insufficient. The
// caller's requested capacity is honored exactly; the implicit clamp to 4 on
// a from-empty grow is PushBack's internal doubling policy, not Reserve's
// (per spec.md §4.G and original_source/include/wheels/containers/array.hpp's
// reallocate(), which only clamps a literal 0).
func (a *Array[T]) Reserve(capacity int) {
	if capacity <= a.capacity {
		return
	}

	newData := a.alloc.Allocate(uintptr(capacity) * elemSize[T]())
	if newData == nil {
		panic("container: Array allocator exhausted during Reserve")
	}

	for i := 0; i < a.size; i++ {
		v := allocator.DestroyAt[T](a.elemAt(i))
		allocator.ConstructAt(unsafe.Add(newData, uintptr(i)*elemSize[T]()), v)
	}

	if a.data != nil {
		a.alloc.Deallocate(a.data)
	}
	a.data = newData
	a.capacity = capacity
}

// PushBack appends v, doubling capacity (from 0, growing to 4 first) if the
// array is full.
func (a *Array[T]) PushBack(v T) {
	if a.size == a.capacity {
		newCap := a.capacity * 2
		if newCap == 0 {
			newCap = 4
		}
		a.Reserve(newCap)
	}

	allocator.ConstructAt(a.elemAt(a.size), v)
	a.size++
}

// PopBack removes and returns the last element. Precondition: Len() > 0,
// violating which is a programmer error and panics.
func (a *Array[T]) PopBack() T {
	if a.size == 0 {
		panic("container: PopBack on an empty Array")
	}
	a.size--
	return allocator.DestroyAt[T](a.elemAt(a.size))
}

// At returns the element at index i without removing it. Precondition:
// 0 <= i < Len().
func (a *Array[T]) At(i int) T {
	if i < 0 || i >= a.size {
		panic(fmt.Sprintf("container: Array index %d out of range [0, %d)", i, a.size))
	}
	return allocator.ReadAt[T](a.elemAt(i))
}

// Set overwrites the element at index i. Precondition: 0 <= i < Len().
func (a *Array[T]) Set(i int, v T) {
	if i < 0 || i >= a.size {
		panic(fmt.Sprintf("container: Array index %d out of range [0, %d)", i, a.size))
	}
	allocator.DestroyAt[T](a.elemAt(i))
	allocator.ConstructAt(a.elemAt(i), v)
}

// Erase removes the element at index i, shifting every later element left
// by one slot. Precondition: i < Len().
func (a *Array[T]) Erase(i int) {
	if i < 0 || i >= a.size {
		panic(fmt.Sprintf("container: Array index %d out of range [0, %d)", i, a.size))
	}

	allocator.DestroyAt[T](a.elemAt(i))
	for j := i; j < a.size-1; j++ {
		v := allocator.DestroyAt[T](a.elemAt(j + 1))
		allocator.ConstructAt(a.elemAt(j), v)
	}
	a.size--
}

// EraseSwapLast removes the element at index i by moving the last element
// into its slot, avoiding the shift Erase performs. Order is not preserved.
// Precondition: i < Len().
func (a *Array[T]) EraseSwapLast(i int) {
	if i < 0 || i >= a.size {
		panic(fmt.Sprintf("container: Array index %d out of range [0, %d)", i, a.size))
	}

	allocator.DestroyAt[T](a.elemAt(i))
	last := a.size - 1
	if i != last {
		v := allocator.DestroyAt[T](a.elemAt(last))
		allocator.ConstructAt(a.elemAt(i), v)
	}
	a.size--
}

// Resize changes Len() to n. Shrinking destroys the trailing elements;
// growing default-zero-constructs new ones, reserving storage first.
func (a *Array[T]) Resize(n int) {
	var zero T
	a.ResizeWithValue(n, zero)
}

// ResizeWithValue is Resize, but newly created elements (if n > Len()) are
// copies of v rather than zero-valued.
func (a *Array[T]) ResizeWithValue(n int, v T) {
	if n < a.size {
		for i := n; i < a.size; i++ {
			allocator.DestroyAt[T](a.elemAt(i))
		}
		a.size = n
		return
	}
	if n > a.size {
		a.Reserve(n)
		for i := a.size; i < n; i++ {
			allocator.ConstructAt(a.elemAt(i), v)
		}
		a.size = n
	}
}

// Clear destroys every element. Capacity is unchanged.
func (a *Array[T]) Clear() {
	for i := 0; i < a.size; i++ {
		allocator.DestroyAt[T](a.elemAt(i))
	}
	a.size = 0
}

// Close destroys every element and releases the backing storage. The array
// must not be used afterwards.
func (a *Array[T]) Close() {
	a.Clear()
	if a.data != nil {
		a.alloc.Deallocate(a.data)
		a.data = nil
		a.capacity = 0
	}
}

// Slice returns a view over [begin, end). The returned slice aliases the
// array's backing storage directly: it is invalidated by any call that
// reallocates (Reserve, PushBack past capacity, ResizeWithValue growing)
// and must not outlive the Array.
func (a *Array[T]) Slice(begin, end int) []T {
	if begin < 0 || end < begin || end > a.size {
		panic(fmt.Sprintf("container: Array span [%d, %d) out of range [0, %d]", begin, end, a.size))
	}
	if begin == end {
		return nil
	}
	return unsafe.Slice((*T)(a.elemAt(begin)), end-begin)
}

// Take transfers this array's storage to a freshly returned Array, leaving
// the receiver empty and unallocated -- mirroring the C++ original's move
// constructor and resolving spec.md's Open Question on move semantics: a
// Take is a cheap pointer handoff, never an element-by-element copy.
func (a *Array[T]) Take() *Array[T] {
	moved := &Array[T]{
		alloc:    a.alloc,
		data:     a.data,
		size:     a.size,
		capacity: a.capacity,
	}

	a.data = nil
	a.size = 0
	a.capacity = 0

	return moved
}
