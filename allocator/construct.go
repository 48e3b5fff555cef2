package allocator

import "unsafe"

// ConstructAt is the Go stand-in for C++ placement-new: it writes value
// into the raw storage at ptr and returns a typed pointer to it. ptr must
// point at storage of at least unsafe.Sizeof(value), aligned to
// unsafe.Alignof(value); callers that carve ptr out of an Allocator already
// get that alignment for free since every Allocator returns MaxAlign-aligned
// storage.
//
// T must not hold the only live reference to Go-heap-managed state that
// needs to outlive the backing buffer's own lifetime tracking: storage
// carved from a LinearAllocator or TLSFAllocator backing buffer is not
// scanned by the garbage collector, the same caveat the teacher package
// accepts around its own unsafe.Pointer-typed arena slices.
func ConstructAt[T any](ptr unsafe.Pointer, value T) *T {
	typed := (*T)(ptr)
	*typed = value
	return typed
}

// DestroyAt is the Go stand-in for an explicit destructor call: it zeroes
// the value at ptr, dropping any references it held, and returns the value
// that was stored there immediately before being cleared.
func DestroyAt[T any](ptr unsafe.Pointer) T {
	typed := (*T)(ptr)
	value := *typed
	var zero T
	*typed = zero
	return value
}

// ReadAt returns a copy of the T currently stored at ptr without clearing
// it.
func ReadAt[T any](ptr unsafe.Pointer) T {
	return *(*T)(ptr)
}

// PointerTo returns a typed, non-owning pointer into storage at ptr.
func PointerTo[T any](ptr unsafe.Pointer) *T {
	return (*T)(ptr)
}
