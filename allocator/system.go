package allocator

import (
	"runtime"
	"unsafe"
)

// SystemAllocator forwards to the Go heap: every call to Allocate is a
// make([]byte, n), pinned so the garbage collector cannot relocate or
// collect it out from under callers holding the returned unsafe.Pointer.
// It carries no statistics and no debug instrumentation beyond what the
// runtime itself offers, matching the C++ original's CstdlibAllocator and
// the teacher's systemAlloc helper.
//
// Deallocate is a hint, not a guarantee: Go's allocator has no explicit free
// path, so SystemAllocator simply stops pinning the slice and lets the
// garbage collector reclaim it once nothing else references it.
type SystemAllocator struct {
	// pinned keeps outstanding allocations referenced so the GC cannot
	// collect them out from under a live unsafe.Pointer.
	pinned map[unsafe.Pointer][]byte
}

// NewSystemAllocator returns a ready-to-use SystemAllocator.
func NewSystemAllocator() *SystemAllocator {
	return &SystemAllocator{pinned: make(map[unsafe.Pointer][]byte)}
}

// Allocate returns storage of at least numBytes aligned to MaxAlign, or nil
// if numBytes is zero.
func (s *SystemAllocator) Allocate(numBytes uintptr) unsafe.Pointer {
	if numBytes == 0 {
		return nil
	}

	// Rounding the size to a multiple of MaxAlign keeps the runtime's small-
	// object allocator from packing the slice at a less-aligned address.
	slice := make([]byte, AlignedOffset(numBytes, MaxAlign))
	ptr := unsafe.Pointer(&slice[0])
	s.pinned[ptr] = slice
	runtime.KeepAlive(slice)

	return ptr
}

// Deallocate releases storage previously returned by Allocate. nil is
// tolerated and ignored.
func (s *SystemAllocator) Deallocate(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	delete(s.pinned, ptr)
}

var _ Allocator = (*SystemAllocator)(nil)
