package allocator

import "unsafe"

// LinearAllocator (the "bump" or arena allocator) owns one fixed-capacity
// buffer and a monotonically increasing offset. Allocation is carving the
// next aligned span off the buffer; deallocation is a no-op; the whole
// arena is released at once via Reset, or partially unwound via Rewind.
//
// Not threadsafe -- see the package doc comment.
type LinearAllocator struct {
	buffer *backingBuffer
	offset uintptr
}

// NewLinearAllocator reserves a buffer of the given capacity. The only error
// it returns is for a zero capacity: if the host refuses an mmap region the
// buffer comes from the Go heap instead, and a refused mapping is not
// reported. (Exhaustion during allocation is separate and returns nil.)
func NewLinearAllocator(capacity uintptr) (*LinearAllocator, error) {
	buf, err := newBackingBuffer(capacity)
	if err != nil {
		return nil, err
	}

	return &LinearAllocator{buffer: buf}, nil
}

// Close releases the arena's backing buffer. All pointers previously
// returned by Allocate are invalidated.
func (l *LinearAllocator) Close() error {
	if l.buffer == nil {
		return nil
	}
	err := l.buffer.release()
	l.buffer = nil
	return err
}

// Allocate carves num_bytes off the current offset, aligned to MaxAlign.
// Returns nil, without advancing the offset, if the arena is exhausted.
func (l *LinearAllocator) Allocate(numBytes uintptr) unsafe.Pointer {
	retOffset := AlignedOffset(l.offset, MaxAlign)

	newOffset := retOffset + numBytes
	if newOffset > l.buffer.size {
		return nil
	}

	l.offset = newOffset

	return unsafe.Add(l.buffer.addr(), retOffset)
}

// Deallocate is a no-op: individual allocations cannot be freed from a
// linear allocator, only the whole arena via Reset or a prefix via Rewind.
func (l *LinearAllocator) Deallocate(unsafe.Pointer) {}

// Reset rewinds the offset to zero, invalidating every outstanding pointer.
func (l *LinearAllocator) Reset() {
	l.offset = 0
}

// Rewind sets the offset back to wherever ptr sits within the buffer,
// invalidating ptr and everything allocated after it. ptr must have been
// returned by (or derived from an offset within) this allocator; violating
// that is a programmer error and panics.
func (l *LinearAllocator) Rewind(ptr unsafe.Pointer) {
	base := l.buffer.addr()
	if uintptr(ptr) < uintptr(base) || uintptr(ptr) >= uintptr(base)+l.buffer.size {
		panic("allocator: Rewind to a pointer outside this LinearAllocator's buffer")
	}
	l.offset = uintptr(ptr) - uintptr(base)
}

// peek returns the current write position, i.e. base+offset. Used by Scope
// to record its mark.
func (l *LinearAllocator) peek() unsafe.Pointer {
	return unsafe.Add(l.buffer.addr(), l.offset)
}

// Capacity returns the total size of the backing buffer.
func (l *LinearAllocator) Capacity() uintptr {
	return l.buffer.size
}

// Offset returns the current bump offset, i.e. bytes in use from the start
// of the buffer.
func (l *LinearAllocator) Offset() uintptr {
	return l.offset
}

var _ Allocator = (*LinearAllocator)(nil)
