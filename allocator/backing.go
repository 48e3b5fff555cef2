package allocator

import (
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// backingBuffer is a contiguous byte region owned for the lifetime of a
// LinearAllocator or TLSFAllocator. On unix it is an anonymous mmap so the
// region lives entirely outside the Go heap and is never scanned by the
// garbage collector -- the arena's own bump/boundary-tag bookkeeping is the
// only thing that tracks what is live inside it, matching the C++
// original's std::malloc-backed arena. When mmap is unavailable the buffer
// falls back to a heap-allocated []byte pinned for the buffer's lifetime.
type backingBuffer struct {
	base    unsafe.Pointer
	size    uintptr
	heap    []byte // non-nil only for the heap fallback path
	mmapped bool
}

// newBackingBuffer reserves size bytes of zeroed, readable/writable memory.
func newBackingBuffer(size uintptr) (*backingBuffer, error) {
	if size == 0 {
		return nil, fmt.Errorf("allocator: backing buffer size must be > 0")
	}

	data, err := unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err == nil {
		return &backingBuffer{
			base:    unsafe.Pointer(&data[0]),
			size:    size,
			heap:    data,
			mmapped: true,
		}, nil
	}

	// mmap can fail on sandboxed or memory-constrained hosts; fall back to a
	// plain heap buffer rather than failing construction outright.
	heap := make([]byte, size)
	runtime.KeepAlive(heap)

	return &backingBuffer{
		base: unsafe.Pointer(&heap[0]),
		size: size,
		heap: heap,
	}, nil
}

// addr returns the buffer's base address.
func (b *backingBuffer) addr() unsafe.Pointer { return b.base }

// release returns the buffer's memory to the OS (mmap path) or simply drops
// the last reference so the GC can reclaim it (heap fallback path).
func (b *backingBuffer) release() error {
	if b == nil || b.heap == nil {
		return nil
	}
	if b.mmapped {
		err := unix.Munmap(b.heap)
		b.heap = nil
		b.base = nil
		return err
	}
	b.heap = nil
	b.base = nil
	return nil
}
