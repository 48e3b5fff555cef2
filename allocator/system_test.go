package allocator

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestSystemAllocatorRoundTrip(t *testing.T) {
	sys := NewSystemAllocator()

	ptr := sys.Allocate(64)
	require.NotNil(t, ptr)

	typed := ConstructAt(ptr, [8]int64{1, 2, 3, 4, 5, 6, 7, 8})
	require.Equal(t, int64(4), typed[3])

	sys.Deallocate(ptr)
}

func TestSystemAllocatorZeroSizeReturnsNil(t *testing.T) {
	sys := NewSystemAllocator()
	require.Nil(t, sys.Allocate(0))
}

func TestSystemAllocatorDeallocateNilIsNoop(t *testing.T) {
	sys := NewSystemAllocator()
	require.NotPanics(t, func() { sys.Deallocate(nil) })
}

func TestSystemAllocatorManyAllocationsStayDistinct(t *testing.T) {
	sys := NewSystemAllocator()

	seen := make(map[unsafe.Pointer]bool)
	for i := 0; i < 64; i++ {
		ptr := sys.Allocate(16)
		require.NotNil(t, ptr)
		require.False(t, seen[ptr], "allocator handed back an address already in use")
		seen[ptr] = true
	}
}
