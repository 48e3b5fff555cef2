package container

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sndels/wheels-sub000/allocator"
)

func TestArrayPushBackGrowsFromZeroToFour(t *testing.T) {
	sys := allocator.NewSystemAllocator()
	arr := NewArray[int](sys, 0)
	require.Equal(t, 0, arr.Cap())

	arr.PushBack(1)
	require.Equal(t, 4, arr.Cap())

	for _, v := range []int{2, 3, 4} {
		arr.PushBack(v)
	}
	require.Equal(t, 4, arr.Cap())

	arr.PushBack(5)
	require.Equal(t, 8, arr.Cap())
	require.Equal(t, 5, arr.Len())

	for i := 0; i < 5; i++ {
		require.Equal(t, i+1, arr.At(i))
	}

	arr.Close()
}

func TestNewArrayReservesExactRequestedCapacity(t *testing.T) {
	sys := allocator.NewSystemAllocator()

	arr := NewArray[uint32](sys, 2)
	defer arr.Close()
	require.Equal(t, 2, arr.Cap())

	arr.PushBack(1)
	arr.PushBack(2)
	require.Equal(t, 2, arr.Cap(), "filling exactly to the requested capacity must not trigger a grow")
}

func TestArrayReserveDoesNotRoundUpSmallExplicitCapacity(t *testing.T) {
	sys := allocator.NewSystemAllocator()
	arr := NewArray[int](sys, 0)
	defer arr.Close()

	arr.Reserve(1)
	require.Equal(t, 1, arr.Cap())

	arr.Reserve(3)
	require.Equal(t, 3, arr.Cap())
}

func TestArrayPopBackReturnsLastElement(t *testing.T) {
	sys := allocator.NewSystemAllocator()
	arr := NewArray[string](sys, 0)
	defer arr.Close()

	arr.PushBack("a")
	arr.PushBack("b")

	require.Equal(t, "b", arr.PopBack())
	require.Equal(t, 1, arr.Len())
}

func TestArrayPopBackOnEmptyPanics(t *testing.T) {
	sys := allocator.NewSystemAllocator()
	arr := NewArray[int](sys, 0)
	defer arr.Close()

	require.Panics(t, func() { arr.PopBack() })
}

func TestArrayEraseShiftsLaterElementsLeft(t *testing.T) {
	sys := allocator.NewSystemAllocator()
	arr := NewArray[int](sys, 0)
	defer arr.Close()

	for _, v := range []int{10, 20, 30, 40} {
		arr.PushBack(v)
	}

	arr.Erase(1)
	require.Equal(t, 3, arr.Len())
	require.Equal(t, []int{10, 30, 40}, arr.Slice(0, arr.Len()))
}

func TestArrayEraseSwapLastDoesNotPreserveOrder(t *testing.T) {
	sys := allocator.NewSystemAllocator()
	arr := NewArray[int](sys, 0)
	defer arr.Close()

	for _, v := range []int{10, 20, 30, 40} {
		arr.PushBack(v)
	}

	arr.EraseSwapLast(1)
	require.Equal(t, 3, arr.Len())
	require.Equal(t, 10, arr.At(0))
	require.Equal(t, 40, arr.At(1))
	require.Equal(t, 30, arr.At(2))
}

func TestArrayResizeGrowsWithZeroValue(t *testing.T) {
	sys := allocator.NewSystemAllocator()
	arr := NewArray[int](sys, 0)
	defer arr.Close()

	arr.PushBack(1)
	arr.Resize(4)

	require.Equal(t, 4, arr.Len())
	require.Equal(t, []int{1, 0, 0, 0}, arr.Slice(0, arr.Len()))
}

func TestArrayResizeWithValueGrows(t *testing.T) {
	sys := allocator.NewSystemAllocator()
	arr := NewArray[int](sys, 0)
	defer arr.Close()

	arr.PushBack(1)
	arr.ResizeWithValue(4, 9)

	require.Equal(t, []int{1, 9, 9, 9}, arr.Slice(0, arr.Len()))
}

func TestArrayResizeShrinkDestroysTrailingElements(t *testing.T) {
	sys := allocator.NewSystemAllocator()
	arr := NewArray[int](sys, 0)
	defer arr.Close()

	for _, v := range []int{1, 2, 3, 4} {
		arr.PushBack(v)
	}

	arr.Resize(2)
	require.Equal(t, []int{1, 2}, arr.Slice(0, arr.Len()))
}

func TestArrayClearKeepsCapacity(t *testing.T) {
	sys := allocator.NewSystemAllocator()
	arr := NewArray[int](sys, 0)
	defer arr.Close()

	arr.PushBack(1)
	arr.PushBack(2)
	capBefore := arr.Cap()

	arr.Clear()
	require.Equal(t, 0, arr.Len())
	require.Equal(t, capBefore, arr.Cap())
}

func TestArrayTakeLeavesReceiverEmpty(t *testing.T) {
	sys := allocator.NewSystemAllocator()
	arr := NewArray[int](sys, 0)

	arr.PushBack(1)
	arr.PushBack(2)

	moved := arr.Take()
	require.Equal(t, 0, arr.Len())
	require.Equal(t, 0, arr.Cap())

	require.Equal(t, 2, moved.Len())
	moved.Close()
}

func TestArraySpanOutOfRangePanics(t *testing.T) {
	sys := allocator.NewSystemAllocator()
	arr := NewArray[int](sys, 0)
	defer arr.Close()

	arr.PushBack(1)
	require.Panics(t, func() { arr.Slice(0, 2) })
}
