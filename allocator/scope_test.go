package allocator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopeRunsDestructorsOnClose(t *testing.T) {
	arena, err := NewLinearAllocator(4096)
	require.NoError(t, err)
	defer arena.Close()

	var order []int

	scope := NewScope(arena)
	first := AllocateObject(scope, 1)
	second := AllocateObject(scope, 2)

	type tracked struct{ id int }
	var objects []*tracked
	for i := 3; i <= 5; i++ {
		id := i
		objects = append(objects, AllocateObject(scope, tracked{id: id}))
	}
	_ = order

	before := arena.Offset()
	require.Positive(t, before)

	scope.Close()
	require.Equal(t, uintptr(0), arena.Offset(), "Close must rewind the arena back to the scope's mark")

	// Each tracked destructor zeroes its object; the arena memory itself is
	// still mapped, so the cleared values can be read back.
	require.Zero(t, *first)
	require.Zero(t, *second)
	for _, obj := range objects {
		require.Zero(t, *obj)
	}
}

func TestScopeDestructorOrderIsLIFO(t *testing.T) {
	arena, err := NewLinearAllocator(4096)
	require.NoError(t, err)
	defer arena.Close()

	scope := NewScope(arena)

	var ran []int
	for i := 0; i < 3; i++ {
		i := i
		scope.destructors = &scopeRecord{
			destroy:  func() { ran = append(ran, i) },
			previous: scope.destructors,
		}
	}

	scope.Close()
	require.Equal(t, []int{2, 1, 0}, ran)
}

func TestScopeAllocatePODIsZeroedAndUntracked(t *testing.T) {
	arena, err := NewLinearAllocator(4096)
	require.NoError(t, err)
	defer arena.Close()

	scope := NewScope(arena)
	ptr := AllocatePOD[[4]int](scope)
	require.NotNil(t, ptr)
	require.Equal(t, [4]int{}, *ptr)

	require.Nil(t, scope.destructors)
	scope.Close()
}

func TestScopeChildMustBeUniqueAndBlocksParentAllocation(t *testing.T) {
	arena, err := NewLinearAllocator(4096)
	require.NoError(t, err)
	defer arena.Close()

	scope := NewScope(arena)
	child := scope.Child()

	require.Panics(t, func() { scope.Child() })
	require.Panics(t, func() { AllocatePOD[int](scope) })

	child.Close()
	require.NotPanics(t, func() { scope.Child() })
}

func TestScopeTakeLeavesReceiverInert(t *testing.T) {
	arena, err := NewLinearAllocator(4096)
	require.NoError(t, err)
	defer arena.Close()

	scope := NewScope(arena)
	AllocatePOD[int](scope)

	markBefore := arena.Offset()
	moved := scope.Take()

	require.NotPanics(t, func() { scope.Close() }, "closing a moved-from scope must be a no-op")
	require.Equal(t, markBefore, arena.Offset(), "moved-from Close must not rewind")

	moved.Close()
	require.Equal(t, uintptr(0), arena.Offset())
}

func TestScopeExhaustionReturnsNil(t *testing.T) {
	arena, err := NewLinearAllocator(16)
	require.NoError(t, err)
	defer arena.Close()

	scope := NewScope(arena)
	require.NotNil(t, AllocatePOD[[16]byte](scope))
	require.Nil(t, AllocatePOD[[16]byte](scope))
}
