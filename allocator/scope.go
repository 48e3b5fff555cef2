package allocator

import "unsafe"

// scopeRecord is one entry in a Scope's destructor chain. Nodes live on the
// Go heap (not bump-allocated out of the arena) -- see DESIGN.md for why:
// a destructor closure is itself a Go-managed value, and placing one inside
// an unscanned arena buffer would hide it from the garbage collector. The
// payload it destroys, by contrast, is carved straight out of the arena,
// exactly like the teacher's ArenaAllocatorImpl.Alloc.
type scopeRecord struct {
	destroy  func()
	previous *scopeRecord
}

// Scope implements the Frostbite-style scope-stack: a LIFO, destructor-
// tracked nested lifetime layered on top of a LinearAllocator. Destroying a
// Scope runs every tracked destructor newest-to-oldest and then rewinds the
// allocator to the mark recorded at construction.
type Scope struct {
	allocator   *LinearAllocator
	mark        unsafe.Pointer
	parent      *Scope
	hasChild    bool
	destructors *scopeRecord
	done        bool
}

// NewScope opens a scope over allocator, recording its current offset as
// the mark to rewind to on Close.
func NewScope(allocator *LinearAllocator) *Scope {
	return &Scope{
		allocator: allocator,
		mark:      allocator.peek(),
	}
}

// Child opens a nested scope sharing this scope's allocator. Only one child
// may be active at a time; creating a second child, or allocating from this
// scope while a child is active, is a programmer error and panics.
func (s *Scope) Child() *Scope {
	if s.hasChild {
		panic("allocator: Scope already has an active child scope")
	}

	child := NewScope(s.allocator)
	child.parent = s
	s.hasChild = true

	return child
}

// Close runs every tracked destructor newest-to-oldest and rewinds the
// underlying LinearAllocator to this scope's mark. Closing an already
// closed (or moved-from, see Take) scope is a no-op. If this scope was
// itself a child, Close clears the parent's "child active" flag.
func (s *Scope) Close() {
	if s.done || s.mark == nil {
		return
	}

	for rec := s.destructors; rec != nil; rec = rec.previous {
		rec.destroy()
	}
	s.destructors = nil

	s.allocator.Rewind(s.mark)
	s.done = true

	if s.parent != nil {
		s.parent.hasChild = false
	}
}

// Take transfers this scope's mark and destructor chain to a freshly
// returned Scope, leaving the receiver inert: closing it afterwards is a
// no-op, mirroring the C++ original's move constructor. Taking a scope that
// has an active child is a programmer error and panics, since the child
// holds a back-pointer to this exact Scope value.
func (s *Scope) Take() *Scope {
	if s.hasChild {
		panic("allocator: cannot move a Scope that has an active child scope")
	}

	moved := &Scope{
		allocator:   s.allocator,
		mark:        s.mark,
		parent:      s.parent,
		destructors: s.destructors,
	}

	s.mark = nil
	s.destructors = nil
	s.done = true

	return moved
}

func (s *Scope) assertAllocatable() {
	if s.hasChild {
		panic("allocator: cannot allocate from a Scope that has an active child scope")
	}
}

// AllocatePOD returns untracked storage sized for T: no destructor runs for
// it when the scope closes, matching §4.E's "bypasses the destructor list"
// POD path. The storage is not cleared: it reads as zero only where the
// arena bytes have never been written, and holds earlier contents where the
// arena was rewound or reset over them. Returns nil on arena exhaustion.
func AllocatePOD[T any](s *Scope) *T {
	s.assertAllocatable()

	var zero T
	ptr := s.allocator.Allocate(unsafe.Sizeof(zero))
	if ptr == nil {
		return nil
	}

	return (*T)(ptr)
}

// AllocateObject copies value into arena storage and tracks a destructor
// for it: when the owning scope closes, value is zeroed in LIFO order
// relative to every other AllocateObject call on this scope. Closing a
// parent scope does not run a child scope's destructors. Returns nil on arena exhaustion,
// rewinding any partial progress.
func AllocateObject[T any](s *Scope, value T) *T {
	s.assertAllocatable()

	// Unlike the C++ original, no separate bump allocation is needed for the
	// destructor record itself (see the scopeRecord doc comment), so there is
	// no partial progress to rewind on failure here: Allocate either returns
	// a valid span or leaves the offset untouched.
	ptr := s.allocator.Allocate(unsafe.Sizeof(value))
	if ptr == nil {
		return nil
	}

	typed := ConstructAt(ptr, value)

	s.destructors = &scopeRecord{
		destroy: func() {
			DestroyAt[T](ptr)
		},
		previous: s.destructors,
	}

	return typed
}

var _ Allocator = (*Scope)(nil)

// Allocate lets Scope itself satisfy Allocator, so arbitrary allocator-
// parameterized code (e.g. container.Array) can be handed a Scope directly.
// It is equivalent to AllocatePOD: no destructor is tracked for raw byte
// allocations routed through this method, since the caller on this path
// owns no typed value for the scope to destroy.
func (s *Scope) Allocate(numBytes uintptr) unsafe.Pointer {
	s.assertAllocatable()
	return s.allocator.Allocate(numBytes)
}

// Deallocate is a no-op, like the underlying LinearAllocator's.
func (s *Scope) Deallocate(unsafe.Pointer) {}
