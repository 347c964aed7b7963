package cycle

// Handle is a shared-ownership pointer to a value of type T. Handles are
// small values meant to be copied freely; all copies of one handle share a
// single allocation and a single strong count. The zero Handle points at
// nothing and is safe to Clone, Release, and Visit.
//
// Handle is not safe for concurrent use. See the package documentation.
type Handle[T any] struct {
	b *box
}

// New constructs a value in the default space and returns the first handle
// to it. The value is registered for cycle collection when its type
// implements Traceable and does not declare itself Acyclic.
func New[T any](v T) Handle[T] {
	return NewIn(defaultSpace, v)
}

// NewIn constructs a value in an explicit space. Objects created in one
// space should only hold handles to objects in the same space; the
// collector cannot see cross-space edges.
func NewIn[T any](s *Space, v T) Handle[T] {
	b := &box{strong: 1, st: stateLive, value: v}
	if trackable(v) {
		h := &header{space: s, b: b}
		b.hdr = h
		s.register(h)
	}
	return Handle[T]{b: b}
}

// trackable reports whether a value needs cycle-collection metadata:
// it can hold handles (Traceable) and has not opted out (Acyclic).
func trackable(v any) bool {
	if _, ok := v.(Traceable); !ok {
		return false
	}
	if _, ok := v.(Acyclic); ok {
		return false
	}
	return true
}

// Clone returns a new handle to the same allocation, incrementing the
// strong count. Cloning the zero Handle returns the zero Handle.
func (h Handle[T]) Clone() Handle[T] {
	if h.b != nil {
		h.b.retain()
	}
	return h
}

// Release drops this handle's strong reference. When the last handle to an
// allocation is released the value is destroyed immediately: its Finalize
// hook runs, its owned handles are released in cascade, and (for tracked
// values) it leaves its space's registry. An allocation kept alive only by
// a cycle never reaches zero this way; it stays registered until a
// collection pass reclaims it.
//
// Releasing the zero Handle is a no-op. Releasing the same handle value
// more times than it was cloned panics.
func (h Handle[T]) Release() {
	if h.b != nil {
		h.b.release()
	}
}

// Value returns the contained value. It panics if the value has already
// been destroyed, which for correct Traceable implementations can only
// happen by using a handle after calling Release on it.
func (h Handle[T]) Value() T {
	if h.b == nil {
		panic("cycle: Value on zero Handle")
	}
	if h.b.st == stateDropped {
		panic("cycle: use of destroyed value (handle used after Release, or buggy Trace implementation)")
	}
	return h.b.value.(T)
}

// IsZero reports whether the handle points at nothing.
func (h Handle[T]) IsZero() bool {
	return h.b == nil
}

// Same reports whether two handles share one allocation.
func (h Handle[T]) Same(o Handle[T]) bool {
	return h.b != nil && h.b == o.b
}

// RefCount returns the current strong count, 0 for the zero Handle.
// Diagnostic; the count changes with every Clone and Release.
func (h Handle[T]) RefCount() int {
	if h.b == nil {
		return 0
	}
	return h.b.strong
}

// Tracked reports whether the allocation is registered for cycle
// collection.
func (h Handle[T]) Tracked() bool {
	return h.b != nil && h.b.tracked()
}

// refBox implements Ref.
func (h Handle[T]) refBox() *box {
	return h.b
}

// Erase converts a typed handle into a Handle[any] sharing the same
// allocation, for storing heterogeneous handles in one container. The
// erased handle participates in reference counting exactly like the
// original.
func Erase[T any](h Handle[T]) Handle[any] {
	return Handle[any]{b: h.b}
}
