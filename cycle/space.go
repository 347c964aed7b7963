package cycle

import "github.com/rs/zerolog"

// Space is a registry of tracked objects and the unit over which the cycle
// collector operates. Every tracked allocation belongs to exactly one
// Space from construction until destruction.
//
// A Space and all objects created in it must be confined to a single
// goroutine; no internal locking exists. Independent goroutines use
// independent spaces, which makes their collection passes fully disjoint.
type Space struct {
	// ring sentinel; head.next..head.prev are the registered headers.
	head    header
	tracked int

	// inPass blocks re-entrant collection from a Finalize hook.
	inPass bool

	log   zerolog.Logger
	stats SpaceStats
}

// SpaceStats are cumulative diagnostics for one Space.
type SpaceStats struct {
	// Tracked is the number of currently registered objects.
	Tracked int
	// Passes is the number of completed collection passes.
	Passes int
	// Freed is the total number of objects reclaimed by collection passes.
	// Objects freed by ordinary reference counting are not counted.
	Freed int
}

// SpaceOption configures a Space at construction.
type SpaceOption func(*Space)

// WithLogger makes the space emit a debug event per collection pass. The
// default logger discards everything.
func WithLogger(l zerolog.Logger) SpaceOption {
	return func(s *Space) { s.log = l }
}

// NewSpace returns an empty Space.
func NewSpace(opts ...SpaceOption) *Space {
	s := &Space{log: zerolog.Nop()}
	s.head.prev = &s.head
	s.head.next = &s.head
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// register inserts a header at the front of the ring. O(1).
func (s *Space) register(h *header) {
	h.insertAfter(&s.head)
	s.tracked++
}

// unregister removes a header from the ring. O(1).
func (s *Space) unregister(h *header) {
	h.unlink()
	s.tracked--
}

// forEach visits every registered header. The visitor must not register or
// unregister headers.
func (s *Space) forEach(fn func(*header)) {
	for h := s.head.next; h != &s.head; h = h.next {
		fn(h)
	}
}

// TrackedCount returns the number of objects currently registered for
// cycle collection in this space.
func (s *Space) TrackedCount() int {
	return s.tracked
}

// Stats returns a snapshot of the space's diagnostics.
func (s *Space) Stats() SpaceStats {
	st := s.stats
	st.Tracked = s.tracked
	return st
}

// Close runs a final collection pass, reclaiming any cycles still tracked.
// Objects with live external handles survive Close and remain usable; the
// space itself remains usable too, so Close is effectively "collect at end
// of life" and may be deferred at space creation.
func (s *Space) Close() error {
	s.CollectCycles()
	return nil
}

// Leak abandons every tracked object: the registry is emptied and the
// objects lose their collection metadata. Their values are NOT destroyed
// and no Finalize hook runs; reference counting keeps working, but cycles
// among leaked objects can never be reclaimed. Intended for teardown paths
// that deliberately trade memory for skipping destructor work.
func (s *Space) Leak() {
	for h := s.head.next; h != &s.head; {
		next := h.next
		h.b.hdr = nil
		h.prev = nil
		h.next = nil
		h = next
	}
	s.head.prev = &s.head
	s.head.next = &s.head
	s.tracked = 0
}

// defaultSpace backs the package-level convenience API. Like any Space it
// is single-goroutine; programs with concurrent graphs use NewSpace.
var defaultSpace = NewSpace()

// DefaultSpace returns the space used by New, CollectCycles, and
// TrackedCount.
func DefaultSpace() *Space {
	return defaultSpace
}

// CollectCycles runs a collection pass over the default space. It returns
// the number of objects freed.
func CollectCycles() int {
	return defaultSpace.CollectCycles()
}

// TrackedCount returns the number of tracked objects in the default space.
func TrackedCount() int {
	return defaultSpace.TrackedCount()
}
