package cycle

import "time"

// CollectCycles runs one full trial-deletion pass over the space and
// returns the number of objects destroyed. A pass is synchronous and runs
// to completion; its cost is linear in the number of tracked objects plus
// traced edges, independent of how much untracked memory exists.
//
// The pass never destroys an object reachable from a handle held outside
// the tracked set, and calling it again without intervening mutation
// destroys nothing further. Called re-entrantly from a Finalize hook it is
// a no-op returning 0.
func (s *Space) CollectCycles() int {
	if s.inPass {
		return 0
	}
	s.inPass = true
	defer func() { s.inPass = false }()

	start := time.Now()
	examined := s.tracked

	s.snapshotRefs()
	s.subtractRefs()
	s.markReachable()
	freed := s.releaseUnreachable()

	s.stats.Passes++
	s.stats.Freed += freed
	s.log.Debug().
		Int("examined", examined).
		Int("freed", freed).
		Int("tracked", s.tracked).
		Dur("elapsed", time.Since(start)).
		Msg("collection pass")
	return freed
}

// snapshotRefs copies every strong count into the scratch counter and
// flags every header as a collection candidate.
func (s *Space) snapshotRefs() {
	s.forEach(func(h *header) {
		h.gcRefs = h.b.strong
		h.collecting = true
	})
}

// subtractRefs traces every tracked object and subtracts one from the
// scratch counter of each traced target inside this space. Afterwards
// gcRefs holds, per object, the number of references originating outside
// the tracked set: edges internal to the set have cancelled out.
func (s *Space) subtractRefs() {
	t := &Tracer{visit: func(b *box) {
		th := b.hdr
		if th == nil || !th.collecting {
			// Leaf, acyclic, or foreign-space target: not part of the
			// arithmetic.
			return
		}
		if th.gcRefs == 0 {
			panic("cycle: traced more references to an object than its strong count (buggy Trace implementation)")
		}
		th.gcRefs--
	}}
	s.forEach(func(h *header) {
		h.b.value.(Traceable).Trace(t)
	})
}

// markReachable starts from every root (gcRefs > 0 after subtraction, i.e.
// provably externally referenced) and clears the collecting flag on
// everything transitively reachable. An object reached this way is alive
// because something alive owns it, even when its own scratch count dropped
// to zero.
func (s *Space) markReachable() {
	var t Tracer
	revive := func(b *box) {
		h := b.hdr
		if h == nil || !h.collecting {
			return
		}
		h.collecting = false
		if h.gcRefs == 0 {
			h.gcRefs = 1
		}
		b.value.(Traceable).Trace(&t)
	}
	t.visit = revive
	s.forEach(func(h *header) {
		if h.collecting && h.gcRefs > 0 {
			h.collecting = false
			h.b.value.(Traceable).Trace(&t)
		}
	})
}

// releaseUnreachable destroys every object still flagged after the
// reachability phase. All such objects are, collectively, cycles with zero
// external references.
func (s *Space) releaseUnreachable() int {
	// Gather first: teardown mutates the ring.
	var garbage []*box
	s.forEach(func(h *header) {
		if h.collecting {
			garbage = append(garbage, h.b)
		}
	})
	if len(garbage) == 0 {
		return 0
	}

	// Pin every garbage box with an extra strong reference so the cascade
	// releases below cannot free one member while the rest of the group is
	// still being torn down.
	for _, b := range garbage {
		b.strong++
		b.st = stateCollecting
	}

	// Destroy values. drop is idempotent, so a member reached again through
	// another member's cascade is simply skipped rather than destroyed
	// twice.
	for _, b := range garbage {
		b.drop()
	}

	// Every in-group reference has now been released; only the pin remains.
	for _, b := range garbage {
		if b.strong != 1 {
			panic("cycle: unexpected strong count after cycle teardown (buggy Trace or Finalize implementation)")
		}
	}

	// Unpin: each box reaches zero, leaves the registry, and becomes
	// unreachable from the space.
	for _, b := range garbage {
		b.release()
	}
	return len(garbage)
}
