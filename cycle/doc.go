// Package cycle provides reference-counted shared-ownership handles that can
// also reclaim reference cycles.
//
// # Overview
//
// A [Handle] behaves like an ordinary shared-ownership pointer: Clone
// increments a strong count, Release decrements it, and the last Release
// destroys the value immediately. Plain reference counting can never free a
// group of objects that only reference each other, so types that can form
// cycles implement the [Traceable] capability and are tracked in a [Space].
// An explicit call to [Space.CollectCycles] finds groups of tracked objects
// with no references from outside the group and destroys them together.
//
// The collection strategy is trial deletion, the approach used by CPython's
// cycle collector: copy every tracked object's strong count into a scratch
// counter, subtract one from the scratch counter of every traced target, and
// whatever the surviving positive counts cannot reach is garbage.
//
// # Key Types
//
//   - Handle[T]: the public shared-ownership pointer
//   - Traceable: capability a type implements to expose its owned handles
//   - Tracer: visitor passed to Traceable.Trace
//   - Space: registry of tracked objects plus the collector entry point
//   - Finalizer: optional destruction hook run exactly once per value
//   - Acyclic: marker that opts a Traceable type out of tracking
//
// # Defining a Traceable Type
//
// A type that owns handles implements Trace by presenting each owned handle
// to the tracer, including handles held inside slices, maps, and optional
// fields:
//
//	type Node struct {
//	    Name string
//	    Next cycle.Handle[*Node]
//	}
//
//	func (n *Node) Trace(t *cycle.Tracer) {
//	    t.Visit(n.Next)
//	}
//
//	a := cycle.New(&Node{Name: "a"})
//	b := cycle.New(&Node{Name: "b"})
//	a.Value().Next = b.Clone()
//	b.Value().Next = a.Clone()
//	a.Release()
//	b.Release()
//
//	cycle.CollectCycles() // destroys both nodes
//
// Trace must report every owned handle exactly once and must not report
// handles the value merely borrows. Under-reporting can free a reachable
// object; over-reporting leaks cycles. Neither is detectable in general, so
// both are preconditions on the implementation, not runtime errors.
//
// # Values Without Cycles
//
// A value whose type does not implement Traceable is a leaf: it gets no
// tracking metadata and is freed by reference counting alone. A Traceable
// type that can never participate in a cycle may additionally implement
// [Acyclic]; its owned handles are still released on destruction, but the
// value itself skips the registry. Leaves and acyclic values cost nothing
// beyond the reference count.
//
// # Spaces
//
// Every tracked object belongs to exactly one Space. [New] uses a
// process-wide default space; [NewIn] targets an explicit one. A Space and
// everything created in it must be confined to a single goroutine: there is
// no locking, and a collection pass assumes the graph does not move under
// it. Goroutines that need independent graphs create independent spaces.
// Objects in one space should not hold handles into another; the collector
// only reasons about edges inside its own space, so cross-space cycles leak.
//
// # Destruction Protocol
//
// When a value is destroyed, either by its strong count reaching zero or by
// a collection pass, the library first runs its Finalize hook (if any) and
// then releases every handle the value reported through Trace. During the
// collective teardown of a garbage cycle each member is destroyed exactly
// once, in unspecified order; a Finalize hook must not dereference handles
// into its own cycle, since neighbours may already be gone.
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. Handles must not
// cross goroutine boundaries. This is a design constraint of the trial
// deletion algorithm, not a missing feature.
package cycle
