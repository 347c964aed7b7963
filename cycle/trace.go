package cycle

// Traceable is the capability a type implements to participate in cycle
// collection. Trace presents every handle the value OWNS to the tracer,
// exactly once per handle, including handles nested inside owned containers.
// Handles the value merely borrows or observes must not be visited.
//
// Trace must be read-only with respect to the value's graph: it must not
// clone, release, or reassign handles. The collector calls Trace while other
// objects in the same space are mid-teardown, so Trace must not dereference
// the handles it visits.
type Traceable interface {
	Trace(t *Tracer)
}

// Acyclic marks a Traceable type as never participating in a reference
// cycle. Values of such types still release their owned handles on
// destruction, but they are not registered for cycle collection and carry
// no tracking metadata.
//
// Declaring a type Acyclic when it can in fact form a cycle turns that
// cycle into a leak.
type Acyclic interface {
	CycleFree()
}

// Finalizer is an optional destruction hook. When a value is destroyed,
// Finalize runs exactly once, before the value's owned handles are
// released. A value destroyed by a collection pass must not use Finalize to
// dereference handles into its own cycle; other members may already be
// destroyed.
type Finalizer interface {
	Finalize()
}

// Ref is the type-erased view of a handle accepted by Tracer.Visit. Every
// Handle[T] is a Ref; the zero Handle is a valid, ignored Ref.
type Ref interface {
	refBox() *box
}

// Tracer visits the outgoing handles of a Traceable value on behalf of the
// library. User code only ever calls Visit; the action taken per handle
// depends on why the traversal is running (scratch-count arithmetic during
// a collection pass, cascade release during destruction).
type Tracer struct {
	visit func(*box)
}

// Visit presents one owned handle to the tracer. Nil and zero handles are
// ignored, so optional fields can be visited unconditionally.
func (t *Tracer) Visit(r Ref) {
	if r == nil {
		return
	}
	if b := r.refBox(); b != nil {
		t.visit(b)
	}
}
