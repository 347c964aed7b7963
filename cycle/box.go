package cycle

// state tracks the lifecycle of a box's value.
type state uint8

const (
	// stateLive: value constructed and dereferenceable.
	stateLive state = iota
	// stateCollecting: a collection pass has identified the value as
	// garbage and is tearing its cycle down.
	stateCollecting
	// stateDropped: value destroyed. The box lingers only until the
	// remaining in-cycle references to it are released.
	stateDropped
)

// box is the allocation shared by every Handle to one value. For tracked
// values a header is attached and registered in a Space; leaves and acyclic
// values carry only the strong count.
type box struct {
	strong int
	st     state
	hdr    *header // nil unless registered for cycle collection
	value  any     // nil once dropped
}

func (b *box) tracked() bool {
	return b.hdr != nil
}

func (b *box) retain() {
	if b.strong <= 0 {
		panic("cycle: retain of a released handle")
	}
	b.strong++
}

// release drops one strong reference. On reaching zero the box is
// unregistered first, so a collection pass can never traverse dropped
// content, and the value is then destroyed.
func (b *box) release() {
	if b.strong <= 0 {
		panic("cycle: release of a released handle")
	}
	b.strong--
	if b.strong > 0 {
		return
	}
	if b.hdr != nil {
		b.hdr.space.unregister(b.hdr)
		b.hdr = nil
	}
	b.drop()
}

// drop destroys the value: the Finalize hook runs first, then every owned
// handle the value reports through Trace is released. Idempotent; only the
// first call acts. Cascading releases triggered here may recurse into
// further drops, which is how an acyclic chain is freed by a single head
// release.
func (b *box) drop() {
	if b.st == stateDropped {
		return
	}
	b.st = stateDropped
	v := b.value
	b.value = nil
	if f, ok := v.(Finalizer); ok {
		f.Finalize()
	}
	if tr, ok := v.(Traceable); ok {
		tr.Trace(&Tracer{visit: func(tb *box) { tb.release() }})
	}
}
