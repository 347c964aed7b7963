package cycle

// header is the cycle-collection metadata attached to a tracked box. Headers
// form an intrusive doubly-linked ring rooted at their Space's sentinel, so
// registration and unregistration are O(1) and the collector can walk every
// tracked object without auxiliary allocation.
type header struct {
	prev, next *header
	space      *Space
	b          *box

	// gcRefs is scratch state with meaning only inside a collection pass:
	// after the subtract phase it holds the number of references to this
	// object that originate outside the tracked set.
	gcRefs int
	// collecting is set for every header at the start of a pass and cleared
	// as objects are proven reachable; whatever still has it set at the end
	// is garbage.
	collecting bool
}

// insertAfter links h into the ring directly after prev.
func (h *header) insertAfter(prev *header) {
	h.prev = prev
	h.next = prev.next
	prev.next.prev = h
	prev.next = h
}

// unlink removes h from its ring.
func (h *header) unlink() {
	h.prev.next = h.next
	h.next.prev = h.prev
	h.prev = nil
	h.next = nil
}
