package cycle

// Shared graph fixtures for the package tests.

// node is a general-purpose graph vertex: it owns an arbitrary set of
// handles to other nodes and counts its own destruction.
type node struct {
	name  string
	out   []Handle[*node]
	extra []Handle[any]
	freed *int
}

func (n *node) Trace(t *Tracer) {
	for _, h := range n.out {
		t.Visit(h)
	}
	for _, h := range n.extra {
		t.Visit(h)
	}
}

func (n *node) Finalize() {
	if n.freed != nil {
		*n.freed++
	}
}

// newNode constructs a node in s wired to a shared destruction counter.
func newNode(s *Space, name string, freed *int) Handle[*node] {
	return NewIn(s, &node{name: name, freed: freed})
}

// link appends an owned edge from -> to (cloning the target handle).
func link(from, to Handle[*node]) {
	from.Value().out = append(from.Value().out, to.Clone())
}

// leafBox is a non-Traceable value: a pure reference-counted leaf.
type leafBox struct {
	freed *int
}

func (l *leafBox) Finalize() {
	if l.freed != nil {
		*l.freed++
	}
}

// acyclicPair owns handles but declares itself cycle-free, so it is never
// registered while still cascading releases on destruction.
type acyclicPair struct {
	a, b Handle[*leafBox]
}

func (p *acyclicPair) Trace(t *Tracer) {
	t.Visit(p.a)
	t.Visit(p.b)
}

func (p *acyclicPair) CycleFree() {}
