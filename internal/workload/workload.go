// Package workload builds synthetic object graphs from TOML descriptions.
// It backs the cyclebench command and the stress tests: each workload names
// a graph shape, a size, and how many external handles survive, and Run
// reports what one collection pass did to it.
package workload

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/joshuapare/cyclekit/cycle"
)

// Config is the top-level TOML document: a named suite of workloads.
//
//	name = "nightly"
//
//	[[workload]]
//	name  = "big-ring"
//	kind  = "ring"
//	nodes = 100000
type Config struct {
	Name      string     `toml:"name"`
	Workloads []Workload `toml:"workload"`
}

// Workload describes one synthetic graph.
type Workload struct {
	Name string `toml:"name"`
	// Kind is one of "chain", "ring", "clique", "random".
	Kind  string `toml:"kind"`
	Nodes int    `toml:"nodes"`
	// Keep is how many external handles stay live across the measured
	// collection pass. 0 orphans the whole graph.
	Keep int `toml:"keep"`
	// Degree is outgoing edges per vertex; only "random" uses it.
	Degree int `toml:"degree"`
	// Seed drives edge selection for "random"; fixed seeds give
	// reproducible graphs.
	Seed int64 `toml:"seed"`
}

// Load reads and validates a TOML workload suite.
func Load(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("workload: decode %s: %w", path, err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return Config{}, fmt.Errorf("workload: %s: unknown key %q", path, undec[0].String())
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes a TOML workload suite from a string.
func Parse(data string) (Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("workload: decode: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if len(c.Workloads) == 0 {
		return errors.New("workload: suite defines no workloads")
	}
	for i, w := range c.Workloads {
		if err := w.validate(); err != nil {
			return fmt.Errorf("workload: entry %d (%q): %w", i, w.Name, err)
		}
	}
	return nil
}

func (w Workload) validate() error {
	switch w.Kind {
	case "chain", "ring", "clique":
	case "random":
		if w.Degree < 0 {
			return fmt.Errorf("negative degree %d", w.Degree)
		}
	default:
		return fmt.Errorf("unknown kind %q", w.Kind)
	}
	if w.Nodes <= 0 {
		return fmt.Errorf("nodes must be positive, got %d", w.Nodes)
	}
	if w.Keep < 0 || w.Keep > w.Nodes {
		return fmt.Errorf("keep %d out of range [0,%d]", w.Keep, w.Nodes)
	}
	return nil
}

// Vertex is the graph node used by every workload shape.
type Vertex struct {
	ID  int
	Out []cycle.Handle[*Vertex]
}

// Trace presents each outgoing edge.
func (v *Vertex) Trace(t *cycle.Tracer) {
	for _, h := range v.Out {
		t.Visit(h)
	}
}

// Result is what one measured collection pass did to a built workload.
type Result struct {
	Workload      string        `json:"workload"`
	Nodes         int           `json:"nodes"`
	TrackedBefore int           `json:"tracked_before"`
	Freed         int           `json:"freed"`
	TrackedAfter  int           `json:"tracked_after"`
	Elapsed       time.Duration `json:"elapsed_ns"`
}

// Run builds the workload in a fresh space, releases every external handle
// beyond Keep, runs one timed collection pass, and tears the rest down.
func Run(w Workload, log zerolog.Logger) (Result, error) {
	if err := w.validate(); err != nil {
		return Result{}, fmt.Errorf("workload: %w", err)
	}

	s := cycle.NewSpace(cycle.WithLogger(log))
	kept := build(s, w)

	before := s.TrackedCount()
	start := time.Now()
	freed := s.CollectCycles()
	elapsed := time.Since(start)

	res := Result{
		Workload:      w.Name,
		Nodes:         w.Nodes,
		TrackedBefore: before,
		Freed:         freed,
		TrackedAfter:  s.TrackedCount(),
		Elapsed:       elapsed,
	}

	for _, h := range kept {
		h.Release()
	}
	if err := s.Close(); err != nil {
		return res, fmt.Errorf("workload: close space: %w", err)
	}
	if n := s.TrackedCount(); n != 0 {
		return res, fmt.Errorf("workload: %d objects survived teardown", n)
	}
	return res, nil
}

// build constructs the graph and returns the kept external handles; all
// other external handles are already released.
func build(s *cycle.Space, w Workload) []cycle.Handle[*Vertex] {
	handles := make([]cycle.Handle[*Vertex], w.Nodes)
	for i := range handles {
		handles[i] = cycle.NewIn(s, &Vertex{ID: i})
	}

	addEdge := func(from, to int) {
		v := handles[from].Value()
		v.Out = append(v.Out, handles[to].Clone())
	}

	switch w.Kind {
	case "chain":
		for i := 0; i+1 < w.Nodes; i++ {
			addEdge(i, i+1)
		}
	case "ring":
		for i := 0; i < w.Nodes; i++ {
			addEdge(i, (i+1)%w.Nodes)
		}
	case "clique":
		for i := 0; i < w.Nodes; i++ {
			for j := 0; j < w.Nodes; j++ {
				if i != j {
					addEdge(i, j)
				}
			}
		}
	case "random":
		rng := rand.New(rand.NewSource(w.Seed))
		for i := 0; i < w.Nodes; i++ {
			for d := 0; d < w.Degree; d++ {
				addEdge(i, rng.Intn(w.Nodes))
			}
		}
	}

	for i := w.Keep; i < w.Nodes; i++ {
		handles[i].Release()
	}
	return handles[:w.Keep]
}
