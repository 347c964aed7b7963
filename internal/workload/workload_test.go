package workload

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSuite = `
name = "sample"

[[workload]]
name  = "small-ring"
kind  = "ring"
nodes = 10

[[workload]]
name   = "held-random"
kind   = "random"
nodes  = 50
degree = 2
keep   = 5
seed   = 7
`

func TestParse_SampleSuite(t *testing.T) {
	cfg, err := Parse(sampleSuite)
	require.NoError(t, err)

	assert.Equal(t, "sample", cfg.Name)
	require.Len(t, cfg.Workloads, 2)
	assert.Equal(t, "ring", cfg.Workloads[0].Kind)
	assert.Equal(t, 10, cfg.Workloads[0].Nodes)
	assert.Equal(t, int64(7), cfg.Workloads[1].Seed)
}

func TestParse_Invalid(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"no workloads", `name = "x"`},
		{"unknown kind", "[[workload]]\nkind = \"tree\"\nnodes = 3"},
		{"zero nodes", "[[workload]]\nkind = \"ring\"\nnodes = 0"},
		{"keep beyond nodes", "[[workload]]\nkind = \"ring\"\nnodes = 3\nkeep = 4"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.doc)
			assert.Error(t, err)
		})
	}
}

func TestRun_OrphanRingIsFullyFreed(t *testing.T) {
	res, err := Run(Workload{Name: "r", Kind: "ring", Nodes: 100}, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, 100, res.TrackedBefore)
	assert.Equal(t, 100, res.Freed, "orphaned ring must be reclaimed in one pass")
	assert.Equal(t, 0, res.TrackedAfter)
}

func TestRun_ChainNeedsNoPass(t *testing.T) {
	res, err := Run(Workload{Name: "c", Kind: "chain", Nodes: 100, Keep: 1}, zerolog.Nop())
	require.NoError(t, err)

	// The kept head holds the whole chain; the pass frees nothing.
	assert.Equal(t, 100, res.TrackedBefore)
	assert.Equal(t, 0, res.Freed)
	assert.Equal(t, 100, res.TrackedAfter)
}

func TestRun_CliqueWithHeldHandle(t *testing.T) {
	res, err := Run(Workload{Name: "k", Kind: "clique", Nodes: 8, Keep: 1}, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, 0, res.Freed, "a clique is one cycle; a single held handle keeps all of it")
	assert.Equal(t, 8, res.TrackedAfter)
}

func TestRun_RandomIsReproducibleAndLeakFree(t *testing.T) {
	w := Workload{Name: "rnd", Kind: "random", Nodes: 200, Degree: 3, Seed: 42}

	a, err := Run(w, zerolog.Nop())
	require.NoError(t, err)
	b, err := Run(w, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, a.Freed, b.Freed, "fixed seed must give identical graphs")
	assert.Equal(t, a.TrackedAfter, b.TrackedAfter)
}
