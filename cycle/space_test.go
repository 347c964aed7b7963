package cycle

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpace_Isolation(t *testing.T) {
	s1 := NewSpace()
	s2 := NewSpace()
	freed1 := 0
	freed2 := 0

	a := newNode(s1, "a", &freed1)
	link(a, a)
	a.Release()

	b := newNode(s2, "b", &freed2)
	link(b, b)
	b.Release()

	// Collecting one space must not look at the other.
	assert.Equal(t, 1, s1.CollectCycles())
	assert.Equal(t, 1, freed1)
	assert.Equal(t, 0, freed2)
	assert.Equal(t, 1, s2.TrackedCount())

	assert.Equal(t, 1, s2.CollectCycles())
	assert.Equal(t, 1, freed2)
}

func TestSpace_CloseCollects(t *testing.T) {
	s := NewSpace()
	freed := 0

	a := newNode(s, "a", &freed)
	link(a, a)
	a.Release()

	require.NoError(t, s.Close())
	assert.Equal(t, 1, freed)
	assert.Equal(t, 0, s.TrackedCount())
}

func TestSpace_CloseKeepsLiveObjects(t *testing.T) {
	s := NewSpace()
	freed := 0

	a := newNode(s, "a", &freed)
	require.NoError(t, s.Close())

	assert.Equal(t, 0, freed, "externally held object must survive Close")
	assert.Equal(t, "a", a.Value().name)
	a.Release()
	assert.Equal(t, 1, freed)
}

func TestSpace_LeakAbandonsTracking(t *testing.T) {
	s := NewSpace()
	freed := 0

	a := newNode(s, "a", &freed)
	b := newNode(s, "b", &freed)
	link(a, b)
	link(b, a)
	a.Release()
	b.Release()

	require.Equal(t, 2, s.TrackedCount())
	s.Leak()

	assert.Equal(t, 0, s.TrackedCount())
	assert.Equal(t, 0, s.CollectCycles(), "leaked cycle must be invisible to the collector")
	assert.Equal(t, 0, freed, "leak must not run finalizers")
}

func TestSpace_RefcountStillWorksAfterLeak(t *testing.T) {
	s := NewSpace()
	freed := 0

	a := newNode(s, "a", &freed)
	s.Leak()

	assert.False(t, a.Tracked())
	a.Release()
	assert.Equal(t, 1, freed, "plain refcounting must survive Leak")
}

func TestSpace_CollectLogsPass(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpace(WithLogger(zerolog.New(&buf)))

	a := newNode(s, "a", nil)
	link(a, a)
	a.Release()
	s.CollectCycles()

	out := buf.String()
	assert.Contains(t, out, "collection pass")
	assert.Contains(t, out, `"freed":1`)
	assert.Contains(t, out, `"examined":1`)
}

func TestSpace_DefaultSpaceConvenience(t *testing.T) {
	base := TrackedCount()
	freed := 0

	a := New(&node{name: "a", freed: &freed})
	link(a, a)
	require.Equal(t, base+1, TrackedCount())

	a.Release()
	assert.Equal(t, base+1, TrackedCount(), "orphan cycle waits for a pass")
	assert.Equal(t, 1, CollectCycles())
	assert.Equal(t, base, TrackedCount())
	assert.Equal(t, 1, freed)
	assert.Same(t, DefaultSpace(), defaultSpace)
}
