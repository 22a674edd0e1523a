package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_Deterministic(t *testing.T) {
	a := New("maze-42")
	b := New("maze-42")
	for i := 0; i < 200; i++ {
		require.Equal(t, a.Float64(), b.Float64(), "draw %d differs", i)
	}
}

func TestStream_DifferentSeedsDiverge(t *testing.T) {
	a := New("alpha")
	b := New("beta")
	same := 0
	for i := 0; i < 50; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	assert.Less(t, same, 50)
}

func TestStream_FloatRange(t *testing.T) {
	s := New("range")
	for i := 0; i < 10_000; i++ {
		f := s.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("draw %d out of range [0, 1): %f", i, f)
		}
	}
}

func TestStream_Intn(t *testing.T) {
	s := New("intn")
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := s.Intn(5)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 5)
		seen[v] = true
	}
	assert.Len(t, seen, 5)
	assert.Panics(t, func() { s.Intn(0) })
}

func TestStream_ShuffleIsPermutation(t *testing.T) {
	s := New("shuffle")
	xs := []int{0, 1, 2, 3, 4, 5, 6, 7}
	s.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, xs)

	ys := []int{0, 1, 2, 3, 4, 5, 6, 7}
	New("shuffle").Shuffle(len(ys), func(i, j int) { ys[i], ys[j] = ys[j], ys[i] })
	assert.Equal(t, xs, ys)
}

func TestEntropy(t *testing.T) {
	a := NewEntropy()
	b := NewEntropy()
	assert.Len(t, a.Seed(), 32)
	assert.NotEqual(t, a.Seed(), b.Seed())

	replay := New(a.Seed())
	assert.Equal(t, a.Float64(), replay.Float64())
}

func TestFromOptional(t *testing.T) {
	assert.Equal(t, "fixed", FromOptional("fixed").Seed())
	assert.NotEmpty(t, FromOptional("").Seed())
}

func TestDerive(t *testing.T) {
	assert.Equal(t, "s:alice", Derive("s", "alice"))
	assert.Equal(t, "s", DeriveAttempt("s", 0))
	assert.Equal(t, "s#3", DeriveAttempt("s", 3))
}
