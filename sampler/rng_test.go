package sampler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRngFromSeed_ZeroUsesDefault(t *testing.T) {
	a := rngFromSeed(0)
	b := rngFromSeed(DefaultSeed)
	for i := 0; i < 16; i++ {
		require.Equal(t, b.Int63(), a.Int63())
	}
}

func TestDeriveSeed_Spreads(t *testing.T) {
	seen := map[int64]bool{}
	for s := uint64(0); s < 256; s++ {
		v := deriveSeed(42, s)
		require.False(t, seen[v], "collision at stream %d", s)
		seen[v] = true
	}
	require.Equal(t, deriveSeed(42, 7), deriveSeed(42, 7))
}

func TestDeriveRNG_NilBase(t *testing.T) {
	a := deriveRNG(nil, 3)
	b := deriveRNG(nil, 3)
	require.Equal(t, a.Int63(), b.Int63())

	base := rngFromSeed(5)
	c := deriveRNG(base, 3)
	d := deriveRNG(base, 3)
	require.NotEqual(t, c.Int63(), d.Int63())
}
