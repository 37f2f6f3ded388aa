package flow_test

import (
	"bytes"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ssgpath/flow"
	"github.com/katalvlaran/ssgpath/ssg"
)

// randomCapacities gives every declared edge a capacity in [1, hi].
func randomCapacities(t *testing.T, rng *rand.Rand, g *ssg.Graph, hi int64) {
	t.Helper()
	for _, e := range g.Edges() {
		if e.Final {
			continue
		}
		require.NoError(t, g.SetCapacity(e.ID, 1+rng.Int63n(hi)))
	}
}

func TestEdmondsKarp_AgreesWithDinic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 60; round++ {
		n := 2 + rng.Intn(8)
		g := randomGraph(t, rng, n, 0.35)
		randomCapacities(t, rng, g, 5)

		d, err := flow.Dinic(g)
		require.NoError(t, err)
		assertPairInvariant(t, g)

		ek, err := flow.EdmondsKarp(g, flow.WithResetFlow())
		require.NoError(t, err)
		assertPairInvariant(t, g)

		require.Equal(t, d.MaxFlow, ek.MaxFlow, "round %d", round)
		require.Equal(t, bruteMinCut(g), ek.MaxFlow, "round %d", round)
		require.Equal(t, ek.Phases, ek.Augmentations)

		cut, err := flow.MinCut(g)
		require.NoError(t, err)
		require.Equal(t, ek.MaxFlow, cut.Capacity, "round %d", round)
	}
}

func TestEdmondsKarp_UnitCapacity(t *testing.T) {
	g := build(t, 1, [][2]int64{{1, 2}, {1, 3}, {2, 4}, {3, 4}, {2, 3}})
	res, err := flow.EdmondsKarp(g, flow.WithCapacity(1))
	require.NoError(t, err)
	require.Equal(t, int64(2), res.MaxFlow)
	require.Equal(t, 2, res.Augmentations)

	ps, err := flow.Decompose(g)
	require.NoError(t, err)
	require.Len(t, ps, 2)
}

func TestEdmondsKarp_MaxPhasesAndErrors(t *testing.T) {
	g := build(t, 1, [][2]int64{{1, 2}, {1, 3}, {2, 4}, {3, 4}})
	res, err := flow.EdmondsKarp(g, flow.WithCapacity(1), flow.WithMaxPhases(1))
	require.NoError(t, err)
	require.Equal(t, int64(1), res.MaxFlow)
	require.Equal(t, 1, res.Phases)

	_, err = flow.EdmondsKarp(nil)
	require.ErrorIs(t, err, flow.ErrGraphNil)
	_, err = flow.EdmondsKarp(g, flow.WithCapacity(-1))
	require.ErrorIs(t, err, flow.ErrOptionViolation)

	unsealed := ssg.New()
	_, _ = unsealed.AddNode(1, "a")
	_, err = flow.EdmondsKarp(unsealed)
	require.ErrorIs(t, err, ssg.ErrNoSink)
}

func TestEdmondsKarp_Logger(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	g := build(t, 1, [][2]int64{{1, 2}, {1, 3}, {2, 4}, {3, 4}})
	_, err := flow.EdmondsKarp(g, flow.WithCapacity(1), flow.WithLogger(l))
	require.NoError(t, err)
	require.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("edmonds-karp augment")))
	require.Contains(t, buf.String(), "max_flow=2")
}
