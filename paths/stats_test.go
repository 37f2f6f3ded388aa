package paths_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ssgpath/paths"
	"github.com/katalvlaran/ssgpath/ssg"
)

func TestIsSimple(t *testing.T) {
	require.True(t, paths.IsSimple(ssg.Path{0, 1, 2}))
	require.False(t, paths.IsSimple(ssg.Path{0, 1, 0}))
	require.True(t, paths.IsSimple(nil))
}

func TestDedup(t *testing.T) {
	in := []ssg.Path{{0, 1}, {0, 2, 1}, {0, 1}, {0, 2, 1}, {0}}
	require.Equal(t, []ssg.Path{{0, 1}, {0, 2, 1}, {0}}, paths.Dedup(in))
}

func TestStats(t *testing.T) {
	require.Equal(t, paths.Summary{}, paths.Stats(nil))

	s := paths.Stats([]ssg.Path{{0, 1}, {0, 1, 2, 3}, {0, 2, 3}})
	require.Equal(t, 3, s.Count)
	require.Equal(t, 2, s.Min)
	require.Equal(t, 4, s.Max)
	require.InDelta(t, 3.0, s.Average, 1e-9)
}

func TestLabelsAndResolve(t *testing.T) {
	g := build(t, 1, [][2]int64{{1, 2}, {1, 3}, {2, 4}, {3, 4}})
	labels, err := paths.Labels(g, ssg.Path{0, 1, 3, 4})
	require.NoError(t, err)
	require.Equal(t, []string{"t1_2", "t2_4"}, labels)

	es, err := paths.Resolve(g, ssg.Path{0, 1, 3, 4})
	require.NoError(t, err)
	require.Len(t, es, 3)
	require.True(t, es[2].Final)

	_, err = paths.Labels(g, ssg.Path{0, 3})
	require.ErrorIs(t, err, ssg.ErrInvalidPath)

	_, err = paths.Resolve(nil, ssg.Path{0})
	require.ErrorIs(t, err, paths.ErrGraphNil)
}

func TestCoveredEdges(t *testing.T) {
	g := build(t, 1, [][2]int64{{1, 2}, {1, 3}, {2, 4}, {3, 4}})
	cov, err := paths.CoveredEdges(g, []ssg.Path{{0, 1, 3, 4}})
	require.NoError(t, err)
	require.Equal(t, paths.Coverage{Covered: 2, Total: 4, Ratio: 0.5}, cov)

	cov, err = paths.CoveredEdges(g, nil)
	require.NoError(t, err)
	require.Equal(t, 0, cov.Covered)
	require.Equal(t, 4, cov.Total)

	_, err = paths.CoveredEdges(g, []ssg.Path{{0, 3}})
	require.ErrorIs(t, err, ssg.ErrInvalidPath)
}
