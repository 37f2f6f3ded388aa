package ssg_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/ssgpath/ssg"
)

// GraphSuite covers construction, sink augmentation and lookups.
type GraphSuite struct {
	suite.Suite
}

// diamond builds s→a, s→b, a→t, b→t plus the sink. Indices: s0 a1 b2 t3 sink4.
func diamond(t *testing.T) *ssg.Graph {
	t.Helper()
	g, err := ssg.FromRecords(
		[]ssg.NodeRecord{{ID: 100, Label: "s"}, {ID: 101, Label: "a"}, {ID: 102, Label: "b"}, {ID: 103, Label: "t"}},
		[]ssg.EdgeRecord{
			{Src: 100, Dst: 101, Label: "left"},
			{Src: 100, Dst: 102, Label: "right", Params: []string{"x"}},
			{Src: 101, Dst: 103, Label: "up"},
			{Src: 102, Dst: 103, Label: "down"},
		},
	)
	require.NoError(t, err)

	return g
}

func (s *GraphSuite) TestAddNodeIdempotent() {
	g := ssg.New()
	i, err := g.AddNode(7, "first")
	require.NoError(s.T(), err)
	j, err := g.AddNode(7, "second")
	require.NoError(s.T(), err)
	require.Equal(s.T(), i, j)
	n, err := g.Node(i)
	require.NoError(s.T(), err)
	require.Equal(s.T(), "first", n.Label)
	require.Equal(s.T(), 1, g.NumNodes())
}

func (s *GraphSuite) TestAddEdgeFirstDeclarationWins() {
	g := ssg.New()
	a, _ := g.AddNode(1, "a")
	b, _ := g.AddNode(2, "b")
	id, added, err := g.AddEdge(a, b, "one", nil)
	require.NoError(s.T(), err)
	require.True(s.T(), added)
	id2, added, err := g.AddEdge(a, b, "two", []string{"p"})
	require.NoError(s.T(), err)
	require.False(s.T(), added)
	require.Equal(s.T(), id, id2)
	e, err := g.Edge(id)
	require.NoError(s.T(), err)
	require.Equal(s.T(), "one", e.Label)
	require.Equal(s.T(), 1, g.NumEdges())
}

func (s *GraphSuite) TestAddEdgeUnknownIndex() {
	g := ssg.New()
	a, _ := g.AddNode(1, "a")
	_, _, err := g.AddEdge(a, 9, "x", nil)
	require.ErrorIs(s.T(), err, ssg.ErrNodeNotFound)
	require.Contains(s.T(), err.Error(), "9")
}

func (s *GraphSuite) TestAugmentWithSink() {
	g := diamond(s.T())
	sink, err := g.Sink()
	require.NoError(s.T(), err)
	require.Equal(s.T(), 4, sink)
	require.Equal(s.T(), 5, g.NumNodes())
	require.Equal(s.T(), 5, g.NumEdges())

	out, err := g.Outgoing(sink)
	require.NoError(s.T(), err)
	require.Empty(s.T(), out)

	in, err := g.Incoming(sink)
	require.NoError(s.T(), err)
	require.Len(s.T(), in, 1)
	require.Equal(s.T(), ssg.FinalLabel, in[0].Label)
	require.Equal(s.T(), ssg.FinalCapacity, in[0].Capacity)
	require.True(s.T(), in[0].Final)
	require.Equal(s.T(), []int{3}, g.Terminals())

	// no dead ends except the sink
	for i := 0; i < sink; i++ {
		d, err := g.OutDegree(i)
		require.NoError(s.T(), err)
		require.Positive(s.T(), d)
	}
}

func (s *GraphSuite) TestAugmentTwice() {
	g := diamond(s.T())
	_, err := g.AugmentWithSink()
	require.ErrorIs(s.T(), err, ssg.ErrSinkExists)
}

func (s *GraphSuite) TestSealed() {
	g := diamond(s.T())
	require.True(s.T(), g.Sealed())
	_, err := g.AddNode(999, "late")
	require.ErrorIs(s.T(), err, ssg.ErrSealed)
	require.Contains(s.T(), err.Error(), "node 999")
	_, _, err = g.AddEdge(1, 2, "late", nil)
	require.ErrorIs(s.T(), err, ssg.ErrSealed)
	require.Contains(s.T(), err.Error(), "edge 101 -> 102")
	// existing pair stays idempotent even when sealed
	_, added, err := g.AddEdge(0, 1, "again", nil)
	require.NoError(s.T(), err)
	require.False(s.T(), added)
}

func (s *GraphSuite) TestEmptyGraph() {
	g := ssg.New()
	_, err := g.AugmentWithSink()
	require.ErrorIs(s.T(), err, ssg.ErrEmptyGraph)
	_, err = g.Source()
	require.ErrorIs(s.T(), err, ssg.ErrEmptyGraph)
	_, err = g.Sink()
	require.ErrorIs(s.T(), err, ssg.ErrNoSink)
}

func (s *GraphSuite) TestSingleNode() {
	g, err := ssg.FromRecords([]ssg.NodeRecord{{ID: 5, Label: "only"}}, nil)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 2, g.NumNodes())
	require.Equal(s.T(), 1, g.NumEdges())
	require.Equal(s.T(), []int{0}, g.Terminals())
}

func (s *GraphSuite) TestLookupErrors() {
	g := diamond(s.T())
	_, err := g.Outgoing(42)
	require.ErrorIs(s.T(), err, ssg.ErrNodeNotFound)
	_, err = g.Incoming(-1)
	require.ErrorIs(s.T(), err, ssg.ErrNodeNotFound)
	_, err = g.Edge(1000)
	require.ErrorIs(s.T(), err, ssg.ErrEdgeNotFound)
	_, err = g.EdgeBetween(101, 102)
	require.ErrorIs(s.T(), err, ssg.ErrEdgeNotFound)
	require.Contains(s.T(), err.Error(), "101 -> 102")
	_, err = g.NodeByExternal(77)
	require.ErrorIs(s.T(), err, ssg.ErrNodeNotFound)
}

func (s *GraphSuite) TestInsertionOrder() {
	g := diamond(s.T())
	out, err := g.Outgoing(0)
	require.NoError(s.T(), err)
	require.Len(s.T(), out, 2)
	require.Equal(s.T(), "left", out[0].Label)
	require.Equal(s.T(), "right", out[1].Label)
	require.Equal(s.T(), []string{"x"}, out[1].Params)

	in, err := g.Incoming(3)
	require.NoError(s.T(), err)
	require.Equal(s.T(), "up", in[0].Label)
	require.Equal(s.T(), "down", in[1].Label)
}

func (s *GraphSuite) TestResidualPairing() {
	g := diamond(s.T())
	for _, e := range g.Edges() {
		rid, err := g.Residual(e.ID)
		require.NoError(s.T(), err)
		r, err := g.Edge(rid)
		require.NoError(s.T(), err)
		require.True(s.T(), r.Reverse)
		require.Equal(s.T(), e.Dst, r.Src)
		require.Equal(s.T(), e.Src, r.Dst)
		require.Equal(s.T(), int64(0), r.Capacity)
		require.True(s.T(), strings.HasPrefix(r.Label, ssg.ReversePrefix))
		back, err := g.Residual(rid)
		require.NoError(s.T(), err)
		require.Equal(s.T(), e.ID, back)
	}
}

func (s *GraphSuite) TestStateParser() {
	parser := func(label string) (any, error) {
		if label == "bad" {
			return nil, errors.New("unparsable")
		}
		return strings.ToUpper(label), nil
	}
	g := ssg.New(ssg.WithStateParser(parser))
	i, err := g.AddNode(1, "ok")
	require.NoError(s.T(), err)
	n, _ := g.Node(i)
	require.Equal(s.T(), "OK", n.State)

	_, err = g.AddNode(2, "bad")
	require.Error(s.T(), err)
	require.Contains(s.T(), err.Error(), "2")
	require.False(s.T(), g.HasNode(2))
}

func TestGraphSuite(t *testing.T) {
	suite.Run(t, new(GraphSuite))
}
