package ssg

import "fmt"

// FromRecords builds a sealed Graph from a record stream. Nodes are added in
// order (the first one is the source); edges are buffered until every node is
// known so they may reference states declared later. Duplicate (src,dst)
// pairs keep the first declaration. The sink is appended last.
func FromRecords(nodes []NodeRecord, edges []EdgeRecord, opts ...Option) (*Graph, error) {
	g := New(append([]Option{WithExpectedSize(len(nodes), len(edges))}, opts...)...)
	for _, n := range nodes {
		if _, err := g.AddNode(n.ID, n.Label); err != nil {
			return nil, err
		}
	}
	for _, e := range edges {
		src, err := g.Index(e.Src)
		if err != nil {
			return nil, fmt.Errorf("edge %d -> %d: %w", e.Src, e.Dst, err)
		}
		dst, err := g.Index(e.Dst)
		if err != nil {
			return nil, fmt.Errorf("edge %d -> %d: %w", e.Src, e.Dst, err)
		}
		if _, _, err = g.AddEdge(src, dst, e.Label, e.Params); err != nil {
			return nil, err
		}
	}
	if _, err := g.AugmentWithSink(); err != nil {
		return nil, err
	}

	return g, nil
}
