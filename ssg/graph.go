// File: graph.go
// Role: Structural mutation (AddNode/AddEdge/AugmentWithSink) and lookups.

package ssg

import (
	"fmt"
	"strconv"
)

// AddNode registers the state with the given external id and returns its
// dense index. Repeated ids return the existing index and keep the first label.
//
// The first node ever added is the source.
func (g *Graph) AddNode(externalID int64, label string) (int, error) {
	if idx, ok := g.byExternal[externalID]; ok {
		return idx, nil
	}
	if g.sink >= 0 {
		return -1, fmt.Errorf("%w: node %d", ErrSealed, externalID)
	}

	var state any
	if g.parser != nil {
		s, err := g.parser(label)
		if err != nil {
			return -1, fmt.Errorf("ssg: parse state of node %d: %w", externalID, err)
		}
		state = s
	}

	idx := len(g.nodes)
	g.nodes = append(g.nodes, Node{Index: idx, ExternalID: externalID, Label: label, State: state})
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	g.flowAdj = append(g.flowAdj, nil)
	g.byExternal[externalID] = idx

	return idx, nil
}

// AddEdge inserts the transition src→dst unless one already exists for the
// ordered pair. It returns the primary edge id and whether it was inserted.
func (g *Graph) AddEdge(src, dst int, label string, params []string) (int, bool, error) {
	if err := g.checkIndex(src); err != nil {
		return noEdge, false, err
	}
	if err := g.checkIndex(dst); err != nil {
		return noEdge, false, err
	}
	if id, ok := g.pairs[pair{src, dst}]; ok {
		return id, false, nil
	}
	if g.sink >= 0 {
		return noEdge, false, fmt.Errorf("%w: edge %d -> %d", ErrSealed, g.nodes[src].ExternalID, g.nodes[dst].ExternalID)
	}

	id := g.link(src, dst, label, params, g.defaultCap, false)

	return id, true, nil
}

// link appends a primary edge and its residual and wires adjacency.
func (g *Graph) link(src, dst int, label string, params []string, capacity int64, final bool) int {
	id := len(g.edges)
	rid := id + 1
	var ps []string
	if len(params) > 0 {
		ps = append([]string(nil), params...)
	}
	g.edges = append(g.edges,
		Edge{ID: id, Src: src, Dst: dst, Label: label, Params: ps, Capacity: capacity, Residual: rid, Final: final},
		Edge{ID: rid, Src: dst, Dst: src, Label: ReversePrefix + label, Residual: id, Reverse: true, Final: final},
	)
	g.pairs[pair{src, dst}] = id
	g.out[src] = append(g.out[src], id)
	g.in[dst] = append(g.in[dst], id)
	g.flowAdj[src] = append(g.flowAdj[src], id)
	g.flowAdj[dst] = append(g.flowAdj[dst], rid)
	g.numPrimary++

	return id
}

// AugmentWithSink appends the synthetic sink and connects every node without
// outgoing edges to it through a "final" edge of FinalCapacity. Those nodes
// are marked Terminal. A terminal source gets the default capacity instead,
// since its only path is [source, sink]. The structure is sealed afterwards.
//
// Complexity: O(V).
func (g *Graph) AugmentWithSink() (int, error) {
	if g.sink >= 0 {
		return g.sink, ErrSinkExists
	}
	if len(g.nodes) == 0 {
		return -1, ErrEmptyGraph
	}

	n := len(g.nodes)
	sink := n
	g.nodes = append(g.nodes, Node{Index: sink, ExternalID: SinkExternalID, Label: "sink", Sink: true})
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	g.flowAdj = append(g.flowAdj, nil)

	for i := 0; i < n; i++ {
		if len(g.out[i]) > 0 {
			continue
		}
		g.nodes[i].Terminal = true
		c := FinalCapacity
		if i == 0 {
			// a source without transitions supports exactly one path
			c = g.defaultCap
		}
		g.link(i, sink, FinalLabel, nil, c, true)
	}
	g.sink = sink

	return sink, nil
}

// Sealed reports whether AugmentWithSink has run.
func (g *Graph) Sealed() bool { return g.sink >= 0 }

// Source returns the index of the initial state.
func (g *Graph) Source() (int, error) {
	if len(g.nodes) == 0 {
		return -1, ErrEmptyGraph
	}

	return 0, nil
}

// Sink returns the index of the synthetic sink.
func (g *Graph) Sink() (int, error) {
	if g.sink < 0 {
		return -1, ErrNoSink
	}

	return g.sink, nil
}

// NumNodes returns the number of nodes, the sink included.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// NumEdges returns the number of primary edges, sink edges included.
// Residual companions are not counted.
func (g *Graph) NumEdges() int { return g.numPrimary }

// Node returns a copy of the node at index.
func (g *Graph) Node(index int) (Node, error) {
	if err := g.checkIndex(index); err != nil {
		return Node{}, err
	}

	return g.nodes[index], nil
}

// Nodes returns a copy of all nodes in index order.
func (g *Graph) Nodes() []Node {
	return append([]Node(nil), g.nodes...)
}

// Terminals returns the indices of terminal states in index order.
func (g *Graph) Terminals() []int {
	var ts []int
	for _, n := range g.nodes {
		if n.Terminal {
			ts = append(ts, n.Index)
		}
	}

	return ts
}

// HasNode reports whether a node with the external id exists.
func (g *Graph) HasNode(externalID int64) bool {
	_, ok := g.byExternal[externalID]
	return ok
}

// Index resolves an external id to its dense index.
func (g *Graph) Index(externalID int64) (int, error) {
	idx, ok := g.byExternal[externalID]
	if !ok {
		return -1, fmt.Errorf("%w: %d", ErrNodeNotFound, externalID)
	}

	return idx, nil
}

// NodeByExternal returns the node declared with the external id.
func (g *Graph) NodeByExternal(externalID int64) (Node, error) {
	idx, err := g.Index(externalID)
	if err != nil {
		return Node{}, err
	}

	return g.nodes[idx], nil
}

// ExternalID returns the external id of the node at index.
func (g *Graph) ExternalID(index int) (int64, error) {
	if err := g.checkIndex(index); err != nil {
		return 0, err
	}

	return g.nodes[index].ExternalID, nil
}

// Outgoing returns copies of the primary edges leaving index, in insertion order.
func (g *Graph) Outgoing(index int) ([]Edge, error) {
	if err := g.checkIndex(index); err != nil {
		return nil, err
	}

	return g.collect(g.out[index]), nil
}

// Incoming returns copies of the primary edges entering index, in insertion order.
func (g *Graph) Incoming(index int) ([]Edge, error) {
	if err := g.checkIndex(index); err != nil {
		return nil, err
	}

	return g.collect(g.in[index]), nil
}

// OutDegree returns the number of primary edges leaving index.
func (g *Graph) OutDegree(index int) (int, error) {
	if err := g.checkIndex(index); err != nil {
		return 0, err
	}

	return len(g.out[index]), nil
}

// ReachableNodes returns the external ids of the direct successors of the node
// with the given external id, in insertion order. The sink is reported as
// SinkExternalID.
func (g *Graph) ReachableNodes(externalID int64) ([]int64, error) {
	idx, err := g.Index(externalID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(g.out[idx]))
	for _, eid := range g.out[idx] {
		ids = append(ids, g.nodes[g.edges[eid].Dst].ExternalID)
	}

	return ids, nil
}

// HasEdge reports whether a primary edge src→dst exists.
func (g *Graph) HasEdge(src, dst int) bool {
	_, ok := g.pairs[pair{src, dst}]
	return ok
}

// EdgeID returns the id of the primary edge src→dst.
func (g *Graph) EdgeID(src, dst int) (int, error) {
	id, ok := g.pairs[pair{src, dst}]
	if !ok {
		return noEdge, fmt.Errorf("%w: %d -> %d", ErrEdgeNotFound, src, dst)
	}

	return id, nil
}

// EdgeBetween returns the primary edge between two external ids.
func (g *Graph) EdgeBetween(srcExternal, dstExternal int64) (Edge, error) {
	src, err := g.Index(srcExternal)
	if err != nil {
		return Edge{}, err
	}
	dst, err := g.Index(dstExternal)
	if err != nil {
		return Edge{}, err
	}
	id, ok := g.pairs[pair{src, dst}]
	if !ok {
		return Edge{}, fmt.Errorf("%w: %d -> %d", ErrEdgeNotFound, srcExternal, dstExternal)
	}

	return g.edges[id], nil
}

// Edge returns a copy of the edge with the given id (primary or residual).
func (g *Graph) Edge(id int) (Edge, error) {
	if id < 0 || id >= len(g.edges) {
		return Edge{}, fmt.Errorf("%w: %d", ErrEdgeNotFound, id)
	}

	return g.edges[id], nil
}

// Edges returns copies of all primary edges in insertion order.
func (g *Graph) Edges() []Edge {
	es := make([]Edge, 0, g.numPrimary)
	for _, e := range g.edges {
		if !e.Reverse {
			es = append(es, e)
		}
	}

	return es
}

// EdgeKey renders an edge as "<srcExternal> -> <dstExternal>".
func (g *Graph) EdgeKey(id int) string {
	if id < 0 || id >= len(g.edges) {
		return strconv.Itoa(id)
	}
	e := g.edges[id]

	return strconv.FormatInt(g.nodes[e.Src].ExternalID, 10) + " -> " +
		strconv.FormatInt(g.nodes[e.Dst].ExternalID, 10)
}

func (g *Graph) collect(ids []int) []Edge {
	es := make([]Edge, len(ids))
	for i, id := range ids {
		es[i] = g.edges[id]
	}

	return es
}

func (g *Graph) checkIndex(index int) error {
	if index < 0 || index >= len(g.nodes) {
		return fmt.Errorf("%w: index %d", ErrNodeNotFound, index)
	}

	return nil
}
