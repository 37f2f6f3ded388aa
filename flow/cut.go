package flow

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/ssgpath/ssg"
)

// ErrFlowNotMaximal is returned by MinCut while the sink is still reachable
// in the residual graph.
var ErrFlowNotMaximal = errors.New("flow: sink still reachable, flow is not maximal")

// ErrFlowNotConserved is returned by Decompose when an inner node receives
// more flow than it forwards.
var ErrFlowNotConserved = errors.New("flow: flow conservation violated")

// MinCut derives the minimum s–t cut from the residual graph left by Dinic.
// By max-flow/min-cut duality its Capacity equals the max flow.
//
// Complexity: O(V + E).
func MinCut(g *ssg.Graph) (Cut, error) {
	if g == nil {
		return Cut{}, ErrGraphNil
	}
	level := make([]int, g.NumNodes())
	err := Levels(g, level)
	switch {
	case err == nil:
		return Cut{}, ErrFlowNotMaximal
	case !errors.Is(err, ErrUnableToReachSink):
		return Cut{}, err
	}

	var cut Cut
	for u, l := range level {
		if l < 0 {
			continue
		}
		cut.SourceSide = append(cut.SourceSide, u)
		out, _ := g.Outgoing(u)
		for _, e := range out {
			if level[e.Dst] < 0 {
				cut.Edges = append(cut.Edges, e.ID)
				cut.Capacity += e.Capacity
			}
		}
	}

	return cut, nil
}

// FlowPath is one source→sink path of a flow decomposition.
type FlowPath struct {
	Path ssg.Path
	Flow int64
}

// Decompose splits the current flow of g into source→sink paths. Flow cycles
// met on the way are cancelled and not reported. With unit capacities every
// FlowPath carries 1 and the number of paths equals the max flow; together
// they form a maximum set of edge-disjoint paths.
//
// g is not modified.
//
// Complexity: O(F·V + E) where F is the number of paths.
func Decompose(g *ssg.Graph) ([]FlowPath, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	source, err := g.Source()
	if err != nil {
		return nil, err
	}
	sink, err := g.Sink()
	if err != nil {
		return nil, err
	}

	rem := make([]int64, g.NumEdgeSlots())
	adj := make([][]int, g.NumNodes())
	for _, e := range g.Edges() {
		if e.Flow > 0 {
			rem[e.ID] = e.Flow
			adj[e.Src] = append(adj[e.Src], e.ID)
		}
	}
	cursor := make([]int, g.NumNodes())
	pos := make([]int, g.NumNodes()) // position on the current walk, -1 if absent
	for i := range pos {
		pos[i] = -1
	}

	// next returns an edge leaving u that still carries flow, or -1.
	next := func(u int) int {
		for ; cursor[u] < len(adj[u]); cursor[u]++ {
			if e := adj[u][cursor[u]]; rem[e] > 0 {
				return e
			}
		}
		return -1
	}

	var out []FlowPath
	for {
		nodes := []int{source}
		var edges []int
		pos[source] = 0
		u := source
		for u != sink {
			e := next(u)
			if e < 0 {
				for _, v := range nodes {
					pos[v] = -1
				}
				if u == source {
					return out, nil
				}
				return out, fmt.Errorf("%w at node %d", ErrFlowNotConserved, u)
			}
			_, v := g.Endpoints(e)
			edges = append(edges, e)
			if k := pos[v]; k >= 0 {
				// cycle nodes[k..] → v: cancel its bottleneck and rewind
				b := minRem(rem, edges[k:])
				for _, ce := range edges[k:] {
					rem[ce] -= b
				}
				for _, w := range nodes[k+1:] {
					pos[w] = -1
				}
				nodes = nodes[:k+1]
				edges = edges[:k]
				u = v
				continue
			}
			pos[v] = len(nodes)
			nodes = append(nodes, v)
			u = v
		}

		b := minRem(rem, edges)
		for _, e := range edges {
			rem[e] -= b
		}
		for _, v := range nodes {
			pos[v] = -1
		}
		out = append(out, FlowPath{Path: ssg.Path(nodes), Flow: b})
	}
}

func minRem(rem []int64, edges []int) int64 {
	b := rem[edges[0]]
	for _, e := range edges[1:] {
		if rem[e] < b {
			b = rem[e]
		}
	}

	return b
}
