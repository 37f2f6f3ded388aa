// File: methods_flow.go
// Role: Capacity/flow surface used by max-flow computations.
// Invariants:
//   - 0 ≤ Flow ≤ Capacity on primary edges.
//   - Flow(e) + Flow(Residual(e)) == 0 for every pair.

package ssg

import (
	"fmt"
	"math"
)

// IncEdgeFlow adds val to the flow of edge id and subtracts it from the
// paired residual. It returns ErrEdgeCapacityReached, naming the edge, when
// the flow of the primary edge of the pair would leave [0, capacity].
func (g *Graph) IncEdgeFlow(id int, val int64) error {
	if id < 0 || id >= len(g.edges) {
		return fmt.Errorf("%w: %d", ErrEdgeNotFound, id)
	}
	p, delta := id, val
	if g.edges[id].Reverse {
		p, delta = g.edges[id].Residual, -val
	}
	next := g.edges[p].Flow + delta
	if next < 0 || next > g.edges[p].Capacity {
		return fmt.Errorf("%w: %d (%s)", ErrEdgeCapacityReached, id, g.EdgeKey(id))
	}
	g.Push(id, val)

	return nil
}

// Push moves b units over edge id without bound checks. Callers must have
// checked Remaining(id) ≥ b.
func (g *Graph) Push(id int, b int64) {
	r := g.edges[id].Residual
	g.edges[id].Flow += b
	g.edges[r].Flow -= b
}

// Remaining returns the residual capacity of edge id. Hot path: no bound check.
func (g *Graph) Remaining(id int) int64 {
	return g.edges[id].Capacity - g.edges[id].Flow
}

// Endpoints returns src and dst of edge id. Hot path: no bound check.
func (g *Graph) Endpoints(id int) (src, dst int) {
	return g.edges[id].Src, g.edges[id].Dst
}

// Flow returns the current flow of edge id.
func (g *Graph) Flow(id int) (int64, error) {
	if id < 0 || id >= len(g.edges) {
		return 0, fmt.Errorf("%w: %d", ErrEdgeNotFound, id)
	}

	return g.edges[id].Flow, nil
}

// Residual returns the id of the edge paired with id.
func (g *Graph) Residual(id int) (int, error) {
	if id < 0 || id >= len(g.edges) {
		return noEdge, fmt.Errorf("%w: %d", ErrEdgeNotFound, id)
	}
	r := g.edges[id].Residual
	if r < 0 || r >= len(g.edges) || g.edges[r].Residual != id {
		panic(fmt.Sprintf("ssg: residual pairing broken for edge %d", id))
	}

	return r, nil
}

// FlowAdjacency returns the ids of every edge leaving index, residual
// companions included. The slice is owned by the graph and must not be modified.
func (g *Graph) FlowAdjacency(index int) []int {
	return g.flowAdj[index]
}

// NumEdgeSlots returns the size of the edge arena (primary + residual).
func (g *Graph) NumEdgeSlots() int { return len(g.edges) }

// SetCapacity sets the capacity of primary edge id. The current flow must fit.
func (g *Graph) SetCapacity(id int, c int64) error {
	if id < 0 || id >= len(g.edges) || g.edges[id].Reverse {
		return fmt.Errorf("%w: %d", ErrEdgeNotFound, id)
	}
	if c < 0 {
		return fmt.Errorf("%w: %d", ErrBadCapacity, c)
	}
	if g.edges[id].Flow > c {
		return fmt.Errorf("%w: %d (%s)", ErrEdgeCapacityReached, id, g.EdgeKey(id))
	}
	g.edges[id].Capacity = c

	return nil
}

// SetUniformCapacity sets every declared (non-final) primary edge to c and
// clears all flow. Sink edges keep FinalCapacity, except the one leaving a
// terminal source.
func (g *Graph) SetUniformCapacity(c int64) error {
	if c < 0 {
		return fmt.Errorf("%w: %d", ErrBadCapacity, c)
	}
	for i := range g.edges {
		e := &g.edges[i]
		e.Flow = 0
		if !e.Reverse && (!e.Final || e.Src == 0) {
			e.Capacity = c
		}
	}

	return nil
}

// ResetFlow clears the flow of every edge.
func (g *Graph) ResetFlow() {
	for i := range g.edges {
		g.edges[i].Flow = 0
	}
}

// TotalCapacity returns the saturating sum of all primary capacities.
func (g *Graph) TotalCapacity() int64 {
	var sum int64
	for _, e := range g.edges {
		if e.Reverse {
			continue
		}
		if sum > math.MaxInt64-e.Capacity {
			return math.MaxInt64
		}
		sum += e.Capacity
	}

	return sum
}
