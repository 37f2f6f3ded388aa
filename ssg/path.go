package ssg

import (
	"encoding/binary"
	"fmt"
)

// Path is an ordered sequence of node indices beginning at the source.
// It is complete when it ends at the sink.
type Path []int

// Len returns the number of nodes in the path.
func (p Path) Len() int { return len(p) }

// Last returns the final node, or -1 for an empty path.
func (p Path) Last() int {
	if len(p) == 0 {
		return -1
	}

	return p[len(p)-1]
}

// Equal reports sequence equality.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}

	return true
}

// Clone returns an independent copy.
func (p Path) Clone() Path {
	return append(Path(nil), p...)
}

// Extend returns a new path with v appended; p is not modified.
func (p Path) Extend(v int) Path {
	q := make(Path, len(p)+1)
	copy(q, p)
	q[len(p)] = v

	return q
}

// Key returns a comparable encoding of the sequence, suitable as a map key.
func (p Path) Key() string {
	buf := make([]byte, 0, len(p)*binary.MaxVarintLen32)
	for _, v := range p {
		buf = binary.AppendUvarint(buf, uint64(v))
	}

	return string(buf)
}

// Complete reports whether p ends at the sink of g.
func (g *Graph) Complete(p Path) bool {
	return g.sink >= 0 && len(p) > 0 && p[len(p)-1] == g.sink
}

// ValidPath checks that p starts at the source and that every consecutive
// pair is a primary edge.
func (g *Graph) ValidPath(p Path) error {
	if len(p) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	if p[0] != 0 {
		return fmt.Errorf("%w: starts at %d, not at the source", ErrInvalidPath, p[0])
	}
	for i := 1; i < len(p); i++ {
		if !g.HasEdge(p[i-1], p[i]) {
			return fmt.Errorf("%w: no edge %d -> %d at position %d", ErrInvalidPath, p[i-1], p[i], i)
		}
	}

	return nil
}

// PathEdges resolves p into the primary edges it traverses.
func (g *Graph) PathEdges(p Path) ([]Edge, error) {
	es := make([]Edge, 0, len(p))
	for i := 1; i < len(p); i++ {
		id, ok := g.pairs[pair{p[i-1], p[i]}]
		if !ok {
			return nil, fmt.Errorf("%w: no edge %d -> %d at position %d", ErrInvalidPath, p[i-1], p[i], i)
		}
		es = append(es, g.edges[id])
	}

	return es, nil
}
