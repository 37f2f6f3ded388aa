package paths

import (
	"github.com/katalvlaran/ssgpath/ssg"
)

// IsSimple reports whether p visits every node at most once.
func IsSimple(p ssg.Path) bool {
	seen := make(map[int]struct{}, len(p))
	for _, v := range p {
		if _, ok := seen[v]; ok {
			return false
		}
		seen[v] = struct{}{}
	}

	return true
}

// Simple returns the simple paths of ps, preserving order.
func Simple(ps []ssg.Path) []ssg.Path {
	out := make([]ssg.Path, 0, len(ps))
	for _, p := range ps {
		if IsSimple(p) {
			out = append(out, p)
		}
	}

	return out
}

// Dedup removes repeated sequences, keeping the first occurrence.
func Dedup(ps []ssg.Path) []ssg.Path {
	seen := make(map[string]struct{}, len(ps))
	out := make([]ssg.Path, 0, len(ps))
	for _, p := range ps {
		k := p.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}

	return out
}

// Resolve turns p into the primary edges it traverses.
func Resolve(g *ssg.Graph, p ssg.Path) ([]ssg.Edge, error) {
	if g == nil {
		return nil, ErrGraphNil
	}

	return g.PathEdges(p)
}

// Labels returns the transition labels along p. The closing edge into the
// sink is omitted since it is not a transition of the model.
func Labels(g *ssg.Graph, p ssg.Path) ([]string, error) {
	es, err := Resolve(g, p)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(es))
	for _, e := range es {
		if e.Final {
			continue
		}
		out = append(out, e.Label)
	}

	return out, nil
}

// Summary describes the node-count distribution of a path collection.
type Summary struct {
	Count   int
	Min     int
	Max     int
	Average float64
}

// Stats summarises ps. An empty collection yields the zero Summary.
func Stats(ps []ssg.Path) Summary {
	if len(ps) == 0 {
		return Summary{}
	}
	s := Summary{Count: len(ps), Min: len(ps[0]), Max: len(ps[0])}
	var sum int
	for _, p := range ps {
		n := len(p)
		sum += n
		if n < s.Min {
			s.Min = n
		}
		if n > s.Max {
			s.Max = n
		}
	}
	s.Average = float64(sum) / float64(len(ps))

	return s
}

// Coverage is the share of declared transitions traversed by a collection.
type Coverage struct {
	Covered int
	Total   int
	Ratio   float64
}

// CoveredEdges counts the declared (non-final) primary edges that at least
// one path of ps traverses. Paths that do not follow the graph fail with
// ssg.ErrInvalidPath.
func CoveredEdges(g *ssg.Graph, ps []ssg.Path) (Coverage, error) {
	if g == nil {
		return Coverage{}, ErrGraphNil
	}
	hit := make(map[int]struct{})
	for _, p := range ps {
		es, err := g.PathEdges(p)
		if err != nil {
			return Coverage{}, err
		}
		for _, e := range es {
			if !e.Final {
				hit[e.ID] = struct{}{}
			}
		}
	}

	var c Coverage
	for _, e := range g.Edges() {
		if !e.Final {
			c.Total++
		}
	}
	c.Covered = len(hit)
	if c.Total > 0 {
		c.Ratio = float64(c.Covered) / float64(c.Total)
	}

	return c, nil
}
