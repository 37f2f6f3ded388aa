package flow

import (
	"log/slog"

	"github.com/katalvlaran/ssgpath/ssg"
)

// EdmondsKarp computes the maximum flow from the source to the synthetic
// sink of g by repeatedly augmenting along a shortest (fewest-edges) path of
// the residual graph. It updates the Flow fields of g in place, accepts the
// same options as Dinic and reaches the same max flow.
//
// Every augmentation is its own phase, so Result.Phases equals
// Result.Augmentations and WithMaxPhases bounds the number of augmentations.
//
// Complexity: O(V · E²)
// Memory:     O(V) for the parent edges and the queue.
func EdmondsKarp(g *ssg.Graph, opts ...Option) (*Result, error) {
	o, source, sink, err := prepare(g, opts)
	if err != nil {
		return nil, err
	}

	n := g.NumNodes()
	parent := make([]int, n)
	queue := make([]int, 0, n)
	infinity := g.TotalCapacity()

	res := &Result{}
	for o.MaxPhases == 0 || res.Phases < o.MaxPhases {
		if !shortestAugmentingPath(g, source, sink, parent, queue) {
			break
		}

		b := infinity
		for v := sink; v != source; {
			e := parent[v]
			if r := g.Remaining(e); r < b {
				b = r
			}
			v, _ = g.Endpoints(e)
		}
		for v := sink; v != source; {
			e := parent[v]
			g.Push(e, b)
			v, _ = g.Endpoints(e)
		}

		res.MaxFlow += b
		res.Phases++
		res.Augmentations++
		if o.Logger != nil {
			o.Logger.Debug("edmonds-karp augment", slog.Int64("bottleneck", b), slog.Int64("total", res.MaxFlow))
		}
	}

	if o.Logger != nil {
		o.Logger.Info("edmonds-karp finished",
			slog.Int64("max_flow", res.MaxFlow),
			slog.Int("augmentations", res.Augmentations))
	}

	return res, nil
}

// shortestAugmentingPath runs a BFS from source over edges with remaining
// capacity and records in parent[v] the edge id that first reached v. It
// reports whether the sink was reached.
func shortestAugmentingPath(g *ssg.Graph, source, sink int, parent, queue []int) bool {
	for i := range parent {
		parent[i] = -1
	}
	queue = append(queue[:0], source)
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, e := range g.FlowAdjacency(u) {
			if g.Remaining(e) <= 0 {
				continue
			}
			_, v := g.Endpoints(e)
			if v == source || parent[v] >= 0 {
				continue
			}
			parent[v] = e
			if v == sink {
				return true
			}
			queue = append(queue, v)
		}
	}

	return false
}
