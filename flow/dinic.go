package flow

import (
	"log/slog"

	"github.com/katalvlaran/ssgpath/ssg"
)

// Dinic computes the maximum flow from the source to the synthetic sink of g
// using Dinic's algorithm (level graph + blocking flows), updating the Flow
// fields of g in place.
//
// It returns:
//   - Result : max flow, number of phases, number of augmentations
//   - err    : ErrGraphNil, ErrOptionViolation, ssg.ErrNoSink, ssg.ErrEmptyGraph
//
// Steps:
//  1. Apply options (uniform capacity / flow reset).
//  2. Repeat phases:
//     a. Levels: BFS over edges with remaining > 0. If the sink is unleveled,
//     stop (ErrUnableToReachSink is the termination signal, not an error).
//     b. Reset per-node cursors.
//     c. blockingFlow: explicit-stack DFS along level+1 edges, pushing the
//     bottleneck of each path found, until the sink is cut off.
//
// Complexity:
//
//	Time:   O(V²·E) in general; O(E·√V) with unit capacities.
//	Memory: O(V) for level, cursors and the path stack.
func Dinic(g *ssg.Graph, opts ...Option) (*Result, error) {
	o, source, sink, err := prepare(g, opts)
	if err != nil {
		return nil, err
	}

	n := g.NumNodes()
	d := &dinic{
		g:        g,
		source:   source,
		sink:     sink,
		level:    make([]int, n),
		iter:     make([]int, n),
		stack:    make([]int, 0, n),
		infinity: g.TotalCapacity(),
		log:      o.Logger,
	}

	res := &Result{}
	for o.MaxPhases == 0 || res.Phases < o.MaxPhases {
		if err = Levels(g, d.level); err != nil {
			break // ErrUnableToReachSink: no augmenting path remains
		}
		res.Phases++
		for i := range d.iter {
			d.iter[i] = 0
		}
		pushed, paths := d.blockingFlow()
		res.MaxFlow += pushed
		res.Augmentations += paths
	}

	if d.log != nil {
		d.log.Info("dinic finished",
			slog.Int64("max_flow", res.MaxFlow),
			slog.Int("phases", res.Phases),
			slog.Int("augmentations", res.Augmentations))
	}

	return res, nil
}

// prepare validates g and opts and applies the capacity/reset options.
func prepare(g *ssg.Graph, opts []Option) (Options, int, int, error) {
	if g == nil {
		return Options{}, 0, 0, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return Options{}, 0, 0, o.err
	}

	source, err := g.Source()
	if err != nil {
		return Options{}, 0, 0, err
	}
	sink, err := g.Sink()
	if err != nil {
		return Options{}, 0, 0, err
	}

	if o.Capacity > 0 {
		if err = g.SetUniformCapacity(o.Capacity); err != nil {
			return Options{}, 0, 0, err
		}
	} else if o.ResetFlow {
		g.ResetFlow()
	}

	return o, source, sink, nil
}

// EdgeDisjointPaths returns the maximum number of edge-disjoint source→sink
// paths: Dinic with capacity 1 on every declared edge.
func EdgeDisjointPaths(g *ssg.Graph, opts ...Option) (*Result, error) {
	return Dinic(g, append([]Option{WithCapacity(1)}, opts...)...)
}

// Levels fills level with BFS distances from the source over edges with
// remaining capacity (residual companions included); -1 marks unreached
// nodes. It returns ErrUnableToReachSink when the sink stays at -1.
//
// level must have NumNodes() entries.
func Levels(g *ssg.Graph, level []int) error {
	source, err := g.Source()
	if err != nil {
		return err
	}
	sink, err := g.Sink()
	if err != nil {
		return err
	}
	for i := range level {
		level[i] = -1
	}

	queue := make([]int, 0, len(level))
	queue = append(queue, source)
	level[source] = 0
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, e := range g.FlowAdjacency(u) {
			if g.Remaining(e) <= 0 {
				continue
			}
			_, v := g.Endpoints(e)
			if level[v] < 0 {
				level[v] = level[u] + 1
				queue = append(queue, v)
			}
		}
	}
	if level[sink] < 0 {
		return ErrUnableToReachSink
	}

	return nil
}

// dinic holds per-run search state.
type dinic struct {
	g            *ssg.Graph
	source, sink int
	level        []int
	iter         []int // next edge to try per node; only advances within a phase
	stack        []int // edge ids of the current partial path
	infinity     int64
	log          *slog.Logger
}

// blockingFlow pushes augmenting paths through the current level graph until
// none remains. It returns the flow pushed and the number of paths.
//
// The DFS keeps its path on an explicit stack, so depth is bounded by the
// number of levels without using the goroutine stack. After an augmentation
// the search retreats to the tail of the first saturated edge.
func (d *dinic) blockingFlow() (int64, int) {
	var (
		pushed int64
		paths  int
	)
	g := d.g
	stack := d.stack[:0]
	u := d.source
	for {
		if u == d.sink {
			b := d.infinity
			for _, e := range stack {
				if r := g.Remaining(e); r < b {
					b = r
				}
			}
			cut := -1
			for i, e := range stack {
				g.Push(e, b)
				if cut < 0 && g.Remaining(e) == 0 {
					cut = i
				}
			}
			pushed += b
			paths++
			if d.log != nil {
				d.log.Debug("dinic augment", slog.Int64("bottleneck", b), slog.Int("length", len(stack)), slog.Int64("total", pushed))
			}
			if cut < 0 {
				cut = 0
			}
			u, _ = g.Endpoints(stack[cut])
			stack = stack[:cut]
			continue
		}

		if d.advance(u) {
			e := g.FlowAdjacency(u)[d.iter[u]]
			stack = append(stack, e)
			_, u = g.Endpoints(e)
			continue
		}

		// dead end: retreat one edge and skip it from now on
		if u == d.source {
			d.stack = stack
			return pushed, paths
		}
		d.level[u] = -1
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		u, _ = g.Endpoints(e)
		d.iter[u]++
	}
}

// advance moves iter[u] to the next admissible edge and reports whether one exists.
func (d *dinic) advance(u int) bool {
	adj := d.g.FlowAdjacency(u)
	for ; d.iter[u] < len(adj); d.iter[u]++ {
		e := adj[d.iter[u]]
		if d.g.Remaining(e) <= 0 {
			continue
		}
		_, v := d.g.Endpoints(e)
		if d.level[v] == d.level[u]+1 {
			return true
		}
	}

	return false
}
