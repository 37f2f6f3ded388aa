package paths

import (
	"github.com/katalvlaran/ssgpath/ssg"
)

// walker holds the mutable state of one breadth-first pass.
type walker struct {
	graph *ssg.Graph
	opts  Options
	queue []int
	res   *Frontier
}

func newWalker(g *ssg.Graph, o Options, dir Direction) *walker {
	n := g.NumNodes()

	return &walker{
		graph: g,
		opts:  o,
		queue: make([]int, 0, n),
		res: &Frontier{
			Direction:  dir,
			Canonical:  make([]ssg.Path, n),
			Incomplete: make([][]ssg.Path, n),
			graph:      g,
		},
	}
}

// tooLong reports whether p exceeds MaxLength.
func (w *walker) tooLong(p ssg.Path) bool {
	return w.opts.MaxLength > 0 && len(p) > w.opts.MaxLength
}

// PathsTo runs the forward pass from the source over outgoing edges.
//
// A node met for the first time stores its canonical path (the parent's
// canonical path extended by the node) and is expanded later. An edge that
// reaches an already discovered node v records canonical(u)+v as complete
// when v is the sink and as incomplete otherwise; v is not expanded again,
// which keeps one growth path per node on graphs with many cycles.
//
// Complexity: O(V + E) paths, each of length O(V).
func PathsTo(g *ssg.Graph, opts ...Option) (*Frontier, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	source, err := g.Source()
	if err != nil {
		return nil, err
	}
	sink, err := g.Sink()
	if err != nil {
		return nil, err
	}

	w := newWalker(g, o, Forward)
	w.res.Canonical[source] = ssg.Path{source}
	w.queue = append(w.queue, source)
	for len(w.queue) > 0 {
		u := w.queue[0]
		w.queue = w.queue[1:]

		out, err := g.Outgoing(u)
		if err != nil {
			return nil, err
		}
		for _, e := range out {
			v := e.Dst
			p := w.res.Canonical[u].Extend(v)
			if w.tooLong(p) {
				continue
			}
			if w.res.Canonical[v] == nil {
				w.res.Canonical[v] = p
				w.queue = append(w.queue, v)
				if v == sink {
					w.res.Complete = append(w.res.Complete, p)
				}
				continue
			}
			if v == sink {
				w.res.Complete = append(w.res.Complete, p)
			} else {
				w.res.Incomplete[v] = append(w.res.Incomplete[v], p)
			}
		}
	}
	w.log()

	return w.res, nil
}

// PathsFrom runs the backward pass from the sink over incoming edges. It is
// the mirror of PathsTo: canonical paths run node→sink, and a revisit path is
// complete when it starts at the source.
func PathsFrom(g *ssg.Graph, opts ...Option) (*Frontier, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	source, err := g.Source()
	if err != nil {
		return nil, err
	}
	sink, err := g.Sink()
	if err != nil {
		return nil, err
	}

	w := newWalker(g, o, Backward)
	w.res.Canonical[sink] = ssg.Path{sink}
	w.queue = append(w.queue, sink)
	for len(w.queue) > 0 {
		v := w.queue[0]
		w.queue = w.queue[1:]

		in, err := g.Incoming(v)
		if err != nil {
			return nil, err
		}
		for _, e := range in {
			u := e.Src
			p := prepend(u, w.res.Canonical[v])
			if w.tooLong(p) {
				continue
			}
			if w.res.Canonical[u] == nil {
				w.res.Canonical[u] = p
				w.queue = append(w.queue, u)
				if u == source {
					w.res.Complete = append(w.res.Complete, p)
				}
				continue
			}
			if u == source {
				w.res.Complete = append(w.res.Complete, p)
			} else {
				w.res.Incomplete[u] = append(w.res.Incomplete[u], p)
			}
		}
	}
	w.log()

	return w.res, nil
}

func (w *walker) log() {
	if w.opts.Logger == nil {
		return
	}
	var reached int
	for _, c := range w.res.Canonical {
		if c != nil {
			reached++
		}
	}
	w.opts.Logger.Debug("paths pass finished",
		"direction", w.res.Direction.String(),
		"reached", reached,
		"complete", len(w.res.Complete),
		"incomplete", w.res.NumIncomplete(),
	)
}

// Combine merges a forward and a backward frontier of the same graph into
// the complete path population:
//
//  1. complete paths of both passes;
//  2. for every node n reached by both passes, canonicalF(n) joined with
//     canonicalB(n);
//  3. every forward incomplete path ending at n joined with every backward
//     partial path from n;
//  4. canonicalF(n) joined with every backward incomplete path from n.
//
// Joining drops the final node of the forward part, since the backward part
// starts with it. The result is de-duplicated by sequence and ordered by the
// steps above, then by node index.
func Combine(fwd, bwd *Frontier, opts ...Option) (*Result, error) {
	if fwd == nil || bwd == nil {
		return nil, ErrGraphNil
	}
	if fwd.Direction != Forward || bwd.Direction != Backward || fwd.graph != bwd.graph {
		return nil, ErrDirectionMismatch
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	c := newCollector(o)
	res := &Result{Forward: fwd, Backward: bwd}

	for _, p := range fwd.Complete {
		if !c.add(p) {
			return c.finish(res), nil
		}
	}
	for _, p := range bwd.Complete {
		if !c.add(p) {
			return c.finish(res), nil
		}
	}

	n := len(fwd.Canonical)
	for v := 0; v < n; v++ {
		if fwd.Reached(v) && bwd.Reached(v) {
			if !c.add(join(fwd.Canonical[v], bwd.Canonical[v])) {
				return c.finish(res), nil
			}
		}
	}
	for v := 0; v < n; v++ {
		if !bwd.Reached(v) {
			continue
		}
		tails := bwd.Partial(v)
		for _, f := range fwd.Incomplete[v] {
			for _, b := range tails {
				if !c.add(join(f, b)) {
					return c.finish(res), nil
				}
			}
		}
	}
	for v := 0; v < n; v++ {
		if !fwd.Reached(v) {
			continue
		}
		for _, b := range bwd.Incomplete[v] {
			if !c.add(join(fwd.Canonical[v], b)) {
				return c.finish(res), nil
			}
		}
	}

	res = c.finish(res)
	if o.Logger != nil {
		o.Logger.Info("paths combined", "paths", len(res.Paths), "truncated", res.Truncated)
	}

	return res, nil
}

// Enumerate runs PathsTo, PathsFrom and Combine with the same options.
// On a graph whose only state is the source, the single path is [source, sink].
func Enumerate(g *ssg.Graph, opts ...Option) (*Result, error) {
	fwd, err := PathsTo(g, opts...)
	if err != nil {
		return nil, err
	}
	bwd, err := PathsFrom(g, opts...)
	if err != nil {
		return nil, err
	}

	return Combine(fwd, bwd, opts...)
}

// collector de-duplicates complete paths and applies the limits.
type collector struct {
	opts Options
	seen map[string]struct{}
	out  []ssg.Path
	full bool
}

func newCollector(o Options) *collector {
	return &collector{opts: o, seen: make(map[string]struct{})}
}

// add records p unless it is filtered or known. It returns false when a new
// path arrives after MaxPaths paths were kept; only then is the result
// marked truncated.
func (c *collector) add(p ssg.Path) bool {
	if c.opts.MaxLength > 0 && len(p) > c.opts.MaxLength {
		return true
	}
	if c.opts.SimpleOnly && !IsSimple(p) {
		return true
	}
	k := p.Key()
	if _, ok := c.seen[k]; ok {
		return true
	}
	if c.opts.MaxPaths > 0 && len(c.out) >= c.opts.MaxPaths {
		c.full = true
		return false
	}
	c.seen[k] = struct{}{}
	c.out = append(c.out, p)

	return true
}

func (c *collector) finish(r *Result) *Result {
	r.Paths = c.out
	r.Truncated = c.full

	return r
}

// join returns head[:len(head)-1] followed by tail.
func join(head, tail ssg.Path) ssg.Path {
	p := make(ssg.Path, 0, len(head)-1+len(tail))
	p = append(p, head[:len(head)-1]...)

	return append(p, tail...)
}

func prepend(u int, p ssg.Path) ssg.Path {
	q := make(ssg.Path, 0, len(p)+1)
	q = append(q, u)

	return append(q, p...)
}
