// Package ssg stores a model checker's state-space graph as a dense arena.
//
// Nodes are states, indexed 0..n-1 in first-seen order; node 0 is the source
// (initial state). Edges are labeled transitions, at most one per ordered
// (src,dst) pair. AugmentWithSink appends one synthetic sink and connects every
// state without successors to it, so every forward search terminates there.
//
//	s ──a──▶ x ──b──▶ t ─final─▶ SINK
//	 └──c──▶ y ──d──┘
//
// Every primary edge owns a residual companion stored in the same slice and
// referenced by index (Edge.Residual), never by pointer:
//
//	edges[i]   : src→dst, Capacity c, Flow f
//	edges[i+1] : dst→src, Capacity 0, Flow −f, Label "reverse-of-<label>"
//
// Flow fields only matter to max-flow computations (package flow). Path
// enumeration (package paths) reads the primary adjacency and ignores flow.
//
// Errors:
//
//	ErrNodeNotFound        - unknown index or external id (message names it).
//	ErrEdgeNotFound        - unknown edge id or endpoint pair.
//	ErrEdgeCapacityReached - IncEdgeFlow would leave [0, capacity].
//	ErrNoSink              - AugmentWithSink has not run.
//	ErrSinkExists          - AugmentWithSink ran twice.
//	ErrSealed              - structural mutation after augmentation.
//
// A Graph is not safe for concurrent use.
package ssg
