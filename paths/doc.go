// Package paths enumerates the complete source→sink paths of a sealed
// *ssg.Graph with a bidirectional breadth-first search.
//
// The forward pass (PathsTo) grows one canonical path per node from the
// source and records every edge that revisits a discovered node as an extra
// partial path. The backward pass (PathsFrom) does the same from the sink over
// incoming edges. Combine joins forward partial paths with backward ones at
// their shared node and returns the de-duplicated population.
//
// Paths may contain cycles; WithSimpleOnly or Simple filter them post hoc.
// The population grows combinatorially on branching or cyclic graphs, so
// callers bound it with WithMaxLength / WithMaxPaths or sample from it.
//
// # API
//
//	func PathsTo(g *ssg.Graph, opts ...Option) (*Frontier, error)
//	func PathsFrom(g *ssg.Graph, opts ...Option) (*Frontier, error)
//	func Combine(fwd, bwd *Frontier, opts ...Option) (*Result, error)
//	func Enumerate(g *ssg.Graph, opts ...Option) (*Result, error)
//
// Helpers: IsSimple, Simple, Dedup, Resolve, Labels, Stats, CoveredEdges.
//
// # Errors
//
//	ErrGraphNil          - nil graph or frontier.
//	ErrOptionViolation   - negative MaxLength or MaxPaths.
//	ErrDirectionMismatch - frontiers swapped or taken from different graphs.
//	ssg.ErrNoSink        - AugmentWithSink has not run.
//
// Enumeration only reads the graph; it never touches capacities or flow.
package paths
