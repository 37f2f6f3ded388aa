// Package flow computes maximum flows over a sealed *ssg.Graph with Dinic's
// algorithm, and derives from them the edge-coverage bound of a state-space
// graph: the maximum number of edge-disjoint source→sink paths.
//
//   - Dinic
//
//   - Method: level graph construction + blocking flow via an explicit-stack DFS.
//
//   - Time:   O(E · √V) on unit-capacity networks, O(V² · E) in general.
//
//   - Memory: O(V) beyond the graph (levels, cursors, path stack).
//
// # Graph Support
//
// The graph stores every primary edge next to a residual companion
// (ssg.Edge.Residual); Dinic walks both through ssg.Graph.FlowAdjacency and
// only writes Flow fields. Sink edges carry ssg.FinalCapacity and never bind.
//
// # API
//
//	func Dinic(g *ssg.Graph, opts ...Option) (*Result, error)
//	func EdgeDisjointPaths(g *ssg.Graph, opts ...Option) (*Result, error)
//	func Levels(g *ssg.Graph, level []int) error
//	func MinCut(g *ssg.Graph) (Cut, error)
//	func Decompose(g *ssg.Graph) ([]FlowPath, error)
//
// Options:
//
//	WithCapacity(c)   uniform capacity on declared edges, flow cleared
//	WithResetFlow()   clear flow, keep capacities
//	WithMaxPhases(n)  stop after n phases
//	WithLogger(l)     slog progress records
//
// # Errors
//
//	ErrGraphNil          - nil graph.
//	ErrOptionViolation   - invalid option value.
//	ErrUnableToReachSink - Levels found no level graph reaching the sink;
//	                       Dinic consumes it as its termination signal.
//	ErrFlowNotMaximal    - MinCut called while the sink is still reachable.
//	ErrFlowNotConserved  - Decompose found an inconsistent flow.
//	ssg.ErrNoSink        - AugmentWithSink has not run.
//
// Everything runs synchronously on the caller's goroutine; a graph must not be
// shared with a concurrent path enumeration that reads flow.
package flow
