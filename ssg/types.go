// File: types.go
// Role: Node, Edge, Graph, GraphOption, record types and sentinel errors.
// Determinism:
//   - Node indices follow first-seen order; edge ids follow insertion order.
//   - Outgoing/Incoming lists preserve insertion order.
// Concurrency:
//   - Graph is not safe for concurrent mutation. It is owned by the pipeline
//     that builds it; FlowEngine mutates only Flow fields.

package ssg

import (
	"errors"
	"math"
)

// Sentinel errors for state-space graph operations.
var (
	// ErrNodeNotFound indicates a lookup by index or external id failed.
	ErrNodeNotFound = errors.New("ssg: node not found")

	// ErrEdgeNotFound indicates a lookup by edge id or endpoint pair failed.
	ErrEdgeNotFound = errors.New("ssg: edge not found")

	// ErrEdgeCapacityReached indicates a flow increment would leave [0, capacity].
	ErrEdgeCapacityReached = errors.New("ssg: capacity reached for edge")

	// ErrNoSink indicates an operation needs the synthetic sink before AugmentWithSink ran.
	ErrNoSink = errors.New("ssg: graph has no sink")

	// ErrSinkExists is returned by a second AugmentWithSink call.
	ErrSinkExists = errors.New("ssg: sink already added")

	// ErrSealed indicates a structural mutation after the sink was appended.
	ErrSealed = errors.New("ssg: graph is sealed")

	// ErrEmptyGraph indicates the graph has no declared node, hence no source.
	ErrEmptyGraph = errors.New("ssg: graph has no nodes")

	// ErrBadCapacity indicates a negative capacity.
	ErrBadCapacity = errors.New("ssg: capacity must be non-negative")

	// ErrInvalidPath indicates a path that does not follow the graph's edges.
	ErrInvalidPath = errors.New("ssg: invalid path")
)

const (
	// FinalLabel labels every edge from a terminal state to the sink.
	FinalLabel = "final"

	// ReversePrefix prefixes the label of every residual edge.
	ReversePrefix = "reverse-of-"

	// FinalCapacity is the capacity of sink edges. It never binds in practice
	// and keeps sums of capacities far from int64 overflow.
	FinalCapacity int64 = math.MaxInt32

	// DefaultCapacity is the capacity given to declared edges unless overridden.
	DefaultCapacity int64 = 1

	// SinkExternalID is the external identifier reported for the synthetic sink.
	SinkExternalID int64 = math.MinInt64

	noEdge = -1
)

// StateParser turns a raw state label into a structured state payload.
// The payload is opaque to this package.
type StateParser func(label string) (any, error)

// Node is one system state.
type Node struct {
	// Index is the dense zero-based position of this node.
	Index int

	// ExternalID is the model checker's identifier for the state.
	ExternalID int64

	// Label is the raw state text as declared.
	Label string

	// State is the parsed payload (nil when no StateParser is configured).
	State any

	// Terminal marks states that had no outgoing transition before augmentation.
	Terminal bool

	// Sink marks the synthetic sink.
	Sink bool
}

// Edge is the single edge record shared by declared transitions, sink edges
// and residual companions. Capacity and Flow only matter when a flow
// computation runs.
type Edge struct {
	ID       int
	Src, Dst int

	// Label is the transition name; Params its ordered arguments.
	Label  string
	Params []string

	Capacity int64
	Flow     int64

	// Residual is the arena index of the paired edge.
	Residual int

	// Reverse is true for residual edges.
	Reverse bool

	// Final is true for terminal→sink edges.
	Final bool
}

// Remaining returns Capacity − Flow.
func (e Edge) Remaining() int64 { return e.Capacity - e.Flow }

// NodeRecord is a node declaration from the graph-description reader.
type NodeRecord struct {
	ID    int64
	Label string
}

// EdgeRecord is an edge declaration from the graph-description reader.
type EdgeRecord struct {
	Src, Dst int64
	Label    string
	Params   []string
}

// Option configures a Graph before use.
type Option func(g *Graph)

// WithDefaultCapacity sets the capacity of declared edges (default 1).
// Negative values are ignored.
func WithDefaultCapacity(c int64) Option {
	return func(g *Graph) {
		if c >= 0 {
			g.defaultCap = c
		}
	}
}

// WithStateParser installs a parser run once per node on first sight.
func WithStateParser(p StateParser) Option {
	return func(g *Graph) { g.parser = p }
}

// WithExpectedSize preallocates room for the given number of nodes and edges.
func WithExpectedSize(nodes, edges int) Option {
	return func(g *Graph) {
		if nodes > 0 {
			g.nodes = make([]Node, 0, nodes+1)
			g.out = make([][]int, 0, nodes+1)
			g.in = make([][]int, 0, nodes+1)
			g.flowAdj = make([][]int, 0, nodes+1)
		}
		if edges > 0 {
			g.edges = make([]Edge, 0, 2*edges)
			g.pairs = make(map[pair]int, edges)
		}
	}
}

type pair struct{ src, dst int }

// Graph is the dense node/edge arena of a state-space graph.
//
// Declared and sink edges live in edges next to their residual companions;
// out/in hold primary edge ids only, flowAdj holds every edge leaving a node
// (primary and residual) for flow searches.
type Graph struct {
	nodes []Node
	edges []Edge

	out     [][]int
	in      [][]int
	flowAdj [][]int

	byExternal map[int64]int
	pairs      map[pair]int

	numPrimary int
	sink       int
	defaultCap int64
	parser     StateParser
}

// New creates an empty Graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		byExternal: make(map[int64]int),
		sink:       -1,
		defaultCap: DefaultCapacity,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.pairs == nil {
		g.pairs = make(map[pair]int)
	}

	return g
}
