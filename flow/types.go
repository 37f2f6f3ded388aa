package flow

import (
	"errors"
	"fmt"
	"log/slog"
)

// Sentinel errors for max-flow computations.
var (
	// ErrUnableToReachSink signals that the level graph no longer reaches the
	// sink. Dinic treats it as normal termination and never returns it.
	ErrUnableToReachSink = errors.New("flow: unable to reach sink")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("flow: invalid option supplied")

	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("flow: graph is nil")
)

// Option configures a max-flow run via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds the parameters of a Dinic run.
//   - Capacity: if > 0, every declared edge gets this capacity and all flow
//     is cleared before the run. 0 keeps the graph's capacities.
//   - ResetFlow: clear existing flow before the run.
//   - MaxPhases: stop after this many phases (0 = until the sink is cut off).
//   - Logger: receives one debug record per augmentation and an info summary.
type Options struct {
	Capacity  int64
	ResetFlow bool
	MaxPhases int
	Logger    *slog.Logger

	err error
}

// DefaultOptions keeps the graph's capacities and flow, runs to completion
// and does not log.
func DefaultOptions() Options {
	return Options{}
}

// WithCapacity sets a uniform capacity on every declared edge and clears flow.
func WithCapacity(c int64) Option {
	return func(o *Options) {
		if c <= 0 {
			o.err = fmt.Errorf("%w: capacity must be positive (%d)", ErrOptionViolation, c)
			return
		}
		o.Capacity = c
	}
}

// WithResetFlow clears every edge's flow before the run.
func WithResetFlow() Option {
	return func(o *Options) { o.ResetFlow = true }
}

// WithMaxPhases bounds the number of Dinic phases.
//
//	n > 0: at most n phases
//	n == 0: no limit
//	n < 0: invalid option → ErrOptionViolation
func WithMaxPhases(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxPhases cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxPhases = n
	}
}

// WithLogger routes progress records to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Result summarises a Dinic run.
type Result struct {
	// MaxFlow is the total flow pushed from source to sink.
	MaxFlow int64

	// Phases counts level graphs that reached the sink.
	Phases int

	// Augmentations counts augmenting paths applied.
	Augmentations int
}

// Cut is an s–t cut of the residual graph after a max-flow run.
type Cut struct {
	// SourceSide lists node indices reachable from the source in the residual graph.
	SourceSide []int

	// Edges lists primary edge ids from SourceSide to the rest.
	Edges []int

	// Capacity is the summed capacity of Edges.
	Capacity int64
}
