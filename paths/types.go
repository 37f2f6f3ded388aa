package paths

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/ssgpath/ssg"
)

// Sentinel errors for path enumeration.
var (
	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("paths: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("paths: invalid option supplied")

	// ErrDirectionMismatch is returned by Combine when the frontiers were not
	// produced by PathsTo and PathsFrom respectively, or belong to different graphs.
	ErrDirectionMismatch = errors.New("paths: frontier direction mismatch")
)

// Direction tells which way a Frontier was grown.
type Direction int

const (
	// Forward frontiers hold source→node partial paths.
	Forward Direction = iota
	// Backward frontiers hold node→sink partial paths.
	Backward
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Option configures enumeration via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds the enumeration limits.
type Options struct {
	// MaxLength, if > 0, drops every path with more than MaxLength nodes.
	MaxLength int

	// MaxPaths, if > 0, stops Combine after MaxPaths complete paths.
	MaxPaths int

	// SimpleOnly drops complete paths that revisit a node.
	SimpleOnly bool

	// Logger receives a summary record per pass; nil disables logging.
	Logger *slog.Logger

	err error
}

// DefaultOptions returns Options without limits and without logging.
func DefaultOptions() Options {
	return Options{}
}

// WithMaxLength caps the node count of recorded paths.
//
//	n > 0: cap at n nodes
//	n == 0: no cap
//	n < 0: ErrOptionViolation
func WithMaxLength(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxLength cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxLength = n
	}
}

// WithMaxPaths stops combination once n complete paths were collected.
// Zero disables the cap; negative values are a violation.
func WithMaxPaths(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxPaths cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxPaths = n
	}
}

// WithSimpleOnly keeps only paths without repeated nodes.
func WithSimpleOnly() Option {
	return func(o *Options) { o.SimpleOnly = true }
}

// WithLogger sets the logger for pass summaries.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o, o.err
}

// Frontier is the outcome of one breadth-first pass.
//
//   - Canonical[n]: the path through which n was first discovered
//     (source→n forward, n→sink backward); nil when n was never reached.
//   - Incomplete[n]: revisit paths ending at n (forward) or starting at n
//     (backward), excluding those that are already complete.
//   - Complete: source→sink paths met during the pass, in discovery order.
type Frontier struct {
	Direction  Direction
	Canonical  []ssg.Path
	Incomplete [][]ssg.Path
	Complete   []ssg.Path

	graph *ssg.Graph
}

// Reached reports whether node n was discovered by the pass.
func (f *Frontier) Reached(n int) bool {
	return n >= 0 && n < len(f.Canonical) && f.Canonical[n] != nil
}

// Partial returns every partial path recorded for n: its canonical path
// first, then its incomplete paths in discovery order.
func (f *Frontier) Partial(n int) []ssg.Path {
	if !f.Reached(n) {
		return nil
	}
	out := make([]ssg.Path, 0, 1+len(f.Incomplete[n]))
	out = append(out, f.Canonical[n])

	return append(out, f.Incomplete[n]...)
}

// NumIncomplete returns the total number of incomplete paths.
func (f *Frontier) NumIncomplete() int {
	var c int
	for _, ps := range f.Incomplete {
		c += len(ps)
	}

	return c
}

// Result holds the complete path population and the two passes behind it.
type Result struct {
	// Paths is the de-duplicated complete path set in deterministic order.
	Paths []ssg.Path

	// Truncated is true when MaxPaths stopped the combination early.
	Truncated bool

	Forward  *Frontier
	Backward *Frontier
}
