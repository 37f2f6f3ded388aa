// Package pipeline wires the load → flow → enumerate → sample → export
// stages for the command line, timing and logging each of them.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/katalvlaran/ssgpath/config"
	"github.com/katalvlaran/ssgpath/dot"
	"github.com/katalvlaran/ssgpath/export"
	"github.com/katalvlaran/ssgpath/flow"
	"github.com/katalvlaran/ssgpath/internal/logging"
	"github.com/katalvlaran/ssgpath/metrics"
	"github.com/katalvlaran/ssgpath/paths"
	"github.com/katalvlaran/ssgpath/sampler"
	"github.com/katalvlaran/ssgpath/ssg"
)

// Stage names used in logs and metrics.
const (
	StageLoad      = "load"
	StageFlow      = "flow"
	StageEnumerate = "enumerate"
	StageSample    = "sample"
	StageExport    = "export"
)

// ErrNoInput is returned when the configuration names no input file.
var ErrNoInput = errors.New("pipeline: no input file")

// Deps are the collaborators of a Runner. Zero values are valid: a nil
// Logger discards records and a nil Metrics records nothing.
type Deps struct {
	Logger  *slog.Logger
	Metrics *metrics.Collector
}

// StageTiming is the wall time of one stage.
type StageTiming struct {
	Stage    string
	Duration time.Duration
}

// FlowReport is the outcome of the flow stage.
type FlowReport struct {
	Algorithm     string
	MaxFlow       int64
	Phases        int
	Augmentations int
	Disjoint      []flow.FlowPath
	CutEdges      []string
}

// Report collects everything a run produced.
type Report struct {
	Nodes     int
	Edges     int
	Terminals int

	Flow *FlowReport

	Population []ssg.Path
	Summary    paths.Summary
	Truncated  bool

	Samples  [][]ssg.Path
	Coverage paths.Coverage
	Suites   []export.Suite

	Stages []StageTiming
}

// Runner executes the stages of one run over a single graph.
type Runner struct {
	cfg     config.Config
	log     *slog.Logger
	metrics *metrics.Collector
	report  *Report
}

// New validates cfg and returns a Runner.
func New(cfg config.Config, deps Deps) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := deps.Logger
	if log == nil {
		log = logging.NewNop()
	}

	return &Runner{cfg: cfg, log: log, metrics: deps.Metrics, report: &Report{}}, nil
}

// Report returns the report accumulated so far.
func (r *Runner) Report() *Report { return r.report }

// stage times fn, records the duration and logs the outcome.
func (r *Runner) stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	d := time.Since(start)
	r.metrics.ObserveStage(name, d, err)
	r.report.Stages = append(r.report.Stages, StageTiming{Stage: name, Duration: d})
	if err != nil {
		r.log.Error("stage failed", "stage", name, "duration", d, "error", err)
		return fmt.Errorf("%s: %w", name, err)
	}
	r.log.Info("stage finished", "stage", name, "duration", d)

	return nil
}

// Load reads the configured DOT file into a sealed graph.
func (r *Runner) Load() (*ssg.Graph, error) {
	var g *ssg.Graph
	err := r.stage(StageLoad, func() error {
		if r.cfg.Input == "" {
			return ErrNoInput
		}
		var err error
		g, err = dot.LoadFile(r.cfg.Input)
		if err != nil {
			return err
		}
		r.report.Nodes = g.NumNodes()
		r.report.Edges = g.NumEdges()
		r.report.Terminals = len(g.Terminals())
		r.metrics.SetGraph(r.report.Nodes, r.report.Edges, r.report.Terminals)
		r.log.Debug("graph loaded", "input", r.cfg.Input, "nodes", r.report.Nodes,
			"edges", r.report.Edges, "terminals", r.report.Terminals)

		return nil
	})

	return g, err
}

// Flow computes the maximum number of edge-disjoint runs with the configured
// algorithm and capacity, the runs themselves and the bottleneck transitions.
func (r *Runner) Flow(g *ssg.Graph) (*FlowReport, error) {
	var fr *FlowReport
	err := r.stage(StageFlow, func() error {
		solve := flow.Dinic
		if r.cfg.Algorithm == config.AlgorithmEdmondsKarp {
			solve = flow.EdmondsKarp
		}
		res, err := solve(g, flow.WithCapacity(r.cfg.Capacity), flow.WithLogger(r.log))
		if err != nil {
			return err
		}
		disjoint, err := flow.Decompose(g)
		if err != nil {
			return err
		}
		cut, err := flow.MinCut(g)
		if err != nil {
			return err
		}
		fr = &FlowReport{
			Algorithm:     r.cfg.Algorithm,
			MaxFlow:       res.MaxFlow,
			Phases:        res.Phases,
			Augmentations: res.Augmentations,
			Disjoint:      disjoint,
		}
		for _, id := range cut.Edges {
			fr.CutEdges = append(fr.CutEdges, g.EdgeKey(id))
		}
		r.report.Flow = fr
		r.metrics.SetFlow(res.MaxFlow, res.Phases)

		return nil
	})

	return fr, err
}

// Enumerate builds the complete path population.
func (r *Runner) Enumerate(g *ssg.Graph) ([]ssg.Path, error) {
	err := r.stage(StageEnumerate, func() error {
		opts := []paths.Option{
			paths.WithMaxLength(r.cfg.MaxLength),
			paths.WithMaxPaths(r.cfg.MaxPaths),
			paths.WithLogger(r.log),
		}
		if r.cfg.SimpleOnly {
			opts = append(opts, paths.WithSimpleOnly())
		}
		res, err := paths.Enumerate(g, opts...)
		if err != nil {
			return err
		}
		r.report.Population = res.Paths
		r.report.Summary = paths.Stats(res.Paths)
		r.report.Truncated = res.Truncated
		r.metrics.SetPopulation(len(res.Paths))
		if res.Truncated {
			r.log.Warn("path population truncated", "max_paths", r.cfg.MaxPaths)
		}

		return nil
	})

	return r.report.Population, err
}

// Sample draws the configured rounds from ps and measures their coverage.
func (r *Runner) Sample(g *ssg.Graph, ps []ssg.Path) ([][]ssg.Path, error) {
	err := r.stage(StageSample, func() error {
		rounds, err := sampler.Rounds(ps, r.cfg.Samples, r.cfg.Rounds,
			sampler.WithSeed(r.cfg.Seed), sampler.WithLogger(r.log))
		if err != nil {
			return err
		}
		var all []ssg.Path
		for _, round := range rounds {
			distinct := sampler.Distinct(round)
			cov, err := paths.CoveredEdges(g, distinct)
			if err != nil {
				return err
			}
			r.metrics.AddSample(len(round), len(distinct), cov.Ratio)
			all = append(all, distinct...)
		}
		cov, err := paths.CoveredEdges(g, all)
		if err != nil {
			return err
		}
		r.report.Samples = rounds
		r.report.Coverage = cov

		return nil
	})

	return r.report.Samples, err
}

// Export turns every sampled round into a suite and writes it. With more
// than one round and a file output, round i goes to "<name>-<i><ext>".
func (r *Runner) Export(g *ssg.Graph, rounds [][]ssg.Path) error {
	return r.stage(StageExport, func() error {
		var maxFlow int64
		if r.report.Flow != nil {
			maxFlow = r.report.Flow.MaxFlow
		}
		for i, round := range rounds {
			s, err := export.Build(g, sampler.Distinct(round))
			if err != nil {
				return err
			}
			s.Name = suiteName(r.cfg.Input, i, len(rounds))
			s.Seed = r.cfg.Seed
			s.MaxFlow = maxFlow
			r.report.Suites = append(r.report.Suites, s)

			if err := export.WriteFile(outputPath(r.cfg.Output, i, len(rounds)), s, export.Format(r.cfg.Format)); err != nil {
				return err
			}
		}

		return nil
	})
}

// Run executes every stage in order and returns the report.
func (r *Runner) Run() (*Report, error) {
	g, err := r.Load()
	if err != nil {
		return r.report, err
	}
	if _, err := r.Flow(g); err != nil {
		return r.report, err
	}
	ps, err := r.Enumerate(g)
	if err != nil {
		return r.report, err
	}
	rounds, err := r.Sample(g, ps)
	if err != nil {
		return r.report, err
	}
	if err := r.Export(g, rounds); err != nil {
		return r.report, err
	}

	return r.report, nil
}

// Run is New followed by Runner.Run.
func Run(cfg config.Config, deps Deps) (*Report, error) {
	r, err := New(cfg, deps)
	if err != nil {
		return nil, err
	}

	return r.Run()
}

func suiteName(input string, i, n int) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if n == 1 {
		return base
	}

	return fmt.Sprintf("%s-%d", base, i+1)
}

func outputPath(path string, i, n int) string {
	if path == "" || n == 1 {
		return path
	}
	ext := filepath.Ext(path)

	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), i+1, ext)
}
