// Package metrics bundles the Prometheus metrics of a pipeline run and dumps
// them in the text exposition format.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "ssgpath"

// Collector holds the run metrics. A nil *Collector is valid and records nothing.
type Collector struct {
	gatherer prometheus.Gatherer

	Nodes     prometheus.Gauge
	Edges     prometheus.Gauge
	Terminals prometheus.Gauge

	MaxFlow prometheus.Gauge
	Phases  prometheus.Gauge

	Population prometheus.Gauge
	Sampled    prometheus.Counter
	Distinct   prometheus.Gauge
	Coverage   prometheus.Gauge

	StageDurations *prometheus.HistogramVec
	StageErrors    *prometheus.CounterVec
}

// New registers the run metrics against the provided registerer, defaulting
// to the global Prometheus registry when nil.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{gatherer: gatherer}
	gauges := []struct {
		dst  *prometheus.Gauge
		name string
		help string
	}{
		{&c.Nodes, "graph_nodes", "Number of nodes in the loaded graph, sink included."},
		{&c.Edges, "graph_edges", "Number of primary edges in the loaded graph, sink edges included."},
		{&c.Terminals, "graph_terminals", "Number of terminal states."},
		{&c.MaxFlow, "flow_max", "Maximum number of edge-disjoint source to sink paths."},
		{&c.Phases, "flow_phases", "Number of Dinic phases of the last flow computation."},
		{&c.Population, "paths_population", "Number of distinct complete paths enumerated."},
		{&c.Distinct, "paths_distinct_sampled", "Number of distinct paths in the last sample."},
		{&c.Coverage, "paths_edge_coverage_ratio", "Share of declared transitions covered by the sample."},
	}
	for _, g := range gauges {
		gauge, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      g.name,
			Help:      g.help,
		}), g.name)
		if err != nil {
			return nil, err
		}
		*g.dst = gauge
	}

	sampled, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "paths_sampled_total",
		Help:      "Total number of paths drawn by the sampler.",
	}), "paths_sampled_total")
	if err != nil {
		return nil, err
	}
	c.Sampled = sampled

	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_duration_seconds",
		Help:      "Pipeline stage latency in seconds.",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
	}, []string{"stage"}), "stage_duration_seconds")
	if err != nil {
		return nil, err
	}
	c.StageDurations = durations

	stageErrors, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stage_errors_total",
		Help:      "Failed pipeline stages, labeled by stage.",
	}, []string{"stage"}), "stage_errors_total")
	if err != nil {
		return nil, err
	}
	c.StageErrors = stageErrors

	return c, nil
}

// SetGraph records the size of the loaded graph.
func (c *Collector) SetGraph(nodes, edges, terminals int) {
	if c == nil {
		return
	}
	c.Nodes.Set(float64(nodes))
	c.Edges.Set(float64(edges))
	c.Terminals.Set(float64(terminals))
}

// SetFlow records the outcome of a max-flow computation.
func (c *Collector) SetFlow(maxFlow int64, phases int) {
	if c == nil {
		return
	}
	c.MaxFlow.Set(float64(maxFlow))
	c.Phases.Set(float64(phases))
}

// SetPopulation records the size of the enumerated path set.
func (c *Collector) SetPopulation(n int) {
	if c == nil {
		return
	}
	c.Population.Set(float64(n))
}

// AddSample records one sampling round.
func (c *Collector) AddSample(drawn, distinct int, coverage float64) {
	if c == nil {
		return
	}
	c.Sampled.Add(float64(drawn))
	c.Distinct.Set(float64(distinct))
	c.Coverage.Set(coverage)
}

// ObserveStage records the latency of a stage, and counts it as failed when
// err is non-nil.
func (c *Collector) ObserveStage(stage string, d time.Duration, err error) {
	if c == nil {
		return
	}
	c.StageDurations.WithLabelValues(stage).Observe(d.Seconds())
	if err != nil {
		c.StageErrors.WithLabelValues(stage).Inc()
	}
}

// WriteText gathers the registry and writes it in the Prometheus text format.
func (c *Collector) WriteText(w io.Writer) error {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("metrics: gather: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("metrics: encode %s: %w", mf.GetName(), err)
		}
	}

	return nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
