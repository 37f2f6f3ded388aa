package pipeline

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/ssgpath/config"
	"github.com/katalvlaran/ssgpath/export"
	"github.com/katalvlaran/ssgpath/internal/logging"
	"github.com/katalvlaran/ssgpath/metrics"
)

const fixture = "../../dot/testdata/small-graph-test.dot"

// PipelineSuite runs the stages on the model checker fixture.
type PipelineSuite struct {
	suite.Suite
	dir     string
	reg     *prometheus.Registry
	metrics *metrics.Collector
	logs    *bytes.Buffer
}

func (s *PipelineSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.reg = prometheus.NewRegistry()
	m, err := metrics.New(s.reg)
	require.NoError(s.T(), err)
	s.metrics = m
	s.logs = &bytes.Buffer{}
}

func (s *PipelineSuite) deps() Deps {
	return Deps{Logger: logging.NewWriter(s.logs, slog.LevelDebug), Metrics: s.metrics}
}

func (s *PipelineSuite) config() config.Config {
	cfg := config.Default()
	cfg.Input = fixture
	cfg.Samples = 12
	cfg.Seed = 5
	cfg.Format = config.FormatJSON
	cfg.Output = filepath.Join(s.dir, "suite.json")

	return cfg
}

func (s *PipelineSuite) TestRunEndToEnd() {
	cfg := s.config()
	rep, err := Run(cfg, s.deps())
	require.NoError(s.T(), err)

	require.Equal(s.T(), 26, rep.Nodes)
	require.Equal(s.T(), 68, rep.Edges)
	require.Equal(s.T(), 2, rep.Terminals)

	require.NotNil(s.T(), rep.Flow)
	require.Positive(s.T(), rep.Flow.MaxFlow)
	require.Len(s.T(), rep.Flow.Disjoint, int(rep.Flow.MaxFlow))
	require.Len(s.T(), rep.Flow.CutEdges, int(rep.Flow.MaxFlow))

	require.NotEmpty(s.T(), rep.Population)
	require.Equal(s.T(), len(rep.Population), rep.Summary.Count)
	require.Len(s.T(), rep.Samples, 1)
	require.Len(s.T(), rep.Samples[0], 12)
	require.Positive(s.T(), rep.Coverage.Covered)

	stages := make([]string, len(rep.Stages))
	for i, st := range rep.Stages {
		stages[i] = st.Stage
	}
	require.Equal(s.T(), []string{StageLoad, StageFlow, StageEnumerate, StageSample, StageExport}, stages)

	f, err := os.Open(cfg.Output)
	require.NoError(s.T(), err)
	defer f.Close()
	got, err := export.Read(f, export.FormatJSON)
	require.NoError(s.T(), err)
	require.Equal(s.T(), "small-graph-test", got.Name)
	require.Equal(s.T(), int64(5), got.Seed)
	require.Equal(s.T(), rep.Flow.MaxFlow, got.MaxFlow)
	require.Equal(s.T(), rep.Suites[0], got)

	require.Equal(s.T(), 26.0, testutil.ToFloat64(s.metrics.Nodes))
	require.Equal(s.T(), float64(rep.Flow.MaxFlow), testutil.ToFloat64(s.metrics.MaxFlow))
	require.Equal(s.T(), 12.0, testutil.ToFloat64(s.metrics.Sampled))
	require.Contains(s.T(), s.logs.String(), "stage=enumerate")
}

func (s *PipelineSuite) TestRunIsReproducible() {
	cfg := s.config()
	cfg.Output = filepath.Join(s.dir, "a.json")
	a, err := Run(cfg, Deps{})
	require.NoError(s.T(), err)
	cfg.Output = filepath.Join(s.dir, "b.json")
	b, err := Run(cfg, Deps{})
	require.NoError(s.T(), err)
	require.Equal(s.T(), a.Samples, b.Samples)
	require.Equal(s.T(), a.Suites, b.Suites)
}

func (s *PipelineSuite) TestRoundsWriteOneFileEach() {
	cfg := s.config()
	cfg.Rounds = 2
	cfg.Format = config.FormatYAML
	cfg.Output = filepath.Join(s.dir, "suite.yaml")
	rep, err := Run(cfg, s.deps())
	require.NoError(s.T(), err)
	require.Len(s.T(), rep.Suites, 2)
	require.Equal(s.T(), "small-graph-test-2", rep.Suites[1].Name)
	require.FileExists(s.T(), filepath.Join(s.dir, "suite-1.yaml"))
	require.FileExists(s.T(), filepath.Join(s.dir, "suite-2.yaml"))
	require.NoFileExists(s.T(), cfg.Output)
}

func (s *PipelineSuite) TestFlowAlgorithmsAgree() {
	cfg := s.config()
	r, err := New(cfg, s.deps())
	require.NoError(s.T(), err)
	g, err := r.Load()
	require.NoError(s.T(), err)
	dinic, err := r.Flow(g)
	require.NoError(s.T(), err)
	require.Equal(s.T(), config.AlgorithmDinic, dinic.Algorithm)

	cfg.Algorithm = config.AlgorithmEdmondsKarp
	r, err = New(cfg, s.deps())
	require.NoError(s.T(), err)
	ek, err := r.Flow(g)
	require.NoError(s.T(), err)
	require.Equal(s.T(), config.AlgorithmEdmondsKarp, ek.Algorithm)
	require.Equal(s.T(), dinic.MaxFlow, ek.MaxFlow)
	require.Len(s.T(), ek.Disjoint, int(ek.MaxFlow))
	require.Equal(s.T(), ek.Augmentations, ek.Phases)
}

func (s *PipelineSuite) TestSimpleOnly() {
	cfg := s.config()
	cfg.SimpleOnly = true
	r, err := New(cfg, s.deps())
	require.NoError(s.T(), err)
	g, err := r.Load()
	require.NoError(s.T(), err)
	ps, err := r.Enumerate(g)
	require.NoError(s.T(), err)
	require.NotEmpty(s.T(), ps)
	for _, p := range ps {
		seen := map[int]bool{}
		for _, v := range p {
			require.False(s.T(), seen[v], "%v", p)
			seen[v] = true
		}
	}
}

func (s *PipelineSuite) TestMissingInput() {
	cfg := s.config()
	cfg.Input = ""
	_, err := Run(cfg, s.deps())
	require.ErrorIs(s.T(), err, ErrNoInput)
	require.Equal(s.T(), 1.0, testutil.ToFloat64(s.metrics.StageErrors.WithLabelValues(StageLoad)))
	require.Contains(s.T(), s.logs.String(), "stage failed")

	cfg.Input = filepath.Join(s.dir, "absent.dot")
	_, err = Run(cfg, s.deps())
	require.ErrorIs(s.T(), err, os.ErrNotExist)
}

func (s *PipelineSuite) TestInvalidConfig() {
	cfg := s.config()
	cfg.Rounds = 0
	_, err := Run(cfg, s.deps())
	require.ErrorIs(s.T(), err, config.ErrInvalidConfig)
}

// Entry point for running the suite.
func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineSuite))
}

func TestOutputPath(t *testing.T) {
	require.Equal(t, "", outputPath("", 0, 3))
	require.Equal(t, "out.yaml", outputPath("out.yaml", 0, 1))
	require.Equal(t, "dir/out-3.yaml", outputPath("dir/out.yaml", 2, 3))
	require.Equal(t, "out-1", outputPath("out", 0, 2))
}

func TestSuiteName(t *testing.T) {
	require.Equal(t, "model", suiteName("x/model.dot", 0, 1))
	require.Equal(t, "model-2", suiteName("x/model.dot", 1, 2))
}
