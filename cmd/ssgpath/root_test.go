package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ssgpath/config"
	"github.com/katalvlaran/ssgpath/export"
)

const fixture = "../../dot/testdata/small-graph-test.dot"

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	require.NoError(t, rootCmd.Execute())

	return out.String()
}

func TestFlowCommand(t *testing.T) {
	out := run(t, "flow", fixture)
	require.Contains(t, out, "max flow: ")
	require.Contains(t, out, "run 1 (x1): 967637665389041036 -")
	require.Contains(t, out, "bottleneck: ")
}

func TestFlowCommandAlgorithms(t *testing.T) {
	dinic := run(t, "flow", fixture, "--algorithm", "dinic")
	ek := run(t, "flow", fixture, "--algorithm", "edmonds-karp")
	first := func(s string) string { return strings.SplitN(s, " (", 2)[0] }
	require.Equal(t, first(dinic), first(ek))
	require.True(t, strings.HasPrefix(ek, "max flow: "), ek)

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"flow", fixture, "--algorithm", "simplex", "--log-level", "error"})
	require.ErrorIs(t, rootCmd.Execute(), config.ErrInvalidConfig)
	// restore the default for later commands
	run(t, "flow", fixture, "--algorithm", "dinic")
}

func TestStatsCommand(t *testing.T) {
	out := run(t, "stats", fixture)
	require.Contains(t, out, "nodes:      26\n")
	require.Contains(t, out, "edges:      68\n")
	require.Contains(t, out, "terminals:  2\n")
	require.Contains(t, out, "stage enumerate")
}

func TestPathsCommand(t *testing.T) {
	out := run(t, "paths", fixture, "--max-paths", "3")
	require.Contains(t, out, "(truncated at 3 paths)")
}

func TestSampleCommand(t *testing.T) {
	dir := t.TempDir()
	suitePath := filepath.Join(dir, "suite.json")
	metricsPath := filepath.Join(dir, "metrics.prom")
	run(t, "sample", fixture, "-n", "5", "--seed", "9", "-f", "json", "-o", suitePath, "--metrics-out", metricsPath)

	f, err := os.Open(suitePath)
	require.NoError(t, err)
	defer f.Close()
	s, err := export.Read(f, export.FormatJSON)
	require.NoError(t, err)
	require.Equal(t, int64(9), s.Seed)
	require.NotEmpty(t, s.Cases)
	require.LessOrEqual(t, len(s.Cases), 5)

	m, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	require.Contains(t, string(m), "ssgpath_paths_sampled_total 5")
}

func TestBadConfigFlag(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"stats", fixture, "--config", filepath.Join(t.TempDir(), "none.yaml")})
	require.Error(t, rootCmd.Execute())
}
