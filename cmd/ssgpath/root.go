package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/ssgpath/config"
	"github.com/katalvlaran/ssgpath/internal/logging"
	"github.com/katalvlaran/ssgpath/internal/pipeline"
	"github.com/katalvlaran/ssgpath/metrics"
)

var rootCmd = &cobra.Command{
	Use:   "ssgpath",
	Short: "ssgpath derives test paths from state-space graphs",
	Long: `ssgpath loads the DOT state-space graph written by a model checker, computes
the maximum number of edge-disjoint runs, enumerates the complete source to
sink paths and samples a representative test suite from them.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "YAML run configuration")
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn or error (overrides the config)")
	rootCmd.PersistentFlags().String("metrics-out", "", "write Prometheus text metrics to this file after the run")
}

// env is what every command needs before running stages.
type env struct {
	cfg     config.Config
	log     *slog.Logger
	metrics *metrics.Collector
	runner  *pipeline.Runner
}

// setup loads the configuration, applies flag overrides and the input
// argument, and builds the logger, metrics and runner.
func setup(cmd *cobra.Command, args []string) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		cfg.Input = args[0]
	}
	applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, log: logging.New(level)}
	e.metrics, err = metrics.New(prometheus.NewRegistry())
	if err != nil {
		return nil, err
	}
	e.runner, err = pipeline.New(cfg, pipeline.Deps{Logger: e.log, Metrics: e.metrics})
	if err != nil {
		return nil, err
	}

	return e, nil
}

// applyFlags copies every flag the user set onto cfg. Flags a command does
// not define are never reported as changed.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	fs := cmd.Flags()
	if fs.Changed("log-level") {
		cfg.LogLevel, _ = fs.GetString("log-level")
	}
	if fs.Changed("algorithm") {
		cfg.Algorithm, _ = fs.GetString("algorithm")
	}
	if fs.Changed("capacity") {
		cfg.Capacity, _ = fs.GetInt64("capacity")
	}
	if fs.Changed("max-length") {
		cfg.MaxLength, _ = fs.GetInt("max-length")
	}
	if fs.Changed("max-paths") {
		cfg.MaxPaths, _ = fs.GetInt("max-paths")
	}
	if fs.Changed("simple") {
		cfg.SimpleOnly, _ = fs.GetBool("simple")
	}
	if fs.Changed("samples") {
		cfg.Samples, _ = fs.GetInt("samples")
	}
	if fs.Changed("rounds") {
		cfg.Rounds, _ = fs.GetInt("rounds")
	}
	if fs.Changed("seed") {
		cfg.Seed, _ = fs.GetInt64("seed")
	}
	if fs.Changed("output") {
		cfg.Output, _ = fs.GetString("output")
	}
	if fs.Changed("format") {
		cfg.Format, _ = fs.GetString("format")
	}
}

// finish dumps the metrics when --metrics-out is set.
func (e *env) finish(cmd *cobra.Command) error {
	out, _ := cmd.Flags().GetString("metrics-out")
	if out == "" {
		return nil
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create metrics file: %w", err)
	}
	if err := e.metrics.WriteText(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// addFlowFlags registers the max-flow settings on cmd.
func addFlowFlags(cmd *cobra.Command) {
	cmd.Flags().String("algorithm", config.AlgorithmDinic, "max-flow algorithm: dinic or edmonds-karp")
	cmd.Flags().Int64("capacity", 1, "capacity of every declared transition")
}

// addEnumerateFlags registers the enumeration limits on cmd.
func addEnumerateFlags(cmd *cobra.Command) {
	cmd.Flags().Int("max-length", 0, "drop paths with more nodes than this (0 = no cap)")
	cmd.Flags().Int("max-paths", 0, "stop after this many complete paths (0 = no cap)")
	cmd.Flags().Bool("simple", false, "keep only paths that never revisit a state")
}
