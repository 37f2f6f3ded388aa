package main

import (
	"github.com/spf13/cobra"
)

// sampleCmd represents the sample command
var sampleCmd = &cobra.Command{
	Use:   "sample <graph.dot>",
	Short: "Run the whole pipeline and write a sampled test suite",
	Long: `Loads the graph, computes the edge-disjoint bound, enumerates the complete
paths, draws a length-stratified sample from them and writes the resulting
suite as yaml, json or msgpack (stdout unless --output is set).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, args)
		if err != nil {
			return err
		}
		if _, err := e.runner.Run(); err != nil {
			return err
		}

		return e.finish(cmd)
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
	addEnumerateFlags(sampleCmd)

	addFlowFlags(sampleCmd)
	sampleCmd.Flags().IntP("samples", "n", 10, "paths drawn per round")
	sampleCmd.Flags().Int("rounds", 1, "independent sampling rounds")
	sampleCmd.Flags().Int64("seed", 0, "sampler seed (0 = default seed)")
	sampleCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	sampleCmd.Flags().StringP("format", "f", "yaml", "suite format: yaml, json or msgpack")
}
