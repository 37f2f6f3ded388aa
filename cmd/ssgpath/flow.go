package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// flowCmd represents the flow command
var flowCmd = &cobra.Command{
	Use:   "flow <graph.dot>",
	Short: "Compute the maximum number of edge-disjoint runs",
	Long: `Runs Dinic's algorithm with a uniform capacity on every declared transition and
prints the max flow, one maximum set of edge-disjoint runs and the bottleneck
transitions (minimum cut).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, args)
		if err != nil {
			return err
		}
		g, err := e.runner.Load()
		if err != nil {
			return err
		}
		fr, err := e.runner.Flow(g)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "max flow: %d (phases: %d, augmentations: %d)\n", fr.MaxFlow, fr.Phases, fr.Augmentations)
		for i, fp := range fr.Disjoint {
			line, err := formatPath(g, fp.Path)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "run %d (x%d): %s\n", i+1, fp.Flow, line)
		}
		for _, key := range fr.CutEdges {
			fmt.Fprintf(out, "bottleneck: %s\n", key)
		}

		return e.finish(cmd)
	},
}

func init() {
	rootCmd.AddCommand(flowCmd)

	addFlowFlags(flowCmd)
}
