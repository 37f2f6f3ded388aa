package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ssgpath/paths"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats <graph.dot>",
	Short: "Print graph and path population statistics",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, args)
		if err != nil {
			return err
		}
		g, err := e.runner.Load()
		if err != nil {
			return err
		}
		ps, err := e.runner.Enumerate(g)
		if err != nil {
			return err
		}
		cov, err := paths.CoveredEdges(g, ps)
		if err != nil {
			return err
		}

		rep := e.runner.Report()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "nodes:      %d\n", rep.Nodes)
		fmt.Fprintf(out, "edges:      %d\n", rep.Edges)
		fmt.Fprintf(out, "terminals:  %d\n", rep.Terminals)
		fmt.Fprintf(out, "paths:      %d\n", rep.Summary.Count)
		fmt.Fprintf(out, "length:     min %d, max %d, avg %.2f\n", rep.Summary.Min, rep.Summary.Max, rep.Summary.Average)
		fmt.Fprintf(out, "coverage:   %d/%d transitions (%.1f%%)\n", cov.Covered, cov.Total, 100*cov.Ratio)
		for _, st := range rep.Stages {
			fmt.Fprintf(out, "stage %-10s %s\n", st.Stage, st.Duration)
		}

		return e.finish(cmd)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	addEnumerateFlags(statsCmd)
}
