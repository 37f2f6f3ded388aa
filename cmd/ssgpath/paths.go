package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ssgpath/paths"
	"github.com/katalvlaran/ssgpath/ssg"
)

// pathsCmd represents the paths command
var pathsCmd = &cobra.Command{
	Use:   "paths <graph.dot>",
	Short: "Enumerate the complete source to sink paths",
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

		out := cmd.OutOrStdout()
		for _, p := range ps {
			line, err := formatPath(g, p)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, line)
		}
		if e.runner.Report().Truncated {
			fmt.Fprintf(out, "(truncated at %d paths)\n", len(ps))
		}

		return e.finish(cmd)
	},
}

func init() {
	rootCmd.AddCommand(pathsCmd)
	addEnumerateFlags(pathsCmd)
}

// formatPath renders p as "s -a-> t -b-> u" with external state ids. The
// closing step into the synthetic sink is omitted.
func formatPath(g *ssg.Graph, p ssg.Path) (string, error) {
	es, err := paths.Resolve(g, p)
	if err != nil {
		return "", err
	}
	if len(p) == 0 {
		return "", nil
	}
	var b strings.Builder
	first, err := g.ExternalID(p[0])
	if err != nil {
		return "", err
	}
	b.WriteString(strconv.FormatInt(first, 10))
	for _, edge := range es {
		if edge.Final {
			continue
		}
		to, _ := g.ExternalID(edge.Dst)
		b.WriteString(" -")
		b.WriteString(edge.Label)
		if len(edge.Params) > 0 {
			b.WriteString("(" + strings.Join(edge.Params, ",") + ")")
		}
		b.WriteString("-> ")
		b.WriteString(strconv.FormatInt(to, 10))
	}

	return b.String(), nil
}
