// Package export turns sampled paths into a test suite and writes it as
// JSON, YAML or MessagePack.
package export

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/ssgpath/ssg"
)

// ErrUnknownFormat is returned for an output format other than json, yaml or msgpack.
var ErrUnknownFormat = errors.New("export: unknown format")

// Suite is a set of executable test cases derived from a state-space graph.
type Suite struct {
	Name    string `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	Seed    int64  `json:"seed" yaml:"seed" msgpack:"seed"`
	MaxFlow int64  `json:"max_flow" yaml:"max_flow" msgpack:"max_flow"`
	Cases   []Case `json:"cases" yaml:"cases" msgpack:"cases"`
}

// Case is one run of the model: the visited states and the transitions
// between them. The synthetic sink is not part of it.
type Case struct {
	ID     int     `json:"id" yaml:"id" msgpack:"id"`
	States []int64 `json:"states" yaml:"states" msgpack:"states"`
	Steps  []Step  `json:"steps" yaml:"steps" msgpack:"steps"`
}

// Step is one transition of a Case.
type Step struct {
	From   int64    `json:"from" yaml:"from" msgpack:"from"`
	To     int64    `json:"to" yaml:"to" msgpack:"to"`
	Label  string   `json:"label" yaml:"label" msgpack:"label"`
	Params []string `json:"params,omitempty" yaml:"params,omitempty" msgpack:"params,omitempty"`
}

// Build resolves every path of ps against g into a Case. Case ids follow
// the order of ps starting at 1.
func Build(g *ssg.Graph, ps []ssg.Path) (Suite, error) {
	if g == nil {
		return Suite{}, errors.New("export: graph is nil")
	}
	s := Suite{Cases: make([]Case, 0, len(ps))}
	for i, p := range ps {
		es, err := g.PathEdges(p)
		if err != nil {
			return Suite{}, fmt.Errorf("export: case %d: %w", i+1, err)
		}
		c := Case{ID: i + 1, States: make([]int64, 0, len(p)), Steps: make([]Step, 0, len(es))}
		for _, v := range p {
			n, err := g.Node(v)
			if err != nil {
				return Suite{}, fmt.Errorf("export: case %d: %w", i+1, err)
			}
			if !n.Sink {
				c.States = append(c.States, n.ExternalID)
			}
		}
		for _, e := range es {
			if e.Final {
				continue
			}
			from, _ := g.ExternalID(e.Src)
			to, _ := g.ExternalID(e.Dst)
			c.Steps = append(c.Steps, Step{From: from, To: to, Label: e.Label, Params: e.Params})
		}
		s.Cases = append(s.Cases, c)
	}

	return s, nil
}
