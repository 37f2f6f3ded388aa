package paths_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/ssgpath/dot"
	"github.com/katalvlaran/ssgpath/paths"
	"github.com/katalvlaran/ssgpath/ssg"
)

// layered builds a sealed graph of `layers` layers with `width` states each;
// every state has `fanout` transitions into the next layer and, with
// probability back, one transition into the previous layer.
func layered(b *testing.B, layers, width, fanout int, back float64, seed int64) *ssg.Graph {
	b.Helper()
	r := rand.New(rand.NewSource(seed)) // deterministic seed for reproducibility
	g := ssg.New()
	if _, err := g.AddNode(0, "init"); err != nil {
		b.Fatal(err)
	}
	grid := make([][]int, layers)
	id := int64(1)
	for l := range grid {
		grid[l] = make([]int, width)
		for i := range grid[l] {
			idx, err := g.AddNode(id, "")
			if err != nil {
				b.Fatal(err)
			}
			grid[l][i] = idx
			id++
		}
	}
	add := func(u, v int) {
		if _, _, err := g.AddEdge(u, v, "step", nil); err != nil {
			b.Fatal(err)
		}
	}
	add(0, grid[0][0])
	for l := 0; l+1 < layers; l++ {
		for _, u := range grid[l] {
			for j := 0; j < fanout; j++ {
				add(u, grid[l+1][r.Intn(width)])
			}
			if l > 0 && r.Float64() < back {
				add(u, grid[l-1][r.Intn(width)])
			}
		}
	}
	if _, err := g.AugmentWithSink(); err != nil {
		b.Fatal(err)
	}

	return g
}

// BenchmarkEnumerate measures the full bidirectional enumeration.
func BenchmarkEnumerate(b *testing.B) {
	fixture, err := dot.LoadFile("../dot/testdata/small-graph-test.dot")
	if err != nil {
		b.Fatal(err)
	}
	cases := []struct {
		name string
		g    *ssg.Graph
	}{
		{"Fixture", fixture},
		{"Layered_10x20", layered(b, 10, 20, 2, 0.1, 42)},
		{"Layered_30x50", layered(b, 30, 50, 2, 0.05, 4242)},
	}

	for _, tc := range cases {
		tc := tc
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := paths.Enumerate(tc.g); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
