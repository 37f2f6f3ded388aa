// Package ssgpath generates test paths from the state-space graph of a
// model checker.
//
// A state-space graph is read from Graphviz DOT (package dot) into an arena
// of nodes and paired residual edges (package ssg). Every terminal state is
// wired to one synthetic sink, so "a complete run" is simply a path from the
// initial state to the sink.
//
// On top of that graph:
//
//	flow/    Dinic max flow: number of edge-disjoint runs, min cut, decomposition
//	paths/   bidirectional BFS enumeration of complete paths
//	sampler/ length-stratified, seedable sampling of a path population
//	export/  test suites as YAML, JSON or MessagePack
//	config/  YAML run configuration
//	metrics/ Prometheus collectors for a run
//
// The ssgpath command (cmd/ssgpath) ties the stages together:
//
//	ssgpath sample --config run.yaml -n 20 --seed 7 -o suite.yaml
//
// Quick example, a small handshake with a retry loop:
//
//	idle ──send──▶ sent ──ack──▶ done
//	  ▲              │
//	  └────retry─────┘
//
// has the shortest run [idle sent done] and, with cycles allowed, the longer
// [idle sent idle sent done]; a sample of size n draws lengths in proportion
// to how often they occur in the population.
package ssgpath
