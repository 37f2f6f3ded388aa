// Package sampler draws a bounded, representative subset from a complete
// path population.
//
// Stratify groups paths by length (node count) and builds a cumulative
// distribution over the lengths in ascending order. Each draw picks a uniform
// r in [0,1), selects the first length whose cumulative probability is ≥ r
// (the last length when rounding leaves r above every entry), and then a
// uniform path of that length. Draws are with replacement; Distinct removes
// repeats for callers that need unique paths.
//
// Randomness always comes from an explicit *rand.Rand: WithRand supplies one,
// otherwise WithSeed builds it (seed 0 selects DefaultSeed). Equal seeds give
// equal samples.
//
//	s, _ := sampler.Stratify(population)
//	one := s.Draw(rng)
//	many, _ := sampler.Sample(population, 100, sampler.WithSeed(42))
package sampler
