package sampler

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/katalvlaran/ssgpath/ssg"
)

// Stratify partitions ps into buckets keyed by path length and builds the
// ascending cumulative distribution over those lengths.
//
// Complexity: O(P log L) for P paths and L distinct lengths.
func Stratify(ps []ssg.Path) (*Strata, error) {
	if len(ps) == 0 {
		return nil, ErrEmptyPathSet
	}

	byLen := make(map[int][]ssg.Path)
	for _, p := range ps {
		byLen[len(p)] = append(byLen[len(p)], p)
	}
	lengths := make([]int, 0, len(byLen))
	for l := range byLen {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)

	s := &Strata{
		Buckets:    make([]Bucket, len(lengths)),
		Cumulative: make([]float64, len(lengths)),
		Total:      len(ps),
	}
	var acc float64
	for i, l := range lengths {
		f := float64(len(byLen[l])) / float64(len(ps))
		acc += f
		s.Buckets[i] = Bucket{Length: l, Paths: byLen[l], Frequency: f}
		s.Cumulative[i] = acc
	}

	return s, nil
}

// bucket returns the index of the first length whose cumulative probability
// is ≥ r. Rounding may leave the last entry slightly below 1, so a draw past
// it falls into the last bucket.
func (s *Strata) bucket(r float64) int {
	i := sort.SearchFloat64s(s.Cumulative, r)
	if i >= len(s.Buckets) {
		i = len(s.Buckets) - 1
	}

	return i
}

// Draw picks one path: a uniform r in [0,1) selects the length through the
// cumulative table, then a uniform index selects the path within the bucket.
func (s *Strata) Draw(rng *rand.Rand) ssg.Path {
	b := s.Buckets[s.bucket(rng.Float64())]

	return b.Paths[rng.Intn(len(b.Paths))]
}

// Lengths returns the bucket lengths in ascending order.
func (s *Strata) Lengths() []int {
	out := make([]int, len(s.Buckets))
	for i, b := range s.Buckets {
		out[i] = b.Length
	}

	return out
}

// Frequency returns the relative frequency of paths with the given length.
func (s *Strata) Frequency(length int) float64 {
	i := sort.Search(len(s.Buckets), func(i int) bool { return s.Buckets[i].Length >= length })
	if i < len(s.Buckets) && s.Buckets[i].Length == length {
		return s.Buckets[i].Frequency
	}

	return 0
}

// Sample draws n paths from ps with replacement so that their length
// distribution follows the population's. An empty population fails with
// ErrEmptyPathSet; n ≤ 0 yields an empty result.
func Sample(ps []ssg.Path, n int, opts ...Option) ([]ssg.Path, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	s, err := Stratify(ps)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return []ssg.Path{}, nil
	}

	out := s.draw(o.rng(), n)
	o.logSample(s, out, "round", 1)

	return out, nil
}

// Rounds draws k independent samples of n paths each. Every round gets its
// own stream derived from the configured generator, so round i is the same
// whatever k is. k must be positive.
func Rounds(ps []ssg.Path, n, k int, opts ...Option) ([][]ssg.Path, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	s, err := Stratify(ps)
	if err != nil {
		return nil, err
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: rounds must be positive (%d)", ErrOptionViolation, k)
	}

	parent := o.rng().Int63()
	out := make([][]ssg.Path, k)
	for i := range out {
		if n <= 0 {
			out[i] = []ssg.Path{}
		} else {
			out[i] = s.draw(deriveRNG(rngFromSeed(parent), uint64(i)), n)
		}
		o.logSample(s, out[i], "round", i+1)
	}

	return out, nil
}

// logSample emits the per-sample debug record.
func (o Options) logSample(s *Strata, out []ssg.Path, args ...any) {
	if o.Logger == nil {
		return
	}
	o.Logger.Debug("paths sampled", append([]any{
		"population", s.Total,
		"buckets", len(s.Buckets),
		"drawn", len(out),
		"distinct", len(Distinct(out)),
	}, args...)...)
}

func (s *Strata) draw(rng *rand.Rand, n int) []ssg.Path {
	out := make([]ssg.Path, n)
	for i := range out {
		out[i] = s.Draw(rng)
	}

	return out
}

// Distinct removes repeated sequences from a sample, keeping first occurrences.
func Distinct(ps []ssg.Path) []ssg.Path {
	seen := make(map[string]struct{}, len(ps))
	out := make([]ssg.Path, 0, len(ps))
	for _, p := range ps {
		k := p.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}

	return out
}

// Histogram returns the empirical length distribution of ps: the share of
// paths for every length present. An empty input yields an empty map.
func Histogram(ps []ssg.Path) map[int]float64 {
	h := make(map[int]float64)
	if len(ps) == 0 {
		return h
	}
	for _, p := range ps {
		h[len(p)]++
	}
	for l := range h {
		h[l] /= float64(len(ps))
	}

	return h
}
