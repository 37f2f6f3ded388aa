package sampler

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/katalvlaran/ssgpath/ssg"
)

// Sentinel errors for sampling.
var (
	// ErrEmptyPathSet is returned when the population holds no path.
	ErrEmptyPathSet = errors.New("sampler: empty path set")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("sampler: invalid option supplied")
)

// Option configures a sampling run.
type Option func(*Options)

// Options holds the random source and logging of a run.
type Options struct {
	// Seed feeds the default generator; 0 selects DefaultSeed.
	Seed int64

	// Rand, when set, is used instead of a generator built from Seed.
	Rand *rand.Rand

	// Logger receives one summary record per drawn sample; nil disables logging.
	Logger *slog.Logger

	err error
}

// WithSeed sets the generator seed.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithRand supplies a caller-owned generator. A nil rng is a violation.
func WithRand(rng *rand.Rand) Option {
	return func(o *Options) {
		if rng == nil {
			o.err = fmt.Errorf("%w: nil generator", ErrOptionViolation)
			return
		}
		o.Rand = rng
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func buildOptions(opts []Option) (Options, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	return o, o.err
}

func (o Options) rng() *rand.Rand {
	if o.Rand != nil {
		return o.Rand
	}

	return rngFromSeed(o.Seed)
}

// Bucket groups the paths of one length (node count).
type Bucket struct {
	Length    int
	Paths     []ssg.Path
	Frequency float64
}

// Strata is the length-stratified view of a path population. It is built
// once by Stratify and passed explicitly to every draw.
type Strata struct {
	// Buckets are sorted by ascending Length.
	Buckets []Bucket

	// Cumulative[i] is the summed Frequency of Buckets[0..i].
	Cumulative []float64

	// Total is the population size.
	Total int
}
