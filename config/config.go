// Package config holds the run configuration of the ssgpath pipeline,
// loaded from YAML and overridden by command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/ssgpath/internal/logging"
)

// ErrInvalidConfig is returned by Validate, wrapped with the offending field.
var ErrInvalidConfig = errors.New("config: invalid value")

// Max-flow algorithms understood by the pipeline.
const (
	AlgorithmDinic       = "dinic"
	AlgorithmEdmondsKarp = "edmonds-karp"
)

// Output formats understood by the export package.
const (
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatMsgpack = "msgpack"
)

// Config is the YAML schema of a run.
//
//	input: model.dot
//	algorithm: dinic
//	capacity: 1
//	max_length: 40
//	max_paths: 100000
//	simple_only: false
//	samples: 50
//	rounds: 1
//	seed: 7
//	output: suite.yaml
//	format: yaml
//	log_level: info
type Config struct {
	// Input is the DOT file produced by the model checker.
	Input string `yaml:"input"`

	// Algorithm computes the max flow: dinic or edmonds-karp.
	Algorithm string `yaml:"algorithm"`

	// Capacity of every declared transition for the flow computation.
	Capacity int64 `yaml:"capacity"`

	// MaxLength caps the node count of enumerated paths (0 = no cap).
	MaxLength int `yaml:"max_length"`

	// MaxPaths caps the enumerated population (0 = no cap).
	MaxPaths int `yaml:"max_paths"`

	// SimpleOnly drops paths that revisit a state.
	SimpleOnly bool `yaml:"simple_only"`

	// Samples is the number of paths drawn per round.
	Samples int `yaml:"samples"`

	// Rounds is the number of independent samples.
	Rounds int `yaml:"rounds"`

	// Seed for the sampler; 0 selects the sampler's default seed.
	Seed int64 `yaml:"seed"`

	// Output is the suite destination; empty means stdout.
	Output string `yaml:"output"`

	// Format of the suite: json, yaml or msgpack.
	Format string `yaml:"format"`

	// LogLevel: debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Algorithm: AlgorithmDinic,
		Capacity:  1,
		Samples:   10,
		Rounds:    1,
		Format:    FormatYAML,
		LogLevel:  "info",
	}
}

// Load reads a YAML file on top of Default. An empty path returns Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML from r on top of Default. Unknown keys are rejected.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Validate checks every field and returns the first violation.
func (c Config) Validate() error {
	switch {
	case c.Capacity < 1:
		return fmt.Errorf("%w: capacity must be ≥ 1 (%d)", ErrInvalidConfig, c.Capacity)
	case c.MaxLength < 0:
		return fmt.Errorf("%w: max_length cannot be negative (%d)", ErrInvalidConfig, c.MaxLength)
	case c.MaxPaths < 0:
		return fmt.Errorf("%w: max_paths cannot be negative (%d)", ErrInvalidConfig, c.MaxPaths)
	case c.Samples < 0:
		return fmt.Errorf("%w: samples cannot be negative (%d)", ErrInvalidConfig, c.Samples)
	case c.Rounds < 1:
		return fmt.Errorf("%w: rounds must be ≥ 1 (%d)", ErrInvalidConfig, c.Rounds)
	}
	switch c.Algorithm {
	case AlgorithmDinic, AlgorithmEdmondsKarp:
	default:
		return fmt.Errorf("%w: algorithm %q", ErrInvalidConfig, c.Algorithm)
	}
	switch c.Format {
	case FormatJSON, FormatYAML, FormatMsgpack:
	default:
		return fmt.Errorf("%w: format %q", ErrInvalidConfig, c.Format)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}

	return nil
}
