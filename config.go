package motiffinding

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// RunConfig contains the parameters of a complete motif-finding run:
// the shape of the synthetic dataset, the sampler settings, and the
// optional trace logging.
type RunConfig struct {
	NumMotifs      int `toml:"num_motifs"`
	MotifLength    int `toml:"motif_length"`
	NumSequences   int `toml:"num_sequences"`
	SequenceLength int `toml:"sequence_length"`

	// MutationRate is the per-base probability that a planted motif
	// copy carries a simulated read error. Zero plants copies verbatim.
	MutationRate float64 `toml:"mutation_rate"`

	Pseudocount   float64 `toml:"pseudocount"`
	MaxIterations int     `toml:"max_iterations"`

	// StableWindow, when positive, enables the stable-consensus early
	// exit with the given window of consecutive iterations.
	StableWindow int `toml:"stable_window"`

	// Precision selects the floating-point type of the sampler:
	// float32 or float64.
	Precision string `toml:"precision"`

	// Seed, when positive, makes the run deterministic. Zero seeds the
	// generator from OS entropy.
	Seed uint64 `toml:"seed"`

	// LogFreq is the number of iterations between trace snapshots.
	LogFreq int `toml:"log_freq"`
	// TracePath, when set, enables trace logging beneath this path.
	TracePath string `toml:"trace_path"`
	// TraceFormat is either csv or sqlite.
	TraceFormat string `toml:"trace_format"`

	validated bool
}

const (
	// Float32Precision selects the single-precision sampler.
	Float32Precision = "float32"
	// Float64Precision selects the double-precision sampler.
	Float64Precision = "float64"
)

// DefaultRunConfig returns a RunConfig with the default sampler
// settings filled in. NumMotifs defaults to 1; the other dataset shape
// fields are left zero and must be set by the caller.
func DefaultRunConfig() *RunConfig {
	c := new(RunConfig)
	c.NumMotifs = 1
	c.Pseudocount = 0.1
	c.MaxIterations = DefaultMaxIterations
	c.Precision = Float32Precision
	c.TraceFormat = "csv"
	c.LogFreq = 100
	return c
}

// LoadRunConfig parses a TOML config file into a RunConfig, on top of
// the defaults.
func LoadRunConfig(path string) (*RunConfig, error) {
	c := DefaultRunConfig()
	if _, err := toml.DecodeFile(path, c); err != nil {
		return nil, errors.Wrap(err, "decoding run config")
	}
	return c, nil
}

// Validate checks the validity of the configuration.
func (c *RunConfig) Validate() error {
	if c.NumMotifs <= 0 {
		return fmt.Errorf(InvalidIntParameterError, "num_motifs", c.NumMotifs, "must be greater than zero")
	}
	if c.MotifLength <= 0 {
		return fmt.Errorf(InvalidIntParameterError, "motif_length", c.MotifLength, "must be greater than zero")
	}
	if c.NumSequences <= 0 {
		return fmt.Errorf(InvalidIntParameterError, "num_sequences", c.NumSequences, "must be greater than zero")
	}
	if c.SequenceLength <= 0 {
		return fmt.Errorf(InvalidIntParameterError, "sequence_length", c.SequenceLength, "must be greater than zero")
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf(InvalidFloatParameterError, "mutation_rate", c.MutationRate, "must be between 0 and 1")
	}
	if c.Pseudocount <= 0 {
		return fmt.Errorf(InvalidPseudocountError, c.Pseudocount)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf(InvalidIntParameterError, "max_iterations", c.MaxIterations, "must be greater than zero")
	}
	if c.StableWindow < 0 {
		return fmt.Errorf(InvalidIntParameterError, "stable_window", c.StableWindow, "must not be negative")
	}
	// precision
	switch strings.ToLower(c.Precision) {
	case Float32Precision:
	case Float64Precision:
	default:
		return fmt.Errorf(UnrecognizedKeywordError, c.Precision, "precision")
	}
	// trace_format
	switch strings.ToLower(c.TraceFormat) {
	case "csv":
	case "sqlite":
	default:
		return fmt.Errorf(UnrecognizedKeywordError, c.TraceFormat, "trace_format")
	}
	if c.TracePath != "" && c.LogFreq <= 0 {
		return fmt.Errorf(InvalidIntParameterError, "log_freq", c.LogFreq, "must be greater than zero")
	}
	c.validated = true
	return nil
}

// NewRng creates the run's random source: seeded when Seed is set,
// from OS entropy otherwise.
func (c *RunConfig) NewRng() *Rng {
	if c.Seed != 0 {
		return NewRng(c.Seed)
	}
	return NewRngFromEntropy()
}

// NewDataset generates the synthetic dataset described by the
// configuration. NumMotifs copies of MotifLength form the motif
// lengths.
func (c *RunConfig) NewDataset(rng *Rng) (*Dataset, error) {
	if !c.validated {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}
	motifLengths := make([]int, c.NumMotifs)
	for i := range motifLengths {
		motifLengths[i] = c.MotifLength
	}
	if c.MutationRate > 0 {
		m, err := NewUniformMutator(c.MutationRate)
		if err != nil {
			return nil, err
		}
		return NewMutatedDataset(rng, motifLengths, c.NumSequences, c.SequenceLength, m)
	}
	return NewDataset(rng, motifLengths, c.NumSequences, c.SequenceLength)
}

// NewLogger creates the trace logger selected by the configuration,
// or nil when trace logging is disabled. i distinguishes repeated runs
// sharing a base path.
func (c *RunConfig) NewLogger(i int) (TraceLogger, error) {
	if c.TracePath == "" {
		return nil, nil
	}
	var l TraceLogger
	switch strings.ToLower(c.TraceFormat) {
	case "sqlite":
		l = NewSQLiteLogger(c.TracePath, i)
	default:
		l = NewCSVLogger(c.TracePath, i)
	}
	if err := l.Init(); err != nil {
		return nil, errors.Wrap(err, "initializing trace logger")
	}
	return l, nil
}

// RunOn runs the configured sampler over an existing dataset.
func (c *RunConfig) RunOn(data *Dataset, rng *Rng) (Result, error) {
	if !c.validated {
		if err := c.Validate(); err != nil {
			return Result{}, err
		}
	}
	logger, err := c.NewLogger(0)
	if err != nil {
		return Result{}, err
	}
	if strings.ToLower(c.Precision) == Float64Precision {
		return runSampler[float64](c, data, rng, logger)
	}
	return runSampler[float32](c, data, rng, logger)
}

// Run generates a dataset and runs the configured sampler over it.
func (c *RunConfig) Run() (Result, error) {
	rng := c.NewRng()
	data, err := c.NewDataset(rng)
	if err != nil {
		return Result{}, err
	}
	return c.RunOn(data, rng)
}

func runSampler[T Float](c *RunConfig, data *Dataset, rng *Rng, logger TraceLogger) (Result, error) {
	s := NewSerialSampler[T](data, rng)
	if err := s.SetMaxIterations(c.MaxIterations); err != nil {
		return Result{}, err
	}
	if c.StableWindow > 0 {
		s.SetStopCondition(NewStableConsensusCondition(c.StableWindow))
	}
	if logger != nil {
		if err := s.SetTraceLogger(logger, c.LogFreq); err != nil {
			return Result{}, err
		}
	}
	return s.FindMotifs(c.MotifLength, T(c.Pseudocount))
}
