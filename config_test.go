package motiffinding

import (
	"path/filepath"
	"testing"
)

func TestLoadRunConfig(t *testing.T) {
	path := filepath.Join("testdata", "run.toml")
	c, err := LoadRunConfig(path)
	if err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "loading the run config", err)
	}
	if c.NumMotifs != 2 {
		t.Errorf(UnequalIntParameterError, "num_motifs", 2, c.NumMotifs)
	}
	if c.MotifLength != 8 {
		t.Errorf(UnequalIntParameterError, "motif_length", 8, c.MotifLength)
	}
	if c.NumSequences != 20 {
		t.Errorf(UnequalIntParameterError, "num_sequences", 20, c.NumSequences)
	}
	if c.SequenceLength != 300 {
		t.Errorf(UnequalIntParameterError, "sequence_length", 300, c.SequenceLength)
	}
	if c.MutationRate != 0.05 {
		t.Errorf(UnequalFloatParameterError, "mutation_rate", 0.05, c.MutationRate)
	}
	if c.Pseudocount != 0.5 {
		t.Errorf(UnequalFloatParameterError, "pseudocount", 0.5, c.Pseudocount)
	}
	if c.MaxIterations != 2000 {
		t.Errorf(UnequalIntParameterError, "max_iterations", 2000, c.MaxIterations)
	}
	if c.StableWindow != 100 {
		t.Errorf(UnequalIntParameterError, "stable_window", 100, c.StableWindow)
	}
	if c.Precision != Float64Precision {
		t.Errorf(UnequalStringParameterError, "precision", Float64Precision, c.Precision)
	}
	if c.Seed != 42 {
		t.Errorf(UnequalIntParameterError, "seed", 42, int(c.Seed))
	}
	if c.TracePath != "out/run" {
		t.Errorf(UnequalStringParameterError, "trace_path", "out/run", c.TracePath)
	}
	if err := c.Validate(); err != nil {
		t.Errorf(UnexpectedErrorWhileError, "validating the run config", err)
	}
}

func TestRunConfigDefaults(t *testing.T) {
	c := DefaultRunConfig()
	if c.Pseudocount != 0.1 {
		t.Errorf(UnequalFloatParameterError, "default pseudocount", 0.1, c.Pseudocount)
	}
	if c.MaxIterations != DefaultMaxIterations {
		t.Errorf(UnequalIntParameterError, "default iteration cap", DefaultMaxIterations, c.MaxIterations)
	}
	if c.Precision != Float32Precision {
		t.Errorf(UnequalStringParameterError, "default precision", Float32Precision, c.Precision)
	}
	if c.StableWindow != 0 {
		t.Errorf(UnequalIntParameterError, "default stable window", 0, c.StableWindow)
	}
}

func TestRunConfigValidate(t *testing.T) {
	base := func() *RunConfig {
		c := DefaultRunConfig()
		c.NumMotifs = 1
		c.MotifLength = 5
		c.NumSequences = 10
		c.SequenceLength = 100
		return c
	}
	if err := base().Validate(); err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "validating a well-formed config", err)
	}

	cases := []struct {
		name   string
		mutate func(*RunConfig)
	}{
		{"zero num_motifs", func(c *RunConfig) { c.NumMotifs = 0 }},
		{"zero motif_length", func(c *RunConfig) { c.MotifLength = 0 }},
		{"zero num_sequences", func(c *RunConfig) { c.NumSequences = 0 }},
		{"zero sequence_length", func(c *RunConfig) { c.SequenceLength = 0 }},
		{"negative mutation_rate", func(c *RunConfig) { c.MutationRate = -0.1 }},
		{"mutation_rate above one", func(c *RunConfig) { c.MutationRate = 1.1 }},
		{"zero pseudocount", func(c *RunConfig) { c.Pseudocount = 0 }},
		{"zero max_iterations", func(c *RunConfig) { c.MaxIterations = 0 }},
		{"negative stable_window", func(c *RunConfig) { c.StableWindow = -1 }},
		{"unknown precision", func(c *RunConfig) { c.Precision = "float16" }},
		{"unknown trace format", func(c *RunConfig) { c.TraceFormat = "parquet" }},
	}
	for _, tc := range cases {
		c := base()
		tc.mutate(c)
		if err := c.Validate(); err == nil {
			t.Errorf(ExpectedErrorWhileError, "validating a config with "+tc.name)
		}
	}
}

func TestRunConfigRun(t *testing.T) {
	c := DefaultRunConfig()
	c.NumMotifs = 1
	c.MotifLength = 4
	c.NumSequences = 5
	c.SequenceLength = 40
	c.MaxIterations = 200
	c.Precision = Float64Precision
	c.Seed = 17

	result, err := c.Run()
	if err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "running from config", err)
	}
	if l := len(result.Positions); l != 5 {
		t.Fatalf(UnequalIntParameterError, "number of positions", 5, l)
	}
	for i, p := range result.Positions {
		if p < 0 || p > 36 {
			t.Errorf("position %d for sequence %d outside [0, 36]", p, i)
		}
	}
	if l := len(result.Consensus); l != 4 {
		t.Errorf(UnequalIntParameterError, "consensus length", 4, l)
	}
}

func TestRunConfigSeededRunsAgree(t *testing.T) {
	run := func() Result {
		c := DefaultRunConfig()
		c.NumMotifs = 1
		c.MotifLength = 4
		c.NumSequences = 5
		c.SequenceLength = 40
		c.MaxIterations = 100
		c.Seed = 23
		r, err := c.Run()
		if err != nil {
			t.Fatalf(UnexpectedErrorWhileError, "running from config", err)
		}
		return r
	}
	a := run()
	b := run()
	if a.Consensus != b.Consensus {
		t.Errorf(UnequalStringParameterError, "consensus across identical seeded runs", a.Consensus, b.Consensus)
	}
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] {
			t.Errorf(UnequalIntParameterError, "position across identical seeded runs", a.Positions[i], b.Positions[i])
		}
	}
}
