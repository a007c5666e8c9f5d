package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	motif "github.com/camfruss/motif-finding"
)

var (
	configPath   string
	seed         uint64
	pseudocount  float64
	iterations   int
	stableWindow int
	precision    string
	mutationRate float64
	tracePath    string
	traceFormat  string
	logFreq      int
)

var rootCmd = &cobra.Command{
	Use:   "motif-finding <num_motifs> <motif_length> <num_sequences> <sequence_length>",
	Short: "Discover shared motifs in synthetic DNA sequences by Gibbs sampling",
	Long: `motif-finding generates a set of random DNA sequences with known motifs
embedded at known positions, then runs a Gibbs sampler that estimates
where the motif begins in each sequence. The generated dataset is
printed first, followed by the number of correctly recovered positions
and the estimated positions themselves.`,
	Args:          cobra.ExactArgs(4),
	SilenceErrors: true,
	RunE:          runSynthetic,
}

var fastaCmd = &cobra.Command{
	Use:           "fasta <file> <motif_length>",
	Short:         "Run the sampler over sequences read from a FASTA file",
	Args:          cobra.ExactArgs(2),
	SilenceErrors: true,
	RunE:          runFASTA,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "TOML run configuration file")
	pf.Uint64Var(&seed, "seed", 0, "random seed; 0 seeds from OS entropy")
	pf.Float64Var(&pseudocount, "pseudocount", 0.1, "pseudocount added to every weight matrix cell")
	pf.IntVar(&iterations, "iterations", motif.DefaultMaxIterations, "iteration cap for the sampling loop")
	pf.IntVar(&stableWindow, "stable-window", 0, "halt after this many iterations of unchanged consensus; 0 disables")
	pf.StringVar(&precision, "precision", motif.Float32Precision, "sampler floating-point type: float32 or float64")
	pf.StringVar(&tracePath, "trace", "", "write a sampling trace beneath this path")
	pf.StringVar(&traceFormat, "trace-format", "csv", "trace format: csv or sqlite")
	pf.IntVar(&logFreq, "log-freq", 100, "iterations between trace snapshots")

	rootCmd.Flags().Float64Var(&mutationRate, "mutation-rate", 0, "per-base probability of a simulated read error in planted motifs")

	rootCmd.AddCommand(fastaCmd)
}

// loadConfig builds the run configuration from the config file, if
// any, with command-line flags layered on top.
func loadConfig(cmd *cobra.Command) (*motif.RunConfig, error) {
	cfg := motif.DefaultRunConfig()
	if configPath != "" {
		loaded, err := motif.LoadRunConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	override := func(name string, apply func()) {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	override("seed", func() { cfg.Seed = seed })
	override("pseudocount", func() { cfg.Pseudocount = pseudocount })
	override("iterations", func() { cfg.MaxIterations = iterations })
	override("stable-window", func() { cfg.StableWindow = stableWindow })
	override("precision", func() { cfg.Precision = precision })
	override("mutation-rate", func() { cfg.MutationRate = mutationRate })
	override("trace", func() { cfg.TracePath = tracePath })
	override("trace-format", func() { cfg.TraceFormat = traceFormat })
	override("log-freq", func() { cfg.LogFreq = logFreq })
	return cfg, nil
}

func parsePositiveInt(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q, must be an integer", name, value)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid %s %d, must be greater than zero", name, n)
	}
	return n, nil
}

func runSynthetic(cmd *cobra.Command, args []string) error {
	// Arity and flag errors above still print usage; errors from the
	// run itself do not.
	cmd.SilenceUsage = true

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	names := []string{"num_motifs", "motif_length", "num_sequences", "sequence_length"}
	values := make([]int, len(args))
	for i, arg := range args {
		values[i], err = parsePositiveInt(names[i], arg)
		if err != nil {
			return err
		}
	}
	cfg.NumMotifs = values[0]
	cfg.MotifLength = values[1]
	cfg.NumSequences = values[2]
	cfg.SequenceLength = values[3]
	if err := cfg.Validate(); err != nil {
		return err
	}

	rng := cfg.NewRng()
	data, err := cfg.NewDataset(rng)
	if err != nil {
		return err
	}
	fmt.Print(data)

	result, err := cfg.RunOn(data, rng)
	if err != nil {
		return err
	}
	printResult(result)
	return nil
}

func runFASTA(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := motif.LoadFASTA(args[0])
	if err != nil {
		return err
	}
	cfg.MotifLength, err = parsePositiveInt("motif_length", args[1])
	if err != nil {
		return err
	}
	cfg.NumSequences = data.NumSequences
	cfg.SequenceLength = data.SequenceLength
	if err := cfg.Validate(); err != nil {
		return err
	}

	result, err := cfg.RunOn(data, cfg.NewRng())
	if err != nil {
		return err
	}
	fmt.Printf("consensus: %s\n", result.Consensus)
	printPositions(result.Positions)
	return nil
}

func printResult(r motif.Result) {
	fmt.Printf("num correct: %d\n", r.NumCorrect)
	printPositions(r.Positions)
}

func printPositions(positions []int) {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = strconv.Itoa(p)
	}
	fmt.Println(strings.Join(parts, " "))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
