package motiffinding

const (
	// InvalidSymbolError is the message printed when a character outside
	// the nucleotide alphabet is encountered during encoding.
	InvalidSymbolError = "invalid nucleotide symbol %q"

	// InvalidKError is the message printed when the requested motif
	// length cannot fit the sequences being searched.
	InvalidKError = "invalid motif length %d, must be positive and less than sequence length %d"

	// InvalidPseudocountError is the message printed when a sampler is
	// configured with a non-positive pseudocount.
	InvalidPseudocountError = "invalid pseudocount %f, must be greater than zero"

	// InfeasibleLayoutError is the message printed when the requested
	// number of disjoint intervals cannot fit inside the target range.
	InfeasibleLayoutError = "cannot place %d disjoint intervals of width %d in [0, %d)"

	// ZeroWeightsError is the message printed when a discrete draw is
	// requested over weights that are all zero.
	ZeroWeightsError = "weights must contain at least one positive value"

	// NegativeWeightError is the message printed when a discrete draw is
	// requested over a negative weight.
	NegativeWeightError = "invalid weight %f at index %d, must be non-negative"

	// UnequalSequenceLengthError is the message printed when input
	// sequences do not share a single common length.
	UnequalSequenceLengthError = "sequence %s has length %d, expected %d"

	InvalidFloatParameterError  = "invalid %s %f, %s"
	InvalidIntParameterError    = "invalid %s %d, %s"
	InvalidStringParameterError = "invalid %s %s, %s"

	// UnrecognizedKeywordError is the message printed when a
	// configuration keyword is not one of the accepted values.
	UnrecognizedKeywordError = "unrecognized keyword %s for %s"
)

const (
	UnequalFloatParameterError  = "expected %s %f, instead got %f"
	UnequalIntParameterError    = "expected %s %d, instead got %d"
	UnequalStringParameterError = "expected %s %s, instead got %s"
	UnexpectedErrorWhileError   = "encountered error while %s: %s"
	ExpectedErrorWhileError     = "expected an error while %s, instead got none"
)
