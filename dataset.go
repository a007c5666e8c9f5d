package motiffinding

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// prettyPrintWidth is the number of sequence characters printed per
// line by Dataset.String.
const prettyPrintWidth = 80

// Motif records one planted motif instance inside a generated sequence.
type Motif struct {
	// Pattern is the copy actually written into the sequence, after any
	// simulated read errors.
	Pattern string

	// BasePattern is the consensus motif the copy derives from, before
	// read errors.
	BasePattern string

	// StartIndex is the offset in the parent sequence where Pattern
	// begins.
	StartIndex int

	// MotifID identifies which dataset-level consensus motif this
	// instance derives from.
	MotifID int
}

// Sequence bundles a nucleotide string with the motifs planted into it.
type Sequence struct {
	Bases  string
	Motifs []Motif
}

// Dataset is a collection of synthetic nucleotide sequences with known
// embedded motifs. A Dataset is built once by NewDataset and read-only
// afterwards, so one Dataset can safely back several sampler runs.
type Dataset struct {
	NumSequences   int
	SequenceLength int

	// MotifLengths holds the length of each consensus motif.
	MotifLengths []int

	// ConsensusMotifs holds the consensus motifs before read errors;
	// ConsensusMotifs[i] has length MotifLengths[i].
	ConsensusMotifs []string

	Sequences []Sequence
}

// NewDataset generates numSequences random sequences of length
// sequenceLength, each with one copy of every consensus motif embedded
// at disjoint positions. Copies are planted verbatim; use
// NewMutatedDataset to simulate read errors.
func NewDataset(rng *Rng, motifLengths []int, numSequences, sequenceLength int) (*Dataset, error) {
	return newDataset(rng, motifLengths, numSequences, sequenceLength, nil)
}

// NewMutatedDataset is NewDataset with every planted copy passed
// through the given Mutator first.
func NewMutatedDataset(rng *Rng, motifLengths []int, numSequences, sequenceLength int, m Mutator) (*Dataset, error) {
	return newDataset(rng, motifLengths, numSequences, sequenceLength, m)
}

func newDataset(rng *Rng, motifLengths []int, numSequences, sequenceLength int, m Mutator) (*Dataset, error) {
	if numSequences <= 0 {
		return nil, fmt.Errorf(InvalidIntParameterError, "number of sequences", numSequences, "must be greater than zero")
	}
	if sequenceLength <= 0 {
		return nil, fmt.Errorf(InvalidIntParameterError, "sequence length", sequenceLength, "must be greater than zero")
	}
	if len(motifLengths) == 0 {
		return nil, fmt.Errorf(InvalidIntParameterError, "number of motifs", len(motifLengths), "must be greater than zero")
	}
	width := 0
	for _, l := range motifLengths {
		if l <= 0 {
			return nil, fmt.Errorf(InvalidIntParameterError, "motif length", l, "must be greater than zero")
		}
		if l > width {
			width = l
		}
	}
	if width > sequenceLength {
		return nil, fmt.Errorf(InvalidIntParameterError, "motif length", width, "must not exceed the sequence length")
	}
	// Every sequence places one interval of the widest motif length per
	// consensus motif, so the same bound RandIndices enforces applies
	// here.
	if len(motifLengths)*width > sequenceLength {
		return nil, fmt.Errorf(InfeasibleLayoutError, len(motifLengths), width, sequenceLength)
	}

	d := new(Dataset)
	d.NumSequences = numSequences
	d.SequenceLength = sequenceLength
	d.MotifLengths = make([]int, len(motifLengths))
	copy(d.MotifLengths, motifLengths)

	d.ConsensusMotifs = make([]string, len(motifLengths))
	for i, l := range motifLengths {
		b := make([]byte, l)
		for j := range b {
			b[j] = rng.Nucleotide()
		}
		d.ConsensusMotifs[i] = string(b)
	}

	d.Sequences = make([]Sequence, numSequences)
	for i := range d.Sequences {
		seq, err := d.generateSequence(rng, width, m)
		if err != nil {
			return nil, errors.Wrapf(err, "generating sequence %d", i)
		}
		d.Sequences[i] = seq
	}
	return d, nil
}

// generateSequence fills a fresh sequence with random nucleotides and
// overwrites one disjoint slice per consensus motif.
func (d *Dataset) generateSequence(rng *Rng, width int, m Mutator) (Sequence, error) {
	bases := make([]byte, d.SequenceLength)
	for i := range bases {
		bases[i] = rng.Nucleotide()
	}

	starts, err := rng.RandIndices(d.SequenceLength, width, len(d.ConsensusMotifs))
	if err != nil {
		return Sequence{}, err
	}

	motifs := make([]Motif, len(d.ConsensusMotifs))
	for i, consensus := range d.ConsensusMotifs {
		pattern := consensus
		if m != nil {
			pattern = m.Mutate(rng, consensus)
		}
		copy(bases[starts[i]:starts[i]+len(pattern)], pattern)
		motifs[i] = Motif{
			Pattern:     pattern,
			BasePattern: consensus,
			StartIndex:  starts[i],
			MotifID:     i,
		}
	}
	return Sequence{Bases: string(bases), Motifs: motifs}, nil
}

// String pretty-prints the dataset: the consensus motifs first, then
// each sequence with its planted start positions, wrapped at 80
// characters per line.
func (d *Dataset) String() string {
	var b bytes.Buffer
	b.WriteString("CONSENSUS MOTIFS:\n")
	for i, m := range d.ConsensusMotifs {
		fmt.Fprintf(&b, "%02d > %s\n", i+1, m)
	}
	for i, seq := range d.Sequences {
		starts := make([]string, len(seq.Motifs))
		for j, m := range seq.Motifs {
			starts[j] = strconv.Itoa(m.StartIndex)
		}
		fmt.Fprintf(&b, "> sequence %d | motif indices: %s\n", i+1, strings.Join(starts, ", "))
		for off := 0; off < len(seq.Bases); off += prettyPrintWidth {
			end := off + prettyPrintWidth
			if end > len(seq.Bases) {
				end = len(seq.Bases)
			}
			b.WriteString(seq.Bases[off:end])
			b.WriteByte('\n')
		}
	}
	return b.String()
}
