package motiffinding

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// LoadFASTA parses a FASTA file into a Dataset with no ground truth:
// the returned dataset has no consensus motifs and no planted motif
// records, so a sampler over it reports zero correct positions. All
// sequences must have the same length and contain only nucleotide
// characters; lowercase input is accepted and upcased.
func LoadFASTA(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening FASTA file")
	}
	defer f.Close()

	var names []string
	var seqs []string
	var current strings.Builder
	flush := func() {
		if len(names) > len(seqs) {
			seqs = append(seqs, current.String())
			current.Reset()
		}
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, ">") {
			flush()
			name := strings.TrimSpace(strings.TrimPrefix(line, ">"))
			if name == "" {
				name = fmt.Sprintf("record %d", len(names)+1)
			}
			names = append(names, name)
			continue
		}
		if len(names) == 0 {
			return nil, fmt.Errorf(InvalidStringParameterError, "FASTA line", line, "sequence data before the first description line")
		}
		current.WriteString(strings.ToUpper(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading FASTA file")
	}
	flush()

	if len(seqs) == 0 {
		return nil, fmt.Errorf(InvalidIntParameterError, "number of sequences", 0, "must be greater than zero")
	}
	length := len(seqs[0])
	for i, s := range seqs {
		if len(s) != length {
			return nil, fmt.Errorf(UnequalSequenceLengthError, names[i], len(s), length)
		}
		for j := 0; j < len(s); j++ {
			if _, err := Encode(s[j]); err != nil {
				return nil, errors.Wrapf(err, "sequence %s, position %d", names[i], j)
			}
		}
	}

	d := new(Dataset)
	d.NumSequences = len(seqs)
	d.SequenceLength = length
	d.Sequences = make([]Sequence, len(seqs))
	for i, s := range seqs {
		d.Sequences[i] = Sequence{Bases: s}
	}
	return d, nil
}
