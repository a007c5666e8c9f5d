package motiffinding

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFASTA(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seqs.fa")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "writing a FASTA fixture", err)
	}
	return path
}

func TestLoadFASTA(t *testing.T) {
	path := writeTempFASTA(t, `>seq1 sample record
ACGTACGTAC
GTACGTACGT
>seq2
acgtacgtac
gtacgtacgt
`)
	d, err := LoadFASTA(path)
	if err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "loading a FASTA file", err)
	}
	if d.NumSequences != 2 {
		t.Fatalf(UnequalIntParameterError, "number of sequences", 2, d.NumSequences)
	}
	if d.SequenceLength != 20 {
		t.Fatalf(UnequalIntParameterError, "sequence length", 20, d.SequenceLength)
	}
	want := "ACGTACGTACGTACGTACGT"
	for i, seq := range d.Sequences {
		if seq.Bases != want {
			t.Errorf(UnequalStringParameterError, "sequence bases", want, seq.Bases)
		}
		if len(seq.Motifs) != 0 {
			t.Errorf(UnequalIntParameterError, "planted motifs in sequence "+string(rune('1'+i)), 0, len(seq.Motifs))
		}
	}
}

func TestLoadFASTAInvalidSymbol(t *testing.T) {
	path := writeTempFASTA(t, ">seq1\nACGTNACGTA\n")
	if _, err := LoadFASTA(path); err == nil {
		t.Errorf(ExpectedErrorWhileError, "loading a FASTA file with an invalid symbol")
	}
}

func TestLoadFASTAUnequalLengths(t *testing.T) {
	path := writeTempFASTA(t, ">seq1\nACGTACGTAC\n>seq2\nACGT\n")
	if _, err := LoadFASTA(path); err == nil {
		t.Errorf(ExpectedErrorWhileError, "loading a FASTA file with unequal lengths")
	}
}

func TestLoadFASTAEmpty(t *testing.T) {
	path := writeTempFASTA(t, "")
	if _, err := LoadFASTA(path); err == nil {
		t.Errorf(ExpectedErrorWhileError, "loading an empty FASTA file")
	}
}

func TestLoadFASTADataBeforeHeader(t *testing.T) {
	path := writeTempFASTA(t, "ACGT\n>seq1\nACGT\n")
	if _, err := LoadFASTA(path); err == nil {
		t.Errorf(ExpectedErrorWhileError, "loading a FASTA file with data before the first header")
	}
}

func TestFindMotifsOverFASTA(t *testing.T) {
	path := writeTempFASTA(t, `>seq1
CGCGCGACGTACGTCGCGCG
>seq2
GCGCGCACGTACGTGCGCGC
`)
	d, err := LoadFASTA(path)
	if err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "loading a FASTA file", err)
	}
	rng := NewRng(6)
	s := NewSerialSampler[float64](d, rng)
	if err := s.SetMaxIterations(500); err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "setting the iteration cap", err)
	}
	result, err := s.FindMotifs(8, 1.0)
	if err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "running the sampler over FASTA input", err)
	}
	// No ground truth, so correctness is zero by definition.
	if result.NumCorrect != 0 {
		t.Errorf(UnequalIntParameterError, "number correct without ground truth", 0, result.NumCorrect)
	}
	if l := len(result.Positions); l != 2 {
		t.Errorf(UnequalIntParameterError, "number of positions", 2, l)
	}
}
