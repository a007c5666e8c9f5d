package motiffinding

import (
	"math"
)

// Float constrains the numeric type a sampler computes probabilities
// in. Single precision is enough for the scoring loop and is the
// default in the command-line tool; float64 is available through the
// same API for runs where the extra mantissa matters.
type Float interface {
	~float32 | ~float64
}

// defaultBackgroundSamples is the number of nucleotides drawn, with
// replacement, to estimate the background distribution.
const defaultBackgroundSamples = 100

// Result is the final output of a sampler run.
type Result struct {
	// Positions[i] is the estimated motif start in sequence i.
	Positions []int

	// NumCorrect counts sequences whose estimate overlaps a planted
	// motif, aggregated per consensus motif and maximized.
	NumCorrect int

	// Consensus is the motif read off the final weight matrix.
	Consensus string
}

// gibbsSampler bundles the primitives shared by sampler variants: the
// background model, weight matrix maintenance, candidate scoring,
// consensus extraction and ground-truth comparison. Drivers compose
// these into a sampling loop.
//
// The weight matrix is a k-by-4 probability table flattened row-major:
// pwm[4*j+b] is the probability that motif position j emits
// nucleotide b. With N sequences, every observation contributes
// 1/(N+4*pseudocount) of mass and cells start at
// pseudocount/(N+4*pseudocount), so the rows of a matrix holding all N
// sequences sum to one and no renormalization pass is needed. While one
// sequence is withheld the rows sum to (N-1+4*pseudocount)/(N+4*pseudocount);
// score normalizes its output, so that constant factor cancels.
type gibbsSampler[T Float] struct {
	data       *Dataset
	rng        *Rng
	background [NumNucleotides]T

	// logBackground caches log(background) for the scoring loop.
	logBackground [NumNucleotides]T
}

func newGibbsSampler[T Float](data *Dataset, rng *Rng) gibbsSampler[T] {
	s := gibbsSampler[T]{data: data, rng: rng}
	s.background = s.estimateBackground(defaultBackgroundSamples)
	for b, p := range s.background {
		s.logBackground[b] = T(math.Log(float64(p)))
	}
	return s
}

// estimateBackground draws sampleSize nucleotides with replacement,
// distributed round-robin across the sequences, and normalizes the
// histogram into a probability vector. Zero buckets are clamped to
// 1/totalSamples so their logs stay defined.
func (s *gibbsSampler[T]) estimateBackground(sampleSize int) [NumNucleotides]T {
	n := s.data.NumSequences
	l := s.data.SequenceLength
	samplesPerSeq := (sampleSize + n - 1) / n

	var counts [NumNucleotides]int
	for i := 0; i < n; i++ {
		seq := s.data.Sequences[i].Bases
		for j := 0; j < samplesPerSeq; j++ {
			idx := s.rng.UniformInt(0, l-1)
			counts[mustEncode(seq[idx])]++
		}
	}

	total := samplesPerSeq * n
	var result [NumNucleotides]T
	for b, c := range counts {
		if c == 0 {
			c = 1
		}
		result[b] = T(c) / T(total)
	}
	return result
}

// initPositions returns one independent uniform start position in
// [0, L-width] per sequence.
func (s *gibbsSampler[T]) initPositions(width int) []int {
	positions := make([]int, s.data.NumSequences)
	for i := range positions {
		positions[i] = s.rng.UniformInt(0, s.data.SequenceLength-width)
	}
	return positions
}

// initPWM builds a weight matrix from all sequences at the given start
// positions.
func (s *gibbsSampler[T]) initPWM(positions []int, k int, pseudocount T) []T {
	normalizedDefault := pseudocount / (T(s.data.NumSequences) + T(NumNucleotides)*pseudocount)
	pwm := make([]T, NumNucleotides*k)
	for i := range pwm {
		pwm[i] = normalizedDefault
	}
	for i, pos := range positions {
		s.updateCounts(pwm, i, pos, k, pseudocount, 1)
	}
	return pwm
}

// updateCounts adds (sign = +1) or removes (sign = -1) one sequence's
// observation mass from the matrix at the given start position.
func (s *gibbsSampler[T]) updateCounts(pwm []T, seqIndex, start, k int, pseudocount T, sign int) {
	delta := T(sign) / (T(s.data.NumSequences) + T(NumNucleotides)*pseudocount)
	seq := s.data.Sequences[seqIndex].Bases
	for j := 0; j < k; j++ {
		pwm[NumNucleotides*j+mustEncode(seq[start+j])] += delta
	}
}

// updatePWM re-includes the previously withheld sequence and removes
// the next one, returning a snapshot of the matrix from before the
// swap for the convergence detector.
func (s *gibbsSampler[T]) updatePWM(pwm []T, positions []int, k int, pseudocount T, oldWithheld, newWithheld int) []T {
	prev := make([]T, len(pwm))
	copy(prev, pwm)
	s.updateCounts(pwm, oldWithheld, positions[oldWithheld], k, pseudocount, 1)
	s.updateCounts(pwm, newWithheld, positions[newWithheld], k, pseudocount, -1)
	return prev
}

// score rates every candidate start in the withheld sequence against
// the matrix, relative to the background model. Scoring happens in log
// space and the result is normalized by a stable log-sum-exp, so the
// returned vector is a probability distribution over the L-k candidate
// starts.
func (s *gibbsSampler[T]) score(pwm []T, k, withheld int) []T {
	l := s.data.SequenceLength
	seq := s.data.Sequences[withheld].Bases

	logPWM := make([]T, len(pwm))
	for i, p := range pwm {
		logPWM[i] = T(math.Log(float64(p)))
	}

	scores := make([]T, l-k)
	for i := range scores {
		var sum T
		for j := 0; j < k; j++ {
			b := mustEncode(seq[i+j])
			sum += logPWM[NumNucleotides*j+b] - s.logBackground[b]
		}
		scores[i] = sum
	}

	norm := scores[0]
	for _, v := range scores[1:] {
		norm = sumLogProbs(norm, v)
	}
	for i, v := range scores {
		scores[i] = T(math.Exp(float64(v - norm)))
	}
	return scores
}

// sample draws a candidate start index from the probability vector
// produced by score.
func (s *gibbsSampler[T]) sample(scores []T) (int, error) {
	weights := make([]float64, len(scores))
	for i, v := range scores {
		weights[i] = float64(v)
	}
	return s.rng.Discrete(weights)
}

// consensus reads the motif off the matrix: the argmax nucleotide of
// each row, ties broken toward the lowest column index.
func (s *gibbsSampler[T]) consensus(pwm []T, k int) string {
	result := make([]byte, k)
	for j := 0; j < k; j++ {
		best := 0
		for b := 1; b < NumNucleotides; b++ {
			if pwm[NumNucleotides*j+b] > pwm[NumNucleotides*j+best] {
				best = b
			}
		}
		result[j] = Decode(best)
	}
	return string(result)
}

// numCorrect counts, per consensus motif, the sequences whose
// estimated start lies within k of the planted start, and returns the
// best-matched motif's count. A sequence contributes at most one hit.
func (s *gibbsSampler[T]) numCorrect(positions []int, k int) int {
	hits := make(map[int]int)
	for i, pos := range positions {
		for _, m := range s.data.Sequences[i].Motifs {
			d := pos - m.StartIndex
			if d < 0 {
				d = -d
			}
			if d < k {
				hits[m.MotifID]++
				break
			}
		}
	}
	best := 0
	for _, c := range hits {
		if c > best {
			best = c
		}
	}
	return best
}

// sumLogProbs returns log(exp(a) + exp(b)) without leaving log space.
func sumLogProbs[T Float](a, b T) T {
	if a > b {
		return a + T(math.Log1p(math.Exp(float64(b-a))))
	}
	return b + T(math.Log1p(math.Exp(float64(a-b))))
}
