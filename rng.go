package motiffinding

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// Rng is the source of randomness shared by the dataset generator and
// the samplers. It wraps a seedable PCG source so that a run can be
// replayed exactly from its seed. An Rng is not safe for concurrent
// use; samplers running in parallel must each own their own Rng.
type Rng struct {
	rnd *rand.Rand
	src rand.Source
}

// NewRng returns an Rng seeded with seed. Two Rngs created from the
// same seed produce identical draw sequences.
func NewRng(seed uint64) *Rng {
	src := rand.NewPCG(seed, seed)
	return &Rng{rnd: rand.New(src), src: src}
}

// NewRngFromEntropy returns an Rng seeded from the OS entropy source.
func NewRngFromEntropy() *Rng {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		panic(err)
	}
	src := rand.NewPCG(
		binary.LittleEndian.Uint64(b[:8]),
		binary.LittleEndian.Uint64(b[8:]),
	)
	return &Rng{rnd: rand.New(src), src: src}
}

// UniformInt returns a uniform integer in [lo, hi], both bounds
// inclusive. hi must not be less than lo.
func (r *Rng) UniformInt(lo, hi int) int {
	return lo + r.rnd.IntN(hi-lo+1)
}

// Float64 returns a uniform float in [0, 1).
func (r *Rng) Float64() float64 {
	return r.rnd.Float64()
}

// Nucleotide draws one nucleotide uniformly from the alphabet.
func (r *Rng) Nucleotide() byte {
	return Alphabet[r.rnd.IntN(NumNucleotides)]
}

// Discrete draws an index i with probability weights[i] / sum(weights).
// Weights must be non-negative and at least one must be strictly
// positive.
func (r *Rng) Discrete(weights []float64) (int, error) {
	total := 0.0
	for i, w := range weights {
		if w < 0 {
			return 0, fmt.Errorf(NegativeWeightError, w, i)
		}
		total += w
	}
	if total <= 0 {
		return 0, errors.New(ZeroWeightsError)
	}
	dist := distuv.NewCategorical(weights, r.src)
	return int(dist.Rand()), nil
}

// RandIndices returns count start positions in [0, max-width] such that
// the intervals [p, p+width) are pairwise disjoint. Positions are found
// by rejection sampling against the offsets committed so far, so the
// layout must be loose enough for the loop to terminate; the
// count*width > max case cannot be satisfied at all and is rejected
// outright.
func (r *Rng) RandIndices(max, width, count int) ([]int, error) {
	if count*width > max {
		return nil, fmt.Errorf(InfeasibleLayoutError, count, width, max)
	}
	taken := make(map[int]bool)
	result := make([]int, 0, count)
	for len(result) < count {
		pos := r.UniformInt(0, max-width)
		valid := true
		for i := pos; i < pos+width; i++ {
			if taken[i] {
				valid = false
				break
			}
		}
		if !valid {
			continue
		}
		for i := pos; i < pos+width; i++ {
			taken[i] = true
		}
		result = append(result, pos)
	}
	return result, nil
}
