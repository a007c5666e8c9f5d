package motiffinding

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"
)

// DefaultMaxIterations is the iteration cap used when a sampler is not
// configured otherwise.
const DefaultMaxIterations = 10000

// DefaultStableWindow is a consecutive-iteration window for the
// optional stable-consensus exit. It is not applied automatically: the
// exit uses the window passed to NewStableConsensusCondition, and the
// run configuration and CLI leave the exit off by default.
const DefaultStableWindow = 200

// SerialSampler runs the Gibbs sampling loop one sequence at a time.
// Each iteration withholds a single sequence, scores its candidate
// starts against the weight matrix built from the others, samples a
// new start for it, and rotates the withheld slot.
//
// A SerialSampler owns its weight matrix and positions vector for the
// duration of one FindMotifs call; the Dataset is only read.
type SerialSampler[T Float] struct {
	gibbsSampler[T]

	runID ksuid.KSUID

	maxIterations int
	stop          StopCondition

	logger  TraceLogger
	logFreq int
}

// NewSerialSampler creates a sampler over data, drawing randomness
// from rng. The returned sampler uses only the iteration cap; install
// an early exit with SetStopCondition.
func NewSerialSampler[T Float](data *Dataset, rng *Rng) *SerialSampler[T] {
	s := new(SerialSampler[T])
	s.gibbsSampler = newGibbsSampler[T](data, rng)
	s.runID = ksuid.New()
	s.maxIterations = DefaultMaxIterations
	return s
}

// RunID returns the unique identifier of this sampler instance. The
// ID tags every trace and result row the sampler logs.
func (s *SerialSampler[T]) RunID() ksuid.KSUID {
	return s.runID
}

// SetMaxIterations replaces the iteration cap.
func (s *SerialSampler[T]) SetMaxIterations(n int) error {
	if n <= 0 {
		return fmt.Errorf(InvalidIntParameterError, "iteration cap", n, "must be greater than zero")
	}
	s.maxIterations = n
	return nil
}

// SetStopCondition installs an optional early exit checked once per
// iteration. Passing nil removes it.
func (s *SerialSampler[T]) SetStopCondition(cond StopCondition) {
	s.stop = cond
}

// SetTraceLogger attaches a logger that receives an IterationSnapshot
// every logFreq iterations plus the final result. Snapshots are
// buffered during the run and written after the loop halts, so the
// inner loop stays free of I/O.
func (s *SerialSampler[T]) SetTraceLogger(logger TraceLogger, logFreq int) error {
	if logFreq <= 0 {
		return fmt.Errorf(InvalidIntParameterError, "log frequency", logFreq, "must be greater than zero")
	}
	s.logger = logger
	s.logFreq = logFreq
	return nil
}

// FindMotifs estimates where a motif of length k begins in every
// sequence of the dataset. It returns the estimated positions, the
// number of estimates overlapping a planted motif, and the consensus
// read off the final weight matrix.
func (s *SerialSampler[T]) FindMotifs(k int, pseudocount T) (Result, error) {
	n := s.data.NumSequences
	l := s.data.SequenceLength
	if k <= 0 || k >= l {
		return Result{}, fmt.Errorf(InvalidKError, k, l)
	}
	if pseudocount <= 0 {
		return Result{}, fmt.Errorf(InvalidPseudocountError, float64(pseudocount))
	}

	positions := s.initPositions(k)
	pwm := s.initPWM(positions, k, pseudocount)

	// The loop invariant is that pwm reflects every sequence except the
	// withheld one, so the first sequence's contribution comes out
	// before the loop starts.
	withheld := 0
	s.updateCounts(pwm, withheld, positions[withheld], k, pseudocount, -1)

	var snapshots []IterationSnapshot
	iterations := 0
	for iter := 0; iter < s.maxIterations; iter++ {
		scores := s.score(pwm, k, withheld)
		pos, err := s.sample(scores)
		if err != nil {
			return Result{}, errors.Wrapf(err, "sampling a start for sequence %d", withheld)
		}
		positions[withheld] = pos

		newWithheld := (withheld + 1) % n
		prevPWM := s.updatePWM(pwm, positions, k, pseudocount, withheld, newWithheld)
		withheld = newWithheld
		iterations = iter + 1

		if s.logger != nil && iter%s.logFreq == 0 {
			snapshots = append(snapshots, IterationSnapshot{
				RunID:     s.runID,
				Iteration: iter,
				Withheld:  withheld,
				Consensus: s.consensus(pwm, k),
			})
		}
		if s.stop != nil && s.stop.Check(iter, s.consensus(pwm, k), s.consensus(prevPWM, k)) {
			break
		}
	}

	result := Result{
		Positions:  positions,
		NumCorrect: s.numCorrect(positions, k),
		Consensus:  s.consensus(pwm, k),
	}
	if s.logger != nil {
		if err := s.logger.WriteSnapshots(snapshots); err != nil {
			return Result{}, errors.Wrap(err, "writing trace snapshots")
		}
		record := ResultRecord{
			RunID:       s.runID,
			K:           k,
			Pseudocount: float64(pseudocount),
			Iterations:  iterations,
			NumCorrect:  result.NumCorrect,
			Consensus:   result.Consensus,
			Positions:   result.Positions,
		}
		if err := s.logger.WriteResult(record); err != nil {
			return Result{}, errors.Wrap(err, "writing run result")
		}
	}
	return result, nil
}
