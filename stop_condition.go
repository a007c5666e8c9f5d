package motiffinding

// StopCondition describes an optional early exit for the sampling
// loop. The driver consults the condition once per iteration, after
// the weight matrix swap; returning true halts the loop before the
// iteration cap is reached.
type StopCondition interface {
	// Check receives the iteration number and the consensus strings of
	// the current and previous weight matrices.
	Check(iteration int, consensus, prevConsensus string) bool
}

// stableConsensus halts once the consensus string has not changed for
// a fixed number of consecutive iterations.
type stableConsensus struct {
	window int
	streak int
}

// NewStableConsensusCondition creates a StopCondition that halts the
// sampling loop after the consensus has stayed identical for window
// consecutive iterations.
func NewStableConsensusCondition(window int) StopCondition {
	cond := new(stableConsensus)
	cond.window = window
	return cond
}

func (cond *stableConsensus) Check(iteration int, consensus, prevConsensus string) bool {
	if consensus == prevConsensus {
		cond.streak++
	} else {
		cond.streak = 0
	}
	return cond.streak >= cond.window
}
