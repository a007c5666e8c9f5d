package motiffinding

import (
	"os"

	"github.com/segmentio/ksuid"
)

// IterationSnapshot captures the sampler state recorded at one logged
// iteration.
type IterationSnapshot struct {
	RunID     ksuid.KSUID
	Iteration int
	// Withheld is the sequence excluded from the matrix after the swap.
	Withheld  int
	Consensus string
}

// ResultRecord encapsulates the data written when a sampler run halts.
type ResultRecord struct {
	RunID       ksuid.KSUID
	K           int
	Pseudocount float64
	// Iterations is the number of loop iterations actually executed,
	// which can undercut the cap when a stop condition fires.
	Iterations int
	NumCorrect int
	Consensus  string
	Positions  []int
}

// TraceLogger is the general definition of a logger that records
// sampler progress and results, whether it writes text files or a
// database.
type TraceLogger interface {
	// SetBasePath sets the base path of the logger. i distinguishes
	// repeated runs sharing a base path.
	SetBasePath(path string, i int)

	// Init initializes the logger. For example, if the logger writes
	// CSV files, Init can create the files and write header rows first.
	// Or if the logger writes to a database, Init can create the
	// tables.
	Init() error

	// WriteSnapshots records the iteration snapshots collected during
	// a run.
	WriteSnapshots(snapshots []IterationSnapshot) error

	// WriteResult records the final result of a run.
	WriteResult(r ResultRecord) error
}

// AppendToFile creates a new file on the given path if it does not exist, or
// appends to the end of the existing file if the file exists.
func AppendToFile(path string, b []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(b); err != nil {
		return err
	}
	return f.Sync()
}
