package motiffinding

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// CSVLogger is a TraceLogger that writes sampler progress and results
// as comma-delimited files.
type CSVLogger struct {
	tracePath  string
	resultPath string
}

// NewCSVLogger creates a CSVLogger writing beneath basepath.
func NewCSVLogger(basepath string, i int) *CSVLogger {
	l := new(CSVLogger)
	l.SetBasePath(basepath, i)
	return l
}

// SetBasePath sets the base path of the logger.
func (l *CSVLogger) SetBasePath(basepath string, i int) {
	if info, err := os.Stat(basepath); err == nil && info.IsDir() {
		basepath += fmt.Sprintf("log.%03d", i)
	}
	l.tracePath = strings.TrimSuffix(basepath, ".") + fmt.Sprintf(".%03d.%s.csv", i, "trace")
	l.resultPath = strings.TrimSuffix(basepath, ".") + fmt.Sprintf(".%03d.%s.csv", i, "result")
}

// Init creates the trace and result files with their header rows.
func (l *CSVLogger) Init() error {
	err := os.WriteFile(l.tracePath, []byte("runID,iteration,withheld,consensus\n"), 0644)
	if err != nil {
		return err
	}
	return os.WriteFile(l.resultPath, []byte("runID,k,pseudocount,iterations,numCorrect,consensus,positions\n"), 0644)
}

// WriteSnapshots records the iteration snapshots collected during a run.
func (l *CSVLogger) WriteSnapshots(snapshots []IterationSnapshot) error {
	// Format
	// <runID>  <iteration>  <withheld>  <consensus>
	const template = "%s,%d,%d,%s\n"
	var b bytes.Buffer
	for _, s := range snapshots {
		row := fmt.Sprintf(template,
			s.RunID.String(),
			s.Iteration,
			s.Withheld,
			s.Consensus,
		)
		b.WriteString(row)
	}
	return AppendToFile(l.tracePath, b.Bytes())
}

// WriteResult records the final result of a run.
func (l *CSVLogger) WriteResult(r ResultRecord) error {
	// Format
	// <runID>  <k>  <pseudocount>  <iterations>  <numCorrect>  <consensus>  <positions>
	const template = "%s,%d,%f,%d,%d,%s,%s\n"
	positions := make([]string, len(r.Positions))
	for i, p := range r.Positions {
		positions[i] = strconv.Itoa(p)
	}
	row := fmt.Sprintf(template,
		r.RunID.String(),
		r.K,
		r.Pseudocount,
		r.Iterations,
		r.NumCorrect,
		r.Consensus,
		strings.Join(positions, " "),
	)
	return AppendToFile(l.resultPath, []byte(row))
}
