package motiffinding

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"

	// sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteLogger is a TraceLogger that writes sampler progress and
// results to an SQLite database. Each run appends to per-instance
// tables created by Init.
type SQLiteLogger struct {
	dbPath     string
	instanceID int
}

// NewSQLiteLogger creates an SQLiteLogger writing beneath basepath.
func NewSQLiteLogger(basepath string, i int) *SQLiteLogger {
	l := new(SQLiteLogger)
	l.SetBasePath(basepath, i)
	return l
}

// SetBasePath sets the base path of the logger.
func (l *SQLiteLogger) SetBasePath(basepath string, i int) {
	if info, err := os.Stat(basepath); err == nil && info.IsDir() {
		basepath += fmt.Sprintf("log.%03d", i)
	}
	l.dbPath = strings.TrimSuffix(basepath, ".") + ".db"
	l.instanceID = i
}

// Init creates new trace and result tables in the database.
// Each new run instance sharing the database gets its own pair of
// tables.
func (l *SQLiteLogger) Init() error {
	newTable := func(tableName, cols string) error {
		db, err := OpenSQLiteDB(l.dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		// cols example:
		// (id integer not null primary key, runID text, consensus text)
		_sqlStmt := `
	create table %s %s;
	delete from %s;
	`
		fullTableName := fmt.Sprintf("%s%03d", tableName, l.instanceID)
		sqlStmt := fmt.Sprintf(_sqlStmt, fullTableName, cols, fullTableName)
		if _, err := db.Exec(sqlStmt); err != nil {
			return fmt.Errorf("%q: %s", err, sqlStmt)
		}
		return nil
	}

	err := newTable("Trace", "(id integer not null primary key, runID text, iteration int, withheld int, consensus text)")
	if err != nil {
		return err
	}
	return newTable("Result", "(id integer not null primary key, runID text, k int, pseudocount real, iterations int, numCorrect int, consensus text, positions text)")
}

// WriteSnapshots records the iteration snapshots collected during a run.
func (l *SQLiteLogger) WriteSnapshots(snapshots []IterationSnapshot) error {
	tableName := fmt.Sprintf("Trace%03d", l.instanceID)
	_stmt := "insert into " + tableName + "(runID, iteration, withheld, consensus) values(?, ?, ?, ?)"
	db, err := OpenSQLiteDB(l.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(_stmt)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, s := range snapshots {
		_, err = stmt.Exec(
			s.RunID.String(),
			s.Iteration,
			s.Withheld,
			s.Consensus,
		)
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	// Commit at the end
	return tx.Commit()
}

// WriteResult records the final result of a run.
func (l *SQLiteLogger) WriteResult(r ResultRecord) error {
	tableName := fmt.Sprintf("Result%03d", l.instanceID)
	_stmt := "insert into " + tableName + "(runID, k, pseudocount, iterations, numCorrect, consensus, positions) values(?, ?, ?, ?, ?, ?, ?)"
	db, err := OpenSQLiteDB(l.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	positions := make([]string, len(r.Positions))
	for i, p := range r.Positions {
		positions[i] = strconv.Itoa(p)
	}
	_, err = db.Exec(_stmt,
		r.RunID.String(),
		r.K,
		r.Pseudocount,
		r.Iterations,
		r.NumCorrect,
		r.Consensus,
		strings.Join(positions, " "),
	)
	return err
}

func OpenSQLiteDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	return db, nil
}
