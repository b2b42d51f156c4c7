package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"
)

// EvalLogFile is the per-evaluation CSV written to the output directory.
const EvalLogFile = "optimize_log.csv"

// evalRow is one line of the evaluation log.
type evalRow struct {
	Eval      int     `csv:"eval"`
	Objective float64 `csv:"objective"`
	Average   float64 `csv:"average_fitness"`
	Highest   float64 `csv:"highest_fitness"`
	Crossover float64 `csv:"crossover_probability"`
	Mutation  float64 `csv:"mutation_probability"`
	ElapsedS  float64 `csv:"elapsed_s"`
}

func newEvalRow(n int, ev Evaluation, elapsed time.Duration) evalRow {
	return evalRow{
		Eval:      n,
		Objective: ev.Objective,
		Average:   ev.Average,
		Highest:   ev.Highest,
		Crossover: ev.Params[paramCrossover],
		Mutation:  ev.Params[paramMutation],
		ElapsedS:  elapsed.Seconds(),
	}
}

// evalLog appends evaluation rows to a CSV file.
type evalLog struct {
	f             *os.File
	headerWritten bool
}

func newEvalLog(path string) (*evalLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return &evalLog{f: f}, nil
}

// Write appends row, with the header on the first call.
func (l *evalLog) Write(row evalRow) error {
	rows := []evalRow{row}
	if !l.headerWritten {
		if err := gocsv.Marshal(rows, l.f); err != nil {
			return fmt.Errorf("writing eval %d: %w", row.Eval, err)
		}
		l.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(rows, l.f); err != nil {
		return fmt.Errorf("writing eval %d: %w", row.Eval, err)
	}
	return nil
}

func (l *evalLog) Close() error {
	return l.f.Close()
}
