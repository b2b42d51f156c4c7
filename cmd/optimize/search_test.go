package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/feeders/config"
	"github.com/pthm-cable/feeders/telemetry"
)

func readEvalLog(t *testing.T, path string) []evalRow {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening log: %v", err)
	}
	defer f.Close()

	var rows []evalRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		t.Fatalf("reading log: %v", err)
	}
	return rows
}

func TestEvalLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), EvalLogFile)
	l, err := newEvalLog(path)
	if err != nil {
		t.Fatalf("newEvalLog() error = %v", err)
	}

	evals := []Evaluation{
		{Params: []float64{0.7, 0.001}, Objective: -2, Average: 2, Highest: 5},
		{Params: []float64{0.5, 0.01}, Objective: -3.5, Average: 3.5, Highest: 8},
	}
	for i, ev := range evals {
		if err := l.Write(newEvalRow(i+1, ev, 1500*time.Millisecond)); err != nil {
			t.Fatalf("Write(%d) error = %v", i+1, err)
		}
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, _ := os.ReadFile(path)
	if n := strings.Count(string(data), "eval,"); n != 1 {
		t.Errorf("header lines = %d, want 1", n)
	}

	rows := readEvalLog(t, path)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	want := evalRow{Eval: 2, Objective: -3.5, Average: 3.5, Highest: 8, Crossover: 0.5, Mutation: 0.01, ElapsedS: 1.5}
	if rows[1] != want {
		t.Errorf("rows[1] = %+v, want %+v", rows[1], want)
	}
}

func TestSearchObjective(t *testing.T) {
	dir := t.TempDir()
	l, err := newEvalLog(filepath.Join(dir, EvalLogFile))
	if err != nil {
		t.Fatalf("newEvalLog() error = %v", err)
	}

	params := NewParamVector()
	fe := NewFitnessEvaluator(params, 2, []int64{7}, shortRunConfig())
	s := newSearch(params, fe, l, io.Discard, 3)

	if _, ok := s.Best(); ok {
		t.Error("Best() before any evaluation reported ok")
	}

	objectives := []float64{
		s.objective(params.Normalize([]float64{0.2, 0.0})),
		s.objective(params.Normalize([]float64{0.9, 0.02})),
	}
	l.Close()

	best, ok := s.Best()
	if !ok {
		t.Fatal("Best() after evaluations not ok")
	}
	if best.Objective > objectives[0] || best.Objective > objectives[1] {
		t.Errorf("Best().Objective = %v, want min of %v", best.Objective, objectives)
	}
	if s.Err() != nil {
		t.Errorf("Err() = %v, want nil", s.Err())
	}

	rows := readEvalLog(t, filepath.Join(dir, EvalLogFile))
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	for i, r := range rows {
		if r.Eval != i+1 || r.Objective != objectives[i] || r.Objective != -r.Average {
			t.Errorf("row %d = %+v, want eval %d objective %v", i, r, i+1, objectives[i])
		}
	}
}

func TestSearchKeepsFirstLogError(t *testing.T) {
	l, err := newEvalLog(filepath.Join(t.TempDir(), EvalLogFile))
	if err != nil {
		t.Fatalf("newEvalLog() error = %v", err)
	}
	l.Close() // writes now fail

	params := NewParamVector()
	s := newSearch(params, NewFitnessEvaluator(params, 1, []int64{1}, shortRunConfig()), l, io.Discard, 2)
	s.objective(params.Normalize(params.DefaultVector()))

	if s.Err() == nil {
		t.Error("Err() = nil after writing to a closed log")
	}
}

func TestWriteResults(t *testing.T) {
	dir := t.TempDir()
	params := NewParamVector()
	best := Evaluation{
		Params: []float64{0.55, 0.004},
		HallOfFame: []telemetry.HallEntry{
			{Chromosome: "000100101111", Fitness: 9, Generation: 3},
		},
	}

	if err := writeResults(dir, config.Default(), params, best); err != nil {
		t.Fatalf("writeResults() error = %v", err)
	}

	cfg, err := config.Load(filepath.Join(dir, BestConfigFile))
	if err != nil {
		t.Fatalf("loading best config: %v", err)
	}
	if cfg.Genetics.CrossoverProbability != 0.55 || cfg.Genetics.MutationProbability != 0.004 {
		t.Errorf("best config = (%v, %v), want (0.55, 0.004)",
			cfg.Genetics.CrossoverProbability, cfg.Genetics.MutationProbability)
	}
	if _, err := os.Stat(filepath.Join(dir, telemetry.HallOfFameFile)); err != nil {
		t.Errorf("hall of fame not written: %v", err)
	}
}
