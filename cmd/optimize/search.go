package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/pthm-cable/feeders/config"
	"github.com/pthm-cable/feeders/telemetry"
)

// BestConfigFile holds the base config with the best parameters applied.
const BestConfigFile = "best_config.yaml"

// search adapts the evaluator to a CMA-ES objective over normalized
// parameters. Each evaluation is logged and the best one kept.
type search struct {
	params    *ParamVector
	evaluator *FitnessEvaluator
	log       *evalLog // nil disables the CSV log
	progress  io.Writer
	maxEvals  int

	start time.Time
	evals int
	best  *Evaluation
	err   error // first log failure; later rows are not written
}

func newSearch(params *ParamVector, evaluator *FitnessEvaluator, log *evalLog, progress io.Writer, maxEvals int) *search {
	return &search{
		params:    params,
		evaluator: evaluator,
		log:       log,
		progress:  progress,
		maxEvals:  maxEvals,
		start:     time.Now(),
	}
}

// objective scores the normalized vector x. Lower is better.
func (s *search) objective(x []float64) float64 {
	ev := s.evaluator.Evaluate(s.params.Denormalize(x))
	s.evals++
	if s.best == nil || ev.Objective < s.best.Objective {
		s.best = &ev
	}

	elapsed := time.Since(s.start)
	if s.log != nil && s.err == nil {
		if err := s.log.Write(newEvalRow(s.evals, ev, elapsed)); err != nil {
			slog.Error("evaluation log disabled", "error", err)
			s.err = err
		}
	}

	left := time.Duration(max(0, s.maxEvals-s.evals)) * (elapsed / time.Duration(s.evals))
	fmt.Fprintf(s.progress, "eval %d/%d: average=%.3f highest=%.1f crossover=%.3f mutation=%.4f (best %.3f) | %s elapsed, %s left\n",
		s.evals, s.maxEvals, ev.Average, ev.Highest,
		ev.Params[paramCrossover], ev.Params[paramMutation], s.best.Average,
		formatDuration(elapsed), formatDuration(left))

	return ev.Objective
}

// Best returns the best evaluation so far.
func (s *search) Best() (Evaluation, bool) {
	if s.best == nil {
		return Evaluation{}, false
	}
	return *s.best, true
}

// Err returns the first evaluation log failure.
func (s *search) Err() error {
	return s.err
}

// writeResults saves the base config with best applied, and the best run's
// hall of fame when it has entries.
func writeResults(dir string, base *config.Config, params *ParamVector, best Evaluation) error {
	cfg := base.Clone()
	params.ApplyToConfig(cfg, best.Params)
	if err := cfg.WriteYAML(filepath.Join(dir, BestConfigFile)); err != nil {
		return fmt.Errorf("writing best config: %w", err)
	}

	if len(best.HallOfFame) == 0 {
		return nil
	}
	hof := telemetry.NewHallOfFame(len(best.HallOfFame))
	for _, e := range best.HallOfFame {
		hof.Consider(e)
	}
	return hof.Save(filepath.Join(dir, telemetry.HallOfFameFile))
}

// formatDuration renders d as 1h02m03s, or 2m03s under an hour.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
