package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/feeders/config"
	"github.com/pthm-cable/feeders/game"
	"github.com/pthm-cable/feeders/genetics"
	"github.com/pthm-cable/feeders/telemetry"
)

// tailFraction is the share of final generations whose average fitness is
// scored. Early generations mostly measure the random start.
const tailFraction = 0.25

// Evaluation is the outcome of running one parameter vector on every seed.
type Evaluation struct {
	Params    []float64 // clamped values the games ran with
	Objective float64   // minimized by CMA-ES: -Average
	Average   float64   // mean tail average fitness over seeds
	Highest   float64   // mean tail highest fitness over seeds

	// HallOfFame comes from the seed with the best tail average.
	HallOfFame []telemetry.HallEntry
}

// FitnessEvaluator runs headless simulations of a fixed length.
type FitnessEvaluator struct {
	params      *ParamVector
	generations int
	seeds       []int64
	baseConfig  *config.Config
}

// NewFitnessEvaluator creates a new evaluator running generations
// generations per seed.
func NewFitnessEvaluator(params *ParamVector, generations int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		generations: max(1, generations),
		seeds:       seeds,
		baseConfig:  baseCfg,
	}
}

// seedResult holds the result from one seed.
type seedResult struct {
	average    float64
	highest    float64
	hallOfFame []telemetry.HallEntry
}

// Evaluate runs every seed in parallel with the raw values x and averages
// the results.
func (fe *FitnessEvaluator) Evaluate(x []float64) Evaluation {
	ev := Evaluation{Params: fe.params.Clamp(x)}
	if len(fe.seeds) == 0 {
		return ev
	}

	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(ev.Params, s)
		}(i, seed)
	}
	wg.Wait()

	bestSeed := math.Inf(-1)
	for _, r := range results {
		ev.Average += r.average
		ev.Highest += r.highest
		if r.average > bestSeed {
			bestSeed = r.average
			ev.HallOfFame = r.hallOfFame
		}
	}
	n := float64(len(results))
	ev.Average /= n
	ev.Highest /= n
	ev.Objective = -ev.Average
	return ev
}

// runSimulation executes a single headless run of fe.generations generations.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) seedResult {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	g, err := game.NewGame(game.Options{
		Config:         cfg,
		Seed:           seed,
		StepsPerUpdate: cfg.Simulation.TicksPerGeneration,
	})
	if err != nil {
		// Only output setup can fail, and no output directory is set.
		return seedResult{}
	}
	defer g.Close()

	for g.Generation() < fe.generations {
		g.Update()
	}

	tail := tailRecords(g.Records())
	return seedResult{
		average:    tailMean(tail, func(r genetics.GenerationRecord) float64 { return r.AverageFitness }),
		highest:    tailMean(tail, func(r genetics.GenerationRecord) float64 { return r.HighestFitness }),
		hallOfFame: g.HallOfFame(),
	}
}

// tailMean averages one field over records, or 0 for none.
func tailMean(records []genetics.GenerationRecord, field func(genetics.GenerationRecord) float64) float64 {
	if len(records) == 0 {
		return 0
	}
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = field(r)
	}
	return stat.Mean(values, nil)
}

// tailRecords returns the last tailFraction of records, at least one.
func tailRecords(records []genetics.GenerationRecord) []genetics.GenerationRecord {
	if len(records) == 0 {
		return nil
	}
	n := max(1, int(math.Ceil(float64(len(records))*tailFraction)))
	return records[len(records)-n:]
}
