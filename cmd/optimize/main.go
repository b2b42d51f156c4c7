// Command optimize searches crossover and mutation probabilities with CMA-ES,
// scoring each candidate by the fitness the population reaches.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/feeders/config"
)

// options are the command-line settings of one search.
type options struct {
	configPath         string
	generations        int
	ticksPerGeneration int
	seeds              int
	maxEvals           int
	population         int
	outputDir          string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Base config YAML file (empty = use defaults)")
	flag.IntVar(&opts.generations, "generations", 40, "Generations simulated per seed")
	flag.IntVar(&opts.ticksPerGeneration, "ticks-per-generation", 2000, "Ticks per generation during search (0 = use config)")
	flag.IntVar(&opts.seeds, "seeds", 3, "Number of seeds per evaluation")
	flag.IntVar(&opts.maxEvals, "max-evals", 200, "Maximum number of evaluations")
	flag.IntVar(&opts.population, "population", 0, "CMA-ES population size (0 = auto)")
	flag.StringVar(&opts.outputDir, "output", "", "Output directory for results")
	flag.Parse()

	// Per-generation game logs would drown the progress output.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := run(opts); err != nil {
		slog.Error("optimize failed", "error", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	if opts.outputDir == "" {
		return errors.New("-output is required")
	}
	if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	userCfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	baseCfg := userCfg.Clone()
	if opts.ticksPerGeneration > 0 {
		baseCfg.Simulation.TicksPerGeneration = opts.ticksPerGeneration
	}
	// Plots are written by Close only when an output directory is set.
	baseCfg.Telemetry.PlotFitness = false

	params := NewParamVector()
	evaluator := NewFitnessEvaluator(params, opts.generations, evalSeeds(opts.seeds), baseCfg)

	elog, err := newEvalLog(filepath.Join(opts.outputDir, EvalLogFile))
	if err != nil {
		return err
	}
	defer elog.Close()

	s := newSearch(params, evaluator, elog, os.Stdout, opts.maxEvals)

	popSize := opts.population
	if popSize <= 0 {
		popSize = 4 + int(3*math.Log(float64(params.Dim())))
	}
	fmt.Printf("CMA-ES over %d parameters: population=%d max_evals=%d seeds=%d generations=%d ticks=%d\n",
		params.Dim(), popSize, opts.maxEvals, opts.seeds, opts.generations, baseCfg.Simulation.TicksPerGeneration)

	_, err = optimize.Minimize(
		optimize.Problem{Func: s.objective},
		params.Normalize(params.ExtractFromConfig(baseCfg)),
		&optimize.Settings{FuncEvaluations: opts.maxEvals},
		&optimize.CmaEsChol{InitStepSize: 0.3, Population: popSize},
	)
	if err != nil {
		// Hitting the evaluation budget ends the search too.
		slog.Warn("optimization ended", "error", err)
	}

	best, ok := s.Best()
	if !ok {
		return errors.New("no evaluations completed")
	}
	fmt.Printf("\n%d evaluations in %s\n", s.evals, formatDuration(time.Since(s.start)))
	fmt.Printf("best average fitness %.3f (highest %.1f)\n", best.Average, best.Highest)
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Name, best.Params[i])
	}

	if err := writeResults(opts.outputDir, userCfg, params, best); err != nil {
		return err
	}
	fmt.Printf("results written to %s\n", opts.outputDir)
	return s.Err()
}

// evalSeeds returns n fixed seeds so every candidate sees the same runs.
func evalSeeds(n int) []int64 {
	seeds := make([]int64, max(1, n))
	for i := range seeds {
		seeds[i] = int64(i*1000 + 42)
	}
	return seeds
}
