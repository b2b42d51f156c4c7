package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/feeders/config"
	"github.com/pthm-cable/feeders/game"
	"github.com/pthm-cable/feeders/genetics"
	"github.com/pthm-cable/feeders/renderer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output generation stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, fitness plot and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	maxGenerations := flag.Int("max-generations", 0, "Stop after N generations (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Build game options
	opts := game.Options{
		Config:         cfg,
		Seed:           rngSeed,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		StepsPerUpdate: *stepsPerUpdate,
	}

	done := func(g *game.Game) bool {
		if *maxTicks > 0 && g.TotalTicks() >= *maxTicks {
			slog.Info("max ticks reached", "tick", g.TotalTicks())
			return true
		}
		if *maxGenerations > 0 && g.Generation() >= *maxGenerations {
			slog.Info("max generations reached", "generation", g.Generation())
			return true
		}
		return false
	}

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		opts.OnGenerationComplete = logRecord
		g, err := game.NewGame(opts)
		if err != nil {
			slog.Error("failed to create game", "error", err)
			os.Exit(1)
		}
		defer closeGame(g)

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"max_ticks", *maxTicks,
			"max_generations", *maxGenerations,
			"steps_per_update", g.StepsPerUpdate(),
		)

		for !done(g) {
			g.Update()
		}
		return
	}

	// Graphical mode
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Little Feeders")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	view := renderer.NewView(cfg)
	opts.OnStats = view.RecordStats
	opts.OnMilestone = view.RecordMilestone

	g, err := game.NewGame(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer closeGame(g)

	view.Run(g, done)
}

func logRecord(rec genetics.GenerationRecord) {
	slog.Info("generation complete",
		"generation", rec.Generation,
		"average_fitness", rec.AverageFitness,
		"highest_fitness", rec.HighestFitness,
	)
}

func closeGame(g *game.Game) {
	if err := g.Close(); err != nil {
		slog.Error("failed to write run output", "error", err)
	}
}
