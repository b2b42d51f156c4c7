// Package game runs the feeder simulation: the tick loop, generation
// turnover and the interactive controls hosts drive it with.
package game

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/feeders/components"
	"github.com/pthm-cable/feeders/config"
	"github.com/pthm-cable/feeders/genetics"
	"github.com/pthm-cable/feeders/systems"
	"github.com/pthm-cable/feeders/telemetry"
	"github.com/pthm-cable/feeders/traits"
)

// State is the run state of the simulation loop.
type State uint8

const (
	Running State = iota
	Paused
)

func (s State) String() string {
	if s == Paused {
		return "paused"
	}
	return "running"
}

// MaxStepsPerUpdate caps how many ticks one Update may run.
const MaxStepsPerUpdate = 200

// milestoneHistory is the number of generations milestones are compared against.
const milestoneHistory = 10

// Options configures a new game.
type Options struct {
	Config         *config.Config // nil = embedded defaults
	Seed           int64
	LogStats       bool   // Log generation and perf stats via slog
	OutputDir      string // Directory for CSV logs, plot and config ("" = disabled)
	StepsPerUpdate int    // Steps per Update call (default 1)

	// Called with every generation record, after the next generation is in place.
	OnGenerationComplete func(genetics.GenerationRecord)
	// Called with the full per-generation stats.
	OnStats func(telemetry.GenerationStats)
	// Called for each milestone a generation triggers.
	OnMilestone func(telemetry.Milestone)
}

// Game holds the complete simulation state. A Game is not safe for
// concurrent use; hosts call its methods from a single goroutine.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand

	// Entity mappers
	feederMapper *ecs.Map4[components.Position, components.Motion, components.Traits, components.Feeder]
	foodMapper   *ecs.Map2[components.Position, components.Food]
	feederFilter *ecs.Filter2[components.Traits, components.Feeder]
	foodFilter   *ecs.Filter1[components.Food]

	// Entities in creation order. Agent order matches the population order
	// of the genotypes they were built from.
	agents []ecs.Entity
	foods  []ecs.Entity

	engine    *genetics.Engine
	behavior  *systems.Behavior
	grid      *systems.SpatialGrid
	modifiers traits.Modifiers

	// Per-step scratch
	agentViews []systems.Agent
	candidates []int
	fitness    []float64

	// Reach of the furthest-seeing agent the genome can encode.
	maxReach float64

	// State
	state          State
	tick           int // ticks into the current generation
	totalTicks     int
	feederCount    int // applied on Reset
	foodCount      int // applied on respawn
	nextFeederID   uint32
	nextFoodID     uint32
	stepsPerUpdate int

	// Callbacks
	onGeneration func(genetics.GenerationRecord)
	onStats      func(telemetry.GenerationStats)
	onMilestone  func(telemetry.Milestone)

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	milestones    *telemetry.MilestoneDetector
	hallOfFame    *telemetry.HallOfFame
	outputManager *telemetry.OutputManager
	logStats      bool
}

// NewGame creates a game and spawns the initial population and food.
// It only fails if the output directory cannot be prepared.
func NewGame(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))

	modifiers := traits.Modifiers{
		Speed:        cfg.Traits.SpeedModifier,
		Eyesight:     cfg.Traits.EyesightModifier,
		Intelligence: cfg.Traits.IntelligenceModifier,
	}
	arena := systems.Arena{
		MinX: cfg.Derived.MinX,
		MinY: cfg.Derived.MinY,
		MaxX: cfg.Derived.MaxX,
		MaxY: cfg.Derived.MaxY,
	}

	stepsPerUpdate := opts.StepsPerUpdate
	stepsPerUpdate = clampCount(stepsPerUpdate, MaxStepsPerUpdate)
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}

	g := &Game{
		cfg:   cfg,
		world: world,
		rng:   rng,

		feederMapper: ecs.NewMap4[components.Position, components.Motion, components.Traits, components.Feeder](world),
		foodMapper:   ecs.NewMap2[components.Position, components.Food](world),
		feederFilter: ecs.NewFilter2[components.Traits, components.Feeder](world),
		foodFilter:   ecs.NewFilter1[components.Food](world),

		engine:    genetics.NewEngine(rng),
		behavior:  systems.NewBehavior(arena, rng, cfg.Derived.MaxTrait, modifiers),
		grid:      systems.NewSpatialGrid(arena, cfg.Simulation.GridCellSize),
		modifiers: modifiers,

		feederCount:    cfg.Population.Feeders,
		foodCount:      cfg.Population.Food,
		stepsPerUpdate: stepsPerUpdate,

		onGeneration: opts.OnGenerationComplete,
		onStats:      opts.OnStats,
		onMilestone:  opts.OnMilestone,

		collector:     telemetry.NewCollector(),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		milestones:    telemetry.NewMilestoneDetector(milestoneHistory),
		hallOfFame:    telemetry.NewHallOfFame(telemetry.DefaultHallOfFameSize),
		logStats:      opts.LogStats,
	}
	g.maxReach = float64(cfg.Derived.MaxTrait) * max(modifiers.Eyesight, modifiers.Speed)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}

	g.Reset()
	return g, nil
}

// Close writes end-of-run artifacts and closes output files.
func (g *Game) Close() error {
	var firstErr error
	if g.cfg.Telemetry.PlotFitness {
		if err := g.outputManager.WriteFitnessPlot(g.engine.Records()); err != nil {
			firstErr = err
		}
	}
	if err := g.outputManager.WriteHallOfFame(g.hallOfFame); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := g.outputManager.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// Pause stops the loop; Step becomes a no-op.
func (g *Game) Pause() { g.state = Paused }

// Resume restarts a paused loop.
func (g *Game) Resume() { g.state = Running }

// TogglePause flips between running and paused.
func (g *Game) TogglePause() {
	if g.state == Paused {
		g.Resume()
	} else {
		g.Pause()
	}
}

// State returns the run state.
func (g *Game) State() State { return g.state }

// Tick returns the number of ticks into the current generation.
func (g *Game) Tick() int { return g.tick }

// TotalTicks returns the number of ticks since the last reset.
func (g *Game) TotalTicks() int { return g.totalTicks }

// Generation returns the number of completed generations.
func (g *Game) Generation() int { return g.engine.Generation() }

// Records returns the completed generation records, oldest first.
func (g *Game) Records() []genetics.GenerationRecord { return g.engine.Records() }

// StepsPerUpdate returns the number of ticks each Update runs.
func (g *Game) StepsPerUpdate() int { return g.stepsPerUpdate }

// SetStepsPerUpdate changes the number of ticks each Update runs, clamped to
// [1, MaxStepsPerUpdate].
func (g *Game) SetStepsPerUpdate(n int) {
	g.stepsPerUpdate = max(1, clampCount(n, MaxStepsPerUpdate))
}

// Config returns the configuration the game was built with.
func (g *Game) Config() *config.Config { return g.cfg }

// Arena returns the arena bounds.
func (g *Game) Arena() systems.Arena { return g.behavior.Arena() }

// FeederCount returns the number of feeders spawned on the next reset.
func (g *Game) FeederCount() int { return g.feederCount }

// FoodCount returns the number of food items spawned on the next respawn.
func (g *Game) FoodCount() int { return g.foodCount }

// NumFeeders returns the number of live agents.
func (g *Game) NumFeeders() int { return len(g.agents) }

// HallOfFame returns the best chromosomes seen since the last reset.
func (g *Game) HallOfFame() []telemetry.HallEntry { return g.hallOfFame.Entries() }

// PerfStats returns tick timing over the recent window.
func (g *Game) PerfStats() telemetry.PerfStats { return g.perfCollector.Stats() }

// RecordFrame marks a rendered frame for FPS tracking.
func (g *Game) RecordFrame() { g.perfCollector.RecordFrame() }
